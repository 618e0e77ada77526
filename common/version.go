package common

import "fmt"

// Must be manually updated!
// Before releasing: Verify the version number and set Prerelease to ""
// After releasing: Increase the Patch number and set Prerelease to "pre"
var version = Version{
	Major:      0,
	Minor:      1,
	Patch:      0,
	Prerelease: "pre",
}

// Set via -ldflags and printed by ntool --version. Example:
//
//	go install -ldflags "-X github.com/drand/numtheory/common.COMMIT=`git rev-parse HEAD` -X github.com/drand/numtheory/common.BUILDDATE=`date -u +%d/%m/%Y@%H:%M:%S`" ./cmd/ntool
var (
	COMMIT    = ""
	BUILDDATE = ""
)

// GetAppVersion returns the version of the module.
func GetAppVersion() Version {
	return version
}

// Version is a semantic version.
type Version struct {
	Major      uint32
	Minor      uint32
	Patch      uint32
	Prerelease string
}

func (v Version) String() string {
	pre := ""
	if v.Prerelease != "" {
		pre = "-" + v.Prerelease
	}
	return fmt.Sprintf("%d.%d.%d%s", v.Major, v.Minor, v.Patch, pre)
}
