package ntool

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	json "github.com/nikkolasg/hexjson"
	"github.com/stretchr/testify/require"

	"github.com/drand/numtheory/common"
	"github.com/drand/numtheory/internal/config"
	"github.com/drand/numtheory/internal/sweep"
	"github.com/drand/numtheory/numtheory"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	app := CLI()
	app.Writer = &out
	app.ErrWriter = &errOut
	err := app.Run(append([]string{"ntool"}, args...))
	t.Log(errOut.String())
	return strings.TrimSpace(out.String()), err
}

func TestCommands(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"prime", []string{"is-prime", "1000003"}, "true"},
		{"strong pseudoprime", []string{"is-prime", "2047"}, "false"},
		{"hex", []string{"is-prime", "0x65"}, "true"},
		{"next prime", []string{"next-prime", "1340"}, "1361"},
		{"next prime below 2", []string{"next-prime", "1"}, "2"},
		{"inverse", []string{"inverse", "3", "11"}, "4"},
		{"jacobi residue", []string{"jacobi", "2", "7"}, "1"},
		{"jacobi non residue", []string{"jacobi", "3", "7"}, "-1"},
		{"jacobi zero", []string{"jacobi", "21", "7"}, "0"},
		{"sqrt", []string{"sqrt", "2", "7"}, "4"},
		{"sqrt zero", []string{"sqrt", "0", "13"}, "0"},
		{"gcd", []string{"gcd", "12", "18", "0x1e"}, "6"},
		{"gcd single", []string{"gcd", "21"}, "21"},
		{"lcm", []string{"lcm", "4", "6", "10"}, "60"},
		{"factor", []string{"factor", "360"}, "2^3 * 3^2 * 5^1"},
		{"factor large prime", []string{"factor", "1560001"}, "1249^2"},
		{"factor one", []string{"factor", "1"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runCLI(t, tt.args...)
			require.NoError(t, err)
			require.Equal(t, tt.want, out)
		})
	}
}

func TestCommandErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		is   error
	}{
		{"not invertible", []string{"inverse", "6", "9"}, numtheory.ErrDomain},
		{"modulus too small", []string{"inverse", "1", "1"}, numtheory.ErrDomain},
		{"even jacobi modulus", []string{"jacobi", "2", "8"}, numtheory.ErrDomain},
		{"non residue", []string{"sqrt", "3", "7"}, numtheory.ErrNoSquareRoot},
		{"out of range", []string{"sqrt", "7", "7"}, numtheory.ErrDomain},
		{"invalid integer", []string{"gcd", "12", "twelve"}, nil},
		{"missing argument", []string{"inverse", "3"}, nil},
		{"no argument", []string{"lcm"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCLI(t, tt.args...)
			require.Error(t, err)
			if tt.is != nil {
				require.True(t, errors.Is(err, tt.is), "got %v", err)
			}
		})
	}
}

func TestJSONOutput(t *testing.T) {
	out, err := runCLI(t, "--json", "is-prime", "2047")
	require.NoError(t, err)
	var prim PrimalityPacket
	require.NoError(t, json.Unmarshal([]byte(out), &prim))
	require.Equal(t, PrimalityPacket{N: "2047", Prime: false, WitnessRounds: 2}, prim)

	out, err = runCLI(t, "--json", "next-prime", "255")
	require.NoError(t, err)
	var res Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	require.Equal(t, "257", res.Value)
	require.Equal(t, []byte{0x01, 0x01}, res.Hex)
	require.Contains(t, out, `"0101"`)

	out, err = runCLI(t, "--json", "factor", "12")
	require.NoError(t, err)
	var factors []FactorPacket
	require.NoError(t, json.Unmarshal([]byte(out), &factors))
	require.Equal(t, []FactorPacket{{Prime: "2", Exponent: 2}, {Prime: "3", Exponent: 1}}, factors)
}

func TestSweepCmd(t *testing.T) {
	out, err := runCLI(t, "--json", "sweep",
		"--max-prime", "60", "--workers", "2", "--samples", "50", "--bits", "32")
	require.NoError(t, err)

	var report sweep.Report
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	require.NotEmpty(t, report.RunID)
	require.Equal(t, int64(60), report.MaxPrime)
	// odd primes up to 60
	require.Equal(t, 16, report.Primes)
	require.Equal(t, uint64(61), report.PrimalityChecks)
}

func TestSweepCmdConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sweep.toml")
	require.NoError(t, os.WriteFile(path, []byte("max_prime = 1000\nworkers = 2\ncomposite_samples = 10\n"), 0o600))

	// the flag overrides the file
	out, err := runCLI(t, "--json", "sweep", "--config", path, "--max-prime", "30")
	require.NoError(t, err)
	var report sweep.Report
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	require.Equal(t, int64(30), report.MaxPrime)
	require.Equal(t, 9, report.Primes)

	bad := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte("max_prime = 100\nthreads = 2\n"), 0o600))
	_, err = runCLI(t, "sweep", "--config", bad)
	require.ErrorIs(t, err, config.ErrInvalidConfig)

	_, err = runCLI(t, "sweep", "--max-prime", "2")
	require.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestVersion(t *testing.T) {
	out, err := runCLI(t, "--version")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "ntool "), out)
}

func TestBannerBuildInfo(t *testing.T) {
	var buf bytes.Buffer
	banner(&buf)
	require.Contains(t, buf.String(), "(date unknown, commit none)")

	commit, date := common.COMMIT, common.BUILDDATE
	defer func() { common.COMMIT, common.BUILDDATE = commit, date }()
	common.COMMIT, common.BUILDDATE = "0123abc", "15/10/2026@12:00:00"

	buf.Reset()
	banner(&buf)
	require.Equal(t, "ntool "+common.GetAppVersion().String()+" (date 15/10/2026@12:00:00, commit 0123abc)\n", buf.String())
}
