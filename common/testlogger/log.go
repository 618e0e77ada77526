package testlogger

import (
	"os"
	"testing"

	"github.com/drand/numtheory/common/log"
)

// Level returns DebugLevel when NUMTHEORY_TEST_LOGS is DEBUG, InfoLevel
// otherwise.
func Level(t testing.TB) int {
	if v, ok := os.LookupEnv(log.DebugEnv); ok && v == "DEBUG" {
		t.Log("Enabling DebugLevel logs")
		return log.DebugLevel
	}
	return log.InfoLevel
}

// New returns a logger tagged with the name of the running test.
func New(t testing.TB) log.Logger {
	return log.New(nil, Level(t), true).
		With("testName", t.Name())
}
