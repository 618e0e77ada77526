// Package pprof is kept apart from metrics so that the side effects of
// importing net/http/pprof only reach binaries that ask for profiling.
package pprof

import (
	"net/http"
	"net/http/pprof"
)

// WithProfile returns a handler for profiling a running sweep, to be mounted
// at /debug/pprof/. It serves the named runtime profiles (heap, goroutine,
// mutex...) through the index, plus CPU profiles and execution traces.
// Command line and symbol lookups are not exposed.
func WithProfile() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", pprof.Index)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	return mux
}
