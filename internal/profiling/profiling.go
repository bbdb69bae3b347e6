//go:build !noprofile
// +build !noprofile

// Package profiling is the convenience layer over instrument: one default
// session per process and a one-line scope helper. Building with the
// "noprofile" tag swaps in no-op implementations so instrumented call sites
// compile out to nothing.
package profiling

import (
	"github.com/TomAston1996/go-stack-tracer/internal/instrument"
)

var session instrument.Session

// BeginSession starts a recording window on the default session, writing to
// the file at path. An already-open window is ended first.
func BeginSession(name, path string) error {
	return session.Begin(name, path)
}

// EndSession ends the default session's recording window, if any.
func EndSession() {
	session.End()
}

// Scope starts a timer on the default session and returns its stop function,
// meant to be deferred at the top of the scope being measured:
//
//	defer profiling.Scope("LoadAssets")()
func Scope(name string) func() {
	t := instrument.StartTimer(&session, name)
	return t.Stop
}
