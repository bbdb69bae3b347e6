package instrument

import (
	"path/filepath"
	"testing"

	"github.com/TomAston1996/go-stack-tracer/internal/chrometrace"
)

func TestTimerSubmitsOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.json")

	var s Session
	if err := s.Begin("timer", path); err != nil {
		t.Fatalf("error beginning session: %v", err)
	}

	timer := StartTimer(&s, "ScopeA")
	timer.Stop()
	timer.Stop()
	s.End()

	_, trace := readTrace(t, path)
	if len(trace.TraceEvents) != 1 {
		t.Fatalf("expected 1 event, got %d", len(trace.TraceEvents))
	}
	event := trace.TraceEvents[0]
	if event.Name != "ScopeA" {
		t.Fatalf("got name %q, want %q", event.Name, "ScopeA")
	}
	if event.Category != chrometrace.CategoryFunction || event.Phase != chrometrace.PhaseComplete {
		t.Fatalf("unexpected event shape: %+v", event)
	}
	if event.ThreadID == 0 {
		t.Fatal("expected a non-zero thread tag")
	}
}

func TestTimerDeferredStopRunsOnPanic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.json")

	var s Session
	if err := s.Begin("panic", path); err != nil {
		t.Fatalf("error beginning session: %v", err)
	}

	func() {
		defer func() { _ = recover() }()
		defer StartTimer(&s, "Unwinds").Stop()
		panic("abrupt exit")
	}()
	s.End()

	_, trace := readTrace(t, path)
	if len(trace.TraceEvents) != 1 || trace.TraceEvents[0].Name != "Unwinds" {
		t.Fatalf("expected the unwound scope to submit once, got %+v", trace.TraceEvents)
	}
}

func TestTimerWithInactiveSessionSubmitsNothing(t *testing.T) {
	var s Session

	// The submission is attempted on Stop and silently dropped.
	timer := StartTimer(&s, "NoSession")
	timer.Stop()

	if s.Active() {
		t.Fatal("stopping a timer must not activate a session")
	}
}

func TestNestedTimers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.json")

	var s Session
	if err := s.Begin("nested", path); err != nil {
		t.Fatalf("error beginning session: %v", err)
	}

	outer := StartTimer(&s, "Outer")
	inner := StartTimer(&s, "Inner")
	inner.Stop()
	outer.Stop()
	s.End()

	_, trace := readTrace(t, path)
	if len(trace.TraceEvents) != 2 {
		t.Fatalf("expected 2 events, got %d", len(trace.TraceEvents))
	}
	// Inner completes first, so it serializes first.
	if trace.TraceEvents[0].Name != "Inner" || trace.TraceEvents[1].Name != "Outer" {
		t.Fatalf("unexpected event order: %+v", trace.TraceEvents)
	}
	if trace.TraceEvents[1].Duration < trace.TraceEvents[0].Duration {
		t.Fatalf("outer scope shorter than inner: %+v", trace.TraceEvents)
	}
	if trace.TraceEvents[1].Timestamp > trace.TraceEvents[0].Timestamp {
		t.Fatalf("outer scope started after inner: %+v", trace.TraceEvents)
	}
}

func TestGoroutineTagIsStable(t *testing.T) {
	if goroutineTag() != goroutineTag() {
		t.Fatal("thread tag must be stable within one goroutine")
	}
}
