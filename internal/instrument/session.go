package instrument

import (
	"os"
	"sync"

	"github.com/google/uuid"

	"github.com/TomAston1996/go-stack-tracer/internal/chrometrace"
)

type (
	// ProfileRecord is one completed timing observation. Timestamps are
	// absolute monotonic microseconds; Submit rebases them against the
	// session baseline before serialization.
	ProfileRecord struct {
		Name     string
		StartUS  uint64
		EndUS    uint64
		ThreadID uint32
	}

	// Session owns one trace output at a time. The zero value is ready to
	// use. At most one recording window is ever active per Session: Begin
	// while active ends the previous window first.
	//
	// All methods are safe for concurrent use; submissions from multiple
	// goroutines serialize on the internal mutex.
	Session struct {
		mu         sync.Mutex
		name       string
		id         uuid.UUID
		active     bool
		eventCount uint32
		baselineUS uint64
		output     *os.File
	}
)

// Begin opens a new recording window named name writing to the file at path,
// truncating whatever was there. If a window is already active it is ended
// first, so its output is left well-formed. On open failure the session
// stays inactive and the error is returned; previously this class of failure
// was swallowed, surfacing it at Begin keeps every invariant intact while
// making a dead output path diagnosable.
func (s *Session) Begin(name, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active {
		s.endLocked()
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := f.WriteString(chrometrace.Header); err != nil {
		f.Close()
		return err
	}

	s.name = name
	s.id = uuid.New()
	s.output = f
	s.eventCount = 0
	s.baselineUS = nowUS()
	s.active = true
	return nil
}

// End closes the active recording window: writes the envelope footer, closes
// the file and resets all session state. Calling End with no active window
// does nothing, repeatedly calling it is harmless.
func (s *Session) End() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.endLocked()
}

func (s *Session) endLocked() {
	if !s.active {
		return
	}
	s.output.WriteString(chrometrace.Footer)
	s.output.Close()
	s.output = nil
	s.name = ""
	s.id = uuid.UUID{}
	s.active = false
	s.eventCount = 0
	s.baselineUS = 0
}

// Submit serializes one record into the active window. Records submitted
// while no window is active are silently dropped. Each record is written
// through to the file immediately, so events survive an abrupt process exit
// even though the envelope will then be unterminated.
func (s *Session) Submit(record ProfileRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.active {
		return
	}

	record.StartUS -= s.baselineUS
	record.EndUS -= s.baselineUS

	buf := make([]byte, 0, 128)
	if s.eventCount > 0 {
		buf = append(buf, chrometrace.Separator...)
	}
	s.eventCount++

	buf = chrometrace.AppendEvent(buf, chrometrace.Event{
		Duration:  record.EndUS - record.StartUS,
		Category:  chrometrace.CategoryFunction,
		Name:      record.Name,
		Phase:     chrometrace.PhaseComplete,
		ProcessID: 0,
		ThreadID:  record.ThreadID,
		Timestamp: record.StartUS,
	})
	s.output.Write(buf)
}

// Name returns the name of the active recording window, or "" if inactive.
func (s *Session) Name() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.name
}

// ID returns the identifier assigned to the active recording window. It is
// the zero UUID while the session is inactive.
func (s *Session) ID() uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id
}

// BaselineUS returns the monotonic reading captured when the active window
// began, in microseconds. Zero while inactive. Submitters that carry
// timestamps from another time base offset them by this value so the rebase
// in Submit cancels out.
func (s *Session) BaselineUS() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.baselineUS
}

// Active reports whether a recording window is open.
func (s *Session) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}
