package instrument

// noCopy triggers a go vet copylocks report when a Timer is duplicated by
// value. One constructed timer must map to exactly one submission.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Timer measures the span between its construction and its first Stop. It
// submits exactly one record to its session over its lifetime, or none at
// all if the session never had an active window.
//
// Callers arm the implicit completion with defer, which runs on every exit
// path including panics:
//
//	t := instrument.StartTimer(session, "LoadAssets")
//	defer t.Stop()
//
// A Timer must not be copied and is not safe for concurrent use; it belongs
// to the goroutine that created it.
type Timer struct {
	_       noCopy
	session *Session
	name    string
	startUS uint64
	stopped bool
}

// StartTimer captures the current monotonic reading and returns the armed
// timer. The session must outlive the timer.
func StartTimer(session *Session, name string) *Timer {
	return &Timer{
		session: session,
		name:    name,
		startUS: nowUS(),
	}
}

// Stop captures the end reading and submits the record. Only the first call
// has any effect.
func (t *Timer) Stop() {
	if t.stopped {
		return
	}
	t.stopped = true

	endUS := nowUS()
	t.session.Submit(ProfileRecord{
		Name:     t.name,
		StartUS:  t.startUS,
		EndUS:    endUS,
		ThreadID: goroutineTag(),
	})
}
