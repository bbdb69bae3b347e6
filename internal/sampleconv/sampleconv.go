// Package sampleconv reconstructs start/end interval events from periodic
// call-stack snapshots, the way a sampling profiler's output is turned into
// a trace.
package sampleconv

const (
	EventKindStart EventKind = "start"
	EventKindEnd   EventKind = "end"
)

type (
	EventKind string

	// Sample is one point-in-time snapshot of the active call chain,
	// ordered outer (root) to inner (most recently entered).
	Sample struct {
		Timestamp float64  `json:"ts"`
		Stack     []string `json:"stack"`
	}

	// Event marks a frame opening or closing at a sample boundary.
	Event struct {
		Timestamp float64   `json:"ts"`
		Kind      EventKind `json:"kind"`
		Frame     string    `json:"frame"`
	}
)

// Convert scans samples left to right and derives the interval events,
// maintaining the ordered set of frames currently considered open.
//
// For each sample, frames that disappeared are closed innermost-first, then
// frames not yet open are opened outermost-first. Matching is by frame name
// against the whole stack, not by depth: two call paths sharing a name at
// different depths are conflated into one running frame. That ambiguity is
// inherent to name-only samples and is left as is.
//
// Frames still open after the last sample are never closed. Callers that
// need a balanced sequence append a synthetic empty-stack sample, which
// closes everything.
func Convert(samples []Sample) []Event {
	var events []Event
	var running []string

	for _, sample := range samples {
		for len(running) > 0 && !contains(sample.Stack, running[len(running)-1]) {
			events = append(events, Event{
				Timestamp: sample.Timestamp,
				Kind:      EventKindEnd,
				Frame:     running[len(running)-1],
			})
			running = running[:len(running)-1]
		}

		for _, frame := range sample.Stack {
			if !contains(running, frame) {
				events = append(events, Event{
					Timestamp: sample.Timestamp,
					Kind:      EventKindStart,
					Frame:     frame,
				})
				running = append(running, frame)
			}
		}
	}

	return events
}

func contains(frames []string, name string) bool {
	for _, f := range frames {
		if f == name {
			return true
		}
	}
	return false
}
