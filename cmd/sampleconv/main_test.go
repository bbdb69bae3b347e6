package main

import (
	"testing"

	"github.com/TomAston1996/go-stack-tracer/internal/instrument"
	"github.com/TomAston1996/go-stack-tracer/internal/sampleconv"
	"github.com/TomAston1996/go-stack-tracer/internal/testutil"
)

func TestPairEvents(t *testing.T) {
	tests := []struct {
		name   string
		events []sampleconv.Event
		want   []instrument.ProfileRecord
	}{
		{
			name: "nested frames pair innermost first",
			events: []sampleconv.Event{
				{Timestamp: 7.5, Kind: sampleconv.EventKindStart, Frame: "main"},
				{Timestamp: 9.2, Kind: sampleconv.EventKindStart, Frame: "my_fn"},
				{Timestamp: 10.7, Kind: sampleconv.EventKindEnd, Frame: "my_fn"},
				{Timestamp: 12.1, Kind: sampleconv.EventKindEnd, Frame: "main"},
			},
			want: []instrument.ProfileRecord{
				{Name: "my_fn", StartUS: 9, EndUS: 10},
				{Name: "main", StartUS: 7, EndUS: 12},
			},
		},
		{
			name: "unmatched end is skipped",
			events: []sampleconv.Event{
				{Timestamp: 3, Kind: sampleconv.EventKindEnd, Frame: "ghost"},
				{Timestamp: 4, Kind: sampleconv.EventKindStart, Frame: "real"},
				{Timestamp: 6, Kind: sampleconv.EventKindEnd, Frame: "real"},
			},
			want: []instrument.ProfileRecord{
				{Name: "real", StartUS: 4, EndUS: 6},
			},
		},
		{
			name: "unclosed start emits nothing",
			events: []sampleconv.Event{
				{Timestamp: 1, Kind: sampleconv.EventKindStart, Frame: "open"},
			},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records := pairEvents(tt.events)
			if diff := testutil.Diff(tt.want, records); diff != "" {
				t.Fatalf("records mismatch: %v", diff)
			}
		})
	}
}
