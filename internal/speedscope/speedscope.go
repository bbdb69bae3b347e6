// Package speedscope renders interval events in the speedscope file format
// (https://www.speedscope.app), evented-profile flavor.
package speedscope

import (
	"github.com/TomAston1996/go-stack-tracer/internal/sampleconv"
)

const (
	Schema = "https://www.speedscope.app/file-format-schema.json"

	ValueUnitMicroseconds ValueUnit = "microseconds"

	EventTypeOpenFrame  EventType = "O"
	EventTypeCloseFrame EventType = "C"

	ProfileTypeEvented ProfileType = "evented"
)

type (
	EventType   string
	ProfileType string
	ValueUnit   string

	Frame struct {
		Name string `json:"name"`
	}

	Event struct {
		Type  EventType `json:"type"`
		Frame int       `json:"frame"`
		At    uint64    `json:"at"`
	}

	EventedProfile struct {
		EndValue   uint64      `json:"endValue"`
		Events     []Event     `json:"events"`
		Name       string      `json:"name"`
		StartValue uint64      `json:"startValue"`
		Type       ProfileType `json:"type"`
		Unit       ValueUnit   `json:"unit"`
	}

	SharedData struct {
		Frames []Frame `json:"frames"`
	}

	Output struct {
		ActiveProfileIndex int              `json:"activeProfileIndex"`
		Exporter           string           `json:"exporter,omitempty"`
		Name               string           `json:"name"`
		Profiles           []EventedProfile `json:"profiles"`
		Schema             string           `json:"$schema"`
		Shared             SharedData       `json:"shared"`
	}
)

// FromIntervalEvents builds a single evented profile from interval events,
// interpreting timestamps as microseconds. Frame names are interned into the
// shared frame table in order of first appearance.
//
// Speedscope rejects profiles whose open events are never closed, so callers
// feed a balanced event sequence (converter input terminated by an
// empty-stack sample).
func FromIntervalEvents(name string, events []sampleconv.Event) Output {
	profile := EventedProfile{
		Name: name,
		Type: ProfileTypeEvented,
		Unit: ValueUnitMicroseconds,
	}
	var shared SharedData
	frameIndex := make(map[string]int)

	for i, e := range events {
		index, seen := frameIndex[e.Frame]
		if !seen {
			index = len(shared.Frames)
			frameIndex[e.Frame] = index
			shared.Frames = append(shared.Frames, Frame{Name: e.Frame})
		}

		at := uint64(e.Timestamp)
		if i == 0 {
			profile.StartValue = at
		}
		profile.EndValue = at

		eventType := EventTypeOpenFrame
		if e.Kind == sampleconv.EventKindEnd {
			eventType = EventTypeCloseFrame
		}
		profile.Events = append(profile.Events, Event{
			Type:  eventType,
			Frame: index,
			At:    at,
		})
	}

	return Output{
		Name:     name,
		Profiles: []EventedProfile{profile},
		Schema:   Schema,
		Shared:   shared,
		Exporter: "go-stack-tracer",
	}
}
