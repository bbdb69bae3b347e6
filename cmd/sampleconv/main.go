package main

import (
	"fmt"
	"os"
	"strings"

	gojson "github.com/goccy/go-json"
	"github.com/rs/zerolog/log"

	"github.com/TomAston1996/go-stack-tracer/internal/errorutil"
	"github.com/TomAston1996/go-stack-tracer/internal/instrument"
	"github.com/TomAston1996/go-stack-tracer/internal/logutil"
	"github.com/TomAston1996/go-stack-tracer/internal/sampleconv"
	"github.com/TomAston1996/go-stack-tracer/internal/speedscope"
)

func main() {
	logutil.ConfigureLogger()

	args := os.Args[1:]
	if len(args) < 1 || len(args) > 2 {
		fmt.Println("./sampleconv <samples file> [trace output]") // nolint
		return
	}

	samples, err := readSamples(args[0])
	if err != nil {
		log.Fatal().Err(err).Str("path", args[0]).Msg("error reading samples")
	}

	events := sampleconv.Convert(samples)
	for _, e := range events {
		fmt.Printf("%s, %g, %s\n", e.Kind, e.Timestamp, e.Frame) // nolint
	}

	if len(args) == 2 {
		write := writeTrace
		if strings.HasSuffix(args[1], ".speedscope.json") {
			write = writeSpeedscope
		}
		if err := write(args[1], samples); err != nil {
			log.Fatal().Err(err).Str("path", args[1]).Msg("error writing trace")
		}
		log.Info().Str("path", args[1]).Int("events", len(events)).Msg("trace written")
	}
}

func readSamples(path string) ([]sampleconv.Sample, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var samples []sampleconv.Sample
	if err := gojson.Unmarshal(data, &samples); err != nil {
		return nil, err
	}
	if len(samples) == 0 {
		return nil, errorutil.ErrNoSamples
	}
	return samples, nil
}

// balance appends a synthetic empty-stack sample so every frame still open
// after the last real sample gets a close event.
func balance(samples []sampleconv.Sample) []sampleconv.Sample {
	balanced := make([]sampleconv.Sample, 0, len(samples)+1)
	balanced = append(balanced, samples...)
	return append(balanced, sampleconv.Sample{
		Timestamp: samples[len(samples)-1].Timestamp,
	})
}

// writeTrace pairs the balanced start/end events and records them through a
// session so the output is a well-formed trace file.
func writeTrace(path string, samples []sampleconv.Sample) error {
	var session instrument.Session
	if err := session.Begin("sampleconv", path); err != nil {
		return err
	}
	defer session.End()

	// Sample timestamps live on their own time base. Submit rebases every
	// record against the session baseline, so shift them by it up front.
	baseline := session.BaselineUS()
	for _, record := range pairEvents(sampleconv.Convert(balance(samples))) {
		record.StartUS += baseline
		record.EndUS += baseline
		session.Submit(record)
	}
	return nil
}

// writeSpeedscope renders the balanced event sequence as a speedscope
// evented profile.
func writeSpeedscope(path string, samples []sampleconv.Sample) error {
	output := speedscope.FromIntervalEvents("sampleconv", sampleconv.Convert(balance(samples)))
	data, err := gojson.Marshal(output)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// pairEvents matches each end event with the most recent unmatched start of
// the same frame and emits one record per pair, ordered by completion.
// Sample timestamps are taken as fractional microseconds.
func pairEvents(events []sampleconv.Event) []instrument.ProfileRecord {
	var records []instrument.ProfileRecord
	open := make(map[string][]float64)

	for _, e := range events {
		switch e.Kind {
		case sampleconv.EventKindStart:
			open[e.Frame] = append(open[e.Frame], e.Timestamp)
		case sampleconv.EventKindEnd:
			starts := open[e.Frame]
			if len(starts) == 0 {
				continue
			}
			start := starts[len(starts)-1]
			open[e.Frame] = starts[:len(starts)-1]
			records = append(records, instrument.ProfileRecord{
				Name:    e.Frame,
				StartUS: uint64(start),
				EndUS:   uint64(e.Timestamp),
			})
		}
	}
	return records
}
