package chrometrace

import (
	"strconv"
	"strings"
)

// Chrome Trace Event Format, duration-event convention. The envelope is one
// JSON object with two fields, written incrementally:
//
//	{"otherData": {},"traceEvents":[ <event>, <event>, ... ]}
const (
	Header    = `{"otherData": {},"traceEvents":[`
	Footer    = `]}`
	Separator = `, `

	CategoryFunction = "function"
	PhaseComplete    = "X"
)

type (
	// Event is one complete (phase "X") trace event. Field order matches the
	// byte order AppendEvent writes, which downstream tooling relies on.
	Event struct {
		Duration  uint64 `json:"dur"`
		Category  string `json:"cat"`
		Name      string `json:"name"`
		Phase     string `json:"ph"`
		ProcessID uint32 `json:"pid"`
		ThreadID  uint32 `json:"tid"`
		Timestamp uint64 `json:"ts"`
	}

	Trace struct {
		OtherData   map[string]interface{} `json:"otherData"`
		TraceEvents []Event                `json:"traceEvents"`
	}
)

// SanitizeName replaces every double quote with a single quote so the name
// can be emitted between quotes without breaking the record. This is a narrow
// substitution, not a general string escaper: backslashes and control
// characters pass through untouched, matching what existing consumers of
// these traces expect.
func SanitizeName(name string) string {
	return strings.ReplaceAll(name, `"`, `'`)
}

// AppendEvent appends the serialized form of e to dst and returns the
// extended buffer. Keys are written in the fixed order dur, cat, name, ph,
// pid, tid, ts. The name is sanitized, nothing else is escaped.
func AppendEvent(dst []byte, e Event) []byte {
	dst = append(dst, `{"dur":`...)
	dst = strconv.AppendUint(dst, e.Duration, 10)
	dst = append(dst, `,"cat":"`...)
	dst = append(dst, e.Category...)
	dst = append(dst, `","name":"`...)
	dst = append(dst, SanitizeName(e.Name)...)
	dst = append(dst, `","ph":"`...)
	dst = append(dst, e.Phase...)
	dst = append(dst, `","pid":`...)
	dst = strconv.AppendUint(dst, uint64(e.ProcessID), 10)
	dst = append(dst, `,"tid":`...)
	dst = strconv.AppendUint(dst, uint64(e.ThreadID), 10)
	dst = append(dst, `,"ts":`...)
	dst = strconv.AppendUint(dst, e.Timestamp, 10)
	dst = append(dst, '}')
	return dst
}
