package instrument

import (
	"bytes"
	"hash/fnv"
	"runtime"
	"time"
)

// epoch anchors every reading to one monotonic reference point so timestamps
// are comparable across sessions within a process.
var epoch = time.Now()

// nowUS returns microseconds of monotonic time elapsed since process start.
func nowUS() uint64 {
	return uint64(time.Since(epoch) / time.Microsecond)
}

// goroutineTag maps the calling goroutine's identity to a stable 32-bit
// value. It is a display tag for trace viewers, nothing more; collisions are
// acceptable. The id is read from the first line of the stack dump
// ("goroutine N [running]:"), the only portable way to observe it.
func goroutineTag() uint32 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	fields := bytes.Fields(buf[:n])
	if len(fields) < 2 {
		return 0
	}
	h := fnv.New32a()
	h.Write(fields[1])
	return h.Sum32()
}
