package errorutil

import "errors"

// ErrNoSamples represents situations in which a sample source decoded
// successfully but contained no samples to convert.
var ErrNoSamples = errors.New("no samples provided")
