// Copyright 2017-18 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

// Bounded text sink used by all decoders.

package utils

import (
	"fmt"
)

// BoundedWriter is an append-only text sink with a fixed capacity. Writes beyond
// the capacity are silently discarded, so callers can render unconditionally and
// read back the number of characters that actually fit.
type BoundedWriter struct {
	buf []byte
	max int
}

// NewBoundedWriter returns a writer that accepts at most capacity bytes.
func NewBoundedWriter(capacity int) *BoundedWriter {
	if capacity < 0 {
		capacity = 0
	}

	return &BoundedWriter{max: capacity}
}

// Printf appends formatted text and returns the number of characters actually
// written, which may be less than the formatted length once capacity runs out.
func (w *BoundedWriter) Printf(format string, a ...interface{}) int {
	n, _ := w.WriteString(fmt.Sprintf(format, a...))
	return n
}

// WriteString appends s, truncated to the remaining capacity.
func (w *BoundedWriter) WriteString(s string) (int, error) {
	room := w.max - len(w.buf)
	if room <= 0 {
		return 0, nil
	}

	if len(s) > room {
		s = s[:room]
	}

	w.buf = append(w.buf, s...)
	return len(s), nil
}

// Write implements io.Writer with the same capped semantics as WriteString.
func (w *BoundedWriter) Write(p []byte) (int, error) {
	room := w.max - len(w.buf)
	if room <= 0 {
		return 0, nil
	}

	if len(p) > room {
		p = p[:room]
	}

	w.buf = append(w.buf, p...)
	return len(p), nil
}

// Len returns the number of characters written so far.
func (w *BoundedWriter) Len() int {
	return len(w.buf)
}

func (w *BoundedWriter) String() string {
	return string(w.buf)
}
