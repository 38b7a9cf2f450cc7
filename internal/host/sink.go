// SPDX-License-Identifier: MPL-2.0

package host

import (
	"io"
	"sync"
)

// WriterSink is a listing.Sink writing one line per Output call.
// Output never fails; the first write error is kept and reported by Err,
// and later lines are dropped.
type WriterSink struct {
	mu    sync.Mutex
	w     io.Writer
	lines int
	err   error
}

// NewWriterSink returns a sink writing to w.
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

// Output writes line followed by a newline.
func (s *WriterSink) Output(line string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err != nil {
		return
	}
	if _, err := io.WriteString(s.w, line+"\n"); err != nil {
		s.err = err
		return
	}
	s.lines++
}

// Lines returns the number of lines written successfully.
func (s *WriterSink) Lines() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lines
}

// Err returns the first write error, if any.
func (s *WriterSink) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}
