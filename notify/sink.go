package notify

import (
	"context"
	"fmt"
	"io"
	"sync"
)

// Sink receives cart count updates. A sink is any surface that shows the
// count to somebody: a terminal badge, a TUI model, a log line.
//
// Contract:
//   - Concurrency: UpdateCount may be called from any goroutine and must
//     be safe for concurrent use.
//   - Blocking: UpdateCount must return promptly. Slow work belongs in a
//     goroutine owned by the sink; a sink that blocks stalls every other
//     sink behind it.
//   - Context: ctx carries cancellation from the caller. Sinks doing no
//     blocking work may ignore it.
type Sink interface {
	UpdateCount(ctx context.Context, count int)
}

// SinkFunc adapts a plain function to the Sink interface.
type SinkFunc func(ctx context.Context, count int)

// UpdateCount implements the Sink interface.
func (f SinkFunc) UpdateCount(ctx context.Context, count int) {
	f(ctx, count)
}

// WriterSink writes each count as its own line of text. It is the
// plainest possible badge, suitable for piping or logging.
type WriterSink struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriterSink creates a sink that writes counts to w.
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

// UpdateCount implements the Sink interface.
func (s *WriterSink) UpdateCount(_ context.Context, count int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintln(s.w, count)
}

var _ Sink = SinkFunc(nil)
var _ Sink = (*WriterSink)(nil)
