package simulate

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
)

// WriterSender prints delivered notifications to a writer. It stands in
// for the chat transport during simulation runs.
type WriterSender struct {
	mu    sync.Mutex
	w     io.Writer
	count atomic.Int64
}

// NewStdoutSender creates a sender printing to standard output.
func NewStdoutSender() *WriterSender {
	return &WriterSender{w: os.Stdout}
}

// NewWriterSender creates a sender printing to w.
func NewWriterSender(w io.Writer) *WriterSender {
	return &WriterSender{w: w}
}

// Send writes the notification text followed by a separator line.
func (s *WriterSender) Send(ctx context.Context, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := fmt.Fprintf(s.w, "%s\n---\n", text); err != nil {
		return fmt.Errorf("write notification: %w", err)
	}
	s.count.Add(1)
	return nil
}

// Count returns how many notifications were delivered.
func (s *WriterSender) Count() int64 {
	return s.count.Load()
}
