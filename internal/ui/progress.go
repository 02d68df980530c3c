package ui

import (
	"fmt"
	"io"
	"sync"
	"sync/atomic"

	"github.com/fbkclanna/ocrdws/internal/mets"
)

// Progress reports per-file download completion with a simple counter
// display. It satisfies workspace.Observer.
type Progress struct {
	out       io.Writer
	total     int
	completed atomic.Int32
	mu        sync.Mutex
}

// NewProgress creates a progress tracker for n files.
func NewProgress(out io.Writer, total int) *Progress {
	return &Progress{out: out, total: total}
}

// FileDownloaded prints one progress line for f.
func (p *Progress) FileDownloaded(f *mets.File, cached bool) {
	label := f.ID() + " -> " + f.LocalFilename()
	if cached {
		label += " (already local)"
	}
	p.Done(label)
}

// SetTotal changes the number of files expected.
func (p *Progress) SetTotal(n int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.total = n
}

// Done marks one file as handled and prints the current progress.
func (p *Progress) Done(label string) {
	n := int(p.completed.Add(1))
	p.mu.Lock()
	defer p.mu.Unlock()
	_, _ = fmt.Fprintf(p.out, "[%d/%d] %s\n", n, p.total, label)
}

// Completed returns how many files have been reported so far.
func (p *Progress) Completed() int {
	return int(p.completed.Load())
}

// Log prints an informational message within the progress context.
func (p *Progress) Log(format string, args ...any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, _ = fmt.Fprintf(p.out, format+"\n", args...)
}
