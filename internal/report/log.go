package report

import (
	"fmt"
	"strings"
	"sync"
)

// Logger receives human-readable activity lines and verbatim
// subprocess output chunks.
type Logger interface {
	// Append records a raw chunk exactly as captured.
	Append(text string)
	// Appendf records one newline-terminated formatted line.
	Appendf(format string, args ...any)
}

// Buffer is an append-only Logger backed by memory. It grows for the
// life of the process and is never truncated.
type Buffer struct {
	mu     sync.Mutex
	chunks []string
}

// Append records a verbatim chunk.
func (b *Buffer) Append(text string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.chunks = append(b.chunks, text)
}

// Appendf records a formatted line.
func (b *Buffer) Appendf(format string, args ...any) {
	b.Append(fmt.Sprintf(format, args...) + "\n")
}

// Chunks returns a copy of the recorded chunks in append order.
func (b *Buffer) Chunks() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.chunks...)
}

// Last returns the most recent chunk, or "" when empty.
func (b *Buffer) Last() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.chunks) == 0 {
		return ""
	}
	return b.chunks[len(b.chunks)-1]
}

// Len returns the number of recorded chunks.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.chunks)
}

func (b *Buffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return strings.Join(b.chunks, "")
}
