package logviewer

import (
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// StreamWriter is an io.Writer that forwards complete lines to a running
// program as LogLineMsg. Partial lines are buffered until their newline
// arrives so a line is never split mid-write.
type StreamWriter struct {
	program  *tea.Program
	source   string
	buffer   strings.Builder
	mu       sync.Mutex
	NoPrefix bool
}

// NewStreamWriter creates a writer that tags forwarded lines with source.
func NewStreamWriter(program *tea.Program, source string) *StreamWriter {
	return &StreamWriter{
		program: program,
		source:  source,
	}
}

// Write implements io.Writer.
func (w *StreamWriter) Write(p []byte) (n int, err error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.buffer.Write(p)

	lines := strings.Split(w.buffer.String(), "\n")
	w.buffer.Reset()
	w.buffer.WriteString(lines[len(lines)-1])

	for _, line := range lines[:len(lines)-1] {
		if w.program != nil {
			w.program.Send(LogLineMsg{
				Source:   w.source,
				Line:     line,
				NoPrefix: w.NoPrefix,
			})
		}
	}

	return len(p), nil
}
