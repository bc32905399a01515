package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// DefaultPath is the physics log file, relative to the working directory.
const DefaultPath = "logs/physics.txt"

// DefaultCapacity is how many recent lines are kept in memory for on-screen display.
const DefaultCapacity = 64

// Logger keeps the most recent lines in memory and appends every line to a file.
// It is safe for concurrent use; the console goroutine and the tick loop both log.
type Logger struct {
	mu       sync.Mutex
	path     string
	capacity int
	lines    []string
	now      func() time.Time
}

// New returns a logger writing to path. An empty path keeps lines in memory only.
// capacity <= 0 uses DefaultCapacity.
func New(path string, capacity int) *Logger {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if path != "" {
		_ = os.MkdirAll(filepath.Dir(path), 0755)
	}
	return &Logger{path: path, capacity: capacity, now: time.Now}
}

// Log stamps line with the wall-clock time, keeps it, and appends it to the file.
// File errors are dropped; the in-memory copy is always kept.
func (l *Logger) Log(line string) {
	stamped := "[" + l.now().Format("2006-01-02 15:04:05") + "] " + line

	l.mu.Lock()
	l.lines = append(l.lines, stamped)
	if over := len(l.lines) - l.capacity; over > 0 {
		l.lines = append(l.lines[:0], l.lines[over:]...)
	}
	path := l.path
	l.mu.Unlock()

	if path == "" {
		return
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return
	}
	_, _ = f.WriteString(stamped + "\n")
	_ = f.Close()
}

// Logf formats like fmt.Sprintf and logs the result.
func (l *Logger) Logf(format string, args ...any) {
	l.Log(fmt.Sprintf(format, args...))
}

// Lines returns a copy of the retained lines, oldest first.
func (l *Logger) Lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.lines))
	copy(out, l.lines)
	return out
}
