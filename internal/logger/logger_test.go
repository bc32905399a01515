package logger

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

func fixedClock() time.Time {
	return time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
}

func TestLogAppendsToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "physics.txt")
	l := New(path, 4)
	l.now = fixedClock

	l.Log("scene loaded")
	l.Logf("tick %d: %d contacts", 7, 2)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	want := "[2026-10-19 12:00:00] scene loaded\n[2026-10-19 12:00:00] tick 7: 2 contacts\n"
	if string(data) != want {
		t.Fatalf("expected %q, got %q", want, string(data))
	}
}

func TestLinesKeepsMostRecent(t *testing.T) {
	l := New("", 3)
	l.now = fixedClock
	for _, s := range []string{"a", "b", "c", "d", "e"} {
		l.Log(s)
	}
	lines := l.Lines()
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	for i, suffix := range []string{"c", "d", "e"} {
		if !strings.HasSuffix(lines[i], "] "+suffix) {
			t.Fatalf("line %d: expected suffix %q, got %q", i, suffix, lines[i])
		}
	}
}

func TestConcurrentLogging(t *testing.T) {
	l := New("", 1000)
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				l.Log("x")
			}
		}()
	}
	wg.Wait()
	if n := len(l.Lines()); n != 400 {
		t.Fatalf("expected 400 lines, got %d", n)
	}
}
