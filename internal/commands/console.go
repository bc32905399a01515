package commands

import (
	"bufio"
	"io"
)

// Console reads command lines from r on its own goroutine. Lines are delivered on a
// buffered channel so the tick goroutine can drain them at a tick boundary without
// blocking.
type Console struct {
	lines chan string
	err   error
	done  chan struct{}
}

// NewConsole starts reading r. The Lines channel is closed at EOF or on a read error.
func NewConsole(r io.Reader) *Console {
	c := &Console{lines: make(chan string, 32), done: make(chan struct{})}
	go c.read(r)
	return c
}

func (c *Console) read(r io.Reader) {
	defer close(c.done)
	defer close(c.lines)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		c.lines <- scanner.Text()
	}
	c.err = scanner.Err()
}

// Lines is the stream of raw console lines.
func (c *Console) Lines() <-chan string {
	return c.lines
}

// Err returns the read error, if any, once Lines has been closed.
func (c *Console) Err() error {
	<-c.done
	return c.err
}

// Drain executes every line already waiting on lines without blocking and returns how
// many commands ran. Errors and unknown commands are passed to report; they never stop
// the drain.
func Drain(lines <-chan string, reg *Registry, report func(line string, err error)) int {
	n := 0
	for {
		select {
		case line, ok := <-lines:
			if !ok {
				return n
			}
			args, isCmd := Parse(line)
			if !isCmd {
				continue
			}
			n++
			if err := reg.Execute(args); err != nil && report != nil {
				report(line, err)
			}
		default:
			return n
		}
	}
}
