package terminal

import (
	"errors"
	"strings"
	"testing"

	"action-physics/internal/commands"
	"action-physics/internal/logger"
)

func TestSubmit(t *testing.T) {
	log := logger.New("", 0)
	reg := commands.NewRegistry()
	var ran int
	reg.Register("step", "", nil, func() error {
		ran++
		return nil
	})
	reg.Register("explode", "", nil, func() error {
		return errors.New("kaboom")
	})
	term := New(log, reg)

	term.Submit("   ")
	term.Submit("step")
	term.Submit("cmd step")
	term.Submit("explode")
	term.Submit("warp")

	if ran != 2 {
		t.Fatalf("expected step to run twice, ran %d", ran)
	}
	all := strings.Join(log.Lines(), "\n")
	for _, want := range []string{"> step", "kaboom", "unknown command: warp"} {
		if !strings.Contains(all, want) {
			t.Fatalf("log is missing %q:\n%s", want, all)
		}
	}
	if len(log.Lines()) != 6 {
		t.Fatalf("blank lines must not be echoed, got %d lines", len(log.Lines()))
	}
}
