package debug

import (
	"strings"
	"testing"

	"action-physics/internal/host"
)

func TestStatsText(t *testing.T) {
	lines := StatsText(host.Stats{Tick: 42, Bodies: 3, Contacts: 4, Resolved: 1, Paused: true}, 2)
	want := []string{"tick 42 (paused)", "bodies 3", "contacts 4, resolved 1", "dropped ticks 2"}
	if strings.Join(lines, "\n") != strings.Join(want, "\n") {
		t.Fatalf("got %q, want %q", lines, want)
	}
}

func TestTail(t *testing.T) {
	log := []string{"a", "b", "c"}
	cases := []struct {
		n    int
		want string
	}{
		{0, ""},
		{2, "b,c"},
		{5, "a,b,c"},
	}
	for _, c := range cases {
		if got := strings.Join(Tail(log, c.n), ","); got != c.want {
			t.Fatalf("Tail(%d) = %q, want %q", c.n, got, c.want)
		}
	}
}

func TestSetVisible(t *testing.T) {
	d := New()
	if d.Visible() {
		t.Fatalf("overlays start hidden")
	}
	d.SetVisible(true)
	if !d.ShowStats || d.LogLines != 8 {
		t.Fatalf("expected stats and log shown, got %+v", d)
	}
	d.SetVisible(false)
	if d.Visible() {
		t.Fatalf("expected everything hidden")
	}
}
