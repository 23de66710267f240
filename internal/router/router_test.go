package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/readhero/internal/screen"
)

// stubScreen is a minimal screen for router tests.
type stubScreen struct {
	name     string
	initRan  bool
	lastMsg  tea.Msg
	updCount int
}

func (s *stubScreen) Init() tea.Cmd {
	s.initRan = true
	return nil
}

func (s *stubScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	s.lastMsg = msg
	s.updCount++
	return s, nil
}

func (s *stubScreen) View(width, height int) string { return s.name }
func (s *stubScreen) Title() string                 { return s.name }

func TestPushPop(t *testing.T) {
	s1 := &stubScreen{name: "home"}
	s2 := &stubScreen{name: "session"}
	r := New(s1)

	if r.Depth() != 1 {
		t.Fatalf("Depth = %d, want 1", r.Depth())
	}

	r.Push(s2)
	if !s2.initRan {
		t.Error("Push did not run Init")
	}
	if r.Active() != s2 {
		t.Error("pushed screen is not active")
	}

	r.Pop()
	if r.Active() != s1 {
		t.Error("Pop did not restore prior screen")
	}

	// Popping the last screen is a no-op.
	r.Pop()
	if r.Depth() != 1 {
		t.Errorf("Depth = %d after popping root, want 1", r.Depth())
	}
}

func TestReplaceScreenMsg(t *testing.T) {
	s1 := &stubScreen{name: "splash"}
	s2 := &stubScreen{name: "home"}
	r := New(s1)

	r.Update(ReplaceScreenMsg{Screen: s2})
	if r.Depth() != 1 {
		t.Errorf("Depth = %d after replace, want 1", r.Depth())
	}
	if r.Active() != s2 {
		t.Error("replace did not install the new screen")
	}
	if !s2.initRan {
		t.Error("expected Init() to run via ReplaceScreenMsg")
	}
}

func TestPopToRoot(t *testing.T) {
	s1 := &stubScreen{name: "home"}
	r := New(s1)
	r.Push(&stubScreen{name: "session"})
	r.Push(&stubScreen{name: "summary"})

	r.Update(PopToRootMsg{})
	if r.Depth() != 1 || r.Active() != s1 {
		t.Errorf("PopToRoot left depth %d active %v", r.Depth(), r.Active())
	}
}

func TestUpdateForwardsToActive(t *testing.T) {
	s1 := &stubScreen{name: "home"}
	s2 := &stubScreen{name: "session"}
	r := New(s1)
	r.Push(s2)

	r.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	if s2.updCount != 1 {
		t.Errorf("active screen updates = %d, want 1", s2.updCount)
	}
	if s1.updCount != 0 {
		t.Errorf("inactive screen received %d updates", s1.updCount)
	}
}
