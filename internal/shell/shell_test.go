package shell

import "testing"

func TestSubmitEchoesAndRecords(t *testing.T) {
	var handled []string
	s := New(0, func(line string) { handled = append(handled, line) })

	s.Submit("  f0 01 f7 ")
	lines := s.Lines()
	if len(lines) != 1 || lines[0].Text != ">   f0 01 f7 " || lines[0].Color != ColorDefault {
		t.Fatalf("unexpected echo %#v", lines)
	}
	if len(handled) != 1 || handled[0] != "  f0 01 f7 " {
		t.Fatalf("expected raw line passed to handler, got %#v", handled)
	}
	if h := s.History(); len(h) != 1 || h[0] != "  f0 01 f7 " {
		t.Fatalf("unexpected history %#v", h)
	}
	if s.Cursor() != 1 {
		t.Fatalf("expected cursor past history end, got %d", s.Cursor())
	}
}

func TestBlankSubmitEchoesOnly(t *testing.T) {
	calls := 0
	s := New(0, func(string) { calls++ })
	s.Submit("   ")
	if calls != 0 {
		t.Fatalf("expected no handler call for blank line")
	}
	if len(s.History()) != 0 {
		t.Fatalf("expected no history entry for blank line")
	}
	if lines := s.Lines(); len(lines) != 1 || lines[0].Text != ">    " {
		t.Fatalf("expected blank echo, got %#v", lines)
	}
}

func TestHandlerOutputFollowsEcho(t *testing.T) {
	var s *Shell
	s = New(0, func(line string) { s.Print("handled", ColorAlert) })
	s.Submit("90")
	lines := s.Lines()
	if len(lines) != 2 || lines[0].Text != "> 90" || lines[1].Text != "handled" {
		t.Fatalf("unexpected ordering %#v", lines)
	}
}

func TestHistoryNavigationKeepsDraft(t *testing.T) {
	s := New(0, nil)
	s.Submit("one")
	s.Submit("two")

	if got := s.Up("draft"); got != "two" {
		t.Fatalf("expected two, got %q", got)
	}
	if got := s.Up("two"); got != "one" {
		t.Fatalf("expected one, got %q", got)
	}
	if got := s.Up("one"); got != "one" {
		t.Fatalf("expected clamp at oldest, got %q", got)
	}
	if s.Cursor() != 0 {
		t.Fatalf("expected cursor 0, got %d", s.Cursor())
	}
	if got := s.Down("one edited"); got != "two" {
		t.Fatalf("expected two, got %q", got)
	}
	if got := s.Down("two"); got != "draft" {
		t.Fatalf("expected draft restored, got %q", got)
	}
	if got := s.Down("draft"); got != "draft" {
		t.Fatalf("expected clamp at edit slot, got %q", got)
	}
	if got := s.Up("draft"); got != "two" {
		t.Fatalf("expected two again, got %q", got)
	}
	if got := s.Up("two"); got != "one edited" {
		t.Fatalf("expected edited scratch slot, got %q", got)
	}
}

func TestSubmitResetsScratchEdits(t *testing.T) {
	s := New(0, nil)
	s.Submit("one")
	s.Up("")
	s.Submit("one changed")
	if got := s.Up(""); got != "one changed" {
		t.Fatalf("expected newest entry, got %q", got)
	}
	if got := s.Up(""); got != "one" {
		t.Fatalf("expected original history entry, got %q", got)
	}
}

func TestHistoryLimit(t *testing.T) {
	s := New(2, nil)
	s.Submit("a")
	s.Submit("b")
	s.Submit("c")
	h := s.History()
	if len(h) != 2 || h[0] != "b" || h[1] != "c" {
		t.Fatalf("expected trimmed history, got %#v", h)
	}
	if s.Cursor() != 2 {
		t.Fatalf("expected cursor at edit slot, got %d", s.Cursor())
	}
}

func TestClearKeepsHistory(t *testing.T) {
	s := New(0, nil)
	s.Submit("a")
	before := s.Version()
	s.Clear()
	if len(s.Lines()) != 0 {
		t.Fatalf("expected empty scrollback")
	}
	if s.Version() == before {
		t.Fatalf("expected version bump on clear")
	}
	if len(s.History()) != 1 {
		t.Fatalf("expected history preserved")
	}
}
