package scan

import (
	"testing"
	"time"
)

func feed(s *Session, keys ...string) {
	for _, k := range keys {
		s.Key(k, false)
	}
}

func TestAccumulateAndDispatch(t *testing.T) {
	var got []string
	s := NewSession(0, func(tok string) { got = append(got, tok) })

	feed(s, "0", "0", "7")
	tok, ok := s.Key(Terminator, false)
	if !ok || tok != "007" {
		t.Fatalf("tok=%q ok=%v", tok, ok)
	}
	if len(got) != 1 || got[0] != "007" {
		t.Fatalf("dispatched %v", got)
	}
	if s.Pending() != "" {
		t.Fatalf("buffer not cleared: %q", s.Pending())
	}
}

func TestIgnoredWhileTextFieldFocused(t *testing.T) {
	s := NewSession(0, nil)
	s.Key("a", true)
	s.Key("b", true)
	if s.Pending() != "" {
		t.Fatalf("buffer = %q, want empty", s.Pending())
	}
	// focused Enter must not flush either
	s.Key("c", false)
	if tok, ok := s.Key(Terminator, true); ok || tok != "" {
		t.Fatalf("flushed while focused: %q", tok)
	}
	if s.Pending() != "c" {
		t.Fatalf("buffer = %q, want %q", s.Pending(), "c")
	}
}

func TestModifierKeysFallThrough(t *testing.T) {
	s := NewSession(0, nil)
	feed(s, "Shift", "C", "Control", "a", "ArrowLeft", "t")
	if s.Pending() != "Cat" {
		t.Fatalf("buffer = %q", s.Pending())
	}
}

func TestTokenTrimmedAndEmptyFlushDropped(t *testing.T) {
	s := NewSession(0, nil)
	feed(s, " ", "0", "7", " ")
	tok, ok := s.Key(Terminator, false)
	if !ok || tok != "07" {
		t.Fatalf("tok=%q ok=%v", tok, ok)
	}
	if _, ok := s.Key(Terminator, false); ok {
		t.Fatal("empty buffer must not dispatch")
	}
}

func TestStaleBufferExpires(t *testing.T) {
	clock := time.Now()
	s := NewSession(100*time.Millisecond, nil)
	s.now = func() time.Time { return clock }

	feed(s, "0", "0")
	clock = clock.Add(time.Second)
	s.Key("7", false)
	tok, ok := s.Key(Terminator, false)
	if !ok || tok != "7" {
		t.Fatalf("tok=%q ok=%v, stale prefix should have been dropped", tok, ok)
	}
}

func TestThaiRunesAccumulate(t *testing.T) {
	s := NewSession(0, nil)
	feed(s, "แ", "ฟ", "ะ", "ฟ", "ื")
	tok, ok := s.Key(Terminator, false)
	if !ok || tok != "แฟะฟื" {
		t.Fatalf("tok=%q ok=%v", tok, ok)
	}
}
