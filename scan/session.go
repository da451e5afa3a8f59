// Package scan turns raw keystroke events into discrete tokens. A physical
// scanner "types" the code and finishes with Enter, so the session is a
// small state machine: Idle -> Accumulating -> (Enter) -> Dispatch -> Idle.
package scan

import (
	"strings"
	"sync"
	"time"
	"unicode"
	"unicode/utf8"
)

// Terminator is the key that flushes the buffer.
const Terminator = "Enter"

// DefaultIdleGap clears a half-typed buffer: scanners burst keys within
// milliseconds, so anything older is stray human input.
const DefaultIdleGap = 3 * time.Second

// Dispatcher receives each completed, trimmed token.
type Dispatcher func(token string)

type Session struct {
	mu       sync.Mutex
	buf      []rune
	lastKey  time.Time
	idleGap  time.Duration
	dispatch Dispatcher

	now func() time.Time // test hook
}

func NewSession(idleGap time.Duration, dispatch Dispatcher) *Session {
	if idleGap <= 0 {
		idleGap = DefaultIdleGap
	}
	return &Session{idleGap: idleGap, dispatch: dispatch, now: time.Now}
}

// Key feeds one key event in. Events are ignored entirely while a
// text-input control has focus, so typing in a search box never leaks into
// the scan buffer. Returns the dispatched token, if this key completed one.
func (s *Session) Key(key string, textFieldFocused bool) (string, bool) {
	if textFieldFocused {
		return "", false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if len(s.buf) > 0 && now.Sub(s.lastKey) > s.idleGap {
		s.buf = s.buf[:0] // stale partial buffer
	}

	if key == Terminator {
		token := strings.TrimSpace(string(s.buf))
		s.buf = s.buf[:0]
		if token == "" {
			return "", false
		}
		if s.dispatch != nil {
			s.dispatch(token)
		}
		return token, true
	}

	// only printable single-character keys accumulate; modifiers and
	// navigation keys arrive as multi-rune names and fall through
	if utf8.RuneCountInString(key) == 1 {
		r, _ := utf8.DecodeRuneInString(key)
		if unicode.IsPrint(r) {
			s.buf = append(s.buf, r)
			s.lastKey = now
		}
	}
	return "", false
}

// Pending exposes the accumulating buffer, for diagnostics.
func (s *Session) Pending() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return string(s.buf)
}

// Reset drops any partial buffer, e.g. when the owning screen goes away.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buf = s.buf[:0]
}
