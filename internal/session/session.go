package session

import (
	"sync"

	"github.com/Varun5711/autocare/internal/models/user"
)

// State is a snapshot of who is logged in. User and Token are always set and
// cleared together. Gen changes on every Set and Clear, including a re-login
// with the same token.
type State struct {
	User  *user.User
	Token string
	Gen   uint64
}

func (s State) Authenticated() bool {
	return s.User != nil && s.Token != ""
}

func (s State) Email() string {
	if s.User == nil {
		return ""
	}
	return s.User.Email
}

// Session is the process-wide session context. Components receive it
// explicitly and may subscribe to changes.
type Session struct {
	mu      sync.RWMutex
	state   State
	subs    map[int]func(State)
	nextSub int
	gen     uint64
}

func New() *Session {
	return &Session{
		subs: make(map[int]func(State)),
	}
}

func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Token
}

// Generation identifies the current state; see State.Gen.
func (s *Session) Generation() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Gen
}

func (s *Session) Authenticated() bool {
	return s.State().Authenticated()
}

// Set replaces the whole state; nothing from a previous login survives.
func (s *Session) Set(u *user.User, token string) {
	s.publish(State{User: u, Token: token})
}

func (s *Session) Clear() {
	s.publish(State{})
}

// Subscribe registers fn to be called after every change with the new state.
// Calls happen on the goroutine that changed the session, outside the lock.
func (s *Session) Subscribe(fn func(State)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *Session) publish(next State) {
	s.mu.Lock()
	s.gen++
	next.Gen = s.gen
	s.state = next
	subs := make([]func(State), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(next)
	}
}
