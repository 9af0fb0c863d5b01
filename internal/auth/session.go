package auth

import (
	"context"
	"sync"

	pkgerrors "github.com/tahweela/tahweela-backend/pkg/errors"
)

// ProfileStore persists profile updates for a Session.
type ProfileStore interface {
	Update(ctx context.Context, id string, upd ProfileUpdate) (User, error)
}

// Session tracks one principal's auth state and fans changes out to subscribers.
// It starts loading and unauthenticated.
type Session struct {
	mu       sync.Mutex
	state    State
	profiles ProfileStore
	subs     map[int]func(State)
	nextSub  int
}

func NewSession(profiles ProfileStore) *Session {
	return &Session{
		state:    State{IsLoading: true},
		profiles: profiles,
		subs:     make(map[int]func(State)),
	}
}

// State returns a copy of the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyState(s.state)
}

// Subscribe registers fn and immediately calls it with the current state.
// The returned function removes the subscription and is safe to call twice.
func (s *Session) Subscribe(fn func(State)) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	current := copyState(s.state)
	s.mu.Unlock()

	fn(current)
	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *Session) Login(ctx context.Context, user User) {
	s.set(State{User: &user, IsAuthenticated: true})
}

func (s *Session) Logout(ctx context.Context) {
	s.set(State{})
}

// UpdateProfile never returns an error; failures are reported in the Result.
func (s *Session) UpdateProfile(ctx context.Context, upd ProfileUpdate) Result {
	current := s.State()
	if !current.IsAuthenticated || current.User == nil {
		return Result{Error: "not authenticated"}
	}
	if s.profiles == nil {
		return Result{Error: "profile updates unavailable"}
	}
	updated, err := s.profiles.Update(ctx, current.User.ID, upd)
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return Result{Error: typed.Message()}
		}
		return Result{Error: err.Error()}
	}
	s.set(State{User: &updated, IsAuthenticated: true})
	return Result{Success: true, User: &updated}
}

func (s *Session) set(next State) {
	s.mu.Lock()
	s.state = next
	subs := make([]func(State), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(copyState(next))
	}
}

func copyState(st State) State {
	if st.User != nil {
		u := *st.User
		st.User = &u
	}
	return st
}
