package presence

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrymomot/presence/internal/store"
	"github.com/dmitrymomot/presence/pkg/statemachine"
)

var (
	StateFree    = statemachine.StringState("free")
	StateClaimed = statemachine.StringState("claimed")

	EventClaim   = statemachine.StringEvent("claim")
	EventRelease = statemachine.StringEvent("release")
)

// LiveSession is the process-wide record for one username. While claimed it
// remembers the session that holds the claim.
type LiveSession struct {
	username string
	fsm      statemachine.StateMachine

	mu     sync.RWMutex
	holder string
}

func newLiveSession(rec store.Record, st store.Store) *LiveSession {
	initial := StateFree
	if rec.Claimed {
		initial = StateClaimed
	}

	s := &LiveSession{username: rec.Username}

	// Actions run under the FSM lock, so the holder changes together with the state.
	persist := func(claimed bool) statemachine.Action {
		return func(ctx context.Context, _, _ statemachine.State, _ statemachine.Event, data any) error {
			if err := st.SetClaimed(ctx, rec.Username, claimed); err != nil {
				return errors.Join(ErrPersist, err)
			}
			holder, _ := data.(string)
			if !claimed {
				holder = ""
			}
			s.setHolder(holder)
			return nil
		}
	}
	heldBy := func(_ context.Context, _ statemachine.State, _ statemachine.Event, data any) bool {
		holder, _ := data.(string)
		return holder == s.Holder()
	}

	s.fsm = statemachine.MustNew(initial,
		statemachine.WithTransition(StateFree, StateClaimed, EventClaim, statemachine.WithAction(persist(true))),
		statemachine.WithTransition(StateClaimed, StateFree, EventRelease,
			statemachine.WithGuard(heldBy),
			statemachine.WithAction(persist(false)),
		),
	)
	return s
}

// Username returns the username this record tracks.
func (s *LiveSession) Username() string {
	return s.username
}

// Active reports whether the username is claimed right now.
func (s *LiveSession) Active() bool {
	return s.fsm.Is(StateClaimed)
}

// Holder returns the session ID holding the claim, or "" when free or when
// the claim predates this process.
func (s *LiveSession) Holder() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.holder
}

// HeldBy reports whether sessionID currently holds the claim.
func (s *LiveSession) HeldBy(sessionID string) bool {
	return sessionID != "" && s.Active() && s.Holder() == sessionID
}

func (s *LiveSession) setHolder(holder string) {
	s.mu.Lock()
	s.holder = holder
	s.mu.Unlock()
}

// View is a point-in-time copy of a LiveSession.
type View struct {
	Username string `json:"username" yaml:"username"`
	Active   bool   `json:"active" yaml:"active"`
}
