package presence

import (
	"context"
	"io"
	"log/slog"

	"github.com/dmitrymomot/presence/pkg/logger"
	"github.com/dmitrymomot/presence/pkg/statemachine"
)

// Machine applies claim and release rules on top of a Registry.
type Machine struct {
	registry *Registry
	log      *slog.Logger
}

// NewMachine returns a Machine over registry. A nil logger discards output.
func NewMachine(registry *Registry, log *slog.Logger) *Machine {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Machine{registry: registry, log: log}
}

// Registry returns the registry the machine operates on.
func (m *Machine) Registry() *Registry {
	return m.registry
}

// Claim takes a free username on behalf of id.SessionID, which becomes the
// holder. A username already held by anyone yields AlreadyTaken with no
// state change.
func (m *Machine) Claim(ctx context.Context, id Identity) (Outcome, *LiveSession, error) {
	username := id.Username
	s, err := m.registry.GetOrCreate(ctx, username)
	if err != nil {
		return 0, nil, err
	}

	err = s.fsm.Fire(ctx, EventClaim, id.SessionID)
	switch {
	case err == nil:
		m.log.InfoContext(ctx, "username claimed", logger.Username(username), logger.Outcome(ClaimedNew.String()))
		return ClaimedNew, s, nil
	case statemachine.IsNoTransitionAvailableError(err):
		m.log.DebugContext(ctx, "username taken", logger.Username(username), logger.Outcome(AlreadyTaken.String()))
		return AlreadyTaken, s, nil
	default:
		return 0, nil, err
	}
}

// Release frees the identity's username. It fails with ErrNotAuthenticated
// when the username is unknown, not claimed, or held by another session.
func (m *Machine) Release(ctx context.Context, id Identity) error {
	s, ok := m.registry.Lookup(id.Username)
	if !ok {
		return ErrNotAuthenticated
	}

	err := s.fsm.Fire(ctx, EventRelease, id.SessionID)
	if statemachine.IsNoTransitionAvailableError(err) || statemachine.IsTransitionRejectedError(err) {
		return ErrNotAuthenticated
	}
	if err != nil {
		return err
	}
	m.log.InfoContext(ctx, "username released", logger.Username(id.Username))
	return nil
}

// AlreadyAuthenticatedClaim answers a claim from a caller that already holds
// a username. Nothing is mutated.
func (m *Machine) AlreadyAuthenticatedClaim(id Identity, requested string) Outcome {
	if id.Username == requested {
		return AlreadyClaimedSame
	}
	return AlreadyClaimedOther
}

// IsClaimed reports whether username is claimed by anyone.
func (m *Machine) IsClaimed(username string) bool {
	s, ok := m.registry.Lookup(username)
	return ok && s.Active()
}

// HeldBy reports whether id is the session holding its username's claim.
func (m *Machine) HeldBy(id Identity) bool {
	s, ok := m.registry.Lookup(id.Username)
	return ok && s.HeldBy(id.SessionID)
}
