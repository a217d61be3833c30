package statemachine

import (
	"context"
	"errors"
	"sync"
)

type edgeKey struct {
	from  string
	event string
}

// Machine is the default in-memory StateMachine.
type Machine struct {
	mu      sync.RWMutex
	initial State
	current State
	edges   map[edgeKey][]Transition
}

func newMachine(initial State) *Machine {
	return &Machine{
		initial: initial,
		current: initial,
		edges:   make(map[edgeKey][]Transition),
	}
}

func (m *Machine) Current() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Is reports whether the machine is currently in state.
func (m *Machine) Is(state State) bool {
	if state == nil {
		return false
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current.Name() == state.Name()
}

func (m *Machine) AddTransition(from, to State, event Event, guards []Guard, actions []Action) error {
	if from == nil || to == nil || event == nil {
		return ErrInvalidTransition
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	k := edgeKey{from: from.Name(), event: event.Name()}
	// Several edges per key are allowed; the first one whose guards pass wins.
	m.edges[k] = append(m.edges[k], Transition{
		From:    from,
		To:      to,
		Event:   event,
		Guards:  guards,
		Actions: actions,
	})
	return nil
}

// Fire applies event to the current state. Guards, actions and the state change
// all happen under the machine's write lock.
func (m *Machine) Fire(ctx context.Context, event Event, data any) error {
	if event == nil {
		return ErrInvalidEvent
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	t, err := m.pick(ctx, event, data)
	if err != nil {
		return err
	}

	for _, action := range t.Actions {
		if action == nil {
			continue
		}
		if err := action(ctx, m.current, t.To, event, data); err != nil {
			return errors.Join(ErrActionFailed, err)
		}
	}

	m.current = t.To
	return nil
}

func (m *Machine) CanFire(ctx context.Context, event Event, data any) bool {
	if event == nil {
		return false
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	_, err := m.pick(ctx, event, data)
	return err == nil
}

func (m *Machine) Reset() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = m.initial
	return nil
}

// pick must be called with m.mu held.
func (m *Machine) pick(ctx context.Context, event Event, data any) (*Transition, error) {
	from := m.current.Name()
	candidates := m.edges[edgeKey{from: from, event: event.Name()}]
	if len(candidates) == 0 {
		return nil, &NoTransitionAvailableError{StateName: from, EventName: event.Name()}
	}

	for i := range candidates {
		if guardsPass(ctx, candidates[i].Guards, m.current, event, data) {
			return &candidates[i], nil
		}
	}

	return nil, &TransitionRejectedError{StateName: from, EventName: event.Name()}
}

func guardsPass(ctx context.Context, guards []Guard, from State, event Event, data any) bool {
	for _, g := range guards {
		if g != nil && !g(ctx, from, event, data) {
			return false
		}
	}
	return true
}
