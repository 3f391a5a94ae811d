// Package gate enforces the linear cart -> checkout -> payment -> ticket
// funnel with single-use, per-session flags. A flag is set when the shopper
// completes the preceding step and consumed (read-once, then cleared) by the
// following view's access check, so a reload or back-navigation cannot
// replay the gate. Gate state does not survive the session.
package gate

import (
	"context"
	"sync"
)

type Step string

const (
	// StepCheckout proves the shopper came through the cart.
	StepCheckout Step = "fromCart"
	// StepTicket proves the shopper came through the payment view.
	StepTicket Step = "fromPayment"
)

type Gate interface {
	MarkPassed(ctx context.Context, session string, step Step) error
	// CheckAndConsume returns true at most once per MarkPassed call;
	// consuming always clears the flag.
	CheckAndConsume(ctx context.Context, session string, step Step) (bool, error)
}

// Memory is an in-process Gate for tests and single-node setups.
type Memory struct {
	mu    sync.Mutex
	flags map[string]map[Step]bool
}

func NewMemory() *Memory {
	return &Memory{flags: make(map[string]map[Step]bool)}
}

func (m *Memory) MarkPassed(_ context.Context, session string, step Step) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.flags[session] == nil {
		m.flags[session] = make(map[Step]bool)
	}
	m.flags[session][step] = true
	return nil
}

func (m *Memory) CheckAndConsume(_ context.Context, session string, step Step) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	set := m.flags[session][step]
	if set {
		delete(m.flags[session], step)
	}
	return set, nil
}
