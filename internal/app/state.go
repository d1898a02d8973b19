package app

import (
	"fmt"
	"sort"
	"sync"

	"github.com/bft-labs/lakhbronze/internal/domain"
	"github.com/bft-labs/lakhbronze/pkg/log"
)

// State is the progress of one resource within a run.
type State int

const (
	StatePending State = iota
	StateRunning
	StateDone
	StateFailed
)

// String returns a human-readable representation of the state.
func (s State) String() string {
	switch s {
	case StatePending:
		return "Pending"
	case StateRunning:
		return "Running"
	case StateDone:
		return "Done"
	case StateFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// Terminal returns true if no further transitions are possible.
func (s State) Terminal() bool {
	return s == StateDone || s == StateFailed
}

// EventEmitter is called when a resource changes state.
type EventEmitter interface {
	OnStateChange(resource string, previous, current State, reason string)
}

// Tracker records the state of every resource in a run.
// It is safe for concurrent use.
type Tracker struct {
	mu      sync.RWMutex
	states  map[string]State
	logger  log.Logger
	emitter EventEmitter
}

// NewTracker creates a tracker. emitter may be nil.
func NewTracker(logger log.Logger, emitter EventEmitter) *Tracker {
	return &Tracker{
		states:  make(map[string]State),
		logger:  log.OrNoop(logger),
		emitter: emitter,
	}
}

// Register adds resource in StatePending.
// Returns ErrInvalidTransition if the resource is already tracked.
func (t *Tracker) Register(resource string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.states[resource]; ok {
		return fmt.Errorf("%w: %s registered twice", domain.ErrInvalidTransition, resource)
	}
	t.states[resource] = StatePending
	return nil
}

// State returns the current state of resource.
func (t *Tracker) State(resource string) (State, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	s, ok := t.states[resource]
	return s, ok
}

// TransitionTo moves resource to next.
// Pending may become Running or Failed; Running may become Done or Failed.
func (t *Tracker) TransitionTo(resource string, next State, reason string) error {
	t.mu.Lock()
	prev, ok := t.states[resource]
	if !ok {
		t.mu.Unlock()
		return fmt.Errorf("%w: %s is not registered", domain.ErrInvalidTransition, resource)
	}

	valid := false
	switch prev {
	case StatePending:
		valid = next == StateRunning || next == StateFailed
	case StateRunning:
		valid = next == StateDone || next == StateFailed
	}
	if !valid {
		t.mu.Unlock()
		return fmt.Errorf("%w: %s %v -> %v", domain.ErrInvalidTransition, resource, prev, next)
	}

	t.states[resource] = next
	t.mu.Unlock()

	// Emit event outside of lock
	if t.emitter != nil {
		t.emitter.OnStateChange(resource, prev, next, reason)
	}

	t.logger.Debug("resource state",
		log.String("resource", resource),
		log.String("from", prev.String()),
		log.String("to", next.String()),
		log.String("reason", reason),
	)
	return nil
}

// Snapshot returns the state of every resource, keyed by name.
func (t *Tracker) Snapshot() map[string]State {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make(map[string]State, len(t.states))
	for k, v := range t.states {
		out[k] = v
	}
	return out
}

// Pending returns the names of resources that have not reached a terminal state.
func (t *Tracker) Pending() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	var out []string
	for k, v := range t.states {
		if !v.Terminal() {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}
