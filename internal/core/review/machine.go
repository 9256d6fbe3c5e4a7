// Package review drives the per-item accept/deny lifecycle of a commit
// review: the pending-state guard, completion handling, the failsafe
// that unsticks busy controls, and the model mutations each confirmed
// resolution applies.
package review

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/deckrev/deckrev/internal/core/deck"
	"github.com/deckrev/deckrev/internal/core/logging"
)

// Status is the lifecycle state of one suggestion item's action control.
type Status int

const (
	StatusIdle Status = iota
	StatusPending
	StatusAccepted
	StatusDenied
	StatusFailed
)

// String returns the status name for logs.
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusPending:
		return "pending"
	case StatusAccepted:
		return "accepted"
	case StatusDenied:
		return "denied"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Outcome is the confirmed result of an item action.
type Outcome int

const (
	OutcomeAccepted Outcome = iota
	OutcomeDenied
	OutcomeFailed
)

type itemState struct {
	status       Status
	token        uint64
	pendingSince time.Time
	failReason   string
}

// Machine serializes actions per item. The pending guard is the only
// ordering primitive: actions on different items may complete in any
// order, actions on the same item never overlap, and a response carrying
// a stale token is dropped so a late reply can never mutate a control
// the failsafe already reset.
type Machine struct {
	mu       sync.Mutex
	items    map[deck.ItemKey]*itemState
	failsafe time.Duration
	log      zerolog.Logger
}

// NewMachine creates a machine with the given failsafe window.
func NewMachine(failsafe time.Duration) *Machine {
	return &Machine{
		items:    make(map[deck.ItemKey]*itemState),
		failsafe: failsafe,
		log:      logging.Component("review"),
	}
}

// Begin marks the item pending and returns its request token. A repeated
// activation while the item is pending is silently ignored (ok false, no
// duplicate request); items already resolved also refuse.
func (m *Machine) Begin(key deck.ItemKey, now time.Time) (uint64, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	st := m.item(key)
	switch st.status {
	case StatusPending, StatusAccepted, StatusDenied:
		return 0, false
	}

	st.token++
	st.status = StatusPending
	st.pendingSince = now
	st.failReason = ""
	return st.token, true
}

// Complete applies a confirmed outcome. The transition happens only when
// the token is the item's current one and the item is still pending;
// anything else is a stale completion and is dropped.
func (m *Machine) Complete(key deck.ItemKey, token uint64, outcome Outcome, reason string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	st := m.item(key)
	if st.status != StatusPending || st.token != token {
		m.log.Debug().Stringer("item", key).Uint64("token", token).Msg("dropping stale completion")
		return false
	}

	switch outcome {
	case OutcomeAccepted:
		st.status = StatusAccepted
	case OutcomeDenied:
		st.status = StatusDenied
	case OutcomeFailed:
		// Failed -> Idle is the only outward edge; the control re-enables.
		st.status = StatusIdle
		st.failReason = reason
	}
	return true
}

// SweepStale force-resets every item pending longer than the failsafe
// window back to idle, bumping its token so the in-flight response (which
// is never actively cancelled) lands as a no-op. Returns the reset keys.
func (m *Machine) SweepStale(now time.Time) []deck.ItemKey {
	m.mu.Lock()
	defer m.mu.Unlock()

	var reset []deck.ItemKey
	for key, st := range m.items {
		if st.status == StatusPending && now.Sub(st.pendingSince) >= m.failsafe {
			st.status = StatusIdle
			st.token++
			st.failReason = "timed out"
			reset = append(reset, key)
			m.log.Warn().Stringer("item", key).Msg("failsafe reset of busy control")
		}
	}
	return reset
}

// Status returns the item's current lifecycle state.
func (m *Machine) Status(key deck.ItemKey) Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	if st, ok := m.items[key]; ok {
		return st.status
	}
	return StatusIdle
}

// FailReason returns the last failure note for an idle control, empty
// when the last attempt did not fail.
func (m *Machine) FailReason(key deck.ItemKey) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if st, ok := m.items[key]; ok {
		return st.failReason
	}
	return ""
}

func (m *Machine) item(key deck.ItemKey) *itemState {
	st, ok := m.items[key]
	if !ok {
		st = &itemState{}
		m.items[key] = st
	}
	return st
}
