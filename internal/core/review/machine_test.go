package review

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deckrev/deckrev/internal/core/deck"
)

var fieldKey = deck.ItemKey{Kind: deck.ItemField, ID: 11}

func TestMachineBeginGuardsPending(t *testing.T) {
	m := NewMachine(5 * time.Second)
	now := time.Now()

	token, ok := m.Begin(fieldKey, now)
	require.True(t, ok)
	assert.Equal(t, StatusPending, m.Status(fieldKey))

	// A second activation while pending is ignored.
	_, ok = m.Begin(fieldKey, now)
	assert.False(t, ok)

	// A different item is unaffected.
	otherKey := deck.ItemKey{Kind: deck.ItemTag, ID: 21}
	_, ok = m.Begin(otherKey, now)
	assert.True(t, ok)

	require.True(t, m.Complete(fieldKey, token, OutcomeAccepted, ""))
	assert.Equal(t, StatusAccepted, m.Status(fieldKey))
}

func TestMachineResolvedItemsRefuseNewActions(t *testing.T) {
	m := NewMachine(5 * time.Second)
	now := time.Now()

	token, _ := m.Begin(fieldKey, now)
	m.Complete(fieldKey, token, OutcomeDenied, "")

	_, ok := m.Begin(fieldKey, now)
	assert.False(t, ok)
}

func TestMachineStaleTokenDropped(t *testing.T) {
	m := NewMachine(5 * time.Second)
	now := time.Now()

	token, _ := m.Begin(fieldKey, now)
	assert.False(t, m.Complete(fieldKey, token+1, OutcomeAccepted, ""))
	assert.Equal(t, StatusPending, m.Status(fieldKey))
}

func TestMachineFailureReturnsToIdle(t *testing.T) {
	m := NewMachine(5 * time.Second)
	now := time.Now()

	token, _ := m.Begin(fieldKey, now)
	require.True(t, m.Complete(fieldKey, token, OutcomeFailed, "server error"))

	assert.Equal(t, StatusIdle, m.Status(fieldKey))
	assert.Equal(t, "server error", m.FailReason(fieldKey))

	// The control re-enables after a failure.
	_, ok := m.Begin(fieldKey, now)
	assert.True(t, ok)
	assert.Empty(t, m.FailReason(fieldKey))
}

func TestMachineFailsafeSweep(t *testing.T) {
	m := NewMachine(5 * time.Second)
	start := time.Now()

	token, _ := m.Begin(fieldKey, start)

	// Inside the window nothing moves.
	assert.Empty(t, m.SweepStale(start.Add(4*time.Second)))
	assert.Equal(t, StatusPending, m.Status(fieldKey))

	reset := m.SweepStale(start.Add(5 * time.Second))
	require.Equal(t, []deck.ItemKey{fieldKey}, reset)
	assert.Equal(t, StatusIdle, m.Status(fieldKey))

	// The late response lands as a no-op: the sweep bumped the token.
	assert.False(t, m.Complete(fieldKey, token, OutcomeAccepted, ""))
	assert.Equal(t, StatusIdle, m.Status(fieldKey))

	// And the control accepts a fresh action.
	token2, ok := m.Begin(fieldKey, start.Add(6*time.Second))
	require.True(t, ok)
	assert.Greater(t, token2, token)
}
