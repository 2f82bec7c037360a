package stopwatch

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTracker_StartStop(t *testing.T) {
	tr := NewTracker()
	current := time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC)
	tr.now = func() time.Time { return current }

	require.NoError(t, tr.Start("emp-1"))
	assert.ErrorIs(t, tr.Start("emp-1"), ErrAlreadyRunning)

	current = current.Add(90 * time.Minute)

	elapsed, err := tr.Elapsed("emp-1")
	require.NoError(t, err)
	assert.Equal(t, 90*time.Minute, elapsed)

	hours, err := tr.Stop("emp-1")
	require.NoError(t, err)
	assert.InDelta(t, 1.5, hours, 1e-9)

	_, err = tr.Stop("emp-1")
	assert.ErrorIs(t, err, ErrNotRunning)
}

func TestTracker_Discard(t *testing.T) {
	tr := NewTracker()
	require.NoError(t, tr.Start("emp-1"))
	tr.Discard("emp-1")
	_, err := tr.Elapsed("emp-1")
	assert.ErrorIs(t, err, ErrNotRunning)

	// Discard on an idle tracker is a no-op.
	tr.Discard("emp-2")
}

func TestTracker_IndependentEmployees(t *testing.T) {
	tr := NewTracker()
	require.NoError(t, tr.Start("emp-1"))
	require.NoError(t, tr.Start("emp-2"))

	_, err := tr.Stop("emp-1")
	require.NoError(t, err)

	_, err = tr.Elapsed("emp-2")
	assert.NoError(t, err)
}
