package round

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClock_NotStarted(t *testing.T) {
	c := NewClock(clockwork.NewFakeClock())

	elapsed, err := c.Elapsed()
	assert.ErrorIs(t, err, ErrClockNotStarted)
	assert.Zero(t, elapsed)
	assert.Equal(t, 5*time.Second, c.Remaining(5*time.Second))
	assert.False(t, c.Expired(time.Nanosecond))
	assert.False(t, c.Started())
}

func TestClock_ElapsedAndRemaining(t *testing.T) {
	fake := clockwork.NewFakeClock()
	c := NewClock(fake)
	c.Start()

	fake.Advance(1500 * time.Millisecond)
	elapsed, err := c.Elapsed()
	require.NoError(t, err)
	assert.Equal(t, 1500*time.Millisecond, elapsed)
	assert.Equal(t, 3500*time.Millisecond, c.Remaining(5*time.Second))
	assert.False(t, c.Expired(5*time.Second))

	fake.Advance(4 * time.Second)
	assert.Zero(t, c.Remaining(5*time.Second), "remaining clamps at zero")
	assert.True(t, c.Expired(5*time.Second))
}

func TestClock_StartIsIdempotent(t *testing.T) {
	fake := clockwork.NewFakeClock()
	c := NewClock(fake)
	c.Start()
	fake.Advance(time.Second)
	c.Start()

	elapsed, err := c.Elapsed()
	require.NoError(t, err)
	assert.Equal(t, time.Second, elapsed)
}

func TestClock_StopFreezes(t *testing.T) {
	fake := clockwork.NewFakeClock()
	c := NewClock(fake)
	c.Start()
	fake.Advance(2 * time.Second)
	c.Stop()
	fake.Advance(10 * time.Second)

	elapsed, err := c.Elapsed()
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, elapsed)
}

func TestClock_NeverDecreases(t *testing.T) {
	c := NewClock(clockwork.NewRealClock())
	c.Start()

	var prev time.Duration
	for i := 0; i < 1000; i++ {
		elapsed, err := c.Elapsed()
		require.NoError(t, err)
		assert.GreaterOrEqual(t, elapsed, prev)
		prev = elapsed
	}
}
