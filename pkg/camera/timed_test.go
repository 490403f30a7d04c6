package camera

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taigrr/orbit/pkg/math3d"
)

type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

type progressLog struct {
	values []float64
}

func (p *progressLog) record(_, _ float64, t float64) {
	p.values = append(p.values, t)
}

func (p *progressLog) last() float64 {
	return p.values[len(p.values)-1]
}

func TestTimedChannelZeroDuration(t *testing.T) {
	for _, d := range []time.Duration{0, -time.Second} {
		var log progressLog
		ch := NewTimedChannel(newFakeClock().Now, log.record)

		ch.Start(1, 2, d)

		require.Len(t, log.values, 1)
		assert.Equal(t, 1.0, log.values[0])
		assert.False(t, ch.Active())
		assert.False(t, ch.Update())
	}
}

func TestTimedChannelFullDuration(t *testing.T) {
	clk := newFakeClock()
	var log progressLog
	ch := NewTimedChannel(clk.Now, log.record)

	ch.Start(0, 10, time.Second)
	assert.True(t, ch.Active())
	assert.Empty(t, log.values)

	clk.Advance(time.Second)
	assert.True(t, ch.Update())
	assert.Equal(t, 1.0, log.last())
	assert.False(t, ch.Active())
	assert.Equal(t, 10.0, ch.Target())
}

func TestTimedChannelEasedProgress(t *testing.T) {
	clk := newFakeClock()
	var log progressLog
	ch := NewTimedChannel(clk.Now, log.record)
	ch.Start(0, 1, 100*time.Millisecond)

	for range 9 {
		clk.Advance(10 * time.Millisecond)
		require.True(t, ch.Update())
	}

	require.Len(t, log.values, 9)
	for i, v := range log.values {
		raw := float64(i+1) / 10
		assert.InDelta(t, math3d.Smootherstep(raw), v, 1e-12)
		if i > 0 {
			assert.Greater(t, v, log.values[i-1])
		}
	}
	assert.True(t, ch.Active())
}

func TestTimedChannelSnapsNearEnd(t *testing.T) {
	clk := newFakeClock()
	var log progressLog
	ch := NewTimedChannel(clk.Now, log.record)
	ch.Start(0, 1, time.Second)

	clk.Advance(996 * time.Millisecond)
	ch.Update()
	assert.Equal(t, 1.0, log.last())
	assert.False(t, ch.Active())
}

func TestTimedChannelStopIsSilent(t *testing.T) {
	clk := newFakeClock()
	var log progressLog
	ch := NewTimedChannel(clk.Now, log.record)
	ch.Start(0, 1, time.Second)

	ch.Stop()
	clk.Advance(time.Second)
	assert.False(t, ch.Update())
	assert.Empty(t, log.values)
}

func TestTimedChannelSuppressesMomentum(t *testing.T) {
	a := NewDampedChannel(0.85, nil)
	b := NewDampedChannel(0.85, nil)
	a.AddForce(5)
	b.AddForce(-5)

	ch := NewTimedChannel[float64](newFakeClock().Now, nil)
	ch.Start(0, 1, time.Second, a, nil, b)

	assert.Zero(t, a.Value())
	assert.Zero(t, b.Value())
}
