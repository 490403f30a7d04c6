package camera

import (
	"math"
	"testing"

	"github.com/charmbracelet/harmonica"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDampedChannelDecay(t *testing.T) {
	var seen []float64
	d := NewDampedChannel(0.5, func(v float64) { seen = append(seen, v) })
	d.AddForce(1)

	for d.Update() {
		require.Less(t, len(seen), 100, "channel never came to rest")
	}

	// 0.5^9 is the last value above the 1e-3 magnitude threshold.
	require.Len(t, seen, 10)
	for i := 1; i < len(seen); i++ {
		assert.InDelta(t, seen[i-1]*0.5, seen[i], 1e-12)
	}
	assert.Zero(t, d.Value())
	assert.False(t, d.Active())
}

func TestDampedChannelRestIsExactZero(t *testing.T) {
	calls := 0
	d := NewDampedChannel(0.85, func(float64) { calls++ })
	d.AddForce(0.0005)

	assert.False(t, d.Update())
	assert.Zero(t, calls)
	assert.Zero(t, d.Value())
}

func TestDampedChannelAccumulates(t *testing.T) {
	d := NewDampedChannel(0.85, nil)
	d.AddForce(3)
	d.AddForce(-1)
	assert.Equal(t, 2.0, d.Value())

	assert.True(t, d.Update())
	assert.InDelta(t, 1.7, d.Value(), 1e-12)

	d.Stop()
	assert.Zero(t, d.Value())
	assert.False(t, d.Update())
}

func TestDampedChannelDampingClamp(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"negative", -1, 0},
		{"in range", 0.5, 0.5},
		{"one", 1, maxDamping},
		{"above one", 3, maxDamping},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDampedChannel(tt.in, nil)
			assert.Equal(t, tt.want, d.Damping())
		})
	}
}

func TestDampedChannelSpringDecay(t *testing.T) {
	s := harmonica.NewSpring(harmonica.FPS(60), 6, 1)
	d := NewDampedChannel(0.85, nil)
	d.UseSpring(&s)
	d.AddForce(10)

	prev := d.Value()
	frames := 0
	for d.Update() {
		frames++
		require.Less(t, frames, 2000)
		assert.LessOrEqual(t, d.Value(), prev)
		assert.GreaterOrEqual(t, d.Value(), 0.0)
		prev = d.Value()
	}
	assert.Zero(t, d.Value())

	d.UseSpring(nil)
	d.AddForce(1)
	d.Update()
	assert.InDelta(t, 0.85, d.Value(), 1e-12)
}

func TestDampedChannelDropsNonFiniteForce(t *testing.T) {
	d := NewDampedChannel(0.5, nil)
	d.AddForce(2)
	for _, f := range []float64{math.Inf(1), math.Inf(-1), math.NaN()} {
		d.AddForce(f)
		assert.Equal(t, 2.0, d.Value())
	}
	for range 100 {
		if !d.Update() {
			break
		}
	}
	assert.False(t, d.Active())
}
