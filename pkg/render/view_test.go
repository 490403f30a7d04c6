package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taigrr/orbit/pkg/camera"
	"github.com/taigrr/orbit/pkg/math3d"
)

var _ camera.OverlayRenderer = (*View)(nil)

func TestViewProjectsCenter(t *testing.T) {
	v := NewView(100, 50)
	v.ApplyView(math3d.V3(0, 0, 10), math3d.Zero3(), math3d.UnitY())

	x, y, _, ok := v.WorldToScreen(math3d.Zero3())
	require.True(t, ok)
	assert.InDelta(t, 50, x, 1e-9)
	assert.InDelta(t, 25, y, 1e-9)

	// Up on screen is smaller y.
	_, y, _, ok = v.WorldToScreen(math3d.V3(0, 1, 0))
	require.True(t, ok)
	assert.Less(t, y, 25.0)

	_, _, _, ok = v.WorldToScreen(math3d.V3(0, 0, 20))
	assert.False(t, ok)
	assert.Equal(t, math3d.V3(0, 0, 10), v.Eye())
}

func TestViewOverlayIsSymmetric(t *testing.T) {
	v := NewView(80, 40)
	v.ApplyView(math3d.V3(3, 4, 5), math3d.Zero3(), math3d.UnitY())
	before := v.ViewProjection()

	v.BeginOverlay()
	assert.True(t, v.Overlay())
	assert.False(t, v.Lighting())

	x, y, _, ok := v.WorldToScreen(math3d.V3(20, 10, 0))
	require.True(t, ok)
	assert.InDelta(t, 20, x, 1e-9)
	assert.InDelta(t, 10, y, 1e-9)

	v.EndOverlay()
	assert.False(t, v.Overlay())
	assert.True(t, v.Lighting())
	assert.Equal(t, before, v.ViewProjection())

	// Unbalanced EndOverlay is ignored.
	v.EndOverlay()
	assert.Equal(t, before, v.ViewProjection())
}

func TestViewOverlayRestoresLightingFlag(t *testing.T) {
	v := NewView(10, 10)
	v.SetLighting(false)
	v.BeginOverlay()
	v.EndOverlay()
	assert.False(t, v.Lighting())
}

func TestViewDrivenByController(t *testing.T) {
	v := NewView(64, 64)
	ctrl := camera.New(camera.WithRenderer(v), camera.WithDistance(10))
	ctrl.Update()

	assert.InDelta(t, 10, v.Eye().Z, 1e-9)
	x, y, _, ok := v.WorldToScreen(math3d.Zero3())
	require.True(t, ok)
	assert.InDelta(t, 32, x, 1e-9)
	assert.InDelta(t, 32, y, 1e-9)

	ctrl.BeginHUD()
	assert.True(t, v.Overlay())
	ctrl.EndHUD()
	assert.False(t, v.Overlay())
}
