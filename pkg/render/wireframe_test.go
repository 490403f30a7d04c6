package render

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taigrr/orbit/pkg/math3d"
	"github.com/taigrr/orbit/pkg/models"
)

var _ MeshRenderer = (*models.Mesh)(nil)

func countPixels(fb *Framebuffer, c Color) int {
	n := 0
	for _, p := range fb.Pixels {
		if p == c {
			n++
		}
	}
	return n
}

func newTestScene(w, h int) (*View, *Framebuffer, *Wireframe) {
	v := NewView(w, h)
	v.ApplyView(math3d.V3(0, 0, 10), math3d.Zero3(), math3d.UnitY())
	fb := NewFramebuffer(w, h)
	return v, fb, NewWireframe(v, fb)
}

func TestClipSegment(t *testing.T) {
	tests := []struct {
		name           string
		x1, y1, x2, y2 float64
		ok             bool
		want           [4]float64
	}{
		{"inside", 1, 1, 5, 5, true, [4]float64{1, 1, 5, 5}},
		{"crosses right", 5, 5, 15, 5, true, [4]float64{5, 5, 9, 5}},
		{"crosses both", -10, 5, 20, 5, true, [4]float64{0, 5, 9, 5}},
		{"outside above", 0, -3, 9, -1, false, [4]float64{}},
		{"outside left vertical", -1, 0, -1, 9, false, [4]float64{}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			x1, y1, x2, y2, ok := clipSegment(tc.x1, tc.y1, tc.x2, tc.y2, 9, 9)
			assert.Equal(t, tc.ok, ok)
			if ok {
				assert.InDeltaSlice(t, tc.want[:], []float64{x1, y1, x2, y2}, 1e-9)
			}
		})
	}
}

func TestDrawLine3DHorizontal(t *testing.T) {
	_, fb, w := newTestScene(40, 40)
	w.DrawLine3D(math3d.V3(-1, 0, 0), math3d.V3(1, 0, 0), ColorWhite)

	n := countPixels(fb, ColorWhite)
	assert.Greater(t, n, 2)
	assert.Equal(t, ColorWhite, fb.GetPixel(20, 20))
}

func TestDrawLine3DBehindCamera(t *testing.T) {
	_, fb, w := newTestScene(40, 40)
	w.DrawLine3D(math3d.V3(-1, 0, 20), math3d.V3(1, 0, 20), ColorWhite)
	assert.Zero(t, countPixels(fb, ColorWhite))

	// Half behind the eye: only the visible part is drawn.
	w.DrawLine3D(math3d.V3(0, 0, 0), math3d.V3(0, 0, 30), ColorWhite)
	assert.Greater(t, countPixels(fb, ColorWhite), 0)
}

func TestDrawMeshCulls(t *testing.T) {
	_, fb, w := newTestScene(40, 40)

	cube := models.NewCube(2)
	assert.True(t, w.DrawMesh(cube, ColorGreen))
	assert.Greater(t, countPixels(fb, ColorGreen), 0)

	away := models.NewCube(2)
	away.Transform(math3d.Translate(math3d.V3(0, 0, 50)))
	assert.False(t, w.DrawMesh(away, ColorRed))
	assert.Zero(t, countPixels(fb, ColorRed))
}

func TestDrawRectInOverlay(t *testing.T) {
	v, fb, w := newTestScene(20, 20)
	v.BeginOverlay()
	w.DrawRect(2, 2, 10, 5, ColorWhite)
	v.EndOverlay()

	assert.Equal(t, ColorWhite, fb.GetPixel(2, 2))
	assert.Equal(t, ColorWhite, fb.GetPixel(12, 7))
	assert.Equal(t, ColorWhite, fb.GetPixel(7, 2))
	assert.NotEqual(t, ColorWhite, fb.GetPixel(7, 4))
}

func TestFogOnlyWhenLit(t *testing.T) {
	v, fb, w := newTestScene(40, 40)
	w.FogDistance = 1
	w.DrawLine3D(math3d.V3(-1, 0, 0), math3d.V3(1, 0, 0), ColorWhite)
	assert.Zero(t, countPixels(fb, ColorWhite))

	v.SetLighting(false)
	w.DrawLine3D(math3d.V3(-1, 0, 0), math3d.V3(1, 0, 0), ColorWhite)
	assert.Greater(t, countPixels(fb, ColorWhite), 0)
}

func TestDrawGridAndAxes(t *testing.T) {
	v, fb, w := newTestScene(60, 60)
	v.ApplyView(math3d.V3(0, 10, 10), math3d.Zero3(), math3d.UnitY())
	w.DrawGrid(4, 1, ColorGray)
	w.DrawAxes(2)

	assert.Greater(t, countPixels(fb, ColorGray), 0)
	assert.Greater(t, countPixels(fb, ColorRed), 0)
	assert.Greater(t, countPixels(fb, ColorGreen), 0)
}

func TestSavePNG(t *testing.T) {
	fb := NewFramebuffer(4, 4)
	fb.Clear(RGB(1, 2, 3))
	img := fb.ToImage()
	assert.Equal(t, RGB(1, 2, 3), img.RGBAAt(3, 3))

	assert.NoError(t, fb.SavePNG(t.TempDir()+"/snap.png"))
}
