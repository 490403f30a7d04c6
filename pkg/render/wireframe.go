package render

import (
	"github.com/taigrr/orbit/pkg/math3d"
)

// MeshRenderer is the geometry the wireframe renderer can draw.
type MeshRenderer interface {
	Position(i int) math3d.Vec3
	Edges() [][2]int
	GetBounds() (min, max math3d.Vec3)
}

// Wireframe draws lines through a View into a Framebuffer.
type Wireframe struct {
	view *View
	fb   *Framebuffer

	// FogDistance darkens lines with view depth while lighting is on.
	// Zero disables the effect.
	FogDistance float64
}

// NewWireframe creates a new wireframe renderer.
func NewWireframe(view *View, fb *Framebuffer) *Wireframe {
	return &Wireframe{view: view, fb: fb}
}

// SetTarget swaps the framebuffer, e.g. after a resize.
func (w *Wireframe) SetTarget(fb *Framebuffer) {
	w.fb = fb
}

// DrawLine3D draws a world-space line. Segments are clipped against the near
// plane and then against the framebuffer.
func (w *Wireframe) DrawLine3D(p1, p2 math3d.Vec3, color Color) {
	vp := w.view.ViewProjection()
	c1 := vp.MulVec4(math3d.V4FromV3(p1, 1))
	c2 := vp.MulVec4(math3d.V4FromV3(p2, 1))

	near := w.view.near
	if c1.W < near && c2.W < near {
		return
	}
	if c1.W < near {
		c1 = lerp4(c1, c2, (near-c1.W)/(c2.W-c1.W))
	} else if c2.W < near {
		c2 = lerp4(c2, c1, (near-c2.W)/(c1.W-c2.W))
	}

	x1, y1, _ := w.view.ToScreen(c1)
	x2, y2, _ := w.view.ToScreen(c2)
	x1, y1, x2, y2, ok := clipSegment(x1, y1, x2, y2, float64(w.fb.Width-1), float64(w.fb.Height-1))
	if !ok {
		return
	}

	if w.view.Lighting() && w.FogDistance > 0 {
		color = fog(color, (c1.W+c2.W)/2/w.FogDistance)
	}
	w.fb.DrawLine(int(x1+0.5), int(y1+0.5), int(x2+0.5), int(y2+0.5), color)
}

// DrawMesh draws every edge of mesh. It returns false when the mesh bounds
// are outside the view.
func (w *Wireframe) DrawMesh(mesh MeshRenderer, color Color) bool {
	lo, hi := mesh.GetBounds()
	if !w.view.Frustum().IntersectsAABB(AABB{Min: lo, Max: hi}) {
		return false
	}
	for _, e := range mesh.Edges() {
		w.DrawLine3D(mesh.Position(e[0]), mesh.Position(e[1]), color)
	}
	return true
}

// DrawAxes draws the coordinate axes at the origin.
func (w *Wireframe) DrawAxes(length float64) {
	origin := math3d.Zero3()
	w.DrawLine3D(origin, math3d.V3(length, 0, 0), ColorRed)
	w.DrawLine3D(origin, math3d.V3(0, length, 0), ColorGreen)
	w.DrawLine3D(origin, math3d.V3(0, 0, length), ColorBlue)
}

// DrawGrid draws a grid on the XZ plane at y=0.
func (w *Wireframe) DrawGrid(size, step float64, color Color) {
	if step <= 0 {
		return
	}
	half := size / 2
	n := int(size / step)
	for i := 0; i <= n; i++ {
		o := -half + float64(i)*step
		w.DrawLine3D(math3d.V3(o, 0, -half), math3d.V3(o, 0, half), color)
		w.DrawLine3D(math3d.V3(-half, 0, o), math3d.V3(half, 0, o), color)
	}
}

// DrawRect draws a rectangle outline. In overlay mode the coordinates are
// framebuffer pixels.
func (w *Wireframe) DrawRect(x, y, width, height float64, color Color) {
	a := math3d.V3(x, y, 0)
	b := math3d.V3(x+width, y, 0)
	c := math3d.V3(x+width, y+height, 0)
	d := math3d.V3(x, y+height, 0)
	w.DrawLine3D(a, b, color)
	w.DrawLine3D(b, c, color)
	w.DrawLine3D(c, d, color)
	w.DrawLine3D(d, a, color)
}

func lerp4(a, b math3d.Vec4, t float64) math3d.Vec4 {
	return math3d.Vec4{
		X: math3d.Mix(a.X, b.X, t),
		Y: math3d.Mix(a.Y, b.Y, t),
		Z: math3d.Mix(a.Z, b.Z, t),
		W: math3d.Mix(a.W, b.W, t),
	}
}

// fog darkens c as depth (in fog distances) grows.
func fog(c Color, depth float64) Color {
	k := math3d.Clamp(1.5-depth, 0.25, 1)
	return RGB(uint8(float64(c.R)*k), uint8(float64(c.G)*k), uint8(float64(c.B)*k))
}

// clipSegment clips a segment to [0, maxX] x [0, maxY] (Liang-Barsky).
func clipSegment(x1, y1, x2, y2, maxX, maxY float64) (float64, float64, float64, float64, bool) {
	t0, t1 := 0.0, 1.0
	dx, dy := x2-x1, y2-y1
	edges := [4][2]float64{
		{-dx, x1},
		{dx, maxX - x1},
		{-dy, y1},
		{dy, maxY - y1},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return 0, 0, 0, 0, false
			}
			t0 = max(t0, r)
		} else {
			if r < t0 {
				return 0, 0, 0, 0, false
			}
			t1 = min(t1, r)
		}
	}
	return x1 + t0*dx, y1 + t0*dy, x1 + t1*dx, y1 + t1*dy, true
}
