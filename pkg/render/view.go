package render

import (
	"math"

	"github.com/taigrr/orbit/pkg/math3d"
)

// View holds the transforms the wireframe renderer projects through. It
// receives the camera pose from the orbit controller and supports a
// screen-space overlay mode. A View is not safe for concurrent use; drive
// it from the frame loop.
type View struct {
	width, height int
	fovy          float64
	near, far     float64

	eye        math3d.Vec3
	view, proj math3d.Mat4
	lighting   bool

	saved []viewState
}

type viewState struct {
	view, proj math3d.Mat4
	lighting   bool
}

// NewView creates a perspective view for a framebuffer of the given size.
func NewView(width, height int) *View {
	v := &View{
		fovy:     math.Pi / 3,
		near:     0.1,
		far:      10000,
		view:     math3d.Identity(),
		lighting: true,
	}
	v.SetSize(width, height)
	return v
}

// SetSize updates the viewport size and the projection.
func (v *View) SetSize(width, height int) {
	v.width, v.height = max(width, 1), max(height, 1)
	v.updateProjection()
}

// SetFOV sets the vertical field of view in radians.
func (v *View) SetFOV(fovy float64) {
	v.fovy = fovy
	v.updateProjection()
}

// SetClipPlanes sets the near and far clip distances.
func (v *View) SetClipPlanes(near, far float64) {
	v.near, v.far = near, far
	v.updateProjection()
}

func (v *View) updateProjection() {
	if v.Overlay() {
		v.proj = v.screenProjection()
		return
	}
	v.proj = math3d.Perspective(v.fovy, float64(v.width)/float64(v.height), v.near, v.far)
}

func (v *View) screenProjection() math3d.Mat4 {
	return math3d.Orthographic(0, float64(v.width), float64(v.height), 0, -1, 1)
}

// ApplyView sets the view matrix from a camera pose.
func (v *View) ApplyView(eye, center, up math3d.Vec3) {
	v.eye = eye
	v.view = math3d.LookAt(eye, center, up)
}

// BeginOverlay saves the 3D transforms and the lighting flag, then switches
// to unlit screen space where (x, y) are framebuffer pixels.
func (v *View) BeginOverlay() {
	v.saved = append(v.saved, viewState{view: v.view, proj: v.proj, lighting: v.lighting})
	v.view = math3d.Identity()
	v.proj = v.screenProjection()
	v.lighting = false
}

// EndOverlay restores the state saved by the matching BeginOverlay.
func (v *View) EndOverlay() {
	n := len(v.saved)
	if n == 0 {
		return
	}
	s := v.saved[n-1]
	v.saved = v.saved[:n-1]
	v.view, v.proj, v.lighting = s.view, s.proj, s.lighting
}

// Overlay reports whether the view is in screen-space mode.
func (v *View) Overlay() bool {
	return len(v.saved) > 0
}

// Lighting reports whether depth shading is on.
func (v *View) Lighting() bool {
	return v.lighting
}

func (v *View) SetLighting(enabled bool) {
	v.lighting = enabled
}

func (v *View) Eye() math3d.Vec3 {
	return v.eye
}

func (v *View) Size() (width, height int) {
	return v.width, v.height
}

// ViewProjection returns proj * view.
func (v *View) ViewProjection() math3d.Mat4 {
	return v.proj.Mul(v.view)
}

// Frustum returns the current clip volume.
func (v *View) Frustum() Frustum {
	return NewFrustum(v.ViewProjection())
}

// ToScreen maps a clip-space position to framebuffer pixels.
func (v *View) ToScreen(clip math3d.Vec4) (x, y, depth float64) {
	ndc := clip.PerspectiveDivide()
	x = (ndc.X + 1) / 2 * float64(v.width)
	y = (1 - ndc.Y) / 2 * float64(v.height)
	return x, y, ndc.Z
}

// WorldToScreen projects p to framebuffer pixels. visible is false for
// points behind the near plane.
func (v *View) WorldToScreen(p math3d.Vec3) (x, y, depth float64, visible bool) {
	clip := v.ViewProjection().MulVec4(math3d.V4FromV3(p, 1))
	if clip.W <= 0 {
		return 0, 0, 0, false
	}
	x, y, depth = v.ToScreen(clip)
	return x, y, depth, depth >= -1 && depth <= 1
}
