package camera

import "github.com/taigrr/orbit/pkg/math3d"

// Renderer receives the view transform after every update. It is called
// without the controller lock held.
type Renderer interface {
	ApplyView(eye, center, up math3d.Vec3)
}

// OverlayRenderer is a Renderer that can switch to a 2D screen-space
// overlay. BeginOverlay saves the 3D state and EndOverlay restores it.
type OverlayRenderer interface {
	Renderer
	BeginOverlay()
	EndOverlay()
}

// RendererFunc adapts a plain function to Renderer.
type RendererFunc func(eye, center, up math3d.Vec3)

// ApplyView calls f.
func (f RendererFunc) ApplyView(eye, center, up math3d.Vec3) {
	f(eye, center, up)
}
