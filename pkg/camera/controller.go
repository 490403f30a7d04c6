// Package camera implements an orbit camera: a viewpoint that circles a
// center point at some distance, driven by damped mouse momentum and timed
// transitions between poses.
package camera

import (
	"math"
	"sync"
	"time"

	"github.com/charmbracelet/harmonica"

	"github.com/taigrr/orbit/pkg/logging"
	"github.com/taigrr/orbit/pkg/math3d"
)

// Controller owns one orbit camera. All methods are safe for concurrent use.
type Controller struct {
	mu  sync.Mutex
	cfg Config
	log logging.Logger

	state  State
	reset  State
	pushed State

	damped [numAxes]*DampedChannel

	rotation *TimedChannel[math3d.Quat]
	center   *TimedChannel[math3d.Vec3]
	distance *TimedChannel[float64]

	input inputMapper
}

// New creates a controller from the default configuration and opts.
func New(opts ...Option) *Controller {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	cfg.sanitize()

	c := &Controller{
		cfg:    cfg,
		log:    cfg.Logger,
		state:  cfg.State,
		reset:  cfg.State,
		pushed: cfg.State,
		input:  newInputMapper(),
	}
	for axis := range numAxes {
		c.damped[axis] = NewDampedChannel(cfg.Damping, func(v float64) {
			c.applyDamped(axis, v)
		})
	}
	c.cfg.Damping = c.damped[AxisZoom].Damping()
	c.useSpring(cfg.SpringFPS, cfg.SpringFrequency)

	c.rotation = NewTimedChannel(cfg.Clock, c.interpolateRotation)
	c.center = NewTimedChannel(cfg.Clock, c.interpolateCenter)
	c.distance = NewTimedChannel(cfg.Clock, c.interpolateDistance)
	return c
}

func (c *Controller) applyDamped(axis Axis, v float64) {
	switch axis {
	case AxisZoom:
		c.zoom(v * c.zoomMultiplier())
	case AxisPanX:
		c.panX(v * c.panMultiplier())
	case AxisPanY:
		c.panY(v * c.panMultiplier())
	case AxisRotX:
		c.rotate(math3d.UnitX(), v*c.rotationMultiplier())
	case AxisRotY:
		c.rotate(math3d.UnitY(), v*c.rotationMultiplier())
	case AxisRotZ:
		c.rotate(math3d.UnitZ(), v*c.rotationMultiplier())
	}
}

func (c *Controller) interpolateRotation(from, to math3d.Quat, t float64) {
	c.state.Rotation = math3d.Slerp(from, to, t)
}

func (c *Controller) interpolateCenter(from, to math3d.Vec3, t float64) {
	c.state.Center = from.Lerp(to, t)
}

func (c *Controller) interpolateDistance(from, to float64, t float64) {
	c.state.Distance = math3d.Mix(from, to, t)
}

func (c *Controller) zoomMultiplier() float64 {
	return c.state.Distance * c.cfg.ZoomScale
}

func (c *Controller) panMultiplier() float64 {
	return c.state.Distance * c.cfg.PanScale
}

// rotationMultiplier grows slowly with distance so far-away orbits do not
// feel sluggish.
func (c *Controller) rotationMultiplier() float64 {
	return math.Sqrt(math.Log10(1+c.state.Distance)) * c.cfg.RotationScale
}

func (c *Controller) zoom(dz float64) {
	if math.IsNaN(dz) {
		return
	}
	d := c.state.Distance + dz
	switch {
	case d < c.cfg.DistanceMin:
		d = c.cfg.DistanceMin
		c.damped[AxisZoom].Stop()
		c.log.Debugf("zoom clamped to minimum %.3f", d)
	case d > c.cfg.DistanceMax:
		d = c.cfg.DistanceMax
		c.damped[AxisZoom].Stop()
		c.log.Debugf("zoom clamped to maximum %.3f", d)
	}
	c.state.Distance = d
}

func (c *Controller) panX(dx float64) {
	if dx == 0 || math.IsNaN(dx) {
		return
	}
	c.state.Center = c.state.Center.Add(c.state.Rotation.Rotate(math3d.V3(dx, 0, 0)))
}

func (c *Controller) panY(dy float64) {
	if dy == 0 || math.IsNaN(dy) {
		return
	}
	c.state.Center = c.state.Center.Add(c.state.Rotation.Rotate(math3d.V3(0, dy, 0)))
}

// rotate turns the camera about axis in its own frame.
func (c *Controller) rotate(axis math3d.Vec3, angle float64) {
	if angle == 0 || math.IsNaN(angle) {
		return
	}
	c.state.Rotation = c.state.Rotation.Mul(math3d.QuatAxisAngle(axis, angle)).Normalize()
}

func (c *Controller) useSpring(fps int, frequency float64) {
	var spring *harmonica.Spring
	if fps > 0 && frequency > 0 {
		s := harmonica.NewSpring(harmonica.FPS(fps), frequency, 1.0)
		spring = &s
	}
	for _, d := range c.damped {
		d.UseSpring(spring)
	}
	c.cfg.SpringFPS = fps
	c.cfg.SpringFrequency = frequency
}

// update runs one frame. Live momentum wins over transitions: any active
// damped channel cancels all timed channels for the frame.
func (c *Controller) update() {
	moving := false
	for _, axis := range updateOrder {
		if c.damped[axis].Update() {
			moving = true
		}
	}
	if moving {
		c.rotation.Stop()
		c.center.Stop()
		c.distance.Stop()
		return
	}
	c.rotation.Update()
	c.center.Update()
	c.distance.Update()
}

// view snapshots what the renderer needs; called with the lock held.
func (c *Controller) view() (eye, center, up math3d.Vec3, r Renderer) {
	return c.state.Eye(), c.state.Center, c.state.Up(), c.cfg.Renderer
}

func applyView(eye, center, up math3d.Vec3, r Renderer) {
	if r != nil {
		r.ApplyView(eye, center, up)
	}
}

// Update advances all channels by one frame and hands the resulting view to
// the renderer.
func (c *Controller) Update() {
	c.mu.Lock()
	c.update()
	eye, center, up, r := c.view()
	c.mu.Unlock()
	applyView(eye, center, up, r)
}

// OnFrame is the host's per-frame hook. It runs Update when auto-update is
// enabled and does nothing otherwise.
func (c *Controller) OnFrame() {
	c.mu.Lock()
	auto := c.cfg.AutoUpdate
	c.mu.Unlock()
	if auto {
		c.Update()
	}
}

// Apply hands the current view to the renderer without advancing anything.
func (c *Controller) Apply() {
	c.mu.Lock()
	eye, center, up, r := c.view()
	c.mu.Unlock()
	applyView(eye, center, up, r)
}

// Release stops all motion and detaches the renderer.
func (c *Controller) Release() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stop()
	c.cfg.Renderer = nil
}

func (c *Controller) stop() {
	for _, d := range c.damped {
		d.Stop()
	}
	c.rotation.Stop()
	c.center.Stop()
	c.distance.Stop()
}

// Stop drops all momentum and halts any transition in place.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stop()
}

// Zoom moves the eye toward (negative) or away from the center, clamped to
// the distance limits.
func (c *Controller) Zoom(dz float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.zoom(dz)
}

// Pan moves the center along the camera's own right and up axes.
func (c *Controller) Pan(dx, dy float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.panX(dx)
	c.panY(dy)
}

// PanX moves the center along the camera's right axis.
func (c *Controller) PanX(dx float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.panX(dx)
}

// PanY moves the center along the camera's up axis.
func (c *Controller) PanY(dy float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.panY(dy)
}

// RotateX rotates about the camera's own X axis.
func (c *Controller) RotateX(angle float64) { c.Rotate(math3d.UnitX(), angle) }

// RotateY rotates about the camera's own Y axis.
func (c *Controller) RotateY(angle float64) { c.Rotate(math3d.UnitY(), angle) }

// RotateZ rotates about the camera's own Z axis.
func (c *Controller) RotateZ(angle float64) { c.Rotate(math3d.UnitZ(), angle) }

// Rotate turns the camera by angle radians about axis in camera space.
func (c *Controller) Rotate(axis math3d.Vec3, angle float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rotate(axis, angle)
}

// SetDistance animates to distance d over the default duration.
func (c *Controller) SetDistance(d float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setDistance(d, c.cfg.DefaultDuration)
}

// SetDistanceOver animates to distance d over dur. The target is clamped to
// the distance limits.
func (c *Controller) SetDistanceOver(d float64, dur time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setDistance(d, dur)
}

func (c *Controller) setDistance(d float64, dur time.Duration) {
	if math.IsNaN(d) {
		return
	}
	d = math3d.Clamp(d, c.cfg.DistanceMin, c.cfg.DistanceMax)
	c.distance.Start(c.state.Distance, d, dur, c.damped[AxisZoom])
}

// SetCenter animates the look-at point over the default duration.
func (c *Controller) SetCenter(center math3d.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setCenter(center, c.cfg.DefaultDuration)
}

// SetCenterOver animates the look-at point over dur.
func (c *Controller) SetCenterOver(center math3d.Vec3, dur time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setCenter(center, dur)
}

func (c *Controller) setCenter(center math3d.Vec3, dur time.Duration) {
	c.center.Start(c.state.Center, center, dur, c.damped[AxisPanX], c.damped[AxisPanY])
}

// SetRotation slerps to q over the default duration.
func (c *Controller) SetRotation(q math3d.Quat) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setRotation(q, c.cfg.DefaultDuration)
}

// SetRotationOver slerps to q over dur.
func (c *Controller) SetRotationOver(q math3d.Quat, dur time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setRotation(q, dur)
}

func (c *Controller) setRotation(q math3d.Quat, dur time.Duration) {
	c.rotation.Start(c.state.Rotation, q.Normalize(), dur,
		c.damped[AxisRotX], c.damped[AxisRotY], c.damped[AxisRotZ])
}

// State returns a copy of the current pose.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// SetState animates to s over the default duration. A nil s is ignored.
func (c *Controller) SetState(s *State) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setState(s, c.cfg.DefaultDuration)
}

// SetStateOver animates distance, center and rotation to s over dur. A nil s
// is ignored.
func (c *Controller) SetStateOver(s *State, dur time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setState(s, dur)
}

func (c *Controller) setState(s *State, dur time.Duration) {
	if s == nil {
		return
	}
	target := *s
	c.setRotation(target.Rotation, dur)
	c.setCenter(target.Center, dur)
	c.setDistance(target.Distance, dur)
}

// PushState saves the current pose in the single push slot and returns it.
func (c *Controller) PushState() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pushed = c.state
	c.log.Debugf("pushed state distance=%.3f", c.pushed.Distance)
	return c.pushed
}

// PopState animates back to the pushed pose over the default duration.
func (c *Controller) PopState() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.popState(c.cfg.DefaultDuration)
}

// PopStateOver animates back to the pushed pose over dur.
func (c *Controller) PopStateOver(dur time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.popState(dur)
}

func (c *Controller) popState(dur time.Duration) {
	c.log.Debugf("popping state over %s", dur)
	target := c.pushed
	c.setState(&target, dur)
}

// PushResetState makes the current pose the one Reset returns to.
func (c *Controller) PushResetState() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reset = c.state
	c.log.Debugf("reset state updated")
	return c.reset
}

// Reset animates to the reset pose over the default duration.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetOver(c.cfg.DefaultDuration)
}

// ResetOver animates to the reset pose over dur.
func (c *Controller) ResetOver(dur time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetOver(dur)
}

func (c *Controller) resetOver(dur time.Duration) {
	c.log.Debugf("reset over %s", dur)
	target := c.reset
	c.setState(&target, dur)
}

// Position returns the eye position.
func (c *Controller) Position() [3]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Eye().Float32()
}

// UpVector returns the camera's up direction.
func (c *Controller) UpVector() [3]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Up().Float32()
}

// Center returns the orbit center.
func (c *Controller) Center() [3]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Center.Float32()
}

// Distance returns the eye-to-center distance.
func (c *Controller) Distance() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return float32(c.state.Distance)
}

// Rotation returns the camera orientation.
func (c *Controller) Rotation() math3d.Quat {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Rotation
}

// Rotations returns the rotation as XYZ Euler angles in radians.
func (c *Controller) Rotations() math3d.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return math3d.ToEulerXYZ(c.state.Rotation)
}

// Transitioning reports whether any timed transition is running.
func (c *Controller) Transitioning() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rotation.Active() || c.center.Active() || c.distance.Active()
}

// Momentum returns the pending value on one damped axis.
func (c *Controller) Momentum(axis Axis) float64 {
	if !axis.valid() {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.damped[axis].Value()
}

// AddForce adds an impulse to one damped axis. Rotation forces are in the
// same units mouse drags produce.
func (c *Controller) AddForce(axis Axis, force float64) {
	if !axis.valid() {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.damped[axis].AddForce(force)
}

// SetDistanceMin sets the minimum distance, floored at MinDistanceLimit, and
// re-clamps the current distance. NaN is ignored.
func (c *Controller) SetDistanceMin(d float64) {
	if math.IsNaN(d) {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cfg.DistanceMin = max(d, MinDistanceLimit)
	c.log.Debugf("minimum distance set to %.3f", c.cfg.DistanceMin)
	c.zoom(0)
}

// SetDistanceMax sets the maximum distance and re-clamps the current one.
// NaN is ignored.
func (c *Controller) SetDistanceMax(d float64) {
	if math.IsNaN(d) {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cfg.DistanceMax = max(d, c.cfg.DistanceMin)
	c.log.Debugf("maximum distance set to %.3f", c.cfg.DistanceMax)
	c.zoom(0)
}

// DistanceLimits returns the current minimum and maximum distance.
func (c *Controller) DistanceLimits() (lo, hi float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cfg.DistanceMin, c.cfg.DistanceMax
}

// SetRotationScale sets the drag-to-rotation sensitivity.
func (c *Controller) SetRotationScale(s float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cfg.RotationScale = s
}

// RotationScale returns the drag-to-rotation sensitivity.
func (c *Controller) RotationScale() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cfg.RotationScale
}

// SetPanScale sets the drag-to-pan sensitivity.
func (c *Controller) SetPanScale(s float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cfg.PanScale = s
}

// PanScale returns the drag-to-pan sensitivity.
func (c *Controller) PanScale() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cfg.PanScale
}

// SetZoomScale sets the drag-to-zoom sensitivity.
func (c *Controller) SetZoomScale(s float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cfg.ZoomScale = s
}

// ZoomScale returns the drag-to-zoom sensitivity.
func (c *Controller) ZoomScale() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cfg.ZoomScale
}

// SetWheelScale sets the zoom force per wheel notch.
func (c *Controller) SetWheelScale(s float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cfg.WheelScale = s
}

// WheelScale returns the zoom force per wheel notch.
func (c *Controller) WheelScale() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cfg.WheelScale
}

// SetDamping sets the decay factor on every damped axis.
func (c *Controller) SetDamping(f float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, d := range c.damped {
		d.SetDamping(f)
	}
	c.cfg.Damping = c.damped[AxisZoom].Damping()
}

// Damping returns the per-frame decay factor.
func (c *Controller) Damping() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cfg.Damping
}

// SetSpringDecay switches every damped axis to spring decay. A non-positive
// fps or frequency restores geometric decay.
func (c *Controller) SetSpringDecay(fps int, frequency float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.useSpring(fps, frequency)
}

// SetDefaultDuration sets the duration used by the non-Over setters.
func (c *Controller) SetDefaultDuration(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cfg.DefaultDuration = d
}

// DefaultDuration returns the duration used by the non-Over setters.
func (c *Controller) DefaultDuration() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cfg.DefaultDuration
}

// SetViewport sets the screen rectangle that accepts pointer input.
func (c *Controller) SetViewport(v Viewport) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cfg.Viewport = v
}

// Viewport returns the screen rectangle that accepts pointer input.
func (c *Controller) Viewport() Viewport {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cfg.Viewport
}

// InsideViewport reports whether (x, y) would be accepted as a drag start.
func (c *Controller) InsideViewport(x, y float64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cfg.Viewport.Contains(x, y)
}

// SetRotationConstraint fixes which rotation axes mouse input may drive.
// Passing all false removes the constraint.
func (c *Controller) SetRotationConstraint(yaw, pitch, roll bool) {
	var constraint Constraint
	if yaw {
		constraint |= ConstrainYaw
	}
	if pitch {
		constraint |= ConstrainPitch
	}
	if roll {
		constraint |= ConstrainRoll
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cfg.Constraint = constraint
}

// Constraint returns the fixed rotation constraint; zero means none.
func (c *Controller) Constraint() Constraint {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cfg.Constraint
}

// SetAutoUpdate controls whether OnFrame runs Update.
func (c *Controller) SetAutoUpdate(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cfg.AutoUpdate = enabled
}

// AutoUpdate reports whether OnFrame runs Update.
func (c *Controller) AutoUpdate() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cfg.AutoUpdate
}

// SetRenderer replaces the view sink; nil detaches it.
func (c *Controller) SetRenderer(r Renderer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cfg.Renderer = r
}

// SetDragAction rebinds what dragging with button does. Binding
// ButtonMiddle also covers meta+left.
func (c *Controller) SetDragAction(button Button, action DragAction) {
	if button <= ButtonNone || button >= numButtons {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.input.bindings[button] = action
}

// DragAction returns what dragging with button does.
func (c *Controller) DragAction(button Button) DragAction {
	if button <= ButtonNone || button >= numButtons {
		return DragNone
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.input.bindings[button]
}

// HandlePointer feeds one mouse event into the controller. A double click
// inside the viewport resets over the default duration.
func (c *Controller) HandlePointer(ev PointerEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.handlePointer(ev) {
		c.resetOver(c.cfg.DefaultDuration)
	}
}

// HandleKey feeds one key event into the controller.
func (c *Controller) HandleKey(ev KeyEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handleKey(ev)
}

// BeginHUD switches an OverlayRenderer to screen space. It does nothing for
// a plain Renderer.
func (c *Controller) BeginHUD() {
	if r := c.overlay(); r != nil {
		r.BeginOverlay()
	}
}

// EndHUD restores the 3D state saved by BeginHUD.
func (c *Controller) EndHUD() {
	if r := c.overlay(); r != nil {
		r.EndOverlay()
	}
}

func (c *Controller) overlay() OverlayRenderer {
	c.mu.Lock()
	defer c.mu.Unlock()
	r, _ := c.cfg.Renderer.(OverlayRenderer)
	return r
}
