package camera

import (
	"math"
	"time"

	"github.com/taigrr/orbit/pkg/logging"
	"github.com/taigrr/orbit/pkg/math3d"
)

// MinDistanceLimit is the hard floor for the minimum orbit distance.
const MinDistanceLimit = 0.001

// Config holds everything a Controller is built from.
type Config struct {
	State    State
	Viewport Viewport

	RotationScale float64
	PanScale      float64
	ZoomScale     float64
	WheelScale    float64
	Damping       float64

	// SpringFPS and SpringFrequency switch damped channels to spring decay
	// when SpringFPS is positive.
	SpringFPS       int
	SpringFrequency float64

	DistanceMin     float64
	DistanceMax     float64
	DefaultDuration time.Duration

	// Constraint fixes the rotation axes mouse input may drive. Zero means
	// all of them.
	Constraint Constraint
	AutoUpdate bool

	Renderer Renderer
	Logger   logging.Logger
	Clock    func() time.Time
}

// DefaultConfig returns the stock tuning.
func DefaultConfig() Config {
	return Config{
		State:           DefaultState(),
		RotationScale:   0.001,
		PanScale:        0.0005,
		ZoomScale:       0.001,
		WheelScale:      20,
		Damping:         0.85,
		DistanceMin:     MinDistanceLimit,
		DistanceMax:     math.MaxFloat64,
		DefaultDuration: 300 * time.Millisecond,
		AutoUpdate:      true,
	}
}

// sanitize clamps out-of-range values and fills in nil collaborators.
func (c *Config) sanitize() {
	if math.IsNaN(c.DistanceMin) {
		c.DistanceMin = MinDistanceLimit
	}
	if math.IsNaN(c.DistanceMax) {
		c.DistanceMax = math.MaxFloat64
	}
	c.DistanceMin = max(c.DistanceMin, MinDistanceLimit)
	if c.DistanceMax < c.DistanceMin {
		c.DistanceMax = c.DistanceMin
	}
	c.State.Rotation = c.State.Rotation.Normalize()
	if !(c.State.Distance > 0) {
		c.State.Distance = DefaultState().Distance
	}
	c.State.Distance = math3d.Clamp(c.State.Distance, c.DistanceMin, c.DistanceMax)
	if c.Logger == nil {
		c.Logger = logging.Nop()
	}
	if c.Clock == nil {
		c.Clock = time.Now
	}
}

// Option configures a Controller.
type Option func(*Config)

// WithState sets the initial pose. It also becomes the reset and pushed
// state.
func WithState(s State) Option {
	return func(c *Config) { c.State = s }
}

// WithDistance sets the initial distance.
func WithDistance(d float64) Option {
	return func(c *Config) { c.State.Distance = d }
}

// WithCenter sets the initial look-at point.
func WithCenter(center math3d.Vec3) Option {
	return func(c *Config) { c.State.Center = center }
}

// WithRotation sets the initial orientation.
func WithRotation(q math3d.Quat) Option {
	return func(c *Config) { c.State.Rotation = q }
}

// WithEulerXYZ sets the initial rotation from XYZ Euler angles in radians.
func WithEulerXYZ(x, y, z float64) Option {
	return func(c *Config) { c.State.Rotation = math3d.FromEulerXYZ(x, y, z) }
}

// WithViewport sets the screen rectangle that accepts pointer input.
func WithViewport(v Viewport) Option {
	return func(c *Config) { c.Viewport = v }
}

// WithRotationScale sets the drag-to-rotation sensitivity.
func WithRotationScale(s float64) Option {
	return func(c *Config) { c.RotationScale = s }
}

// WithPanScale sets the drag-to-pan sensitivity.
func WithPanScale(s float64) Option {
	return func(c *Config) { c.PanScale = s }
}

// WithZoomScale sets the drag-to-zoom sensitivity.
func WithZoomScale(s float64) Option {
	return func(c *Config) { c.ZoomScale = s }
}

// WithWheelScale sets the zoom force per wheel notch.
func WithWheelScale(s float64) Option {
	return func(c *Config) { c.WheelScale = s }
}

// WithDamping sets the per-frame decay factor, clamped to [0, 0.999].
func WithDamping(d float64) Option {
	return func(c *Config) { c.Damping = d }
}

// WithSpringDecay decays momentum with a critically damped spring stepped at
// fps frames per second with the given angular frequency.
func WithSpringDecay(fps int, frequency float64) Option {
	return func(c *Config) {
		c.SpringFPS = fps
		c.SpringFrequency = frequency
	}
}

// WithDistanceLimits sets the minimum and maximum distance.
func WithDistanceLimits(lo, hi float64) Option {
	return func(c *Config) {
		c.DistanceMin = lo
		c.DistanceMax = hi
	}
}

// WithDefaultDuration sets the duration used by the non-Over setters.
func WithDefaultDuration(d time.Duration) Option {
	return func(c *Config) { c.DefaultDuration = d }
}

// WithConstraint fixes which rotation axes mouse input may drive.
func WithConstraint(constraint Constraint) Option {
	return func(c *Config) { c.Constraint = constraint }
}

// WithAutoUpdate controls whether OnFrame runs Update.
func WithAutoUpdate(enabled bool) Option {
	return func(c *Config) { c.AutoUpdate = enabled }
}

// WithRenderer sets the view sink.
func WithRenderer(r Renderer) Option {
	return func(c *Config) { c.Renderer = r }
}

// WithLogger sets the logger; nil means no logging.
func WithLogger(l logging.Logger) Option {
	return func(c *Config) { c.Logger = l }
}

// WithClock replaces time.Now for timed transitions.
func WithClock(now func() time.Time) Option {
	return func(c *Config) { c.Clock = now }
}
