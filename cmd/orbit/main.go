// orbit - Terminal orbit camera viewer
// Orbit a wireframe model in your terminal with damped mouse controls.
//
// Controls:
//
//	Left drag        - Rotate (center turns yaw/pitch, edges roll)
//	Middle drag      - Pan (or meta+left drag)
//	Right drag       - Zoom
//	Shift+drag       - Lock the drag to its dominant axis
//	Scroll           - Zoom in/out
//	Double click     - Animate back to the reset view
//	W/S A/D Q/E      - Pitch, yaw and roll impulses
//	+/-              - Zoom impulse
//	Space            - Apply random impulse
//	R                - Reset view
//	P/O              - Push/pop the current view
//	H                - Toggle HUD overlay
//	X                - Save a PNG snapshot
//	Esc              - Quit
package main

import (
	"context"
	"flag"
	"fmt"
	"math"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync/atomic"
	"syscall"
	"time"

	uv "github.com/charmbracelet/ultraviolet"

	"github.com/taigrr/orbit/pkg/camera"
	"github.com/taigrr/orbit/pkg/logging"
	"github.com/taigrr/orbit/pkg/models"
	"github.com/taigrr/orbit/pkg/render"
)

var (
	targetFPS  = flag.Int("fps", 60, "Target FPS")
	distance   = flag.Float64("distance", 0, "Initial camera distance (0 frames the model)")
	damping    = flag.Float64("damping", 0.85, "Per-frame velocity damping in [0, 1)")
	duration   = flag.Duration("duration", 300*time.Millisecond, "Default animation duration")
	constraint = flag.String("constraint", "", "Rotation axes to allow (yaw+pitch+roll, none, all)")
	spring     = flag.Float64("spring", 0, "Spring frequency for momentum decay (0 uses damping)")
	bgColor    = flag.String("bg", "30,30,40", "Background color (R,G,B)")
	logPath    = flag.String("log", "", "Write logs to this file")
	debug      = flag.Bool("debug", false, "Enable debug logging")
)

// Terminal cells are reported to the controller in pseudo-pixels so the
// drag scales match a graphical window.
const (
	cellWidth   = 8
	cellHeight  = 16
	doubleClick = 400 * time.Millisecond
	modelSize   = 200.0
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "orbit - Terminal orbit camera viewer\n\n")
		fmt.Fprintf(os.Stderr, "Usage: orbit [options] [model.glb]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nControls:\n")
		fmt.Fprintf(os.Stderr, "  Left drag    - Rotate\n")
		fmt.Fprintf(os.Stderr, "  Middle drag  - Pan\n")
		fmt.Fprintf(os.Stderr, "  Right drag   - Zoom\n")
		fmt.Fprintf(os.Stderr, "  Shift+drag   - Lock to one axis\n")
		fmt.Fprintf(os.Stderr, "  Scroll       - Zoom in/out\n")
		fmt.Fprintf(os.Stderr, "  Double click - Reset view\n")
		fmt.Fprintf(os.Stderr, "  W/S/A/D/Q/E  - Pitch, yaw and roll\n")
		fmt.Fprintf(os.Stderr, "  P/O          - Push/pop view\n")
		fmt.Fprintf(os.Stderr, "  H            - Toggle HUD overlay\n")
		fmt.Fprintf(os.Stderr, "  X            - Save snapshot\n")
		fmt.Fprintf(os.Stderr, "  Esc          - Quit\n")
	}
	flag.Parse()

	if err := run(flag.Arg(0)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newLogger() (logging.Logger, func(), error) {
	if *logPath == "" {
		return logging.Nop(), func() {}, nil
	}
	f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log: %w", err)
	}
	return logging.New(f, "orbit", *debug), func() { f.Close() }, nil
}

func loadMesh(path string) (*models.Mesh, error) {
	if path == "" {
		return models.NewCube(modelSize), nil
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".glb", ".gltf":
		mesh, err := models.LoadGLB(path)
		if err != nil {
			return nil, fmt.Errorf("load model: %w", err)
		}
		mesh.Fit(modelSize)
		return mesh, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s (use .glb or .gltf)", ext)
	}
}

// frameDistance is the distance at which the mesh fills the default field
// of view with some margin.
func frameDistance(mesh *models.Mesh) float64 {
	return mesh.Radius() / math.Tan(math.Pi/6) * 1.2
}

// HUD tracks the overlay state shown over the scene.
type HUD struct {
	visible   atomic.Bool
	name      string
	fps       float64
	fpsFrames int
	fpsTime   time.Time
}

func NewHUD(name string) *HUD {
	h := &HUD{name: name, fpsTime: time.Now()}
	h.visible.Store(true)
	return h
}

// UpdateFPS updates the FPS counter (call once per frame)
func (h *HUD) UpdateFPS() {
	h.fpsFrames++
	elapsed := time.Since(h.fpsTime)
	if elapsed >= time.Second {
		h.fps = float64(h.fpsFrames) / elapsed.Seconds()
		h.fpsFrames = 0
		h.fpsTime = time.Now()
	}
}

// DrawBorder outlines the framebuffer through the controller's overlay mode.
func (h *HUD) DrawBorder(ctrl *camera.Controller, wire *render.Wireframe, fb *render.Framebuffer) {
	if !h.visible.Load() {
		return
	}
	ctrl.BeginHUD()
	wire.DrawRect(0, 0, float64(fb.Width-1), float64(fb.Height-1), render.ColorGray)
	ctrl.EndHUD()
}

// Render draws the text lines directly into the screen cells.
func (h *HUD) Render(scr uv.Screen, ctrl *camera.Controller) {
	if !h.visible.Load() {
		return
	}
	lines := []string{fmt.Sprintf(" %s  %.0f FPS ", h.name, h.fps)}
	for _, l := range strings.Split(ctrl.State().String(), "\n") {
		lines = append(lines, " "+strings.TrimSpace(l)+" ")
	}
	if ctrl.Transitioning() {
		lines = append(lines, " animating ")
	}
	for i, l := range lines {
		render.DrawText(scr, 1, 1+i, l, render.ColorWhite, render.ColorBlack)
	}
}

// pointer converts terminal mouse events into controller pointer events and
// detects double clicks.
type pointer struct {
	lastClick time.Time
	lastX     int
	lastY     int
}

func mouseButton(b uv.MouseButton) camera.Button {
	switch b {
	case uv.MouseLeft:
		return camera.ButtonLeft
	case uv.MouseMiddle:
		return camera.ButtonMiddle
	case uv.MouseRight:
		return camera.ButtonRight
	}
	return camera.ButtonNone
}

func modifiers(m uv.KeyMod) camera.Modifier {
	var mods camera.Modifier
	if m.Contains(uv.ModShift) {
		mods |= camera.ModShift
	}
	if m.Contains(uv.ModCtrl) {
		mods |= camera.ModCtrl
	}
	if m.Contains(uv.ModAlt) {
		mods |= camera.ModAlt
	}
	if m.Contains(uv.ModMeta) || m.Contains(uv.ModSuper) {
		mods |= camera.ModMeta
	}
	return mods
}

func (p *pointer) event(action camera.PointerAction, m uv.Mouse) camera.PointerEvent {
	return camera.PointerEvent{
		Action: action,
		X:      float64(m.X*cellWidth + cellWidth/2),
		Y:      float64(m.Y*cellHeight + cellHeight/2),
		Button: mouseButton(m.Button),
		Mods:   modifiers(m.Mod),
	}
}

// press returns the press event and, for the second press on the same cell
// within the double click window, a click event with Count 2.
func (p *pointer) press(m uv.Mouse, now time.Time) []camera.PointerEvent {
	evs := []camera.PointerEvent{p.event(camera.PointerPress, m)}
	if m.Button == uv.MouseLeft && m.X == p.lastX && m.Y == p.lastY && now.Sub(p.lastClick) < doubleClick {
		click := p.event(camera.PointerClick, m)
		click.Count = 2
		evs = append(evs, click)
		p.lastClick = time.Time{}
		return evs
	}
	p.lastClick, p.lastX, p.lastY = now, m.X, m.Y
	return evs
}

func run(modelPath string) error {
	// Parse background color
	var bgR, bgG, bgB uint8 = 30, 30, 40
	fmt.Sscanf(*bgColor, "%d,%d,%d", &bgR, &bgG, &bgB)
	bg := render.RGB(bgR, bgG, bgB)

	logger, closeLog, err := newLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	axes, ok := camera.ParseConstraint(*constraint)
	if !ok {
		return fmt.Errorf("invalid constraint %q", *constraint)
	}

	mesh, err := loadMesh(modelPath)
	if err != nil {
		return err
	}
	name := "cube"
	if modelPath != "" {
		name = filepath.Base(modelPath)
	}
	logger.Infof("loaded %s (%d vertices, %d triangles)", name, mesh.VertexCount(), mesh.TriangleCount())

	// Create terminal
	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	// Enable mouse mode
	fmt.Fprint(os.Stdout, "\x1b[?1003h") // Enable any-event mouse tracking
	fmt.Fprint(os.Stdout, "\x1b[?1006h") // Enable SGR extended mouse mode

	fb := render.NewFramebuffer(width, height*2)
	view := render.NewView(width, height*2)
	view.SetClipPlanes(1, 100000)
	wire := render.NewWireframe(view, fb)

	d := *distance
	if d <= 0 {
		d = frameDistance(mesh)
	}
	opts := []camera.Option{
		camera.WithRenderer(view),
		camera.WithViewport(camera.Viewport{W: float64(width * cellWidth), H: float64(height * cellHeight)}),
		camera.WithDistance(d),
		camera.WithCenter(mesh.Center()),
		camera.WithDistanceLimits(mesh.Radius()*0.1, d*20),
		camera.WithDamping(*damping),
		camera.WithDefaultDuration(*duration),
		camera.WithConstraint(axes),
		camera.WithLogger(logger),
	}
	if *spring > 0 {
		opts = append(opts, camera.WithSpringDecay(*targetFPS, *spring))
	}
	ctrl := camera.New(opts...)
	defer ctrl.Release()

	hud := NewHUD(name)

	// Context for clean shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	resized := make(chan uv.WindowSizeEvent, 1)
	snapshot := make(chan struct{}, 1)
	const impulse = 40.0

	// Event handler
	go func() {
		var ptr pointer
		for ev := range term.Events() {
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				ctrl.SetViewport(camera.Viewport{W: float64(ev.Width * cellWidth), H: float64(ev.Height * cellHeight)})
				select {
				case resized <- ev:
				default:
				}

			case uv.KeyPressEvent:
				switch {
				case ev.MatchString("escape", "ctrl+c"):
					cancel()
					return
				case ev.MatchString("w", "up"):
					ctrl.AddForce(camera.AxisRotX, impulse)
				case ev.MatchString("s", "down"):
					ctrl.AddForce(camera.AxisRotX, -impulse)
				case ev.MatchString("a", "left"):
					ctrl.AddForce(camera.AxisRotY, impulse)
				case ev.MatchString("d", "right"):
					ctrl.AddForce(camera.AxisRotY, -impulse)
				case ev.MatchString("q"):
					ctrl.AddForce(camera.AxisRotZ, impulse)
				case ev.MatchString("e"):
					ctrl.AddForce(camera.AxisRotZ, -impulse)
				case ev.MatchString("+", "="):
					ctrl.AddForce(camera.AxisZoom, -ctrl.WheelScale())
				case ev.MatchString("-", "_"):
					ctrl.AddForce(camera.AxisZoom, ctrl.WheelScale())
				case ev.MatchString("space"):
					ctrl.AddForce(camera.AxisRotX, (rand.Float64()-0.5)*4*impulse)
					ctrl.AddForce(camera.AxisRotY, (rand.Float64()-0.5)*4*impulse)
					ctrl.AddForce(camera.AxisRotZ, (rand.Float64()-0.5)*4*impulse)
				case ev.MatchString("r"):
					ctrl.Reset()
				case ev.MatchString("p"):
					s := ctrl.PushState()
					logger.Debugf("pushed view\n%s", s)
				case ev.MatchString("o"):
					ctrl.PopState()
				case ev.MatchString("h"):
					hud.visible.Store(!hud.visible.Load())
				case ev.MatchString("x"):
					select {
					case snapshot <- struct{}{}:
					default:
					}
				}

			case uv.KeyReleaseEvent:
				if ev.Code == uv.KeyLeftShift || ev.Code == uv.KeyRightShift {
					ctrl.HandleKey(camera.KeyEvent{Action: camera.KeyRelease, Constrain: true})
				}

			case uv.MouseClickEvent:
				for _, pe := range ptr.press(uv.Mouse(ev), time.Now()) {
					ctrl.HandlePointer(pe)
				}

			case uv.MouseMotionEvent:
				action := camera.PointerMove
				if ev.Button != uv.MouseNone {
					action = camera.PointerDrag
				}
				ctrl.HandlePointer(ptr.event(action, uv.Mouse(ev)))

			case uv.MouseReleaseEvent:
				ctrl.HandlePointer(ptr.event(camera.PointerRelease, uv.Mouse(ev)))

			case uv.MouseWheelEvent:
				pe := ptr.event(camera.PointerWheel, uv.Mouse(ev))
				switch ev.Button {
				case uv.MouseWheelUp:
					pe.Wheel = -1
				case uv.MouseWheelDown:
					pe.Wheel = 1
				default:
					continue
				}
				ctrl.HandlePointer(pe)
			}
		}
	}()

	// Main loop
	targetDuration := time.Second / time.Duration(*targetFPS)

	cleanup := func() {
		fmt.Fprint(os.Stdout, "\x1b[?1003l")
		fmt.Fprint(os.Stdout, "\x1b[?1006l")
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}

	for {
		select {
		case <-ctx.Done():
			cleanup()
			return nil
		case ev := <-resized:
			width, height = ev.Width, ev.Height
			term.Erase()
			term.Resize(width, height)
			fb = render.NewFramebuffer(width, height*2)
			wire.SetTarget(fb)
			view.SetSize(width, height*2)
		case <-snapshot:
			path := fmt.Sprintf("orbit-%s.png", time.Now().Format("20060102-150405"))
			if err := fb.SavePNG(path); err != nil {
				logger.Errorf("snapshot: %v", err)
			} else {
				logger.Infof("saved %s", path)
			}
		default:
		}

		now := time.Now()

		ctrl.OnFrame()

		fb.Clear(bg)
		wire.FogDistance = float64(ctrl.Distance()) * 2
		wire.DrawGrid(modelSize*2, modelSize/10, render.RGB(60, 60, 70))
		wire.DrawAxes(modelSize / 2)
		wire.DrawMesh(mesh, render.RGB(0, 255, 128))

		// The border is drawn into the framebuffer, the text on top of it.
		hud.UpdateFPS()
		hud.DrawBorder(ctrl, wire, fb)
		fb.Draw(term, term.Bounds())
		hud.Render(term, ctrl)
		if err := term.Display(); err != nil {
			cleanup()
			return fmt.Errorf("display: %w", err)
		}

		// Frame timing
		elapsed := time.Since(now)
		if elapsed < targetDuration {
			time.Sleep(targetDuration - elapsed)
		}
	}
}
