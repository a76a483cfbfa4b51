package choreo

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// RunConfig configures live, interactive playback.
type RunConfig struct {
	Title  string
	Width  int
	Height int

	// Resizable allows the user to resize the window; a resize forces an
	// immediate tick so the new framebuffer is redrawn without waiting for
	// the next scheduled update.
	Resizable bool

	// UpdateHz caps how often the scene clock advances, independent of the
	// display refresh rate. Zero means the default of 120.
	UpdateHz float64

	// ShowFPS overlays the actual frame rate in the top-left corner.
	ShowFPS bool
}

// DefaultUpdateHz is the live-mode logical update ceiling. It is a ceiling
// on scene clock advancement, not a render rate; rendering still follows
// the display.
const DefaultUpdateHz = 120.0

// windowEvent is a windowing-system occurrence dispatched into the same
// tick path as scheduled updates, so event-driven redraws and the main loop
// share one code path.
type windowEvent uint8

const (
	eventResize windowEvent = iota
	eventRefresh
	eventClosed
)

// clock produces the scene time for the next tick. tick reports the current
// scene time in milliseconds and whether a scheduled update is due.
type clock interface {
	tick() (now float64, due bool)
}

// throttledClock follows the wall clock but limits how often updates are
// due, capping logical updates below the display rate.
type throttledClock struct {
	epoch    time.Time
	interval float64 // ms between due updates
	last     float64
}

func newThrottledClock(hz float64) *throttledClock {
	if hz <= 0 {
		hz = DefaultUpdateHz
	}
	return &throttledClock{epoch: time.Now(), interval: 1000 / hz, last: -1}
}

func (c *throttledClock) tick() (float64, bool) {
	now := float64(time.Since(c.epoch)) / float64(time.Millisecond)
	if c.last >= 0 && now-c.last < c.interval {
		return now, false
	}
	c.last = now
	return now, true
}

// fixedClock advances a virtual clock by a constant step regardless of wall
// time. Every tick is due; this is what makes offline export deterministic.
type fixedClock struct {
	step float64
	now  float64
}

func (c *fixedClock) tick() (float64, bool) {
	c.now += c.step
	return c.now, true
}

// frameSink receives the rendered frame after each draw. The display sink
// does nothing (the swap happens in the windowing layer); the encoder sink
// reads pixels back and streams them.
type frameSink interface {
	flush(screen *ebiten.Image) error
}

// displaySink is the live-mode sink.
type displaySink struct{}

func (displaySink) flush(*ebiten.Image) error { return nil }

// game adapts a Scene, a clock, and a frame sink to the windowing layer's
// update/draw loop. The same type drives both live playback and offline
// export; the mode is fixed by the clock/sink pair chosen at startup.
type game struct {
	scene *Scene
	clock clock
	sink  frameSink

	events []windowEvent

	width, height int
	fixedLayout   bool // export mode: framebuffer size is the export size

	showFPS   bool
	exporting bool

	quit bool
	err  error
}

// Update drains pending window events and advances the scene when the clock
// says an update is due or an event forces one.
func (g *game) Update() error {
	if g.err != nil {
		return g.err
	}
	if g.quit {
		return ebiten.Termination
	}

	if ebiten.IsWindowBeingClosed() {
		g.events = append(g.events, eventClosed)
	}
	if g.scene.takeRefresh() {
		g.events = append(g.events, eventRefresh)
	}

	forced := false
	for _, ev := range g.events {
		switch ev {
		case eventClosed:
			return ebiten.Termination
		case eventResize, eventRefresh:
			forced = true
		}
	}
	g.events = g.events[:0]

	now, due := g.clock.tick()
	if due || forced {
		g.scene.Tick(now)
	}
	return nil
}

// Draw renders the scene and hands the frame to the sink. In export mode
// the first tick observed done stops the loop before the next frame, so the
// final written frame is the one that completed the animation.
func (g *game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)

	if err := g.sink.flush(screen); err != nil {
		g.err = fmt.Errorf("flush frame: %w", err)
		return
	}

	if g.exporting && g.scene.Done() {
		g.quit = true
	}

	if g.showFPS {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
	}
}

// Layout reports the framebuffer size and queues a resize event when it
// changes.
func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.fixedLayout {
		return g.width, g.height
	}
	if outsideWidth != g.width || outsideHeight != g.height {
		if g.width != 0 || g.height != 0 {
			g.events = append(g.events, eventResize)
		}
		g.width = outsideWidth
		g.height = outsideHeight
	}
	return outsideWidth, outsideHeight
}

// Run opens a window and plays the scene live until the user closes it.
// Window or graphics context failures surface as the returned error;
// rendering cannot proceed without them, so callers normally treat this as
// fatal.
func Run(scene *Scene, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = 1280
	}
	if cfg.Height <= 0 {
		cfg.Height = 720
	}
	if cfg.Title == "" {
		cfg.Title = "choreo"
	}

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	} else {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeDisabled)
	}
	ebiten.SetWindowClosingHandled(true)
	ebiten.SetVsyncEnabled(true)
	// Run Update once per displayed frame; the throttled clock decides
	// which of those frames actually advance the scene.
	ebiten.SetTPS(ebiten.SyncWithFPS)

	g := &game{
		scene:   scene,
		clock:   newThrottledClock(cfg.UpdateHz),
		sink:    displaySink{},
		showFPS: cfg.ShowFPS,
	}
	return ebiten.RunGame(g)
}
