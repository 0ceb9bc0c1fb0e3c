// Package app runs the demo application: window and input setup, the
// frame loop, scene submission, and the HUD.
package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/glint/internal/config"
	"github.com/Faultbox/glint/internal/engine/camera"
	"github.com/Faultbox/glint/internal/engine/debug"
	"github.com/Faultbox/glint/internal/engine/input"
	"github.com/Faultbox/glint/internal/engine/overlay"
	"github.com/Faultbox/glint/internal/engine/pipeline"
	"github.com/Faultbox/glint/internal/engine/renderer"
	"github.com/Faultbox/glint/internal/engine/scene"
	"github.com/Faultbox/glint/internal/engine/window"
	"github.com/Faultbox/glint/internal/logger"
)

const windowTitle = "Glint"

// App wires the window, renderer, input, and demo scene into the main
// loop.
type App struct {
	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	cam      *camera.Orthographic
	cb       *scene.CommandBuffer
	hud      *overlay.Overlay
	capture  *debug.FrameCapture
	demo     *demoScene

	running   bool
	showFPS   bool
	showStats bool

	// pixelScale converts window coordinates (mouse events) into
	// drawable pixels on high-density displays.
	pixelScale float32
	panX, panY float32
	leftDown   bool

	captureQueued bool

	// frameCap is the minimum frame duration when an FPS limit is
	// configured; zero means uncapped.
	frameCap time.Duration

	fps      float64
	frames   int
	fpsTimer time.Time
}

// New creates the window, OpenGL context, renderer, and demo scene.
func New(cfg config.Config) (*App, error) {
	a := &App{
		showFPS:    cfg.Debug.ShowFPS,
		showStats:  cfg.Debug.ShowStats,
		pixelScale: 1,
	}
	if cfg.Graphics.FPSLimit > 0 {
		a.frameCap = time.Second / time.Duration(cfg.Graphics.FPSLimit)
	}

	var err error
	a.window, err = window.New(window.Config{
		Title:      windowTitle,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("creating window: %w", err)
	}

	// Render targets track the drawable, not the window: on
	// high-density displays those differ.
	dw, dh := a.window.DrawableSize()
	ww, _ := a.window.Size()
	if ww > 0 {
		a.pixelScale = float32(dw) / float32(ww)
	}
	if int(dw) != ww {
		logger.Info("high-density display",
			zap.Int("window", ww),
			zap.Int32("drawable", dw),
			zap.Float32("scale", a.pixelScale),
		)
	}

	a.renderer, err = renderer.New(renderer.Config{
		Width:       dw,
		Height:      dh,
		ClearColor:  cfg.Renderer.ClearColor,
		Ambient:     cfg.Renderer.Ambient,
		Emission:    cfg.Renderer.Emission,
		LightCutoff: cfg.Renderer.LightCutoff,
		MaxQuads:    cfg.Renderer.MaxQuads,
	})
	if err != nil {
		a.window.Close()
		return nil, fmt.Errorf("creating renderer: %w", err)
	}

	if cfg.Debug.Channel != "" {
		ch, err := pipeline.ParseChannel(cfg.Debug.Channel)
		if err != nil {
			logger.Warn("ignoring channel setting", zap.Error(err))
		} else {
			a.renderer.SetMode(pipeline.ModeChannel)
			a.renderer.SetChannel(ch)
		}
	}

	a.demo, err = newDemoScene(a.renderer)
	if err != nil {
		a.renderer.Close()
		a.window.Close()
		return nil, fmt.Errorf("building demo scene: %w", err)
	}

	a.input = input.New()
	a.cam = camera.NewOrthographic(float32(dw), float32(dh))
	a.cb = scene.NewCommandBuffer()
	a.hud = overlay.New()
	a.capture = debug.NewFrameCapture(cfg.Debug.CaptureDir, "frame")

	logger.Info("demo ready", zap.Int32("width", dw), zap.Int32("height", dh))
	return a, nil
}

// Run drives the frame loop until quit.
func (a *App) Run() error {
	a.running = true
	lastTime := time.Now()
	a.fpsTimer = time.Now()

	logger.Info("entering frame loop")

	for a.running {
		now := time.Now()
		dt := now.Sub(lastTime).Seconds()
		lastTime = now

		if a.input.Update() {
			a.running = false
			break
		}
		a.handleEvents()

		a.demo.advance(float32(dt))

		if err := a.renderFrame(); err != nil {
			if errors.Is(err, renderer.ErrSurfaceLost) {
				// Nothing to present; avoid spinning while minimized.
				time.Sleep(50 * time.Millisecond)
				continue
			}
			return fmt.Errorf("rendering frame: %w", err)
		}

		a.window.Present()
		a.countFrame()

		if a.frameCap > 0 {
			if left := a.frameCap - time.Since(now); left > 0 {
				time.Sleep(left)
			}
		}
	}
	return nil
}

// Close releases the scene, renderer, and window.
func (a *App) Close() {
	logger.Info("shutting down")
	if a.hud != nil {
		a.hud.Destroy()
	}
	if a.demo != nil {
		a.demo.destroy()
	}
	if a.renderer != nil {
		a.renderer.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
}

func (a *App) handleEvents() {
	for _, e := range a.input.Events() {
		switch e.Type {
		case input.EventQuit:
			a.running = false

		case input.EventWindowResize:
			dw, dh := a.window.DrawableSize()
			if e.Width > 0 {
				a.pixelScale = float32(dw) / float32(e.Width)
			}
			a.renderer.Resize(dw, dh)
			a.cam.Resize(float32(dw), float32(dh))

		case input.EventKeyDown:
			a.handleKey(e.Key)

		case input.EventMouseDown:
			if e.Button == sdl.BUTTON_LEFT {
				a.leftDown = true
			}

		case input.EventMouseUp:
			if e.Button == sdl.BUTTON_LEFT {
				a.leftDown = false
			}

		case input.EventMouseMove:
			if a.leftDown {
				a.panX -= float32(e.RelX) * a.pixelScale
				a.panY -= float32(e.RelY) * a.pixelScale
			}
		}
	}

	a.cam.Position.X = a.panX
	a.cam.Position.Y = a.panY
}

func (a *App) handleKey(key sdl.Scancode) {
	switch key {
	case sdl.SCANCODE_ESCAPE:
		a.running = false

	case sdl.SCANCODE_TAB:
		if a.renderer.Mode() == pipeline.ModeLit {
			a.renderer.SetMode(pipeline.ModeChannel)
		} else {
			a.renderer.SetMode(pipeline.ModeLit)
		}

	case sdl.SCANCODE_1, sdl.SCANCODE_2, sdl.SCANCODE_3, sdl.SCANCODE_4:
		ch := pipeline.Channel(key - sdl.SCANCODE_1)
		a.renderer.SetMode(pipeline.ModeChannel)
		a.renderer.SetChannel(ch)
		logger.Debug("channel selected", zap.Stringer("channel", ch))

	case sdl.SCANCODE_C:
		// Cycle channels without leaving the channel view.
		if a.renderer.Mode() == pipeline.ModeChannel {
			a.renderer.SetChannel(a.renderer.Channel().Next())
		}

	case sdl.SCANCODE_SPACE:
		a.demo.paused = !a.demo.paused

	case sdl.SCANCODE_R:
		a.panX, a.panY = 0, 0

	case sdl.SCANCODE_F1:
		show := !(a.showFPS || a.showStats)
		a.showFPS, a.showStats = show, show

	case sdl.SCANCODE_F12:
		a.captureQueued = true
	}
}

func (a *App) renderFrame() error {
	a.cb.Reset()

	w, h := a.renderer.Size()
	a.demo.submit(a.cb, float32(w), float32(h))
	a.submitHUD(float32(w), float32(h))

	if err := a.renderer.RenderFrame(a.cb.Snapshot(a.cam.Uniform())); err != nil {
		return err
	}

	if a.captureQueued {
		a.captureQueued = false
		a.captureFrame()
	}

	a.hud.FrameEnd()
	return nil
}

func (a *App) submitHUD(w, h float32) {
	pad := float32(10)

	lines := make([]string, 0, 3)
	colors := make([]overlay.Color, 0, 3)

	if a.showFPS {
		lines = append(lines, fmt.Sprintf("fps %d", int(a.fps+0.5)))
		colors = append(colors, overlay.ColorText)
	}
	if a.showStats {
		drawn, skipped := a.renderer.QuadStats()
		lines = append(lines, fmt.Sprintf("quads %d skipped %d lights %d", drawn, skipped, a.demo.lightCount()))
		colors = append(colors, overlay.ColorTextDim)
	}

	mode := "view lit"
	modeColor := overlay.ColorText
	if a.renderer.Mode() == pipeline.ModeChannel {
		mode = "view " + a.renderer.Channel().String()
		modeColor = overlay.ColorHighlight
	}
	if a.demo.paused {
		mode += " paused"
		modeColor = overlay.ColorWarning
	}
	lines = append(lines, mode)
	colors = append(colors, modeColor)

	maxW, lineH := float32(0), float32(0)
	for _, s := range lines {
		lw, lh := a.hud.LabelSize(s)
		if lw > maxW {
			maxW = lw
		}
		if lh > lineH {
			lineH = lh
		}
	}

	a.hud.Panel(a.cb, pad, pad, maxW+2*pad, float32(len(lines))*(lineH+4)+2*pad-4, overlay.ColorPanelBg)
	y := 2 * pad
	for i, s := range lines {
		a.hud.Label(a.cb, s, 2*pad, y, colors[i])
		y += lineH + 4
	}

	title := "glint"
	tw, _ := a.hud.LabelSize(title)
	a.hud.Label(a.cb, title, w-tw-pad, pad, overlay.ColorTextDim)

	help := "tab view  1-4 channel  c cycle  space pause  drag pan  r reset  f1 hud  f12 capture  esc quit"
	_, helpH := a.hud.LabelSize(help)
	a.hud.Label(a.cb, help, pad, h-helpH-pad, overlay.ColorTextDim)
}

func (a *App) captureFrame() {
	pixels, w, h := a.renderer.CapturePixels()
	path, err := a.capture.CaptureFromPixels(pixels, int(w), int(h))
	if err != nil {
		logger.Error("frame capture failed", zap.Error(err))
		return
	}
	logger.Info("frame captured", zap.String("path", path))
}

func (a *App) countFrame() {
	a.frames++
	if since := time.Since(a.fpsTimer); since >= time.Second {
		a.fps = float64(a.frames) / since.Seconds()
		a.frames = 0
		a.fpsTimer = time.Now()
		a.window.SetTitle(fmt.Sprintf("%s (%d fps)", windowTitle, int(a.fps+0.5)))
		logger.Debug("fps", zap.Float64("fps", a.fps))
	}
}
