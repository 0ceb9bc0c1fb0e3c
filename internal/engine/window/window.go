// Package window owns the SDL2 window and the OpenGL core context the
// pipeline renders into.
package window

import (
	"fmt"
	"runtime"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/glint/internal/logger"
)

func init() {
	// SDL and GL both require the thread that created the context.
	runtime.LockOSThread()
}

// Config selects the initial window state.
type Config struct {
	Title      string
	Width      int
	Height     int
	Fullscreen bool
	VSync      bool
}

// Window pairs an SDL window with its GL context.
type Window struct {
	win   *sdl.Window
	glCtx sdl.GLContext
}

// New initializes SDL, opens the window and creates a GL 4.1 core
// context. 4.1 is the newest profile macOS still exposes, so it is the
// floor everywhere.
func New(cfg Config) (*Window, error) {
	w := &Window{}

	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, fmt.Errorf("initializing sdl: %w", err)
	}

	// Context attributes must be set before the window exists.
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MAJOR_VERSION, 4)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MINOR_VERSION, 1)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE)
	sdl.GLSetAttribute(sdl.GL_DOUBLEBUFFER, 1)
	sdl.GLSetAttribute(sdl.GL_DEPTH_SIZE, 24)

	flags := uint32(sdl.WINDOW_OPENGL | sdl.WINDOW_SHOWN | sdl.WINDOW_RESIZABLE | sdl.WINDOW_ALLOW_HIGHDPI)
	if cfg.Fullscreen {
		flags |= sdl.WINDOW_FULLSCREEN
	}

	var err error
	w.win, err = sdl.CreateWindow(
		cfg.Title,
		sdl.WINDOWPOS_CENTERED,
		sdl.WINDOWPOS_CENTERED,
		int32(cfg.Width),
		int32(cfg.Height),
		flags,
	)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("creating window: %w", err)
	}

	w.glCtx, err = w.win.GLCreateContext()
	if err != nil {
		w.win.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("creating gl context: %w", err)
	}

	if cfg.VSync {
		if err := sdl.GLSetSwapInterval(1); err != nil {
			logger.Warn("vsync not available", zap.Error(err))
		}
	} else {
		sdl.GLSetSwapInterval(0)
	}

	logger.Info("window ready",
		zap.String("title", cfg.Title),
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
		zap.Bool("fullscreen", cfg.Fullscreen),
		zap.Bool("vsync", cfg.VSync),
	)
	return w, nil
}

// Close tears down the context, the window and SDL itself.
func (w *Window) Close() {
	if w.glCtx != nil {
		sdl.GLDeleteContext(w.glCtx)
	}
	if w.win != nil {
		w.win.Destroy()
	}
	sdl.Quit()
}

// Present swaps the back buffer onto the screen.
func (w *Window) Present() {
	w.win.GLSwap()
}

// Size returns the window extent in screen coordinates.
func (w *Window) Size() (int, int) {
	width, height := w.win.GetSize()
	return int(width), int(height)
}

// DrawableSize returns the GL drawable extent in pixels. On
// high-density displays this exceeds Size; render targets must be
// allocated against it.
func (w *Window) DrawableSize() (int32, int32) {
	return w.win.GLGetDrawableSize()
}

// SetTitle replaces the window title.
func (w *Window) SetTitle(title string) {
	w.win.SetTitle(title)
}
