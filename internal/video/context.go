// Package video presents an indexed-colour frame buffer on a host display and
// turns host input into engine events.
package video

import (
	"errors"
	"fmt"
	"sync"

	"doom-video/internal/config"
	"doom-video/internal/debug"
	"doom-video/internal/input"
	"doom-video/internal/logger"
	"doom-video/internal/palette"
)

var (
	// ErrQuit is returned by FinishUpdate once the host has asked to quit.
	ErrQuit = errors.New("video: quit requested")
	// ErrNotInitialized is returned when drawing or polling before Init.
	ErrNotInitialized = errors.New("video: display not initialized")
	// ErrShortStore is returned when a locked backing store cannot hold a frame.
	ErrShortStore = errors.New("video: backing store too small")
)

// Context owns everything a running display needs: the indexed screen, the
// palette, the host surface and input source, and the event sink.
// It is driven from a single goroutine.
type Context struct {
	cfg     config.Display
	width   int
	height  int
	screen  []byte
	palette palette.Store

	backend Backend
	keymap  input.Keymap
	sink    input.Sink
	log     *logger.Logger
	meter   *debug.Meter

	surface Surface
	source  input.Source

	initOnce  sync.Once
	initErr   error
	closeOnce sync.Once
	closeErr  error

	quit   bool
	frames uint64
}

// New returns a context for a width x height screen. Nothing is opened until
// Init. The config is copied and never re-read.
func New(width, height int, cfg config.Display, backend Backend, km input.Keymap, sink input.Sink, log *logger.Logger) *Context {
	if log == nil {
		log = logger.New("")
	}
	return &Context{
		cfg:     cfg,
		width:   width,
		height:  height,
		screen:  make([]byte, width*height),
		backend: backend,
		keymap:  km,
		sink:    sink,
		log:     log,
		meter:   debug.New(cfg.ShowFPS, cfg.ShowMemAlloc),
	}
}

// Init opens the host display. Only the first call does any work; later calls
// return the first call's result.
func (c *Context) Init() error {
	c.initOnce.Do(func() {
		if err := c.cfg.Validate(); err != nil {
			c.initErr = err
			return
		}
		if err := c.palette.SetGamma(c.cfg.Gamma); err != nil {
			c.initErr = err
			return
		}
		surface, source, err := c.backend(c.cfg, c.width, c.height)
		if err != nil {
			c.initErr = fmt.Errorf("video: open %s display: %w", c.cfg.Backend, err)
			c.log.Log(c.initErr.Error())
			return
		}
		c.surface, c.source = surface, source
		w, h := WindowSize(c.cfg.Scale)
		c.log.Logf("video: %s display %dx%d (screen %dx%d, grab mouse %v)",
			c.cfg.Backend, w, h, c.width, c.height, c.cfg.GrabMouse)
	})
	return c.initErr
}

// Shutdown closes the host display. Later calls are no-ops.
func (c *Context) Shutdown() error {
	c.closeOnce.Do(func() {
		if c.surface == nil {
			return
		}
		c.closeErr = c.surface.Close()
		c.log.Logf("video: shutdown after %d frames", c.frames)
	})
	return c.closeErr
}

// Config returns the display settings in use.
func (c *Context) Config() config.Display {
	return c.cfg
}

// Size returns the logical screen size.
func (c *Context) Size() (width, height int) {
	return c.width, c.height
}

// Screen returns the indexed frame buffer for the renderer to draw into.
func (c *Context) Screen() []byte {
	return c.screen
}

// SetPalette replaces the colour table with 768 raw r,g,b bytes. Shorter input
// is rejected and the current palette is kept.
func (c *Context) SetPalette(raw []byte) error {
	return c.palette.Set(raw)
}

// SetGamma changes the gamma correction level.
func (c *Context) SetGamma(level int) error {
	return c.palette.SetGamma(level)
}

// Palette returns the current colour table.
func (c *Context) Palette() *palette.Palette {
	return c.palette.Palette()
}

// StartTic drains all pending host events into the sink. It reports true once
// the host has asked to quit; from then on no frame is presented.
func (c *Context) StartTic() (quit bool) {
	if c.quit {
		return true
	}
	if c.source == nil {
		return false
	}
	_, quit = input.Drain(c.source, c.keymap, c.sink)
	if quit {
		c.quit = true
		c.log.Log("video: quit requested")
	}
	return quit
}

// Quit reports whether a quit has been observed.
func (c *Context) Quit() bool {
	return c.quit
}

// Frames returns the number of frames presented.
func (c *Context) Frames() uint64 {
	return c.frames
}

// FinishUpdate composites the screen through the palette into the surface and
// presents it. A failed frame is logged and returned; the next frame starts
// from scratch.
func (c *Context) FinishUpdate() error {
	if c.quit {
		return ErrQuit
	}
	if c.surface == nil {
		return ErrNotInitialized
	}
	if err := c.upload(); err != nil {
		c.log.Logf("video: frame %d skipped: %v", c.frames, err)
		return err
	}
	if err := c.surface.Present(); err != nil {
		err = fmt.Errorf("video: present: %w", err)
		c.log.Logf("video: frame %d: %v", c.frames, err)
		return err
	}
	c.frames++
	if report, ok := c.meter.Frame(); ok {
		c.log.Log("video: " + report)
	}
	return nil
}

// upload holds the surface lock for exactly the fill loop.
func (c *Context) upload() error {
	px, err := c.surface.Lock()
	if err != nil {
		return fmt.Errorf("video: lock surface: %w", err)
	}
	defer c.surface.Unlock()

	if px.Stride < c.width || len(px.Pix) < (c.height-1)*px.Stride+c.width {
		return fmt.Errorf("%w: %d pixels, stride %d", ErrShortStore, len(px.Pix), px.Stride)
	}
	Fill(px, c.screen, c.width, c.height, c.palette.Palette())
	return nil
}

// ReadScreen returns a copy of the indexed frame buffer.
func (c *Context) ReadScreen() []byte {
	out := make([]byte, len(c.screen))
	copy(out, c.screen)
	return out
}

// ReadScreenInto copies the indexed frame buffer into dst and returns the
// number of bytes copied.
func (c *Context) ReadScreenInto(dst []byte) int {
	return copy(dst, c.screen)
}
