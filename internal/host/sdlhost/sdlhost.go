// Package sdlhost presents the screen through an SDL2 window with a streaming
// texture and reads input from the SDL event queue.
package sdlhost

import (
	"fmt"
	"unsafe"

	"doom-video/internal/config"
	"doom-video/internal/input"
	"doom-video/internal/video"

	"github.com/veandco/go-sdl2/sdl"
)

// Keymap translates SDL keycodes.
var Keymap = input.Keymap{
	input.RawKey(sdl.K_LEFT):      input.KeyLeftArrow,
	input.RawKey(sdl.K_RIGHT):     input.KeyRightArrow,
	input.RawKey(sdl.K_DOWN):      input.KeyDownArrow,
	input.RawKey(sdl.K_UP):        input.KeyUpArrow,
	input.RawKey(sdl.K_ESCAPE):    input.KeyEscape,
	input.RawKey(sdl.K_RETURN):    input.KeyEnter,
	input.RawKey(sdl.K_TAB):       input.KeyTab,
	input.RawKey(sdl.K_F1):        input.KeyF1,
	input.RawKey(sdl.K_F2):        input.KeyF2,
	input.RawKey(sdl.K_F3):        input.KeyF3,
	input.RawKey(sdl.K_F4):        input.KeyF4,
	input.RawKey(sdl.K_F5):        input.KeyF5,
	input.RawKey(sdl.K_F6):        input.KeyF6,
	input.RawKey(sdl.K_F7):        input.KeyF7,
	input.RawKey(sdl.K_F8):        input.KeyF8,
	input.RawKey(sdl.K_F9):        input.KeyF9,
	input.RawKey(sdl.K_F10):       input.KeyF10,
	input.RawKey(sdl.K_F11):       input.KeyF11,
	input.RawKey(sdl.K_F12):       input.KeyF12,
	input.RawKey(sdl.K_BACKSPACE): input.KeyBackspace,
	input.RawKey(sdl.K_DELETE):    input.KeyBackspace,
	input.RawKey(sdl.K_PAUSE):     input.KeyPause,
	input.RawKey(sdl.K_KP_EQUALS): input.KeyEquals,
	input.RawKey(sdl.K_EQUALS):    input.KeyEquals,
	input.RawKey(sdl.K_KP_MINUS):  input.KeyMinus,
	input.RawKey(sdl.K_MINUS):     input.KeyMinus,
	input.RawKey(sdl.K_LSHIFT):    input.KeyRShift,
	input.RawKey(sdl.K_RSHIFT):    input.KeyRShift,
	input.RawKey(sdl.K_LCTRL):     input.KeyRCtrl,
	input.RawKey(sdl.K_RCTRL):     input.KeyRCtrl,
	input.RawKey(sdl.K_LALT):      input.KeyRAlt,
	input.RawKey(sdl.K_RALT):      input.KeyRAlt,
}

// Display is an SDL window, renderer and streaming texture.
type Display struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture
}

var _ video.Surface = (*Display)(nil)

// Open creates the window and a width x height RGB888 texture scaled to fill it.
// It matches video.Backend.
func Open(cfg config.Display, width, height int) (video.Surface, input.Source, error) {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return nil, nil, fmt.Errorf("sdl init: %w", err)
	}
	winW, winH := video.WindowSize(cfg.Scale)

	d := &Display{}
	var err error
	d.window, err = sdl.CreateWindow(cfg.Title, sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED,
		int32(winW), int32(winH), sdl.WINDOW_SHOWN)
	if err != nil {
		sdl.Quit()
		return nil, nil, fmt.Errorf("create window: %w", err)
	}
	d.renderer, err = sdl.CreateRenderer(d.window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		d.window.Destroy()
		sdl.Quit()
		return nil, nil, fmt.Errorf("create renderer: %w", err)
	}
	sdl.SetHint(sdl.HINT_RENDER_SCALE_QUALITY, "0")
	d.texture, err = d.renderer.CreateTexture(sdl.PIXELFORMAT_RGB888, sdl.TEXTUREACCESS_STREAMING,
		int32(width), int32(height))
	if err != nil {
		d.renderer.Destroy()
		d.window.Destroy()
		sdl.Quit()
		return nil, nil, fmt.Errorf("create texture: %w", err)
	}

	if cfg.GrabMouse {
		sdl.SetRelativeMouseMode(true)
	}
	return d, events{}, nil
}

// Lock maps the texture for writing. RGB888 stores each pixel as a native
// 0x00RRGGBB word.
func (d *Display) Lock() (video.Pixels, error) {
	buf, pitch, err := d.texture.Lock(nil)
	if err != nil {
		return video.Pixels{}, err
	}
	if len(buf) < 4 {
		d.texture.Unlock()
		return video.Pixels{}, fmt.Errorf("texture lock returned %d bytes", len(buf))
	}
	pix := unsafe.Slice((*uint32)(unsafe.Pointer(&buf[0])), len(buf)/4)
	return video.Pixels{Pix: pix, Stride: pitch / 4}, nil
}

func (d *Display) Unlock() {
	d.texture.Unlock()
}

// Present copies the texture over the whole window and flips.
func (d *Display) Present() error {
	if err := d.renderer.Copy(d.texture, nil, nil); err != nil {
		return err
	}
	d.renderer.Present()
	return nil
}

// Close releases resources in reverse order of creation and shuts SDL down.
func (d *Display) Close() error {
	if d.texture != nil {
		d.texture.Destroy()
		d.texture = nil
	}
	if d.renderer != nil {
		d.renderer.Destroy()
		d.renderer = nil
	}
	if d.window != nil {
		d.window.Destroy()
		d.window = nil
	}
	sdl.Quit()
	return nil
}

// events reads the SDL event queue.
type events struct{}

func (events) Poll() (input.HostEvent, bool) {
	ev := sdl.PollEvent()
	if ev == nil {
		return nil, false
	}
	return decode(ev), true
}

func decode(ev sdl.Event) input.HostEvent {
	switch e := ev.(type) {
	case *sdl.KeyboardEvent:
		raw := input.RawKey(e.Keysym.Sym)
		if e.Type == sdl.KEYDOWN {
			return input.KeyDown{Raw: raw}
		}
		return input.KeyUp{Raw: raw}
	case *sdl.QuitEvent:
		return input.Quit{}
	}
	return input.Other{}
}
