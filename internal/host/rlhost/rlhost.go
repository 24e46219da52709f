// Package rlhost presents the screen in a raylib window. Raylib has no event
// queue, so key presses come from its pressed-key queue and releases from
// polling the keys seen going down.
package rlhost

import (
	"image/color"
	"slices"

	"doom-video/internal/config"
	"doom-video/internal/input"
	"doom-video/internal/video"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Keymap translates raylib key codes. Letters are folded to lower case before
// they reach it; see rawKey.
var Keymap = input.Keymap{
	rl.KeyLeft:         input.KeyLeftArrow,
	rl.KeyRight:        input.KeyRightArrow,
	rl.KeyDown:         input.KeyDownArrow,
	rl.KeyUp:           input.KeyUpArrow,
	rl.KeyEscape:       input.KeyEscape,
	rl.KeyEnter:        input.KeyEnter,
	rl.KeyKpEnter:      input.KeyEnter,
	rl.KeyTab:          input.KeyTab,
	rl.KeyF1:           input.KeyF1,
	rl.KeyF2:           input.KeyF2,
	rl.KeyF3:           input.KeyF3,
	rl.KeyF4:           input.KeyF4,
	rl.KeyF5:           input.KeyF5,
	rl.KeyF6:           input.KeyF6,
	rl.KeyF7:           input.KeyF7,
	rl.KeyF8:           input.KeyF8,
	rl.KeyF9:           input.KeyF9,
	rl.KeyF10:          input.KeyF10,
	rl.KeyF11:          input.KeyF11,
	rl.KeyF12:          input.KeyF12,
	rl.KeyBackspace:    input.KeyBackspace,
	rl.KeyDelete:       input.KeyBackspace,
	rl.KeyPause:        input.KeyPause,
	rl.KeyEqual:        input.KeyEquals,
	rl.KeyKpEqual:      input.KeyEquals,
	rl.KeyMinus:        input.KeyMinus,
	rl.KeyKpSubtract:   input.KeyMinus,
	rl.KeyLeftShift:    input.KeyRShift,
	rl.KeyRightShift:   input.KeyRShift,
	rl.KeyLeftControl:  input.KeyRCtrl,
	rl.KeyRightControl: input.KeyRCtrl,
	rl.KeyLeftAlt:      input.KeyRAlt,
	rl.KeyRightAlt:     input.KeyRAlt,
}

// rawKey turns a raylib key code into a host key. Raylib reports letters as
// upper-case ASCII; SDL keycodes, and so the engine, use lower case.
func rawKey(key int32) input.RawKey {
	if key >= 'A' && key <= 'Z' {
		key += 'a' - 'A'
	}
	return input.RawKey(key)
}

// Display is a raylib window showing a point-filtered texture.
type Display struct {
	width, height int
	winW, winH    int
	texture       rl.Texture2D
	staging       []uint32
	rgba          []color.RGBA
}

var _ video.Surface = (*Display)(nil)

// Open creates the window and a width x height texture. It matches video.Backend.
func Open(cfg config.Display, width, height int) (video.Surface, input.Source, error) {
	winW, winH := video.WindowSize(cfg.Scale)
	rl.SetTraceLogLevel(rl.LogWarning)
	rl.InitWindow(int32(winW), int32(winH), cfg.Title)
	// ESC belongs to the game; close via window button.
	rl.SetExitKey(rl.KeyNull)

	img := rl.GenImageColor(width, height, rl.Black)
	tex := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)

	if cfg.GrabMouse {
		rl.DisableCursor()
	}

	d := &Display{
		width:   width,
		height:  height,
		winW:    winW,
		winH:    winH,
		texture: tex,
		staging: make([]uint32, width*height),
		rgba:    make([]color.RGBA, width*height),
	}
	return d, &keys{}, nil
}

// Lock hands out the staging buffer; the texture is only touched on Unlock.
func (d *Display) Lock() (video.Pixels, error) {
	return video.Pixels{Pix: d.staging, Stride: d.width}, nil
}

// Unlock uploads the staging buffer to the texture.
func (d *Display) Unlock() {
	for i, p := range d.staging {
		d.rgba[i] = color.RGBA{R: uint8(p >> 16), G: uint8(p >> 8), B: uint8(p), A: 0xff}
	}
	rl.UpdateTexture(d.texture, d.rgba)
}

// Present draws the texture stretched over the window. EndDrawing also polls
// the window's input, feeding the next Poll batch.
func (d *Display) Present() error {
	src := rl.NewRectangle(0, 0, float32(d.width), float32(d.height))
	dst := rl.NewRectangle(0, 0, float32(d.winW), float32(d.winH))

	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)
	rl.DrawTexturePro(d.texture, src, dst, rl.NewVector2(0, 0), 0, rl.White)
	rl.EndDrawing()
	return nil
}

func (d *Display) Close() error {
	rl.UnloadTexture(d.texture)
	rl.CloseWindow()
	return nil
}

// keys turns raylib's per-frame key state into host events. One batch is
// collected per drain so the drain ends once the batch is consumed.
type keys struct {
	held      []int32
	pending   []input.HostEvent
	collected bool
}

func (k *keys) Poll() (input.HostEvent, bool) {
	if !k.collected {
		k.collect()
		k.collected = true
	}
	if len(k.pending) == 0 {
		k.collected = false
		return nil, false
	}
	ev := k.pending[0]
	k.pending = k.pending[1:]
	return ev, true
}

func (k *keys) collect() {
	if rl.WindowShouldClose() {
		k.pending = append(k.pending, input.Quit{})
		return
	}
	for {
		key := rl.GetKeyPressed()
		if key == 0 {
			break
		}
		if !slices.Contains(k.held, key) {
			k.held = append(k.held, key)
		}
		k.pending = append(k.pending, input.KeyDown{Raw: rawKey(key)})
	}
	k.held = slices.DeleteFunc(k.held, func(key int32) bool {
		if rl.IsKeyUp(key) {
			k.pending = append(k.pending, input.KeyUp{Raw: rawKey(key)})
			return true
		}
		return false
	})
}
