// Package termhost presents the screen in a truecolor terminal, two pixels per
// character cell, and reads keys from the terminal.
package termhost

import (
	"image"

	"doom-video/internal/config"
	"doom-video/internal/input"
	"doom-video/internal/video"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/image/draw"
)

// upperHalf is drawn with the top pixel as foreground and the bottom pixel as
// background.
const upperHalf = '▀'

// eventBuffer is the capacity of the channel between the terminal reader and Poll.
const eventBuffer = 256

// namedKeyBit marks tcell's named keys (arrows, function keys) so they cannot
// collide with runes above 255.
const namedKeyBit = 1 << 30

// Keymap translates terminal keys. Printable keys arrive as their rune and pass
// through; ASCII control keys arrive as their code.
var Keymap = input.Keymap{
	named(tcell.KeyLeft):              input.KeyLeftArrow,
	named(tcell.KeyRight):             input.KeyRightArrow,
	named(tcell.KeyDown):              input.KeyDownArrow,
	named(tcell.KeyUp):                input.KeyUpArrow,
	input.RawKey(tcell.KeyEscape):     input.KeyEscape,
	input.RawKey(tcell.KeyEnter):      input.KeyEnter,
	input.RawKey(tcell.KeyTab):        input.KeyTab,
	named(tcell.KeyF1):                input.KeyF1,
	named(tcell.KeyF2):                input.KeyF2,
	named(tcell.KeyF3):                input.KeyF3,
	named(tcell.KeyF4):                input.KeyF4,
	named(tcell.KeyF5):                input.KeyF5,
	named(tcell.KeyF6):                input.KeyF6,
	named(tcell.KeyF7):                input.KeyF7,
	named(tcell.KeyF8):                input.KeyF8,
	named(tcell.KeyF9):                input.KeyF9,
	named(tcell.KeyF10):               input.KeyF10,
	named(tcell.KeyF11):               input.KeyF11,
	named(tcell.KeyF12):               input.KeyF12,
	input.RawKey(tcell.KeyBackspace):  input.KeyBackspace,
	input.RawKey(tcell.KeyBackspace2): input.KeyBackspace,
	named(tcell.KeyDelete):            input.KeyBackspace,
	named(tcell.KeyPause):             input.KeyPause,
}

// Display draws into a tcell screen, scaling the frame to the terminal size.
type Display struct {
	screen  tcell.Screen
	width   int
	height  int
	staging []uint32
	frame   *image.RGBA
	cells   *image.RGBA
	keys    *keys
}

var _ video.Surface = (*Display)(nil)

// Open takes over the terminal. It matches video.Backend. The scale factor has
// no meaning here; the frame always fills the terminal.
func Open(cfg config.Display, width, height int) (video.Surface, input.Source, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, nil, err
	}
	if err := s.Init(); err != nil {
		return nil, nil, err
	}
	if cfg.GrabMouse {
		s.EnableMouse()
	}
	d := newDisplay(s, width, height)
	d.keys = newKeys(s, eventBuffer)
	return d, d.keys, nil
}

func newDisplay(s tcell.Screen, width, height int) *Display {
	s.HideCursor()
	s.Clear()
	return &Display{
		screen:  s,
		width:   width,
		height:  height,
		staging: make([]uint32, width*height),
		frame:   image.NewRGBA(image.Rect(0, 0, width, height)),
	}
}

func (d *Display) Lock() (video.Pixels, error) {
	return video.Pixels{Pix: d.staging, Stride: d.width}, nil
}

func (d *Display) Unlock() {
	for i, p := range d.staging {
		o := i * 4
		d.frame.Pix[o] = uint8(p >> 16)
		d.frame.Pix[o+1] = uint8(p >> 8)
		d.frame.Pix[o+2] = uint8(p)
		d.frame.Pix[o+3] = 0xff
	}
}

// Present scales the last unlocked frame to two rows of pixels per terminal
// row and shows it.
func (d *Display) Present() error {
	cols, rows := d.screen.Size()
	if cols <= 0 || rows <= 0 {
		return nil
	}
	if d.cells == nil || d.cells.Rect.Dx() != cols || d.cells.Rect.Dy() != rows*2 {
		d.cells = image.NewRGBA(image.Rect(0, 0, cols, rows*2))
	}
	draw.NearestNeighbor.Scale(d.cells, d.cells.Bounds(), d.frame, d.frame.Bounds(), draw.Src, nil)

	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			top := d.cells.RGBAAt(x, 2*y)
			bottom := d.cells.RGBAAt(x, 2*y+1)
			style := tcell.StyleDefault.
				Foreground(tcell.NewRGBColor(int32(top.R), int32(top.G), int32(top.B))).
				Background(tcell.NewRGBColor(int32(bottom.R), int32(bottom.G), int32(bottom.B)))
			d.screen.SetContent(x, y, upperHalf, nil, style)
		}
	}
	d.screen.Show()
	return nil
}

// Close stops the reader goroutine and restores the terminal.
func (d *Display) Close() error {
	if d.keys != nil {
		d.keys.stop()
	}
	d.screen.Fini()
	return nil
}

// keys forwards terminal events from a reader goroutine. Terminals report no
// key releases, so each press is followed by a synthetic release.
type keys struct {
	ch      chan tcell.Event
	done    chan struct{}
	pending []input.HostEvent
}

// newKeys starts the reader. It closes ch when the screen is finalized or
// stop is called, even if nobody is draining ch.
func newKeys(s tcell.Screen, buffer int) *keys {
	k := &keys{ch: make(chan tcell.Event, buffer), done: make(chan struct{})}
	go func() {
		defer close(k.ch)
		for {
			ev := s.PollEvent()
			if ev == nil {
				return
			}
			select {
			case k.ch <- ev:
			case <-k.done:
				return
			}
		}
	}()
	return k
}

func (k *keys) stop() {
	close(k.done)
}

func (k *keys) Poll() (input.HostEvent, bool) {
	if len(k.pending) == 0 {
		select {
		case ev, ok := <-k.ch:
			if !ok {
				return nil, false
			}
			k.pending = decode(ev)
		default:
			return nil, false
		}
	}
	ev := k.pending[0]
	k.pending = k.pending[1:]
	return ev, true
}

func decode(ev tcell.Event) []input.HostEvent {
	switch e := ev.(type) {
	case *tcell.EventKey:
		if e.Key() == tcell.KeyCtrlC {
			return []input.HostEvent{input.Quit{}}
		}
		raw := rawKey(e)
		return []input.HostEvent{input.KeyDown{Raw: raw}, input.KeyUp{Raw: raw}}
	}
	return []input.HostEvent{input.Other{}}
}

func rawKey(e *tcell.EventKey) input.RawKey {
	switch k := e.Key(); {
	case k == tcell.KeyRune:
		return input.RawKey(e.Rune())
	case k < tcell.KeyRune:
		return input.RawKey(k)
	default:
		return named(k)
	}
}

func named(k tcell.Key) input.RawKey {
	return input.RawKey(k) | namedKeyBit
}
