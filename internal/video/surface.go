package video

import (
	"doom-video/internal/config"
	"doom-video/internal/input"
)

// Logical resolution of the indexed frame buffer.
const (
	ScreenWidth  = 320
	ScreenHeight = 200
	// ScreenHeight43 is the window height that shows 320x200 at 4:3.
	ScreenHeight43 = 240
)

// Pixels is a locked truecolor backing store. Stride is the row length in
// pixels and is at least the surface width.
type Pixels struct {
	Pix    []uint32
	Stride int
}

// Surface is the host display target. Lock grants exclusive write access to
// the backing store until Unlock; Present shows the last unlocked content.
type Surface interface {
	Lock() (Pixels, error)
	Unlock()
	Present() error
	Close() error
}

// Backend opens a host display with a width x height staging texture and
// returns its surface and event source.
type Backend func(cfg config.Display, width, height int) (Surface, input.Source, error)

// WindowSize returns the on-screen size for a scale factor: the logical width
// and the 4:3 height, both multiplied by scale.
func WindowSize(scale int) (w, h int) {
	if scale < 1 {
		scale = 1
	}
	return ScreenWidth * scale, ScreenHeight43 * scale
}
