package video

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"doom-video/internal/config"
	"doom-video/internal/input"
	"doom-video/internal/palette"
)

type fakeSurface struct {
	w, h    int
	stride  int
	pix     []uint32
	calls   []string
	locked  bool
	lockErr error
	presErr error
	closed  int
	shown   []uint32
}

func newFakeSurface(w, h, stride int) *fakeSurface {
	return &fakeSurface{w: w, h: h, stride: stride, pix: make([]uint32, stride*h)}
}

func (s *fakeSurface) Lock() (Pixels, error) {
	s.calls = append(s.calls, "lock")
	if s.lockErr != nil {
		return Pixels{}, s.lockErr
	}
	s.locked = true
	return Pixels{Pix: s.pix, Stride: s.stride}, nil
}

func (s *fakeSurface) Unlock() {
	s.calls = append(s.calls, "unlock")
	s.locked = false
}

func (s *fakeSurface) Present() error {
	s.calls = append(s.calls, "present")
	if s.locked {
		return errors.New("present while locked")
	}
	if s.presErr != nil {
		return s.presErr
	}
	s.shown = append(s.shown[:0], s.pix...)
	return nil
}

func (s *fakeSurface) Close() error {
	s.closed++
	return nil
}

type fakeSource struct {
	events []input.HostEvent
}

func (s *fakeSource) Poll() (input.HostEvent, bool) {
	if len(s.events) == 0 {
		return nil, false
	}
	ev := s.events[0]
	s.events = s.events[1:]
	return ev, true
}

type harness struct {
	ctx     *Context
	surface *fakeSurface
	source  *fakeSource
	queue   *input.Queue
	opens   int
}

func newHarness(t *testing.T, w, h, stride int) *harness {
	t.Helper()
	hs := &harness{
		surface: newFakeSurface(w, h, stride),
		source:  &fakeSource{},
		queue:   input.NewQueue(),
	}
	backend := func(cfg config.Display, width, height int) (Surface, input.Source, error) {
		hs.opens++
		return hs.surface, hs.source, nil
	}
	km := input.Keymap{1000: input.KeyLeftArrow}
	hs.ctx = New(w, h, config.Default(), backend, km, hs.queue, nil)
	if err := hs.ctx.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	return hs
}

func TestPackAllIndices(t *testing.T) {
	var p palette.Palette
	for i := range p {
		p[i] = palette.RGB{R: uint8(i), G: uint8(255 - i), B: uint8(i * 3)}
	}
	for v := 0; v < palette.Size; v++ {
		c := p[v]
		want := uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
		got := Composite([]byte{byte(v)}, &p)
		if len(got) != 1 || got[0] != want {
			t.Fatalf("Composite([%d]) = %x, want %x", v, got, want)
		}
		if got[0]>>24 != 0 {
			t.Fatalf("high byte set for %d", v)
		}
	}
}

func TestCompositeGrayscale(t *testing.T) {
	var p palette.Palette
	if err := p.Decode(palette.Grayscale()); err != nil {
		t.Fatal(err)
	}
	got := Composite([]byte{0, 128, 255}, &p)
	want := []uint32{0x000000, 0x808080, 0xFFFFFF}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("pixel %d = %06x, want %06x", i, got[i], want[i])
		}
	}
}

func TestCompositeDeterministic(t *testing.T) {
	var p palette.Palette
	for i := range p {
		p[i] = palette.RGB{R: uint8(i * 5), G: uint8(i * 11), B: uint8(i * 17)}
	}
	indexed := make([]byte, 64)
	for i := range indexed {
		indexed[i] = byte(i * 37)
	}
	a := Composite(indexed, &p)
	b := Composite(indexed, &p)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("pixel %d differs between runs", i)
		}
	}
}

func TestFillHonoursStride(t *testing.T) {
	var p palette.Palette
	if err := p.Decode(palette.Grayscale()); err != nil {
		t.Fatal(err)
	}
	const w, h, stride = 3, 2, 5
	dst := Pixels{Pix: make([]uint32, stride*h), Stride: stride}
	for i := range dst.Pix {
		dst.Pix[i] = 0xdeadbeef
	}
	Fill(dst, []byte{1, 2, 3, 4, 5, 6}, w, h, &p)
	want := []uint32{
		0x010101, 0x020202, 0x030303, 0xdeadbeef, 0xdeadbeef,
		0x040404, 0x050505, 0x060606, 0xdeadbeef, 0xdeadbeef,
	}
	for i := range want {
		if dst.Pix[i] != want[i] {
			t.Errorf("Pix[%d] = %x, want %x", i, dst.Pix[i], want[i])
		}
	}
}

func TestFinishUpdateOrder(t *testing.T) {
	hs := newHarness(t, 4, 2, 4)
	if err := hs.ctx.SetPalette(palette.Grayscale()); err != nil {
		t.Fatal(err)
	}
	copy(hs.ctx.Screen(), []byte{0, 128, 255, 1, 2, 3, 4, 5})

	if err := hs.ctx.FinishUpdate(); err != nil {
		t.Fatalf("FinishUpdate: %v", err)
	}
	if got := strings.Join(hs.surface.calls, ","); got != "lock,unlock,present" {
		t.Errorf("calls = %s", got)
	}
	want := []uint32{0x000000, 0x808080, 0xffffff, 0x010101, 0x020202, 0x030303, 0x040404, 0x050505}
	for i := range want {
		if hs.surface.shown[i] != want[i] {
			t.Errorf("shown[%d] = %06x, want %06x", i, hs.surface.shown[i], want[i])
		}
	}
	if hs.ctx.Frames() != 1 {
		t.Errorf("Frames = %d, want 1", hs.ctx.Frames())
	}
}

func TestFinishUpdateLockFailure(t *testing.T) {
	hs := newHarness(t, 2, 2, 2)
	hs.surface.lockErr = errors.New("device lost")
	for i := range hs.surface.pix {
		hs.surface.pix[i] = 7
	}

	err := hs.ctx.FinishUpdate()
	if err == nil || !strings.Contains(err.Error(), "device lost") {
		t.Fatalf("err = %v", err)
	}
	if got := strings.Join(hs.surface.calls, ","); got != "lock" {
		t.Errorf("calls = %s, want only lock", got)
	}
	for i, v := range hs.surface.pix {
		if v != 7 {
			t.Fatalf("pix[%d] written despite failed lock", i)
		}
	}

	// The next frame is unaffected.
	hs.surface.lockErr = nil
	hs.surface.calls = nil
	if err := hs.ctx.FinishUpdate(); err != nil {
		t.Fatalf("recovery frame: %v", err)
	}
	if hs.ctx.Frames() != 1 {
		t.Errorf("Frames = %d, want 1", hs.ctx.Frames())
	}
}

func TestFinishUpdateShortStoreUnlocks(t *testing.T) {
	hs := newHarness(t, 4, 4, 4)
	hs.surface.pix = hs.surface.pix[:5]
	err := hs.ctx.FinishUpdate()
	if !errors.Is(err, ErrShortStore) {
		t.Fatalf("err = %v, want ErrShortStore", err)
	}
	if hs.surface.locked {
		t.Error("surface left locked")
	}
	if got := strings.Join(hs.surface.calls, ","); got != "lock,unlock" {
		t.Errorf("calls = %s", got)
	}
}

func TestFinishUpdatePresentFailure(t *testing.T) {
	hs := newHarness(t, 2, 1, 2)
	hs.surface.presErr = errors.New("vsync")
	if err := hs.ctx.FinishUpdate(); err == nil {
		t.Fatal("expected error")
	}
	if hs.ctx.Frames() != 0 {
		t.Errorf("Frames = %d, want 0", hs.ctx.Frames())
	}
}

func TestInitOnce(t *testing.T) {
	hs := newHarness(t, 2, 2, 2)
	for i := 0; i < 3; i++ {
		if err := hs.ctx.Init(); err != nil {
			t.Fatalf("Init #%d: %v", i+2, err)
		}
	}
	if hs.opens != 1 {
		t.Errorf("backend opened %d times, want 1", hs.opens)
	}
}

func TestInitFailureIsSticky(t *testing.T) {
	opens := 0
	backend := func(config.Display, int, int) (Surface, input.Source, error) {
		opens++
		return nil, nil, errors.New("no display")
	}
	ctx := New(2, 2, config.Default(), backend, nil, input.NewQueue(), nil)
	if err := ctx.Init(); err == nil {
		t.Fatal("expected error")
	}
	if err := ctx.Init(); err == nil {
		t.Fatal("second Init should repeat the error")
	}
	if opens != 1 {
		t.Errorf("opens = %d, want 1", opens)
	}
	if err := ctx.FinishUpdate(); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("FinishUpdate = %v, want ErrNotInitialized", err)
	}
	if err := ctx.Shutdown(); err != nil {
		t.Errorf("Shutdown: %v", err)
	}
}

func TestInitRejectsInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Scale = 9
	ctx := New(2, 2, cfg, func(config.Display, int, int) (Surface, input.Source, error) {
		t.Fatal("backend opened with invalid config")
		return nil, nil, nil
	}, nil, input.NewQueue(), nil)
	if err := ctx.Init(); !errors.Is(err, config.ErrInvalid) {
		t.Errorf("Init = %v, want ErrInvalid", err)
	}
}

func TestShutdownOnce(t *testing.T) {
	hs := newHarness(t, 2, 2, 2)
	_ = hs.ctx.Shutdown()
	_ = hs.ctx.Shutdown()
	if hs.surface.closed != 1 {
		t.Errorf("Close called %d times, want 1", hs.surface.closed)
	}
}

func TestReadScreenHasNoSideEffects(t *testing.T) {
	hs := newHarness(t, 3, 1, 3)
	if err := hs.ctx.SetPalette(palette.Grayscale()); err != nil {
		t.Fatal(err)
	}
	copy(hs.ctx.Screen(), []byte{0, 128, 255})
	palBefore := *hs.ctx.Palette()
	before := Composite(hs.ctx.Screen(), hs.ctx.Palette())

	shot := hs.ctx.ReadScreen()
	if !bytes.Equal(shot, []byte{0, 128, 255}) {
		t.Fatalf("ReadScreen = %v", shot)
	}
	shot[0] = 99
	if hs.ctx.Screen()[0] != 0 {
		t.Error("ReadScreen returned an alias of the screen")
	}

	dst := make([]byte, 3)
	if n := hs.ctx.ReadScreenInto(dst); n != 3 || !bytes.Equal(dst, []byte{0, 128, 255}) {
		t.Errorf("ReadScreenInto = %d, %v", n, dst)
	}

	if *hs.ctx.Palette() != palBefore {
		t.Error("palette changed")
	}
	after := Composite(hs.ctx.Screen(), hs.ctx.Palette())
	for i := range before {
		if before[i] != after[i] {
			t.Errorf("composite changed at %d", i)
		}
	}
}

func TestSetPaletteShortKeepsCurrent(t *testing.T) {
	hs := newHarness(t, 1, 1, 1)
	if err := hs.ctx.SetPalette(palette.Grayscale()); err != nil {
		t.Fatal(err)
	}
	if err := hs.ctx.SetPalette([]byte{1, 2, 3}); !errors.Is(err, palette.ErrShortPalette) {
		t.Fatalf("err = %v", err)
	}
	if hs.ctx.Palette()[200] != (palette.RGB{R: 200, G: 200, B: 200}) {
		t.Error("palette changed after rejected update")
	}
}

func TestStartTicPostsEvents(t *testing.T) {
	hs := newHarness(t, 1, 1, 1)
	hs.source.events = []input.HostEvent{
		input.KeyDown{Raw: 1000},
		input.Other{},
		input.KeyUp{Raw: 'a'},
	}
	if hs.ctx.StartTic() {
		t.Fatal("unexpected quit")
	}
	got := hs.queue.Drain()
	want := []input.Event{
		{Kind: input.KeyDownEvent, Code: input.KeyLeftArrow},
		{Kind: input.KeyUpEvent, Code: 'a'},
	}
	if len(got) != len(want) {
		t.Fatalf("got %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestStartTicEmpty(t *testing.T) {
	hs := newHarness(t, 1, 1, 1)
	if hs.ctx.StartTic() {
		t.Error("quit on empty queue")
	}
	if hs.queue.Len() != 0 {
		t.Errorf("queue has %d events", hs.queue.Len())
	}
}

func TestQuitStopsPresentation(t *testing.T) {
	hs := newHarness(t, 1, 1, 1)
	hs.source.events = []input.HostEvent{
		input.KeyDown{Raw: 'x'},
		input.Quit{},
		input.KeyDown{Raw: 'y'},
	}
	if !hs.ctx.StartTic() {
		t.Fatal("quit not reported")
	}
	if hs.queue.Len() != 1 {
		t.Errorf("queued %d events, want 1", hs.queue.Len())
	}
	if !hs.ctx.Quit() || !hs.ctx.StartTic() {
		t.Error("quit not latched")
	}
	if hs.queue.Len() != 1 {
		t.Error("events after quit were posted")
	}
	if err := hs.ctx.FinishUpdate(); !errors.Is(err, ErrQuit) {
		t.Errorf("FinishUpdate after quit = %v, want ErrQuit", err)
	}
	if len(hs.surface.calls) != 0 {
		t.Errorf("surface touched after quit: %v", hs.surface.calls)
	}
}

func TestWindowSize(t *testing.T) {
	for _, tt := range []struct{ scale, w, h int }{
		{1, 320, 240}, {2, 640, 480}, {3, 960, 720}, {4, 1280, 960}, {0, 320, 240},
	} {
		if w, h := WindowSize(tt.scale); w != tt.w || h != tt.h {
			t.Errorf("WindowSize(%d) = %dx%d, want %dx%d", tt.scale, w, h, tt.w, tt.h)
		}
	}
}
