package debug

import (
	"strings"
	"testing"
	"time"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time {
	return c.t
}

func TestMeterDisabled(t *testing.T) {
	m := New(false, false)
	for i := 0; i < updateInterval*3; i++ {
		if _, ok := m.Frame(); ok {
			t.Fatal("disabled meter reported")
		}
	}
}

func TestMeterFPS(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	m := New(true, false)
	m.now = clock.now

	reports := 0
	var last string
	for i := 0; i < updateInterval*2+1; i++ {
		if text, ok := m.Frame(); ok {
			reports++
			last = text
		}
		clock.t = clock.t.Add(time.Second / 35)
	}
	if reports != 2 {
		t.Fatalf("got %d reports, want 2", reports)
	}
	if last != "FPS: 35.0" {
		t.Errorf("report = %q, want FPS: 35.0", last)
	}
}

func TestMeterMem(t *testing.T) {
	m := New(false, true)
	var text string
	for i := 0; i <= updateInterval; i++ {
		text, _ = m.Frame()
	}
	if !strings.HasPrefix(text, "Mem: ") {
		t.Errorf("report = %q", text)
	}
	if m.Text() != text {
		t.Errorf("Text() = %q, want %q", m.Text(), text)
	}
}
