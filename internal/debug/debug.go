package debug

import (
	"fmt"
	"runtime"
	"strings"
	"time"
)

// updateInterval: only refresh the FPS/Mem text every N frames to reduce allocations.
const updateInterval = 35 * 5

// Meter tracks presented frames and produces an FPS / heap report every
// updateInterval frames. Both counters are off by default.
type Meter struct {
	ShowFPS      bool
	ShowMemAlloc bool

	now          func() time.Time
	frameCount   uint32
	windowStart  time.Time
	lastFpsText  string
	lastMemText  string
	lastMemStats runtime.MemStats
}

// New returns a Meter with the given counters enabled.
func New(showFPS, showMemAlloc bool) *Meter {
	return &Meter{ShowFPS: showFPS, ShowMemAlloc: showMemAlloc, now: time.Now}
}

// Enabled reports whether any counter is on.
func (m *Meter) Enabled() bool {
	return m.ShowFPS || m.ShowMemAlloc
}

// Frame records one presented frame. Every updateInterval frames it returns
// the refreshed report and true.
func (m *Meter) Frame() (string, bool) {
	if !m.Enabled() {
		return "", false
	}
	t := m.now()
	if m.frameCount == 0 {
		m.windowStart = t
	}
	m.frameCount++
	if m.frameCount <= updateInterval {
		return "", false
	}

	elapsed := t.Sub(m.windowStart)
	m.frameCount = 1
	m.windowStart = t

	if m.ShowFPS && elapsed > 0 {
		fps := float64(updateInterval) / elapsed.Seconds()
		m.lastFpsText = fmt.Sprintf("FPS: %.1f", fps)
	}
	if m.ShowMemAlloc {
		runtime.ReadMemStats(&m.lastMemStats)
		m.lastMemText = fmt.Sprintf("Mem: %.1f MB", float64(m.lastMemStats.HeapAlloc)/(1024*1024))
	}
	return m.Text(), true
}

// Text returns the last report.
func (m *Meter) Text() string {
	parts := make([]string, 0, 2)
	if m.ShowFPS && m.lastFpsText != "" {
		parts = append(parts, m.lastFpsText)
	}
	if m.ShowMemAlloc && m.lastMemText != "" {
		parts = append(parts, m.lastMemText)
	}
	return strings.Join(parts, " ")
}
