package main

import "doom-video/internal/input"

// pattern draws scrolling diagonal bands through every palette index with a
// crosshair in the marker index over them. Arrow keys steer the scroll
// direction; the upstream renderer would normally own the screen.
type pattern struct {
	tic    int
	dx, dy int
	held   map[input.Key]bool
	marker byte
}

func (p *pattern) Handle(ev input.Event) {
	if p.held == nil {
		p.held = make(map[input.Key]bool)
	}
	p.held[ev.Code] = ev.Kind == input.KeyDownEvent

	p.dx, p.dy = 0, 0
	if p.held[input.KeyLeftArrow] {
		p.dx--
	}
	if p.held[input.KeyRightArrow] {
		p.dx++
	}
	if p.held[input.KeyUpArrow] {
		p.dy--
	}
	if p.held[input.KeyDownArrow] {
		p.dy++
	}
}

func (p *pattern) Draw(screen []byte, width, height int) {
	p.tic++
	ox := p.tic * (1 + p.dx)
	oy := p.tic * p.dy
	for y := 0; y < height; y++ {
		row := screen[y*width : (y+1)*width]
		for x := range row {
			row[x] = byte(x + y + ox + oy)
		}
	}

	cx, cy := width/2, height/2
	for x := 0; x < width; x++ {
		screen[cy*width+x] = p.marker
	}
	for y := 0; y < height; y++ {
		screen[y*width+cx] = p.marker
	}
}
