package main

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/bearpark/bear-slice/arcade"
	"github.com/bearpark/bear-slice/render"
)

// pointer turns tcell mouse reports into blade input
// tcell reports button state rather than transitions, so press and release are derived here
type pointer struct {
	down    bool
	lastCol int
	lastRow int
}

// translate maps a mouse report to an engine event; ok is false when nothing changed
func (p *pointer) translate(ev *tcell.EventMouse, vp render.Viewport, at time.Duration) (arcade.InputEvent, bool) {
	col, row := ev.Position()
	pressed := ev.Buttons()&tcell.Button1 != 0
	pos := vp.ToWorld(col, row)
	in := arcade.InputEvent{X: pos.X, Y: pos.Y, At: at}

	switch {
	case pressed && !p.down:
		p.down = true
		in.Type = arcade.PointerDown
	case pressed:
		if col == p.lastCol && row == p.lastRow {
			return in, false
		}
		in.Type = arcade.PointerMove
	case p.down:
		p.down = false
		in.Type = arcade.PointerUp
	default:
		return in, false
	}
	p.lastCol, p.lastRow = col, row
	return in, true
}
