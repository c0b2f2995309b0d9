// Package render draws engine snapshots onto a tcell screen.
package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/bearpark/bear-slice/arcade"
	"github.com/bearpark/bear-slice/component"
	"github.com/bearpark/bear-slice/config"
	"github.com/bearpark/bear-slice/parameter"
	"github.com/bearpark/bear-slice/status"
	"github.com/bearpark/bear-slice/vmath"
)

// variantGlyphs gives each reference item a recognisable rune
var variantGlyphs = map[string]rune{
	"red_mask":       'M',
	"golden_crown":   'W',
	"sheriff_hat":    'S',
	"jester_hat":     'J',
	"pearl_shell":    '@',
	"red_wrench":     'F',
	"golden_coin":    '$',
	"carousel_ride":  'C',
	"red_alchemist":  'A',
	"green_dragon":   'D',
	"phoenix_emblem": 'P',
	"x_coin":         'X',
}

// Glyph returns the rune drawn at an object's centre
func Glyph(o *component.Object) rune {
	switch o.Kind {
	case component.KindHazard:
		return '✹'
	case component.KindBonus:
		return '★'
	}
	if r, ok := variantGlyphs[o.Variant]; ok {
		return r
	}
	return 'o'
}

// Renderer draws snapshots, the HUD and the status line
type Renderer struct {
	screen   tcell.Screen
	tuning   *config.Tuning
	hud      *HUD
	registry *status.Registry

	// Debug adds metric readouts to the status line
	Debug bool
	// Muted mirrors the audio state in the status line
	Muted func() bool
}

// NewRenderer creates a renderer; hud and reg may be nil
func NewRenderer(screen tcell.Screen, t *config.Tuning, hud *HUD, reg *status.Registry) *Renderer {
	if hud == nil {
		hud = NewHUD()
	}
	return &Renderer{screen: screen, tuning: t, hud: hud, registry: reg}
}

// HUD returns the banner tracker to register with the event router
func (r *Renderer) HUD() *HUD { return r.hud }

// Viewport returns the current world-to-cell mapping
func (r *Renderer) Viewport() Viewport {
	cols, rows := r.screen.Size()
	return NewViewport(cols, rows, r.tuning.ScreenWidth, r.tuning.ScreenHeight)
}

// Draw renders snap and shows the frame
func (r *Renderer) Draw(snap arcade.Snapshot) {
	vp := r.Viewport()
	bg := tcell.StyleDefault.Background(RgbBackground)
	r.screen.SetStyle(bg)
	r.screen.Clear()

	for i := range snap.Objects {
		r.drawObject(vp, &snap.Objects[i], bg)
	}
	r.drawTrail(vp, snap.Trail, bg)
	r.drawHUD(vp, snap, bg)
	r.drawStatus(vp, snap)

	switch {
	case snap.Round.Terminal:
		r.center(vp, vp.playTop+vp.playRows/2, parameter.GameOverText, bg.Foreground(tcell.ColorBlack).Background(RgbGameOver))
	case snap.Paused:
		r.center(vp, vp.playTop+vp.playRows/2, parameter.PausedText, bg.Foreground(tcell.ColorBlack).Background(RgbPaused))
	}
	if text, ok := r.hud.Banner(snap.Now); ok {
		r.center(vp, vp.playTop+vp.playRows/3, " "+text+" ", bg.Foreground(RgbBanner).Bold(true))
	}

	r.screen.Show()
}

func (r *Renderer) drawObject(vp Viewport, o *component.Object, bg tcell.Style) {
	col, row, ok := vp.ToCell(o.Pos)
	if !ok {
		return
	}
	style := bg.Foreground(TintColor(o.Tint))
	halo := bg
	switch o.Kind {
	case component.KindHazard:
		style = bg.Foreground(RgbHazard).Bold(true)
		halo = bg.Background(RgbHazardBg)
	case component.KindBonus:
		style = bg.Foreground(RgbBonus).Bold(true)
		halo = bg.Background(RgbBonusBg)
	}
	if o.Sliced {
		style = style.Dim(true)
	}

	rx, ry := vp.CellRadius(o.Radius)
	for dy := -ry; dy <= ry; dy++ {
		for dx := -rx; dx <= rx; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			// Ellipse test in cell space
			if rx > 0 && ry > 0 && float64(dx*dx)/float64(rx*rx)+float64(dy*dy)/float64(ry*ry) > 1 {
				continue
			}
			r.put(vp, col+dx, row+dy, ' ', halo)
		}
	}
	r.put(vp, col, row, Glyph(o), style)
}

func (r *Renderer) drawTrail(vp Viewport, trail []component.Sample, bg tcell.Style) {
	n := len(trail)
	for i := 1; i < n; i++ {
		t := float64(i) / float64(n-1)
		style := bg.Foreground(Lerp(RgbTrailTail, RgbTrailHead, t))
		r.line(vp, trail[i-1].Pos, trail[i].Pos, parameter.TrailChar, style)
	}
	if n > 0 {
		if col, row, ok := vp.ToCell(trail[n-1].Pos); ok {
			r.put(vp, col, row, parameter.TrailHead, bg.Foreground(RgbTrailHead).Bold(true))
		}
	}
}

// line walks the segment in cell space
func (r *Renderer) line(vp Viewport, a, b vmath.Vec2, ch rune, style tcell.Style) {
	x0, y0, ok0 := vp.ToCell(a)
	x1, y1, ok1 := vp.ToCell(b)
	if !ok0 && !ok1 {
		return
	}
	if !ok0 {
		x0, y0 = x1, y1
	}
	if !ok1 {
		x1, y1 = x0, y0
	}
	dx, dy := absInt(x1-x0), -absInt(y1-y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		r.put(vp, x0, y0, ch, style)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func (r *Renderer) drawHUD(vp Viewport, snap arcade.Snapshot, bg tcell.Style) {
	y := 0
	r.fill(vp, y, bg)
	x := r.text(vp, 0, y, fmt.Sprintf(" SCORE %d ", snap.Round.Score), bg.Foreground(RgbHudText).Bold(true))
	x = r.text(vp, x, y, fmt.Sprintf(" BEST %d ", snap.BestScore), bg.Foreground(RgbHudDim))

	x = r.text(vp, x, y, " ", bg)
	for i := 0; i < r.tuning.Lives; i++ {
		ch := parameter.LifeEmpty
		if i < snap.Round.Lives {
			ch = parameter.LifeFull
		}
		r.put(vp, x, y, ch, bg.Foreground(RgbLife))
		x++
	}
	x = r.text(vp, x, y, " ", bg)

	if snap.Combo.Count > 1 {
		x = r.text(vp, x, y, fmt.Sprintf(" COMBO x%d ", snap.Combo.Count), bg.Foreground(RgbCombo).Bold(true))
	}
	x = r.text(vp, x, y, fmt.Sprintf(" STREAK %d ", snap.Combo.Streak), bg.Foreground(RgbHudDim))
	x = r.text(vp, x, y, fmt.Sprintf(" LV %d ", snap.Level.Effective), bg.Foreground(RgbHudDim))

	names := make([]string, 0, len(snap.Modes))
	for name, m := range snap.Modes {
		if m.Active {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	for _, name := range names {
		x = r.text(vp, x+1, y, " "+strings.ToUpper(name)+" ", bg.Foreground(RgbHudText).Background(RgbModeBg))
	}
}

func (r *Renderer) drawStatus(vp Viewport, snap arcade.Snapshot) {
	y := vp.StatusRow()
	style := tcell.StyleDefault.Background(RgbStatusBar)
	r.fill(vp, y, style)
	x := 0

	if r.Muted != nil {
		audio := style.Foreground(tcell.ColorBlack).Background(RgbAudioUnmuted)
		if r.Muted() {
			audio = audio.Background(RgbAudioMuted)
		}
		x = r.text(vp, x, y, parameter.AudioStr, audio)
	}

	if snap.BonusState != "" && snap.BonusState != "inactive" {
		total := r.tuning.BonusMaxHits
		x = r.text(vp, x, y, " BONUS ", style.Foreground(RgbBonus).Bold(true))
		for i := 0; i < total; i++ {
			ch := parameter.LadderEmpty
			if i < snap.Bonus.Hits {
				ch = parameter.LadderFull
			}
			r.put(vp, x, y, ch, style.Foreground(RgbBonus))
			x++
		}
		x = r.text(vp, x, y, fmt.Sprintf(" %d/%d +%d %s %.1fs ", snap.Bonus.Hits, total, snap.Bonus.Points, snap.BonusMotion, snap.BonusLeft.Seconds()), style.Foreground(RgbHudText))
	}

	if r.Debug && r.registry != nil {
		m := r.registry.Snapshot()
		r.text(vp, x, y, fmt.Sprintf(" objs %d spawned %d dropped %d ticks %d spawn %v pauses %d/%dms ",
			len(snap.Objects), int64(m["spawn.objects"]), int64(m["spawn.dropped"]), int64(m["engine.ticks"]), snap.SpawnInterval,
			int64(m["engine.pauses"]), int64(m["engine.paused_ms"])),
			style.Foreground(RgbHudDim))
	}
}

func (r *Renderer) put(vp Viewport, x, y int, ch rune, style tcell.Style) {
	if x < 0 || y < 0 || x >= vp.Cols || y >= vp.Rows {
		return
	}
	r.screen.SetContent(x, y, ch, nil, style)
}

// text writes s from x and returns the column after it
func (r *Renderer) text(vp Viewport, x, y int, s string, style tcell.Style) int {
	for _, ch := range s {
		r.put(vp, x, y, ch, style)
		x++
	}
	return x
}

func (r *Renderer) fill(vp Viewport, y int, style tcell.Style) {
	for x := 0; x < vp.Cols; x++ {
		r.put(vp, x, y, ' ', style)
	}
}

func (r *Renderer) center(vp Viewport, y int, s string, style tcell.Style) {
	x := (vp.Cols - len([]rune(s))) / 2
	r.text(vp, max(x, 0), y, s, style)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
