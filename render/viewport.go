package render

import (
	"github.com/bearpark/bear-slice/parameter"
	"github.com/bearpark/bear-slice/vmath"
)

// Viewport maps world units to terminal cells
// The HUD and status rows are excluded from the playfield
type Viewport struct {
	Cols, Rows   int
	WorldW       float64
	WorldH       float64
	playTop      int
	playRows     int
	cellW, cellH float64
}

// NewViewport fits a worldW × worldH playfield into a cols × rows screen
func NewViewport(cols, rows int, worldW, worldH float64) Viewport {
	v := Viewport{Cols: max(cols, 1), Rows: rows, WorldW: worldW, WorldH: worldH}
	v.playTop = parameter.TopMargin
	v.playRows = max(rows-parameter.TopMargin-parameter.BottomMargin, parameter.MinPlayRows)
	v.cellW = worldW / float64(v.Cols)
	v.cellH = worldH / float64(v.playRows)
	return v
}

// PlayRows returns the playfield height in cells
func (v Viewport) PlayRows() int { return v.playRows }

// StatusRow returns the bottom status row
func (v Viewport) StatusRow() int { return v.playTop + v.playRows }

// ToCell returns the cell containing p; ok is false outside the playfield
func (v Viewport) ToCell(p vmath.Vec2) (col, row int, ok bool) {
	if p.X < 0 || p.Y < 0 || p.X >= v.WorldW || p.Y >= v.WorldH {
		return 0, 0, false
	}
	col = int(p.X / v.cellW)
	row = v.playTop + int(p.Y/v.cellH)
	return col, row, true
}

// ToWorld returns the world position at the centre of a cell
// Cells outside the playfield are clamped to its edge
func (v Viewport) ToWorld(col, row int) vmath.Vec2 {
	col = max(0, min(col, v.Cols-1))
	r := max(0, min(row-v.playTop, v.playRows-1))
	return vmath.V2((float64(col)+0.5)*v.cellW, (float64(r)+0.5)*v.cellH)
}

// CellRadius converts a world radius to whole cells horizontally and vertically
func (v Viewport) CellRadius(r float64) (rx, ry int) {
	return int(r / v.cellW), int(r / v.cellH)
}
