/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package poetry

import (
	"math"
	"math/rand/v2"
)

// RowHeight is the vertical grid, in pixels, that placed tiles snap to.
const RowHeight = 30.0

// SnapRow rounds y to the nearest row boundary, never above the surface's
// top edge.
func SnapRow(y float64) float64 {
	return math.Max(0, math.Round(y/RowHeight)*RowHeight)
}

// Engine positions tiles on the surface.
type Engine struct {
	reg *Registry
	rng *rand.Rand
}

func NewEngine(reg *Registry, rng *rand.Rand) *Engine {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Engine{reg: reg, rng: rng}
}

// Place puts t on the surface at raw, which is already the tile's top-left
// corner in surface-local pixels. X is left free so tiles may overhang the
// edges; Y snaps to the row grid.
func (e *Engine) Place(t *Tile, raw Point) Point {
	p := Point{X: raw.X, Y: SnapRow(raw.Y)}

	if t.container != Container(e.reg.surface) {
		e.reg.move(t, e.reg.surface)
	}
	t.position = &p

	return p
}

// PlaceRandom drops t somewhere on the surface: a uniformly random x that
// keeps the tile inside the surface, on a uniformly random row.
func (e *Engine) PlaceRandom(t *Tile, tile Size) Point {
	surface := e.reg.surface.Size()

	var x float64
	if span := surface.Width - tile.Width; span > 0 {
		x = e.rng.Float64() * span
	}

	var y float64
	if rows := int(math.Floor(surface.Height / RowHeight)); rows > 0 {
		y = float64(e.rng.IntN(rows)) * RowHeight
	}

	return e.Place(t, Point{X: x, Y: y})
}
