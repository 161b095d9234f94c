/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package poetry

import "slices"

// SurfaceID is the container ID of the placement surface.
const SurfaceID = "surface"

// Container owns tiles. It is either a *Pool or the *Surface.
type Container interface {
	ID() string
	Len() int

	accept(t *Tile)
	release(t *Tile)
}

// Pool is an unordered bag of tiles awaiting placement.
type Pool struct {
	id    string
	tiles []*Tile
}

func NewPool(id string) *Pool {
	return &Pool{id: id}
}

func (p *Pool) ID() string { return p.id }
func (p *Pool) Len() int   { return len(p.tiles) }

// Tiles returns the pool's tiles in arrival order.
func (p *Pool) Tiles() []*Tile {
	return slices.Clone(p.tiles)
}

func (p *Pool) accept(t *Tile) {
	p.tiles = append(p.tiles, t)
}

func (p *Pool) release(t *Tile) {
	p.tiles = slices.DeleteFunc(p.tiles, func(o *Tile) bool { return o == t })
}

// Surface is the refrigerator door. It shows a placeholder prompt while empty.
type Surface struct {
	size        Size
	tiles       []*Tile
	placeholder bool
}

func NewSurface(size Size) *Surface {
	return &Surface{size: size, placeholder: true}
}

func (s *Surface) ID() string { return SurfaceID }
func (s *Surface) Len() int   { return len(s.tiles) }

func (s *Surface) Size() Size        { return s.size }
func (s *Surface) Resize(size Size)  { s.size = size }
func (s *Surface) Placeholder() bool { return s.placeholder }

func (s *Surface) accept(t *Tile) {
	s.tiles = append(s.tiles, t)
	s.releasePlaceholder()
}

func (s *Surface) release(t *Tile) {
	s.tiles = slices.DeleteFunc(s.tiles, func(o *Tile) bool { return o == t })
	s.restorePlaceholder()
}

func (s *Surface) releasePlaceholder() {
	s.placeholder = false
}

// restorePlaceholder brings the prompt back once the surface is empty again.
func (s *Surface) restorePlaceholder() {
	if len(s.tiles) == 0 {
		s.placeholder = true
	}
}
