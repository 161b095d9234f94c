/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package poetry

// Point is a position in surface-local pixels.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Size is the rendered size of a tile or of the surface, in pixels.
type Size struct {
	Width  float64 `json:"w"`
	Height float64 `json:"h"`
}

// Centered returns the top-left corner that centers a box of size s on p.
func Centered(p Point, s Size) Point {
	return Point{X: p.X - s.Width/2, Y: p.Y - s.Height/2}
}

// Tile is a single word magnet.
type Tile struct {
	id   int
	word string

	container Container
	position  *Point
	emphasis  bool
}

func (t *Tile) ID() int              { return t.id }
func (t *Tile) Word() string         { return t.word }
func (t *Tile) Container() Container { return t.container }
func (t *Tile) Emphasized() bool     { return t.emphasis }

// Position reports the tile's coordinates on the surface. ok is false while
// the tile sits in a pool.
func (t *Tile) Position() (p Point, ok bool) {
	if t.position == nil {
		return Point{}, false
	}
	return *t.position, true
}

func (t *Tile) clear() {
	t.position = nil
	t.emphasis = false
}

// TileState is the render-ready view of a tile.
type TileState struct {
	ID         int    `json:"id"`
	Text       string `json:"text"`
	Container  string `json:"container"`
	Position   *Point `json:"position,omitempty"`
	Emphasized bool   `json:"emphasized"`
}

func (t *Tile) State() TileState {
	s := TileState{
		ID:         t.id,
		Text:       t.word,
		Emphasized: t.emphasis,
	}
	if t.container != nil {
		s.Container = t.container.ID()
	}
	if t.position != nil {
		p := *t.position
		s.Position = &p
	}
	return s
}
