/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package poetry

import (
	"github.com/rs/zerolog"
)

type modality int

const (
	modalityNone modality = iota
	modalityPointer
	modalityTouch
)

// Session is the manipulation currently in progress. Only one tile can be
// in motion at a time.
type Session struct {
	tile     *Tile
	origin   Container
	modality modality
	size     Size
	gesture  *gesture
}

// Controller turns pointer and touch input into tile moves. It is not safe
// for concurrent use; drive it from a single goroutine.
type Controller struct {
	reg     *Registry
	engine  *Engine
	sched   Scheduler
	session Session
	log     zerolog.Logger
}

func NewController(reg *Registry, engine *Engine, sched Scheduler) *Controller {
	return &Controller{
		reg:    reg,
		engine: engine,
		sched:  sched,
		log:    reg.log,
	}
}

// InMotion returns the tile being manipulated, if any.
func (c *Controller) InMotion() (*Tile, bool) {
	return c.session.tile, c.session.tile != nil
}

// begin starts a manipulation. Whatever was in motion before is dropped
// where it is.
func (c *Controller) begin(t *Tile, m modality, size Size) {
	c.end()

	c.session = Session{
		tile:     t,
		origin:   t.container,
		modality: m,
		size:     size,
	}
	t.emphasis = true
}

// end releases the tile in motion and cancels any pending press timer.
func (c *Controller) end() {
	if c.session.gesture != nil {
		c.session.gesture.stop()
	}
	if c.session.tile != nil {
		c.session.tile.emphasis = false
	}
	c.session = Session{}
}

func (c *Controller) lookup(id int) (*Tile, bool) {
	t, ok := c.reg.Tile(id)
	if !ok {
		c.log.Debug().Int("tile", id).Msg("ignoring event for unknown tile")
	}
	return t, ok
}

// DragStart marks tile id as being dragged.
func (c *Controller) DragStart(id int) bool {
	t, ok := c.lookup(id)
	if !ok {
		return false
	}

	c.begin(t, modalityPointer, Size{})

	return true
}

// DragOver reports whether target accepts drops. The host suppresses its
// default drag-over handling when it does.
func (c *Controller) DragOver(target string) bool {
	_, ok := c.reg.Container(target)
	return ok
}

// Drop lands the dragged tile in target. On the surface the tile is
// centered on pointer; in a pool it loses its placement. A drop with nothing
// in motion, or onto an unknown target, changes nothing.
func (c *Controller) Drop(target string, pointer Point, size Size) bool {
	t := c.session.tile
	if t == nil || c.session.modality != modalityPointer {
		return false
	}

	dst, ok := c.reg.Container(target)
	if !ok {
		c.log.Debug().Str("target", target).Msg("ignoring drop on unknown container")

		return false
	}

	switch dst := dst.(type) {
	case *Surface:
		c.engine.Place(t, Centered(pointer, size))
	case *Pool:
		c.reg.returnToPool(t, dst)
	}

	c.end()

	return true
}

// DragEnd closes a drag that finished without a drop.
func (c *Controller) DragEnd() bool {
	if c.session.modality != modalityPointer {
		return false
	}

	c.end()

	return true
}

// TouchStart begins a touch on tile id and arms the press timer.
func (c *Controller) TouchStart(id int, pointer Point, size Size) bool {
	t, ok := c.lookup(id)
	if !ok {
		return false
	}

	c.begin(t, modalityTouch, size)

	g := &gesture{state: gesturePending}
	c.session.gesture = g
	if c.sched != nil {
		g.timer = c.sched.AfterFunc(PressDuration, func() { c.pressElapsed(g) })
	}

	return true
}

// pressElapsed fires when the press timer runs out. Stale timers from an
// earlier gesture are ignored.
func (c *Controller) pressElapsed(g *gesture) {
	if c.session.gesture != g || g.state != gesturePending {
		return
	}

	g.timer = nil
	g.state = gestureTap
}

// TouchMove refines the position of a tile that started on the surface.
// Moving a tile that started in a pool abandons the touch.
func (c *Controller) TouchMove(pointer Point, size Size) bool {
	g := c.session.gesture
	t := c.session.tile
	if t == nil || g == nil {
		return false
	}

	switch g.state {
	case gesturePending:
		g.classify(gestureDrag)
		t.emphasis = false

		if c.session.origin != Container(c.reg.surface) {
			c.end()

			return true
		}
	case gestureTap:
		return false
	}

	if size == (Size{}) {
		size = c.session.size
	}
	c.engine.Place(t, Centered(pointer, size))

	return true
}

// TouchEnd finishes the touch. A tap places a pooled tile at random on the
// surface, or sends a placed tile back to the primary pool.
func (c *Controller) TouchEnd() bool {
	g := c.session.gesture
	t := c.session.tile
	if t == nil || g == nil {
		return false
	}

	if g.state == gesturePending {
		g.classify(gestureTap)
	}

	if g.state == gestureTap {
		if c.session.origin == Container(c.reg.surface) {
			if p, ok := c.reg.primaryPool(); ok {
				c.reg.returnToPool(t, p)
			}
		} else {
			c.engine.PlaceRandom(t, c.session.size)
		}
	}

	c.end()

	return true
}

// Abort drops whatever is in motion where it is, without completing the
// gesture.
func (c *Controller) Abort() {
	c.end()
}

// Refresh abandons any manipulation, then returns and reshuffles every tile.
func (c *Controller) Refresh() error {
	c.end()

	return c.reg.Reset()
}
