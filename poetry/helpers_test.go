/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package poetry

import (
	"fmt"
	"math/rand/v2"
	"testing"
	"time"
)

type fakeTimer struct {
	f       func()
	d       time.Duration
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	pending := !t.stopped && !t.fired
	t.stopped = true
	return pending
}

// fakeScheduler records timers and fires them only when asked.
type fakeScheduler struct {
	timers []*fakeTimer
}

func (s *fakeScheduler) AfterFunc(d time.Duration, f func()) Timer {
	t := &fakeTimer{f: f, d: d}
	s.timers = append(s.timers, t)
	return t
}

// fireAll runs every timer that has not been stopped.
func (s *fakeScheduler) fireAll() {
	for _, t := range s.timers {
		if !t.stopped && !t.fired {
			t.fired = true
			t.f()
		}
	}
}

func (s *fakeScheduler) last() *fakeTimer {
	if len(s.timers) == 0 {
		return nil
	}
	return s.timers[len(s.timers)-1]
}

type board struct {
	reg    *Registry
	engine *Engine
	ctrl   *Controller
	sched  *fakeScheduler
	pools  []*Pool
}

func newBoard(t *testing.T, pools int, touch bool, words ...string) *board {
	t.Helper()

	if len(words) == 0 {
		words = []string{"the", "quiet", "moon", "sings", "to", "my", "heart"}
	}

	ps := make([]*Pool, pools)
	for i := range ps {
		ps[i] = NewPool(fmt.Sprintf("pool-%d", i))
	}

	surface := NewSurface(Size{Width: 800, Height: 400})
	reg := NewRegistry(surface, ps, SelectPolicy(touch), WithRand(rand.New(rand.NewPCG(1, 2))))
	if err := reg.Populate(words); err != nil {
		t.Fatalf("Populate error: %v", err)
	}

	engine := NewEngine(reg, rand.New(rand.NewPCG(3, 4)))
	sched := &fakeScheduler{}

	return &board{
		reg:    reg,
		engine: engine,
		ctrl:   NewController(reg, engine, sched),
		sched:  sched,
		pools:  ps,
	}
}

// pooled returns some tile that currently sits in a pool.
func (b *board) pooled(t *testing.T) *Tile {
	t.Helper()

	for _, tile := range b.reg.Tiles() {
		if _, ok := tile.Container().(*Pool); ok {
			return tile
		}
	}
	t.Fatal("no tile in any pool")
	return nil
}

// checkSingleOwner verifies every tile is held by exactly the container it
// points at.
func (b *board) checkSingleOwner(t *testing.T) {
	t.Helper()

	held := map[*Tile]int{}
	for _, p := range b.reg.Pools() {
		for _, tile := range p.tiles {
			held[tile]++
		}
	}
	for _, tile := range b.reg.Surface().tiles {
		held[tile]++
	}

	for _, tile := range b.reg.Tiles() {
		if held[tile] != 1 {
			t.Errorf("tile %q held by %d containers", tile.Word(), held[tile])
		}
		if tile.Container() == nil {
			t.Errorf("tile %q has no container", tile.Word())
		}
	}
}
