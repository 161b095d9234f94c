/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package poetry

import (
	"slices"
	"testing"
)

func TestPopulateOneTilePerWord(t *testing.T) {
	words := []string{"love", "love", "night", "sea", "sky"}
	b := newBoard(t, 3, false, words...)

	var got []string
	ids := map[int]bool{}
	for _, tile := range b.reg.Tiles() {
		got = append(got, tile.Word())
		ids[tile.ID()] = true

		if tile.Emphasized() {
			t.Errorf("new tile %q is emphasized", tile.Word())
		}
		if _, ok := tile.Position(); ok {
			t.Errorf("new tile %q has a position", tile.Word())
		}
	}

	slices.Sort(got)
	want := slices.Sorted(slices.Values(words))
	if !slices.Equal(got, want) {
		t.Errorf("tile words = %q, want %q", got, want)
	}
	if len(ids) != len(words) {
		t.Errorf("%d distinct tile ids, want %d", len(ids), len(words))
	}

	b.checkSingleOwner(t)

	if err := b.reg.Populate([]string{"again"}); err != nil {
		t.Fatalf("second Populate error: %v", err)
	}
	if n := len(b.reg.Tiles()); n != len(words) {
		t.Errorf("second Populate changed tile count to %d", n)
	}
}

func TestResetClearsBoard(t *testing.T) {
	b := newBoard(t, 3, false)

	for i, tile := range b.reg.Tiles()[:4] {
		b.engine.Place(tile, Point{X: float64(i * 50), Y: float64(i * 31)})
	}
	b.ctrl.TouchStart(b.reg.Tiles()[5].ID(), Point{}, Size{})

	if err := b.ctrl.Refresh(); err != nil {
		t.Fatalf("Refresh error: %v", err)
	}

	if n := b.reg.Surface().Len(); n != 0 {
		t.Errorf("surface holds %d tiles after reset", n)
	}
	if !b.reg.Surface().Placeholder() {
		t.Error("placeholder not restored after reset")
	}
	for _, tile := range b.reg.Tiles() {
		if _, ok := tile.Position(); ok {
			t.Errorf("tile %q kept its position", tile.Word())
		}
		if tile.Emphasized() {
			t.Errorf("tile %q kept its emphasis", tile.Word())
		}
		if _, ok := tile.Container().(*Pool); !ok {
			t.Errorf("tile %q not in a pool", tile.Word())
		}
	}
	if _, ok := b.ctrl.InMotion(); ok {
		t.Error("tile still in motion after refresh")
	}
	b.checkSingleOwner(t)
}

func TestPoolSurfaceRoundTrip(t *testing.T) {
	b := newBoard(t, 2, false)
	tile := b.pooled(t)

	b.ctrl.DragStart(tile.ID())
	b.ctrl.Drop(SurfaceID, Point{X: 200, Y: 100}, Size{Width: 50, Height: 20})
	if _, ok := tile.Position(); !ok {
		t.Fatal("tile has no position after dropping on the surface")
	}

	for range 2 {
		b.ctrl.DragStart(tile.ID())
		b.ctrl.Drop(b.pools[1].ID(), Point{X: 5, Y: 5}, Size{})

		if _, ok := tile.Position(); ok {
			t.Error("tile kept its position after returning to a pool")
		}
		if tile.Emphasized() {
			t.Error("tile kept its emphasis after returning to a pool")
		}
		if tile.Container() != Container(b.pools[1]) {
			t.Errorf("tile in %s, want %s", tile.Container().ID(), b.pools[1].ID())
		}
	}

	if !b.reg.Surface().Placeholder() {
		t.Error("placeholder not shown once the surface emptied")
	}
	b.checkSingleOwner(t)
}

func TestBoardState(t *testing.T) {
	b := newBoard(t, 2, false, "a", "b", "c")
	tile := b.pooled(t)
	b.engine.Place(tile, Point{X: 12, Y: 61})

	s := b.reg.State()
	if len(s.Tiles) != 3 {
		t.Fatalf("state has %d tiles, want 3", len(s.Tiles))
	}
	if !slices.Equal(s.Pools, []string{"pool-0", "pool-1"}) {
		t.Errorf("state pools = %q", s.Pools)
	}
	if s.Placeholder {
		t.Error("state shows placeholder with a placed tile")
	}

	last := s.Tiles[len(s.Tiles)-1]
	if last.ID != tile.ID() || last.Container != SurfaceID {
		t.Errorf("surface tile state = %+v", last)
	}
	if last.Position == nil || *last.Position != (Point{X: 12, Y: 60}) {
		t.Errorf("surface tile position = %v, want {12 60}", last.Position)
	}
	for _, ts := range s.Tiles[:2] {
		if ts.Position != nil {
			t.Errorf("pooled tile %q has a position", ts.Text)
		}
	}
}
