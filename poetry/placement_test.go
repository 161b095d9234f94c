/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package poetry

import (
	"math"
	"math/rand/v2"
	"testing"
)

func TestSnapRow(t *testing.T) {
	tests := []struct {
		name string
		y    float64
		want float64
	}{
		{"rounds down", 40, 30},
		{"nearest row above the midpoint", 47, 60},
		{"negative clamps to top", -10, 0},
		{"far above clamps to top", -100, 0},
		{"zero", 0, 0},
		{"just under half a row", 14.9, 0},
		{"half a row rounds up", 15, 30},
		{"rounds up", 46, 60},
		{"rounds down to the row below", 44.9, 30},
		{"exact row", 90, 90},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SnapRow(tt.y); got != tt.want {
				t.Errorf("SnapRow(%v) = %v, want %v", tt.y, got, tt.want)
			}
		})
	}
}

func TestCentered(t *testing.T) {
	got := Centered(Point{X: 100, Y: 80}, Size{Width: 40, Height: 20})
	if want := (Point{X: 80, Y: 70}); got != want {
		t.Errorf("Centered = %+v, want %+v", got, want)
	}
}

func TestPlace(t *testing.T) {
	b := newBoard(t, 2, false)
	tile := b.pooled(t)

	if !b.reg.Surface().Placeholder() {
		t.Fatal("empty surface has no placeholder")
	}

	got := b.engine.Place(tile, Point{X: -12.5, Y: 47})
	if want := (Point{X: -12.5, Y: 60}); got != want {
		t.Errorf("Place = %+v, want %+v", got, want)
	}

	pos, ok := tile.Position()
	if !ok || pos != got {
		t.Errorf("tile position = %+v (%v), want %+v", pos, ok, got)
	}
	if tile.Container() != Container(b.reg.Surface()) {
		t.Errorf("tile container = %s, want surface", tile.Container().ID())
	}
	if b.reg.Surface().Placeholder() {
		t.Error("placeholder still shown after placement")
	}

	again := b.engine.Place(tile, Point{X: -12.5, Y: 47})
	if again != got {
		t.Errorf("Place not deterministic: %+v then %+v", got, again)
	}

	if got := b.engine.Place(tile, Point{X: 3, Y: 40}); got != (Point{X: 3, Y: 30}) {
		t.Errorf("Place = %+v, want {X:3 Y:30}", got)
	}

	b.engine.Place(tile, Point{X: 10, Y: -10})
	if pos, _ := tile.Position(); pos.Y != 0 {
		t.Errorf("Place above the top edge landed at y=%v, want 0", pos.Y)
	}
	if n := b.reg.Surface().Len(); n != 1 {
		t.Errorf("surface holds %d tiles after re-placing one, want 1", n)
	}
	b.checkSingleOwner(t)
}

func TestPlaceRandomBounds(t *testing.T) {
	b := newBoard(t, 1, true)
	size := Size{Width: 60, Height: 24}
	surface := b.reg.Surface().Size()

	for range 200 {
		tile := b.pooled(t)
		p := b.engine.PlaceRandom(tile, size)

		if p.X < 0 || p.X > surface.Width-size.Width {
			t.Fatalf("x = %v outside [0, %v]", p.X, surface.Width-size.Width)
		}
		if p.Y < 0 || p.Y >= surface.Height {
			t.Fatalf("y = %v outside [0, %v)", p.Y, surface.Height)
		}
		if math.Mod(p.Y, RowHeight) != 0 {
			t.Fatalf("y = %v is not on a row boundary", p.Y)
		}

		b.reg.returnToPool(tile, b.pools[0])
	}
}

func TestPlaceRandomTinySurface(t *testing.T) {
	surface := NewSurface(Size{Width: 20, Height: 10})
	pool := NewPool("pool")
	reg := NewRegistry(surface, []*Pool{pool}, RoundRobin{})
	if err := reg.Populate([]string{"enormous"}); err != nil {
		t.Fatal(err)
	}
	engine := NewEngine(reg, rand.New(rand.NewPCG(7, 7)))

	got := engine.PlaceRandom(reg.Tiles()[0], Size{Width: 90, Height: 20})
	if got != (Point{}) {
		t.Errorf("PlaceRandom on a tiny surface = %+v, want origin", got)
	}
}
