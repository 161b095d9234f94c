/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package poetry

import (
	"math/rand/v2"
	"slices"

	"github.com/rs/zerolog"
)

// Registry owns every tile on a board and tracks which container holds it.
type Registry struct {
	surface *Surface
	pools   []*Pool
	policy  Policy

	tiles []*Tile
	byID  map[int]*Tile

	rng *rand.Rand
	log zerolog.Logger
}

type Option func(*Registry)

// WithRand fixes the shuffle source, mostly for tests.
func WithRand(rng *rand.Rand) Option {
	return func(r *Registry) { r.rng = rng }
}

func WithLogger(log zerolog.Logger) Option {
	return func(r *Registry) { r.log = log }
}

// NewRegistry builds an empty registry. Nil pools are dropped so a layout
// with missing regions still works with whatever remains.
func NewRegistry(surface *Surface, pools []*Pool, policy Policy, opts ...Option) *Registry {
	if surface == nil {
		surface = NewSurface(Size{})
	}
	if policy == nil {
		policy = RoundRobin{}
	}

	r := &Registry{
		surface: surface,
		pools:   slices.DeleteFunc(slices.Clone(pools), func(p *Pool) bool { return p == nil }),
		policy:  policy,
		byID:    make(map[int]*Tile),
		rng:     rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		log:     zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

func (r *Registry) Surface() *Surface { return r.surface }
func (r *Registry) Pools() []*Pool    { return slices.Clone(r.pools) }
func (r *Registry) Policy() Policy    { return r.policy }

// SetPolicy swaps the distribution strategy. Tiles already placed stay put;
// the new policy applies from the next Populate or Reset.
func (r *Registry) SetPolicy(p Policy) { r.policy = p }

// Tiles returns every tile in creation order.
func (r *Registry) Tiles() []*Tile { return slices.Clone(r.tiles) }

func (r *Registry) Tile(id int) (*Tile, bool) {
	t, ok := r.byID[id]
	return t, ok
}

// Container resolves a container ID to the surface or one of the pools.
func (r *Registry) Container(id string) (Container, bool) {
	if id == SurfaceID {
		return r.surface, true
	}
	for _, p := range r.pools {
		if p.ID() == id {
			return p, true
		}
	}
	return nil, false
}

// Populate creates one tile per word, in shuffled order, and distributes
// them across the pools. It can only run once per registry.
func (r *Registry) Populate(words []string) error {
	if len(r.pools) == 0 {
		r.log.Error().Int("words", len(words)).Msg("cannot populate board without a word pool")

		return ErrNoPools
	}

	if len(r.tiles) > 0 {
		return nil
	}

	order := slices.Clone(words)
	r.shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })

	for i, w := range order {
		t := &Tile{id: i + 1, word: w}
		r.tiles = append(r.tiles, t)
		r.byID[t.id] = t
		r.move(t, r.policy.Assign(i, r.pools))
	}

	r.log.Debug().
		Int("tiles", len(r.tiles)).
		Int("pools", len(r.pools)).
		Str("policy", r.policy.Name()).
		Msg("board populated")

	return nil
}

// Reset sends every tile back to a pool in a fresh random order and clears
// placement and emphasis.
func (r *Registry) Reset() error {
	if len(r.pools) == 0 {
		r.log.Error().Int("tiles", len(r.tiles)).Msg("cannot reset board without a word pool")

		return ErrNoPools
	}

	order := slices.Clone(r.tiles)
	r.shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })

	for i, t := range order {
		t.clear()
		r.move(t, r.policy.Assign(i, r.pools))
	}

	r.surface.restorePlaceholder()

	return nil
}

// move reparents t, keeping the single-container invariant.
func (r *Registry) move(t *Tile, to Container) {
	if t.container != nil {
		t.container.release(t)
	}
	t.container = to
	to.accept(t)
}

// returnToPool clears t and moves it into p.
func (r *Registry) returnToPool(t *Tile, p *Pool) {
	t.clear()
	r.move(t, p)
}

func (r *Registry) shuffle(n int, swap func(i, j int)) {
	r.rng.Shuffle(n, swap)
}

// primaryPool is where tap-to-return sends tiles: the designated pool of a
// SinglePool policy, otherwise the first pool.
func (r *Registry) primaryPool() (*Pool, bool) {
	if len(r.pools) == 0 {
		return nil, false
	}

	switch p := r.policy.(type) {
	case SinglePool:
		return p.Assign(0, r.pools), true
	case *SinglePool:
		return p.Assign(0, r.pools), true
	}

	return r.pools[0], true
}

// BoardState is the render-ready view of the whole board. Tiles are listed
// pool by pool in display order, then the surface.
type BoardState struct {
	Tiles       []TileState `json:"tiles"`
	Pools       []string    `json:"pools"`
	Placeholder bool        `json:"placeholder"`
	Surface     Size        `json:"surface"`
	Policy      string      `json:"policy"`
}

func (r *Registry) State() BoardState {
	s := BoardState{
		Tiles:       make([]TileState, 0, len(r.tiles)),
		Pools:       make([]string, 0, len(r.pools)),
		Placeholder: r.surface.Placeholder(),
		Surface:     r.surface.Size(),
		Policy:      r.policy.Name(),
	}
	for _, p := range r.pools {
		s.Pools = append(s.Pools, p.ID())
		for _, t := range p.tiles {
			s.Tiles = append(s.Tiles, t.State())
		}
	}
	for _, t := range r.surface.tiles {
		s.Tiles = append(s.Tiles, t.State())
	}
	return s
}
