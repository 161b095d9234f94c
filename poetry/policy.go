/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package poetry

// Policy decides which pool a tile lands in when it is created or reset.
// pools is never empty when Assign is called.
type Policy interface {
	Assign(index int, pools []*Pool) *Pool
	Name() string
}

// RoundRobin spreads tiles across every pool so they surround the surface.
type RoundRobin struct{}

func (RoundRobin) Assign(index int, pools []*Pool) *Pool {
	if index < 0 {
		index = -index
	}
	return pools[index%len(pools)]
}

func (RoundRobin) Name() string { return "round-robin" }

// SinglePool sends every tile to the designated pool. Touch layouts stack
// everything under the surface instead of surrounding it.
type SinglePool struct {
	// Designated is the ID of the target pool. Empty, or an ID that is not
	// configured, means the primary (first) pool.
	Designated string
}

func (sp SinglePool) Assign(_ int, pools []*Pool) *Pool {
	for _, p := range pools {
		if p.ID() == sp.Designated {
			return p
		}
	}
	return pools[0]
}

func (SinglePool) Name() string { return "single-pool" }

// SelectPolicy picks the distribution strategy for a device. It is called
// once, when the board first learns whether the device supports touch.
func SelectPolicy(touch bool) Policy {
	if touch {
		return SinglePool{}
	}
	return RoundRobin{}
}
