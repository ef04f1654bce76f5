package draw

import (
	"math/rand/v2"
	"sync"

	"github.com/riskibarqy/foosball-league/internal/domain/team"
)

// Shuffler permutes n elements through swap. Implementations must be safe for concurrent use.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

// Random is a seedable Shuffler. The zero seed draws from the runtime's entropy source.
type Random struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewRandom(seed uint64) *Random {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return &Random{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (r *Random) Shuffle(n int, swap func(i, j int)) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rng.Shuffle(n, swap)
}

// Deal shuffles teamIDs and hands each one to the group that currently has the fewest
// members, ties going to the earlier group in groups. existing seeds the member counts
// with teams already placed, so repeated draws keep the groups balanced.
func Deal(teamIDs []string, groups []team.Group, existing map[team.Group]int, shuffler Shuffler) []team.Assignment {
	if len(teamIDs) == 0 || len(groups) == 0 {
		return nil
	}

	ids := append([]string(nil), teamIDs...)
	if shuffler != nil {
		shuffler.Shuffle(len(ids), func(i, j int) {
			ids[i], ids[j] = ids[j], ids[i]
		})
	}

	counts := make([]int, len(groups))
	for idx, g := range groups {
		counts[idx] = existing[g]
	}

	out := make([]team.Assignment, 0, len(ids))
	for _, id := range ids {
		target := 0
		for idx := 1; idx < len(groups); idx++ {
			if counts[idx] < counts[target] {
				target = idx
			}
		}
		counts[target]++
		out = append(out, team.Assignment{TeamID: id, Group: groups[target]})
	}

	return out
}
