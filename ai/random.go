package ai

import (
	"golang.org/x/exp/rand"

	"acquire/phase"
	"acquire/req"
)

// Random picks uniformly among the legal requests. It is mainly useful
// for self-play and fuzzing the rules.
type Random struct {
	rng *rand.Rand
}

// NewRandom creates a random agent seeded by seed.
func NewRandom(seed uint64) *Random {
	return &Random{rng: rand.New(rand.NewSource(seed))}
}

// Next picks a request the state would accept, false when the game is
// over.
func (a *Random) Next(s phase.State) (req.Request, bool) {
	possible := PossibleRequests(s)
	if len(possible) == 0 {
		return nil, false
	}
	return possible[a.rng.Intn(len(possible))], true
}
