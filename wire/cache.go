package wire

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"acquire/req"
	"acquire/session"
)

// CachedStates wraps a game and caches the serialized history entries by
// turn. A completed undo rewrites history, so the cache is dropped
// whenever the turn count shrinks.
type CachedStates struct {
	session.Game
	cache map[int][]byte
}

// NewCachedStates wraps g.
func NewCachedStates(g session.Game) *CachedStates {
	return &CachedStates{Game: g, cache: make(map[int][]byte)}
}

// Submit forwards to the wrapped game, invalidating the cache when the
// submit removed a turn.
func (c *CachedStates) Submit(r req.Request) req.Response {
	before := c.Game.Turn()
	response := c.Game.Submit(r)
	if c.Game.Turn() < before {
		log.Debug().Msg("detected rewritten history, clearing state cache")
		c.cache = make(map[int][]byte)
	}
	return response
}

// StateJSON is the serialized history entry at turn.
func (c *CachedStates) StateJSON(turn int) ([]byte, error) {
	if cached, ok := c.cache[turn]; ok {
		return cached, nil
	}
	entry, ok := c.Game.State(turn)
	if !ok {
		return nil, fmt.Errorf("turn %d out of range, game is at turn %d", turn, c.Game.Turn())
	}
	data, err := MarshalEntry(entry)
	if err != nil {
		return nil, err
	}
	c.cache[turn] = data
	return data, nil
}

// StatesJSON is the JSON array of serialized entries between the given
// turns inclusive.
func (c *CachedStates) StatesJSON(startTurn, endTurn int) ([]byte, error) {
	out := []byte("[")
	for t := startTurn; t <= endTurn; t++ {
		entry, err := c.StateJSON(t)
		if err != nil {
			return nil, err
		}
		if t > startTurn {
			out = append(out, ',')
		}
		out = append(out, entry...)
	}
	return append(out, ']'), nil
}
