package store

import (
	"github.com/rs/zerolog/log"

	"acquire/req"
	"acquire/session"
)

// Persistent wraps a game and writes it back to the store after every
// accepted request, so a crash loses at most the in-flight move.
type Persistent struct {
	session.Game
	store *Store
}

// NewPersistent wraps g, saving its current state immediately.
func NewPersistent(g session.Game, s *Store) (*Persistent, error) {
	if err := s.Save(g); err != nil {
		return nil, err
	}
	return &Persistent{Game: g, store: s}, nil
}

// Submit forwards to the wrapped game and saves on success. A failed
// save does not fail the move, it is logged and the next accepted
// request retries.
func (p *Persistent) Submit(r req.Request) req.Response {
	response := p.Game.Submit(r)
	if response.OK {
		if err := p.store.Save(p.Game); err != nil {
			log.Warn().Err(err).Str("game", p.Game.ID()).Msg("failed to save game")
		}
	}
	return response
}
