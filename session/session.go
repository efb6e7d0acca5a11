// Package session runs games: it dispatches player requests into the phase
// machine, records the history of successful turns, and arbitrates undo
// requests.
package session

import (
	"slices"

	"github.com/rs/zerolog/log"

	"acquire/game"
	"acquire/phase"
	"acquire/req"
)

// Entry is one point of a game's history: the request that was accepted,
// its response, and the state the machine reached.
type Entry struct {
	Turn     int
	Request  req.Request
	Response req.Response
	State    phase.State
}

// Game is a running game. Turn 0 is the start of the game; every accepted
// request appends a turn, and a completed undo removes one.
type Game interface {
	// ID uniquely identifies the game.
	ID() string
	// Version is the implementation version the game was created by.
	Version() Version
	// Type reports whether this is a standard or custom setup.
	Type() Type
	// Players lists the players, sorted.
	Players() []game.PlayerID
	// Turn is the current turn, always >= 0.
	Turn() int
	// State is the history entry at the given turn, false when out of
	// range.
	State(turn int) (Entry, bool)
	// Current is the latest history entry.
	Current() Entry
	// Submit submits a request, appending a turn when it succeeds.
	Submit(r req.Request) req.Response
}

// States lists the history entries of g from startTurn to endTurn
// inclusive, skipping turns out of range.
func States(g Game, startTurn, endTurn int) []Entry {
	var entries []Entry
	for t := startTurn; t <= endTurn; t++ {
		if e, ok := g.State(t); ok {
			entries = append(entries, e)
		}
	}
	return entries
}

// AllStates lists the full history of g.
func AllStates(g Game) []Entry {
	return States(g, 0, g.Turn())
}

// Session is the in-memory Game implementation.
type Session struct {
	id      string
	version Version
	typ     Type
	players []game.PlayerID
	history []Entry
	undo    undoState
}

// New starts a game in the given phase state. The first player is recorded
// as having started the game at turn 0.
func New(id string, version Version, typ Type, players []game.PlayerID, start phase.State) *Session {
	players = slices.Clone(players)
	slices.Sort(players)
	return &Session{
		id:      id,
		version: version,
		typ:     typ,
		players: players,
		history: []Entry{{
			Turn:     0,
			Request:  req.StartGame{P: players[0]},
			Response: req.Success("game started"),
			State:    start,
		}},
	}
}

func (s *Session) ID() string              { return s.id }
func (s *Session) Version() Version        { return s.version }
func (s *Session) Type() Type              { return s.typ }
func (s *Session) Players() []game.PlayerID { return slices.Clone(s.players) }

func (s *Session) Turn() int { return len(s.history) - 1 }

func (s *Session) State(turn int) (Entry, bool) {
	if turn < 0 || turn >= len(s.history) {
		return Entry{}, false
	}
	return s.history[turn], true
}

func (s *Session) Current() Entry { return s.history[len(s.history)-1] }

// Submit dispatches r to the move it names in the current phase state. A
// request that the state does not accept fails and changes nothing. Any
// accepted request abandons a pending undo.
func (s *Session) Submit(r req.Request) req.Response {
	log.Info().Str("game", s.id).Msgf("[%s] submitted request: %s", r.Player(), r.Kind())
	sm := s.Current().State

	var response req.Response
	switch r := r.(type) {
	case req.AcceptMoney:
		switch sm := sm.(type) {
		case phase.EndGamePayout:
			response = s.save(r, sm.PayoutAssets(r.Player()))
		case phase.PayBonuses:
			response = s.save(r, sm.PayBonus(r.Player()))
		default:
			response = notAccepted(r, sm)
		}
	case req.AcceptStock:
		switch sm := sm.(type) {
		case phase.FoundersStock:
			response = s.save(r, sm.ReceiveStock(r.Player()))
		default:
			response = notAccepted(r, sm)
		}
	case req.BuyStock:
		switch sm := sm.(type) {
		case phase.BuyStock:
			response = s.save(r, sm.BuyStock(r.Player(), r.Buy))
		default:
			response = notAccepted(r, sm)
		}
	case req.ChooseHotel:
		switch sm := sm.(type) {
		case phase.StartHotel:
			response = s.save(r, sm.StartHotel(r.Player(), r.Hotel))
		case phase.ChooseSurvivingHotel:
			response = s.save(r, sm.ChooseSurvivingHotel(r.Player(), r.Hotel))
		case phase.ChooseDefunctHotel:
			response = s.save(r, sm.ChooseDefunctHotel(r.Player(), r.Hotel))
		default:
			response = notAccepted(r, sm)
		}
	case req.DrawTile:
		switch sm := sm.(type) {
		case phase.DrawTurnTile:
			response = s.save(r, sm.DrawTurnTile(r.Player()))
		case phase.DrawInitialTiles:
			response = s.save(r, sm.DrawInitialTiles(r.Player()))
		case phase.DrawTile:
			response = s.save(r, sm.DrawTile(r.Player()))
		default:
			response = notAccepted(r, sm)
		}
	case req.EndGame:
		switch sm := sm.(type) {
		case phase.PlaceTile:
			response = s.save(r, sm.EndGame(r.Player()))
		case phase.DrawTile:
			response = s.save(r, sm.EndGame(r.Player()))
		default:
			response = notAccepted(r, sm)
		}
	case req.HandleStocks:
		switch sm := sm.(type) {
		case phase.HandleDefunctHotelStocks:
			response = s.save(r, sm.HandleStocks(r.Player(), r.Trade, r.Sell, r.Keep))
		default:
			response = notAccepted(r, sm)
		}
	case req.PlaceTile:
		switch sm := sm.(type) {
		case phase.PlaceTurnTile:
			response = s.save(r, sm.PlaceTurnTile(r.Player(), r.Tile))
		case phase.PlaceTile:
			response = s.save(r, sm.PlaceTile(r.Player(), r.Tile))
		default:
			response = notAccepted(r, sm)
		}
	case req.StartGame:
		response = req.Failure("start_game request not accepted once game is started")
	case req.Undo:
		var next undoState
		next, response = s.undo.request(s.Current().Request, r.Player())
		s.undo = next
	case req.AcceptUndo:
		next, resp := s.undo.accept(r.Player())
		if resp.OK && len(next.accepted) == len(s.players) {
			s.history = s.history[:len(s.history)-1]
			s.undo = undoState{}
			response = req.Success("undo request accepted for %s, their last request was removed", next.requester)
		} else {
			s.undo = next
			response = resp
		}
	default:
		response = req.Failure("unknown request")
	}

	if response.OK {
		log.Info().Str("game", s.id).Msgf("[%s] request successful: %s", r.Player(), response.Message)
	} else {
		log.Warn().Str("game", s.id).Msgf("[%s] request failed: %s", r.Player(), response.Message)
	}
	return response
}

// save records t when it succeeded.
func (s *Session) save(r req.Request, t phase.Transition) req.Response {
	if t.Response.OK {
		s.undo = undoState{}
		s.history = append(s.history, Entry{
			Turn:     s.Turn() + 1,
			Request:  r,
			Response: t.Response,
			State:    t.Next,
		})
	}
	return t.Response
}

func notAccepted(r req.Request, sm phase.State) req.Response {
	return req.Failure("%s request not accepted in state %s", r.Kind(), sm.Name())
}
