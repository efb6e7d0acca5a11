// Package phase is the state machine of a game. Each state carries the
// snapshot it was entered with and offers the moves legal in it. Moves are
// pure: they return a Transition holding the response and the next state,
// and a failed move always returns the receiver unchanged.
package phase

import (
	"slices"

	"acquire/game"
	"acquire/req"
)

// State is one state of the game state machine. The set of states is
// closed.
type State interface {
	// Snapshot is the object state the machine entered this state with.
	Snapshot() game.Snapshot
	// Name is the state's wire name, like "place_tile".
	Name() string

	phase()
}

// Transition is the outcome of a move: the response to the player and the
// state the machine is in afterwards.
type Transition struct {
	Response req.Response
	Next     State
}

func failure(s State, format string, args ...any) Transition {
	return Transition{Response: req.Failure(format, args...), Next: s}
}

func success(s State, format string, args ...any) Transition {
	return Transition{Response: req.Success(format, args...), Next: s}
}

func notCurrentPlayer(s State, player game.PlayerID, turn Turn) Transition {
	return failure(s, "it is not %s's turn; it is %s's turn", player, turn.Current)
}

// Start enters the state machine with a fresh snapshot: every player draws
// a turn tile first.
func Start(snapshot game.Snapshot) State {
	return DrawTurnTile{snapshot: snapshot}
}

// Turn is the turn bookkeeping carried through most of the game.
type Turn struct {
	Order   []game.PlayerID
	Current game.PlayerID
}

// IsCurrent reports whether player is the current player.
func (t Turn) IsCurrent(player game.PlayerID) bool { return player == t.Current }

// NextPlayer is the player whose turn follows the current one.
func (t Turn) NextPlayer() game.PlayerID {
	if len(t.Order) == 0 {
		panic("player turn order needs to be defined")
	}
	i := slices.Index(t.Order, t.Current)
	if i+1 >= len(t.Order) {
		return t.Order[0]
	}
	return t.Order[i+1]
}

// advance moves the turn to the next player.
func (t Turn) advance() Turn {
	t.Current = t.NextPlayer()
	return t
}

// MergeContext is the game context captured when a merger starts.
type MergeContext struct {
	Turn         Turn
	PlacedTile   game.TileID
	NearbyHotels []game.HotelID
}

// Merge tracks one defunct hotel being folded into the survivor.
type Merge struct {
	Context   MergeContext
	Surviving game.HotelID
	Defunct   game.HotelID
	Remaining []game.HotelID
}
