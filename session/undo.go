package session

import (
	"slices"

	"acquire/game"
	"acquire/req"
)

// undoState tracks a pending undo: who requested it and who has accepted.
// The zero value means no undo is pending. An undo only removes the
// requester's own last request, and only once every player has accepted.
type undoState struct {
	requester game.PlayerID
	accepted  []game.PlayerID
}

func (u undoState) pending() bool { return u.requester != "" }

// request starts an undo of last, the latest accepted request. The
// requester accepts implicitly.
func (u undoState) request(last req.Request, player game.PlayerID) (undoState, req.Response) {
	if u.pending() {
		return u, req.Failure("undo request not accepted when an undo is already requested")
	}
	if last.Kind() == req.KindStartGame {
		return u, req.Failure("undo request not accepted for a start game request")
	}
	if last.Player() != player {
		return u, req.Failure("undo request denied, cannot undo a different player's request")
	}
	return undoState{requester: player, accepted: []game.PlayerID{player}},
		req.Success("%s requested to undo their last request (%s)", player, last.Kind())
}

// accept records player's acceptance of the pending undo. Accepting twice
// is a harmless no-op.
func (u undoState) accept(player game.PlayerID) (undoState, req.Response) {
	if !u.pending() {
		return u, req.Failure("accept_undo request not accepted when no undo requested")
	}
	if !slices.Contains(u.accepted, player) {
		u.accepted = append(slices.Clone(u.accepted), player)
	}
	return u, req.Success("%s accepted the undo request", player)
}
