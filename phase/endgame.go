package phase

import (
	"slices"

	"github.com/rs/zerolog/log"

	"acquire/game"
)

// EndGamePayout pays each player the worth of their assets after the game
// has been declared over.
type EndGamePayout struct {
	snapshot    game.Snapshot
	PlayersPaid []game.PlayerID
}

// NewEndGamePayout creates the state with the given players already paid.
func NewEndGamePayout(snapshot game.Snapshot, playersPaid []game.PlayerID) EndGamePayout {
	return EndGamePayout{snapshot: snapshot, PlayersPaid: playersPaid}
}

func (s EndGamePayout) Snapshot() game.Snapshot { return s.snapshot }
func (s EndGamePayout) Name() string            { return "end_game_payout" }
func (s EndGamePayout) phase()                  {}

// PayoutAssets pays the player their bonuses and the sale value of every
// share they hold. Once every player is paid the game is over and the
// results are ranked by money.
func (s EndGamePayout) PayoutAssets(player game.PlayerID) Transition {
	if slices.Contains(s.PlayersPaid, player) {
		log.Warn().Msgf("[%s] has already received their assets payout, players been paid: %v", player, s.PlayersPaid)
		return failure(s, "%s has already received their assets payout", player)
	}

	worth := s.snapshot.AssetWorth(player)
	next := s.snapshot.AddMoney(player, worth)
	playersPaid := append(slices.Clone(s.PlayersPaid), player)
	log.Info().Msgf("[%s] paid $%d for their assets", player, worth)

	if len(playersPaid) == len(s.snapshot.PlayerIDs()) {
		results := next.PlayerIDs()
		slices.SortStableFunc(results, func(a, b game.PlayerID) int {
			return next.Player(b).Money() - next.Player(a).Money()
		})
		return success(GameOver{snapshot: next, Results: results},
			"%s paid $%d for their assets", player, worth)
	}
	return success(EndGamePayout{snapshot: next, PlayersPaid: playersPaid},
		"%s paid $%d for their assets", player, worth)
}

// GameOver is the final state. Results orders the players by final money,
// winner first.
type GameOver struct {
	snapshot game.Snapshot
	Results  []game.PlayerID
}

// NewGameOver creates the final state with the given results.
func NewGameOver(snapshot game.Snapshot, results []game.PlayerID) GameOver {
	return GameOver{snapshot: snapshot, Results: results}
}

func (s GameOver) Snapshot() game.Snapshot { return s.snapshot }
func (s GameOver) Name() string            { return "game_over" }
func (s GameOver) phase()                  {}

// Result is the player's finishing place, starting at 1 for the winner.
func (s GameOver) Result(player game.PlayerID) int {
	return slices.Index(s.Results, player) + 1
}
