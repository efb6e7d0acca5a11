package phase

import (
	"testing"

	"github.com/stretchr/testify/require"

	"acquire/game"
)

// freshSnapshot deals a two player game with an unshuffled pile, so draws
// come off the tail in tile order: 12-I first, then 12-H, and so on.
func freshSnapshot(t *testing.T) game.Snapshot {
	t.Helper()
	board, err := game.NewBoard(game.StandardLetters, game.StandardNumbers)
	require.NoError(t, err)
	stocks := make(map[game.HotelID]int)
	for _, h := range game.StandardHotels() {
		stocks[h.ID()] = game.StandardStocksPerHotel
	}
	bank := game.NewBank(game.StandardStocksPerHotel, 0, game.StandardTileIDs(), stocks)
	players := game.StandardPlayers([]game.PlayerID{"alice", "bob"})
	s, err := game.NewCustom(game.StandardTiles(), bank, board, game.StandardHotels(), players)
	require.NoError(t, err)
	return s
}

func TestDrawTurnTile(t *testing.T) {
	state := Start(freshSnapshot(t)).(DrawTurnTile)

	transition := state.DrawTurnTile("alice")
	require.True(t, transition.Response.OK)
	next := transition.Next.(DrawTurnTile)
	require.True(t, next.Snapshot().Player("alice").HasTile("12-I"),
		"the first draw takes the tail of the pile")

	t.Run("drawing twice fails", func(t *testing.T) {
		repeat := next.DrawTurnTile("alice")
		require.False(t, repeat.Response.OK)
		require.Equal(t, next, repeat.Next, "a failed move leaves the state unchanged")
	})

	transition = next.DrawTurnTile("bob")
	require.True(t, transition.Response.OK)
	place := transition.Next.(PlaceTurnTile)
	require.True(t, place.Snapshot().Player("bob").HasTile("12-H"))
}

func TestPlaceTurnTileFixesTurnOrder(t *testing.T) {
	state := Start(freshSnapshot(t)).(DrawTurnTile)
	s1 := state.DrawTurnTile("alice").Next.(DrawTurnTile)
	place := s1.DrawTurnTile("bob").Next.(PlaceTurnTile)

	t.Run("placing a tile not in hand fails", func(t *testing.T) {
		transition := place.PlaceTurnTile("alice", "1-A")
		require.False(t, transition.Response.OK)
	})

	// alice drew 12-I, bob drew 12-H; 12-H orders first so bob leads
	mid := place.PlaceTurnTile("alice", "12-I").Next.(PlaceTurnTile)

	t.Run("placing twice fails", func(t *testing.T) {
		transition := mid.PlaceTurnTile("alice", "12-I")
		require.False(t, transition.Response.OK)
	})

	transition := mid.PlaceTurnTile("bob", "12-H")
	require.True(t, transition.Response.OK)
	draw := transition.Next.(DrawInitialTiles)
	require.Equal(t, []game.PlayerID{"bob", "alice"}, draw.TurnOrder)
	require.True(t, draw.Snapshot().Board().Contains("12-I"))
	require.True(t, draw.Snapshot().Board().Contains("12-H"))
}

func TestDrawInitialTilesFillsHands(t *testing.T) {
	state := Start(freshSnapshot(t)).(DrawTurnTile)
	s1 := state.DrawTurnTile("alice").Next.(DrawTurnTile)
	place := s1.DrawTurnTile("bob").Next.(PlaceTurnTile)
	mid := place.PlaceTurnTile("alice", "12-I").Next.(PlaceTurnTile)
	draw := mid.PlaceTurnTile("bob", "12-H").Next.(DrawInitialTiles)

	transition := draw.DrawInitialTiles("bob")
	require.True(t, transition.Response.OK)
	next := transition.Next.(DrawInitialTiles)
	require.Equal(t, game.StandardHandLimit, next.Snapshot().Player("bob").HandSize())

	t.Run("drawing twice fails", func(t *testing.T) {
		repeat := next.DrawInitialTiles("bob")
		require.False(t, repeat.Response.OK)
	})

	transition = next.DrawInitialTiles("alice")
	require.True(t, transition.Response.OK)
	playing := transition.Next.(PlaceTile)
	require.Equal(t, game.StandardHandLimit, playing.Snapshot().Player("alice").HandSize())
	require.Equal(t, Turn{Order: []game.PlayerID{"bob", "alice"}, Current: "bob"}, playing.Turn)
	require.Equal(t, 108-2-12, playing.Snapshot().Bank().DrawPileSize())
}
