package phase

import (
	"testing"

	"github.com/stretchr/testify/require"

	"acquire/game"
)

// mergerScenario sets up luxor (2 tiles) and tower (3 tiles) separated by
// the gap at 3-A, with alice holding the merging tile. Alice holds the
// luxor majority and bob the minority.
func mergerScenario(t *testing.T) PlaceTile {
	t.Helper()
	s := scenario(t,
		[]game.Hotel{
			chained("luxor", game.LowTier, "1-A", "2-A"),
			chained("tower", game.LowTier, "4-A", "5-A", "6-A"),
		},
		nil,
		[]game.Player{
			standardPlayer("alice", []game.TileID{"3-A"}, map[game.HotelID]int{"luxor": 3}),
			standardPlayer("bob", nil, map[game.HotelID]int{"luxor": 1}),
		})
	return NewPlaceTile(s, aliceBobTurn())
}

func TestMergerFullFlow(t *testing.T) {
	state := mergerScenario(t)

	// tower is larger, so it survives without a choice and the luxor
	// bonuses come due: majority 2000 and minority 1000 at price 200
	transition := state.PlaceTile("alice", "3-A")
	require.True(t, transition.Response.OK)
	pay := transition.Next.(PayBonuses)
	require.Equal(t, game.HotelID("tower"), pay.Merge.Surviving)
	require.Equal(t, game.HotelID("luxor"), pay.Merge.Defunct)
	require.Equal(t, map[game.PlayerID]int{"alice": 2000, "bob": 1000}, pay.PlayersToPay)

	t.Run("a player without a bonus cannot collect", func(t *testing.T) {
		require.False(t, pay.PayBonus("carol").Response.OK)
	})

	pay = pay.PayBonus("alice").Next.(PayBonuses)
	require.Equal(t, map[game.PlayerID]int{"bob": 1000}, pay.PlayersToPay)

	transition = pay.PayBonus("bob")
	require.True(t, transition.Response.OK)
	handle := transition.Next.(HandleDefunctHotelStocks)
	require.Equal(t, []game.PlayerID{"alice", "bob"}, handle.PlayersWithStock,
		"stockholders queue in turn order from the merging player")

	t.Run("out of queue order fails", func(t *testing.T) {
		require.False(t, handle.HandleStocks("bob", 0, 0, 1).Response.OK)
	})
	t.Run("odd trade fails", func(t *testing.T) {
		require.False(t, handle.HandleStocks("alice", 1, 0, 2).Response.OK)
	})
	t.Run("split not covering the holding fails", func(t *testing.T) {
		require.False(t, handle.HandleStocks("alice", 2, 0, 0).Response.OK)
	})
	t.Run("negative split fails", func(t *testing.T) {
		require.False(t, handle.HandleStocks("alice", 4, -1, 0).Response.OK)
	})

	// alice trades 2 for 1 tower share and sells 1 at the luxor price
	handle = handle.HandleStocks("alice", 2, 1, 0).Next.(HandleDefunctHotelStocks)
	require.Equal(t, []game.PlayerID{"bob"}, handle.PlayersWithStock)
	require.Equal(t, 1, handle.Snapshot().Player("alice").Stock("tower"))
	require.Equal(t, 0, handle.Snapshot().Player("alice").Stock("luxor"))
	require.Equal(t, game.StandardInitialMoney+2000+200, handle.Snapshot().Player("alice").Money())

	transition = handle.HandleStocks("bob", 0, 0, 1)
	require.True(t, transition.Response.OK)
	buy := transition.Next.(BuyStock)

	final := buy.Snapshot()
	require.Equal(t, 6, final.Hotel("tower").Size(), "both chains and the merging tile join the survivor")
	require.True(t, final.Hotel("luxor").IsAvailable(), "the defunct hotel can be started again")
	require.Equal(t, game.InHotel("tower"), final.Tile("3-A").State)
	require.Equal(t, game.InHotel("tower"), final.Tile("1-A").State)
	require.Equal(t, 1, final.Player("bob").Stock("luxor"), "kept shares survive the merger")
	require.Equal(t, game.StandardInitialMoney+1000, final.Player("bob").Money())
}

func TestMergerSurvivorTie(t *testing.T) {
	s := scenario(t,
		[]game.Hotel{
			chained("luxor", game.LowTier, "1-A", "2-A"),
			chained("tower", game.LowTier, "4-A", "5-A"),
		},
		nil,
		[]game.Player{
			standardPlayer("alice", []game.TileID{"3-A"}, nil),
			standardPlayer("bob", nil, nil),
		})
	state := NewPlaceTile(s, aliceBobTurn())

	transition := state.PlaceTile("alice", "3-A")
	require.True(t, transition.Response.OK)
	choose := transition.Next.(ChooseSurvivingHotel)
	require.ElementsMatch(t, []game.HotelID{"luxor", "tower"}, choose.Candidates)

	t.Run("a non-candidate fails", func(t *testing.T) {
		require.False(t, choose.ChooseSurvivingHotel("alice", "american").Response.OK)
	})
	t.Run("only the merging player picks", func(t *testing.T) {
		require.False(t, choose.ChooseSurvivingHotel("bob", "tower").Response.OK)
	})

	// nobody holds luxor stock, so bonuses and stock handling are skipped
	// and the merger completes in one step
	transition = choose.ChooseSurvivingHotel("alice", "tower")
	require.True(t, transition.Response.OK)
	buy := transition.Next.(BuyStock)
	require.Equal(t, 5, buy.Snapshot().Hotel("tower").Size())
	require.True(t, buy.Snapshot().Hotel("luxor").IsAvailable())
}

func TestMergerQueueStartsAtMergingPlayer(t *testing.T) {
	s := scenario(t,
		[]game.Hotel{
			chained("luxor", game.LowTier, "1-A", "2-A"),
			chained("tower", game.LowTier, "4-A", "5-A", "6-A"),
		},
		nil,
		[]game.Player{
			standardPlayer("alice", nil, map[game.HotelID]int{"luxor": 2}),
			standardPlayer("bob", []game.TileID{"3-A"}, map[game.HotelID]int{"luxor": 2}),
		})
	turn := Turn{Order: []game.PlayerID{"alice", "bob"}, Current: "bob"}
	state := NewPlaceTile(s, turn)

	pay := state.PlaceTile("bob", "3-A").Next.(PayBonuses)
	pay = pay.PayBonus("alice").Next.(PayBonuses)
	handle := pay.PayBonus("bob").Next.(HandleDefunctHotelStocks)
	require.Equal(t, []game.PlayerID{"bob", "alice"}, handle.PlayersWithStock,
		"the queue rotates so the merging player settles first")
}
