package ai

import (
	"testing"

	"github.com/stretchr/testify/require"

	"acquire/game"
	"acquire/phase"
	"acquire/req"
)

func snapshot(t *testing.T, hotels []game.Hotel, boardTiles []game.TileID, players []game.Player) game.Snapshot {
	t.Helper()
	board, err := game.NewBoard(game.StandardLetters, game.StandardNumbers)
	require.NoError(t, err)
	board = board.WithTiles(boardTiles...)

	stocks := make(map[game.HotelID]int)
	roster := game.StandardHotels()
	for i, h := range roster {
		for _, override := range hotels {
			if override.ID() == h.ID() {
				roster[i] = override
			}
		}
	}
	for _, h := range roster {
		stocks[h.ID()] = game.StandardStocksPerHotel
	}
	for _, p := range players {
		for h, n := range p.Stocks() {
			stocks[h] -= n
		}
	}

	bank := game.NewBank(game.StandardStocksPerHotel, 0, game.StandardTileIDs(), stocks)
	s, err := game.NewCustom(game.StandardTiles(), bank, board, roster, players)
	require.NoError(t, err)
	return s
}

func chained(id game.HotelID, tier game.Tier, tiles ...game.TileID) game.Hotel {
	return game.NewHotel(id, game.Chain(tiles), game.StandardSafeSize, game.StandardEndGameSize, tier)
}

func player(id game.PlayerID, money int, tiles []game.TileID, stocks map[game.HotelID]int) game.Player {
	return game.NewPlayer(id, game.StandardHandLimit, game.StandardStockTurnLimit, money, tiles, stocks)
}

func aliceBobTurn() phase.Turn {
	return phase.Turn{Order: []game.PlayerID{"alice", "bob"}, Current: "alice"}
}

func TestPossibleRequestsPregame(t *testing.T) {
	s := snapshot(t, nil, nil, []game.Player{
		player("alice", game.StandardInitialMoney, nil, nil),
		player("bob", game.StandardInitialMoney, nil, nil),
	})
	state := phase.Start(s)

	require.ElementsMatch(t, []req.Request{
		req.DrawTile{P: "alice"},
		req.DrawTile{P: "bob"},
	}, PossibleRequests(state))
	require.ElementsMatch(t, []game.PlayerID{"alice", "bob"}, PlayersWithRequest(state))

	next := state.(phase.DrawTurnTile).DrawTurnTile("alice").Next
	require.Equal(t, []req.Request{req.DrawTile{P: "bob"}}, PossibleRequests(next))
}

func TestPossibleRequestsPlaceTile(t *testing.T) {
	t.Run("every hand tile of the current player", func(t *testing.T) {
		s := snapshot(t, nil, nil, []game.Player{
			player("alice", game.StandardInitialMoney, []game.TileID{"1-A", "7-G"}, nil),
			player("bob", game.StandardInitialMoney, []game.TileID{"9-C"}, nil),
		})
		state := phase.NewPlaceTile(s, aliceBobTurn())

		require.ElementsMatch(t, []req.Request{
			req.PlaceTile{P: "alice", Tile: "1-A"},
			req.PlaceTile{P: "alice", Tile: "7-G"},
		}, PossibleRequests(state))
	})

	t.Run("unplayable tiles are left out", func(t *testing.T) {
		// all seven hotels are on the board, so 1-I next to the loose 2-I
		// cannot be placed while 7-G can
		hotels := []game.Hotel{
			chained("luxor", game.LowTier, "1-A", "2-A"),
			chained("tower", game.LowTier, "4-A", "5-A"),
			chained("american", game.MidTier, "7-A", "8-A"),
			chained("festival", game.MidTier, "10-A", "11-A"),
			chained("worldwide", game.MidTier, "1-C", "2-C"),
			chained("continental", game.HighTier, "4-C", "5-C"),
			chained("imperial", game.HighTier, "7-C", "8-C"),
		}
		s := snapshot(t, hotels, []game.TileID{"2-I"}, []game.Player{
			player("alice", game.StandardInitialMoney, []game.TileID{"1-I", "7-G"}, nil),
			player("bob", game.StandardInitialMoney, nil, nil),
		})
		state := phase.NewPlaceTile(s, aliceBobTurn())

		require.Equal(t, []req.Request{req.PlaceTile{P: "alice", Tile: "7-G"}},
			PossibleRequests(state))
	})

	t.Run("ending the game is offered once allowed", func(t *testing.T) {
		var tiles []game.TileID
		for _, id := range game.StandardTileIDs() {
			n, _, err := id.Split()
			require.NoError(t, err)
			if n <= 5 {
				tiles = append(tiles, id)
			}
		}
		s := snapshot(t, []game.Hotel{chained("luxor", game.LowTier, tiles...)}, nil,
			[]game.Player{
				player("alice", game.StandardInitialMoney, []game.TileID{"12-I"}, nil),
				player("bob", game.StandardInitialMoney, nil, nil),
			})
		state := phase.NewPlaceTile(s, aliceBobTurn())

		require.Contains(t, PossibleRequests(state), req.EndGame{P: "alice"})
	})
}

func TestBuyRequests(t *testing.T) {
	s := snapshot(t, []game.Hotel{chained("luxor", game.LowTier, "1-A", "2-A")}, nil,
		[]game.Player{
			player("alice", 500, nil, nil),
			player("bob", game.StandardInitialMoney, nil, nil),
		})
	state := phase.NewBuyStock(s, aliceBobTurn())

	// luxor costs 200 at size two, so alice can afford at most two shares
	require.ElementsMatch(t, []req.Request{
		req.BuyStock{P: "alice", Buy: map[game.HotelID]int{}},
		req.BuyStock{P: "alice", Buy: map[game.HotelID]int{"luxor": 1}},
		req.BuyStock{P: "alice", Buy: map[game.HotelID]int{"luxor": 2}},
	}, PossibleRequests(state))
}

func TestHandleStockRequests(t *testing.T) {
	hotels := []game.Hotel{chained("tower", game.LowTier, "4-A", "5-A", "6-A")}
	s := snapshot(t, hotels, nil, []game.Player{
		player("alice", game.StandardInitialMoney, nil, map[game.HotelID]int{"luxor": 3, "tower": 24}),
		player("bob", game.StandardInitialMoney, nil, nil),
	})
	merge := phase.Merge{
		Context:   phase.MergeContext{Turn: aliceBobTurn()},
		Surviving: "tower",
		Defunct:   "luxor",
	}
	state := phase.NewHandleDefunctHotelStocks(s, merge, []game.PlayerID{"alice", "bob"})

	// alice holds three luxor; the bank has one tower left so at most one
	// trade of two shares fits
	requests := PossibleRequests(state)
	require.Len(t, requests, 6)
	for _, r := range requests {
		hs := r.(req.HandleStocks)
		require.Equal(t, game.PlayerID("alice"), hs.P, "only the head of the queue moves")
		require.Equal(t, 3, hs.Trade+hs.Sell+hs.Keep)
		require.Zero(t, hs.Trade%2)
		require.LessOrEqual(t, hs.Trade/2, 1)
	}
}
