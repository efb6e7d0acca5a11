package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"acquire/game"
	"acquire/session"
)

const sampleYAML = `
board:
  letters: 5
  numbers: 8
hotels:
  - name: ritz
    tier: low
  - name: savoy
    tier: high
  - name: plaza
    prices:
      - {min_size: 2, price: 150}
      - {min_size: 10, price: 750}
initial_money: 4000
stocks_per_hotel: 10
shuffle_seed: 42
`

func loadSample(t *testing.T) Setup {
	t.Helper()
	path := filepath.Join(t.TempDir(), "setup.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o644))
	setup, err := Load(path)
	require.NoError(t, err)
	return setup
}

func TestLoad(t *testing.T) {
	setup := loadSample(t)

	require.Equal(t, 5, setup.Board.Letters)
	require.Equal(t, 8, setup.Board.Numbers)
	require.Len(t, setup.Hotels, 3)
	require.Equal(t, "plaza", setup.Hotels[2].Name)
	require.Equal(t, []PriceSetup{{MinSize: 2, Price: 150}, {MinSize: 10, Price: 750}},
		setup.Hotels[2].Prices)
	require.Equal(t, 4000, setup.InitialMoney)
	require.Equal(t, int64(42), setup.ShuffleSeed)
	require.Zero(t, setup.HandLimit, "unset fields stay zero until normalized")

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestSnapshot(t *testing.T) {
	setup := loadSample(t)
	s, err := setup.Snapshot([]game.PlayerID{"alice", "bob"})
	require.NoError(t, err)

	require.Equal(t, 5, s.Board().Letters())
	require.Equal(t, 8, s.Board().Numbers())
	require.Len(t, s.TileIDs(), 40)
	require.Equal(t, 40, s.Bank().DrawPileSize())
	require.ElementsMatch(t, []game.HotelID{"ritz", "savoy", "plaza"}, s.HotelIDs())
	require.Equal(t, 10, s.Bank().Stock("plaza"))

	t.Run("unset limits fall back to the standard rules", func(t *testing.T) {
		alice := s.Player("alice")
		require.Equal(t, 4000, alice.Money())
		require.Equal(t, game.StandardHandLimit, alice.HandLimit())
		require.Equal(t, game.StandardStockTurnLimit, alice.StockTurnLimit())
	})

	t.Run("a custom price table prices by bucket", func(t *testing.T) {
		plaza := game.NewHotel("plaza", game.Chain(game.TileIDs(5, 1)),
			game.StandardSafeSize, game.StandardEndGameSize,
			game.TableTier{Rows: []game.TierRow{{MinSize: 2, Price: 150}, {MinSize: 10, Price: 750}}})
		require.Equal(t, 150, plaza.StockPrice())
	})
}

func TestSnapshotErrors(t *testing.T) {
	t.Run("no hotels", func(t *testing.T) {
		_, err := Setup{}.Snapshot([]game.PlayerID{"alice"})
		require.ErrorContains(t, err, "no hotels")
	})

	t.Run("unknown tier", func(t *testing.T) {
		setup := Setup{Hotels: []HotelSetup{{Name: "ritz", Tier: "platinum"}}}
		_, err := setup.Snapshot([]game.PlayerID{"alice"})
		require.ErrorContains(t, err, `unknown tier "platinum"`)
	})

	t.Run("tier and price table together", func(t *testing.T) {
		setup := Setup{Hotels: []HotelSetup{{
			Name:   "ritz",
			Tier:   "low",
			Prices: []PriceSetup{{MinSize: 2, Price: 100}},
		}}}
		_, err := setup.Snapshot([]game.PlayerID{"alice"})
		require.ErrorContains(t, err, "both a tier and a price table")
	})
}

func TestNewGame(t *testing.T) {
	setup := loadSample(t)
	g, err := setup.NewGame([]game.PlayerID{"alice", "bob"})
	require.NoError(t, err)

	require.Equal(t, session.TypeCustom, g.Type())
	require.Equal(t, session.CurrentVersion, g.Version())
	require.Equal(t, []game.PlayerID{"alice", "bob"}, g.Players())
	require.Equal(t, "draw_turn_tile", g.Current().State.Name())
}
