package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStandardTierPrices(t *testing.T) {
	cases := []struct {
		size int
		low  int
		mid  int
		high int
	}{
		{size: 0, low: 0, mid: 0, high: 0},
		// a chain of one never occurs on the board; size 1 prices at the
		// top bucket like anything past 40
		{size: 1, low: 1000, mid: 1100, high: 1200},
		{size: 2, low: 200, mid: 300, high: 400},
		{size: 3, low: 300, mid: 400, high: 500},
		{size: 5, low: 500, mid: 600, high: 700},
		{size: 6, low: 600, mid: 700, high: 800},
		{size: 10, low: 600, mid: 700, high: 800},
		{size: 11, low: 700, mid: 800, high: 900},
		{size: 20, low: 700, mid: 800, high: 900},
		{size: 21, low: 800, mid: 900, high: 1000},
		{size: 31, low: 900, mid: 1000, high: 1100},
		{size: 41, low: 1000, mid: 1100, high: 1200},
		{size: 108, low: 1000, mid: 1100, high: 1200},
	}
	for _, c := range cases {
		require.Equal(t, c.low, LowTier.StockPrice(c.size), "low tier at size %d", c.size)
		require.Equal(t, c.mid, MidTier.StockPrice(c.size), "mid tier at size %d", c.size)
		require.Equal(t, c.high, HighTier.StockPrice(c.size), "high tier at size %d", c.size)
	}
}

func TestStandardTierBonuses(t *testing.T) {
	require.Equal(t, 2000, LowTier.MajorityBonus(2), "majority is ten times the stock price")
	require.Equal(t, 1000, LowTier.MinorityBonus(2), "minority is five times the stock price")
	require.Equal(t, 7000, MidTier.MajorityBonus(6))
	require.Equal(t, 3500, MidTier.MinorityBonus(6))
}

func TestTableTier(t *testing.T) {
	tier := TableTier{Rows: []TierRow{{MinSize: 2, Price: 100}, {MinSize: 5, Price: 250}}}
	require.Equal(t, 0, tier.StockPrice(0), "size 0 is always free")
	require.Equal(t, 0, tier.StockPrice(1), "below the first row there is no price")
	require.Equal(t, 100, tier.StockPrice(2))
	require.Equal(t, 100, tier.StockPrice(4))
	require.Equal(t, 250, tier.StockPrice(5))
	require.Equal(t, 250, tier.StockPrice(50))
	require.Equal(t, 2500, tier.MajorityBonus(5))
	require.Equal(t, 1250, tier.MinorityBonus(5))
}

func TestStandardTileIDs(t *testing.T) {
	ids := StandardTileIDs()
	require.Len(t, ids, 108)
	require.Equal(t, TileID("1-A"), ids[0])
	require.Equal(t, TileID("1-I"), ids[8])
	require.Equal(t, TileID("2-A"), ids[9])
	require.Equal(t, TileID("12-I"), ids[107])
}

func TestStandardWithSeed(t *testing.T) {
	s, err := StandardWithSeed([]PlayerID{"alice", "bob"}, 7)
	require.NoError(t, err)

	require.Len(t, s.HotelIDs(), 7)
	require.ElementsMatch(t,
		[]HotelID{"american", "continental", "festival", "imperial", "luxor", "tower", "worldwide"},
		s.HotelIDs())
	require.Equal(t, 108, s.Bank().DrawPileSize(), "every tile starts in the pile")

	for _, p := range s.PlayerIDs() {
		require.Equal(t, StandardInitialMoney, s.Player(p).Money())
		require.Equal(t, 0, s.Player(p).HandSize())
		for _, h := range s.HotelIDs() {
			require.Equal(t, 0, s.Player(p).Stock(h))
			require.Equal(t, StandardStocksPerHotel, s.Bank().Stock(h))
		}
	}

	again, err := StandardWithSeed([]PlayerID{"alice", "bob"}, 7)
	require.NoError(t, err)
	require.Equal(t, s.Bank().DrawPile(), again.Bank().DrawPile(),
		"the same seed should deal the same pile")
}
