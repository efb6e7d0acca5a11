package game

import (
	"slices"

	"golang.org/x/exp/rand"
)

// Standard game setup.
const (
	StandardLetters        = 9
	StandardNumbers        = 12
	StandardStocksPerHotel = 25
	StandardHandLimit      = 6
	StandardStockTurnLimit = 3
	StandardInitialMoney   = 6000
	StandardSafeSize       = 11
	StandardEndGameSize    = 41
)

// The standard hotels by tier.
var (
	StandardLowHotels  = []HotelID{"luxor", "tower"}
	StandardMidHotels  = []HotelID{"american", "festival", "worldwide"}
	StandardHighHotels = []HotelID{"continental", "imperial"}
)

// standardTier prices stock by chain size on top of the tier's base price.
// Size 1 never occurs for a hotel on the board, so anything above 40 and
// the stray size 1 fall through to the top bucket.
type standardTier struct {
	base int
}

func (t standardTier) StockPrice(size int) int {
	switch {
	case size == 0:
		return 0
	case size >= 2 && size <= 5:
		return t.base + 100*(size-2)
	case size >= 6 && size <= 10:
		return t.base + 400
	case size >= 11 && size <= 20:
		return t.base + 500
	case size >= 21 && size <= 30:
		return t.base + 600
	case size >= 31 && size <= 40:
		return t.base + 700
	default:
		return t.base + 800
	}
}

func (t standardTier) MajorityBonus(size int) int { return 10 * t.StockPrice(size) }
func (t standardTier) MinorityBonus(size int) int { return 5 * t.StockPrice(size) }

// Standard tiers.
var (
	LowTier  Tier = standardTier{base: 200}
	MidTier  Tier = standardTier{base: 300}
	HighTier Tier = standardTier{base: 400}
)

// StandardTier is the tier the given standard hotel belongs to, or false
// when the hotel is not a standard one.
func StandardTier(hotel HotelID) (Tier, bool) {
	switch {
	case slices.Contains(StandardLowHotels, hotel):
		return LowTier, true
	case slices.Contains(StandardMidHotels, hotel):
		return MidTier, true
	case slices.Contains(StandardHighHotels, hotel):
		return HighTier, true
	}
	return nil, false
}

// TileIDs lists every tile id of a board with the given dimensions,
// ordered number first.
func TileIDs(letters, numbers int) []TileID {
	ids := make([]TileID, 0, letters*numbers)
	for n := 1; n <= numbers; n++ {
		for l := 'A'; l < 'A'+rune(letters); l++ {
			ids = append(ids, NewTileID(n, l))
		}
	}
	return ids
}

// StandardTileIDs lists the tile ids of a standard game, 1-A through 12-I,
// ordered number first.
func StandardTileIDs() []TileID {
	return TileIDs(StandardLetters, StandardNumbers)
}

// StandardTiles creates the tiles of a standard game, all in the draw pile.
func StandardTiles() []Tile {
	ids := StandardTileIDs()
	tiles := make([]Tile, len(ids))
	for i, id := range ids {
		tiles[i] = NewTile(id, InDrawPile())
	}
	return tiles
}

// StandardHotels creates the seven hotels of a standard game, all
// available.
func StandardHotels() []Hotel {
	var hotels []Hotel
	add := func(ids []HotelID, tier Tier) {
		for _, id := range ids {
			hotels = append(hotels, NewHotel(id, Available(), StandardSafeSize, StandardEndGameSize, tier))
		}
	}
	add(StandardLowHotels, LowTier)
	add(StandardMidHotels, MidTier)
	add(StandardHighHotels, HighTier)
	return hotels
}

// StandardBank creates the bank of a standard game with the draw pile
// shuffled by seed.
func StandardBank(seed int64) Bank {
	stocks := make(map[HotelID]int)
	for _, h := range StandardHotels() {
		stocks[h.ID()] = StandardStocksPerHotel
	}
	return NewBank(StandardStocksPerHotel, seed, ShuffleTiles(StandardTileIDs(), seed), stocks)
}

// ShuffleTiles returns a copy of tiles shuffled deterministically by seed.
func ShuffleTiles(tiles []TileID, seed int64) []TileID {
	shuffled := slices.Clone(tiles)
	rng := rand.New(rand.NewSource(uint64(seed)))
	for x := len(shuffled); x > 0; x-- {
		r := rng.Intn(x)
		shuffled[r], shuffled[x-1] = shuffled[x-1], shuffled[r]
	}
	return shuffled
}

// StandardPlayer creates one player with the standard limits and money and
// an empty hand.
func StandardPlayer(id PlayerID) Player {
	stocks := make(map[HotelID]int)
	for _, h := range StandardHotels() {
		stocks[h.ID()] = 0
	}
	return NewPlayer(id, StandardHandLimit, StandardStockTurnLimit, StandardInitialMoney, nil, stocks)
}

// StandardPlayers creates one standard player per id.
func StandardPlayers(ids []PlayerID) []Player {
	players := make([]Player, len(ids))
	for i, id := range ids {
		players[i] = StandardPlayer(id)
	}
	return players
}

// Standard creates the snapshot of a fresh standard game with a random
// shuffle.
func Standard(players []PlayerID) (Snapshot, error) {
	return StandardWithSeed(players, int64(rand.Uint64()>>1))
}

// StandardWithSeed creates the snapshot of a fresh standard game shuffled
// by seed, so the same seed always deals the same game.
func StandardWithSeed(players []PlayerID, seed int64) (Snapshot, error) {
	board, err := NewBoard(StandardLetters, StandardNumbers)
	if err != nil {
		return Snapshot{}, err
	}
	return NewCustom(StandardTiles(), StandardBank(seed), board, StandardHotels(), StandardPlayers(players))
}
