package game

import "slices"

// Tier fixes a hotel's stock price and merger bonuses as a function of its
// chain size.
type Tier interface {
	StockPrice(size int) int
	MajorityBonus(size int) int
	MinorityBonus(size int) int
}

// HotelState is either available (off the board) or a chain of tiles on the
// board.
type HotelState struct {
	OnBoard bool
	Tiles   []TileID // the chain, set only when OnBoard
}

// Available is the state of a hotel that may still be started.
func Available() HotelState { return HotelState{} }

// Chain is the state of a hotel on the board made up of tiles.
func Chain(tiles []TileID) HotelState {
	return HotelState{OnBoard: true, Tiles: slices.Clone(tiles)}
}

// Size is the number of tiles in the chain, 0 when available.
func (s HotelState) Size() int { return len(s.Tiles) }

// Hotel is one hotel chain: identity, board state, and the thresholds and
// tier that drive its economics.
type Hotel struct {
	id          HotelID
	state       HotelState
	safeSize    int
	endGameSize int
	tier        Tier
}

// NewHotel creates a hotel.
func NewHotel(id HotelID, state HotelState, safeSize, endGameSize int, tier Tier) Hotel {
	return Hotel{id: id, state: state, safeSize: safeSize, endGameSize: endGameSize, tier: tier}
}

// ID is the hotel's unique identifier.
func (h Hotel) ID() HotelID { return h.id }

// State is the hotel's current state.
func (h Hotel) State() HotelState { return h.state }

// SafeSize is the chain size at which the hotel can no longer be merged away.
func (h Hotel) SafeSize() int { return h.safeSize }

// EndGameSize is the chain size at which the game may be ended.
func (h Hotel) EndGameSize() int { return h.endGameSize }

// Tier is the hotel's price tier.
func (h Hotel) Tier() Tier { return h.tier }

// Size is the number of tiles in the hotel's chain.
func (h Hotel) Size() int { return h.state.Size() }

// IsAvailable reports whether the hotel may still be started.
func (h Hotel) IsAvailable() bool { return !h.state.OnBoard }

// IsOnBoard reports whether the hotel is on the board.
func (h Hotel) IsOnBoard() bool { return h.state.OnBoard }

// IsSafe reports whether the hotel has reached its safe size.
func (h Hotel) IsSafe() bool { return h.Size() >= h.safeSize }

// IsEndGameSize reports whether the hotel is large enough to end the game.
func (h Hotel) IsEndGameSize() bool { return h.Size() >= h.endGameSize }

// StockPrice is the current price of one share.
func (h Hotel) StockPrice() int { return h.tier.StockPrice(h.Size()) }

// MajorityBonus is the bonus paid to the largest stockholder.
func (h Hotel) MajorityBonus() int { return h.tier.MajorityBonus(h.Size()) }

// MinorityBonus is the bonus paid to the second-largest stockholder.
func (h Hotel) MinorityBonus() int { return h.tier.MinorityBonus(h.Size()) }

// WithState returns a copy of the hotel in the specified state.
func (h Hotel) WithState(state HotelState) Hotel {
	h.state = state
	return h
}

// TableTier is a Tier defined by explicit size buckets, used for custom
// setups. Rows must be sorted by ascending MinSize; the price of a chain is
// the price of the last row whose MinSize it reaches. Size 0 is always free.
type TableTier struct {
	Rows []TierRow
}

// TierRow maps a minimum chain size to a stock price.
type TierRow struct {
	MinSize int
	Price   int
}

// StockPrice implements Tier.
func (t TableTier) StockPrice(size int) int {
	if size == 0 {
		return 0
	}
	price := 0
	for _, row := range t.Rows {
		if size >= row.MinSize {
			price = row.Price
		}
	}
	return price
}

// MajorityBonus implements Tier.
func (t TableTier) MajorityBonus(size int) int { return 10 * t.StockPrice(size) }

// MinorityBonus implements Tier.
func (t TableTier) MinorityBonus(size int) int { return 5 * t.StockPrice(size) }
