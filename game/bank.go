package game

import (
	"fmt"
	"maps"
	"slices"
)

// Bank holds the ordered draw pile and the unsold stock of every hotel.
// Banks are immutable; every transform returns a new value. Transforms
// panic on precondition violations, which callers are expected to have
// ruled out (rule checking happens in the phase layer).
type Bank struct {
	totalStocksPerHotel int
	shuffleSeed         int64
	drawPile            []TileID // drawn from the tail
	stocks              map[HotelID]int
}

// NewBank creates a bank. The draw pile and stock map are copied.
func NewBank(totalStocksPerHotel int, shuffleSeed int64, drawPile []TileID, stocks map[HotelID]int) Bank {
	return Bank{
		totalStocksPerHotel: totalStocksPerHotel,
		shuffleSeed:         shuffleSeed,
		drawPile:            slices.Clone(drawPile),
		stocks:              maps.Clone(stocks),
	}
}

// TotalStocksPerHotel is the total share count printed for each hotel.
func (b Bank) TotalStocksPerHotel() int { return b.totalStocksPerHotel }

// ShuffleSeed is the seed that shuffled the draw pile.
func (b Bank) ShuffleSeed() int64 { return b.shuffleSeed }

// DrawPile returns a copy of the draw pile. Tiles are drawn from the tail.
func (b Bank) DrawPile() []TileID { return slices.Clone(b.drawPile) }

// DrawPileSize is the number of tiles left to draw.
func (b Bank) DrawPileSize() int { return len(b.drawPile) }

// HasTileToDraw reports whether the draw pile is non-empty.
func (b Bank) HasTileToDraw() bool { return len(b.drawPile) > 0 }

// DrawTile removes and returns the tile at the tail of the draw pile.
// The pile must be non-empty.
func (b Bank) DrawTile() (Bank, TileID) {
	if !b.HasTileToDraw() {
		panic("draw pile is empty")
	}
	tile := b.drawPile[len(b.drawPile)-1]
	next := b
	next.drawPile = slices.Clone(b.drawPile[:len(b.drawPile)-1])
	return next, tile
}

// Stocks returns a copy of the per-hotel stock counts.
func (b Bank) Stocks() map[HotelID]int { return maps.Clone(b.stocks) }

// StockHotels returns the hotels the bank tracks stock for, sorted.
func (b Bank) StockHotels() []HotelID {
	hotels := slices.Collect(maps.Keys(b.stocks))
	slices.Sort(hotels)
	return hotels
}

// Stock is the remaining share count for hotel. The hotel must be tracked.
func (b Bank) Stock(hotel HotelID) int {
	n, ok := b.stocks[hotel]
	if !ok {
		panic(fmt.Sprintf("bank does not track stock of hotel %s", hotel))
	}
	return n
}

// HasStock reports whether the bank holds any stock of hotel.
func (b Bank) HasStock(hotel HotelID) bool { return b.Stock(hotel) > 0 }

// AddStock returns a bank with amount shares of hotel added. The result
// must not exceed the per-hotel total.
func (b Bank) AddStock(hotel HotelID, amount int) Bank {
	if amount < 0 {
		panic("can only add a positive amount of stock")
	}
	next := b.Stock(hotel) + amount
	if next > b.totalStocksPerHotel {
		panic(fmt.Sprintf("bank stock of %s would exceed the limit of %d", hotel, b.totalStocksPerHotel))
	}
	return b.withStock(hotel, next)
}

// RemoveStock returns a bank with amount shares of hotel removed. The
// result must not go negative.
func (b Bank) RemoveStock(hotel HotelID, amount int) Bank {
	if amount < 0 {
		panic("can only remove a positive amount of stock")
	}
	next := b.Stock(hotel) - amount
	if next < 0 {
		panic(fmt.Sprintf("bank stock of %s would go negative", hotel))
	}
	return b.withStock(hotel, next)
}

func (b Bank) withStock(hotel HotelID, amount int) Bank {
	stocks := maps.Clone(b.stocks)
	stocks[hotel] = amount
	next := b
	next.stocks = stocks
	return next
}

// WithDrawPile returns a bank with the given draw pile.
func (b Bank) WithDrawPile(drawPile []TileID) Bank {
	next := b
	next.drawPile = slices.Clone(drawPile)
	return next
}

// WithoutPileTiles returns a bank whose draw pile no longer contains any of
// the given tiles. Used when constructing snapshots whose tiles start in
// hands or on the board.
func (b Bank) WithoutPileTiles(tiles []TileID) Bank {
	pile := make([]TileID, 0, len(b.drawPile))
	for _, t := range b.drawPile {
		if !slices.Contains(tiles, t) {
			pile = append(pile, t)
		}
	}
	next := b
	next.drawPile = pile
	return next
}
