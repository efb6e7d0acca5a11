package game

import (
	"fmt"
	"maps"
	"slices"
)

// Player is one player's holdings: money, hand tiles, and stock. Players
// are immutable; every transform returns a new value and panics on a
// precondition violation (rule checking happens in the phase layer).
type Player struct {
	id             PlayerID
	handLimit      int
	stockTurnLimit int
	money          int
	tiles          []TileID
	stocks         map[HotelID]int
}

// NewPlayer creates a player. The tile list and stock map are copied.
func NewPlayer(id PlayerID, handLimit, stockTurnLimit, money int, tiles []TileID, stocks map[HotelID]int) Player {
	return Player{
		id:             id,
		handLimit:      handLimit,
		stockTurnLimit: stockTurnLimit,
		money:          money,
		tiles:          slices.Clone(tiles),
		stocks:         maps.Clone(stocks),
	}
}

// ID is the player's unique identifier.
func (p Player) ID() PlayerID { return p.id }

// HandLimit is the maximum number of tiles in the player's hand.
func (p Player) HandLimit() int { return p.handLimit }

// StockTurnLimit is the maximum number of shares bought per turn.
func (p Player) StockTurnLimit() int { return p.stockTurnLimit }

// Money is the player's cash.
func (p Player) Money() int { return p.money }

// AddMoney returns a player with amount added. Amount must be >= 0.
func (p Player) AddMoney(amount int) Player {
	if amount < 0 {
		panic("can only add a positive amount of money")
	}
	p.money += amount
	return p
}

// RemoveMoney returns a player with amount removed. The result must not go
// negative.
func (p Player) RemoveMoney(amount int) Player {
	if amount < 0 {
		panic("can only remove a positive amount of money")
	}
	if p.money-amount < 0 {
		panic(fmt.Sprintf("player %s money would go negative", p.id))
	}
	p.money -= amount
	return p
}

// Tiles returns a sorted copy of the player's hand.
func (p Player) Tiles() []TileID {
	tiles := slices.Clone(p.tiles)
	SortTiles(tiles)
	return tiles
}

// HandSize is the number of tiles in the player's hand.
func (p Player) HandSize() int { return len(p.tiles) }

// HasTile reports whether tile is in the player's hand.
func (p Player) HasTile(tile TileID) bool { return slices.Contains(p.tiles, tile) }

// AddTile returns a player with tile added to their hand. The hand must
// have room and must not already contain the tile.
func (p Player) AddTile(tile TileID) Player {
	if len(p.tiles)+1 > p.handLimit {
		panic(fmt.Sprintf("player %s hand would exceed the limit of %d", p.id, p.handLimit))
	}
	if p.HasTile(tile) {
		panic(fmt.Sprintf("player %s already holds tile %s", p.id, tile))
	}
	p.tiles = append(slices.Clone(p.tiles), tile)
	return p
}

// RemoveTile returns a player with tile removed from their hand. The tile
// must be in the hand.
func (p Player) RemoveTile(tile TileID) Player {
	i := slices.Index(p.tiles, tile)
	if i < 0 {
		panic(fmt.Sprintf("player %s does not hold tile %s", p.id, tile))
	}
	tiles := slices.Clone(p.tiles)
	p.tiles = slices.Delete(tiles, i, i+1)
	return p
}

// Stocks returns a copy of the player's per-hotel share counts.
func (p Player) Stocks() map[HotelID]int { return maps.Clone(p.stocks) }

// Stock is the player's share count for hotel. The hotel must be tracked.
func (p Player) Stock(hotel HotelID) int {
	n, ok := p.stocks[hotel]
	if !ok {
		panic(fmt.Sprintf("player %s does not track stock of hotel %s", p.id, hotel))
	}
	return n
}

// HasStock reports whether the player holds any stock of hotel.
func (p Player) HasStock(hotel HotelID) bool { return p.Stock(hotel) > 0 }

// AddStock returns a player with amount shares of hotel added.
func (p Player) AddStock(hotel HotelID, amount int) Player {
	if amount < 0 {
		panic("can only add a positive amount of stock")
	}
	return p.withStock(hotel, p.Stock(hotel)+amount)
}

// RemoveStock returns a player with amount shares of hotel removed. The
// result must not go negative.
func (p Player) RemoveStock(hotel HotelID, amount int) Player {
	if amount < 0 {
		panic("can only remove a positive amount of stock")
	}
	next := p.Stock(hotel) - amount
	if next < 0 {
		panic(fmt.Sprintf("player %s stock of %s would go negative", p.id, hotel))
	}
	return p.withStock(hotel, next)
}

func (p Player) withStock(hotel HotelID, amount int) Player {
	stocks := maps.Clone(p.stocks)
	stocks[hotel] = amount
	p.stocks = stocks
	return p
}

// withAbsentStocks returns a player tracking every given hotel, filling
// missing entries with 0.
func (p Player) withAbsentStocks(hotels []Hotel) Player {
	stocks := maps.Clone(p.stocks)
	if stocks == nil {
		stocks = make(map[HotelID]int, len(hotels))
	}
	for _, h := range hotels {
		if _, ok := stocks[h.ID()]; !ok {
			stocks[h.ID()] = 0
		}
	}
	p.stocks = stocks
	return p
}
