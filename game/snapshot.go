package game

import (
	"fmt"
	"maps"
	"slices"
)

// Snapshot holds the state of every physical object in a game: the bank,
// the board, the players, the tiles, and the hotels. A Snapshot is an
// immutable value; transitions return a new Snapshot and never mutate the
// receiver. Rule checking belongs to the phase layer, so transitions panic
// when called with arguments that violate their preconditions.
type Snapshot struct {
	bank    Bank
	board   Board
	players map[PlayerID]Player
	tiles   map[TileID]Tile
	hotels  map[HotelID]Hotel
}

// NewCustom assembles a snapshot from loose parts, normalizing them so the
// caller does not have to keep every object consistent by hand:
//
//   - hotel chain tiles are added to the board
//   - player hand, board, and hotel tiles are removed from the draw pile
//   - missing hotel stock entries of players and the bank are filled with 0
//   - tile states are rewritten to reflect hands, the board, and hotels
//
// It returns an error when the parts contradict each other, like two
// players holding the same tile or stock of a hotel that does not exist.
func NewCustom(tiles []Tile, bank Bank, board Board, hotels []Hotel, players []Player) (Snapshot, error) {
	hotelIDs := make(map[HotelID]bool, len(hotels))
	var hotelTiles []TileID
	for _, h := range hotels {
		hotelIDs[h.ID()] = true
		if h.IsOnBoard() {
			hotelTiles = append(hotelTiles, h.State().Tiles...)
		}
	}
	if dup := firstDuplicateTile(hotelTiles); dup != "" {
		return Snapshot{}, fmt.Errorf("tile %s belongs to more than one hotel", dup)
	}

	var handTiles []TileID
	for _, p := range players {
		handTiles = append(handTiles, p.Tiles()...)
	}
	if dup := firstDuplicateTile(handTiles); dup != "" {
		return Snapshot{}, fmt.Errorf("tile %s is in more than one player's hand", dup)
	}
	for _, t := range handTiles {
		if slices.Contains(hotelTiles, t) {
			return Snapshot{}, fmt.Errorf("tile %s cannot be both in a hand and part of a hotel", t)
		}
	}

	stockTotals := make(map[HotelID]int)
	for _, p := range players {
		for h, n := range p.Stocks() {
			stockTotals[h] += n
		}
	}
	for h, n := range stockTotals {
		if !hotelIDs[h] {
			return Snapshot{}, fmt.Errorf("players hold stock of unknown hotel %s", h)
		}
		if n > bank.TotalStocksPerHotel() {
			return Snapshot{}, fmt.Errorf("players hold %d stocks of hotel %s, limit is %d", n, h, bank.TotalStocksPerHotel())
		}
	}
	for h := range bank.Stocks() {
		if !hotelIDs[h] {
			return Snapshot{}, fmt.Errorf("bank holds stock of unknown hotel %s", h)
		}
	}

	for _, t := range board.Tiles() {
		if slices.Contains(handTiles, t) {
			return Snapshot{}, fmt.Errorf("tile %s cannot be both on the board and in a hand", t)
		}
		if slices.Contains(hotelTiles, t) {
			return Snapshot{}, fmt.Errorf("tile %s cannot be both loose on the board and part of a hotel", t)
		}
	}

	playerMap := make(map[PlayerID]Player, len(players))
	for _, p := range players {
		if _, ok := playerMap[p.ID()]; ok {
			return Snapshot{}, fmt.Errorf("duplicate player %s", p.ID())
		}
		playerMap[p.ID()] = p.withAbsentStocks(hotels)
	}

	for _, t := range hotelTiles {
		board = board.AddTile(t)
	}

	bank = bank.WithoutPileTiles(handTiles).
		WithoutPileTiles(board.Tiles())
	bank = bankFillAbsentStocks(bank, hotels)

	tileMap := make(map[TileID]Tile, len(tiles))
	for _, t := range tiles {
		tileMap[t.ID] = t
	}
	for _, p := range playerMap {
		for _, t := range p.Tiles() {
			tile, ok := tileMap[t]
			if !ok {
				return Snapshot{}, fmt.Errorf("player %s holds unknown tile %s", p.ID(), t)
			}
			tileMap[t] = tile.WithState(InHand(p.ID()))
		}
	}
	for _, t := range board.Tiles() {
		tile, ok := tileMap[t]
		if !ok {
			return Snapshot{}, fmt.Errorf("board contains unknown tile %s", t)
		}
		tileMap[t] = tile.WithState(OnBoard())
	}
	hotelMap := make(map[HotelID]Hotel, len(hotels))
	for _, h := range hotels {
		hotelMap[h.ID()] = h
		if !h.IsOnBoard() {
			continue
		}
		for _, t := range h.State().Tiles {
			tile, ok := tileMap[t]
			if !ok {
				return Snapshot{}, fmt.Errorf("hotel %s contains unknown tile %s", h.ID(), t)
			}
			tileMap[t] = tile.WithState(InHotel(h.ID()))
		}
	}

	return Snapshot{
		bank:    bank,
		board:   board,
		players: playerMap,
		tiles:   tileMap,
		hotels:  hotelMap,
	}, nil
}

func firstDuplicateTile(tiles []TileID) TileID {
	seen := make(map[TileID]bool, len(tiles))
	for _, t := range tiles {
		if seen[t] {
			return t
		}
		seen[t] = true
	}
	return ""
}

func bankFillAbsentStocks(bank Bank, hotels []Hotel) Bank {
	stocks := bank.Stocks()
	if stocks == nil {
		stocks = make(map[HotelID]int, len(hotels))
	}
	for _, h := range hotels {
		if _, ok := stocks[h.ID()]; !ok {
			stocks[h.ID()] = 0
		}
	}
	return NewBank(bank.TotalStocksPerHotel(), bank.ShuffleSeed(), bank.DrawPile(), stocks)
}

// Bank is the bank.
func (s Snapshot) Bank() Bank { return s.bank }

// Board is the game board.
func (s Snapshot) Board() Board { return s.board }

// PlayerIDs lists every player, sorted.
func (s Snapshot) PlayerIDs() []PlayerID {
	ids := slices.Collect(maps.Keys(s.players))
	slices.Sort(ids)
	return ids
}

// Player is the state of the given player, which must be in the game.
func (s Snapshot) Player(id PlayerID) Player {
	p, ok := s.players[id]
	if !ok {
		panic(fmt.Sprintf("unknown player %s", id))
	}
	return p
}

// HasPlayer reports whether id is a player in the game.
func (s Snapshot) HasPlayer(id PlayerID) bool {
	_, ok := s.players[id]
	return ok
}

// TileIDs lists every tile in the game, sorted.
func (s Snapshot) TileIDs() []TileID {
	ids := slices.Collect(maps.Keys(s.tiles))
	SortTiles(ids)
	return ids
}

// Tile is the state of the given tile, which must be in the game.
func (s Snapshot) Tile(id TileID) Tile {
	t, ok := s.tiles[id]
	if !ok {
		panic(fmt.Sprintf("unknown tile %s", id))
	}
	return t
}

// HotelIDs lists every hotel in the game, sorted.
func (s Snapshot) HotelIDs() []HotelID {
	ids := slices.Collect(maps.Keys(s.hotels))
	slices.Sort(ids)
	return ids
}

// Hotel is the state of the given hotel, which must be in the game.
func (s Snapshot) Hotel(id HotelID) Hotel {
	h, ok := s.hotels[id]
	if !ok {
		panic(fmt.Sprintf("unknown hotel %s", id))
	}
	return h
}

// HasHotel reports whether id is a hotel in the game.
func (s Snapshot) HasHotel(id HotelID) bool {
	_, ok := s.hotels[id]
	return ok
}

// AvailableHotels lists the hotels that may still be started, sorted.
func (s Snapshot) AvailableHotels() []HotelID {
	var ids []HotelID
	for id, h := range s.hotels {
		if h.IsAvailable() {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids
}

// HotelsOnBoard lists the hotels currently on the board, sorted.
func (s Snapshot) HotelsOnBoard() []HotelID {
	var ids []HotelID
	for id, h := range s.hotels {
		if !h.IsAvailable() {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids
}

// LargestHotels filters hotels down to those sharing the largest chain
// size. The list must not be empty.
func (s Snapshot) LargestHotels(hotels []HotelID) []HotelID {
	if len(hotels) == 0 {
		panic("need hotels to choose the largest from")
	}
	maxSize := 0
	for _, h := range hotels {
		maxSize = max(maxSize, s.Hotel(h).Size())
	}
	var largest []HotelID
	for _, h := range hotels {
		if s.Hotel(h).Size() == maxSize {
			largest = append(largest, h)
		}
	}
	return largest
}

// AssetWorth is the total value of a player's holdings beyond cash: the
// bonuses they would be paid plus the sale price of their stock, over every
// hotel on the board.
func (s Snapshot) AssetWorth(player PlayerID) int {
	p := s.Player(player)
	total := 0
	for _, h := range s.HotelsOnBoard() {
		total += s.StockBonuses(h)[player]
		total += p.Stock(h) * s.Hotel(h).StockPrice()
	}
	return total
}

// PlayersWithStock lists the players holding stock of hotel, sorted.
func (s Snapshot) PlayersWithStock(hotel HotelID) []PlayerID {
	var ids []PlayerID
	for id, p := range s.players {
		if p.HasStock(hotel) {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids
}

// PlayersWithMostStock lists the players holding the most stock of hotel,
// considering only the given players. Empty when none of them hold any.
func (s Snapshot) PlayersWithMostStock(players []PlayerID, hotel HotelID) []PlayerID {
	var holders []PlayerID
	maxStock := 0
	for _, id := range players {
		n := s.Player(id).Stock(hotel)
		if n > 0 {
			holders = append(holders, id)
			maxStock = max(maxStock, n)
		}
	}
	var most []PlayerID
	for _, id := range holders {
		if s.Player(id).Stock(hotel) == maxStock {
			most = append(most, id)
		}
	}
	slices.Sort(most)
	return most
}

// CanEndGame reports whether the game may be ended: some hotel has reached
// the end game size, or every hotel on the board is safe.
func (s Snapshot) CanEndGame() bool {
	onBoard := s.HotelsOnBoard()
	if len(onBoard) == 0 {
		return false
	}
	allSafe := true
	for _, h := range onBoard {
		if s.Hotel(h).IsEndGameSize() {
			return true
		}
		if !s.Hotel(h).IsSafe() {
			allSafe = false
		}
	}
	return allSafe
}

// CanBuyStock reports whether player can afford at least one share of some
// hotel on the board that the bank still has stock of.
func (s Snapshot) CanBuyStock(player PlayerID) bool {
	minPrice := -1
	for _, h := range s.HotelsOnBoard() {
		if !s.bank.HasStock(h) {
			continue
		}
		price := s.Hotel(h).StockPrice()
		if minPrice < 0 || price < minPrice {
			minPrice = price
		}
	}
	if minPrice < 0 {
		return false
	}
	return s.Player(player).Money() >= minPrice
}

// StockBonuses computes what each player is paid for their stock of hotel
// when it is defunct or the game ends. With a single majority holder and a
// single minority holder each receives their bonus; ties in the majority
// split the combined bonuses and leave the minority unpaid; ties in the
// minority split the minority bonus. A lone stockholder collects both
// bonuses. Empty when nobody holds stock.
func (s Snapshot) StockBonuses(hotel HotelID) map[PlayerID]int {
	all := s.PlayerIDs()
	majority := s.PlayersWithMostStock(all, hotel)
	if len(majority) == 0 {
		return map[PlayerID]int{}
	}

	h := s.Hotel(hotel)
	if len(majority) > 1 {
		combined := h.MajorityBonus() + h.MinorityBonus()
		bonuses := make(map[PlayerID]int, len(majority))
		for _, p := range majority {
			bonuses[p] = combined / len(majority)
		}
		return bonuses
	}
	majorityPlayer := majority[0]

	rest := slices.DeleteFunc(all, func(p PlayerID) bool { return p == majorityPlayer })
	minority := s.PlayersWithMostStock(rest, hotel)
	if len(minority) == 0 {
		return map[PlayerID]int{majorityPlayer: h.MajorityBonus() + h.MinorityBonus()}
	}
	if len(minority) > 1 {
		bonuses := map[PlayerID]int{majorityPlayer: h.MajorityBonus()}
		for _, p := range minority {
			bonuses[p] = h.MinorityBonus() / len(minority)
		}
		return bonuses
	}
	return map[PlayerID]int{
		majorityPlayer: h.MajorityBonus(),
		minority[0]:    h.MinorityBonus(),
	}
}

/* Transitions. Each returns a new snapshot. */

// DrawTile moves the top tile of the draw pile into player's hand and
// returns it. The pile must not be empty.
func (s Snapshot) DrawTile(player PlayerID) (Snapshot, TileID) {
	nextBank, drawn := s.bank.DrawTile()
	next := s.withBank(nextBank).
		withPlayer(s.Player(player).AddTile(drawn)).
		withTile(s.Tile(drawn).WithState(InHand(player)))
	return next, drawn
}

// PlaceTile moves tile from player's hand onto the board.
func (s Snapshot) PlaceTile(player PlayerID, tile TileID) Snapshot {
	return s.withPlayer(s.Player(player).RemoveTile(tile)).
		withTile(s.Tile(tile).WithState(OnBoard())).
		withBoard(s.board.AddTile(tile))
}

// PlaceTileInHotel moves tile from player's hand onto the board and grows
// hotel to cover every tile now connected to it.
func (s Snapshot) PlaceTileInHotel(player PlayerID, tile TileID, hotel HotelID) Snapshot {
	next := s.PlaceTile(player, tile)
	chain := next.board.ConnectedTiles(tile)
	for _, t := range chain {
		next = next.withTile(next.Tile(t).WithState(InHotel(hotel)))
	}
	return next.withHotel(next.Hotel(hotel).WithState(Chain(chain)))
}

// DiscardTile removes tile from player's hand and from play.
func (s Snapshot) DiscardTile(player PlayerID, tile TileID) Snapshot {
	return s.withPlayer(s.Player(player).RemoveTile(tile)).
		withTile(s.Tile(tile).WithState(Discarded()))
}

// StartHotel puts hotel on the board as a chain of the given tiles.
func (s Snapshot) StartHotel(hotel HotelID, tiles []TileID) Snapshot {
	next := s.withHotel(s.Hotel(hotel).WithState(Chain(tiles)))
	for _, t := range tiles {
		next = next.withTile(next.Tile(t).WithState(InHotel(hotel)))
	}
	return next
}

// ReleaseHotel takes hotel off the board, making it available to start
// again. The tiles of its chain are left to be reassigned by the caller.
func (s Snapshot) ReleaseHotel(hotel HotelID) Snapshot {
	return s.withHotel(s.Hotel(hotel).WithState(Available()))
}

// WithdrawStock moves amount shares of hotel from the bank to player.
func (s Snapshot) WithdrawStock(player PlayerID, hotel HotelID, amount int) Snapshot {
	return s.withBank(s.bank.RemoveStock(hotel, amount)).
		withPlayer(s.Player(player).AddStock(hotel, amount))
}

// DepositStock moves amount shares of hotel from player to the bank.
func (s Snapshot) DepositStock(player PlayerID, hotel HotelID, amount int) Snapshot {
	return s.withBank(s.bank.AddStock(hotel, amount)).
		withPlayer(s.Player(player).RemoveStock(hotel, amount))
}

// AddMoney pays player the given amount.
func (s Snapshot) AddMoney(player PlayerID, amount int) Snapshot {
	return s.withPlayer(s.Player(player).AddMoney(amount))
}

// SellStocks returns amount shares of hotel to the bank and pays player the
// current stock price for each.
func (s Snapshot) SellStocks(player PlayerID, hotel HotelID, amount int) Snapshot {
	profit := amount * s.Hotel(hotel).StockPrice()
	return s.withBank(s.bank.AddStock(hotel, amount)).
		withPlayer(s.Player(player).RemoveStock(hotel, amount).AddMoney(profit))
}

// BuyStocks moves amount shares of hotel from the bank to player, charging
// the current stock price for each.
func (s Snapshot) BuyStocks(player PlayerID, hotel HotelID, amount int) Snapshot {
	cost := amount * s.Hotel(hotel).StockPrice()
	return s.withBank(s.bank.RemoveStock(hotel, amount)).
		withPlayer(s.Player(player).AddStock(hotel, amount).RemoveMoney(cost))
}

// BuyStockMap applies BuyStocks for every positive entry of the map, in
// sorted hotel order.
func (s Snapshot) BuyStockMap(player PlayerID, buy map[HotelID]int) Snapshot {
	hotels := slices.Collect(maps.Keys(buy))
	slices.Sort(hotels)
	next := s
	for _, h := range hotels {
		if buy[h] > 0 {
			next = next.BuyStocks(player, h, buy[h])
		}
	}
	return next
}

func (s Snapshot) withBank(bank Bank) Snapshot {
	s.bank = bank
	return s
}

func (s Snapshot) withBoard(board Board) Snapshot {
	s.board = board
	return s
}

func (s Snapshot) withPlayer(p Player) Snapshot {
	players := maps.Clone(s.players)
	players[p.ID()] = p
	s.players = players
	return s
}

func (s Snapshot) withTile(t Tile) Snapshot {
	tiles := maps.Clone(s.tiles)
	tiles[t.ID] = t
	s.tiles = tiles
	return s
}

func (s Snapshot) withHotel(h Hotel) Snapshot {
	hotels := maps.Clone(s.hotels)
	hotels[h.ID()] = h
	s.hotels = hotels
	return s
}
