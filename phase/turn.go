package phase

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/rs/zerolog/log"

	"acquire/game"
	"acquire/req"
)

// PlaceTile is the start of the current player's turn: they place one tile
// from their hand.
type PlaceTile struct {
	snapshot game.Snapshot
	Turn     Turn
}

// NewPlaceTile creates the state for the given turn.
func NewPlaceTile(snapshot game.Snapshot, turn Turn) PlaceTile {
	return PlaceTile{snapshot: snapshot, Turn: turn}
}

func (s PlaceTile) Snapshot() game.Snapshot { return s.snapshot }
func (s PlaceTile) Name() string            { return "place_tile" }
func (s PlaceTile) phase()                  {}

// PlaceTile places tile onto the board. Where the tile lands decides what
// happens: a lone tile is just placed, a tile next to unchained tiles
// starts a hotel, a tile next to one hotel grows it, and a tile next to
// two or more hotels merges them. A tile between two safe hotels is
// discarded instead, and a tile that would start a hotel when none are
// available cannot be played.
func (s PlaceTile) PlaceTile(player game.PlayerID, tile game.TileID) Transition {
	return s.placeTile(player, tile, false)
}

// lookahead is set while probing whether the rest of the hand is playable,
// to stop the probe recursing into itself.
func (s PlaceTile) placeTile(player game.PlayerID, tile game.TileID, lookahead bool) Transition {
	if !s.Turn.IsCurrent(player) {
		log.Warn().Msgf("[%s] is not the current player [%s]", player, s.Turn.Current)
		return notCurrentPlayer(s, player, s.Turn)
	}
	if !s.snapshot.Player(player).HasTile(tile) {
		log.Warn().Msgf("[%s] does not have tile [%s] in their hand", player, tile)
		return failure(s, "%s does not have tile %s in their hand", player, tile)
	}

	nearbyTiles := s.snapshot.Board().AdjacentAndConnected(tile)
	var nearbyHotels []game.HotelID
	for _, t := range nearbyTiles {
		if h, ok := s.snapshot.Tile(t).Hotel(); ok && !slices.Contains(nearbyHotels, h) {
			nearbyHotels = append(nearbyHotels, h)
		}
	}

	switch {
	case len(nearbyTiles) == 0:
		next := s.snapshot.PlaceTile(player, tile)
		log.Info().Msgf("[%s] placed tile [%s]", player, tile)
		return Transition{
			Response: req.Success("%s placed tile %s", player, tile),
			Next:     buyStockIfAble(next, s.Turn, player),
		}

	case len(nearbyHotels) == 0:
		if len(s.snapshot.AvailableHotels()) == 0 {
			// the tile would start a hotel but none are available; if no
			// tile in the hand is playable the whole placement is skipped
			if !lookahead && s.restOfHandUnplayable(player, tile) {
				log.Info().Msgf("[%s] skipping place tile state as no tiles can be placed", player)
				return Transition{
					Response: req.Success("%s skipping place tile as no tiles can be placed", player),
					Next:     buyStockIfAble(s.snapshot, s.Turn, player),
				}
			}
			log.Warn().Msgf("[%s] there are no hotels available to start for placing tile [%s]", player, tile)
			return failure(s, "%s cannot place tile %s as it would start a hotel", player, tile)
		}

		next := s.snapshot.PlaceTile(player, tile)
		hotelTiles := append(slices.Clone(nearbyTiles), tile)
		log.Info().Msgf("[%s] placed tile [%s] which will start a hotel made up of tiles: %v", player, tile, hotelTiles)
		return success(StartHotel{snapshot: next, Turn: s.Turn, Tiles: hotelTiles},
			"%s placed tile %s which starts a hotel", player, tile)

	case len(nearbyHotels) == 1:
		hotel := nearbyHotels[0]
		next := s.snapshot.PlaceTileInHotel(player, tile, hotel)
		log.Info().Msgf("[%s] placed tile [%s] adding to hotel [%s]", player, tile, hotel)
		return Transition{
			Response: req.Success("%s placed tile %s adding to %s", player, tile, hotel),
			Next:     buyStockIfAble(next, s.Turn, player),
		}

	default:
		safe := 0
		for _, h := range nearbyHotels {
			if s.snapshot.Hotel(h).IsSafe() {
				safe++
			}
		}
		if safe > 1 {
			next := s.snapshot.DiscardTile(player, tile)
			log.Info().Msgf("[%s] discarded tile [%s]", player, tile)
			return success(PlaceTile{snapshot: next, Turn: s.Turn},
				"%s discarded tile %s", player, tile)
		}

		next := s.snapshot.PlaceTile(player, tile)
		log.Info().Msgf("[%s] placed tile [%s] which starts a merger involving hotels: %v", player, tile, nearbyHotels)
		return success(startMerger(next, s.Turn, tile, nearbyHotels),
			"%s placed tile %s which starts a merger", player, tile)
	}
}

// restOfHandUnplayable reports whether every other tile in the player's
// hand also fails to place.
func (s PlaceTile) restOfHandUnplayable(player game.PlayerID, tile game.TileID) bool {
	for _, t := range s.snapshot.Player(player).Tiles() {
		if t == tile {
			continue
		}
		if s.placeTile(player, t, true).Response.OK {
			return false
		}
	}
	return true
}

// EndGame declares the game over and moves to paying out assets.
func (s PlaceTile) EndGame(player game.PlayerID) Transition {
	return endGame(s, s.snapshot, s.Turn, player)
}

func endGame(s State, snapshot game.Snapshot, turn Turn, player game.PlayerID) Transition {
	if !turn.IsCurrent(player) {
		log.Warn().Msgf("[%s] is not the current player [%s]", player, turn.Current)
		return notCurrentPlayer(s, player, turn)
	}
	if !snapshot.CanEndGame() {
		log.Warn().Msgf("[%s] cannot end the game", player)
		return failure(s, "the game cannot be ended")
	}

	log.Info().Msgf("[%s] ended the game", player)
	return success(EndGamePayout{snapshot: snapshot}, "%s ended the game", player)
}

// StartHotel has the current player pick which available hotel their
// placed tile starts.
type StartHotel struct {
	snapshot game.Snapshot
	Turn     Turn
	Tiles    []game.TileID
}

// NewStartHotel creates the state for a started chain of tiles.
func NewStartHotel(snapshot game.Snapshot, turn Turn, tiles []game.TileID) StartHotel {
	return StartHotel{snapshot: snapshot, Turn: turn, Tiles: tiles}
}

func (s StartHotel) Snapshot() game.Snapshot { return s.snapshot }
func (s StartHotel) Name() string            { return "start_hotel" }
func (s StartHotel) phase()                  {}

// StartHotel starts hotel on the placed tiles. The founder receives a free
// share next, unless the bank has none.
func (s StartHotel) StartHotel(player game.PlayerID, hotel game.HotelID) Transition {
	if !s.Turn.IsCurrent(player) {
		log.Warn().Msgf("[%s] is not the current player [%s]", player, s.Turn.Current)
		return notCurrentPlayer(s, player, s.Turn)
	}
	if !slices.Contains(s.snapshot.AvailableHotels(), hotel) {
		log.Warn().Msgf("[%s] chose to start hotel [%s] but it is not available to start", player, hotel)
		return failure(s, "%s chose hotel %s but it is not available to start", player, hotel)
	}

	log.Info().Msgf("[%s] started hotel [%s]", player, hotel)
	next := s.snapshot.StartHotel(hotel, s.Tiles)
	if s.snapshot.Bank().HasStock(hotel) {
		return success(FoundersStock{snapshot: next, Turn: s.Turn, StartedHotel: hotel},
			"%s started hotel %s", player, hotel)
	}
	return Transition{
		Response: req.Success("%s started hotel %s", player, hotel),
		Next:     buyStockIfAble(next, s.Turn, player),
	}
}

// FoundersStock awards the founder of a hotel one free share.
type FoundersStock struct {
	snapshot     game.Snapshot
	Turn         Turn
	StartedHotel game.HotelID
}

// NewFoundersStock creates the state for the started hotel.
func NewFoundersStock(snapshot game.Snapshot, turn Turn, startedHotel game.HotelID) FoundersStock {
	return FoundersStock{snapshot: snapshot, Turn: turn, StartedHotel: startedHotel}
}

func (s FoundersStock) Snapshot() game.Snapshot { return s.snapshot }
func (s FoundersStock) Name() string            { return "founders_stock" }
func (s FoundersStock) phase()                  {}

// ReceiveStock hands the founder their share.
func (s FoundersStock) ReceiveStock(player game.PlayerID) Transition {
	if !s.Turn.IsCurrent(player) {
		log.Warn().Msgf("[%s] is not the current player [%s]", player, s.Turn.Current)
		return notCurrentPlayer(s, player, s.Turn)
	}

	log.Info().Msgf("[%s] received 1 stock of hotel [%s] for starting it", player, s.StartedHotel)
	next := s.snapshot.WithdrawStock(player, s.StartedHotel, 1)
	return Transition{
		Response: req.Success("%s received a founding stock of %s", player, s.StartedHotel),
		Next:     buyStockIfAble(next, s.Turn, player),
	}
}

// BuyStock lets the current player buy shares of hotels on the board.
type BuyStock struct {
	snapshot game.Snapshot
	Turn     Turn
}

// NewBuyStock creates the state for the given turn.
func NewBuyStock(snapshot game.Snapshot, turn Turn) BuyStock {
	return BuyStock{snapshot: snapshot, Turn: turn}
}

func (s BuyStock) Snapshot() game.Snapshot { return s.snapshot }
func (s BuyStock) Name() string            { return "buy_stock" }
func (s BuyStock) phase()                  {}

// BuyStock buys the shares named in buy: only hotels on the board, at most
// the per-turn limit in total, no more than the bank holds, and only what
// the player can pay for. An empty map buys nothing.
func (s BuyStock) BuyStock(player game.PlayerID, buy map[game.HotelID]int) Transition {
	if !s.Turn.IsCurrent(player) {
		log.Warn().Msgf("[%s] is not the current player [%s]", player, s.Turn.Current)
		return notCurrentPlayer(s, player, s.Turn)
	}

	limit := s.snapshot.Player(player).StockTurnLimit()
	money := s.snapshot.Player(player).Money()

	hotels := slices.Collect(maps.Keys(buy))
	slices.Sort(hotels)
	hotels = slices.DeleteFunc(hotels, func(h game.HotelID) bool { return buy[h] == 0 })

	var offBoard []game.HotelID
	for _, h := range hotels {
		if !s.snapshot.Hotel(h).IsOnBoard() {
			offBoard = append(offBoard, h)
		}
	}
	if len(offBoard) > 0 {
		log.Warn().Msgf("[%s] requested to buy stock of hotels not on the board: %v", player, offBoard)
		return failure(s, "%s requested to buy stock of hotels not on the board %v", player, offBoard)
	}

	total, cost := 0, 0
	for _, h := range hotels {
		total += buy[h]
		cost += buy[h] * s.snapshot.Hotel(h).StockPrice()
	}

	for _, h := range hotels {
		if buy[h] < 0 || buy[h] > limit {
			log.Warn().Msgf("[%s] requested to buy an invalid number of stocks: %d %s", player, buy[h], h)
			return failure(s, "%s requested to buy an invalid number of stocks (%d %s)", player, buy[h], h)
		}
	}
	for _, h := range hotels {
		if s.snapshot.Bank().Stock(h) < buy[h] {
			log.Warn().Msgf("[%s] requested to buy more stocks of [%s] than available in the bank", player, h)
			return failure(s, "%s requested to buy more stocks of %s than available in the bank", player, h)
		}
	}
	if total > limit {
		log.Warn().Msgf("[%s] requested to buy more stocks [%d] than allowed [%d]", player, total, limit)
		return failure(s, "%s requested to buy more stocks (%d) than their limit of %d", player, total, limit)
	}
	if cost > money {
		log.Warn().Msgf("[%s] does not have enough money [$%d] to buy the requested stocks [$%d]", player, money, cost)
		return failure(s, "%s does not have enough money $%d to buy the requested stocks $%d", player, money, cost)
	}

	next := s.snapshot.BuyStockMap(player, buy)
	log.Info().Msgf("[%s] paid [$%d] and bought stocks %v", player, cost, buy)
	if cost == 0 {
		return success(DrawTile{snapshot: next, Turn: s.Turn}, "%s bought no stocks", player)
	}
	var bought []string
	for _, h := range hotels {
		bought = append(bought, fmt.Sprintf("%d %s", buy[h], h))
	}
	return success(DrawTile{snapshot: next, Turn: s.Turn},
		"%s paid $%d and bought %s", player, cost, strings.Join(bought, ", "))
}

// DrawTile has the current player refill their hand to end their turn.
type DrawTile struct {
	snapshot game.Snapshot
	Turn     Turn
}

// NewDrawTile creates the state for the given turn.
func NewDrawTile(snapshot game.Snapshot, turn Turn) DrawTile {
	return DrawTile{snapshot: snapshot, Turn: turn}
}

func (s DrawTile) Snapshot() game.Snapshot { return s.snapshot }
func (s DrawTile) Name() string            { return "draw_tile" }
func (s DrawTile) phase()                  {}

// DrawTile draws one tile. The player keeps drawing until their hand is
// full, then the next player's turn starts. An empty draw pile ends the
// turn immediately.
func (s DrawTile) DrawTile(player game.PlayerID) Transition {
	if !s.Turn.IsCurrent(player) {
		log.Warn().Msgf("[%s] is not the current player [%s]", player, s.Turn.Current)
		return notCurrentPlayer(s, player, s.Turn)
	}

	if !s.snapshot.Bank().HasTileToDraw() {
		log.Info().Msgf("[%s] did not draw a tile: there are no tiles left to draw", player)
		return success(PlaceTile{snapshot: s.snapshot, Turn: s.Turn.advance()},
			"%s did not draw a tile as there are no tiles left to draw", player)
	}

	next, tile := s.snapshot.DrawTile(player)
	log.Info().Msgf("[%s] drew tile [%s]", player, tile)
	p := next.Player(player)
	if p.HandSize() < p.HandLimit() {
		return success(DrawTile{snapshot: next, Turn: s.Turn}, "%s drew a tile", player)
	}
	return success(PlaceTile{snapshot: next, Turn: s.Turn.advance()}, "%s drew a tile", player)
}

// EndGame declares the game over and moves to paying out assets.
func (s DrawTile) EndGame(player game.PlayerID) Transition {
	return endGame(s, s.snapshot, s.Turn, player)
}

// buyStockIfAble moves to buying stock, or skips straight to drawing when
// the player cannot buy anything.
func buyStockIfAble(snapshot game.Snapshot, turn Turn, player game.PlayerID) State {
	if snapshot.CanBuyStock(player) {
		return BuyStock{snapshot: snapshot, Turn: turn}
	}
	return DrawTile{snapshot: snapshot, Turn: turn}
}
