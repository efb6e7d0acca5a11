// Package req defines the requests players submit to a game and the
// responses they get back.
package req

import "acquire/game"

// Kind tags a request type. The values double as the wire names.
type Kind string

const (
	KindAcceptMoney  Kind = "accept_money"
	KindAcceptStock  Kind = "accept_stock"
	KindAcceptUndo   Kind = "accept_undo"
	KindBuyStock     Kind = "buy_stock"
	KindChooseHotel  Kind = "choose_hotel"
	KindDrawTile     Kind = "draw_tile"
	KindEndGame      Kind = "end_game"
	KindHandleStocks Kind = "handle_stocks"
	KindPlaceTile    Kind = "place_tile"
	KindStartGame    Kind = "start_game"
	KindUndo         Kind = "undo"
)

// Request is a request submitted by a player. The set of requests is
// closed; every request names the player it originates from.
type Request interface {
	Player() game.PlayerID
	Kind() Kind
}

// AcceptMoney asks to receive a pending payment, a merger bonus or the end
// game payout.
type AcceptMoney struct {
	P game.PlayerID `json:"player"`
}

func (r AcceptMoney) Player() game.PlayerID { return r.P }
func (r AcceptMoney) Kind() Kind            { return KindAcceptMoney }

// AcceptStock asks to receive the founding share of a started hotel.
type AcceptStock struct {
	P game.PlayerID `json:"player"`
}

func (r AcceptStock) Player() game.PlayerID { return r.P }
func (r AcceptStock) Kind() Kind            { return KindAcceptStock }

// AcceptUndo accepts another player's pending undo request.
type AcceptUndo struct {
	P game.PlayerID `json:"player"`
}

func (r AcceptUndo) Player() game.PlayerID { return r.P }
func (r AcceptUndo) Kind() Kind            { return KindAcceptUndo }

// BuyStock asks to buy the given number of shares per hotel. An empty map
// buys nothing and ends the buy phase.
type BuyStock struct {
	P   game.PlayerID        `json:"player"`
	Buy map[game.HotelID]int `json:"stocks"`
}

func (r BuyStock) Player() game.PlayerID { return r.P }
func (r BuyStock) Kind() Kind            { return KindBuyStock }

// ChooseHotel names a hotel, to start it or to pick a merger survivor or
// the next hotel to defunct.
type ChooseHotel struct {
	P     game.PlayerID `json:"player"`
	Hotel game.HotelID  `json:"hotel"`
}

func (r ChooseHotel) Player() game.PlayerID { return r.P }
func (r ChooseHotel) Kind() Kind            { return KindChooseHotel }

// DrawTile asks to draw from the draw pile.
type DrawTile struct {
	P game.PlayerID `json:"player"`
}

func (r DrawTile) Player() game.PlayerID { return r.P }
func (r DrawTile) Kind() Kind            { return KindDrawTile }

// EndGame declares the game over, allowed only when the end conditions
// hold.
type EndGame struct {
	P game.PlayerID `json:"player"`
}

func (r EndGame) Player() game.PlayerID { return r.P }
func (r EndGame) Kind() Kind            { return KindEndGame }

// HandleStocks splits the player's shares of a defunct hotel between
// trading, selling, and keeping.
type HandleStocks struct {
	P     game.PlayerID `json:"player"`
	Trade int           `json:"trade"`
	Sell  int           `json:"sell"`
	Keep  int           `json:"keep"`
}

func (r HandleStocks) Player() game.PlayerID { return r.P }
func (r HandleStocks) Kind() Kind            { return KindHandleStocks }

// PlaceTile asks to place a tile from the player's hand.
type PlaceTile struct {
	P    game.PlayerID `json:"player"`
	Tile game.TileID   `json:"tile"`
}

func (r PlaceTile) Player() game.PlayerID { return r.P }
func (r PlaceTile) Kind() Kind            { return KindPlaceTile }

// StartGame marks the start of the game. It is recorded as turn 0 of every
// game and is never accepted once the game is running.
type StartGame struct {
	P game.PlayerID `json:"player"`
}

func (r StartGame) Player() game.PlayerID { return r.P }
func (r StartGame) Kind() Kind            { return KindStartGame }

// Undo asks to undo the requester's own last request. It takes effect once
// every player accepts it.
type Undo struct {
	P game.PlayerID `json:"player"`
}

func (r Undo) Player() game.PlayerID { return r.P }
func (r Undo) Kind() Kind            { return KindUndo }
