package game

import "fmt"

// TileLocation enumerates where a tile can be.
type TileLocation int

const (
	// TileDrawPile means the tile is in the bank's draw pile.
	TileDrawPile TileLocation = iota
	// TilePlayerHand means the tile is in a player's hand.
	TilePlayerHand
	// TileOnBoard means the tile is on the board but not part of a hotel.
	TileOnBoard
	// TileOnBoardHotel means the tile is on the board as part of a hotel.
	TileOnBoardHotel
	// TileDiscarded means the tile has been discarded from the game.
	TileDiscarded
)

// TileState is the current location of a tile, plus the owning player or
// hotel where the location requires one. A tile has exactly one state at a
// time.
type TileState struct {
	Location TileLocation
	Player   PlayerID // set when Location == TilePlayerHand
	Hotel    HotelID  // set when Location == TileOnBoardHotel
}

// InDrawPile is the state of a tile in the draw pile.
func InDrawPile() TileState { return TileState{Location: TileDrawPile} }

// InHand is the state of a tile in player's hand.
func InHand(player PlayerID) TileState {
	return TileState{Location: TilePlayerHand, Player: player}
}

// OnBoard is the state of a placed tile that belongs to no hotel.
func OnBoard() TileState { return TileState{Location: TileOnBoard} }

// InHotel is the state of a placed tile that is part of hotel.
func InHotel(hotel HotelID) TileState {
	return TileState{Location: TileOnBoardHotel, Hotel: hotel}
}

// Discarded is the state of a tile removed from the game.
func Discarded() TileState { return TileState{Location: TileDiscarded} }

func (s TileState) String() string {
	switch s.Location {
	case TileDrawPile:
		return "DrawPile"
	case TilePlayerHand:
		return fmt.Sprintf("PlayerHand [%s]", s.Player)
	case TileOnBoard:
		return "OnBoard"
	case TileOnBoardHotel:
		return fmt.Sprintf("OnBoardHotel [%s]", s.Hotel)
	case TileDiscarded:
		return "Discarded"
	}
	return "Unknown"
}

// Tile pairs a tile id with its current state.
type Tile struct {
	ID    TileID
	State TileState
}

// NewTile creates a tile in the given state.
func NewTile(id TileID, state TileState) Tile { return Tile{ID: id, State: state} }

// Hotel returns the hotel this tile is part of, if any.
func (t Tile) Hotel() (HotelID, bool) {
	if t.State.Location == TileOnBoardHotel {
		return t.State.Hotel, true
	}
	return "", false
}

// WithState returns a copy of the tile in the specified state.
func (t Tile) WithState(state TileState) Tile {
	t.State = state
	return t
}
