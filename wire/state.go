package wire

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"

	"acquire/game"
	"acquire/phase"
	"acquire/req"
	"acquire/session"
)

// Outward-only serialization of game state. Clients render from these
// objects; games are never reconstructed from them, that is what the
// persist record is for.

type bankJSON struct {
	DrawPileSize int                  `json:"draw_pile_size"`
	Stocks       map[game.HotelID]int `json:"stocks"`
}

type boardJSON struct {
	Tiles []game.TileID `json:"tiles"`
}

type tileStateJSON struct {
	Type   string        `json:"type"`
	Player game.PlayerID `json:"player,omitempty"`
	Hotel  game.HotelID  `json:"hotel,omitempty"`
}

type tileJSON struct {
	ID    game.TileID   `json:"id"`
	State tileStateJSON `json:"state"`
}

type hotelStateJSON struct {
	Type  string        `json:"type"`
	Tiles []game.TileID `json:"tiles,omitempty"`
}

type hotelJSON struct {
	ID            game.HotelID   `json:"id"`
	State         hotelStateJSON `json:"state"`
	StockPrice    int            `json:"stock_price"`
	MajorityBonus int            `json:"majority_bonus"`
	MinorityBonus int            `json:"minority_bonus"`
	IsSafe        bool           `json:"is_safe"`
	IsEndGameSize bool           `json:"is_end_game_size"`
}

type playerJSON struct {
	ID     game.PlayerID        `json:"id"`
	Money  int                  `json:"money"`
	Tiles  []game.TileID        `json:"tiles"`
	Stocks map[game.HotelID]int `json:"stocks"`
}

type objsJSON struct {
	Bank    bankJSON                      `json:"bank"`
	Board   boardJSON                     `json:"board"`
	Players map[game.PlayerID]playerJSON  `json:"players"`
	Tiles   map[game.TileID]tileJSON      `json:"tiles"`
	Hotels  map[game.HotelID]hotelJSON    `json:"hotels"`
}

func tileStateToJSON(s game.TileState) tileStateJSON {
	switch s.Location {
	case game.TileDrawPile:
		return tileStateJSON{Type: "draw_pile"}
	case game.TilePlayerHand:
		return tileStateJSON{Type: "player_hand", Player: s.Player}
	case game.TileOnBoard:
		return tileStateJSON{Type: "on_board"}
	case game.TileOnBoardHotel:
		return tileStateJSON{Type: "on_board_hotel", Hotel: s.Hotel}
	case game.TileDiscarded:
		return tileStateJSON{Type: "discarded"}
	default:
		panic(fmt.Sprintf("unknown tile location %d", s.Location))
	}
}

func hotelToJSON(h game.Hotel) hotelJSON {
	state := hotelStateJSON{Type: "available"}
	if h.IsOnBoard() {
		tiles := slices.Clone(h.State().Tiles)
		game.SortTiles(tiles)
		state = hotelStateJSON{Type: "on_board", Tiles: tiles}
	}
	return hotelJSON{
		ID:            h.ID(),
		State:         state,
		StockPrice:    h.StockPrice(),
		MajorityBonus: h.MajorityBonus(),
		MinorityBonus: h.MinorityBonus(),
		IsSafe:        h.IsSafe(),
		IsEndGameSize: h.IsEndGameSize(),
	}
}

func snapshotToJSON(s game.Snapshot) objsJSON {
	players := make(map[game.PlayerID]playerJSON)
	for _, id := range s.PlayerIDs() {
		p := s.Player(id)
		players[id] = playerJSON{ID: id, Money: p.Money(), Tiles: p.Tiles(), Stocks: p.Stocks()}
	}
	tiles := make(map[game.TileID]tileJSON)
	for _, id := range s.TileIDs() {
		tiles[id] = tileJSON{ID: id, State: tileStateToJSON(s.Tile(id).State)}
	}
	hotels := make(map[game.HotelID]hotelJSON)
	for _, id := range s.HotelIDs() {
		hotels[id] = hotelToJSON(s.Hotel(id))
	}
	return objsJSON{
		Bank:    bankJSON{DrawPileSize: s.Bank().DrawPileSize(), Stocks: s.Bank().Stocks()},
		Board:   boardJSON{Tiles: s.Board().Tiles()},
		Players: players,
		Tiles:   tiles,
		Hotels:  hotels,
	}
}

type playerTileJSON struct {
	Player game.PlayerID `json:"player"`
	Tile   game.TileID   `json:"tile"`
}

type playerAmountJSON struct {
	Player game.PlayerID `json:"player"`
	Amount int           `json:"amount"`
}

// stateToJSON flattens a phase state into its wire object: the state name
// under "state" plus the state's own fields.
func stateToJSON(s phase.State) any {
	switch s := s.(type) {
	case phase.DrawTurnTile:
		return struct {
			State        string          `json:"state"`
			PlayersDrawn []game.PlayerID `json:"players_drawn"`
		}{s.Name(), sortedPlayers(s.PlayersDrawn)}
	case phase.PlaceTurnTile:
		placed := make([]playerTileJSON, 0, len(s.PlayersPlaced))
		for _, p := range sortedPlayers(slices.Collect(maps.Keys(s.PlayersPlaced))) {
			placed = append(placed, playerTileJSON{Player: p, Tile: s.PlayersPlaced[p]})
		}
		return struct {
			State         string           `json:"state"`
			PlayersPlaced []playerTileJSON `json:"players_placed"`
		}{s.Name(), placed}
	case phase.DrawInitialTiles:
		return struct {
			State        string          `json:"state"`
			PlayersDrawn []game.PlayerID `json:"players_drawn"`
		}{s.Name(), sortedPlayers(s.PlayersDrawn)}
	case phase.PlaceTile:
		return struct {
			State         string        `json:"state"`
			CurrentPlayer game.PlayerID `json:"current_player"`
		}{s.Name(), s.Turn.Current}
	case phase.StartHotel:
		tiles := slices.Clone(s.Tiles)
		game.SortTiles(tiles)
		return struct {
			State         string        `json:"state"`
			CurrentPlayer game.PlayerID `json:"current_player"`
			Tiles         []game.TileID `json:"tiles"`
		}{s.Name(), s.Turn.Current, tiles}
	case phase.FoundersStock:
		return struct {
			State         string        `json:"state"`
			CurrentPlayer game.PlayerID `json:"current_player"`
			StartedHotel  game.HotelID  `json:"started_hotel"`
		}{s.Name(), s.Turn.Current, s.StartedHotel}
	case phase.BuyStock:
		return struct {
			State         string        `json:"state"`
			CurrentPlayer game.PlayerID `json:"current_player"`
		}{s.Name(), s.Turn.Current}
	case phase.DrawTile:
		return struct {
			State         string        `json:"state"`
			CurrentPlayer game.PlayerID `json:"current_player"`
		}{s.Name(), s.Turn.Current}
	case phase.EndGamePayout:
		return struct {
			State       string          `json:"state"`
			PlayersPaid []game.PlayerID `json:"players_paid"`
		}{s.Name(), sortedPlayers(s.PlayersPaid)}
	case phase.GameOver:
		return struct {
			State         string          `json:"state"`
			PlayerResults []game.PlayerID `json:"player_results"`
		}{s.Name(), s.Results}
	case phase.ChooseSurvivingHotel:
		return struct {
			State                    string          `json:"state"`
			CurrentPlayer            game.PlayerID   `json:"current_player"`
			PotentialSurvivingHotels []game.HotelID  `json:"potential_surviving_hotels"`
		}{s.Name(), s.Context.Turn.Current, s.Candidates}
	case phase.ChooseDefunctHotel:
		return struct {
			State                      string         `json:"state"`
			CurrentPlayer              game.PlayerID  `json:"current_player"`
			SurvivingHotel             game.HotelID   `json:"surviving_hotel"`
			PotentialNextDefunctHotels []game.HotelID `json:"potential_next_defunct_hotels"`
			RemainingHotels            []game.HotelID `json:"remaining_hotels"`
		}{s.Name(), s.Context.Turn.Current, s.Surviving, s.Candidates, s.Remaining}
	case phase.PayBonuses:
		toPay := make([]playerAmountJSON, 0, len(s.PlayersToPay))
		for _, p := range sortedPlayers(slices.Collect(maps.Keys(s.PlayersToPay))) {
			toPay = append(toPay, playerAmountJSON{Player: p, Amount: s.PlayersToPay[p]})
		}
		return struct {
			State           string             `json:"state"`
			CurrentPlayer   game.PlayerID      `json:"current_player"`
			PlayersToPay    []playerAmountJSON `json:"players_to_pay"`
			DefunctHotel    game.HotelID       `json:"defunct_hotel"`
			SurvivingHotel  game.HotelID       `json:"surviving_hotel"`
			RemainingHotels []game.HotelID     `json:"remaining_hotels"`
		}{s.Name(), s.Merge.Context.Turn.Current, toPay, s.Merge.Defunct, s.Merge.Surviving, s.Merge.Remaining}
	case phase.HandleDefunctHotelStocks:
		return struct {
			State            string          `json:"state"`
			CurrentPlayer    game.PlayerID   `json:"current_player"`
			PlayersWithStock []game.PlayerID `json:"players_with_stock"`
			DefunctHotel     game.HotelID    `json:"defunct_hotel"`
			SurvivingHotel   game.HotelID    `json:"surviving_hotel"`
			RemainingHotels  []game.HotelID  `json:"remaining_hotels"`
		}{s.Name(), s.Merge.Context.Turn.Current, s.PlayersWithStock, s.Merge.Defunct, s.Merge.Surviving, s.Merge.Remaining}
	default:
		panic(fmt.Sprintf("unknown phase state %T", s))
	}
}

type entryJSON struct {
	Turn     int             `json:"turn"`
	Request  json.RawMessage `json:"request"`
	Response req.Response    `json:"response"`
	SM       any             `json:"sm"`
	Objs     objsJSON        `json:"objs"`
}

// MarshalEntry encodes one history entry: the request, its response, the
// machine state, and the full object state.
func MarshalEntry(e session.Entry) ([]byte, error) {
	request, err := MarshalRequest(e.Request)
	if err != nil {
		return nil, err
	}
	return json.Marshal(entryJSON{
		Turn:     e.Turn,
		Request:  request,
		Response: e.Response,
		SM:       stateToJSON(e.State),
		Objs:     snapshotToJSON(e.State.Snapshot()),
	})
}

type gameJSON struct {
	ID      string          `json:"id"`
	Version session.Version `json:"version"`
	Type    session.Type    `json:"type"`
	Turn    int             `json:"turn"`
	State   json.RawMessage `json:"state"`
}

// MarshalGame encodes the identity and latest entry of a game.
func MarshalGame(g session.Game) ([]byte, error) {
	state, err := MarshalEntry(g.Current())
	if err != nil {
		return nil, err
	}
	return json.Marshal(gameJSON{
		ID:      g.ID(),
		Version: g.Version(),
		Type:    g.Type(),
		Turn:    g.Turn(),
		State:   state,
	})
}

func sortedPlayers(players []game.PlayerID) []game.PlayerID {
	out := slices.Clone(players)
	slices.Sort(out)
	return out
}
