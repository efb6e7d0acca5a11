// Package config loads custom game setups from YAML. A setup can change
// the board dimensions, the hotel roster and price tables, the player
// limits and the stock supply without touching the rules.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"acquire/game"
	"acquire/phase"
	"acquire/session"
)

// Setup describes a custom game. Zero-valued fields fall back to the
// standard rules.
type Setup struct {
	Board struct {
		Letters int `yaml:"letters"`
		Numbers int `yaml:"numbers"`
	} `yaml:"board"`
	Hotels         []HotelSetup `yaml:"hotels"`
	SafeSize       int          `yaml:"safe_size"`
	EndGameSize    int          `yaml:"end_game_size"`
	HandLimit      int          `yaml:"hand_limit"`
	StockTurnLimit int          `yaml:"stock_turn_limit"`
	InitialMoney   int          `yaml:"initial_money"`
	StocksPerHotel int          `yaml:"stocks_per_hotel"`
	ShuffleSeed    int64        `yaml:"shuffle_seed"`
}

// HotelSetup names a hotel and its price table. Either Tier names one of
// the standard tiers (low, mid, high) or Prices spells out the table.
type HotelSetup struct {
	Name   string       `yaml:"name"`
	Tier   string       `yaml:"tier"`
	Prices []PriceSetup `yaml:"prices"`
}

// PriceSetup is one row of a custom price table.
type PriceSetup struct {
	MinSize int `yaml:"min_size"`
	Price   int `yaml:"price"`
}

// Load reads a setup from a YAML file.
func Load(path string) (Setup, error) {
	var setup Setup
	raw, err := os.ReadFile(path)
	if err != nil {
		return setup, err
	}
	if err := yaml.Unmarshal(raw, &setup); err != nil {
		return setup, fmt.Errorf("parse %s: %w", path, err)
	}
	return setup, nil
}

func (s Setup) normalized() Setup {
	if s.Board.Letters == 0 {
		s.Board.Letters = game.StandardLetters
	}
	if s.Board.Numbers == 0 {
		s.Board.Numbers = game.StandardNumbers
	}
	if s.SafeSize == 0 {
		s.SafeSize = game.StandardSafeSize
	}
	if s.EndGameSize == 0 {
		s.EndGameSize = game.StandardEndGameSize
	}
	if s.HandLimit == 0 {
		s.HandLimit = game.StandardHandLimit
	}
	if s.StockTurnLimit == 0 {
		s.StockTurnLimit = game.StandardStockTurnLimit
	}
	if s.InitialMoney == 0 {
		s.InitialMoney = game.StandardInitialMoney
	}
	if s.StocksPerHotel == 0 {
		s.StocksPerHotel = game.StandardStocksPerHotel
	}
	return s
}

func (h HotelSetup) tier() (game.Tier, error) {
	if len(h.Prices) > 0 {
		if h.Tier != "" {
			return nil, fmt.Errorf("hotel %s names both a tier and a price table", h.Name)
		}
		rows := make([]game.TierRow, len(h.Prices))
		for i, p := range h.Prices {
			rows[i] = game.TierRow{MinSize: p.MinSize, Price: p.Price}
		}
		return game.TableTier{Rows: rows}, nil
	}
	switch h.Tier {
	case "low":
		return game.LowTier, nil
	case "mid":
		return game.MidTier, nil
	case "high":
		return game.HighTier, nil
	}
	return nil, fmt.Errorf("hotel %s has unknown tier %q", h.Name, h.Tier)
}

// Snapshot builds the starting snapshot of a game under this setup for
// the given players.
func (s Setup) Snapshot(players []game.PlayerID) (game.Snapshot, error) {
	s = s.normalized()
	if len(s.Hotels) == 0 {
		return game.Snapshot{}, fmt.Errorf("setup names no hotels")
	}

	board, err := game.NewBoard(s.Board.Letters, s.Board.Numbers)
	if err != nil {
		return game.Snapshot{}, err
	}

	hotels := make([]game.Hotel, len(s.Hotels))
	bankStocks := make(map[game.HotelID]int, len(s.Hotels))
	for i, h := range s.Hotels {
		tier, err := h.tier()
		if err != nil {
			return game.Snapshot{}, err
		}
		id := game.HotelID(h.Name)
		hotels[i] = game.NewHotel(id, game.Available(), s.SafeSize, s.EndGameSize, tier)
		bankStocks[id] = s.StocksPerHotel
	}

	ids := game.TileIDs(s.Board.Letters, s.Board.Numbers)
	tiles := make([]game.Tile, len(ids))
	for i, id := range ids {
		tiles[i] = game.NewTile(id, game.InDrawPile())
	}
	bank := game.NewBank(s.StocksPerHotel, s.ShuffleSeed, game.ShuffleTiles(ids, s.ShuffleSeed), bankStocks)

	gamePlayers := make([]game.Player, len(players))
	for i, p := range players {
		gamePlayers[i] = game.NewPlayer(p, s.HandLimit, s.StockTurnLimit, s.InitialMoney, nil, nil)
	}

	return game.NewCustom(tiles, bank, board, hotels, gamePlayers)
}

// NewGame starts a custom game under this setup.
func (s Setup) NewGame(players []game.PlayerID) (*session.Session, error) {
	snapshot, err := s.Snapshot(players)
	if err != nil {
		return nil, err
	}
	id := session.GenerateID(players)
	return session.New(id, session.CurrentVersion, session.TypeCustom, players, phase.Start(snapshot)), nil
}
