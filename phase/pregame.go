package phase

import (
	"maps"
	"slices"

	"github.com/rs/zerolog/log"

	"acquire/game"
)

// DrawTurnTile has each player draw one tile. The drawn tiles decide the
// turn order.
type DrawTurnTile struct {
	snapshot     game.Snapshot
	PlayersDrawn []game.PlayerID
}

// NewDrawTurnTile creates the state with the given players already drawn.
func NewDrawTurnTile(snapshot game.Snapshot, playersDrawn []game.PlayerID) DrawTurnTile {
	return DrawTurnTile{snapshot: snapshot, PlayersDrawn: playersDrawn}
}

func (s DrawTurnTile) Snapshot() game.Snapshot { return s.snapshot }
func (s DrawTurnTile) Name() string            { return "draw_turn_tile" }
func (s DrawTurnTile) phase()                  {}

// DrawTurnTile draws the player's turn tile. Once every player has drawn,
// the machine moves to placing the turn tiles.
func (s DrawTurnTile) DrawTurnTile(player game.PlayerID) Transition {
	if slices.Contains(s.PlayersDrawn, player) {
		log.Warn().Msgf("[%s] has already drawn their turn tile, players who have drawn: %v", player, s.PlayersDrawn)
		return failure(s, "%s has already drawn their turn tile", player)
	}

	next, drawn := s.snapshot.DrawTile(player)
	playersDrawn := append(slices.Clone(s.PlayersDrawn), player)
	log.Info().Msgf("[%s] has drawn their turn tile: %s", player, drawn)

	if len(playersDrawn) == len(s.snapshot.PlayerIDs()) {
		return success(PlaceTurnTile{snapshot: next, PlayersPlaced: map[game.PlayerID]game.TileID{}},
			"%s drew a turn tile", player)
	}
	return success(DrawTurnTile{snapshot: next, PlayersDrawn: playersDrawn},
		"%s drew a turn tile", player)
}

// PlaceTurnTile has each player place the tile they drew. When the last
// tile is placed the turn order is fixed by tile order.
type PlaceTurnTile struct {
	snapshot      game.Snapshot
	PlayersPlaced map[game.PlayerID]game.TileID
}

// NewPlaceTurnTile creates the state with the given tiles already placed.
func NewPlaceTurnTile(snapshot game.Snapshot, playersPlaced map[game.PlayerID]game.TileID) PlaceTurnTile {
	return PlaceTurnTile{snapshot: snapshot, PlayersPlaced: playersPlaced}
}

func (s PlaceTurnTile) Snapshot() game.Snapshot { return s.snapshot }
func (s PlaceTurnTile) Name() string            { return "place_turn_tile" }
func (s PlaceTurnTile) phase()                  {}

// PlaceTurnTile places the player's turn tile on the board.
func (s PlaceTurnTile) PlaceTurnTile(player game.PlayerID, tile game.TileID) Transition {
	if _, ok := s.PlayersPlaced[player]; ok {
		log.Warn().Msgf("[%s] has already placed their turn tile, players who have placed: %v", player, s.PlayersPlaced)
		return failure(s, "%s has already placed their turn tile", player)
	}
	if !s.snapshot.Player(player).HasTile(tile) {
		log.Warn().Msgf("[%s] does not have turn tile [%s] in their hand", player, tile)
		return failure(s, "%s does not have turn tile %s in their hand", player, tile)
	}

	next := s.snapshot.PlaceTile(player, tile)
	playersPlaced := maps.Clone(s.PlayersPlaced)
	playersPlaced[player] = tile
	log.Info().Msgf("[%s] placed their turn tile [%s]", player, tile)

	if len(playersPlaced) == len(s.snapshot.PlayerIDs()) {
		order := slices.Collect(maps.Keys(playersPlaced))
		slices.SortFunc(order, func(a, b game.PlayerID) int {
			return game.CompareTiles(playersPlaced[a], playersPlaced[b])
		})
		log.Info().Msgf("[%s] turn order set to: %v", player, order)
		return success(DrawInitialTiles{snapshot: next, TurnOrder: order},
			"%s placed turn tile %s. Turn order set to %v", player, tile, order)
	}
	return success(PlaceTurnTile{snapshot: next, PlayersPlaced: playersPlaced},
		"%s placed turn tile %s", player, tile)
}

// DrawInitialTiles has each player fill their hand before play begins.
type DrawInitialTiles struct {
	snapshot     game.Snapshot
	TurnOrder    []game.PlayerID
	PlayersDrawn []game.PlayerID
}

// NewDrawInitialTiles creates the state with the given players already
// drawn.
func NewDrawInitialTiles(snapshot game.Snapshot, turnOrder, playersDrawn []game.PlayerID) DrawInitialTiles {
	return DrawInitialTiles{snapshot: snapshot, TurnOrder: turnOrder, PlayersDrawn: playersDrawn}
}

func (s DrawInitialTiles) Snapshot() game.Snapshot { return s.snapshot }
func (s DrawInitialTiles) Name() string            { return "draw_initial_tiles" }
func (s DrawInitialTiles) phase()                  {}

// DrawInitialTiles draws tiles until the player's hand is full. Once every
// player has a full hand the first player's turn begins.
func (s DrawInitialTiles) DrawInitialTiles(player game.PlayerID) Transition {
	if slices.Contains(s.PlayersDrawn, player) {
		log.Warn().Msgf("[%s] has already drawn their initial tiles", player)
		return failure(s, "%s has already drawn their initial tiles", player)
	}

	next := s.snapshot
	for range s.snapshot.Player(player).HandLimit() {
		next, _ = next.DrawTile(player)
	}
	playersDrawn := append(slices.Clone(s.PlayersDrawn), player)
	log.Info().Msgf("[%s] drew their initial tiles", player)

	if len(playersDrawn) == len(s.snapshot.PlayerIDs()) {
		turn := Turn{Order: s.TurnOrder, Current: s.TurnOrder[0]}
		return success(PlaceTile{snapshot: next, Turn: turn}, "%s drew initial tiles", player)
	}
	return success(DrawInitialTiles{snapshot: next, TurnOrder: s.TurnOrder, PlayersDrawn: playersDrawn},
		"%s drew initial tiles", player)
}
