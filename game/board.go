package game

import (
	"fmt"
	"slices"
)

// Board is a fixed-size grid of placed tiles. Every placed tile belongs to
// exactly one connected group: the tiles reachable from it through
// up/down/left/right adjacency. Boards are immutable; AddTile returns a new
// board.
//
// Letters index the rows (A at the top) and numbers the columns (1 at the
// left), so tile "3-B" sits at row 1, column 2.
type Board struct {
	letters int
	numbers int
	cells   []boardCell // row-major, letters*numbers
}

type boardCell struct {
	occupied bool
	tile     TileID
	group    []TileID // shared by every member of the connected group
}

// NewBoard creates an empty board with the given dimensions.
func NewBoard(letters, numbers int) (Board, error) {
	if letters < 1 || letters > 26 {
		return Board{}, fmt.Errorf("board letters must be in [1,26], got %d", letters)
	}
	if numbers < 1 || numbers > 99 {
		return Board{}, fmt.Errorf("board numbers must be in [1,99], got %d", numbers)
	}
	return Board{
		letters: letters,
		numbers: numbers,
		cells:   make([]boardCell, letters*numbers),
	}, nil
}

// Letters is the number of rows on the board.
func (b Board) Letters() int { return b.letters }

// Numbers is the number of columns on the board.
func (b Board) Numbers() int { return b.numbers }

// Tiles returns every placed tile in row-major order.
func (b Board) Tiles() []TileID {
	var tiles []TileID
	for _, c := range b.cells {
		if c.occupied {
			tiles = append(tiles, c.tile)
		}
	}
	return tiles
}

// Contains reports whether tile has been placed on the board.
func (b Board) Contains(tile TileID) bool {
	i, ok := b.index(tile)
	return ok && b.cells[i].occupied
}

// AdjacentTiles returns the placed tiles directly above, below, left and
// right of tile.
func (b Board) AdjacentTiles(tile TileID) []TileID {
	var adjacent []TileID
	for _, i := range b.adjacentIndexes(tile) {
		adjacent = append(adjacent, b.cells[i].tile)
	}
	return adjacent
}

// ConnectedTiles returns the connected group tile belongs to, or nil if the
// tile is not on the board.
func (b Board) ConnectedTiles(tile TileID) []TileID {
	i, ok := b.index(tile)
	if !ok || !b.cells[i].occupied {
		return nil
	}
	return slices.Clone(b.cells[i].group)
}

// AdjacentAndConnected returns the tiles adjacent to tile together with
// every tile in their connected groups, without duplicates.
func (b Board) AdjacentAndConnected(tile TileID) []TileID {
	var all []TileID
	for _, adj := range b.AdjacentTiles(tile) {
		for _, t := range b.ConnectedTiles(adj) {
			if !slices.Contains(all, t) {
				all = append(all, t)
			}
		}
	}
	return all
}

// AddTile returns a board with tile placed, merging the connected groups of
// all its placed neighbors into one. The cell must be empty.
func (b Board) AddTile(tile TileID) Board {
	i, ok := b.index(tile)
	if !ok {
		panic(fmt.Sprintf("tile %s is outside the %dx%d board", tile, b.letters, b.numbers))
	}
	if b.cells[i].occupied {
		panic(fmt.Sprintf("tile %s is already on the board", tile))
	}

	// The new group is the union of every neighboring group plus the tile.
	group := []TileID{tile}
	for _, a := range b.adjacentIndexes(tile) {
		for _, t := range b.cells[a].group {
			if !slices.Contains(group, t) {
				group = append(group, t)
			}
		}
	}

	cells := slices.Clone(b.cells)
	cells[i] = boardCell{occupied: true, tile: tile, group: group}
	for _, t := range group {
		if t == tile {
			continue
		}
		j, _ := b.index(t)
		cells[j] = boardCell{occupied: true, tile: t, group: group}
	}
	return Board{letters: b.letters, numbers: b.numbers, cells: cells}
}

// WithTiles returns a board with all the given tiles placed in order.
func (b Board) WithTiles(tiles ...TileID) Board {
	for _, t := range tiles {
		b = b.AddTile(t)
	}
	return b
}

func (b Board) index(tile TileID) (int, bool) {
	number, letter, err := tile.Split()
	if err != nil {
		return 0, false
	}
	row := int(letter - 'A')
	col := number - 1
	if row < 0 || row >= b.letters || col < 0 || col >= b.numbers {
		return 0, false
	}
	return row*b.numbers + col, true
}

func (b Board) adjacentIndexes(tile TileID) []int {
	number, letter, err := tile.Split()
	if err != nil {
		return nil
	}
	row := int(letter - 'A')
	col := number - 1
	var indexes []int
	for _, d := range [][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
		r, c := row+d[0], col+d[1]
		if r < 0 || r >= b.letters || c < 0 || c >= b.numbers {
			continue
		}
		if i := r*b.numbers + c; b.cells[i].occupied {
			indexes = append(indexes, i)
		}
	}
	return indexes
}
