package game

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// PlayerID uniquely identifies a player. Ordered lexically.
type PlayerID string

func (p PlayerID) String() string { return string(p) }

// HotelID uniquely identifies a hotel chain. Ordered lexically.
type HotelID string

func (h HotelID) String() string { return string(h) }

// TileID uniquely identifies a tile by its board coordinate, e.g. "1-A".
// Tiles order by number first, then letter.
type TileID string

// NewTileID builds a tile id from its number and letter components.
func NewTileID(number int, letter rune) TileID {
	return TileID(fmt.Sprintf("%d-%c", number, letter))
}

func (t TileID) String() string { return string(t) }

// Split returns the number and letter components of the tile id.
func (t TileID) Split() (number int, letter rune, err error) {
	num, let, ok := strings.Cut(string(t), "-")
	if !ok || len(let) != 1 {
		return 0, 0, fmt.Errorf("malformed tile id %q", t)
	}
	n, err := strconv.Atoi(num)
	if err != nil {
		return 0, 0, fmt.Errorf("malformed tile id %q: %w", t, err)
	}
	return n, rune(let[0]), nil
}

// Less orders tiles by (number, letter).
func (t TileID) Less(other TileID) bool {
	tn, tl, terr := t.Split()
	on, ol, oerr := other.Split()
	if terr != nil || oerr != nil {
		// Malformed ids never enter a validated snapshot; fall back to
		// lexical order so sorting stays total.
		return t < other
	}
	if tn != on {
		return tn < on
	}
	return tl < ol
}

// CompareTiles is a three-way comparison usable with slices.SortFunc.
func CompareTiles(a, b TileID) int {
	switch {
	case a == b:
		return 0
	case a.Less(b):
		return -1
	default:
		return 1
	}
}

// SortTiles sorts tile ids in place by (number, letter).
func SortTiles(tiles []TileID) {
	sort.Slice(tiles, func(i, j int) bool { return tiles[i].Less(tiles[j]) })
}
