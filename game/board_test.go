package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func testBoard(t *testing.T) Board {
	t.Helper()
	b, err := NewBoard(StandardLetters, StandardNumbers)
	require.NoError(t, err)
	return b
}

func TestNewBoardRejectsBadDimensions(t *testing.T) {
	_, err := NewBoard(0, 12)
	require.Error(t, err)
	_, err = NewBoard(27, 12)
	require.Error(t, err)
	_, err = NewBoard(9, 0)
	require.Error(t, err)
	_, err = NewBoard(9, 100)
	require.Error(t, err)
}

func TestBoardAddTileAndContains(t *testing.T) {
	b := testBoard(t)
	require.False(t, b.Contains("1-A"))

	b = b.AddTile("1-A")
	require.True(t, b.Contains("1-A"))
	require.Equal(t, []TileID{"1-A"}, b.Tiles())

	require.Panics(t, func() { b.AddTile("1-A") }, "placing a tile twice should panic")
	require.Panics(t, func() { b.AddTile("13-A") }, "placing a tile off the board should panic")
}

func TestBoardAdjacency(t *testing.T) {
	b := testBoard(t).WithTiles("2-B", "2-C", "4-B")

	require.ElementsMatch(t, []TileID{"2-B", "4-B"}, b.AdjacentTiles("3-B"))
	require.Empty(t, b.AdjacentTiles("7-G"), "an isolated empty cell has no placed neighbors")
	require.Empty(t, b.AdjacentTiles("1-C"), "diagonals do not count as adjacent")
}

func TestBoardConnectedGroupsMerge(t *testing.T) {
	b := testBoard(t).WithTiles("1-A", "2-A", "4-A", "5-A")
	require.ElementsMatch(t, []TileID{"1-A", "2-A"}, b.ConnectedTiles("1-A"))
	require.ElementsMatch(t, []TileID{"4-A", "5-A"}, b.ConnectedTiles("5-A"))

	// 3-A bridges the two groups into one
	b = b.AddTile("3-A")
	want := []TileID{"1-A", "2-A", "3-A", "4-A", "5-A"}
	for _, tile := range want {
		require.ElementsMatch(t, want, b.ConnectedTiles(tile),
			"every member should see the merged group")
	}
}

func TestBoardAdjacentAndConnected(t *testing.T) {
	b := testBoard(t).WithTiles("1-A", "2-A", "4-A", "5-A")
	require.ElementsMatch(t, []TileID{"1-A", "2-A", "4-A", "5-A"}, b.AdjacentAndConnected("3-A"),
		"both neighboring groups should be reachable from the gap between them")
	require.Empty(t, b.AdjacentAndConnected("8-H"))
}

func TestBoardIsImmutable(t *testing.T) {
	b := testBoard(t)
	b.AddTile("1-A")
	require.False(t, b.Contains("1-A"), "AddTile should not mutate the receiver")
}
