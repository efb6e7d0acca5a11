package main

import (
	"fmt"
	"io"
	"strings"
	"unicode"

	"acquire/game"
)

// printSnapshot writes a human readable rendering of the snapshot: the
// hotel and player tables, the bank, and the board grid.
func printSnapshot(w io.Writer, s game.Snapshot) {
	printHotels(w, s)
	printBank(w, s)
	printPlayers(w, s)
	printBoard(w, s)
}

func printHotels(w io.Writer, s game.Snapshot) {
	rows := [][]string{{"Hotel", "State", "Size", "Stock", "Majority", "Minority"}}
	for _, id := range s.HotelIDs() {
		h := s.Hotel(id)
		state := "available"
		if h.IsOnBoard() {
			state = "on board"
			if h.IsSafe() {
				state = "safe"
			}
		}
		rows = append(rows, []string{
			string(id),
			state,
			fmt.Sprint(h.Size()),
			"$" + fmt.Sprint(h.StockPrice()),
			"$" + fmt.Sprint(h.MajorityBonus()),
			"$" + fmt.Sprint(h.MinorityBonus()),
		})
	}
	printTable(w, rows)
}

func printBank(w io.Writer, s game.Snapshot) {
	bank := s.Bank()
	var stocks []string
	for _, h := range bank.StockHotels() {
		if n := bank.Stock(h); n > 0 {
			stocks = append(stocks, fmt.Sprintf("%s:%d", h, n))
		}
	}
	fmt.Fprintf(w, "Bank: %d tiles to draw | %s\n\n", bank.DrawPileSize(), strings.Join(stocks, " "))
}

func printPlayers(w io.Writer, s game.Snapshot) {
	rows := [][]string{{"Player", "Money", "Tiles", "Stocks"}}
	for _, id := range s.PlayerIDs() {
		p := s.Player(id)
		tiles := make([]string, 0, p.HandSize())
		for _, t := range p.Tiles() {
			tiles = append(tiles, string(t))
		}
		var stocks []string
		for _, h := range s.HotelIDs() {
			if n := p.Stock(h); n > 0 {
				stocks = append(stocks, fmt.Sprintf("%s:%d", h, n))
			}
		}
		rows = append(rows, []string{
			string(id),
			"$" + fmt.Sprint(p.Money()),
			strings.Join(tiles, " "),
			strings.Join(stocks, " "),
		})
	}
	printTable(w, rows)
}

// printBoard draws the grid with one cell per coordinate: "." for an
// empty cell, "o" for a placed tile outside any hotel, the hotel's
// initial for a chain tile, and "x" for a discarded tile.
func printBoard(w io.Writer, s game.Snapshot) {
	board := s.Board()

	var header strings.Builder
	header.WriteString("  ")
	for n := 1; n <= board.Numbers(); n++ {
		fmt.Fprintf(&header, " %2d", n)
	}
	fmt.Fprintln(w, header.String())

	for l := 'A'; l < 'A'+rune(board.Letters()); l++ {
		var row strings.Builder
		fmt.Fprintf(&row, "%c ", l)
		for n := 1; n <= board.Numbers(); n++ {
			row.WriteString("  ")
			row.WriteRune(cellRune(s, game.NewTileID(n, l)))
		}
		fmt.Fprintln(w, row.String())
	}
	fmt.Fprintln(w)
}

func cellRune(s game.Snapshot, id game.TileID) rune {
	tile := s.Tile(id)
	switch tile.State.Location {
	case game.TileOnBoard:
		return 'o'
	case game.TileOnBoardHotel:
		return unicode.ToUpper(rune(tile.State.Hotel[0]))
	case game.TileDiscarded:
		return 'x'
	}
	return '.'
}

func printTable(w io.Writer, rows [][]string) {
	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}
	for i, row := range rows {
		cells := make([]string, len(row))
		for j, cell := range row {
			cells[j] = cell + strings.Repeat(" ", widths[j]-len(cell))
		}
		line := strings.TrimRight(strings.Join(cells, " | "), " ")
		fmt.Fprintln(w, line)
		if i == 0 {
			fmt.Fprintln(w, strings.Repeat("-", len(strings.Join(cells, " | "))))
		}
	}
	fmt.Fprintln(w)
}
