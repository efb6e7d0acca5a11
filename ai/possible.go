// Package ai enumerates the legal requests in any game state and provides
// simple agents built on top of that enumeration.
package ai

import (
	"maps"
	"slices"

	"acquire/game"
	"acquire/phase"
	"acquire/req"
)

// PossibleRequests lists every request the given state would accept,
// across all players. Undo requests are never included.
func PossibleRequests(s phase.State) []req.Request {
	snapshot := s.Snapshot()
	switch state := s.(type) {
	case phase.DrawTurnTile:
		var rs []req.Request
		for _, p := range snapshot.PlayerIDs() {
			if !contains(state.PlayersDrawn, p) {
				rs = append(rs, req.DrawTile{P: p})
			}
		}
		return rs
	case phase.PlaceTurnTile:
		var rs []req.Request
		for _, p := range snapshot.PlayerIDs() {
			if _, placed := state.PlayersPlaced[p]; placed {
				continue
			}
			for _, t := range snapshot.Player(p).Tiles() {
				rs = append(rs, req.PlaceTile{P: p, Tile: t})
			}
		}
		return rs
	case phase.DrawInitialTiles:
		var rs []req.Request
		for _, p := range state.TurnOrder {
			if !contains(state.PlayersDrawn, p) {
				rs = append(rs, req.DrawTile{P: p})
			}
		}
		return rs
	case phase.PlaceTile:
		p := state.Turn.Current
		var rs []req.Request
		for _, t := range snapshot.Player(p).Tiles() {
			// moves are pure, so a tile can be test-placed to weed out
			// unplayable ones, like a tile that would start an eighth hotel
			if state.PlaceTile(p, t).Response.OK {
				rs = append(rs, req.PlaceTile{P: p, Tile: t})
			}
		}
		if snapshot.CanEndGame() {
			rs = append(rs, req.EndGame{P: p})
		}
		return rs
	case phase.StartHotel:
		return chooseHotels(state.Turn.Current, snapshot.AvailableHotels())
	case phase.FoundersStock:
		return []req.Request{req.AcceptStock{P: state.Turn.Current}}
	case phase.BuyStock:
		return buyRequests(snapshot, state.Turn.Current)
	case phase.DrawTile:
		rs := []req.Request{req.DrawTile{P: state.Turn.Current}}
		if snapshot.CanEndGame() {
			rs = append(rs, req.EndGame{P: state.Turn.Current})
		}
		return rs
	case phase.ChooseSurvivingHotel:
		return chooseHotels(state.Context.Turn.Current, state.Candidates)
	case phase.ChooseDefunctHotel:
		return chooseHotels(state.Context.Turn.Current, state.Candidates)
	case phase.PayBonuses:
		var rs []req.Request
		for _, p := range sortedKeys(state.PlayersToPay) {
			rs = append(rs, req.AcceptMoney{P: p})
		}
		return rs
	case phase.HandleDefunctHotelStocks:
		return handleStockRequests(snapshot, state)
	case phase.EndGamePayout:
		var rs []req.Request
		for _, p := range snapshot.PlayerIDs() {
			if !contains(state.PlayersPaid, p) {
				rs = append(rs, req.AcceptMoney{P: p})
			}
		}
		return rs
	case phase.GameOver:
		return nil
	}
	return nil
}

// PlayersWithRequest lists the players that have at least one legal
// request in the given state.
func PlayersWithRequest(s phase.State) []game.PlayerID {
	var players []game.PlayerID
	for _, r := range PossibleRequests(s) {
		if !contains(players, r.Player()) {
			players = append(players, r.Player())
		}
	}
	return players
}

func chooseHotels(player game.PlayerID, hotels []game.HotelID) []req.Request {
	rs := make([]req.Request, len(hotels))
	for i, h := range hotels {
		rs[i] = req.ChooseHotel{P: player, Hotel: h}
	}
	return rs
}

// buyRequests enumerates every affordable stock purchase, including
// buying nothing.
func buyRequests(snapshot game.Snapshot, player game.PlayerID) []req.Request {
	hotels := snapshot.HotelsOnBoard()
	limit := snapshot.Player(player).StockTurnLimit()
	money := snapshot.Player(player).Money()

	rs := []req.Request{req.BuyStock{P: player, Buy: map[game.HotelID]int{}}}
	var walk func(i, bought, cost int, buy map[game.HotelID]int)
	walk = func(i, bought, cost int, buy map[game.HotelID]int) {
		if i == len(hotels) {
			if bought > 0 {
				out := make(map[game.HotelID]int, len(buy))
				for h, n := range buy {
					out[h] = n
				}
				rs = append(rs, req.BuyStock{P: player, Buy: out})
			}
			return
		}
		hotel := hotels[i]
		price := snapshot.Hotel(hotel).StockPrice()
		available := snapshot.Bank().Stock(hotel)
		for n := 0; bought+n <= limit && n <= available && cost+n*price <= money; n++ {
			if n > 0 {
				buy[hotel] = n
			}
			walk(i+1, bought+n, cost+n*price, buy)
			delete(buy, hotel)
		}
	}
	walk(0, 0, 0, make(map[game.HotelID]int))
	return rs
}

// handleStockRequests enumerates every valid trade/sell/keep split for
// the stockholder at the head of the queue.
func handleStockRequests(snapshot game.Snapshot, state phase.HandleDefunctHotelStocks) []req.Request {
	if len(state.PlayersWithStock) == 0 {
		return nil
	}
	player := state.PlayersWithStock[0]
	held := snapshot.Player(player).Stock(state.Merge.Defunct)
	surviving := snapshot.Bank().Stock(state.Merge.Surviving)

	var rs []req.Request
	for trade := 0; trade <= held; trade += 2 {
		if trade/2 > surviving {
			break
		}
		for sell := 0; trade+sell <= held; sell++ {
			rs = append(rs, req.HandleStocks{
				P:     player,
				Trade: trade,
				Sell:  sell,
				Keep:  held - trade - sell,
			})
		}
	}
	return rs
}

func contains(players []game.PlayerID, player game.PlayerID) bool {
	return slices.Contains(players, player)
}

func sortedKeys(m map[game.PlayerID]int) []game.PlayerID {
	keys := slices.Collect(maps.Keys(m))
	slices.Sort(keys)
	return keys
}
