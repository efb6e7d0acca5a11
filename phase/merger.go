package phase

import (
	"slices"

	"github.com/rs/zerolog/log"

	"acquire/game"
)

// startMerger enters a merger caused by placing tile next to two or more
// hotels. The largest hotel survives; on a tie the merging player picks.
func startMerger(snapshot game.Snapshot, turn Turn, placedTile game.TileID, nearbyHotels []game.HotelID) State {
	ctx := MergeContext{Turn: turn, PlacedTile: placedTile, NearbyHotels: nearbyHotels}

	largest := snapshot.LargestHotels(nearbyHotels)
	if len(largest) > 1 {
		return ChooseSurvivingHotel{snapshot: snapshot, Context: ctx, Candidates: largest}
	}
	surviving := largest[0]
	return nextDefunctHotel(snapshot, ctx, surviving, without(nearbyHotels, surviving))
}

// nextDefunctHotel picks the next hotel to fold into the survivor, the
// largest first. On a tie the merging player picks; with none left the
// merger ends.
func nextDefunctHotel(snapshot game.Snapshot, ctx MergeContext, surviving game.HotelID, defunct []game.HotelID) State {
	if len(defunct) == 0 {
		return endMerger(snapshot, ctx, surviving)
	}

	largest := snapshot.LargestHotels(defunct)
	if len(largest) > 1 {
		return ChooseDefunctHotel{
			snapshot:   snapshot,
			Context:    ctx,
			Surviving:  surviving,
			Remaining:  defunct,
			Candidates: largest,
		}
	}
	next := largest[0]
	merge := Merge{Context: ctx, Surviving: surviving, Defunct: next, Remaining: without(defunct, next)}
	return payBonusesOrHandleStocks(snapshot, merge)
}

// payBonusesOrHandleStocks pays the bonuses for the defunct hotel, or goes
// straight to handling stocks when nobody holds any.
func payBonusesOrHandleStocks(snapshot game.Snapshot, merge Merge) State {
	toPay := snapshot.StockBonuses(merge.Defunct)
	if len(toPay) == 0 {
		log.Info().Msgf("no stockholders of defunct hotel [%s], skipping bonuses", merge.Defunct)
		return handleStocksOrNextDefunct(snapshot, merge)
	}
	return PayBonuses{snapshot: snapshot, Merge: merge, PlayersToPay: toPay}
}

// handleStocksOrNextDefunct queues the stockholders of the defunct hotel in
// turn order starting at the merging player, or moves on when there are
// none.
func handleStocksOrNextDefunct(snapshot game.Snapshot, merge Merge) State {
	order := slices.Clone(merge.Context.Turn.Order)
	for len(order) > 0 && order[0] != merge.Context.Turn.Current {
		last := order[len(order)-1]
		order = append([]game.PlayerID{last}, order[:len(order)-1]...)
	}
	var withStock []game.PlayerID
	for _, p := range order {
		if snapshot.Player(p).Stock(merge.Defunct) > 0 {
			withStock = append(withStock, p)
		}
	}
	if len(withStock) == 0 {
		return nextDefunctHotel(snapshot, merge.Context, merge.Surviving, without(merge.Remaining, merge.Defunct))
	}
	return HandleDefunctHotelStocks{snapshot: snapshot, Merge: merge, PlayersWithStock: withStock}
}

// endMerger folds every merged hotel into the survivor: the placed tile
// and all chain tiles join the surviving hotel and the defunct hotels
// become available again.
func endMerger(snapshot game.Snapshot, ctx MergeContext, surviving game.HotelID) State {
	mergedTiles := []game.TileID{}
	for _, h := range ctx.NearbyHotels {
		mergedTiles = append(mergedTiles, snapshot.Hotel(h).State().Tiles...)
	}
	mergedTiles = append(mergedTiles, ctx.PlacedTile)

	next := snapshot
	for _, h := range ctx.NearbyHotels {
		if h != surviving {
			next = next.ReleaseHotel(h)
		}
	}
	next = next.StartHotel(surviving, mergedTiles)
	return BuyStock{snapshot: next, Turn: ctx.Turn}
}

func without(hotels []game.HotelID, hotel game.HotelID) []game.HotelID {
	out := slices.Clone(hotels)
	return slices.DeleteFunc(out, func(h game.HotelID) bool { return h == hotel })
}

// ChooseSurvivingHotel has the merging player pick which of the equally
// largest hotels survives.
type ChooseSurvivingHotel struct {
	snapshot   game.Snapshot
	Context    MergeContext
	Candidates []game.HotelID
}

// NewChooseSurvivingHotel creates the state with the given candidates.
func NewChooseSurvivingHotel(snapshot game.Snapshot, ctx MergeContext, candidates []game.HotelID) ChooseSurvivingHotel {
	return ChooseSurvivingHotel{snapshot: snapshot, Context: ctx, Candidates: candidates}
}

func (s ChooseSurvivingHotel) Snapshot() game.Snapshot { return s.snapshot }
func (s ChooseSurvivingHotel) Name() string            { return "choose_surviving_hotel" }
func (s ChooseSurvivingHotel) phase()                  {}

// ChooseSurvivingHotel picks hotel to survive the merger.
func (s ChooseSurvivingHotel) ChooseSurvivingHotel(player game.PlayerID, hotel game.HotelID) Transition {
	if !s.Context.Turn.IsCurrent(player) {
		log.Warn().Msgf("[%s] is not the current player [%s]", player, s.Context.Turn.Current)
		return notCurrentPlayer(s, player, s.Context.Turn)
	}
	if !slices.Contains(s.Candidates, hotel) {
		log.Warn().Msgf("[%s] chosen surviving hotel [%s] is not a candidate, candidates: %v", player, hotel, s.Candidates)
		return failure(s, "%s requested a hotel %s that is not a surviving candidate, the candidates are %v", player, hotel, s.Candidates)
	}

	log.Info().Msgf("[%s] chose hotel [%s] to survive the merger", player, hotel)
	return success(nextDefunctHotel(s.snapshot, s.Context, hotel, without(s.Context.NearbyHotels, hotel)),
		"%s chose %s to survive the merger", player, hotel)
}

// ChooseDefunctHotel has the merging player pick which of the equally
// largest remaining hotels is folded next.
type ChooseDefunctHotel struct {
	snapshot   game.Snapshot
	Context    MergeContext
	Surviving  game.HotelID
	Remaining  []game.HotelID
	Candidates []game.HotelID
}

// NewChooseDefunctHotel creates the state with the given candidates.
func NewChooseDefunctHotel(snapshot game.Snapshot, ctx MergeContext, surviving game.HotelID, remaining, candidates []game.HotelID) ChooseDefunctHotel {
	return ChooseDefunctHotel{snapshot: snapshot, Context: ctx, Surviving: surviving, Remaining: remaining, Candidates: candidates}
}

func (s ChooseDefunctHotel) Snapshot() game.Snapshot { return s.snapshot }
func (s ChooseDefunctHotel) Name() string            { return "choose_defunct_hotel" }
func (s ChooseDefunctHotel) phase()                  {}

// ChooseDefunctHotel picks the next hotel to defunct.
func (s ChooseDefunctHotel) ChooseDefunctHotel(player game.PlayerID, hotel game.HotelID) Transition {
	if !s.Context.Turn.IsCurrent(player) {
		log.Warn().Msgf("[%s] is not the current player [%s]", player, s.Context.Turn.Current)
		return notCurrentPlayer(s, player, s.Context.Turn)
	}
	if !slices.Contains(s.Candidates, hotel) {
		log.Warn().Msgf("[%s] chosen hotel [%s] to defunct is not a candidate, candidates: %v", player, hotel, s.Candidates)
		return failure(s, "%s requested a hotel %s that is not a defunct candidate, the candidates are %v", player, hotel, s.Candidates)
	}

	log.Info().Msgf("[%s] chose to defunct hotel [%s] from candidates %v with remaining hotels: %v", player, hotel, s.Candidates, s.Remaining)
	merge := Merge{Context: s.Context, Surviving: s.Surviving, Defunct: hotel, Remaining: s.Remaining}
	return success(payBonusesOrHandleStocks(s.snapshot, merge),
		"%s chose to defunct %s", player, hotel)
}

// PayBonuses pays the majority and minority bonuses for the hotel being
// folded, one stockholder at a time.
type PayBonuses struct {
	snapshot     game.Snapshot
	Merge        Merge
	PlayersToPay map[game.PlayerID]int
}

// NewPayBonuses creates the state with the given payments outstanding.
func NewPayBonuses(snapshot game.Snapshot, merge Merge, playersToPay map[game.PlayerID]int) PayBonuses {
	return PayBonuses{snapshot: snapshot, Merge: merge, PlayersToPay: playersToPay}
}

func (s PayBonuses) Snapshot() game.Snapshot { return s.snapshot }
func (s PayBonuses) Name() string            { return "pay_bonuses" }
func (s PayBonuses) phase()                  {}

// PayBonus pays the player their bonus. When the last bonus is paid the
// stockholders handle their defunct shares.
func (s PayBonuses) PayBonus(player game.PlayerID) Transition {
	amount, ok := s.PlayersToPay[player]
	if !ok {
		log.Warn().Msgf("[%s] does not receive any bonuses, the players who do: %v", player, s.PlayersToPay)
		return failure(s, "%s does not receive any bonuses", player)
	}

	next := s.snapshot.AddMoney(player, amount)
	toPay := make(map[game.PlayerID]int, len(s.PlayersToPay))
	for p, a := range s.PlayersToPay {
		if p != player {
			toPay[p] = a
		}
	}
	log.Info().Msgf("[%s] received a bonus of [$%d] for the merger of hotel [%s] into hotel [%s]",
		player, amount, s.Merge.Defunct, s.Merge.Surviving)

	if len(toPay) > 0 {
		return success(PayBonuses{snapshot: next, Merge: s.Merge, PlayersToPay: toPay},
			"%s paid $%d for the merger of %s", player, amount, s.Merge.Defunct)
	}
	return success(handleStocksOrNextDefunct(next, s.Merge),
		"%s paid $%d for the merger of %s", player, amount, s.Merge.Defunct)
}

// HandleDefunctHotelStocks has each stockholder of the defunct hotel trade,
// sell, or keep their shares, in turn order starting at the merging player.
type HandleDefunctHotelStocks struct {
	snapshot         game.Snapshot
	Merge            Merge
	PlayersWithStock []game.PlayerID
}

// NewHandleDefunctHotelStocks creates the state with the given stockholders
// queued.
func NewHandleDefunctHotelStocks(snapshot game.Snapshot, merge Merge, playersWithStock []game.PlayerID) HandleDefunctHotelStocks {
	return HandleDefunctHotelStocks{snapshot: snapshot, Merge: merge, PlayersWithStock: playersWithStock}
}

func (s HandleDefunctHotelStocks) Snapshot() game.Snapshot { return s.snapshot }
func (s HandleDefunctHotelStocks) Name() string            { return "handle_defunct_hotel_stocks" }
func (s HandleDefunctHotelStocks) phase()                  {}

// HandleStocks settles the player's shares of the defunct hotel: trade
// swaps two defunct shares for one surviving share, sell pays the defunct
// hotel's price, keep does nothing. The split must cover the player's
// whole holding.
func (s HandleDefunctHotelStocks) HandleStocks(player game.PlayerID, trade, sell, keep int) Transition {
	if player != s.PlayersWithStock[0] {
		log.Warn().Msgf("[%s] cannot yet handle defunct stocks, waiting for player [%s]", player, s.PlayersWithStock[0])
		return failure(s, "%s cannot yet handle defunct stocks", player)
	}
	if trade < 0 || sell < 0 || keep < 0 {
		log.Warn().Msgf("[%s] requested trade [%d] sell [%d] keep [%d] less than 0", player, trade, sell, keep)
		return failure(s, "%s must request a positive number of stocks", player)
	}
	if trade%2 != 0 {
		log.Warn().Msgf("[%s] requested to trade an odd number of stocks", player)
		return failure(s, "%s requested to trade an odd number of stocks", player)
	}
	held := s.snapshot.Player(player).Stock(s.Merge.Defunct)
	if held != trade+sell+keep {
		log.Warn().Msgf("[%s] requested a different number of stocks [%d] than they have [%d]", player, trade+sell+keep, held)
		return failure(s, "%s requested a different number of stocks %d than they have %d", player, trade+sell+keep, held)
	}
	available := s.snapshot.Bank().Stock(s.Merge.Surviving)
	if available < trade/2 {
		log.Warn().Msgf("[%s] requested to trade [%d] for more stocks than available in the bank [%d]", player, trade, available)
		return failure(s, "%s requesting to trade (%d) for more stocks than available in the bank %d", player, trade, available)
	}

	next := s.snapshot.DepositStock(player, s.Merge.Defunct, trade).
		WithdrawStock(player, s.Merge.Surviving, trade/2).
		SellStocks(player, s.Merge.Defunct, sell)
	remaining := slices.Clone(s.PlayersWithStock)[1:]
	log.Info().Msgf("[%s] traded [%d], sold [%d], and kept [%d] stocks of [%s]", player, trade, sell, keep, s.Merge.Defunct)

	if len(remaining) > 0 {
		return success(HandleDefunctHotelStocks{snapshot: next, Merge: s.Merge, PlayersWithStock: remaining},
			"%s traded %d, sold %d, and kept %d stocks of %s", player, trade, sell, keep, s.Merge.Defunct)
	}
	return success(nextDefunctHotel(next, s.Merge.Context, s.Merge.Surviving, without(s.Merge.Remaining, s.Merge.Defunct)),
		"%s traded %d, sold %d, and kept %d stocks of %s", player, trade, sell, keep, s.Merge.Defunct)
}
