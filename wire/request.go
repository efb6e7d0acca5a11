// Package wire serializes games to and from JSON: player requests both
// ways, game state outward for clients, and the persist record that a
// finished or in-flight game is saved and reloaded from.
package wire

import (
	"encoding/json"
	"fmt"

	"acquire/req"
)

// MarshalRequest encodes r as a JSON object tagged with its kind under
// "type".
func MarshalRequest(r req.Request) ([]byte, error) {
	raw, err := json.Marshal(r)
	if err != nil {
		return nil, err
	}
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	fields["type"] = r.Kind()
	return json.Marshal(fields)
}

// UnmarshalRequest decodes a request from its tagged JSON form.
func UnmarshalRequest(data []byte) (req.Request, error) {
	var envelope struct {
		Type req.Kind `json:"type"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("decoding request envelope: %w", err)
	}

	var r req.Request
	switch envelope.Type {
	case req.KindAcceptMoney:
		r = &req.AcceptMoney{}
	case req.KindAcceptStock:
		r = &req.AcceptStock{}
	case req.KindAcceptUndo:
		r = &req.AcceptUndo{}
	case req.KindBuyStock:
		r = &req.BuyStock{}
	case req.KindChooseHotel:
		r = &req.ChooseHotel{}
	case req.KindDrawTile:
		r = &req.DrawTile{}
	case req.KindEndGame:
		r = &req.EndGame{}
	case req.KindHandleStocks:
		r = &req.HandleStocks{}
	case req.KindPlaceTile:
		r = &req.PlaceTile{}
	case req.KindStartGame:
		r = &req.StartGame{}
	case req.KindUndo:
		r = &req.Undo{}
	default:
		return nil, fmt.Errorf("unknown request type %q", envelope.Type)
	}
	if err := json.Unmarshal(data, r); err != nil {
		return nil, fmt.Errorf("decoding %s request: %w", envelope.Type, err)
	}
	return deref(r), nil
}

// deref returns the request as the value type the rest of the code works
// with.
func deref(r req.Request) req.Request {
	switch r := r.(type) {
	case *req.AcceptMoney:
		return *r
	case *req.AcceptStock:
		return *r
	case *req.AcceptUndo:
		return *r
	case *req.BuyStock:
		return *r
	case *req.ChooseHotel:
		return *r
	case *req.DrawTile:
		return *r
	case *req.EndGame:
		return *r
	case *req.HandleStocks:
		return *r
	case *req.PlaceTile:
		return *r
	case *req.StartGame:
		return *r
	case *req.Undo:
		return *r
	default:
		return r
	}
}
