package wire

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"acquire/game"
	"acquire/phase"
	"acquire/session"
)

// Record is everything needed to reconstruct a standard game: the shuffle
// seed recreates the draw pile and replaying the requests recreates the
// rest.
type Record struct {
	Name        string            `json:"name"`
	Version     session.Version   `json:"version"`
	Type        session.Type      `json:"type"`
	ShuffleSeed int64             `json:"shuffle_seed"`
	Players     []game.PlayerID   `json:"players"`
	Requests    []json.RawMessage `json:"requests"`
}

const recordSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["name", "version", "type", "shuffle_seed", "players", "requests"],
  "properties": {
    "name": {"type": "string", "minLength": 1},
    "version": {
      "type": "object",
      "required": ["major", "minor"],
      "properties": {
        "major": {"type": "integer", "minimum": 0},
        "minor": {"type": "integer", "minimum": 0}
      }
    },
    "type": {"enum": ["standard", "custom"]},
    "shuffle_seed": {"type": "integer"},
    "players": {
      "type": "array",
      "minItems": 1,
      "items": {"type": "string", "minLength": 1}
    },
    "requests": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["type", "player"],
        "properties": {
          "type": {
            "enum": ["accept_money", "accept_stock", "accept_undo", "buy_stock",
                     "choose_hotel", "draw_tile", "end_game", "handle_stocks",
                     "place_tile", "start_game", "undo"]
          },
          "player": {"type": "string", "minLength": 1}
        }
      }
    }
  }
}`

var compiledRecordSchema = jsonschema.MustCompileString("record.schema.json", recordSchema)

// NewRecord builds the persist record of g. Only standard games can be
// recorded; a custom setup has no seed to rebuild from.
func NewRecord(g session.Game) (Record, error) {
	if g.Type() != session.TypeStandard {
		return Record{}, fmt.Errorf("cannot persist a game of type %q", g.Type())
	}
	requests := make([]json.RawMessage, 0, g.Turn()+1)
	for _, e := range session.AllStates(g) {
		raw, err := MarshalRequest(e.Request)
		if err != nil {
			return Record{}, err
		}
		requests = append(requests, raw)
	}
	return Record{
		Name:        g.ID(),
		Version:     g.Version(),
		Type:        g.Type(),
		ShuffleSeed: g.Current().State.Snapshot().Bank().ShuffleSeed(),
		Players:     g.Players(),
		Requests:    requests,
	}, nil
}

// MarshalRecord encodes the record.
func MarshalRecord(r Record) ([]byte, error) {
	return json.Marshal(r)
}

// UnmarshalRecord validates data against the record schema and decodes it.
func UnmarshalRecord(data []byte) (Record, error) {
	var doc any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return Record{}, fmt.Errorf("decoding record: %w", err)
	}
	if err := compiledRecordSchema.Validate(doc); err != nil {
		return Record{}, fmt.Errorf("invalid record: %w", err)
	}
	var r Record
	if err := json.Unmarshal(data, &r); err != nil {
		return Record{}, err
	}
	return r, nil
}

// Replay reconstructs a game from its record: a fresh standard game with
// the recorded seed is fed every recorded request in order. The first
// request is the start of the game and is skipped. Records from an
// incompatible version are refused.
func Replay(r Record) (*session.Session, error) {
	if !session.CurrentVersion.Compatible(r.Version) {
		return nil, fmt.Errorf("current version %s is incompatible with record version %s",
			session.CurrentVersion, r.Version)
	}
	if session.CurrentVersion != r.Version {
		log.Warn().Msgf("loaded game will work but current version %s does not match record version %s",
			session.CurrentVersion, r.Version)
	}

	snapshot, err := game.StandardWithSeed(r.Players, r.ShuffleSeed)
	if err != nil {
		return nil, err
	}
	s := session.New(r.Name, r.Version, r.Type, r.Players, phase.Start(snapshot))

	for i, raw := range r.Requests {
		if i == 0 {
			continue
		}
		request, err := UnmarshalRequest(raw)
		if err != nil {
			return nil, fmt.Errorf("request %d: %w", i, err)
		}
		if resp := s.Submit(request); !resp.OK {
			return nil, fmt.Errorf("request %d (%s by %s) failed on replay: %s",
				i, request.Kind(), request.Player(), resp.Message)
		}
	}
	return s, nil
}
