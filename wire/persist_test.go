package wire

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"acquire/game"
	"acquire/phase"
	"acquire/req"
	"acquire/session"
)

// playedGame plays a seeded standard game through its opening: turn tiles
// drawn and placed, initial hands dealt.
func playedGame(t *testing.T, seed int64) *session.Session {
	t.Helper()
	s, err := session.StandardWithSeed([]game.PlayerID{"alice", "bob"}, seed)
	require.NoError(t, err)

	for _, p := range s.Players() {
		require.True(t, s.Submit(req.DrawTile{P: p}).OK)
	}
	for _, p := range s.Players() {
		tile := s.Current().State.Snapshot().Player(p).Tiles()[0]
		require.True(t, s.Submit(req.PlaceTile{P: p, Tile: tile}).OK)
	}
	for _, p := range s.Players() {
		require.True(t, s.Submit(req.DrawTile{P: p}).OK)
	}
	return s
}

func TestRecordRoundTrip(t *testing.T) {
	original := playedGame(t, 17)

	record, err := NewRecord(original)
	require.NoError(t, err)
	require.Equal(t, original.ID(), record.Name)
	require.Equal(t, int64(17), record.ShuffleSeed)
	require.Len(t, record.Requests, original.Turn()+1, "every turn's request is recorded")

	raw, err := MarshalRecord(record)
	require.NoError(t, err)
	decoded, err := UnmarshalRecord(raw)
	require.NoError(t, err)
	require.Equal(t, record, decoded)
}

func TestNewRecordRefusesCustomGames(t *testing.T) {
	snapshot, err := game.StandardWithSeed([]game.PlayerID{"alice", "bob"}, 1)
	require.NoError(t, err)
	custom := session.New("custom-game", session.CurrentVersion, session.TypeCustom,
		[]game.PlayerID{"alice", "bob"}, phase.Start(snapshot))

	_, err = NewRecord(custom)
	require.ErrorContains(t, err, `cannot persist a game of type "custom"`)
}

func TestUnmarshalRecordValidates(t *testing.T) {
	valid := func() map[string]any {
		return map[string]any{
			"name":         "g",
			"version":      map[string]any{"major": 1, "minor": 0},
			"type":         "standard",
			"shuffle_seed": 17,
			"players":      []any{"alice", "bob"},
			"requests":     []any{map[string]any{"type": "start_game", "player": "alice"}},
		}
	}

	cases := []struct {
		name   string
		mutate func(doc map[string]any)
	}{
		{"missing shuffle seed", func(doc map[string]any) { delete(doc, "shuffle_seed") }},
		{"bad game type", func(doc map[string]any) { doc["type"] = "casual" }},
		{"empty players", func(doc map[string]any) { doc["players"] = []any{} }},
		{"empty name", func(doc map[string]any) { doc["name"] = "" }},
		{"unknown request type", func(doc map[string]any) {
			doc["requests"] = []any{map[string]any{"type": "teleport", "player": "alice"}}
		}},
		{"request without player", func(doc map[string]any) {
			doc["requests"] = []any{map[string]any{"type": "draw_tile"}}
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			doc := valid()
			tc.mutate(doc)
			data, err := json.Marshal(doc)
			require.NoError(t, err)
			_, err = UnmarshalRecord(data)
			require.ErrorContains(t, err, "invalid record")
		})
	}

	t.Run("the unmutated document passes", func(t *testing.T) {
		data, err := json.Marshal(valid())
		require.NoError(t, err)
		_, err = UnmarshalRecord(data)
		require.NoError(t, err)
	})
}

func TestReplayRebuildsHistory(t *testing.T) {
	original := playedGame(t, 42)
	record, err := NewRecord(original)
	require.NoError(t, err)

	replayed, err := Replay(record)
	require.NoError(t, err)
	require.Equal(t, original.ID(), replayed.ID())
	require.Equal(t, original.Turn(), replayed.Turn())

	want := session.AllStates(original)
	got := session.AllStates(replayed)
	for i := range want {
		require.Equal(t, want[i].Request, got[i].Request, "request at turn %d", i)
		require.Equal(t, want[i].State.Name(), got[i].State.Name())
		require.Equal(t, want[i].State.Snapshot(), got[i].State.Snapshot(),
			"the seed rebuilds the same draws at turn %d", i)
	}
}

func TestReplayRefusesIncompatibleVersions(t *testing.T) {
	original := playedGame(t, 3)
	record, err := NewRecord(original)
	require.NoError(t, err)
	record.Version = session.Version{Major: session.CurrentVersion.Major + 1}

	_, err = Replay(record)
	require.ErrorContains(t, err, "incompatible")
}
