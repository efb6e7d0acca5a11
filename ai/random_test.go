package ai

import (
	"testing"

	"github.com/stretchr/testify/require"

	"acquire/game"
	"acquire/phase"
	"acquire/session"
)

func TestRandomPicksALegalRequest(t *testing.T) {
	s := snapshot(t, nil, nil, []game.Player{
		player("alice", game.StandardInitialMoney, nil, nil),
		player("bob", game.StandardInitialMoney, nil, nil),
	})
	agent := NewRandom(1)

	r, ok := agent.Next(phase.Start(s))
	require.True(t, ok)
	require.Contains(t, PossibleRequests(phase.Start(s)), r)

	_, ok = agent.Next(phase.NewGameOver(s, []game.PlayerID{"alice", "bob"}))
	require.False(t, ok, "a finished game has no requests left")
}

func TestRandomIsDeterministic(t *testing.T) {
	g1, err := session.StandardWithSeed([]game.PlayerID{"alice", "bob"}, 23)
	require.NoError(t, err)
	g2, err := session.StandardWithSeed([]game.PlayerID{"alice", "bob"}, 23)
	require.NoError(t, err)
	a1, a2 := NewRandom(23), NewRandom(23)

	for i := 0; i < 50; i++ {
		r1, ok1 := a1.Next(g1.Current().State)
		r2, ok2 := a2.Next(g2.Current().State)
		require.Equal(t, ok1, ok2)
		if !ok1 {
			break
		}
		require.Equal(t, r1, r2, "same seeds play the same game")
		require.True(t, g1.Submit(r1).OK)
		require.True(t, g2.Submit(r2).OK)
	}
}

func TestRandomSubmitsOnlyAcceptedRequests(t *testing.T) {
	g, err := session.StandardWithSeed([]game.PlayerID{"alice", "bob", "carol"}, 7)
	require.NoError(t, err)
	agent := NewRandom(7)

	for i := 0; i < 200; i++ {
		r, ok := agent.Next(g.Current().State)
		if !ok {
			break
		}
		response := g.Submit(r)
		require.True(t, response.OK, "turn %d: %s by %s refused: %s",
			g.Turn()+1, r.Kind(), r.Player(), response.Message)
	}
}
