package session

import (
	"fmt"
	"slices"
	"strings"
	"time"

	uuid "github.com/satori/go.uuid"

	"acquire/game"
	"acquire/phase"
)

// Standard starts a standard game with a random shuffle.
func Standard(players []game.PlayerID) (*Session, error) {
	snapshot, err := game.Standard(players)
	if err != nil {
		return nil, err
	}
	return New(GenerateID(players), CurrentVersion, TypeStandard, players, phase.Start(snapshot)), nil
}

// StandardWithSeed starts a standard game shuffled by seed. Games created
// with the same players and seed play out identically given the same
// requests.
func StandardWithSeed(players []game.PlayerID, seed int64) (*Session, error) {
	snapshot, err := game.StandardWithSeed(players, seed)
	if err != nil {
		return nil, err
	}
	return New(GenerateID(players), CurrentVersion, TypeStandard, players, phase.Start(snapshot)), nil
}

// GenerateID builds a game id from the sorted player names, the creation
// time, and a random suffix.
func GenerateID(players []game.PlayerID) string {
	names := make([]string, len(players))
	for i, p := range players {
		names[i] = string(p)
	}
	slices.Sort(names)
	ts := time.Now().Format("01-02-2006-15-04")
	suffix := strings.Split(uuid.NewV4().String(), "-")[0]
	return fmt.Sprintf("%s_%s_%s", strings.Join(names, "-"), ts, suffix)
}
