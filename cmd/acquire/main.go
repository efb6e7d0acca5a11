// Command acquire plays, saves and replays games of Acquire from the
// command line. Games are played out by random agents, which is mostly
// useful to exercise the rules and to produce replayable records.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"acquire/ai"
	"acquire/config"
	"acquire/game"
	"acquire/phase"
	"acquire/session"
	"acquire/store"
	"acquire/wire"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.WarnLevel)

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	var err error
	switch os.Args[1] {
	case "play":
		err = play(os.Args[2:])
	case "list":
		err = list(os.Args[2:])
	case "show":
		err = show(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage:
  acquire play -players alice,bob [-seed N] [-setup file.yaml] [-db file.sqlite] [-moves] [-board]
  acquire list -db file.sqlite
  acquire show -db file.sqlite -name GAME [-json]`)
}

func play(args []string) error {
	fs := flag.NewFlagSet("play", flag.ExitOnError)
	players := fs.String("players", "", "comma separated player names")
	seed := fs.Int64("seed", 0, "shuffle and agent seed, 0 picks one at random")
	setupPath := fs.String("setup", "", "custom setup YAML, omit for a standard game")
	dbPath := fs.String("db", "", "save the game to this SQLite database")
	moves := fs.Bool("moves", false, "print every accepted move")
	board := fs.Bool("board", false, "print the board after the game")
	fs.Parse(args)

	ids := playerIDs(*players)
	if len(ids) < 2 {
		return fmt.Errorf("need at least two players, got %q", *players)
	}

	g, err := newGame(ids, *seed, *setupPath)
	if err != nil {
		return err
	}

	var played session.Game = g
	if *dbPath != "" {
		s, err := store.New(*dbPath)
		if err != nil {
			return err
		}
		defer s.Close()
		persistent, err := store.NewPersistent(played, s)
		if err != nil {
			return err
		}
		played = persistent
	}

	agent := ai.NewRandom(uint64(g.Current().State.Snapshot().Bank().ShuffleSeed()))
	for {
		request, ok := agent.Next(played.Current().State)
		if !ok {
			break
		}
		response := played.Submit(request)
		if !response.OK {
			return fmt.Errorf("agent submitted a rejected %s request: %s", request.Kind(), response.Message)
		}
		if *moves {
			fmt.Printf("%4d %-12s %-24s %s\n", played.Turn(), request.Kind(), request.Player(), response.Message)
		}
	}

	final := played.Current().State
	if *board {
		printSnapshot(os.Stdout, final.Snapshot())
	}
	over, ok := final.(phase.GameOver)
	if !ok {
		return fmt.Errorf("game stopped in state %s", final.Name())
	}
	fmt.Printf("game %s over after %d turns\n", played.ID(), played.Turn())
	for i, p := range over.Results {
		fmt.Printf("%d. %s with $%d\n", i+1, p, final.Snapshot().Player(p).Money())
	}
	return nil
}

func list(args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	dbPath := fs.String("db", "", "SQLite database")
	fs.Parse(args)
	if *dbPath == "" {
		return fmt.Errorf("missing -db")
	}

	s, err := store.New(*dbPath)
	if err != nil {
		return err
	}
	defer s.Close()

	games, err := s.List()
	if err != nil {
		return err
	}
	for _, g := range games {
		fmt.Printf("%-40s %5d turns  %s\n", g.Name, g.Turns, g.UpdatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func show(args []string) error {
	fs := flag.NewFlagSet("show", flag.ExitOnError)
	dbPath := fs.String("db", "", "SQLite database")
	name := fs.String("name", "", "saved game name")
	asJSON := fs.Bool("json", false, "print the full history as JSON instead of the board")
	fs.Parse(args)
	if *dbPath == "" || *name == "" {
		return fmt.Errorf("missing -db or -name")
	}

	s, err := store.New(*dbPath)
	if err != nil {
		return err
	}
	defer s.Close()

	g, err := s.Load(*name)
	if err != nil {
		return err
	}
	if *asJSON {
		history, err := wire.NewCachedStates(g).StatesJSON(0, g.Turn())
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(append(history, '\n'))
		return err
	}
	current := g.Current()
	fmt.Printf("game %s, turn %d, state %s\n\n", g.ID(), g.Turn(), current.State.Name())
	printSnapshot(os.Stdout, current.State.Snapshot())
	return nil
}

func newGame(ids []game.PlayerID, seed int64, setupPath string) (*session.Session, error) {
	if setupPath != "" {
		setup, err := config.Load(setupPath)
		if err != nil {
			return nil, err
		}
		if seed != 0 {
			setup.ShuffleSeed = seed
		}
		return setup.NewGame(ids)
	}
	if seed != 0 {
		return session.StandardWithSeed(ids, seed)
	}
	return session.Standard(ids)
}

func playerIDs(players string) []game.PlayerID {
	var ids []game.PlayerID
	for _, name := range strings.Split(players, ",") {
		if name = strings.TrimSpace(name); name != "" {
			ids = append(ids, game.PlayerID(name))
		}
	}
	return ids
}
