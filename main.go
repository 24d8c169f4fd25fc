// ChessMate - A chess game built with Ebitengine
package main

import (
	"flag"
	"log"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/hailam/chessmate/internal/engine"
	"github.com/hailam/chessmate/internal/storage"
	"github.com/hailam/chessmate/internal/ui"
)

var (
	white      = flag.String("white", "", "who plays White: human or computer")
	black      = flag.String("black", "", "who plays Black: human or computer")
	depth      = flag.Int("depth", 0, "search depth, overrides -difficulty")
	difficulty = flag.String("difficulty", "", "easy, medium or hard")
	random     = flag.Bool("random", false, "computer plays random moves")
	flip       = flag.Bool("flip", false, "draw the board from Black's side")
	fen        = flag.String("fen", "", "starting position")
	dbDir      = flag.String("db", "", "database directory (default: platform data directory)")
)

func main() {
	flag.Parse()

	store, err := openStorage(*dbDir)
	if err != nil {
		log.Printf("Warning: Failed to initialize storage: %v", err)
	}

	prefs := storage.DefaultPreferences()
	if store != nil {
		defer store.Close()
		if prefs, err = store.LoadPreferences(); err != nil {
			log.Printf("Warning: Failed to load preferences: %v", err)
			prefs = storage.DefaultPreferences()
		}
	}

	// Flags given on the command line override the stored preferences.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "white":
			prefs.White = parsePlayer(*white, prefs.White)
		case "black":
			prefs.Black = parsePlayer(*black, prefs.Black)
		case "depth":
			prefs.Depth = *depth
		case "difficulty":
			prefs.Difficulty = *difficulty
		case "random":
			prefs.RandomOnly = *random
		case "flip":
			prefs.FlipBoard = *flip
		}
	})

	diff, ok := engine.ParseDifficulty(prefs.Difficulty)
	if !ok {
		log.Printf("Unknown difficulty %q, using %s", prefs.Difficulty, diff)
		prefs.Difficulty = diff.String()
	}

	if store != nil {
		if err := store.SavePreferences(prefs); err != nil {
			log.Printf("Warning: Failed to save preferences: %v", err)
		}
	}

	game, err := ui.NewGame(ui.Config{
		White:      prefs.White,
		Black:      prefs.Black,
		Difficulty: diff,
		Depth:      prefs.Depth,
		RandomOnly: prefs.RandomOnly,
		Flipped:    prefs.FlipBoard,
		Coords:     prefs.ShowCoords,
		FEN:        *fen,
		Storage:    store,
	})
	if err != nil {
		log.Fatal(err)
	}

	ebiten.SetWindowSize(ui.ScreenWidth, ui.ScreenHeight)
	ebiten.SetWindowTitle("ChessMate")

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}

func openStorage(dir string) (*storage.Storage, error) {
	if dir != "" {
		return storage.NewStorageAt(dir)
	}
	return storage.NewStorage()
}

func parsePlayer(s string, fallback storage.PlayerKind) storage.PlayerKind {
	switch strings.ToLower(s) {
	case "human":
		return storage.Human
	case "computer", "ai":
		return storage.Computer
	}
	log.Printf("Unknown player %q, keeping %s", s, fallback)
	return fallback
}
