// Command chessmate-uci runs the engine behind the UCI protocol on
// standard input and output.
package main

import (
	"flag"
	"log"
	"os"
	"runtime/pprof"

	"github.com/hailam/chessmate/internal/engine"
	"github.com/hailam/chessmate/internal/uci"
)

var (
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
	depth      = flag.Int("depth", 0, "search depth in plies (0 = from difficulty)")
	difficulty = flag.String("difficulty", "medium", "easy, medium or hard")
	random     = flag.Bool("random", false, "play uniformly random legal moves")
)

func main() {
	flag.Parse()

	// Start CPU profiling if requested (via flag or environment variable)
	profilePath := *cpuprofile
	if profilePath == "" {
		profilePath = os.Getenv("CPUPROFILE")
	}
	if profilePath != "" {
		f, err := os.Create(profilePath)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
		log.Printf("CPU profiling enabled, writing to %s", profilePath)
	}

	eng := engine.NewEngine()
	d, ok := engine.ParseDifficulty(*difficulty)
	if !ok {
		log.Printf("Unknown difficulty %q, using %s", *difficulty, d)
	}
	eng.SetDifficulty(d)
	eng.SetDepth(*depth)
	eng.SetRandomOnly(*random)

	// Create and run UCI protocol handler
	protocol := uci.New(eng, os.Stdin, os.Stdout, os.Stderr)
	if err := protocol.Run(); err != nil {
		log.Printf("uci: %v", err)
	}
}
