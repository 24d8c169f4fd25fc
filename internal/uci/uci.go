// Package uci implements a subset of the Universal Chess Interface protocol
// on top of the rules engine and the search engine.
package uci

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/hailam/chessmate/internal/board"
	"github.com/hailam/chessmate/internal/engine"
)

// UCI implements the Universal Chess Interface protocol.
type UCI struct {
	engine *engine.Engine
	game   *board.GameState

	in     io.Reader
	out    io.Writer
	errOut io.Writer
}

// New creates a new UCI protocol handler reading commands from in and
// writing responses to out. Diagnostics go to errOut.
func New(eng *engine.Engine, in io.Reader, out, errOut io.Writer) *UCI {
	return &UCI{
		engine: eng,
		game:   board.NewGameState(),
		in:     in,
		out:    out,
		errOut: errOut,
	}
}

// Game returns the current position.
func (u *UCI) Game() *board.GameState {
	return u.game
}

// Run processes commands until "quit" or the end of input. Searches run
// synchronously, so a "go" is answered before the next command is read.
func (u *UCI) Run() error {
	scanner := bufio.NewScanner(u.in)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts := strings.Fields(line)
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "uci":
			u.handleUCI()
		case "isready":
			fmt.Fprintln(u.out, "readyok")
		case "ucinewgame":
			u.handleNewGame()
		case "position":
			u.handlePosition(args)
		case "go":
			u.handleGo(args)
		case "quit":
			return nil
		case "setoption":
			u.handleSetOption(args)
		// Debug commands
		case "d":
			fmt.Fprint(u.out, u.game.String())
			fmt.Fprintf(u.out, "Fen: %s\n", u.game.FEN())
			fmt.Fprintf(u.out, "Material: %d  Eval: %d\n", u.game.Material(), engine.Evaluate(u.game))
		case "moves":
			fmt.Fprintln(u.out, strings.Join(board.Notations(u.game.ValidMoves()), " "))
		case "perft":
			u.handlePerft(args)
		default:
			fmt.Fprintf(u.errOut, "info string Unknown command: %s\n", cmd)
		}
	}

	return scanner.Err()
}

// handleUCI responds to the "uci" command.
func (u *UCI) handleUCI() {
	fmt.Fprintln(u.out, "id name ChessMate")
	fmt.Fprintln(u.out, "id author ChessMate Team")
	fmt.Fprintln(u.out)
	fmt.Fprintf(u.out, "option name Depth type spin default %d min 1 max %d\n", u.engine.Depth(), engine.MaxDepth)
	fmt.Fprintln(u.out, "option name Difficulty type combo default medium var easy var medium var hard")
	fmt.Fprintln(u.out, "option name RandomOnly type check default false")
	fmt.Fprintln(u.out, "uciok")
}

// handleNewGame resets the position for a new game.
func (u *UCI) handleNewGame() {
	u.game = board.NewGameState()
}

// handlePosition parses and sets up a position.
// Formats:
//   - position startpos
//   - position startpos moves e2e4 e7e5
//   - position fen <fen>
//   - position fen <fen> moves e2e4
func (u *UCI) handlePosition(args []string) {
	if len(args) == 0 {
		return
	}

	// Find "moves" keyword
	moveStart := len(args)
	for i, arg := range args {
		if arg == "moves" {
			moveStart = i
			break
		}
	}

	var game *board.GameState
	switch args[0] {
	case "startpos":
		game = board.NewGameState()
	case "fen":
		fenStr := strings.Join(args[1:moveStart], " ")
		g, err := board.ParseFEN(fenStr)
		if err != nil {
			fmt.Fprintf(u.errOut, "info string Invalid FEN: %v\n", err)
			return
		}
		game = g
	default:
		return
	}

	// Apply moves
	if moveStart < len(args) {
		for _, moveStr := range args[moveStart+1:] {
			if _, err := game.MakeMoveString(moveStr); err != nil {
				fmt.Fprintf(u.errOut, "info string Invalid move: %v\n", err)
				return
			}
		}
	}

	u.game = game
}

// GoOptions holds parsed "go" command options.
type GoOptions struct {
	Depth  int
	Random bool
}

// handleGo runs a search with the given parameters and reports bestmove.
func (u *UCI) handleGo(args []string) {
	opts := parseGoOptions(args)

	legal := u.game.ValidMoves()
	if len(legal) == 0 {
		// Only send 0000 for checkmate/stalemate (no legal moves)
		fmt.Fprintln(u.out, "bestmove 0000")
		return
	}

	if opts.Random || u.engine.RandomOnly() {
		fmt.Fprintf(u.out, "bestmove %s\n", u.engine.FindRandomMove(legal))
		return
	}

	// Configure info callback
	u.engine.OnInfo = u.sendInfo
	defer func() { u.engine.OnInfo = nil }()

	depth := u.engine.Depth()
	if opts.Depth > 0 {
		depth = opts.Depth
	}

	bestMove, ok := u.engine.SearchDepth(u.game, legal, depth)
	if !ok {
		fmt.Fprintln(u.errOut, "info string No improving move, playing at random")
		bestMove = u.engine.FindRandomMove(legal)
	}
	fmt.Fprintf(u.out, "bestmove %s\n", bestMove)
}

// parseGoOptions parses "go" command arguments. Time controls are accepted
// and ignored since the search is bounded by depth only.
func parseGoOptions(args []string) GoOptions {
	opts := GoOptions{}

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "depth":
			if i+1 < len(args) {
				opts.Depth, _ = strconv.Atoi(args[i+1])
				i++
			}
		case "random":
			opts.Random = true
		case "wtime", "btime", "winc", "binc", "movestogo", "movetime", "nodes":
			i++
		}
	}

	return opts
}

// sendInfo outputs search info in UCI format.
func (u *UCI) sendInfo(info engine.SearchInfo) {
	var parts []string

	parts = append(parts, fmt.Sprintf("depth %d", info.Depth))

	// Score
	switch {
	case info.Score >= engine.MateScore:
		parts = append(parts, "score mate 1")
	case info.Score <= -engine.MateScore:
		parts = append(parts, "score mate -1")
	default:
		parts = append(parts, fmt.Sprintf("score cp %d", info.Score))
	}

	parts = append(parts, fmt.Sprintf("nodes %d", info.Nodes))
	parts = append(parts, fmt.Sprintf("time %d", info.Time.Milliseconds()))

	// NPS
	if info.Time > 0 {
		nps := uint64(float64(info.Nodes) / info.Time.Seconds())
		parts = append(parts, fmt.Sprintf("nps %d", nps))
	}

	if !info.Move.IsNull() {
		parts = append(parts, "pv "+info.Move.String())
	}

	fmt.Fprintf(u.out, "info %s\n", strings.Join(parts, " "))
}

// handleSetOption processes "setoption" commands.
func (u *UCI) handleSetOption(args []string) {
	// Format: setoption name <name> value <value>
	var name, value string
	readingName := false
	readingValue := false

	for _, arg := range args {
		switch arg {
		case "name":
			readingName = true
			readingValue = false
		case "value":
			readingName = false
			readingValue = true
		default:
			if readingName {
				if name != "" {
					name += " "
				}
				name += arg
			} else if readingValue {
				if value != "" {
					value += " "
				}
				value += arg
			}
		}
	}

	// Handle options
	switch strings.ToLower(name) {
	case "depth":
		depth, err := strconv.Atoi(value)
		if err != nil || depth < 1 {
			fmt.Fprintf(u.errOut, "info string Invalid depth: %q\n", value)
			return
		}
		u.engine.SetDepth(depth)
	case "difficulty":
		d, ok := engine.ParseDifficulty(value)
		if !ok {
			fmt.Fprintf(u.errOut, "info string Invalid difficulty: %q\n", value)
			return
		}
		u.engine.SetDifficulty(d)
		u.engine.SetDepth(0)
	case "randomonly":
		u.engine.SetRandomOnly(strings.ToLower(value) == "true")
	default:
		fmt.Fprintf(u.errOut, "info string Unknown option: %s\n", name)
	}
}

// handlePerft runs a perft test.
func (u *UCI) handlePerft(args []string) {
	depth := 3
	if len(args) > 0 {
		if d, err := strconv.Atoi(args[0]); err == nil && d >= 0 {
			depth = d
		}
	}

	start := time.Now()
	nodes := engine.Perft(u.game, depth)
	elapsed := time.Since(start)

	fmt.Fprintf(u.out, "Nodes: %d\n", nodes)
	fmt.Fprintf(u.out, "Time: %v\n", elapsed)
	if elapsed > 0 {
		nps := float64(nodes) / elapsed.Seconds()
		fmt.Fprintf(u.out, "NPS: %.0f\n", nps)
	}
}
