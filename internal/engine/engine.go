package engine

import (
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/hailam/chessmate/internal/board"
)

// SearchInfo contains information about the current search.
type SearchInfo struct {
	Depth int
	Score int
	Nodes uint64
	Time  time.Duration
	Move  board.Move
}

// Difficulty represents the AI difficulty level.
type Difficulty int

const (
	Easy   Difficulty = iota // 2 ply
	Medium                   // 3 ply
	Hard                     // 4 ply
)

// DifficultyDepth maps difficulty to search depth.
var DifficultyDepth = map[Difficulty]int{
	Easy:   2,
	Medium: 3,
	Hard:   4,
}

// String returns the lower-case name of d.
func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	}
	return "unknown"
}

// ParseDifficulty parses a difficulty name as written by String.
func ParseDifficulty(s string) (Difficulty, bool) {
	switch strings.ToLower(s) {
	case "easy":
		return Easy, true
	case "medium":
		return Medium, true
	case "hard":
		return Hard, true
	}
	return Medium, false
}

// Engine is the chess AI engine.
type Engine struct {
	searcher   *Searcher
	difficulty Difficulty
	depth      int // overrides difficulty when > 0
	randomOnly bool
	rng        *rand.Rand

	// Callbacks
	OnInfo func(SearchInfo)
}

// NewEngine creates a new chess engine at Medium difficulty.
func NewEngine() *Engine {
	return &Engine{
		searcher:   NewSearcher(),
		difficulty: Medium,
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// SetDifficulty sets the engine difficulty.
func (e *Engine) SetDifficulty(d Difficulty) {
	e.difficulty = d
}

// Difficulty returns the engine difficulty.
func (e *Engine) Difficulty() Difficulty {
	return e.difficulty
}

// SetDepth fixes the search depth, overriding the difficulty. A depth of
// zero restores the difficulty's depth.
func (e *Engine) SetDepth(depth int) {
	if depth > MaxDepth {
		depth = MaxDepth
	}
	if depth < 0 {
		depth = 0
	}
	e.depth = depth
}

// Depth returns the search depth the engine will use.
func (e *Engine) Depth() int {
	if e.depth > 0 {
		return e.depth
	}
	return DifficultyDepth[e.difficulty]
}

// SetRandomOnly disables the search; ChooseMove then picks at random.
func (e *Engine) SetRandomOnly(on bool) {
	e.randomOnly = on
}

// RandomOnly reports whether the search is disabled.
func (e *Engine) RandomOnly() bool {
	return e.randomOnly
}

// SetSeed reseeds the engine's random source.
func (e *Engine) SetSeed(seed int64) {
	e.rng = rand.New(rand.NewSource(seed))
}

// Nodes returns the number of nodes visited by the last search.
func (e *Engine) Nodes() uint64 {
	return e.searcher.Nodes()
}

// Search finds the best of legal for the given position at the engine depth.
func (e *Engine) Search(gs *board.GameState, legal []board.Move) (board.Move, bool) {
	return e.SearchDepth(gs, legal, e.Depth())
}

// SearchDepth finds the best of legal by iterative deepening up to maxDepth,
// reporting each iteration to OnInfo. The result is that of the deepest
// iteration.
func (e *Engine) SearchDepth(gs *board.GameState, legal []board.Move, maxDepth int) (board.Move, bool) {
	e.searcher.Reset()

	startTime := time.Now()
	bestMove, found := board.NoMove, false
	if maxDepth > MaxDepth {
		maxDepth = MaxDepth
	}

	// Iterative deepening
	for depth := 1; depth <= maxDepth; depth++ {
		move, score, ok := e.searcher.Search(gs, legal, depth)
		bestMove, found = move, ok

		// Report info
		if e.OnInfo != nil {
			e.OnInfo(SearchInfo{
				Depth: depth,
				Score: score,
				Nodes: e.searcher.Nodes(),
				Time:  time.Since(startTime),
				Move:  move,
			})
		}

		// Early termination: found mate
		if ok && score >= MateScore {
			break
		}
	}

	return bestMove, found
}

// FindRandomMove picks uniformly from legal with the engine's random source.
func (e *Engine) FindRandomMove(legal []board.Move) board.Move {
	return pickRandom(legal, e.rng.Intn)
}

// ChooseMove returns the move the engine plays in gs: the search result, or
// a random legal move when the search is disabled or finds nothing. It
// returns NoMove only when the game is over.
func (e *Engine) ChooseMove(gs *board.GameState) board.Move {
	legal := gs.ValidMoves()
	if len(legal) == 0 {
		return board.NoMove
	}
	if e.randomOnly {
		return e.FindRandomMove(legal)
	}
	if m, ok := e.Search(gs, legal); ok {
		return m
	}
	return e.FindRandomMove(legal)
}

// Perft performs a perft test (for debugging move generation).
func Perft(gs *board.GameState, depth int) uint64 {
	if depth == 0 {
		return 1
	}

	moves := gs.ValidMoves()
	if depth == 1 {
		return uint64(len(moves))
	}

	var nodes uint64
	for _, m := range moves {
		gs.MakeMove(m)
		nodes += Perft(gs, depth-1)
		gs.UndoMove()
	}

	return nodes
}

// ScoreToString converts a score to a human-readable string.
func ScoreToString(score int) string {
	if score >= MateScore {
		return "Mate"
	}
	if score <= -MateScore {
		return "Mated"
	}

	// Convert centipawns to pawns
	sign := ""
	if score < 0 {
		sign = "-"
		score = -score
	}
	pawns := score / 100
	centipawns := score % 100

	cp := strconv.Itoa(centipawns)
	if centipawns < 10 {
		cp = "0" + cp
	}
	return sign + strconv.Itoa(pawns) + "." + cp
}
