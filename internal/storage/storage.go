package storage

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// Storage keys
const (
	keyPreferences = "preferences"
	keyStats       = "stats"
	keyFirstLaunch = "first_launch"
	keyGameSeq     = "seq/game"
	gamePrefix     = "game/"
)

// ErrGameNotFound is returned when an archived game does not exist.
var ErrGameNotFound = errors.New("storage: game not found")

// PlayerKind says who moves for one side.
type PlayerKind int

const (
	Human PlayerKind = iota
	Computer
)

func (k PlayerKind) String() string {
	if k == Computer {
		return "computer"
	}
	return "human"
}

// UserPreferences stores user settings
type UserPreferences struct {
	Username   string     `json:"username"`
	Difficulty string     `json:"difficulty"`
	Depth      int        `json:"depth"` // 0 = use difficulty
	White      PlayerKind `json:"white"`
	Black      PlayerKind `json:"black"`
	RandomOnly bool       `json:"random_only"`
	ShowCoords bool       `json:"show_coords"`
	FlipBoard  bool       `json:"flip_board"`
	LastPlayed time.Time  `json:"last_played"`
}

// DefaultPreferences returns default user preferences
func DefaultPreferences() *UserPreferences {
	return &UserPreferences{
		Username:   "Player",
		Difficulty: "medium",
		White:      Human,
		Black:      Computer,
		ShowCoords: true,
		LastPlayed: time.Now(),
	}
}

// Winner of a finished game.
type Winner string

const (
	WinnerWhite Winner = "white"
	WinnerBlack Winner = "black"
	WinnerNone  Winner = "draw"
)

// GameStats stores game statistics
type GameStats struct {
	GamesPlayed    int           `json:"games_played"`
	WhiteWins      int           `json:"white_wins"`
	BlackWins      int           `json:"black_wins"`
	Draws          int           `json:"draws"`
	HumanWins      int           `json:"human_wins"`
	HumanLosses    int           `json:"human_losses"`
	TotalPlayTime  time.Duration `json:"total_play_time"`
	TotalMoves     int           `json:"total_moves"`
	LongestWinStrk int           `json:"longest_win_streak"`
	CurrentStreak  int           `json:"current_streak"`
}

// NewGameStats returns empty game statistics
func NewGameStats() *GameStats {
	return &GameStats{}
}

// GameResult represents a completed game.
type GameResult struct {
	ID       uint64        `json:"id"`
	Winner   Winner        `json:"winner"`
	Reason   string        `json:"reason"` // "checkmate" or "stalemate"
	White    PlayerKind    `json:"white"`
	Black    PlayerKind    `json:"black"`
	StartFEN string        `json:"start_fen"`
	FinalFEN string        `json:"final_fen"`
	Moves    []string      `json:"moves"`
	Duration time.Duration `json:"duration"`
	PlayedAt time.Time     `json:"played_at"`
}

// humanOutcome reports whether exactly one side is human and, if so,
// whether that human won or lost.
func (r GameResult) humanOutcome() (vsComputer, won, lost bool) {
	if r.White == r.Black {
		return false, false, false
	}
	humanSide := WinnerWhite
	if r.Black == Human {
		humanSide = WinnerBlack
	}
	switch r.Winner {
	case WinnerNone:
		return true, false, false
	case humanSide:
		return true, true, false
	default:
		return true, false, true
	}
}

// Storage wraps BadgerDB for persistent storage
type Storage struct {
	db  *badger.DB
	seq *badger.Sequence
}

// NewStorage opens the database in the platform data directory.
func NewStorage() (*Storage, error) {
	dbDir, err := GetDatabaseDir()
	if err != nil {
		return nil, err
	}
	return NewStorageAt(dbDir)
}

// NewStorageAt opens the database in dir.
func NewStorageAt(dir string) (*Storage, error) {
	return open(badger.DefaultOptions(dir))
}

// NewMemoryStorage opens a database that lives only in memory.
func NewMemoryStorage() (*Storage, error) {
	return open(badger.DefaultOptions("").WithInMemory(true))
}

func open(opts badger.Options) (*Storage, error) {
	opts.Logger = nil // Disable logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	seq, err := db.GetSequence([]byte(keyGameSeq), 16)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Storage{db: db, seq: seq}, nil
}

// Close closes the database
func (s *Storage) Close() error {
	if s.seq != nil {
		if err := s.seq.Release(); err != nil {
			s.db.Close()
			return err
		}
	}
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// IsFirstLaunch returns true if this is the first launch
func (s *Storage) IsFirstLaunch() (bool, error) {
	firstLaunch := true

	err := s.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get([]byte(keyFirstLaunch))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		firstLaunch = false
		return nil
	})

	return firstLaunch, err
}

// MarkFirstLaunchComplete marks that first launch setup is complete
func (s *Storage) MarkFirstLaunchComplete() error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyFirstLaunch), []byte("done"))
	})
}

// SavePreferences saves user preferences
func (s *Storage) SavePreferences(prefs *UserPreferences) error {
	prefs.LastPlayed = time.Now()
	return s.putJSON(keyPreferences, prefs)
}

// LoadPreferences loads user preferences, returns defaults if not found
func (s *Storage) LoadPreferences() (*UserPreferences, error) {
	prefs := DefaultPreferences()
	_, err := s.getJSON(keyPreferences, prefs)
	return prefs, err
}

// SaveStats saves game statistics
func (s *Storage) SaveStats(stats *GameStats) error {
	return s.putJSON(keyStats, stats)
}

// LoadStats loads game statistics, returns empty stats if not found
func (s *Storage) LoadStats() (*GameStats, error) {
	stats := NewGameStats()
	_, err := s.getJSON(keyStats, stats)
	return stats, err
}

// RecordGame archives a finished game and updates the statistics in one
// transaction. It assigns and returns the game ID.
func (s *Storage) RecordGame(result *GameResult) (uint64, error) {
	id, err := s.seq.Next()
	if err != nil {
		return 0, err
	}
	result.ID = id
	if result.PlayedAt.IsZero() {
		result.PlayedAt = time.Now()
	}

	gameData, err := json.Marshal(result)
	if err != nil {
		return 0, err
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		stats := NewGameStats()
		if err := getJSONTxn(txn, keyStats, stats); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		stats.apply(result)

		statsData, err := json.Marshal(stats)
		if err != nil {
			return err
		}
		if err := txn.Set([]byte(keyStats), statsData); err != nil {
			return err
		}
		return txn.Set(gameKey(id), gameData)
	})
	if err != nil {
		return 0, fmt.Errorf("record game: %w", err)
	}
	return id, nil
}

// apply folds one finished game into the statistics.
func (s *GameStats) apply(result *GameResult) {
	s.GamesPlayed++
	s.TotalPlayTime += result.Duration
	s.TotalMoves += len(result.Moves)

	switch result.Winner {
	case WinnerWhite:
		s.WhiteWins++
	case WinnerBlack:
		s.BlackWins++
	default:
		s.Draws++
	}

	vsComputer, won, lost := result.humanOutcome()
	if !vsComputer {
		return
	}
	switch {
	case won:
		s.HumanWins++
		s.CurrentStreak++
		if s.CurrentStreak > s.LongestWinStrk {
			s.LongestWinStrk = s.CurrentStreak
		}
	case lost:
		s.HumanLosses++
		s.CurrentStreak = 0
	default:
		s.CurrentStreak = 0
	}
}

// LoadGame returns the archived game with the given ID.
func (s *Storage) LoadGame(id uint64) (*GameResult, error) {
	var result GameResult
	err := s.db.View(func(txn *badger.Txn) error {
		return getJSONTxn(txn, string(gameKey(id)), &result)
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, fmt.Errorf("%w: %d", ErrGameNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// RecentGames returns up to limit archived games, newest first. A limit of
// zero or less returns all of them.
func (s *Storage) RecentGames(limit int) ([]*GameResult, error) {
	var games []*GameResult

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(gamePrefix)
		opts.Reverse = true

		it := txn.NewIterator(opts)
		defer it.Close()

		// Reverse iteration starts at the last key below the seek key.
		seek := append([]byte(gamePrefix), 0xFF)
		for it.Seek(seek); it.ValidForPrefix(opts.Prefix); it.Next() {
			if limit > 0 && len(games) >= limit {
				break
			}
			var g GameResult
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &g)
			}); err != nil {
				return err
			}
			games = append(games, &g)
		}
		return nil
	})

	return games, err
}

// gameKey returns the archive key of a game. Big-endian IDs keep the keys in
// numeric order.
func gameKey(id uint64) []byte {
	key := make([]byte, len(gamePrefix)+8)
	copy(key, gamePrefix)
	binary.BigEndian.PutUint64(key[len(gamePrefix):], id)
	return key
}

func (s *Storage) putJSON(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
}

// getJSON decodes the value at key into v. found is false, with a nil error,
// when the key does not exist and v is left untouched.
func (s *Storage) getJSON(key string, v any) (found bool, err error) {
	err = s.db.View(func(txn *badger.Txn) error {
		return getJSONTxn(txn, key, v)
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	return err == nil, err
}

func getJSONTxn(txn *badger.Txn, key string, v any) error {
	item, err := txn.Get([]byte(key))
	if err != nil {
		return err
	}
	return item.Value(func(val []byte) error {
		return json.Unmarshal(val, v)
	})
}

// GetWinRate returns the human win rate against the computer as a
// percentage (0-100)
func (s *GameStats) GetWinRate() float64 {
	games := s.HumanWins + s.HumanLosses
	if games == 0 {
		return 0
	}
	return float64(s.HumanWins) / float64(games) * 100
}
