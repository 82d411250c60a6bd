package selector

import (
	"math/rand/v2"
	"time"

	"github.com/zeroonegames/zeroone-backend/internal/engine"
)

// NoMove is returned by ChooseMove when the board has no empty cell left.
const NoMove = -1

const (
	centerPos = 4

	openingCenterChance = 0.7

	defaultMaxDepth    = 9
	DefaultPersonality = "balanced"
)

var (
	cornerPositions = [4]int{0, 2, 6, 8}
	edgePositions   = [4]int{1, 3, 5, 7}
)

// Config tunes a Selector. Difficulty only affects the mid-game mixing
// probability; ThinkingTime is display-only and consumed by the caller.
type Config struct {
	Mark         string
	OpponentMark string
	Difficulty   float64
	MaxDepth     int
	ThinkingTime time.Duration
}

// Stats counts move decisions by the branch that produced them.
type Stats struct {
	TotalMoves     int `json:"total_moves"`
	OptimalMoves   int `json:"optimal_moves"`
	StrategicMoves int `json:"strategic_moves"`
	RandomMoves    int `json:"random_moves"`
}

// Snapshot is Stats plus derived percentages, zero when no moves were made.
type Snapshot struct {
	Stats
	OptimalPercent   float64 `json:"optimal_percent"`
	StrategicPercent float64 `json:"strategic_percent"`
	RandomPercent    float64 `json:"random_percent"`
}

// Personality is a named preset overwriting difficulty and thinking time.
type Personality struct {
	Difficulty   float64
	ThinkingTime time.Duration
}

var Personalities = map[string]Personality{
	"aggressive": {Difficulty: 1.0, ThinkingTime: 400 * time.Millisecond},
	"balanced":   {Difficulty: 0.85, ThinkingTime: 800 * time.Millisecond},
	"friendly":   {Difficulty: 0.6, ThinkingTime: 1200 * time.Millisecond},
	"beginner":   {Difficulty: 0.3, ThinkingTime: 1500 * time.Millisecond},
}

type moveKind int

const (
	kindOptimal moveKind = iota
	kindStrategic
	kindRandom
)

// Selector picks moves for the automated player. It is not safe for
// concurrent use: callers must serialize ChooseMove and configuration calls.
type Selector struct {
	config Config
	stats  Stats
	rng    *rand.Rand
}

// New creates a Selector playing mark with the balanced personality.
func New(mark string) *Selector {
	return NewWithRand(mark, rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())))
}

// NewWithRand creates a Selector with an explicit random source, so tests can
// force the opening and mixing branches.
func NewWithRand(mark string, rng *rand.Rand) *Selector {
	preset := Personalities[DefaultPersonality]

	return &Selector{
		config: Config{
			Mark:         mark,
			OpponentMark: engine.Opponent(mark),
			Difficulty:   preset.Difficulty,
			MaxDepth:     defaultMaxDepth,
			ThinkingTime: preset.ThinkingTime,
		},
		rng: rng,
	}
}

// ChooseMove returns the next position for the automated mark, or NoMove on a
// full board. The policy depends on how many cells are still empty: a fixed
// opening heuristic on an untouched board, a difficulty-weighted mix of
// minimax and the lighter heuristic in the mid-game, and pure minimax once
// five or fewer cells remain.
func (that *Selector) ChooseMove(board engine.Board) int {
	available := board.AvailablePositions()
	if len(available) == 0 {
		return NoMove
	}

	switch {
	case len(available) == 9:
		return that.record(that.openingMove(), kindStrategic)
	case len(available) >= 6:
		if that.rng.Float64() < that.config.Difficulty {
			return that.record(that.bestMove(board, available), kindOptimal)
		}

		pos, kind := that.heuristicMove(board, available)

		return that.record(pos, kind)
	default:
		return that.record(that.bestMove(board, available), kindOptimal)
	}
}

// openingMove ignores search entirely: center most of the time, otherwise a
// random corner. Independent of difficulty.
func (that *Selector) openingMove() int {
	if that.rng.Float64() < openingCenterChance {
		return centerPos
	}

	return cornerPositions[that.rng.IntN(len(cornerPositions))]
}

// SetDifficulty clamps value to [0,1] and stores it.
func (that *Selector) SetDifficulty(value float64) {
	if value < 0 {
		value = 0
	}
	if value > 1 {
		value = 1
	}

	that.config.Difficulty = value
}

// ApplyPersonality overwrites difficulty and thinking time from a named
// preset. Unknown names leave the configuration untouched.
func (that *Selector) ApplyPersonality(name string) {
	preset, ok := Personalities[name]
	if !ok {
		return
	}

	that.config.Difficulty = preset.Difficulty
	that.config.ThinkingTime = preset.ThinkingTime
}

func (that *Selector) Mark() string {
	return that.config.Mark
}

func (that *Selector) Difficulty() float64 {
	return that.config.Difficulty
}

func (that *Selector) ThinkingTime() time.Duration {
	return that.config.ThinkingTime
}

// Stats returns the current counters plus per-category percentages.
func (that *Selector) Stats() Snapshot {
	snapshot := Snapshot{Stats: that.stats}

	if that.stats.TotalMoves == 0 {
		return snapshot
	}

	total := float64(that.stats.TotalMoves)
	snapshot.OptimalPercent = float64(that.stats.OptimalMoves) / total * 100
	snapshot.StrategicPercent = float64(that.stats.StrategicMoves) / total * 100
	snapshot.RandomPercent = float64(that.stats.RandomMoves) / total * 100

	return snapshot
}

// ResetStats zeroes all counters.
func (that *Selector) ResetStats() {
	that.stats = Stats{}
}

func (that *Selector) record(pos int, kind moveKind) int {
	that.stats.TotalMoves++

	switch kind {
	case kindOptimal:
		that.stats.OptimalMoves++
	case kindStrategic:
		that.stats.StrategicMoves++
	case kindRandom:
		that.stats.RandomMoves++
	}

	return pos
}
