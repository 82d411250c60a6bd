package selector

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeroonegames/zeroone-backend/internal/engine"
)

// stubSource feeds a fixed cycle of values to the selector's random source,
// so probabilistic branches can be forced from tests. A zero value drives
// Float64 to 0 and IntN to 0; the max value drives Float64 just under 1.
type stubSource struct {
	vals []uint64
	i    int
}

func (that *stubSource) Uint64() uint64 {
	v := that.vals[that.i%len(that.vals)]
	that.i++

	return v
}

func forced(mark string, vals ...uint64) *Selector {
	return NewWithRand(mark, rand.New(&stubSource{vals: vals}))
}

func TestSelector_OpeningMove(t *testing.T) {
	t.Run("Center branch returns index 4", func(t *testing.T) {
		// Given: a selector whose random source forces the 0.7 branch
		sel := forced(engine.MarkZero, 0)

		// When: choosing the opening move on an empty board
		pos := sel.ChooseMove(engine.Board{})

		// Then: the center is taken
		assert.Equal(t, 4, pos)
	})

	t.Run("Corner branch returns one of the four corners", func(t *testing.T) {
		// Given: a selector whose random source skips the center branch
		sel := forced(engine.MarkZero, math.MaxUint64, 0)

		// When: choosing the opening move on an empty board
		pos := sel.ChooseMove(engine.Board{})

		// Then: a corner is taken
		assert.Contains(t, []int{0, 2, 6, 8}, pos)
	})

	t.Run("Opening is counted as a strategic move", func(t *testing.T) {
		sel := forced(engine.MarkZero, 0)
		sel.ChooseMove(engine.Board{})

		stats := sel.Stats()
		assert.Equal(t, 1, stats.TotalMoves)
		assert.Equal(t, 1, stats.StrategicMoves)
	})
}

func TestSelector_SetDifficulty(t *testing.T) {
	sel := New(engine.MarkZero)

	t.Run("Values below zero clamp to 0", func(t *testing.T) {
		sel.SetDifficulty(-0.5)
		assert.Equal(t, 0.0, sel.Difficulty())
	})

	t.Run("Values above one clamp to 1", func(t *testing.T) {
		sel.SetDifficulty(1.7)
		assert.Equal(t, 1.0, sel.Difficulty())
	})

	t.Run("In-range values are stored as is", func(t *testing.T) {
		sel.SetDifficulty(0.42)
		assert.Equal(t, 0.42, sel.Difficulty())
	})
}

func TestSelector_ApplyPersonality(t *testing.T) {
	t.Run("Known preset overwrites difficulty and thinking time", func(t *testing.T) {
		sel := New(engine.MarkZero)

		sel.ApplyPersonality("beginner")

		preset := Personalities["beginner"]
		assert.Equal(t, preset.Difficulty, sel.Difficulty())
		assert.Equal(t, preset.ThinkingTime, sel.ThinkingTime())
	})

	t.Run("Unknown preset is a no-op", func(t *testing.T) {
		sel := New(engine.MarkZero)
		sel.SetDifficulty(0.5)

		sel.ApplyPersonality("ruthless")

		assert.Equal(t, 0.5, sel.Difficulty())
	})
}

func TestSelector_HeuristicPath(t *testing.T) {
	t.Run("Completes its own win line", func(t *testing.T) {
		// Given: "0" holds cells 0 and 1, everything else empty
		sel := forced(engine.MarkZero, 0)
		sel.SetDifficulty(0) // always heuristic in the mid-game
		board := engine.Board{engine.MarkZero, engine.MarkZero}

		// When: choosing a move
		pos := sel.ChooseMove(board)

		// Then: the winning cell is taken
		assert.Equal(t, 2, pos)
	})

	t.Run("Blocks the opponent's win line", func(t *testing.T) {
		// Given: "1" threatens to complete the first row
		sel := forced(engine.MarkZero, 0)
		sel.SetDifficulty(0)
		board := engine.Board{engine.MarkOne, engine.MarkOne}

		// When: choosing a move as "0"
		pos := sel.ChooseMove(board)

		// Then: the threat is occupied
		assert.Equal(t, 2, pos)
	})

	t.Run("Takes the center when no win or block exists", func(t *testing.T) {
		sel := forced(engine.MarkZero, 0)
		sel.SetDifficulty(0)
		board := engine.Board{engine.MarkOne}

		pos := sel.ChooseMove(board)

		assert.Equal(t, 4, pos)
	})

	t.Run("Takes a corner when the center is occupied", func(t *testing.T) {
		sel := forced(engine.MarkZero, 0)
		sel.SetDifficulty(0)
		board := engine.Board{}
		board[4] = engine.MarkOne

		pos := sel.ChooseMove(board)

		assert.Contains(t, []int{0, 2, 6, 8}, pos)
	})

	t.Run("Positional picks only come from open candidates", func(t *testing.T) {
		// Exercised directly: ChooseMove switches to minimax before boards
		// with all corners taken can occur.
		sel := forced(engine.MarkZero, 0)
		board := engine.Board{}
		board[1] = engine.MarkOne
		board[3] = engine.MarkZero

		pos := sel.randomAmong(board, edgePositions)
		assert.Contains(t, []int{5, 7}, pos)

		for _, corner := range cornerPositions {
			board[corner] = engine.MarkOne
		}
		assert.Equal(t, NoMove, sel.randomAmong(board, cornerPositions))
	})
}

func TestSelector_MinimaxPath(t *testing.T) {
	t.Run("Takes an immediate win in the end-game", func(t *testing.T) {
		// Given: "0" can complete the first row, five cells remain
		sel := New(engine.MarkZero)
		board := engine.Board{
			engine.MarkZero, engine.MarkZero, engine.EmptyCell,
			engine.MarkOne, engine.MarkOne, engine.EmptyCell,
			engine.EmptyCell, engine.EmptyCell, engine.EmptyCell,
		}

		// When: choosing a move (end-game always searches)
		pos := sel.ChooseMove(board)

		// Then: the immediate win is preferred over anything else
		assert.Equal(t, 2, pos)
	})

	t.Run("Blocks the immediate threat even in a lost position", func(t *testing.T) {
		// Given: "1" threatens the first row; the position is lost for "0"
		// either way, but every other move loses two plies sooner
		sel := New(engine.MarkZero)
		sel.SetDifficulty(1)
		board := engine.Board{
			engine.MarkOne, engine.MarkOne, engine.EmptyCell,
			engine.EmptyCell, engine.MarkZero, engine.EmptyCell,
			engine.EmptyCell, engine.EmptyCell, engine.MarkOne,
		}

		// When: choosing a move on the deterministic minimax path
		pos := sel.ChooseMove(board)

		// Then: the depth-weighted scores prefer the block
		assert.Equal(t, 2, pos)
	})

	t.Run("Blocks a threat when the block keeps the game safe", func(t *testing.T) {
		// Given: "1" threatens the first row while "0" holds the center
		sel := New(engine.MarkZero)
		sel.SetDifficulty(1)
		board := engine.Board{
			engine.MarkOne, engine.MarkOne, engine.EmptyCell,
			engine.EmptyCell, engine.MarkZero, engine.EmptyCell,
			engine.EmptyCell, engine.EmptyCell, engine.EmptyCell,
		}

		// When: choosing a move with six cells open
		pos := sel.ChooseMove(board)

		// Then: the block is the only move that does not lose on the spot
		assert.Equal(t, 2, pos)
	})

	t.Run("Minimax moves are counted as optimal", func(t *testing.T) {
		sel := New(engine.MarkZero)
		sel.SetDifficulty(1)
		board := engine.Board{engine.MarkOne, engine.MarkOne}

		sel.ChooseMove(board)

		stats := sel.Stats()
		assert.Equal(t, 1, stats.OptimalMoves)
	})
}

func TestSelector_SelfPlayAlwaysDraws(t *testing.T) {
	// Two full-strength selectors playing each other must always reach the
	// classic tic-tac-toe result: a draw, whatever the opening.
	for game := 0; game < 25; game++ {
		zero := New(engine.MarkZero)
		zero.SetDifficulty(1)
		one := New(engine.MarkOne)
		one.SetDifficulty(1)

		board := engine.Board{}
		current := zero

		for board.Evaluate().Status == engine.StatusInProgress {
			pos := current.ChooseMove(board)
			require.NotEqual(t, NoMove, pos)

			next, err := board.Apply(pos, current.Mark())
			require.NoError(t, err)
			board = next

			if current == zero {
				current = one
			} else {
				current = zero
			}
		}

		require.Equal(t, engine.StatusDraw, board.Evaluate().Status, "game %d ended %+v", game, board)
	}
}

func TestSelector_NeverLosesToRandomOpponent(t *testing.T) {
	// At difficulty 1 every non-opening move is full minimax, so a uniformly
	// random opponent can at best draw, whoever starts.
	for game := 0; game < 50; game++ {
		sel := New(engine.MarkZero)
		sel.SetDifficulty(1)

		board := engine.Board{}
		selectorTurn := game%2 == 0

		for board.Evaluate().Status == engine.StatusInProgress {
			var pos int
			mark := engine.MarkOne

			if selectorTurn {
				pos = sel.ChooseMove(board)
				mark = engine.MarkZero
			} else {
				available := board.AvailablePositions()
				pos = available[rand.IntN(len(available))]
			}

			next, err := board.Apply(pos, mark)
			require.NoError(t, err)
			board = next
			selectorTurn = !selectorTurn
		}

		verdict := board.Evaluate()
		if verdict.Status == engine.StatusWon {
			require.Equal(t, engine.MarkZero, verdict.Winner, "game %d lost to a random opponent: %+v", game, board)
		}
	}
}

func TestSelector_FullBoard(t *testing.T) {
	// Given: a board with no empty cell
	sel := New(engine.MarkZero)
	board := engine.Board{
		engine.MarkZero, engine.MarkOne, engine.MarkZero,
		engine.MarkOne, engine.MarkZero, engine.MarkOne,
		engine.MarkOne, engine.MarkZero, engine.MarkOne,
	}

	// When: asking for a move anyway
	pos := sel.ChooseMove(board)

	// Then: the sentinel is returned and nothing is counted
	assert.Equal(t, NoMove, pos)
	assert.Equal(t, 0, sel.Stats().TotalMoves)
}

func TestSelector_Stats(t *testing.T) {
	t.Run("Counters add up across decisions", func(t *testing.T) {
		// Given: a selector asked for ten opening moves
		sel := New(engine.MarkZero)
		for i := 0; i < 10; i++ {
			sel.ChooseMove(engine.Board{})
		}

		// When: reading the snapshot
		stats := sel.Stats()

		// Then: totals match and categories account for every decision
		assert.Equal(t, 10, stats.TotalMoves)
		assert.Equal(t, 10, stats.OptimalMoves+stats.StrategicMoves+stats.RandomMoves)
		assert.Equal(t, 0, stats.RandomMoves)
		assert.InDelta(t, 100.0, stats.OptimalPercent+stats.StrategicPercent+stats.RandomPercent, 1e-9)
	})

	t.Run("Percentages are zero before any move", func(t *testing.T) {
		stats := New(engine.MarkZero).Stats()

		assert.Equal(t, 0, stats.TotalMoves)
		assert.Equal(t, 0.0, stats.OptimalPercent)
		assert.Equal(t, 0.0, stats.StrategicPercent)
		assert.Equal(t, 0.0, stats.RandomPercent)
	})

	t.Run("ResetStats zeroes all counters", func(t *testing.T) {
		sel := New(engine.MarkZero)
		sel.ChooseMove(engine.Board{})

		sel.ResetStats()

		assert.Equal(t, Stats{}, sel.Stats().Stats)
	})
}
