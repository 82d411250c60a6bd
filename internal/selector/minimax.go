package selector

import (
	"math"

	"github.com/zeroonegames/zeroone-backend/internal/engine"
)

// scoreBase weights leaf scores by depth: a win at depth d scores
// score * (scoreBase - d), so earlier wins and later losses are preferred.
// Depth counts from the top of each search invocation, not from game start.
const scoreBase = 10

// bestMove tries every available position for the automated mark and keeps
// the first one with the strictly greatest minimax score.
func (that *Selector) bestMove(board engine.Board, available []int) int {
	bestScore := math.MinInt
	bestPos := NoMove

	for _, pos := range available {
		next, err := board.Apply(pos, that.config.Mark)
		if err != nil {
			continue
		}

		score := that.minimax(next, 1, false, math.MinInt, math.MaxInt)
		if score > bestScore {
			bestScore = score
			bestPos = pos
		}
	}

	return bestPos
}

// minimax searches the game tree with alpha-beta pruning, alternating
// perspective at each ply. The board passed in already contains the move of
// the previous ply.
func (that *Selector) minimax(board engine.Board, depth int, maximizing bool, alpha, beta int) int {
	verdict := board.Evaluate()
	if verdict.Status != engine.StatusInProgress || depth >= that.config.MaxDepth {
		return board.Score(that.config.Mark) * (scoreBase - depth)
	}

	if maximizing {
		best := math.MinInt

		for _, pos := range board.AvailablePositions() {
			next, err := board.Apply(pos, that.config.Mark)
			if err != nil {
				continue
			}

			value := that.minimax(next, depth+1, false, alpha, beta)
			best = max(best, value)
			alpha = max(alpha, value)

			if beta <= alpha {
				break
			}
		}

		return best
	}

	worst := math.MaxInt

	for _, pos := range board.AvailablePositions() {
		next, err := board.Apply(pos, that.config.OpponentMark)
		if err != nil {
			continue
		}

		value := that.minimax(next, depth+1, true, alpha, beta)
		worst = min(worst, value)
		beta = min(beta, value)

		if beta <= alpha {
			break
		}
	}

	return worst
}
