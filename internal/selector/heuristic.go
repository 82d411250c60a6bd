package selector

import "github.com/zeroonegames/zeroone-backend/internal/engine"

// heuristicMove is the lighter-weight path used when minimax is skipped:
// take an immediate win, block an immediate opponent win, then fall back to
// positional priority (center, random corner, random edge). The final
// first-available branch is the only one classified as a random move.
func (that *Selector) heuristicMove(board engine.Board, available []int) (int, moveKind) {
	if pos := winningPosition(board, that.config.Mark, available); pos != NoMove {
		return pos, kindStrategic
	}

	if pos := winningPosition(board, that.config.OpponentMark, available); pos != NoMove {
		return pos, kindStrategic
	}

	if board.IsLegal(centerPos) {
		return centerPos, kindStrategic
	}

	if pos := that.randomAmong(board, cornerPositions); pos != NoMove {
		return pos, kindStrategic
	}

	if pos := that.randomAmong(board, edgePositions); pos != NoMove {
		return pos, kindStrategic
	}

	return available[0], kindRandom
}

// winningPosition returns an empty position that completes a win line for
// mark this turn, or NoMove.
func winningPosition(board engine.Board, mark string, available []int) int {
	for _, pos := range available {
		next, err := board.Apply(pos, mark)
		if err != nil {
			continue
		}

		if verdict := next.Evaluate(); verdict.Status == engine.StatusWon && verdict.Winner == mark {
			return pos
		}
	}

	return NoMove
}

func (that *Selector) randomAmong(board engine.Board, candidates [4]int) int {
	open := make([]int, 0, len(candidates))
	for _, pos := range candidates {
		if board.IsLegal(pos) {
			open = append(open, pos)
		}
	}

	if len(open) == 0 {
		return NoMove
	}

	return open[that.rng.IntN(len(open))]
}
