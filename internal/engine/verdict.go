package engine

const (
	StatusInProgress = "in_progress"
	StatusWon        = "won"
	StatusDraw       = "draw"
)

// Verdict is the result of evaluating a board. Line is only meaningful when
// Status is StatusWon.
type Verdict struct {
	Status string
	Winner string
	Line   [3]int
}

// Evaluate checks the 8 win lines in order (rows, columns, diagonals). In a
// valid sequential game at most one line can be complete, so the order only
// matters for which triple is reported.
func (that Board) Evaluate() Verdict {
	for _, line := range WinLines {
		a, b, c := that[line[0]], that[line[1]], that[line[2]]
		if a != EmptyCell && a == b && b == c {
			return Verdict{Status: StatusWon, Winner: a, Line: line}
		}
	}

	if that.IsFull() {
		return Verdict{Status: StatusDraw}
	}

	return Verdict{Status: StatusInProgress}
}

// Score rates the board from perspective's point of view: 1 for a win, -1 for
// a loss, 0 for a draw or a game still in progress.
func (that Board) Score(perspective string) int {
	verdict := that.Evaluate()
	if verdict.Status != StatusWon {
		return 0
	}

	if verdict.Winner == perspective {
		return 1
	}

	return -1
}
