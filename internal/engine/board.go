package engine

import "errors"

const (
	MarkZero = "0"
	MarkOne  = "1"

	EmptyCell = ""

	boardSize = 9
)

var ErrIllegalMove = errors.New("illegal move")

// WinLines are the 8 winning triples: 3 rows, 3 columns, 2 diagonals.
var WinLines = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Board is a 3x3 grid in row-major order, indexed 0-8. It is a value type:
// Apply returns a new board and never mutates the receiver.
type Board [boardSize]string

// Opponent returns the other mark.
func Opponent(mark string) string {
	if mark == MarkZero {
		return MarkOne
	}
	return MarkZero
}

// AvailablePositions returns every empty cell index in ascending order.
func (that Board) AvailablePositions() []int {
	positions := make([]int, 0, boardSize)
	for i, cell := range that {
		if cell == EmptyCell {
			positions = append(positions, i)
		}
	}

	return positions
}

// IsLegal reports whether pos is in range and empty.
func (that Board) IsLegal(pos int) bool {
	return pos >= 0 && pos < boardSize && that[pos] == EmptyCell
}

// IsFull reports whether no empty cell remains.
func (that Board) IsFull() bool {
	for _, cell := range that {
		if cell == EmptyCell {
			return false
		}
	}

	return true
}

// Apply returns a new board with pos set to mark. It fails with ErrIllegalMove
// when pos is out of range or already occupied, leaving the board untouched.
func (that Board) Apply(pos int, mark string) (Board, error) {
	if !that.IsLegal(pos) {
		return that, ErrIllegalMove
	}

	that[pos] = mark

	return that, nil
}
