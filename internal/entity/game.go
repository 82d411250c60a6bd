package entity

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/zeroonegames/zeroone-backend/internal/apperror"
	"github.com/zeroonegames/zeroone-backend/internal/engine"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"
	StatusWaiting  = "waiting"

	PlayerZero = engine.MarkZero
	PlayerOne  = engine.MarkOne
	PlayerTie  = "-"
)

var (
	ErrInvalidCell       = errors.New("invalid cell index")
	ErrUnknownGameStatus = errors.New("unknown game status")
)

// Scores is the in-memory session tally. It survives round restarts and dies
// with the game session.
type Scores struct {
	Zero int `json:"zero"`
	One  int `json:"one"`
	Ties int `json:"ties"`
}

// Game is one play session against the engine: the current round's board plus
// the running tally across rounds.
type Game struct {
	ID          string       `json:"id"`
	Board       engine.Board `json:"board"`
	Turn        string       `json:"turn"`
	Winner      string       `json:"winner"`
	Status      string       `json:"status"`
	Scores      Scores       `json:"scores"`
	Personality string       `json:"personality,omitempty"`
	Players     []*Player    `json:"players,omitempty"`
}

func NewGame(id string) *Game {
	return &Game{
		ID:     id,
		Board:  engine.Board{},
		Turn:   PlayerZero,
		Status: StatusWaiting,
	}
}

// MakeTurn places playerMark on cell and advances the round state.
func (that *Game) MakeTurn(playerMark string, cell int) error {
	if that.IsFinished() {
		return apperror.ErrGameFinished
	}

	if cell < 0 || cell >= len(that.Board) {
		return fmt.Errorf("%w: cell %d", ErrInvalidCell, cell)
	}

	if that.Turn != playerMark {
		return apperror.ErrNotYourTurn
	}

	if !that.Board.IsLegal(cell) {
		return apperror.ErrCellOccupied
	}

	board, err := that.Board.Apply(cell, playerMark)
	if err != nil {
		return fmt.Errorf("failed to apply move: %w", err)
	}

	that.Board = board
	that.Turn = engine.Opponent(playerMark)
	that.UpdateGameState()

	return nil
}

// UpdateGameState re-evaluates the board and moves the round to finished when
// it is terminal, recording the result in the session tally exactly once.
func (that *Game) UpdateGameState() {
	if that.IsFinished() {
		return
	}

	switch verdict := that.Board.Evaluate(); verdict.Status {
	case engine.StatusWon:
		that.Winner = verdict.Winner
		that.Status = StatusFinished
		that.Turn = ""
		that.recordResult(verdict.Winner)
	case engine.StatusDraw:
		that.Winner = PlayerTie
		that.Status = StatusFinished
		that.Turn = ""
		that.recordResult(PlayerTie)
	default:
		that.Status = StatusOngoing
	}
}

// Restart begins a fresh round in the same session: empty board, tally kept.
func (that *Game) Restart() {
	that.Board = engine.Board{}
	that.Winner = ""
	that.Turn = PlayerZero
	that.Status = StatusOngoing
}

func (that *Game) recordResult(winner string) {
	switch winner {
	case PlayerZero:
		that.Scores.Zero++
	case PlayerOne:
		that.Scores.One++
	case PlayerTie:
		that.Scores.Ties++
	}
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *Game) IsWaiting() bool {
	return that.Status == StatusWaiting
}

func (that *Game) ConfirmOngoingState() error {
	switch {
	case that.IsWaiting():
		return apperror.ErrGameIsNotStarted
	case that.IsFinished():
		return apperror.ErrGameFinished
	case that.IsOngoing():
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnknownGameStatus, that.Status)
	}
}

// BotPlayer returns the automated player of the session, or nil.
func (that *Game) BotPlayer() *Player {
	for _, player := range that.Players {
		if player.IsBot() {
			return player
		}
	}

	return nil
}

// GetRandomMarks deals the two marks in random order.
func (that *Game) GetRandomMarks() (string, string) {
	if rand.IntN(2) == 0 {
		return PlayerZero, PlayerOne
	}

	return PlayerOne, PlayerZero
}
