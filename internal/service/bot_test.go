package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeroonegames/zeroone-backend/internal/engine"
	"github.com/zeroonegames/zeroone-backend/internal/entity"
	"github.com/zeroonegames/zeroone-backend/internal/selector"
)

func newBotGame(botMark string) *entity.Game {
	game := entity.NewGame("A1B2C3")
	game.Status = entity.StatusOngoing
	game.Personality = "aggressive"
	game.Players = []*entity.Player{
		{ID: "human", Mark: engine.Opponent(botMark), GameID: game.ID},
		{ID: "bot-1", Mark: botMark, GameID: game.ID, Bot: true},
	}

	return game
}

func TestBotService_MakeTurn(t *testing.T) {
	t.Run("Bot completes its own win line", func(t *testing.T) {
		// Given: a game where the bot ("0") can win at cell 2
		botService := NewBotService("aggressive")
		game := newBotGame(entity.PlayerZero)
		game.Board = engine.Board{
			entity.PlayerZero, entity.PlayerZero, engine.EmptyCell,
			entity.PlayerOne, entity.PlayerOne, engine.EmptyCell,
			engine.EmptyCell, engine.EmptyCell, engine.EmptyCell,
		}
		game.Turn = entity.PlayerZero

		// When: the bot takes its turn
		err := botService.MakeTurn(game)

		// Then: the winning cell is played and the round finishes
		require.NoError(t, err)
		assert.Equal(t, entity.PlayerZero, game.Board[2])
		assert.True(t, game.IsFinished())
		assert.Equal(t, entity.PlayerZero, game.Winner)
	})

	t.Run("Returns ErrBotNotFound without an automated player", func(t *testing.T) {
		botService := NewBotService("balanced")
		game := entity.NewGame("A1B2C3")
		game.Players = []*entity.Player{{ID: "human", Mark: entity.PlayerZero}}

		err := botService.MakeTurn(game)

		require.ErrorIs(t, err, ErrBotNotFound)
	})

	t.Run("Returns ErrNoAvailableMoves on a full board", func(t *testing.T) {
		botService := NewBotService("balanced")
		game := newBotGame(entity.PlayerZero)
		game.Board = engine.Board{
			entity.PlayerZero, entity.PlayerOne, entity.PlayerZero,
			entity.PlayerOne, entity.PlayerZero, entity.PlayerOne,
			entity.PlayerOne, entity.PlayerZero, entity.PlayerOne,
		}

		err := botService.MakeTurn(game)

		require.ErrorIs(t, err, ErrNoAvailableMoves)
	})
}

func TestBotService_StatsAndTuning(t *testing.T) {
	t.Run("StatsFor reports moves made by the bot", func(t *testing.T) {
		// Given: a bot that has made one move
		botService := NewBotService("aggressive")
		game := newBotGame(entity.PlayerZero)
		game.Turn = entity.PlayerZero

		require.NoError(t, botService.MakeTurn(game))

		// When: reading the stats for the game
		stats, ok := botService.StatsFor(game.ID)

		// Then: one decision was recorded
		require.True(t, ok)
		assert.Equal(t, 1, stats.TotalMoves)
	})

	t.Run("StatsFor misses unknown games", func(t *testing.T) {
		botService := NewBotService("balanced")

		_, ok := botService.StatsFor("nope")

		assert.False(t, ok)
	})

	t.Run("ResetStats zeroes the counters", func(t *testing.T) {
		botService := NewBotService("aggressive")
		game := newBotGame(entity.PlayerZero)
		game.Turn = entity.PlayerZero
		require.NoError(t, botService.MakeTurn(game))

		botService.ResetStats(game.ID)

		stats, ok := botService.StatsFor(game.ID)
		require.True(t, ok)
		assert.Equal(t, 0, stats.TotalMoves)
	})

	t.Run("Tuning before the first bot move is kept", func(t *testing.T) {
		// Given: a registered session where the human holds the opening mark,
		// so the bot has not moved yet
		bots := NewBotService("aggressive")
		game := newBotGame(entity.PlayerOne)
		game.Turn = entity.PlayerZero
		bots.Register(game)

		// When: tuning with a preset and a difficulty override before any move
		difficulty := 0.1
		bots.Tune(game.ID, "beginner", &difficulty)

		// Then: both the preset and the override survive to the first move
		assert.Equal(t, selector.Personalities["beginner"].ThinkingTime, bots.ThinkingTime(game.ID))

		impl, ok := bots.(*botService)
		require.True(t, ok)
		require.Contains(t, impl.selectors, game.ID)
		assert.Equal(t, 0.1, impl.selectors[game.ID].Difficulty())
	})

	t.Run("Register without a bot player is a no-op", func(t *testing.T) {
		botService := NewBotService("balanced")
		game := entity.NewGame("A1B2C3")
		game.Players = []*entity.Player{{ID: "human", Mark: entity.PlayerZero}}

		botService.Register(game)

		_, ok := botService.StatsFor(game.ID)
		assert.False(t, ok)
	})

	t.Run("Tune is a no-op for unknown games", func(t *testing.T) {
		botService := NewBotService("balanced")

		botService.Tune("nope", "aggressive", nil)
	})

	t.Run("Tune overrides difficulty after a preset", func(t *testing.T) {
		// Given: a registered selector
		botService := NewBotService("aggressive")
		game := newBotGame(entity.PlayerZero)
		game.Turn = entity.PlayerZero
		require.NoError(t, botService.MakeTurn(game))

		// When: tuning with a preset and a difficulty override
		difficulty := 0.5
		botService.Tune(game.ID, "beginner", &difficulty)

		// Then: the thinking time follows the preset
		assert.Equal(t, selector.Personalities["beginner"].ThinkingTime, botService.ThinkingTime(game.ID))
	})

	t.Run("ThinkingTime is zero for unknown games", func(t *testing.T) {
		botService := NewBotService("balanced")

		assert.Equal(t, time.Duration(0), botService.ThinkingTime("nope"))
	})

	t.Run("Forget drops the game's selector", func(t *testing.T) {
		botService := NewBotService("aggressive")
		game := newBotGame(entity.PlayerZero)
		game.Turn = entity.PlayerZero
		require.NoError(t, botService.MakeTurn(game))

		botService.Forget(game.ID)

		_, ok := botService.StatsFor(game.ID)
		assert.False(t, ok)
	})
}
