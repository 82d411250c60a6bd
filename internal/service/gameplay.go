package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/zeroonegames/zeroone-backend/internal/entity"
)

type GamePlayService interface {
	GetOrCreateGame(ctx context.Context, player *entity.Player, personality string) (*entity.Game, error)
	MakeTurn(ctx context.Context, playerID string, cell int) (*entity.Game, error)
	RestartGame(ctx context.Context, playerID string) (*entity.Game, error)
	CleanupGame(ctx context.Context, game *entity.Game)
}

type gamePlayService struct {
	logger *slog.Logger

	playerService PlayerService
	gameService   GameService
	botService    BotService
}

func NewGamePlayService(logger *slog.Logger, playerService PlayerService, gameService GameService, botService BotService) GamePlayService {
	return &gamePlayService{
		logger:        logger,
		playerService: playerService,
		gameService:   gameService,
		botService:    botService,
	}
}

// GetOrCreateGame returns the player's current session, or starts a new one
// against the engine. When the bot is dealt the opening mark it moves first.
func (that *gamePlayService) GetOrCreateGame(ctx context.Context, player *entity.Player, personality string) (*entity.Game, error) {
	if player.GameID != "" {
		game, err := that.gameService.GetGameByID(ctx, player.GameID)
		if err != nil {
			return nil, fmt.Errorf("failed to get game by id: %w", err)
		}

		return game, nil
	}

	game, err := that.gameService.CreateGame(ctx, player, personality)
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	that.botService.Register(game)

	if err = that.letBotMoveIfItsTurn(ctx, game); err != nil {
		return nil, err
	}

	if err = that.gameService.UpdateGame(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	return game, nil
}

func (that *gamePlayService) MakeTurn(ctx context.Context, playerID string, cell int) (*entity.Game, error) {
	player, err := that.playerService.GetPlayerByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get player by id: %w", err)
	}

	game, err := that.gameService.GetGameByID(ctx, player.GameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	if err = game.ConfirmOngoingState(); err != nil {
		return game, err
	}

	if err = game.MakeTurn(player.Mark, cell); err != nil {
		return game, fmt.Errorf("failed to make turn: %w", err)
	}

	if err = that.letBotMoveIfItsTurn(ctx, game); err != nil {
		return nil, err
	}

	if err = that.gameService.UpdateGame(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	return game, nil
}

// RestartGame begins the next round of the session, keeping the score tally.
func (that *gamePlayService) RestartGame(ctx context.Context, playerID string) (*entity.Game, error) {
	player, err := that.playerService.GetPlayerByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get player by id: %w", err)
	}

	game, err := that.gameService.GetGameByID(ctx, player.GameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	game.Restart()

	if err = that.letBotMoveIfItsTurn(ctx, game); err != nil {
		return nil, err
	}

	if err = that.gameService.UpdateGame(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	return game, nil
}

// CleanupGame tears a session down: the stored game goes away, players are
// released and the bot's selector is dropped. Best effort, errors are logged.
func (that *gamePlayService) CleanupGame(ctx context.Context, game *entity.Game) {
	log := that.logger.With("method", "CleanupGame", "gameID", game.ID)

	if err := that.gameService.DeleteGame(ctx, game.ID); err != nil {
		log.Error("failed to delete game", "error", err)
	}

	that.botService.Forget(game.ID)

	for _, player := range game.Players {
		if player.IsBot() {
			continue
		}

		player.Mark = ""
		player.GameID = ""

		if err := that.playerService.UpdatePlayer(ctx, player); err != nil {
			log.Error("failed to release player", "error", err)
		}
	}

	log.Info("game session cleaned up")
}

// letBotMoveIfItsTurn waits out the configured thinking time and plays the
// bot's move. The delay is presentation pacing only; the search itself
// finishes well within it.
func (that *gamePlayService) letBotMoveIfItsTurn(ctx context.Context, game *entity.Game) error {
	botPlayer := game.BotPlayer()
	if botPlayer == nil {
		return ErrBotNotFound
	}

	if !game.IsOngoing() || game.Turn != botPlayer.Mark {
		return nil
	}

	if delay := that.botService.ThinkingTime(game.ID); delay > 0 {
		select {
		case <-ctx.Done():
			return fmt.Errorf("bot move canceled: %w", ctx.Err())
		case <-time.After(delay):
		}
	}

	if err := that.botService.MakeTurn(game); err != nil {
		return fmt.Errorf("bot failed to make turn: %w", err)
	}

	return nil
}
