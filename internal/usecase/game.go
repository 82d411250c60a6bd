package usecase

import (
	"context"
	"fmt"

	"github.com/zeroonegames/zeroone-backend/internal/entity"
	"github.com/zeroonegames/zeroone-backend/internal/selector"
	"github.com/zeroonegames/zeroone-backend/internal/service"
)

type GameUseCase interface {
	GetOrCreatePlayer(ctx context.Context, playerID string) (*entity.Player, error)

	StartGame(ctx context.Context, playerID, personality string) (*entity.Game, error)
	MakeTurn(ctx context.Context, playerID string, cell int) (*entity.Game, error)
	RestartGame(ctx context.Context, playerID string) (*entity.Game, error)
	LeaveGame(ctx context.Context, playerID string) error

	GameStats(ctx context.Context, playerID string) (*entity.Game, selector.Snapshot, error)
	TuneBot(ctx context.Context, playerID, personality string, difficulty *float64) (*entity.Game, error)
}

type gameUseCase struct {
	playerService   service.PlayerService
	gameService     service.GameService
	gamePlayService service.GamePlayService
	botService      service.BotService
}

func NewGameUseCase(
	playerService service.PlayerService,
	gameService service.GameService,
	gamePlayService service.GamePlayService,
	botService service.BotService,
) GameUseCase {
	return &gameUseCase{
		playerService:   playerService,
		gameService:     gameService,
		gamePlayService: gamePlayService,
		botService:      botService,
	}
}

func (that *gameUseCase) GetOrCreatePlayer(ctx context.Context, playerID string) (*entity.Player, error) {
	if playerID == "" {
		player, err := that.playerService.CreatePlayer(ctx)
		if err != nil {
			return nil, fmt.Errorf("could not create player: %w", err)
		}

		return player, nil
	}

	player, err := that.playerService.GetPlayerByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get player by id: %w", err)
	}

	return player, nil
}

func (that *gameUseCase) StartGame(ctx context.Context, playerID, personality string) (*entity.Game, error) {
	player, err := that.playerService.GetPlayerByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get player by id: %w", err)
	}

	game, err := that.gamePlayService.GetOrCreateGame(ctx, player, personality)
	if err != nil {
		return nil, fmt.Errorf("failed to get or create game: %w", err)
	}

	return game, nil
}

func (that *gameUseCase) MakeTurn(ctx context.Context, playerID string, cell int) (*entity.Game, error) {
	game, err := that.gamePlayService.MakeTurn(ctx, playerID, cell)
	if err != nil {
		return game, fmt.Errorf("failed to make turn: %w", err)
	}

	return game, nil
}

func (that *gameUseCase) RestartGame(ctx context.Context, playerID string) (*entity.Game, error) {
	game, err := that.gamePlayService.RestartGame(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to restart game: %w", err)
	}

	return game, nil
}

func (that *gameUseCase) LeaveGame(ctx context.Context, playerID string) error {
	player, err := that.playerService.GetPlayerByID(ctx, playerID)
	if err != nil {
		return fmt.Errorf("failed to get player by id: %w", err)
	}

	if player.GameID == "" {
		return nil
	}

	game, err := that.gameService.GetGameByID(ctx, player.GameID)
	if err != nil {
		return fmt.Errorf("failed to get game by id: %w", err)
	}

	that.gamePlayService.CleanupGame(ctx, game)

	return nil
}

// GameStats returns the session and the bot's move statistics for it.
func (that *gameUseCase) GameStats(ctx context.Context, playerID string) (*entity.Game, selector.Snapshot, error) {
	player, err := that.playerService.GetPlayerByID(ctx, playerID)
	if err != nil {
		return nil, selector.Snapshot{}, fmt.Errorf("failed to get player by id: %w", err)
	}

	game, err := that.gameService.GetGameByID(ctx, player.GameID)
	if err != nil {
		return nil, selector.Snapshot{}, fmt.Errorf("failed to get game by id: %w", err)
	}

	stats, _ := that.botService.StatsFor(game.ID)

	return game, stats, nil
}

// TuneBot applies a personality preset and an optional difficulty override to
// the bot of the player's session.
func (that *gameUseCase) TuneBot(ctx context.Context, playerID, personality string, difficulty *float64) (*entity.Game, error) {
	player, err := that.playerService.GetPlayerByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get player by id: %w", err)
	}

	game, err := that.gameService.GetGameByID(ctx, player.GameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	that.botService.Tune(game.ID, personality, difficulty)

	if _, ok := selector.Personalities[personality]; ok {
		game.Personality = personality

		if err = that.gameService.UpdateGame(ctx, game); err != nil {
			return nil, fmt.Errorf("failed to update game: %w", err)
		}
	}

	return game, nil
}
