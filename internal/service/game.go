package service

import (
	"context"
	"fmt"

	"github.com/zeroonegames/zeroone-backend/internal/entity"
	"github.com/zeroonegames/zeroone-backend/internal/pkg"
	"github.com/zeroonegames/zeroone-backend/internal/repository"
)

type GameService interface {
	CreateGame(ctx context.Context, player *entity.Player, personality string) (*entity.Game, error)
	GetGameByID(ctx context.Context, id string) (*entity.Game, error)
	UpdateGame(ctx context.Context, game *entity.Game) error
	DeleteGame(ctx context.Context, id string) error
}

type gameService struct {
	gameRepo   repository.GameRepository
	playerRepo repository.PlayerRepository
}

func NewGameService(gameRepo repository.GameRepository, playerRepo repository.PlayerRepository) GameService {
	return &gameService{
		gameRepo:   gameRepo,
		playerRepo: playerRepo,
	}
}

// CreateGame starts a new session for player against the engine. Marks are
// dealt randomly, so the bot opens roughly half the time.
func (that *gameService) CreateGame(ctx context.Context, player *entity.Player, personality string) (*entity.Game, error) {
	game := entity.NewGame(pkg.GenerateGameID())
	game.Personality = personality

	humanMark, botMark := game.GetRandomMarks()

	player.GameID = game.ID
	player.Mark = humanMark

	if err := that.playerRepo.CreateOrUpdate(ctx, player); err != nil {
		return nil, fmt.Errorf("failed to update player: %w", err)
	}

	botPlayer := &entity.Player{
		ID:     pkg.GenerateBotID(),
		Mark:   botMark,
		GameID: game.ID,
		Bot:    true,
	}

	game.Players = []*entity.Player{player, botPlayer}
	game.Status = entity.StatusOngoing

	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	return game, nil
}

func (that *gameService) GetGameByID(ctx context.Context, id string) (*entity.Game, error) {
	game, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return game, nil
}

func (that *gameService) UpdateGame(ctx context.Context, game *entity.Game) error {
	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}

	return nil
}

func (that *gameService) DeleteGame(ctx context.Context, id string) error {
	if err := that.gameRepo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	return nil
}
