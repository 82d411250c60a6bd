package service

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/zeroonegames/zeroone-backend/internal/entity"
	"github.com/zeroonegames/zeroone-backend/internal/selector"
)

var (
	ErrBotNotFound      = errors.New("bot player not found")
	ErrNoAvailableMoves = errors.New("no available moves")
)

type BotService interface {
	Register(game *entity.Game)
	MakeTurn(game *entity.Game) error
	Tune(gameID, personality string, difficulty *float64)
	ThinkingTime(gameID string) time.Duration
	StatsFor(gameID string) (selector.Snapshot, bool)
	ResetStats(gameID string)
	Forget(gameID string)
}

// botService keeps one move selector per active game, so stats and tuning are
// scoped to a session. Selector calls for one game are serialized by the
// per-connection message loop upstream; the mutex only guards the map.
type botService struct {
	defaultPersonality string

	mu        sync.Mutex
	selectors map[string]*selector.Selector
}

func NewBotService(defaultPersonality string) BotService {
	return &botService{
		defaultPersonality: defaultPersonality,
		selectors:          make(map[string]*selector.Selector),
	}
}

// Register creates the selector for a fresh session, so tuning and thinking
// time take effect before the bot's first move.
func (that *botService) Register(game *entity.Game) {
	botPlayer := game.BotPlayer()
	if botPlayer == nil {
		return
	}

	that.selectorFor(game, botPlayer.Mark)
}

func (that *botService) MakeTurn(game *entity.Game) error {
	botPlayer := game.BotPlayer()
	if botPlayer == nil {
		return ErrBotNotFound
	}

	sel := that.selectorFor(game, botPlayer.Mark)

	cell := sel.ChooseMove(game.Board)
	if cell == selector.NoMove {
		return ErrNoAvailableMoves
	}

	if err := game.MakeTurn(botPlayer.Mark, cell); err != nil {
		return fmt.Errorf("bot failed to make turn: %w", err)
	}

	return nil
}

// Tune applies a personality preset and an optional difficulty override to
// the game's selector. Unknown personality names are ignored.
func (that *botService) Tune(gameID, personality string, difficulty *float64) {
	that.mu.Lock()
	sel, ok := that.selectors[gameID]
	that.mu.Unlock()

	if !ok {
		return
	}

	sel.ApplyPersonality(personality)

	if difficulty != nil {
		sel.SetDifficulty(*difficulty)
	}
}

func (that *botService) ThinkingTime(gameID string) time.Duration {
	that.mu.Lock()
	defer that.mu.Unlock()

	if sel, ok := that.selectors[gameID]; ok {
		return sel.ThinkingTime()
	}

	return 0
}

func (that *botService) StatsFor(gameID string) (selector.Snapshot, bool) {
	that.mu.Lock()
	sel, ok := that.selectors[gameID]
	that.mu.Unlock()

	if !ok {
		return selector.Snapshot{}, false
	}

	return sel.Stats(), true
}

func (that *botService) ResetStats(gameID string) {
	that.mu.Lock()
	sel, ok := that.selectors[gameID]
	that.mu.Unlock()

	if ok {
		sel.ResetStats()
	}
}

// Forget drops the selector of a closed session.
func (that *botService) Forget(gameID string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	delete(that.selectors, gameID)
}

func (that *botService) selectorFor(game *entity.Game, mark string) *selector.Selector {
	that.mu.Lock()
	defer that.mu.Unlock()

	if sel, ok := that.selectors[game.ID]; ok {
		return sel
	}

	sel := selector.New(mark)

	personality := game.Personality
	if personality == "" {
		personality = that.defaultPersonality
	}
	sel.ApplyPersonality(personality)

	that.selectors[game.ID] = sel

	return sel
}
