package websocket

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gorilla/websocket"
)

func (that *Server) handleConnect(ctx context.Context, msg *Message, conn *websocket.Conn) error {
	log := that.logger.With("method", "handleConnect")

	payloadReq, err := decodePayload(msg)
	if err != nil {
		return err
	}

	var playerID string
	if payloadReq.Player != nil {
		playerID = payloadReq.Player.ID
	}

	player, err := that.gameUC.GetOrCreatePlayer(ctx, playerID)
	if err != nil {
		log.Error("failed to get or create player", "error", err)
		return that.sendErrorResponse(conn, msg.Action, "failed to create a new player")
	}

	log.Info("player connected", "playerID", player.ID)

	return that.sendMessage(conn, msg.Action, Payload{Player: player})
}

func (that *Server) handleNewGame(ctx context.Context, msg *Message, conn *websocket.Conn) error {
	log := that.logger.With("method", "handleNewGame")

	payloadReq, err := decodePayload(msg)
	if err != nil {
		return err
	}

	if payloadReq.Player == nil {
		log.Error("player is missing in payload")
		return that.sendErrorResponse(conn, msg.Action, "player is required")
	}

	game, err := that.gameUC.StartGame(ctx, payloadReq.Player.ID, payloadReq.Personality)
	if err != nil {
		log.Error("failed to start game", "error", err)
		return that.sendErrorResponse(conn, msg.Action, "failed to start a new game")
	}

	log.Info("game started", "gameID", game.ID)

	return that.sendMessage(conn, msg.Action, Payload{Player: payloadReq.Player, Game: game})
}

func (that *Server) handleGameTurn(ctx context.Context, msg *Message, conn *websocket.Conn) error {
	log := that.logger.With("method", "handleGameTurn")

	payloadReq, err := decodePayload(msg)
	if err != nil {
		return err
	}

	if payloadReq.Player == nil || payloadReq.Cell == nil {
		log.Error("player or cell is missing in payload")
		return that.sendErrorResponse(conn, msg.Action, "player and cell are required")
	}

	game, err := that.gameUC.MakeTurn(ctx, payloadReq.Player.ID, *payloadReq.Cell)
	if err != nil {
		log.Error("failed to make turn", "cell", *payloadReq.Cell, "error", err)

		payloadResp := Payload{Game: game, Error: err.Error()}

		return that.sendMessage(conn, msg.Action, payloadResp)
	}

	return that.sendMessage(conn, msg.Action, Payload{Player: payloadReq.Player, Game: game})
}

func (that *Server) handleRestartGame(ctx context.Context, msg *Message, conn *websocket.Conn) error {
	log := that.logger.With("method", "handleRestartGame")

	payloadReq, err := decodePayload(msg)
	if err != nil {
		return err
	}

	if payloadReq.Player == nil {
		log.Error("player is missing in payload")
		return that.sendErrorResponse(conn, msg.Action, "player is required")
	}

	game, err := that.gameUC.RestartGame(ctx, payloadReq.Player.ID)
	if err != nil {
		log.Error("failed to restart game", "error", err)
		return that.sendErrorResponse(conn, msg.Action, "failed to restart the game")
	}

	log.Info("round restarted", "gameID", game.ID)

	return that.sendMessage(conn, msg.Action, Payload{Player: payloadReq.Player, Game: game})
}

func (that *Server) handleLeaveGame(ctx context.Context, msg *Message, conn *websocket.Conn) error {
	log := that.logger.With("method", "handleLeaveGame")

	payloadReq, err := decodePayload(msg)
	if err != nil {
		return err
	}

	if payloadReq.Player == nil {
		log.Error("player is missing in payload")
		return that.sendErrorResponse(conn, msg.Action, "player is required")
	}

	if err = that.gameUC.LeaveGame(ctx, payloadReq.Player.ID); err != nil {
		log.Error("failed to leave game", "error", err)
		return that.sendErrorResponse(conn, msg.Action, "failed to leave the game")
	}

	return that.sendMessage(conn, msg.Action, Payload{Player: payloadReq.Player})
}

func (that *Server) handleGameStats(ctx context.Context, msg *Message, conn *websocket.Conn) error {
	log := that.logger.With("method", "handleGameStats")

	payloadReq, err := decodePayload(msg)
	if err != nil {
		return err
	}

	if payloadReq.Player == nil {
		log.Error("player is missing in payload")
		return that.sendErrorResponse(conn, msg.Action, "player is required")
	}

	game, stats, err := that.gameUC.GameStats(ctx, payloadReq.Player.ID)
	if err != nil {
		log.Error("failed to get game stats", "error", err)
		return that.sendErrorResponse(conn, msg.Action, "failed to get game stats")
	}

	return that.sendMessage(conn, msg.Action, Payload{Game: game, Stats: &stats})
}

func (that *Server) handleTuneBot(ctx context.Context, msg *Message, conn *websocket.Conn) error {
	log := that.logger.With("method", "handleTuneBot")

	payloadReq, err := decodePayload(msg)
	if err != nil {
		return err
	}

	if payloadReq.Player == nil {
		log.Error("player is missing in payload")
		return that.sendErrorResponse(conn, msg.Action, "player is required")
	}

	game, err := that.gameUC.TuneBot(ctx, payloadReq.Player.ID, payloadReq.Personality, payloadReq.Difficulty)
	if err != nil {
		log.Error("failed to tune bot", "error", err)
		return that.sendErrorResponse(conn, msg.Action, "failed to tune the bot")
	}

	return that.sendMessage(conn, msg.Action, Payload{Player: payloadReq.Player, Game: game})
}

func decodePayload(msg *Message) (*Payload, error) {
	payload := &Payload{}

	if len(msg.Payload) == 0 {
		return payload, nil
	}

	if err := json.Unmarshal(msg.Payload, payload); err != nil {
		return nil, fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	return payload, nil
}
