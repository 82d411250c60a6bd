package websocket

import (
	"encoding/json"

	"github.com/zeroonegames/zeroone-backend/internal/entity"
	"github.com/zeroonegames/zeroone-backend/internal/selector"
)

// Message is one client action with its payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Payload is the shared request/response body for all actions.
type Payload struct {
	Player      *entity.Player     `json:"player,omitempty"`
	Game        *entity.Game       `json:"game,omitempty"`
	Cell        *int               `json:"cell,omitempty"`
	Personality string             `json:"personality,omitempty"`
	Difficulty  *float64           `json:"difficulty,omitempty"`
	Stats       *selector.Snapshot `json:"stats,omitempty"`
	Error       string             `json:"error,omitempty"`
}
