package pkg

import (
	"strings"

	"github.com/google/uuid"
)

const gameIDLength = 6

// GenerateNewSessionID returns a fresh player session identifier.
func GenerateNewSessionID() string {
	return uuid.NewString()
}

// GenerateGameID returns a short shareable game code.
func GenerateGameID() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return strings.ToUpper(raw[:gameIDLength])
}

// GenerateBotID returns an identifier for an automated player.
func GenerateBotID() string {
	return "bot-" + uuid.NewString()[:8]
}
