package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/yukikurage/kanban-board-api/internal/constants"
)

// GenerateAPIToken returns a random hex token used for the Authorization header
func GenerateAPIToken() (string, error) {
	bytes := make([]byte, constants.APITokenBytes)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}
