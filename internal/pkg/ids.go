package pkg

import "github.com/google/uuid"

// GenerateGameID - returns a new match instance id.
func GenerateGameID() string {
	return uuid.NewString()
}

// GenerateNewSessionID - returns a new player session id.
func GenerateNewSessionID() string {
	return uuid.NewString()
}
