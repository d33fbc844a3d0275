package pkg

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateGameID(t *testing.T) {
	first := GenerateGameID()
	second := GenerateGameID()

	_, err := uuid.Parse(first)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestGenerateNewSessionID(t *testing.T) {
	_, err := uuid.Parse(GenerateNewSessionID())
	require.NoError(t, err)
}
