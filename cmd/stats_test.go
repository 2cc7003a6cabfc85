package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserFilter(t *testing.T) {
	f, err := userFilter("")
	require.NoError(t, err)
	assert.Nil(t, f.UserID)

	f, err = userFilter("64b7f0c2e4b0a1a2b3c4d5e6")
	require.NoError(t, err)
	require.NotNil(t, f.UserID)
	assert.Equal(t, "64b7f0c2e4b0a1a2b3c4d5e6", f.UserID.Hex())

	_, err = userFilter("nope")
	assert.Error(t, err)
}

func TestRootRegistersCommands(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd().Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["serve"])
	assert.True(t, names["stats"])
	assert.True(t, names["ask"])
}
