package commands_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoot_Version(t *testing.T) {
	res, err := runFintrack(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, res.stdout, "fintrack version dev (commit: none")
}

func TestRoot_Subcommands(t *testing.T) {
	res, err := runFintrack(t, "--help")
	require.NoError(t, err)
	for _, name := range []string{"init", "add", "list", "budget", "report", "analyze", "health", "overview", "import", "history"} {
		assert.Contains(t, res.stdout, name)
	}
}

func TestRoot_UnknownCommand(t *testing.T) {
	_, err := runFintrack(t, "transfer")
	assert.Error(t, err)
}
