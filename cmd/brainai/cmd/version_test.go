package cmd

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aman-CERP/brainai/pkg/version"
)

func TestVersionCmd_DefaultOutput(t *testing.T) {
	// When: running version without flags
	out, err := executeRaw(t, nil, "version")

	// Then: the full build string is printed
	require.NoError(t, err)
	assert.Contains(t, out, "brainai")
	assert.Contains(t, out, version.Short())
	assert.Contains(t, out, "commit")
}

func TestVersionCmd_ShortOutput(t *testing.T) {
	out, err := executeRaw(t, nil, "version", "--short")

	require.NoError(t, err)
	assert.Equal(t, version.Short(), strings.TrimSpace(out))
}

func TestVersionCmd_JSONOutput(t *testing.T) {
	out, err := executeRaw(t, nil, "version", "--json")

	require.NoError(t, err)
	var info map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, version.Short(), info["version"])
	for _, key := range []string{"commit", "date", "go_version", "os", "arch"} {
		assert.Contains(t, info, key)
	}
}

func TestRootCmd_RegistersCommands(t *testing.T) {
	root := NewRootCmd()

	for _, path := range [][]string{
		{"version"}, {"config", "init"}, {"config", "show"}, {"config", "path"},
		{"status"}, {"stats"}, {"memory", "store"}, {"memory", "search"},
		{"learn"}, {"patterns"}, {"reason"}, {"feedback"},
		{"vector", "similarity"}, {"vector", "store"}, {"graph", "neighbors"},
		{"clear"}, {"batch"}, {"logs"},
	} {
		found, _, err := root.Find(path)
		require.NoError(t, err, strings.Join(path, " "))
		assert.Equal(t, path[len(path)-1], found.Name())
	}
}
