package output

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriter_Status_PrintsIconAndMessage(t *testing.T) {
	// Given: a writer with a buffer
	buf := &bytes.Buffer{}
	w := New(buf)

	// When: printing a status message
	w.Status(">", "Contacting service")

	// Then: output contains icon and message
	assert.Equal(t, "> Contacting service\n", buf.String())
}

func TestWriter_Status_NoIcon_Indents(t *testing.T) {
	buf := &bytes.Buffer{}
	New(buf).Status("", "detail")

	assert.Equal(t, "   detail\n", buf.String())
}

func TestWriter_LevelHelpers_UsePlainIconsForBuffers(t *testing.T) {
	buf := &bytes.Buffer{}
	w := New(buf)

	w.Successf("stored %d", 3)
	w.Warning("slow")
	w.Errorf("failed: %s", "boom")

	out := buf.String()
	assert.Contains(t, out, "✓ stored 3\n")
	assert.Contains(t, out, "! slow\n")
	assert.Contains(t, out, "✗ failed: boom\n")
	assert.NotContains(t, out, "\x1b[", "buffers never get ANSI codes")
}

func TestWriter_Map_SortsKeysAndNests(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewPlain(buf)

	w.Map(map[string]any{
		"zeta":  1,
		"alpha": "a",
		"inner": map[string]any{"b": 2},
	})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(strings.TrimSpace(lines[0]), "alpha:"))
	assert.Equal(t, "  inner:", lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "    b:"))
	assert.True(t, strings.HasPrefix(strings.TrimSpace(lines[3]), "zeta:"))
}

func TestWriter_KeyValue_Aligns(t *testing.T) {
	buf := &bytes.Buffer{}
	NewPlain(buf).KeyValue("id", "m1")

	assert.Equal(t, "  "+"id:"+strings.Repeat(" ", 17)+" m1\n", buf.String())
}

func TestWriter_JSON_Indents(t *testing.T) {
	buf := &bytes.Buffer{}

	require.NoError(t, New(buf).JSON(map[string]int{"a": 1}))

	assert.Equal(t, "{\n  \"a\": 1\n}\n", buf.String())
	var parsed map[string]int
	require.NoError(t, json.Unmarshal(buf.Bytes(), &parsed))
}

func TestWriter_Code_IndentsLines(t *testing.T) {
	buf := &bytes.Buffer{}
	New(buf).Code("a\nb")

	assert.Equal(t, "\n  a\n  b\n\n", buf.String())
}

func TestColorEnabled(t *testing.T) {
	assert.False(t, ColorEnabled(&bytes.Buffer{}), "non-file writers")

	t.Setenv("NO_COLOR", "1")
	assert.False(t, ColorEnabled(os.Stdout), "NO_COLOR wins")
}

func TestBar(t *testing.T) {
	tests := []struct {
		value float64
		width int
		want  string
	}{
		{0, 4, "░░░░"},
		{0.5, 4, "██░░"},
		{1, 4, "████"},
		{1.7, 4, "████"},
		{-1, 4, "░░░░"},
		{0.5, 0, ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Bar(tt.value, tt.width))
	}
}
