package version

import (
	"encoding/json"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShort_ReturnsInjectedVersion(t *testing.T) {
	// Given: a version injected at build time
	orig := Version
	Version = "1.4.2"
	t.Cleanup(func() { Version = orig })

	// Then: it wins over module metadata
	assert.Equal(t, "1.4.2", Short())
}

func TestShort_DevBuild_IsNotEmpty(t *testing.T) {
	assert.NotEmpty(t, Short())
}

func TestString_DescribesBuild(t *testing.T) {
	str := String()

	assert.True(t, strings.HasPrefix(str, "brainai "))
	assert.Contains(t, str, Short())
	assert.Contains(t, str, "commit: "+Commit)
	assert.Contains(t, str, runtime.Version())
}

func TestUserAgent_IncludesVersion(t *testing.T) {
	assert.Equal(t, "brainai-go/"+Short(), UserAgent())
}

func TestGetInfo_MatchesRuntime(t *testing.T) {
	info := GetInfo()

	assert.Equal(t, Short(), info.Version)
	assert.Equal(t, Commit, info.Commit)
	assert.Equal(t, Date, info.Date)
	assert.Equal(t, runtime.Version(), info.GoVersion)
	assert.Equal(t, runtime.GOOS, info.OS)
	assert.Equal(t, runtime.GOARCH, info.Arch)
}

func TestGetInfo_JSONFieldNames(t *testing.T) {
	data, err := json.Marshal(GetInfo())
	require.NoError(t, err)

	var parsed map[string]string
	require.NoError(t, json.Unmarshal(data, &parsed))
	for _, key := range []string{"version", "commit", "date", "go_version", "os", "arch"} {
		assert.Contains(t, parsed, key)
	}
}
