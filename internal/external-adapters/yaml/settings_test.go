package yaml

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ochairo/wokwikit/internal/domain-adapters/gateways"
)

func TestLoadSettings_MissingFile(t *testing.T) {
	s, err := LoadSettings(filepath.Join(t.TempDir(), SettingsFileName))
	require.NoError(t, err)
	assert.Equal(t, Defaults(), s)
	assert.Equal(t, gateways.DefaultDownloadTimeout, s.Timeout)
}

func TestParseSettings(t *testing.T) {
	t.Run("full document", func(t *testing.T) {
		s, err := ParseSettings([]byte(`
root: ./firmware
select: latest
timeout_seconds: 5
endpoints:
  - https://mirror.example.com/{id}/zip
`))
		require.NoError(t, err)
		assert.Equal(t, "./firmware", s.Root)
		assert.Equal(t, "latest", s.Select)
		assert.Equal(t, 5*time.Second, s.Timeout)
		assert.Equal(t, []string{"https://mirror.example.com/{id}/zip"}, s.Endpoints)
	})

	t.Run("empty document keeps defaults", func(t *testing.T) {
		s, err := ParseSettings([]byte(""))
		require.NoError(t, err)
		assert.Equal(t, Defaults(), s)
	})

	t.Run("invalid select policy", func(t *testing.T) {
		_, err := ParseSettings([]byte("select: newest\n"))
		assert.Error(t, err)
	})

	t.Run("negative timeout", func(t *testing.T) {
		_, err := ParseSettings([]byte("timeout_seconds: -1\n"))
		assert.Error(t, err)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := ParseSettings([]byte("select: [unterminated"))
		assert.Error(t, err)
	})
}

func TestLoadSettings_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), SettingsFileName)
	require.NoError(t, os.WriteFile(path, []byte("select: latest\n"), 0600))

	s, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, "latest", s.Select)
}
