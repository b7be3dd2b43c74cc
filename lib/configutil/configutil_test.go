package configutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	BaseUrl string `json:"base_url"`
	Timeout int    `json:"timeout"`
	Nested  struct {
		Enabled bool   `json:"enabled"`
		Name    string `json:"name"`
	} `json:"nested"`
}

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(contents), 0600))
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	previous, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		os.Chdir(previous)
	})
}

func TestReadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hansard.json5")

	_, err := ReadConfig[testConfig](path)
	require.ErrorIs(t, err, os.ErrNotExist)

	writeFile(t, path, `{
		// comments are allowed
		base_url: "https://example.com",
		timeout: 10,
		nested: { name: "a" },
	}`)
	writeFile(t, filepath.Join(dir, "hansard.local.json5"), `{ timeout: 5, nested: { enabled: true } }`)

	config, err := ReadConfig[testConfig](path)
	require.NoError(t, err)
	require.Equal(t, "https://example.com", config.BaseUrl)
	require.Equal(t, 5, config.Timeout)
	require.True(t, config.Nested.Enabled)
	require.Equal(t, "a", config.Nested.Name)
}

func TestReadRecursively(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0700))
	writeFile(t, filepath.Join(dir, "hansard.json5"), `{ timeout: 3 }`)

	chdir(t, nested)

	config, err := ReadRecursively[testConfig]("hansard.json5")
	require.NoError(t, err)
	require.Equal(t, 3, config.Timeout)
}

func TestReadWithDefaults(t *testing.T) {
	defaults := testConfig{BaseUrl: "https://default.com", Timeout: 30}

	dir := t.TempDir()
	chdir(t, dir)

	config, err := ReadWithDefaults("nonexistent-config.json5", defaults)
	require.NoError(t, err)
	require.Equal(t, defaults, config)

	writeFile(t, filepath.Join(dir, "hansard.json5"), `{ timeout: 12 }`)
	config, err = ReadWithDefaults("hansard.json5", defaults)
	require.NoError(t, err)
	require.Equal(t, "https://default.com", config.BaseUrl)
	require.Equal(t, 12, config.Timeout)

	writeFile(t, filepath.Join(dir, "broken.json5"), `{ timeout: `)
	_, err = ReadWithDefaults("broken.json5", defaults)
	require.Error(t, err)
}
