package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mailio/go-campaign-console/global"
	"github.com/mailio/go-campaign-console/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWiresMemoryStorage(t *testing.T) {
	conf := global.DefaultConfig()
	conf.Storage.Type = repository.StorageMemory
	conf.API.BaseURL = "http://console.test"

	a, err := New(conf)
	require.NoError(t, err)
	assert.Equal(t, "memory", a.Storage.Name())
	assert.Equal(t, "http://console.test", a.API.BaseURL())
	require.NotNil(t, a.Console)
	assert.NotNil(t, a.Console.Library)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	configFile := filepath.Join(dir, "conf.yaml")
	content := "mode: debug\napi:\n  baseUrl: http://api.test\nstorage:\n  type: file\n  path: " + filepath.Join(dir, "data") + "\n"
	require.NoError(t, os.WriteFile(configFile, []byte(content), 0600))
	t.Setenv("CONSOLE_API_URL", "")
	t.Setenv("CONSOLE_STORAGE", "")

	a, err := Load(configFile)
	require.NoError(t, err)
	assert.Equal(t, "file", a.Storage.Name())
	assert.Equal(t, "http://api.test", global.Conf.API.BaseURL)
	assert.DirExists(t, filepath.Join(dir, "data"))
}

func TestUnknownStorage(t *testing.T) {
	conf := global.DefaultConfig()
	conf.Storage.Type = "floppy"
	_, err := New(conf)
	assert.Error(t, err)
}
