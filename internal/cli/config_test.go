package cli

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/xmrkit/internal/config"
	kiterr "github.com/mrz1836/xmrkit/pkg/errors"
)

func TestConfigInit(t *testing.T) {
	home := t.TempDir()
	path := filepath.Join(home, config.FileName)

	stdout, err := runCLI(t, home, "config", "init")
	require.NoError(t, err)
	var res map[string]string
	require.NoError(t, json.Unmarshal([]byte(stdout), &res))
	assert.Equal(t, "success", res["status"])
	assert.Contains(t, res["message"], path)

	loaded, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, home, loaded.Home)
	assert.Equal(t, "mainnet", loaded.Network)

	_, err = runCLI(t, home, "config", "init")
	require.ErrorIs(t, err, kiterr.ErrInvalidInput)

	_, err = runCLI(t, home, "config", "init", "--force")
	require.NoError(t, err)
}

func TestConfigShow(t *testing.T) {
	home := t.TempDir()
	t.Setenv(config.EnvNetwork, "stagenet")

	stdout, err := runCLI(t, home, "config", "show")
	require.NoError(t, err)

	var tree struct {
		Home    string `json:"home"`
		Network string `json:"network"`
		Sync    struct {
			PollInterval string `json:"poll_interval"`
		} `json:"sync"`
		Wallet struct {
			RestoreHeight int64 `json:"restore_height"`
		} `json:"wallet"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &tree))
	assert.Equal(t, home, tree.Home)
	assert.Equal(t, "stagenet", tree.Network)
	assert.Equal(t, "1s", tree.Sync.PollInterval)
	assert.Equal(t, int64(-1), tree.Wallet.RestoreHeight)

	stdout, err = runCLI(t, home, "-o", "text", "config", "show")
	require.NoError(t, err)
	assert.Contains(t, stdout, "network: stagenet\n")
	assert.Contains(t, stdout, "poll_interval: 1s\n")
}

func TestConfigPath(t *testing.T) {
	home := t.TempDir()

	stdout, err := runCLI(t, home, "config", "path")
	require.NoError(t, err)
	var res map[string]string
	require.NoError(t, json.Unmarshal([]byte(stdout), &res))
	assert.Equal(t, filepath.Join(home, config.FileName), res["path"])
}
