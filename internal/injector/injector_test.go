package injector

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/hogar/internal/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Log.Outputs = []string{filepath.Join(t.TempDir(), "hogar.log")}
	return cfg
}

func TestInitializeServer(t *testing.T) {
	srv, cleanup, err := InitializeServer(testConfig(t))
	require.NoError(t, err)
	defer cleanup()
	assert.NotNil(t, srv)
	assert.Zero(t, srv.SessionCount())
}

func TestInitializeFactoryRejectsBadScene(t *testing.T) {
	cfg := testConfig(t)
	cfg.Scene.Obstacles[0].XMax = cfg.Scene.Obstacles[0].XMin
	_, _, err := InitializeFactory(cfg)
	assert.Error(t, err)
}
