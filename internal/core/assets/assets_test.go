package assets

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/zeusync/hogar/internal/core/observability/log"
)

// gatedSource blocks each fetch until its name is released.
type gatedSource struct {
	gates map[string]chan error
}

func newGatedSource(names ...string) *gatedSource {
	g := &gatedSource{gates: make(map[string]chan error)}
	for _, n := range names {
		g.gates[n] = make(chan error, 1)
	}
	return g
}

func (g *gatedSource) Fetch(ctx context.Context, name string) (Asset, error) {
	select {
	case err := <-g.gates[name]:
		if err != nil {
			return Asset{}, err
		}
		return Asset{Name: name, LoadedAt: time.Now()}, nil
	case <-ctx.Done():
		return Asset{}, ctx.Err()
	}
}

func TestRegistryBecomesReadyAsLoadsComplete(t *testing.T) {
	src := newGatedSource("persona", "sofa")
	r := NewRegistry(src, 0, nil)
	require.NoError(t, r.Request(context.Background(), "persona", "sofa"))

	assert.False(t, r.Ready("persona", "sofa"))
	status, _ := r.Status("persona")
	assert.Equal(t, StatusPending, status)

	src.gates["persona"] <- nil
	require.Eventually(t, func() bool { return r.Ready("persona") }, time.Second, time.Millisecond)
	assert.False(t, r.Ready("persona", "sofa"))

	src.gates["sofa"] <- nil
	require.NoError(t, r.Wait(context.Background()))
	assert.True(t, r.Ready("persona", "sofa"))

	settled, total := r.Progress()
	assert.Equal(t, 2, settled)
	assert.Equal(t, 2, total)
}

func TestRegistryFailureIsLoggedAndReported(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := log.NewFromZap(zap.New(core))

	boom := errors.New("corrupt model")
	src := newGatedSource("tv")
	src.gates["tv"] <- boom

	r := NewRegistry(src, 1, logger)
	require.NoError(t, r.Request(context.Background(), "tv"))

	err := r.Wait(context.Background())
	assert.ErrorIs(t, err, boom)
	status, loadErr := r.Status("tv")
	assert.Equal(t, StatusFailed, status)
	assert.ErrorIs(t, loadErr, boom)
	assert.Equal(t, []string{"tv"}, r.Failed())
	assert.False(t, r.Ready("tv"))

	assert.Equal(t, 1, logs.FilterMessage("Asset load failed").Len())
}

func TestRegistryRequestOnce(t *testing.T) {
	r := NewRegistry(StaticSource{}, 0, nil)
	assert.ErrorIs(t, r.Wait(context.Background()), ErrNotRequested)
	require.NoError(t, r.Request(context.Background(), "a", "a"))
	assert.ErrorIs(t, r.Request(context.Background(), "b"), ErrAlreadyRequested)
	require.NoError(t, r.Wait(context.Background()))

	_, total := r.Progress()
	assert.Equal(t, 1, total)
	a, ok := r.Asset("a")
	assert.True(t, ok)
	assert.Equal(t, "a", a.Name)

	status, _ := r.Status("zzz")
	assert.Equal(t, StatusUnknown, status)
}

func TestWaitHonoursContext(t *testing.T) {
	r := NewRegistry(newGatedSource("slow"), 0, nil)
	require.NoError(t, r.Request(context.Background(), "slow"))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, r.Wait(ctx), context.DeadlineExceeded)
}

func TestDirSource(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sofa.glb"), []byte("glTF"), 0o600))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "table.glb"), 0o700))
	src := DirSource{Root: dir, Ext: ".glb"}

	a, err := src.Fetch(context.Background(), "sofa")
	require.NoError(t, err)
	assert.EqualValues(t, 4, a.Size)
	assert.Equal(t, filepath.Join(dir, "sofa.glb"), a.Path)

	_, err = src.Fetch(context.Background(), "table")
	assert.ErrorIs(t, err, ErrNotAFile)

	_, err = src.Fetch(context.Background(), "missing")
	assert.ErrorIs(t, err, os.ErrNotExist)
}
