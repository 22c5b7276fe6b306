// Package assets tracks asynchronous loading of the scene objects the
// simulation depends on. Loads are requested up front and polled from the
// tick loop; an entity whose asset is not loaded is treated as absent.
package assets

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Asset is the core's view of a loaded scene object. Geometry stays with the
// renderer; only identity and provenance are kept here.
type Asset struct {
	Name     string    `json:"name"`
	Path     string    `json:"path,omitempty"`
	Size     int64     `json:"size,omitempty"`
	LoadedAt time.Time `json:"loaded_at"`
}

// Source fetches one asset by name.
type Source interface {
	Fetch(ctx context.Context, name string) (Asset, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context, name string) (Asset, error)

func (f SourceFunc) Fetch(ctx context.Context, name string) (Asset, error) { return f(ctx, name) }

// StaticSource resolves every name immediately. It backs headless runs where
// no model files exist.
type StaticSource struct{}

func (StaticSource) Fetch(ctx context.Context, name string) (Asset, error) {
	if err := ctx.Err(); err != nil {
		return Asset{}, err
	}
	return Asset{Name: name, LoadedAt: time.Now()}, nil
}

// DirSource resolves name to Root/name+Ext and checks the file is a readable
// regular file.
type DirSource struct {
	Root string
	Ext  string
}

func (d DirSource) Fetch(ctx context.Context, name string) (Asset, error) {
	if err := ctx.Err(); err != nil {
		return Asset{}, err
	}
	path := filepath.Join(d.Root, name+d.Ext)
	f, err := os.Open(path)
	if err != nil {
		return Asset{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return Asset{}, fmt.Errorf("stat %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return Asset{}, fmt.Errorf("%w: %s", ErrNotAFile, path)
	}
	return Asset{Name: name, Path: path, Size: info.Size(), LoadedAt: time.Now()}, nil
}
