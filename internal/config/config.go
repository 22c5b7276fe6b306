// Package config loads the YAML configuration. Every document, including
// the embedded defaults, is checked against an embedded JSON Schema before it
// is decoded; a user file is decoded on top of the defaults so it only needs
// the keys it changes. List entries keyed by need kind, clip id or point name
// inherit the omitted fields of the default entry with the same key.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/zeusync/hogar/internal/core/animation"
	"github.com/zeusync/hogar/internal/core/camera"
	"github.com/zeusync/hogar/internal/core/input"
	"github.com/zeusync/hogar/internal/core/motion"
	"github.com/zeusync/hogar/internal/core/needs"
	"github.com/zeusync/hogar/internal/core/observability/log"
	"github.com/zeusync/hogar/internal/core/spatial"
	"github.com/zeusync/hogar/internal/core/systems/physics"
)

//go:embed default.yaml
var defaultYAML []byte

type Config struct {
	Log        Log            `yaml:"log"`
	Simulation Simulation     `yaml:"simulation"`
	Camera     Camera         `yaml:"camera"`
	Animation  Animation      `yaml:"animation"`
	Input      Input          `yaml:"input"`
	Needs      []needs.Config `yaml:"needs"`
	Scene      Scene          `yaml:"scene"`
	Assets     Assets         `yaml:"assets"`
	Server     Server         `yaml:"server"`
	Terminal   Terminal       `yaml:"terminal"`
}

type Log struct {
	Level    string   `yaml:"level"`
	Encoding string   `yaml:"encoding"`
	Outputs  []string `yaml:"outputs"`
}

func (l Log) Options() log.Options {
	return log.Options{Level: log.ParseLevel(l.Level), Encoding: l.Encoding, Outputs: l.Outputs}
}

type Simulation struct {
	TickRateHz int     `yaml:"tick_rate_hz"`
	Speed      float64 `yaml:"speed"`
	HalfExtent float64 `yaml:"half_extent"`
	Collision  string  `yaml:"collision"`
}

// TickInterval is the wall-clock period of one tick.
func (s Simulation) TickInterval() time.Duration {
	if s.TickRateHz <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(s.TickRateHz)
}

func (s Simulation) Policy() (motion.Policy, error) {
	return motion.ParsePolicy(s.Collision)
}

type Camera struct {
	LookSensitivity float64      `yaml:"look_sensitivity"`
	ZoomSensitivity float64      `yaml:"zoom_sensitivity"`
	InitialPosition physics.Vec3 `yaml:"initial_position"`
	InitialTarget   physics.Vec3 `yaml:"initial_target"`
}

func (c Camera) Options() camera.Options {
	return camera.Options{
		LookSensitivity: c.LookSensitivity,
		ZoomSensitivity: c.ZoomSensitivity,
		InitialPosition: c.InitialPosition,
		InitialTarget:   c.InitialTarget,
	}
}

type Clip struct {
	ID       string  `yaml:"id"`
	Name     string  `yaml:"name"`
	Duration float64 `yaml:"duration"`
	Loop     bool    `yaml:"loop"`
}

type Animation struct {
	IdleClip  bool    `yaml:"idle_clip"`
	CrossFade float64 `yaml:"cross_fade"`
	Clips     []Clip  `yaml:"clips"`
}

// ClipSet maps configured clips to animation clip ids. The idle clip is
// required only when IdleClip is set.
func (a Animation) ClipSet() (map[animation.ClipID]animation.Clip, error) {
	out := make(map[animation.ClipID]animation.Clip, len(a.Clips))
	for _, c := range a.Clips {
		var id animation.ClipID
		switch c.ID {
		case "walk":
			id = animation.ClipWalk
		case "idle":
			id = animation.ClipIdle
		default:
			return nil, fmt.Errorf("%w: %q", ErrUnknownClip, c.ID)
		}
		if _, dup := out[id]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateClip, c.ID)
		}
		out[id] = animation.Clip{Name: c.Name, Duration: c.Duration, Loop: c.Loop}
	}
	if _, ok := out[animation.ClipWalk]; !ok {
		return nil, fmt.Errorf("%w: walk", ErrMissingClip)
	}
	if _, ok := out[animation.ClipIdle]; a.IdleClip && !ok {
		return nil, fmt.Errorf("%w: idle", ErrMissingClip)
	}
	return out, nil
}

type Input struct {
	// Bindings maps action names to key names.
	Bindings map[string]string `yaml:"bindings"`
}

func (i Input) KeyMap() (input.KeyMap, error) {
	if len(i.Bindings) == 0 {
		return input.DefaultKeyMap(), nil
	}
	return input.ParseKeyMap(i.Bindings)
}

type Scene struct {
	Avatar    string                  `yaml:"avatar"`
	Obstacles []spatial.Obstacle      `yaml:"obstacles"`
	Points    []needs.PointOfInterest `yaml:"points"`
}

// RequiredAssets lists the avatar followed by every point asset, without
// duplicates. The simulation does not tick until all of them are loaded.
func (s Scene) RequiredAssets() []string {
	seen := make(map[string]struct{}, len(s.Points)+1)
	var out []string
	add := func(name string) {
		if name == "" {
			return
		}
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	add(s.Avatar)
	for _, p := range s.Points {
		add(p.Asset)
	}
	return out
}

type Assets struct {
	Source   string `yaml:"source"`
	Root     string `yaml:"root"`
	Ext      string `yaml:"ext"`
	Parallel int    `yaml:"parallel"`
}

type Server struct {
	Addr         string        `yaml:"addr"`
	Path         string        `yaml:"path"`
	MaxSessions  int           `yaml:"max_sessions"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	ReadLimit    int64         `yaml:"read_limit"`
}

// Terminal tunes the tcell frontend. HoldDelay covers the keyboard's
// autorepeat delay after a fresh press; HoldWindow is the gap allowed between
// repeats.
type Terminal struct {
	HoldDelay    time.Duration `yaml:"hold_delay"`
	HoldWindow   time.Duration `yaml:"hold_window"`
	CellsPerUnit float64       `yaml:"cells_per_unit"`
}

// Default returns the embedded configuration of the original house.
func Default() *Config {
	var c Config
	if err := decode(defaultYAML, &c); err != nil {
		panic(fmt.Sprintf("config: embedded defaults: %v", err))
	}
	return &c
}

// Load reads path and overlays it on the defaults. An empty path yields the
// defaults.
func Load(path string) (*Config, error) {
	c := Default()
	if path == "" {
		return c, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err = decode(raw, c); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse overlays a YAML document on the defaults.
func Parse(raw []byte) (*Config, error) {
	c := Default()
	if err := decode(raw, c); err != nil {
		return nil, err
	}
	return c, nil
}

func decode(raw []byte, c *Config) error {
	if err := validate(raw); err != nil {
		return err
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	if len(doc.Content) == 0 {
		return nil
	}

	prev := *c
	if err := doc.Decode(c); err != nil {
		return fmt.Errorf("decode: %w", err)
	}

	// yaml.v3 rebuilds sequences from zero values. Entries that name an
	// existing entry are decoded on top of it instead.
	root := doc.Content[0]
	if err := overlayItems(&c.Needs, prev.Needs, lookup(root, "needs"),
		func(n needs.Config) string { return string(n.Kind) }); err != nil {
		return err
	}
	if err := overlayItems(&c.Animation.Clips, prev.Animation.Clips, lookup(root, "animation", "clips"),
		func(cl Clip) string { return cl.ID }); err != nil {
		return err
	}
	return overlayItems(&c.Scene.Points, prev.Scene.Points, lookup(root, "scene", "points"),
		func(p needs.PointOfInterest) string { return p.Name })
}

func overlayItems[T any](dst *[]T, prev []T, seq *yaml.Node, key func(T) string) error {
	if seq == nil || seq.Kind != yaml.SequenceNode || len(prev) == 0 {
		return nil
	}
	byKey := make(map[string]T, len(prev))
	for _, item := range prev {
		byKey[key(item)] = item
	}
	out := make([]T, 0, len(seq.Content))
	for _, node := range seq.Content {
		var named T
		if err := node.Decode(&named); err != nil {
			return fmt.Errorf("decode: %w", err)
		}
		base, ok := byKey[key(named)]
		if !ok {
			out = append(out, named)
			continue
		}
		if err := node.Decode(&base); err != nil {
			return fmt.Errorf("decode: %w", err)
		}
		out = append(out, base)
	}
	*dst = out
	return nil
}

// lookup follows mapping keys from node and returns the value node, or nil.
func lookup(node *yaml.Node, path ...string) *yaml.Node {
	for _, key := range path {
		if node == nil || node.Kind != yaml.MappingNode {
			return nil
		}
		var next *yaml.Node
		for i := 0; i+1 < len(node.Content); i += 2 {
			if node.Content[i].Value == key {
				next = node.Content[i+1]
				break
			}
		}
		node = next
	}
	return node
}
