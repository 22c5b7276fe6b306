package sim

import (
	"context"
	"fmt"

	"github.com/zeusync/hogar/internal/config"
	"github.com/zeusync/hogar/internal/core/animation"
	"github.com/zeusync/hogar/internal/core/assets"
	"github.com/zeusync/hogar/internal/core/camera"
	"github.com/zeusync/hogar/internal/core/events/bus"
	"github.com/zeusync/hogar/internal/core/input"
	"github.com/zeusync/hogar/internal/core/locomotion"
	"github.com/zeusync/hogar/internal/core/motion"
	"github.com/zeusync/hogar/internal/core/needs"
	"github.com/zeusync/hogar/internal/core/observability/log"
	"github.com/zeusync/hogar/internal/core/spatial"
	"github.com/zeusync/hogar/internal/core/systems"
)

// Factory validates the configuration once and builds independent drivers
// from it, one per frontend session.
type Factory struct {
	cfg      *config.Config
	base     log.Log
	logger   log.Log
	layout   *spatial.Layout
	keys     input.KeyMap
	policy   motion.Policy
	clips    map[animation.ClipID]animation.Clip
	source   assets.Source
	required []string
}

func NewFactory(cfg *config.Config, logger log.Log) (*Factory, error) {
	layout, err := spatial.NewLayout(cfg.Scene.Obstacles)
	if err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	keys, err := cfg.Input.KeyMap()
	if err != nil {
		return nil, fmt.Errorf("input: %w", err)
	}
	policy, err := cfg.Simulation.Policy()
	if err != nil {
		return nil, fmt.Errorf("simulation: %w", err)
	}
	clips, err := cfg.Animation.ClipSet()
	if err != nil {
		return nil, fmt.Errorf("animation: %w", err)
	}
	// Fail at startup rather than on the first connection.
	if _, err = needs.NewSimulator(cfg.Needs, cfg.Scene.Points); err != nil {
		return nil, fmt.Errorf("needs: %w", err)
	}

	var source assets.Source = assets.StaticSource{}
	if cfg.Assets.Source == "dir" {
		source = assets.DirSource{Root: cfg.Assets.Root, Ext: cfg.Assets.Ext}
	}

	scoped := logger.With(log.String("component", "sim"))
	scoped.Info("Scene loaded",
		log.Int("obstacles", layout.Len()),
		log.Int("points", len(cfg.Scene.Points)),
		log.String("layout_digest", layout.DigestString()),
		log.String("collision", policy.String()),
	)

	return &Factory{
		cfg:      cfg,
		base:     logger,
		logger:   scoped,
		layout:   layout,
		keys:     keys,
		policy:   policy,
		clips:    clips,
		source:   source,
		required: cfg.Scene.RequiredAssets(),
	}, nil
}

// WithSource returns a copy of f that loads assets from source.
func (f *Factory) WithSource(source assets.Source) *Factory {
	cp := *f
	cp.source = source
	return &cp
}

func (f *Factory) Layout() *spatial.Layout { return f.layout }
func (f *Factory) Config() *config.Config  { return f.cfg }

// Logger is the unscoped logger the factory was built with.
func (f *Factory) Logger() log.Log { return f.base }

// New builds a driver and starts loading its assets. ctx bounds the loads,
// not the driver.
func (f *Factory) New(ctx context.Context) (*Driver, error) {
	simulator, err := needs.NewSimulator(f.cfg.Needs, f.cfg.Scene.Points)
	if err != nil {
		return nil, err
	}
	mixer, err := animation.NewMixer(f.clips)
	if err != nil {
		return nil, err
	}
	controller := locomotion.NewController(locomotion.Options{
		IdleClip:  f.cfg.Animation.IdleClip,
		CrossFade: f.cfg.Animation.CrossFade,
	})
	if err = mixer.Apply(controller.Initial()); err != nil {
		return nil, err
	}

	logger := f.logger.WithContext(ctx)
	registry := assets.NewRegistry(f.source, f.cfg.Assets.Parallel, f.base.WithContext(ctx))
	if err = registry.Request(ctx, f.required...); err != nil {
		return nil, err
	}

	sampler := input.NewSampler(f.keys)
	resolver := spatial.NewResolver(f.layout, f.cfg.Simulation.HalfExtent)
	stepper := motion.NewStepper(resolver, f.cfg.Simulation.Speed, f.policy)
	pipeline := systems.NewPipeline[*State]()
	err = pipeline.Register(
		inputSystem{sampler: sampler},
		motionSystem{stepper: stepper},
		locomotionSystem{},
		needsSystem{},
		cameraSystem{},
		animationSystem{},
	)
	if err != nil {
		return nil, err
	}

	return &Driver{
		state: &State{
			Locomotion: controller,
			Needs:      simulator,
			Camera:     camera.NewRig(f.cfg.Camera.Options()),
			Mixer:      mixer,
		},
		pipeline: pipeline,
		sampler:  sampler,
		layout:   f.layout,
		resolver: resolver,
		stepper:  stepper,
		assets:   registry,
		required: f.required,
		bus:      bus.New(),
		logger:   logger,
	}, nil
}
