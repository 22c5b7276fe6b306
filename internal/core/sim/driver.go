package sim

import (
	"github.com/zeusync/hogar/internal/core/assets"
	"github.com/zeusync/hogar/internal/core/events/bus"
	"github.com/zeusync/hogar/internal/core/input"
	"github.com/zeusync/hogar/internal/core/motion"
	"github.com/zeusync/hogar/internal/core/needs"
	"github.com/zeusync/hogar/internal/core/observability/log"
	"github.com/zeusync/hogar/internal/core/spatial"
	"github.com/zeusync/hogar/internal/core/systems"
	"github.com/zeusync/hogar/internal/core/systems/physics"
)

const eventSource = "sim"

// Driver advances one simulation. Input may be fed from any goroutine
// through Input(); everything else must be called from the goroutine that
// calls Tick.
type Driver struct {
	state    *State
	pipeline *systems.Pipeline[*State]
	sampler  *input.Sampler
	layout   *spatial.Layout
	resolver *spatial.Resolver
	stepper  *motion.Stepper
	assets   *assets.Registry
	required []string
	ready    bool
	bus      bus.EventBus
	logger   log.Log
}

func (d *Driver) Input() *input.Sampler    { return d.sampler }
func (d *Driver) Bus() bus.EventBus        { return d.bus }
func (d *Driver) Layout() *spatial.Layout  { return d.layout }
func (d *Driver) Assets() *assets.Registry { return d.assets }
func (d *Driver) Ready() bool              { return d.ready }
func (d *Driver) ExecutionOrder() []string { return d.pipeline.ExecutionOrder() }

func (d *Driver) Points() []needs.PointOfInterest { return d.state.Needs.Points() }

// HalfExtent and Collision describe how the avatar collides, for clients
// that predict movement locally.
func (d *Driver) HalfExtent() float64      { return d.resolver.HalfExtent() }
func (d *Driver) Collision() motion.Policy { return d.stepper.Policy() }

// Metrics returns timing for one pipeline stage.
func (d *Driver) Metrics(name string) (systems.Metrics, bool) {
	return d.pipeline.Metrics(name)
}

// SetCameraPosition places the camera for manual mode.
func (d *Driver) SetCameraPosition(p physics.Vec3) {
	d.state.Camera.SetPosition(p)
}

// Tick runs one update of dt seconds. Until the avatar and every point of
// interest asset have loaded the whole update is skipped and the frame only
// reports loading progress; the first tick after that runs normally.
func (d *Driver) Tick(dt float64) Frame {
	if !d.ready {
		if !d.assets.Ready(d.required...) {
			settled, total := d.assets.Progress()
			return Frame{
				Tick:    d.state.Tick,
				Skipped: true,
				Loading: &Progress{Settled: settled, Total: total, Failed: d.assets.Failed()},
			}
		}
		d.ready = true
		d.logger.Info("Simulation ready",
			log.Int("assets", len(d.required)),
			log.String("layout_digest", d.layout.DigestString()),
		)
		d.publish(EventReady, ReadyEvent{Tick: d.state.Tick, LayoutDigest: d.layout.DigestString()})
	}

	st := d.state
	st.reset()
	st.Tick++
	d.pipeline.Update(dt, st)
	d.emit()
	return d.frame()
}

func (d *Driver) emit() {
	st := d.state
	for _, err := range st.Errors {
		d.logger.Error("Tick stage failed", log.Uint64("tick", st.Tick), log.Error(err))
	}
	if st.Command != nil {
		state := st.Locomotion.State().String()
		d.logger.Debug("Locomotion changed", log.Uint64("tick", st.Tick), log.String("state", state))
		d.publish(EventLocomotionChanged, LocomotionEvent{Tick: st.Tick, State: state, Command: *st.Command})
	}
	if st.FollowChanged {
		follow := st.Camera.Orbit().Follow
		d.logger.Debug("Camera mode changed", log.Uint64("tick", st.Tick), log.Bool("follow", follow))
		d.publish(EventCameraModeChanged, CameraModeEvent{Tick: st.Tick, Follow: follow})
	}
	for _, edge := range st.NeedEdges {
		typ := EventNeedRecovered
		if edge.Depleted {
			typ = EventNeedDepleted
		}
		d.publish(typ, NeedEvent{Tick: st.Tick, Need: edge.Kind})
	}
}

func (d *Driver) publish(typ string, data any) {
	if err := d.bus.Publish(bus.NewEvent(typ, eventSource, data)); err != nil {
		d.logger.Warn("Event handler failed", log.String("event", typ), log.Error(err))
	}
}

func (d *Driver) frame() Frame {
	st := d.state
	pos := st.Avatar.Position()
	return Frame{
		Tick:       st.Tick,
		Avatar:     st.Avatar,
		Moving:     st.Motion.Moving,
		Locomotion: st.Locomotion.State().String(),
		Command:    st.Command,
		Animation:  st.Mixer.Snapshot(),
		Needs:      st.Needs.Display(),
		Camera:     st.Camera.Pose(),
		Orbit:      st.Camera.Orbit(),
		Nearby:     st.Needs.Nearby(pos),
	}
}
