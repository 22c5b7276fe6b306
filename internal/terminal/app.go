// Package terminal is a text frontend: a top-down view of the house drawn
// with tcell, driving one local simulation.
package terminal

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/zeusync/hogar/internal/core/events/bus"
	"github.com/zeusync/hogar/internal/core/input"
	"github.com/zeusync/hogar/internal/core/observability/log"
	"github.com/zeusync/hogar/internal/core/sim"
)

// Screen is what App needs from tcell.
type Screen interface {
	Canvas
	Show()
	Sync()
	PollEvent() tcell.Event
	Fini()
}

type Options struct {
	Keys         input.KeyMap
	Interval     time.Duration
	HoldDelay    time.Duration
	HoldWindow   time.Duration
	CellsPerUnit float64
}

type App struct {
	screen     Screen
	driver     *sim.Driver
	translator *Translator
	renderer   *Renderer
	interval   time.Duration
	logger     log.Log
}

func NewApp(screen Screen, driver *sim.Driver, opts Options, logger log.Log) *App {
	if opts.Interval <= 0 {
		opts.Interval = time.Second / 60
	}
	return &App{
		screen:     screen,
		driver:     driver,
		translator: NewTranslator(opts.Keys, driver.Input(), opts.HoldDelay, opts.HoldWindow),
		renderer:   NewRenderer(driver.Layout(), driver.Points(), opts.CellsPerUnit),
		interval:   opts.Interval,
		logger:     logger.With(log.String("component", "terminal")),
	}
}

// Run ticks and draws until ctx ends or the user quits. It finalises the
// screen on return.
func (a *App) Run(ctx context.Context) error {
	defer a.screen.Fini()

	sub, err := a.driver.Bus().Subscribe(bus.Wildcard, func(e bus.Event) error {
		a.logger.Debug("Simulation event", log.String("event", e.Type()), log.Any("data", e.Data()))
		return nil
	})
	if err != nil {
		return err
	}
	defer func() { _ = sub.Cancel() }()

	events := make(chan tcell.Event, 64)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()
	last := time.Now()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if _, resized := ev.(*tcell.EventResize); resized {
				a.screen.Sync()
				continue
			}
			if !a.translator.Handle(ev, time.Now()) {
				return nil
			}
		case now := <-ticker.C:
			a.translator.Holder().Expire(now)
			frame := a.driver.Tick(now.Sub(last).Seconds())
			last = now
			a.renderer.Draw(a.screen, frame)
			a.screen.Show()
		}
	}
}
