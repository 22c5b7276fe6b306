package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/zeusync/hogar/internal/config"
	"github.com/zeusync/hogar/internal/injector"
	"github.com/zeusync/hogar/internal/terminal"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config overlaid on the defaults")
	logPath := flag.String("log", "hogar-terminal.log", "log file; the terminal itself is the screen")
	flag.Parse()

	if err := run(*configPath, *logPath); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath, logPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg.Log.Outputs = []string{logPath}

	factory, cleanup, err := injector.InitializeFactory(cfg)
	if err != nil {
		return fmt.Errorf("build simulation: %w", err)
	}
	defer cleanup()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	driver, err := factory.New(ctx)
	if err != nil {
		return fmt.Errorf("start simulation: %w", err)
	}
	keys, err := cfg.Input.KeyMap()
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("open screen: %w", err)
	}
	if err = screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	screen.EnableMouse()
	screen.EnableFocus()
	screen.HideCursor()

	app := terminal.NewApp(screen, driver, terminal.Options{
		Keys:         keys,
		Interval:     cfg.Simulation.TickInterval(),
		HoldDelay:    cfg.Terminal.HoldDelay,
		HoldWindow:   cfg.Terminal.HoldWindow,
		CellsPerUnit: cfg.Terminal.CellsPerUnit,
	}, factory.Logger())
	return app.Run(ctx)
}
