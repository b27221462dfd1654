// Command cellterm-demo is a minimal runnable example of the cellterm
// toolkit: a focusable button and a text field stacked in one panel,
// driven by the library's own frame loop.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"cellterm"
)

// config is the optional, user-authored TOML file the demo accepts; the
// library itself never reads configuration from disk (see SPEC_FULL.md
// §1.3 — this is the demo CLI's own concern, not the core library's).
type config struct {
	Theme     string `toml:"theme"`
	TickRate  int    `toml:"tick_rate_ms"`
	MouseMode bool   `toml:"mouse_mode"`
}

func defaultConfig() config {
	return config{Theme: "default", TickRate: 16, MouseMode: true}
}

func loadConfig(path string) (config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func main() {
	var configPath string
	var inline bool

	root := &cobra.Command{
		Use:   "cellterm-demo",
		Short: "Minimal interactive demo of the cellterm TUI toolkit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return fmt.Errorf("cellterm-demo: load config: %w", err)
			}
			return run(cfg, inline)
		},
	}
	root.Flags().StringVarP(&configPath, "config", "c", "", "optional TOML config file")
	root.Flags().BoolVar(&inline, "inline", false, "render inline instead of the alternate screen")

	if err := root.Execute(); err != nil {
		slog.New(tint.NewHandler(os.Stderr, nil)).Error("cellterm-demo exited", "error", err)
		os.Exit(1)
	}
}

func run(cfg config, inline bool) error {
	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{Level: slog.LevelInfo}))
	cellterm.SetLogger(logger)
	logger.Info("starting demo", "theme", cfg.Theme, "tick_rate_ms", cfg.TickRate, "mouse", cfg.MouseMode)

	tty, err := cellterm.Open(os.Stdin)
	if err != nil {
		return err
	}

	mode := cellterm.ModeFullscreen
	if inline {
		mode = cellterm.ModeInline
	}
	if err := tty.Init(mode); err != nil {
		return err
	}
	defer func() {
		if err := tty.Deinit(); err != nil {
			logger.Warn("cleanup failed", "error", err)
		}
		logger.Info("demo exited")
	}()

	field := cellterm.NewTextField()
	field.Placeholder = "type something…"

	quit := cellterm.NewButton("Quit")
	quit.OnActivate(func(ctx *cellterm.EventContext, _ *cellterm.Button) { ctx.Quit() })

	root := newDemoRoot(field, quit)

	loop := cellterm.NewLoop(tty, cellterm.Options{
		Root:       root,
		Out:        os.Stdout,
		TickPeriod: time.Duration(cfg.TickRate) * time.Millisecond,
	})
	return loop.Start()
}
