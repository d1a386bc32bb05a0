// geomtool runs collision queries against YAML scene files.
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-collide/internal/config"
	"github.com/Faultbox/midgard-collide/internal/logger"
	"github.com/Faultbox/midgard-collide/internal/picking"
	"github.com/Faultbox/midgard-collide/internal/scene"
)

func main() {
	config.ParseFlags()

	args := config.Args()
	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	logger.Sugar.Debugf("Config: %+v", cfg)

	command, rest := args[0], args[1:]
	switch command {
	case "info":
		err = cmdInfo(cfg, rest)
	case "cast":
		err = cmdCast(cfg, rest)
	case "overlaps":
		err = cmdOverlaps(cfg, rest)
	case "pick":
		err = cmdPick(cfg, rest)
	case "init-config":
		err = cmdInitConfig(cfg, rest)
	case "help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		logger.Error("command failed", zap.String("command", command), zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`geomtool - collision queries over scene files

Usage:
  geomtool [flags] <command> [args]

Commands:
  info [scene.yaml]           Show object kinds and scene bounds
  cast [scene.yaml]           Cast every scene ray, report the nearest hit
  overlaps [scene.yaml]       List colliding object pairs
  pick <x> <y> [scene.yaml]   Cast the camera ray through a pixel
  init-config [path]          Write the current config as YAML

Flags:
  -config <path>     Config file (default ./geomtool.yaml, then the user config dir)
  -scene <path>      Scene used when the command gets none
  -workers <n>       Concurrent ray casts, 0 = one per CPU
  -timeout <dur>     Deadline for a cast batch
  -debug             Debug logging
  -log-file <path>   Also write JSON logs to a rotating file

Examples:
  geomtool info testdata/room.yaml
  geomtool -workers 4 cast testdata/room.yaml
  geomtool pick 400 300 testdata/room.yaml`)
}

// loadScene loads the scene named in args, falling back to the configured one.
func loadScene(cfg *config.Config, args []string) (*scene.Scene, error) {
	path := cfg.Scene.Path
	if len(args) > 0 {
		path = args[0]
	}
	if path == "" {
		return nil, fmt.Errorf("no scene file given and scene.path is not set")
	}
	return scene.Load(path)
}

func cmdInfo(cfg *config.Config, args []string) error {
	s, err := loadScene(cfg, args)
	if err != nil {
		return err
	}

	fmt.Printf("Objects: %d\n", len(s.Objects))
	fmt.Printf("Rays:    %d\n", len(s.Rays))
	if box, ok := s.Bounds(); ok {
		fmt.Printf("Bounds:  %v - %v\n", box.Min(), box.Max())
	}
	fmt.Println()
	fmt.Println("Objects by kind:")
	for _, k := range s.SortedKinds() {
		fmt.Printf("  %-12s %d\n", k.Kind, k.Count)
	}
	return nil
}

func cmdCast(cfg *config.Config, args []string) error {
	s, err := loadScene(cfg, args)
	if err != nil {
		return err
	}

	ctx := context.Background()
	if cfg.Query.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Query.Timeout)
		defer cancel()
	}

	results, err := s.CastAll(ctx, cfg.Query.Workers)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "RAY\tOBJECT\tT\tDISTANCE\tPOINT")
	for _, r := range results {
		if !r.Hit {
			fmt.Fprintf(w, "%s\t-\t-\t-\t-\n", r.Ray)
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%.6g\t%.6g\t%v\n", r.Ray, r.Object, r.T, r.Distance, r.Point)
	}
	return w.Flush()
}

func cmdOverlaps(cfg *config.Config, args []string) error {
	s, err := loadScene(cfg, args)
	if err != nil {
		return err
	}

	overlaps, skipped, err := s.Overlaps()
	if err != nil {
		return err
	}
	for _, o := range overlaps {
		fmt.Printf("%s <-> %s\n", o.A, o.B)
	}
	fmt.Printf("\n%d overlapping pairs, %d pairs without a test\n", len(overlaps), skipped)
	return nil
}

func cmdPick(cfg *config.Config, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: geomtool pick <x> <y> [scene.yaml]")
	}
	x, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("x: %w", err)
	}
	y, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("y: %w", err)
	}

	s, err := loadScene(cfg, args[2:])
	if err != nil {
		return err
	}

	fallback := picking.Viewport{
		Width:  float64(cfg.Scene.ViewportWidth),
		Height: float64(cfg.Scene.ViewportHeight),
	}
	res, err := s.Pick(x, y, fallback)
	if err != nil {
		return err
	}
	if !res.Hit {
		fmt.Println("nothing under the cursor")
		return nil
	}
	fmt.Printf("%s at t=%.6g %v\n", res.Object, res.T, res.Point)
	return nil
}

func cmdInitConfig(cfg *config.Config, args []string) error {
	if len(args) > 0 {
		return cfg.SaveTo(args[0])
	}
	return cfg.Save()
}
