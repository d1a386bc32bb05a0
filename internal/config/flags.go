package config

import (
	"flag"
	"time"
)

var (
	flagConfig  = flag.String("config", "", "Path to config file")
	flagDebug   = flag.Bool("debug", false, "Enable debug logging")
	flagWorkers = flag.Int("workers", -1, "Concurrent ray casts (0 = one per CPU)")
	flagTimeout = flag.Duration("timeout", 0, "Deadline for a batch of ray casts")
	flagScene   = flag.String("scene", "", "Default scene file")
	flagLogFile = flag.String("log-file", "", "Write logs to this file as well")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// Args returns the non-flag arguments.
func Args() []string {
	return flag.Args()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagWorkers >= 0 {
		cfg.Query.Workers = *flagWorkers
	}
	if *flagTimeout > 0 {
		cfg.Query.Timeout = *flagTimeout
	}
	if *flagScene != "" {
		cfg.Scene.Path = *flagScene
	}
	if *flagLogFile != "" {
		cfg.Logging.LogFile = *flagLogFile
	}
}

// resetFlags restores flag defaults; tests use it between cases.
func resetFlags() {
	*flagConfig = ""
	*flagDebug = false
	*flagWorkers = -1
	*flagTimeout = time.Duration(0)
	*flagScene = ""
	*flagLogFile = ""
}
