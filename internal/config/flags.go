package config

import (
	"flag"
	"time"
)

var (
	flagConfig  = flag.String("config", "", "Path to config file")
	flagDebug   = flag.Bool("debug", false, "Enable debug logging")
	flagMode    = flag.String("mode", "", "Build mode: baseline, parallel or nucleotide")
	flagNucleic = flag.Bool("nucleic", false, "Shorthand for -mode nucleotide")
	flagFast    = flag.Bool("fast", false, "Use the low detail style")
	flagWorkers = flag.Int("workers", 0, "Goroutines per parallel pass (0: one per CPU)")
	flagIn      = flag.String("in", "", "Chain file to mesh")
	flagOut     = flag.String("out", "", "OBJ file to write")
	flagTimeout = flag.Duration("timeout", 0, "Abort a parallel build after this long")
	flagSave    = flag.Bool("save-config", false, "Write the effective config to the config directory and exit")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// SaveRequested reports whether -save-config was given.
func SaveRequested() bool {
	return *flagSave
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagMode != "" {
		cfg.Build.Mode = *flagMode
	}
	if *flagNucleic {
		cfg.Build.Mode = ModeNucleotide
	}
	if *flagFast {
		cfg.Style.Fast = true
		cfg.NucleotideStyle.Fast = true
	}
	if *flagWorkers > 0 {
		cfg.Build.Workers = *flagWorkers
	}
	if *flagIn != "" {
		cfg.Build.Input = *flagIn
	}
	if *flagOut != "" {
		cfg.Build.Output = *flagOut
	}
	if *flagTimeout > time.Duration(0) {
		cfg.Build.Timeout = *flagTimeout
	}
}
