package config

import "flag"

var (
	flagConfig      = flag.String("config", "", "Path to config file")
	flagDebug       = flag.Bool("debug", false, "Enable debug logging")
	flagLogFile     = flag.String("log-file", "", "Write logs to this file")
	flagNoYUp       = flag.Bool("keep-axis", false, "Keep the document up axis instead of converting to +Y")
	flagFlipV       = flag.Bool("flip-v", false, "Flip texture V coordinates")
	flagFlatNormals = flag.Bool("flat-normals", false, "Use face normals")
	flagColorGroup  = flag.String("color-group", "", "Vertex color channel to use")
	flagFormat      = flag.String("format", "", "Output format: text or yaml")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// Args returns the arguments left after flag parsing.
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
	if *flagLogFile != "" {
		cfg.Logging.LogFile = *flagLogFile
	}
	if *flagNoYUp {
		cfg.Mesh.YUp = false
	}
	if *flagFlipV {
		cfg.Mesh.FlipV = true
	}
	if *flagFlatNormals {
		cfg.Mesh.FlatNormals = true
	}
	if *flagColorGroup != "" {
		cfg.Mesh.ColorGroup = *flagColorGroup
	}
	if *flagFormat != "" {
		cfg.Output.Format = *flagFormat
	}
}
