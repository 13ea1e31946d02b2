// Package config handles decimater configuration loading and merging.
package config

// Config holds all decimation settings. Precedence when loading is
// defaults < file < CLI flags, matching Load's merge order.
type Config struct {
	Decimation DecimationConfig `yaml:"decimation"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// DecimationConfig holds the tunables of the cost & placement oracle.
type DecimationConfig struct {
	// SeamAwareDegree is 0 (NoUVShapePreserving), 1 (UVShapePreserving) or
	// 2 (Seamless).
	SeamAwareDegree    int     `yaml:"seam_aware_degree"`
	PreserveBoundaries bool    `yaml:"preserve_boundaries"`
	UVWeight           float64 `yaml:"uv_weight"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values, matching the
// CLI's documented defaults (--strict 2, --uv-weight 1.0).
func Default() *Config {
	return &Config{
		Decimation: DecimationConfig{
			SeamAwareDegree:    2,
			PreserveBoundaries: false,
			UVWeight:           1.0,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
