// Package config holds the spool configuration and its viper wiring.
package config

// Config is the full spool configuration. Values come from defaults, an
// optional YAML config file, and SPOOL_* environment variables, in
// ascending precedence.
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Demo   DemoConfig   `mapstructure:"demo"`
}

// ServerConfig holds the HTTP server settings.
type ServerConfig struct {
	Listen string `mapstructure:"listen"`
}

// DemoConfig holds the defaults for the simulation endpoints. Each knob can
// still be overridden per-request via query parameters.
type DemoConfig struct {
	// Count is the number of items a demo producer yields.
	Count int `mapstructure:"count"`

	// DelayMS is the simulated per-item production latency in milliseconds.
	DelayMS int `mapstructure:"delay_ms"`

	// Comment is the initial SSE keep-alive comment text.
	Comment string `mapstructure:"comment"`
}

const (
	defaultListen      = ":8080"
	defaultDemoCount   = 10
	defaultDemoDelayMS = 100
	defaultDemoComment = "stream open"
)

// NewDefaultConfig returns a Config with sane defaults for all fields.
// This is the single source of truth for default values.
func NewDefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Listen: defaultListen,
		},
		Demo: DemoConfig{
			Count:   defaultDemoCount,
			DelayMS: defaultDemoDelayMS,
			Comment: defaultDemoComment,
		},
	}
}
