package config

import (
	"fmt"
	"path/filepath"
	"time"
)

// Default timings mirror the contracts of the bundled server: the health
// endpoint is expected to answer within a few seconds of spawn, and the
// server installs a SIGTERM handler that flushes its cache before exiting.
const (
	DefaultPort = 3847

	defaultHealthInterval = 200 * time.Millisecond
	defaultHealthTimeout  = 500 * time.Millisecond
	defaultHealthDeadline = 4 * time.Second

	defaultShutdownGrace = 2 * time.Second
)

// binariesSubdir is the resource-bundle subdirectory holding the server
// binary and the yt CLI tool.
const binariesSubdir = "binaries"

// Config describes a single launch attempt of the bundled server. Values are
// resolved once by Load and treated as immutable afterwards.
type Config struct {
	// ResourceDir is the application resource bundle containing the
	// architecture-qualified server binary and the yt CLI tool.
	ResourceDir string `yaml:"resourceDir"`

	// DataDir is the per-user application data directory. The server cache
	// and the combined server log live underneath it.
	DataDir string `yaml:"dataDir"`

	// Port is the fixed TCP port the server binds on localhost.
	Port int `yaml:"port"`

	Health   HealthPolicy   `yaml:"health"`
	Shutdown ShutdownPolicy `yaml:"shutdown"`
}

// HealthPolicy bounds the post-spawn readiness wait.
type HealthPolicy struct {
	// URL overrides the health endpoint derived from Port. Empty outside of
	// tests and unusual proxy setups.
	URL string `yaml:"url"`

	// Interval is the pause between consecutive health requests.
	Interval Duration `yaml:"interval"`

	// Timeout bounds each individual health request.
	Timeout Duration `yaml:"timeout"`

	// Deadline bounds the overall wait across all attempts.
	Deadline Duration `yaml:"deadline"`
}

// ShutdownPolicy controls the cooperative-to-forced termination escalation.
type ShutdownPolicy struct {
	// GracePeriod is how long the server gets to exit after the cooperative
	// termination signal before it is killed unconditionally.
	GracePeriod Duration `yaml:"gracePeriod"`
}

// Default returns a configuration carrying the stock port and timing
// policies. Paths are left empty and must be supplied by the caller or the
// configuration file.
func Default() *Config {
	return &Config{
		Port: DefaultPort,
		Health: HealthPolicy{
			Interval: Duration{Duration: defaultHealthInterval},
			Timeout:  Duration{Duration: defaultHealthTimeout},
			Deadline: Duration{Duration: defaultHealthDeadline},
		},
		Shutdown: ShutdownPolicy{
			GracePeriod: Duration{Duration: defaultShutdownGrace},
		},
	}
}

// Validate reports the first problem that would make a launch attempt
// impossible before any side effect occurs.
func (c *Config) Validate() error {
	if c.ResourceDir == "" {
		return fmt.Errorf("config: resourceDir is required")
	}
	if c.DataDir == "" {
		return fmt.Errorf("config: dataDir is required")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("config: port %d out of range", c.Port)
	}
	if c.Health.Interval.Duration <= 0 {
		return fmt.Errorf("config: health.interval must be positive")
	}
	if c.Health.Timeout.Duration <= 0 {
		return fmt.Errorf("config: health.timeout must be positive")
	}
	if c.Health.Deadline.Duration <= 0 {
		return fmt.Errorf("config: health.deadline must be positive")
	}
	if c.Shutdown.GracePeriod.Duration <= 0 {
		return fmt.Errorf("config: shutdown.gracePeriod must be positive")
	}
	return nil
}

// BinaryPath resolves the architecture-qualified server binary for the given
// GOARCH value. Only arm64 and amd64 builds of the server are bundled.
func (c *Config) BinaryPath(goarch string) (string, error) {
	var suffix string
	switch goarch {
	case "arm64":
		suffix = "aarch64"
	case "amd64":
		suffix = "x86_64"
	default:
		return "", fmt.Errorf("unsupported architecture: %s", goarch)
	}
	return filepath.Join(c.ResourceDir, binariesSubdir, "voxtube-server-"+suffix), nil
}

// CLIToolPath returns the bundled yt CLI tool handed to the server via the
// environment.
func (c *Config) CLIToolPath() string {
	return filepath.Join(c.ResourceDir, binariesSubdir, "yt")
}

// CacheDir returns the server's cache directory under the data dir.
func (c *Config) CacheDir() string {
	return filepath.Join(c.DataDir, "cache")
}

// LogDir returns the directory holding the combined server log.
func (c *Config) LogDir() string {
	return filepath.Join(c.DataDir, "logs")
}

// HealthURL returns the endpoint polled after spawn. Any 2xx response counts
// as healthy.
func (c *Config) HealthURL() string {
	if c.Health.URL != "" {
		return c.Health.URL
	}
	return fmt.Sprintf("http://localhost:%d/api/health", c.Port)
}
