package conf

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
)

// DefaultInterval is used when the file does not set one or cannot be read.
const DefaultInterval = 30

// Default returns a config with both metric families enabled and no
// thresholds set.
func Default() Config {
	return Config{
		Interval: DefaultInterval,
		Metrics: Metrics{
			CPU:     true,
			Storage: true,
		},
		Sensor: Sensor{
			URL:     "http://localhost:8085/data.json",
			Timeout: 3 * time.Second,
		},
		Smartctl: Smartctl{
			Timeout: 15 * time.Second,
		},
		Web: Web{
			Enabled:  true,
			Addr:     ":8080",
			RootPath: "web",
		},
		Alerts: Alerts{
			LogSize: 200,
		},
	}
}

// Disabled is what a cycle runs with when the file cannot be used: nothing
// is sampled, but the agent keeps polling the file.
func Disabled() Config {
	cfg := Default()
	cfg.Metrics = Metrics{}
	return cfg
}

// IntervalDuration returns the cycle interval, never shorter than min.
func (c Config) IntervalDuration(min time.Duration) time.Duration {
	d := time.Duration(c.Interval) * time.Second
	if d < min {
		return min
	}
	return d
}

// Load decodes the TOML file at path over the defaults
func Load(path string) (Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); err != nil {
		return cfg, fmt.Errorf("config file %s: %w", path, err)
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to decode config %s: %w", path, err)
	}
	return cfg, nil
}

// File is the configuration source. It is re-read on every cycle so edits
// take effect without a restart.
type File struct {
	mu   sync.RWMutex // Protects access to the file
	Path string
}

// NewFile returns a File for path
func NewFile(path string) *File {
	return &File{Path: path}
}

// Read loads the current configuration. A missing or malformed file is
// logged and yields Disabled().
func (f *File) Read() Config {
	f.mu.RLock()
	defer f.mu.RUnlock()

	cfg, err := Load(f.Path)
	if err != nil {
		log.Printf("conf: %v", err)
		return Disabled()
	}
	return cfg
}

// Write saves the provided config to the TOML file
func (f *File) Write(cfg Config) (err error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out, err := os.Create(f.Path)
	if err != nil {
		return fmt.Errorf("failed to create config file %w", err)
	}
	defer out.Close()
	err = toml.NewEncoder(out).Encode(cfg)
	if err != nil {
		return fmt.Errorf("failed to write config file %w", err)
	}
	return nil
}

// Update applies fn to the configuration on disk and saves the result. A
// missing file starts from Default(); a malformed one is an error so it is
// never overwritten.
func (f *File) Update(fn func(cfg *Config)) error {
	cfg, err := Load(f.Path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		cfg = Default()
	}
	fn(&cfg)
	return f.Write(cfg)
}
