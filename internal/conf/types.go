package conf

import "time"

type Config struct {
	Interval   int        `toml:"interval"` // seconds between cycles
	Metrics    Metrics    `toml:"metrics"`
	Thresholds Thresholds `toml:"thresholds"`
	Sensor     Sensor     `toml:"sensor"`
	Smartctl   Smartctl   `toml:"smartctl"`
	Web        Web        `toml:"web"`
	Alerts     Alerts     `toml:"alerts"`
	Auth       Auth       `toml:"auth"`
}

// Metrics enables metric families
type Metrics struct {
	CPU     bool `toml:"cpu"`
	Storage bool `toml:"storage"`
}

// Thresholds holds alert limits. A nil limit disables its rule.
type Thresholds struct {
	CPU     CPUThresholds     `toml:"cpu"`
	Storage StorageThresholds `toml:"storage"`
}

type CPUThresholds struct {
	Usage              *float64 `toml:"usage"`
	Temperature        *float64 `toml:"temperature"`
	PackageTemperature *float64 `toml:"package_temperature"`
}

type StorageThresholds struct {
	Temperature *int    `toml:"temperature"`
	FreeSpace   *uint64 `toml:"free_space"` // bytes
}

// Sensor configures the LibreHardwareMonitor endpoint
type Sensor struct {
	URL     string        `toml:"url"`
	Vendor  string        `toml:"vendor"` // intel or amd, empty to detect
	Timeout time.Duration `toml:"timeout"`
}

type Smartctl struct {
	Path    string        `toml:"path"`
	Timeout time.Duration `toml:"timeout"`
}

type Web struct {
	Enabled  bool   `toml:"enabled"`
	Addr     string `toml:"addr"`
	RootPath string `toml:"root_path"`
}

type Alerts struct {
	LogSize int    `toml:"log_size"`
	Webhook string `toml:"webhook"`
	Command string `toml:"command"`
}

type Auth struct {
	Users map[string]string `toml:"users"`
}
