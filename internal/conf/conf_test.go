package conf

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestReadFullConfig(t *testing.T) {
	path := writeFile(t, `
interval = 10

[metrics]
cpu = true
storage = false

[thresholds.cpu]
usage = 80
temperature = 85.5

[thresholds.storage]
temperature = 60
free_space = 1073741824

[sensor]
vendor = "amd"
timeout = "2s"

[smartctl]
path = "/usr/sbin/smartctl"
`)
	cfg := NewFile(path).Read()

	if cfg.Interval != 10 || !cfg.Metrics.CPU || cfg.Metrics.Storage {
		t.Errorf("unexpected top level: %+v", cfg)
	}
	th := cfg.Thresholds
	if th.CPU.Usage == nil || *th.CPU.Usage != 80 {
		t.Errorf("usage = %v", th.CPU.Usage)
	}
	if th.CPU.Temperature == nil || *th.CPU.Temperature != 85.5 {
		t.Errorf("temperature = %v", th.CPU.Temperature)
	}
	if th.CPU.PackageTemperature != nil {
		t.Errorf("package temperature should be unset, got %v", *th.CPU.PackageTemperature)
	}
	if th.Storage.FreeSpace == nil || *th.Storage.FreeSpace != 1<<30 {
		t.Errorf("free space = %v", th.Storage.FreeSpace)
	}
	if cfg.Sensor.Vendor != "amd" || cfg.Sensor.Timeout != 2*time.Second {
		t.Errorf("sensor = %+v", cfg.Sensor)
	}
	if cfg.Sensor.URL != "http://localhost:8085/data.json" {
		t.Errorf("sensor url default lost: %q", cfg.Sensor.URL)
	}
	if cfg.Smartctl.Path != "/usr/sbin/smartctl" || cfg.Smartctl.Timeout != 15*time.Second {
		t.Errorf("smartctl = %+v", cfg.Smartctl)
	}
}

func TestReadDegradesToDisabled(t *testing.T) {
	tests := []struct {
		name string
		path string
	}{
		{"missing", filepath.Join(t.TempDir(), "nope.toml")},
		{"malformed", writeFile(t, "interval = [\n")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewFile(tt.path).Read()
			if cfg.Metrics.CPU || cfg.Metrics.Storage {
				t.Errorf("metrics should be disabled: %+v", cfg.Metrics)
			}
			if cfg.Interval != DefaultInterval {
				t.Errorf("interval = %d, want %d", cfg.Interval, DefaultInterval)
			}
		})
	}
}

func TestReadPicksUpEdits(t *testing.T) {
	path := writeFile(t, "interval = 10\n")
	f := NewFile(path)
	if got := f.Read().Interval; got != 10 {
		t.Fatalf("interval = %d", got)
	}
	if err := os.WriteFile(path, []byte("interval = 45\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if got := f.Read().Interval; got != 45 {
		t.Errorf("interval after edit = %d, want 45", got)
	}
}

func TestWriteRoundTripsUsers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	f := NewFile(path)

	cfg := Default()
	cfg.Auth.Users = map[string]string{"admin": "$2a$10$hash"}
	if err := f.Write(cfg); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got := f.Read()
	if got.Auth.Users["admin"] != "$2a$10$hash" {
		t.Errorf("users = %v", got.Auth.Users)
	}
}

func TestIntervalDuration(t *testing.T) {
	cfg := Config{Interval: 3}
	if got := cfg.IntervalDuration(5 * time.Second); got != 5*time.Second {
		t.Errorf("short interval = %v, want clamp to 5s", got)
	}
	cfg.Interval = 30
	if got := cfg.IntervalDuration(5 * time.Second); got != 30*time.Second {
		t.Errorf("interval = %v, want 30s", got)
	}
}

func TestUpdate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	f := NewFile(path)

	err := f.Update(func(cfg *Config) {
		cfg.Auth.Users = map[string]string{"admin": "hash"}
	})
	if err != nil {
		t.Fatalf("Update on missing file: %v", err)
	}
	got := f.Read()
	if !got.Metrics.CPU || !got.Metrics.Storage {
		t.Errorf("metrics = %+v, want defaults kept", got.Metrics)
	}
	if got.Auth.Users["admin"] != "hash" {
		t.Errorf("users = %v", got.Auth.Users)
	}

	bad := writeFile(t, "interval = [")
	if err := NewFile(bad).Update(func(*Config) {}); err == nil {
		t.Error("Update on malformed file: expected error")
	}
	if body, _ := os.ReadFile(bad); string(body) != "interval = [" {
		t.Errorf("malformed file was overwritten: %q", body)
	}
}
