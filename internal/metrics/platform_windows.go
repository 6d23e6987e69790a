//go:build windows

package metrics

import (
	"hostwatch/internal/conf"
	"hostwatch/internal/sensor"
	"hostwatch/internal/storage"
)

// NewPlatformSource selects the capability set for this operating system.
// Windows has no CPU sensors usable without a driver, so temperatures come
// from the LibreHardwareMonitor endpoint.
func NewPlatformSource(cfg conf.Sensor, vendor string) Source {
	return &SensorSource{
		Client:   sensor.NewClient(cfg.URL, cfg.Timeout),
		Vendor:   sensor.Vendor(vendor),
		Resolver: storage.NewPlatformResolver(),
	}
}
