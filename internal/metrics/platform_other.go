//go:build !windows

package metrics

import (
	"hostwatch/internal/conf"
	"hostwatch/internal/storage"
	"hostwatch/internal/system"
)

// NewPlatformSource selects the capability set for this operating system.
func NewPlatformSource(_ conf.Sensor, vendor string) Source {
	return NewNativeSource(system.GroupFor(vendor), storage.NewPlatformResolver())
}
