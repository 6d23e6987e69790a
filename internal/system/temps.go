package system

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/shirou/gopsutil/v4/sensors"
)

// ErrSensorNotFound means the expected sensor group is not exposed by the OS.
// It is distinct from a zero reading.
var ErrSensorNotFound = errors.New("sensor group not found")

// SensorGroup describes how a CPU driver names its hwmon sensors.
type SensorGroup struct {
	Prefix  string   // driver name, e.g. "coretemp"
	Cores   []string // key prefixes, after the driver name, of per-core sensors
	Package []string // keys, after the driver name, of the package sensor

	// Aggregate drivers report one die-level value instead of per-core ones.
	Aggregate bool
}

var (
	// IntelGroup matches the coretemp driver: core_0, core_1, package_id_0.
	IntelGroup = SensorGroup{
		Prefix:  "coretemp",
		Cores:   []string{"core_"},
		Package: []string{"package_id_0"},
	}
	// AMDGroup matches the k10temp driver, which only exposes CCD aggregates.
	AMDGroup = SensorGroup{
		Prefix:    "k10temp",
		Cores:     []string{"tccd1", "tdie"},
		Package:   []string{"tctl"},
		Aggregate: true,
	}
)

// GroupFor returns the sensor group for a vendor as returned by GetCPUVendor.
func GroupFor(vendor string) SensorGroup {
	if vendor == "amd" {
		return AMDGroup
	}
	return IntelGroup
}

// TemperatureFunc lists raw temperature sensors. It matches
// sensors.TemperaturesWithContext.
type TemperatureFunc func(ctx context.Context) ([]sensors.TemperatureStat, error)

// GetCoreTemperatures reads per-core and package temperatures from the OS
// sensors belonging to group.
func GetCoreTemperatures(ctx context.Context, group SensorGroup) (*CoreTemperatures, error) {
	return readCoreTemperatures(ctx, sensors.TemperaturesWithContext, group)
}

func readCoreTemperatures(ctx context.Context, list TemperatureFunc, group SensorGroup) (*CoreTemperatures, error) {
	stats, err := list(ctx)
	if err != nil {
		// gopsutil reports unreadable sensor files as warnings next to the
		// sensors it could read.
		var warns *sensors.Warnings
		if !errors.As(err, &warns) || len(stats) == 0 {
			return nil, fmt.Errorf("failed to read temperature sensors: %w", err)
		}
	}

	type core struct {
		index int
		temp  float64
	}
	var (
		cores []core
		found bool
		temps CoreTemperatures
	)
	prefix := group.Prefix + "_"
	for _, s := range stats {
		if s.SensorKey != group.Prefix && !strings.HasPrefix(s.SensorKey, prefix) {
			continue
		}
		found = true
		label := strings.TrimPrefix(s.SensorKey, prefix)

		if containsKey(group.Package, label) {
			v := s.Temperature
			temps.Package = &v
			continue
		}
		for _, p := range group.Cores {
			if strings.HasPrefix(label, p) {
				cores = append(cores, core{index: coreIndex(label, p), temp: s.Temperature})
				break
			}
		}
	}
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrSensorNotFound, group.Prefix)
	}

	sort.SliceStable(cores, func(i, j int) bool { return cores[i].index < cores[j].index })
	for _, c := range cores {
		temps.Cores = append(temps.Cores, c.temp)
	}
	if group.Aggregate && len(temps.Cores) > 1 {
		temps.Cores = temps.Cores[:1]
	}
	return &temps, nil
}

func containsKey(keys []string, label string) bool {
	for _, k := range keys {
		if k == label {
			return true
		}
	}
	return false
}

// coreIndex parses the numeric suffix of a core label, or -1.
func coreIndex(label, prefix string) int {
	n, err := strconv.Atoi(strings.TrimPrefix(label, prefix))
	if err != nil {
		return -1
	}
	return n
}
