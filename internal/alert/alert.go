package alert

import (
	"fmt"
	"time"

	"hostwatch/internal/conf"
	"hostwatch/internal/metrics"
	"hostwatch/internal/smart"
	"hostwatch/internal/system"
)

// Kind names the rule that produced an alert
type Kind string

const (
	CpuUsageHigh          Kind = "CpuUsageHigh"
	CpuTempHigh           Kind = "CpuTempHigh"
	CpuPackageTempHigh    Kind = "CpuPackageTempHigh"
	DiskTempHigh          Kind = "DiskTempHigh"
	PartitionFreeSpaceLow Kind = "PartitionFreeSpaceLow"
)

// Alert is one threshold violation observed in one reading
type Alert struct {
	Kind      Kind      `json:"kind"`
	Subject   string    `json:"subject"`
	Value     float64   `json:"value"`
	Threshold float64   `json:"threshold"`
	Timestamp time.Time `json:"timestamp"`
}

// Message renders a one-line human readable description
func (a Alert) Message() string {
	switch a.Kind {
	case CpuUsageHigh:
		return fmt.Sprintf("CPU usage %s%% reached limit %s%%",
			system.Float2string(a.Value, 2), system.Float2string(a.Threshold, 2))
	case CpuTempHigh:
		return fmt.Sprintf("CPU temperature %s°C reached limit %s°C",
			system.Float2string(a.Value, 2), system.Float2string(a.Threshold, 2))
	case CpuPackageTempHigh:
		return fmt.Sprintf("CPU package temperature %s°C reached limit %s°C",
			system.Float2string(a.Value, 2), system.Float2string(a.Threshold, 2))
	case DiskTempHigh:
		return fmt.Sprintf("Disk %s temperature %d°C reached limit %d°C",
			a.Subject, int(a.Value), int(a.Threshold))
	case PartitionFreeSpaceLow:
		return fmt.Sprintf("Partition %s has %s free, limit %s",
			a.Subject, system.ProperUnit(uint64(a.Value)), system.ProperUnit(uint64(a.Threshold)))
	}
	return fmt.Sprintf("%s %s: %v (limit %v)", a.Kind, a.Subject, a.Value, a.Threshold)
}

// Evaluate applies every configured rule to r. Rules are independent and
// nothing is remembered between calls.
func Evaluate(r *metrics.Reading, t conf.Thresholds) []Alert {
	if r == nil {
		return nil
	}
	var alerts []Alert
	add := func(kind Kind, subject string, value, threshold float64) {
		alerts = append(alerts, Alert{
			Kind:      kind,
			Subject:   subject,
			Value:     value,
			Threshold: threshold,
			Timestamp: r.Timestamp,
		})
	}

	if cpu := r.CPU; cpu != nil {
		if atLeast(cpu.AverageUtilization, t.CPU.Usage) {
			add(CpuUsageHigh, "cpu", *cpu.AverageUtilization, *t.CPU.Usage)
		}
		if atLeast(cpu.AverageTemperature, t.CPU.Temperature) {
			add(CpuTempHigh, "cpu", *cpu.AverageTemperature, *t.CPU.Temperature)
		}
		if atLeast(cpu.PackageTemperature, t.CPU.PackageTemperature) {
			add(CpuPackageTempHigh, "cpu package", *cpu.PackageTemperature, *t.CPU.PackageTemperature)
		}
	}

	for _, d := range r.Disks {
		temp := d.Health.Temperature
		if limit := t.Storage.Temperature; limit != nil && temp != smart.NotFound && temp >= *limit {
			add(DiskTempHigh, diskName(d.Identity), float64(temp), float64(*limit))
		}
		if limit := t.Storage.FreeSpace; limit != nil {
			for _, u := range d.Usage {
				if u.Free <= *limit {
					add(PartitionFreeSpaceLow, u.Path, float64(u.Free), float64(*limit))
				}
			}
		}
	}
	return alerts
}

func atLeast(value, limit *float64) bool {
	return value != nil && limit != nil && *value >= *limit
}

func diskName(d metrics.DiskIdentity) string {
	switch {
	case d.Model != "":
		return d.Model
	case d.Device != "":
		return d.Device
	case len(d.Partitions) > 0:
		return d.Partitions[0].Path
	}
	return "unknown"
}
