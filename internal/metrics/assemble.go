package metrics

import (
	"math"
	"time"

	"hostwatch/internal/smart"
)

// DataUnitBytes is the size of one NVMe data unit (1000 × 512 bytes).
const DataUnitBytes = 512000

// Assemble builds the Reading for raw. It does no I/O.
func Assemble(raw Raw, now time.Time) *Reading {
	r := &Reading{Timestamp: now}

	if raw.CPU != nil {
		r.CPU = &CPUReading{
			Model:              raw.CPU.Model,
			PhysicalCores:      raw.CPU.Counts.Physical,
			LogicalCores:       raw.CPU.Counts.Logical,
			Utilization:        clone(raw.CPU.Utilization),
			AverageUtilization: Mean(raw.CPU.Utilization),
			CoreTemperatures:   clone(raw.CPU.Temperatures.Cores),
			AverageTemperature: Mean(raw.CPU.Temperatures.Cores),
			PackageTemperature: raw.CPU.Temperatures.Package,
		}
	}

	if raw.Disks != nil {
		r.Disks = make([]DiskReading, 0, len(raw.Disks))
		for _, d := range raw.Disks {
			r.Disks = append(r.Disks, DiskReading{
				Identity: d.Identity,
				Health:   healthOf(d.Attributes),
				Usage:    d.Usage,
			})
		}
	}
	return r
}

func healthOf(a smart.Attributes) DiskHealth {
	return DiskHealth{
		PowerOnHours: a.PowerOnHours,
		BytesRead:    unitsToBytes(a.DataUnitsRead),
		BytesWritten: unitsToBytes(a.DataUnitsWritten),
		Temperature:  a.Temperature,
	}
}

func unitsToBytes(units *uint64) *uint64 {
	if units == nil {
		return nil
	}
	b := *units * DataUnitBytes
	return &b
}

// Mean returns the arithmetic mean of vs rounded to 2 decimals, or nil for
// an empty sequence.
func Mean(vs []float64) *float64 {
	if len(vs) == 0 {
		return nil
	}
	var sum float64
	for _, v := range vs {
		sum += v
	}
	m := math.Round(sum/float64(len(vs))*100) / 100
	return &m
}

func clone(vs []float64) []float64 {
	if vs == nil {
		return nil
	}
	return append([]float64(nil), vs...)
}
