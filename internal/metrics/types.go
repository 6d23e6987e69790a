package metrics

import (
	"time"

	"hostwatch/internal/storage"
	"hostwatch/internal/system"
)

// CPUReading holds CPU metrics for one cycle. Averages are nil when their
// sequence is empty; they are never reported as zero in that case.
type CPUReading struct {
	Model              string    `json:"model"`
	PhysicalCores      uint      `json:"physical_cores"`
	LogicalCores       uint      `json:"logical_cores"`
	Utilization        []float64 `json:"utilization"`
	AverageUtilization *float64  `json:"average_utilization"`
	CoreTemperatures   []float64 `json:"core_temperatures"`
	AverageTemperature *float64  `json:"average_temperature"`
	PackageTemperature *float64  `json:"package_temperature"`
}

type (
	DiskIdentity   = storage.Disk
	PartitionInfo  = storage.Partition
	PartitionUsage = system.DiskUsage
)

// DiskHealth holds SMART data for one disk. PowerOnHours and Temperature
// are smart.NotFound when the attribute was not reported.
type DiskHealth struct {
	PowerOnHours int     `json:"power_on_hours"`
	BytesRead    *uint64 `json:"bytes_read"`
	BytesWritten *uint64 `json:"bytes_written"`
	Temperature  int     `json:"temperature"`
}

// DiskReading pairs a disk with its health and the usage of its mounted
// partitions.
type DiskReading struct {
	Identity DiskIdentity     `json:"identity"`
	Health   DiskHealth       `json:"health"`
	Usage    []PartitionUsage `json:"usage"`
}

// Reading is one complete snapshot. It is never modified after Assemble
// returns it.
type Reading struct {
	Timestamp time.Time     `json:"timestamp"`
	CPU       *CPUReading   `json:"cpu,omitempty"`
	Disks     []DiskReading `json:"disks,omitempty"`
}
