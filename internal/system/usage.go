package system

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
)

// SampleWindow is how long a utilization sample observes the CPU
const SampleWindow = 5 * time.Second

// GetCoreCounts returns physical and logical core counts
func GetCoreCounts(ctx context.Context) (*CoreCounts, error) {
	physical, err := cpu.CountsWithContext(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("failed to get physical core count: %w", err)
	}

	logical, err := cpu.CountsWithContext(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("failed to get logical core count: %w", err)
	}

	return &CoreCounts{
		Physical: uint(physical),
		Logical:  uint(logical),
	}, nil
}

// GetCPUUtilization returns per-core utilization percentages measured over
// window. The call blocks for the whole window.
func GetCPUUtilization(ctx context.Context, window time.Duration) ([]float64, error) {
	if window <= 0 {
		window = SampleWindow
	}

	perCore, err := cpu.PercentWithContext(ctx, window, true)
	if err != nil {
		return nil, fmt.Errorf("failed to get CPU usage: %w", err)
	}
	return perCore, nil
}

// GetDiskUsage returns disk usage information for the specified path
func GetDiskUsage(ctx context.Context, path string) (*DiskUsage, error) {
	diskStat, err := disk.UsageWithContext(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to get disk usage for path %s: %w", path, err)
	}

	return &DiskUsage{
		Path:        path,
		Total:       diskStat.Total,
		Used:        diskStat.Used,
		Free:        diskStat.Free,
		UsedPercent: math.Round(diskStat.UsedPercent*10) / 10,
	}, nil
}

func properUnitHelper(bytes uint64, pow uint8, unit string) string {
	quotient := bytes >> pow
	temp := bytes & ((1 << pow) - 1)
	temp = ((temp * 10) + ((1 << pow) >> 1)) >> pow
	if temp == 10 {
		temp = 0
		quotient += 1
	}
	return strconv.FormatUint(quotient, 10) +
		"." + strconv.FormatUint(temp, 10) + " " + unit
}

// ProperUnit converts bytes to human readable format
func ProperUnit(byteNum uint64) (formatted string) {
	if byteNum >= 1<<40 { // TiB
		return properUnitHelper(byteNum, 40, "TiB")
	} else if byteNum >= 1<<30 { // GiB
		return properUnitHelper(byteNum, 30, "GiB")
	} else if byteNum >= 1<<20 { // MiB
		return properUnitHelper(byteNum, 20, "MiB")
	} else if byteNum >= 1<<10 { // KiB
		return properUnitHelper(byteNum, 10, "KiB")
	}
	return strconv.FormatUint(byteNum, 10) + " B"
}

// Float2string converts float to string with specified precision
func Float2string(f float64, precision int) string {
	return strconv.FormatFloat(f, 'f', precision, 64)
}
