package system

import (
	"context"
	"fmt"
	"strings"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/host"
)

// GetSystemInfo returns general system information
func GetSystemInfo(ctx context.Context) (*SystemInfo, error) {
	hostInfo, err := host.InfoWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get host info: %w", err)
	}

	users, err := host.UsersWithContext(ctx)
	if err != nil {
		users = nil // Continue without user info
	}

	var userHost string
	if len(users) > 0 && users[0].User != "" {
		userHost = users[0].User + "@" + hostInfo.Hostname
	} else {
		userHost = hostInfo.Hostname
	}

	return &SystemInfo{
		User:   userHost,
		Host:   hostInfo.Hostname,
		OS:     fmt.Sprintf("%s %s %s", hostInfo.Platform, hostInfo.PlatformVersion, hostInfo.KernelArch),
		Kernel: fmt.Sprintf("%s %s", hostInfo.OS, hostInfo.KernelVersion),
		CPU:    GetCPUModel(ctx),
	}, nil
}

// GetCPUModel returns the CPU model name, or "Unknown CPU"
func GetCPUModel(ctx context.Context) string {
	cpuStat, err := cpu.InfoWithContext(ctx)
	if err != nil || len(cpuStat) == 0 || cpuStat[0].ModelName == "" {
		return "Unknown CPU"
	}
	return strings.TrimSpace(cpuStat[0].ModelName)
}

// GetCPUVendor returns "intel", "amd" or "" when the vendor is not recognised
func GetCPUVendor(ctx context.Context) string {
	cpuStat, err := cpu.InfoWithContext(ctx)
	if err != nil || len(cpuStat) == 0 {
		return ""
	}
	return vendorOf(cpuStat[0].VendorID, cpuStat[0].ModelName)
}

func vendorOf(vendorID, model string) string {
	switch {
	case vendorID == "GenuineIntel", strings.HasPrefix(model, "Intel"):
		return "intel"
	case vendorID == "AuthenticAMD", strings.HasPrefix(model, "AMD"):
		return "amd"
	}
	return ""
}
