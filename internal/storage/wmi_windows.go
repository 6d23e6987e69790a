//go:build windows

package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/yusufpapurcu/wmi"
)

type win32DiskDrive struct {
	DeviceID string
	Model    string
	Index    uint32
}

type win32DiskPartition struct {
	DeviceID string
}

type win32LogicalDisk struct {
	DeviceID   string
	FileSystem string
}

// WMI resolves disks through Win32_DiskDrive and its partition and logical
// disk associations.
type WMI struct{}

// NewWMI returns the Windows resolver.
func NewWMI() *WMI {
	return &WMI{}
}

// Disks lists physical drives with the drive letters mounted on them.
// Windows exposes no per-drive path smartctl accepts, so Device is empty.
func (w *WMI) Disks(ctx context.Context) ([]Disk, error) {
	var drives []win32DiskDrive
	if err := wmi.Query("SELECT DeviceID, Model, Index FROM Win32_DiskDrive", &drives); err != nil {
		return nil, fmt.Errorf("%w: Win32_DiskDrive: %v", ErrListing, err)
	}

	disks := make([]Disk, 0, len(drives))
	for _, drive := range drives {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		disk := Disk{Model: strings.TrimSpace(drive.Model), Partitions: []Partition{}}

		var parts []win32DiskPartition
		q := fmt.Sprintf(`ASSOCIATORS OF {Win32_DiskDrive.DeviceID='%s'} WHERE AssocClass = Win32_DiskDriveToDiskPartition`,
			escapeWQL(drive.DeviceID))
		if err := wmi.Query(q, &parts); err != nil {
			return nil, fmt.Errorf("%w: partitions of %s: %v", ErrListing, drive.DeviceID, err)
		}

		for _, part := range parts {
			var logical []win32LogicalDisk
			q := fmt.Sprintf(`ASSOCIATORS OF {Win32_DiskPartition.DeviceID='%s'} WHERE AssocClass = Win32_LogicalDiskToPartition`,
				escapeWQL(part.DeviceID))
			if err := wmi.Query(q, &logical); err != nil {
				return nil, fmt.Errorf("%w: logical disks of %s: %v", ErrListing, part.DeviceID, err)
			}
			for _, ld := range logical {
				disk.Partitions = append(disk.Partitions, Partition{Path: ld.DeviceID, Fstype: ld.FileSystem})
			}
		}
		disks = append(disks, disk)
	}
	return disks, nil
}

func escapeWQL(s string) string {
	return strings.ReplaceAll(s, `\`, `\\`)
}
