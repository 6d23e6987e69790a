package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"strings"
)

// Lsblk resolves disks with util-linux lsblk.
type Lsblk struct {
	Path string

	// run executes the command and returns its stdout. Tests replace it.
	run func(ctx context.Context, name string, args ...string) ([]byte, error)
}

// NewLsblk returns a resolver using the lsblk found in PATH.
func NewLsblk() *Lsblk {
	return &Lsblk{Path: "lsblk", run: runCommand}
}

func runCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

type lsblkReport struct {
	BlockDevices []blockDevice `json:"blockdevices"`
}

type blockDevice struct {
	Name        string        `json:"name"`
	Model       *string       `json:"model"`
	Type        string        `json:"type"`
	Fstype      *string       `json:"fstype"`
	Mountpoints []*string     `json:"mountpoints"`
	Children    []blockDevice `json:"children"`
}

// Disks lists top-level disks with the mounted filesystems found anywhere
// beneath them (partitions, LVM volumes, crypt mappings).
func (l *Lsblk) Disks(ctx context.Context) ([]Disk, error) {
	out, err := l.run(ctx, l.Path, "-J", "-o", "NAME,MODEL,MOUNTPOINTS,TYPE,FSTYPE")
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, fmt.Errorf("%w: lsblk exited with status %d: %s",
				ErrListing, exitErr.ExitCode(), strings.TrimSpace(string(exitErr.Stderr)))
		}
		return nil, fmt.Errorf("%w: %v", ErrListing, err)
	}
	return parseLsblk(out)
}

func parseLsblk(out []byte) ([]Disk, error) {
	var report lsblkReport
	if err := json.Unmarshal(out, &report); err != nil {
		return nil, fmt.Errorf("%w: malformed lsblk output: %v", ErrListing, err)
	}

	disks := make([]Disk, 0, len(report.BlockDevices))
	for _, dev := range report.BlockDevices {
		if dev.Type != "disk" {
			continue
		}
		disk := Disk{
			Model:      strings.TrimSpace(deref(dev.Model)),
			Device:     DevicePath(dev.Name),
			Partitions: []Partition{},
		}
		for _, child := range dev.Children {
			disk.Partitions = appendMounted(disk.Partitions, child)
		}
		disks = append(disks, disk)
	}
	return disks, nil
}

func appendMounted(parts []Partition, dev blockDevice) []Partition {
	for _, mp := range dev.Mountpoints {
		if mp == nil || *mp == "" || *mp == "[SWAP]" {
			continue
		}
		parts = append(parts, Partition{Path: *mp, Fstype: deref(dev.Fstype)})
	}
	for _, child := range dev.Children {
		parts = appendMounted(parts, child)
	}
	return parts
}

var (
	nvmeName = regexp.MustCompile(`^(nvme\d+)(n\d+)?(p\d+)?$`)
	mmcName  = regexp.MustCompile(`^(mmcblk\d+)(p\d+)?$`)
	sdName   = regexp.MustCompile(`^([shv]d[a-z]+|xvd[a-z]+)\d*$`)
)

// DevicePath turns a block device name into the path smartctl expects.
// NVMe namespaces are addressed through their controller (nvme0n1 ->
// /dev/nvme0); memory cards and SCSI/SATA disks through their own node.
func DevicePath(name string) string {
	name = strings.TrimPrefix(name, "/dev/")
	switch {
	case nvmeName.MatchString(name):
		return "/dev/" + nvmeName.FindStringSubmatch(name)[1]
	case mmcName.MatchString(name):
		return "/dev/" + mmcName.FindStringSubmatch(name)[1]
	case sdName.MatchString(name):
		return "/dev/" + sdName.FindStringSubmatch(name)[1]
	}
	return "/dev/" + name
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
