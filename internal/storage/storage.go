// Package storage resolves the physical disks of the host and the
// partitions that live on them.
package storage

import (
	"context"
	"errors"
)

// ErrListing means the disk topology could not be enumerated. The agent
// cannot run without a topology, so callers treat it as fatal.
var ErrListing = errors.New("failed to enumerate disks")

// Partition is one mounted filesystem on a disk.
type Partition struct {
	Path   string `json:"path"` // mountpoint or drive letter
	Fstype string `json:"fstype"`
}

// Disk is one physical disk.
type Disk struct {
	Model      string      `json:"model"`
	Device     string      `json:"device,omitempty"` // empty where only partitions are addressable
	Partitions []Partition `json:"partitions"`
}

// Resolver enumerates disks.
type Resolver interface {
	Disks(ctx context.Context) ([]Disk, error)
}
