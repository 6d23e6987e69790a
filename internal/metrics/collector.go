package metrics

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"hostwatch/internal/conf"
	"hostwatch/internal/smart"
	"hostwatch/internal/system"
)

// DiagnosticRunner runs smartctl against one target and returns its output.
type DiagnosticRunner interface {
	Run(ctx context.Context, target string) (string, error)
}

// Utilization is the outcome of one blocking utilization sample.
type Utilization struct {
	PerCore []float64
	Err     error
}

// RawCPU is what the CPU acquisition steps returned, before averaging.
type RawCPU struct {
	Model        string
	Counts       system.CoreCounts
	Utilization  []float64
	Temperatures Temperatures
}

// RawDisk is what the storage acquisition steps returned for one disk.
type RawDisk struct {
	Identity   DiskIdentity
	Attributes smart.Attributes
	Usage      []PartitionUsage
}

// Raw collects the acquisition results of one cycle. CPU is nil when the
// CPU family is disabled and Disks is nil when storage is disabled.
type Raw struct {
	CPU   *RawCPU
	Disks []RawDisk
}

// WithUtilization merges a finished utilization sample into r.
func (r Raw) WithUtilization(u Utilization) Raw {
	if r.CPU == nil {
		return r
	}
	cpu := *r.CPU
	cpu.Utilization = u.PerCore
	r.CPU = &cpu
	return r
}

// Collector runs the acquisition steps against a platform Source.
type Collector struct {
	Source Source
	Smart  DiagnosticRunner
	Model  string
	Window time.Duration

	counts      func(ctx context.Context) (*system.CoreCounts, error)
	utilization func(ctx context.Context, window time.Duration) ([]float64, error)
	usage       func(ctx context.Context, path string) (*system.DiskUsage, error)
}

// NewCollector returns a Collector backed by gopsutil counters.
func NewCollector(src Source, runner DiagnosticRunner, model string) *Collector {
	return &Collector{
		Source:      src,
		Smart:       runner,
		Model:       model,
		Window:      system.SampleWindow,
		counts:      system.GetCoreCounts,
		utilization: system.GetCPUUtilization,
		usage:       system.GetDiskUsage,
	}
}

// SampleUtilization blocks for the sampling window.
func (c *Collector) SampleUtilization(ctx context.Context) Utilization {
	perCore, err := c.utilization(ctx, c.Window)
	if err != nil {
		log.Printf("metrics: %v", err)
	}
	return Utilization{PerCore: perCore, Err: err}
}

// Acquire runs every synchronous acquisition step enabled in families.
// A returned error is fatal to the agent: the disk topology could not be
// enumerated or smartctl could not be run.
func (c *Collector) Acquire(ctx context.Context, families conf.Metrics) (Raw, error) {
	var raw Raw
	if families.CPU {
		raw.CPU = c.acquireCPU(ctx)
	}
	if families.Storage {
		disks, err := c.acquireDisks(ctx)
		if err != nil {
			return Raw{}, err
		}
		raw.Disks = disks
	}
	return raw, nil
}

func (c *Collector) acquireCPU(ctx context.Context) *RawCPU {
	cpu := &RawCPU{Model: c.Model}
	counts, err := c.counts(ctx)
	if err != nil {
		log.Printf("metrics: %v", err)
	} else {
		cpu.Counts = *counts
	}
	cpu.Temperatures = c.Source.CPUTemperatures(ctx)
	return cpu
}

func (c *Collector) acquireDisks(ctx context.Context) ([]RawDisk, error) {
	identities, err := c.Source.Disks(ctx)
	if err != nil {
		return nil, err
	}

	disks := make([]RawDisk, 0, len(identities))
	for _, id := range identities {
		attrs, err := c.diagnose(ctx, id)
		if err != nil {
			return nil, err
		}
		disks = append(disks, RawDisk{
			Identity:   id,
			Attributes: attrs,
			Usage:      c.partitionUsage(ctx, id),
		})
	}
	return disks, nil
}

func (c *Collector) diagnose(ctx context.Context, id DiskIdentity) (smart.Attributes, error) {
	target, ok := c.Source.DiagnosticTarget(id)
	if !ok {
		return smart.Unknown(), nil
	}
	out, err := c.Smart.Run(ctx, target)
	if err != nil {
		if errors.Is(err, smart.ErrTimeout) {
			log.Printf("metrics: %v", err)
			return smart.Unknown(), nil
		}
		return smart.Attributes{}, fmt.Errorf("failed to diagnose %q: %w", target, err)
	}
	return smart.Parse(out), nil
}

func (c *Collector) partitionUsage(ctx context.Context, id DiskIdentity) []PartitionUsage {
	usage := make([]PartitionUsage, 0, len(id.Partitions))
	for _, p := range id.Partitions {
		u, err := c.usage(ctx, p.Path)
		if err != nil {
			log.Printf("metrics: %v", err)
			continue
		}
		usage = append(usage, *u)
	}
	return usage
}
