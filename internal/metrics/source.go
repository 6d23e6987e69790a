package metrics

import (
	"context"
	"errors"
	"log"

	"hostwatch/internal/sensor"
	"hostwatch/internal/storage"
	"hostwatch/internal/system"
)

// Temperatures are CPU temperatures in °C. Empty means unavailable this
// cycle.
type Temperatures struct {
	Cores   []float64
	Package *float64
}

// Source is the platform capability set: where CPU temperatures come from,
// how disks are enumerated and how a disk is addressed for smartctl.
type Source interface {
	CPUTemperatures(ctx context.Context) Temperatures
	Disks(ctx context.Context) ([]DiskIdentity, error)
	DiagnosticTarget(disk DiskIdentity) (string, bool)
}

// SensorSource reads temperatures from the vendor sensor endpoint and
// addresses disks through a partition. Used where the OS exposes neither
// CPU sensors nor device paths.
type SensorSource struct {
	Client   *sensor.Client
	Vendor   sensor.Vendor
	Resolver storage.Resolver
}

func (s *SensorSource) CPUTemperatures(ctx context.Context) Temperatures {
	res := s.Client.Fetch(ctx, s.Vendor)
	return Temperatures{Cores: res.Cores, Package: res.Package}
}

func (s *SensorSource) Disks(ctx context.Context) ([]DiskIdentity, error) {
	return s.Resolver.Disks(ctx)
}

// DiagnosticTarget uses the first partition's drive letter as the address
// of the whole physical disk; smartctl resolves it to the drive. A disk
// without partitions cannot be addressed.
func (s *SensorSource) DiagnosticTarget(disk DiskIdentity) (string, bool) {
	if len(disk.Partitions) == 0 || disk.Partitions[0].Path == "" {
		return "", false
	}
	return disk.Partitions[0].Path, true
}

// NativeSource reads temperatures from OS sensors and addresses disks by
// device path.
type NativeSource struct {
	Group    system.SensorGroup
	Resolver storage.Resolver

	temperatures func(ctx context.Context, group system.SensorGroup) (*system.CoreTemperatures, error)
}

// NewNativeSource returns a NativeSource reading the given sensor group.
func NewNativeSource(group system.SensorGroup, resolver storage.Resolver) *NativeSource {
	return &NativeSource{
		Group:        group,
		Resolver:     resolver,
		temperatures: system.GetCoreTemperatures,
	}
}

func (s *NativeSource) CPUTemperatures(ctx context.Context) Temperatures {
	temps, err := s.temperatures(ctx, s.Group)
	if err != nil {
		if !errors.Is(err, system.ErrSensorNotFound) {
			log.Printf("metrics: %v", err)
		}
		return Temperatures{}
	}
	return Temperatures{Cores: temps.Cores, Package: temps.Package}
}

func (s *NativeSource) Disks(ctx context.Context) ([]DiskIdentity, error) {
	return s.Resolver.Disks(ctx)
}

func (s *NativeSource) DiagnosticTarget(disk DiskIdentity) (string, bool) {
	return disk.Device, disk.Device != ""
}
