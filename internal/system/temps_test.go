package system

import (
	"context"
	"errors"
	"testing"

	"github.com/shirou/gopsutil/v4/sensors"
)

func listOf(stats []sensors.TemperatureStat, err error) TemperatureFunc {
	return func(context.Context) ([]sensors.TemperatureStat, error) {
		return stats, err
	}
}

func TestCoreTemperaturesIntel(t *testing.T) {
	stats := []sensors.TemperatureStat{
		{SensorKey: "acpitz", Temperature: 27.8},
		{SensorKey: "coretemp_package_id_0", Temperature: 51},
		{SensorKey: "coretemp_core_10", Temperature: 49},
		{SensorKey: "coretemp_core_0", Temperature: 45},
		{SensorKey: "coretemp_core_1", Temperature: 47},
		{SensorKey: "nvme_composite", Temperature: 38.85},
	}

	temps, err := readCoreTemperatures(context.Background(), listOf(stats, nil), IntelGroup)
	if err != nil {
		t.Fatalf("readCoreTemperatures: %v", err)
	}
	want := []float64{45, 47, 49}
	if len(temps.Cores) != len(want) {
		t.Fatalf("Cores = %v, want %v", temps.Cores, want)
	}
	for i := range want {
		if temps.Cores[i] != want[i] {
			t.Errorf("Cores[%d] = %v, want %v", i, temps.Cores[i], want[i])
		}
	}
	if temps.Package == nil || *temps.Package != 51 {
		t.Errorf("Package = %v, want 51", temps.Package)
	}
}

func TestCoreTemperaturesAMD(t *testing.T) {
	stats := []sensors.TemperatureStat{
		{SensorKey: "k10temp_tctl", Temperature: 61.5},
		{SensorKey: "k10temp_tccd1", Temperature: 58.25},
		{SensorKey: "k10temp_tccd2", Temperature: 57},
	}

	temps, err := readCoreTemperatures(context.Background(), listOf(stats, nil), AMDGroup)
	if err != nil {
		t.Fatalf("readCoreTemperatures: %v", err)
	}
	if len(temps.Cores) != 1 || temps.Cores[0] != 58.25 {
		t.Errorf("Cores = %v, want [58.25]", temps.Cores)
	}
	if temps.Package == nil || *temps.Package != 61.5 {
		t.Errorf("Package = %v, want 61.5", temps.Package)
	}
}

func TestCoreTemperaturesGroupMissing(t *testing.T) {
	stats := []sensors.TemperatureStat{{SensorKey: "acpitz", Temperature: 0}}

	_, err := readCoreTemperatures(context.Background(), listOf(stats, nil), IntelGroup)
	if !errors.Is(err, ErrSensorNotFound) {
		t.Fatalf("err = %v, want ErrSensorNotFound", err)
	}
}

func TestCoreTemperaturesWarnings(t *testing.T) {
	warns := &sensors.Warnings{}
	warns.Add(errors.New("permission denied"))

	stats := []sensors.TemperatureStat{{SensorKey: "coretemp_core_0", Temperature: 40}}
	temps, err := readCoreTemperatures(context.Background(), listOf(stats, warns), IntelGroup)
	if err != nil {
		t.Fatalf("warnings with partial data should not fail: %v", err)
	}
	if len(temps.Cores) != 1 {
		t.Errorf("Cores = %v", temps.Cores)
	}

	_, err = readCoreTemperatures(context.Background(), listOf(nil, errors.New("no hwmon")), IntelGroup)
	if err == nil || errors.Is(err, ErrSensorNotFound) {
		t.Errorf("hard failure should surface as a read error, got %v", err)
	}
}

func TestVendorOf(t *testing.T) {
	tests := []struct {
		id, model, want string
	}{
		{"GenuineIntel", "Intel(R) Core(TM) i7-10700 CPU @ 2.90GHz", "intel"},
		{"AuthenticAMD", "AMD Ryzen 7 5800X 8-Core Processor", "amd"},
		{"", "AMD Ryzen 5 3600", "amd"},
		{"ARM", "Cortex-A72", ""},
	}
	for _, tt := range tests {
		if got := vendorOf(tt.id, tt.model); got != tt.want {
			t.Errorf("vendorOf(%q, %q) = %q, want %q", tt.id, tt.model, got, tt.want)
		}
	}
}

func TestProperUnit(t *testing.T) {
	tests := []struct {
		in   uint64
		want string
	}{
		{512, "512 B"},
		{1536, "1.5 KiB"},
		{500 << 20, "500.0 MiB"},
		{1 << 30, "1.0 GiB"},
	}
	for _, tt := range tests {
		if got := ProperUnit(tt.in); got != tt.want {
			t.Errorf("ProperUnit(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
