// Package console prints each reading and its alerts to a terminal.
package console

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"hostwatch/internal/alert"
	"hostwatch/internal/metrics"
	"hostwatch/internal/smart"
	"hostwatch/internal/system"

	"github.com/gookit/color"
)

// Sink writes a block of lines per reading
type Sink struct {
	mu  sync.Mutex
	out io.Writer
}

func New(out io.Writer) *Sink {
	return &Sink{out: out}
}

func (s *Sink) Publish(r *metrics.Reading, alerts []alert.Alert) {
	var b strings.Builder
	fmt.Fprintln(&b, color.Bold.Sprint("== "+r.Timestamp.Format("2006-01-02 15:04:05")))
	if r.CPU != nil {
		writeCPU(&b, r.CPU)
	}
	for _, d := range r.Disks {
		writeDisk(&b, d)
	}
	for _, a := range alerts {
		fmt.Fprintln(&b, color.Red.Sprint("ALERT ")+a.Message())
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	io.WriteString(s.out, b.String())
}

func writeCPU(b *strings.Builder, cpu *metrics.CPUReading) {
	fmt.Fprintf(b, "%s %s (%d cores, %d threads)\n",
		color.Cyan.Sprint("CPU"), cpu.Model, cpu.PhysicalCores, cpu.LogicalCores)
	fmt.Fprintf(b, "  usage       %s  %s\n", percent(cpu.AverageUtilization), series(cpu.Utilization, "%"))
	fmt.Fprintf(b, "  temperature %s  %s\n", celsius(cpu.AverageTemperature), series(cpu.CoreTemperatures, "°C"))
	if cpu.PackageTemperature != nil {
		fmt.Fprintf(b, "  package     %s\n", celsius(cpu.PackageTemperature))
	}
}

func writeDisk(b *strings.Builder, d metrics.DiskReading) {
	name := d.Identity.Model
	if name == "" {
		name = "Unknown disk"
	}
	if d.Identity.Device != "" {
		name += " (" + d.Identity.Device + ")"
	}
	fmt.Fprintf(b, "%s %s\n", color.Cyan.Sprint("DISK"), name)
	fmt.Fprintf(b, "  power on    %s  temperature %s\n",
		sentinel(d.Health.PowerOnHours, " h"), sentinel(d.Health.Temperature, "°C"))
	fmt.Fprintf(b, "  read        %s  written %s\n", size(d.Health.BytesRead), size(d.Health.BytesWritten))
	for _, u := range d.Usage {
		fmt.Fprintf(b, "  %-11s %s free of %s (%s%% used)\n",
			u.Path, system.ProperUnit(u.Free), system.ProperUnit(u.Total), system.Float2string(u.UsedPercent, 1))
	}
}

func percent(v *float64) string {
	if v == nil {
		return color.Gray.Sprint("n/a")
	}
	return system.Float2string(*v, 2) + "%"
}

func celsius(v *float64) string {
	if v == nil {
		return color.Gray.Sprint("n/a")
	}
	return system.Float2string(*v, 2) + "°C"
}

func series(vs []float64, unit string) string {
	if len(vs) == 0 {
		return ""
	}
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = system.Float2string(v, 1) + unit
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func sentinel(v int, unit string) string {
	if v == smart.NotFound {
		return color.Gray.Sprint("n/a")
	}
	return fmt.Sprintf("%d%s", v, unit)
}

func size(v *uint64) string {
	if v == nil {
		return color.Gray.Sprint("n/a")
	}
	return system.ProperUnit(*v)
}
