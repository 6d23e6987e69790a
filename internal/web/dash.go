package web

import (
	"context"
	"log"
	"sync/atomic"
	"time"

	"hostwatch/internal/alert"
	"hostwatch/internal/auth"
	"hostwatch/internal/metrics"
	"hostwatch/internal/netx"
	"hostwatch/internal/smart"
	"hostwatch/internal/system"

	"github.com/zishang520/socket.io/servers/socket/v3"
)

// DashboardNamespace is the Socket.IO namespace the dashboard page joins
const DashboardNamespace = "/dashboard"

// Refresher starts a cycle outside the regular interval
type Refresher interface {
	Trigger()
}

// Dashboard pushes every published Reading to connected browsers
type Dashboard struct {
	namespace *netx.Namespace
	alerts    *alert.Log
	latest    atomic.Pointer[ReadingView]

	// Refresher is set once the scheduler exists; refresh requests are
	// ignored until then.
	Refresher Refresher
}

// SystemBasicInfo represents static system information
type SystemBasicInfo struct {
	Hostname string `json:"hostname"`
	OS       string `json:"os"`
	Kernel   string `json:"kernel"`
	CPU      string `json:"cpu"`
	Username string `json:"username"`
}

// ReadingView is a Reading with sizes formatted for display
type ReadingView struct {
	Timestamp string              `json:"timestamp"`
	CPU       *metrics.CPUReading `json:"cpu,omitempty"`
	Disks     []DiskView          `json:"disks"`
}

type DiskView struct {
	Model        string          `json:"model"`
	Device       string          `json:"device,omitempty"`
	PowerOnHours *int            `json:"power_on_hours"`
	Temperature  *int            `json:"temperature"`
	Read         string          `json:"read"`
	Written      string          `json:"written"`
	Partitions   []PartitionView `json:"partitions"`
}

type PartitionView struct {
	Path        string  `json:"path"`
	Fstype      string  `json:"fstype"`
	Used        string  `json:"used"`
	Free        string  `json:"free"`
	Total       string  `json:"total"`
	UsedPercent float64 `json:"used_percent"`
}

// SetupDashboardService sets up the dashboard namespace on the global server
func SetupDashboardService(alerts *alert.Log) *Dashboard {
	server := netx.GetGlobalServer()
	d := &Dashboard{
		namespace: server.GetNamespace(DashboardNamespace),
		alerts:    alerts,
	}

	// Handle manual refresh requests
	d.namespace.AddEvent("refresh_data", d.handleRefreshData)

	// Handle disconnect (standard Socket.IO event)
	d.namespace.AddEvent("disconnect", handleDashboardDisconnect)

	d.namespace.RegisterEvents(d.handleDashboardConnect)
	d.namespace.AddMiddleware(auth.RequireAuthSocketIO)
	return d
}

// Publish broadcasts the reading and, if any fired, the cycle's alerts
func (d *Dashboard) Publish(r *metrics.Reading, alerts []alert.Alert) {
	view := NewReadingView(r)
	d.latest.Store(view)
	d.namespace.Broadcast("reading", view)
	if len(alerts) > 0 {
		d.namespace.Broadcast("alerts", messages(alerts))
	}
}

// handleDashboardConnect sends the static info, the latest reading and the
// alert log to a newly connected client
func (d *Dashboard) handleDashboardConnect(client *socket.Socket) {
	log.Printf("web: dashboard client connected: %s", client.Id())

	username, _ := auth.SocketUser(client)
	sendBasicSystemInfo(client, username)

	if view := d.latest.Load(); view != nil {
		client.Emit("reading", view)
	}
	if d.alerts != nil {
		client.Emit("alert_log", messages(d.alerts.Entries()))
	}
}

// handleRefreshData queues a cycle. Requests arriving while one is already
// pending are merged by the scheduler.
func (d *Dashboard) handleRefreshData(client *socket.Socket, data ...any) {
	if d.Refresher == nil {
		client.Emit("dashboard_error", "Agent is not running")
		return
	}
	d.Refresher.Trigger()
	client.Emit("refresh_queued", map[string]interface{}{
		"status": "queued",
	})
}

func handleDashboardDisconnect(client *socket.Socket, reason ...any) {
	log.Printf("web: dashboard client disconnected: %s", client.Id())
}

// sendBasicSystemInfo sends static system information (one time)
func sendBasicSystemInfo(client *socket.Socket, username string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	info, err := system.GetSystemInfo(ctx)
	if err != nil {
		client.Emit("dashboard_error", "Failed to get system info: "+err.Error())
		return
	}
	client.Emit("basic_system_info", &SystemBasicInfo{
		Hostname: info.Host,
		OS:       info.OS,
		Kernel:   info.Kernel,
		CPU:      info.CPU,
		Username: username,
	})
}

type alertMessage struct {
	alert.Alert
	Message string `json:"message"`
}

func messages(alerts []alert.Alert) []alertMessage {
	out := make([]alertMessage, 0, len(alerts))
	for _, a := range alerts {
		out = append(out, alertMessage{Alert: a, Message: a.Message()})
	}
	return out
}

// NewReadingView formats r for display. Sentinel values become null.
func NewReadingView(r *metrics.Reading) *ReadingView {
	view := &ReadingView{
		Timestamp: r.Timestamp.Format(time.RFC3339),
		CPU:       r.CPU,
		Disks:     make([]DiskView, 0, len(r.Disks)),
	}
	for _, d := range r.Disks {
		view.Disks = append(view.Disks, newDiskView(d))
	}
	return view
}

func newDiskView(d metrics.DiskReading) DiskView {
	view := DiskView{
		Model:        d.Identity.Model,
		Device:       d.Identity.Device,
		PowerOnHours: known(d.Health.PowerOnHours),
		Temperature:  known(d.Health.Temperature),
		Read:         bytesOrUnknown(d.Health.BytesRead),
		Written:      bytesOrUnknown(d.Health.BytesWritten),
		Partitions:   make([]PartitionView, 0, len(d.Usage)),
	}

	fstypes := make(map[string]string, len(d.Identity.Partitions))
	for _, p := range d.Identity.Partitions {
		fstypes[p.Path] = p.Fstype
	}
	for _, u := range d.Usage {
		view.Partitions = append(view.Partitions, PartitionView{
			Path:        u.Path,
			Fstype:      fstypes[u.Path],
			Used:        system.ProperUnit(u.Used),
			Free:        system.ProperUnit(u.Free),
			Total:       system.ProperUnit(u.Total),
			UsedPercent: u.UsedPercent,
		})
	}
	return view
}

func known(v int) *int {
	if v == smart.NotFound {
		return nil
	}
	return &v
}

func bytesOrUnknown(b *uint64) string {
	if b == nil {
		return "unknown"
	}
	return system.ProperUnit(*b)
}
