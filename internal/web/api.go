package web

import (
	"net/http"

	"hostwatch/internal/auth"
	"hostwatch/internal/netx"
)

// StartAPI registers the JSON endpoints for scripts polling the agent
func StartAPI(mux *http.ServeMux, d *Dashboard) {
	mux.HandleFunc("/api/reading", auth.RequireAuth(d.handleReading))
	mux.HandleFunc("/api/alerts", auth.RequireAuth(d.handleAlerts))
	mux.HandleFunc("/api/refresh", auth.RequireAuth(d.handleRefresh))
}

func (d *Dashboard) handleReading(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		netx.WriteMethodNotAllowed(w)
		return
	}
	view := d.latest.Load()
	if view == nil {
		netx.WriteUnavailable(w, "No reading yet")
		return
	}
	netx.WriteSuccess(w, "", view)
}

func (d *Dashboard) handleAlerts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		netx.WriteMethodNotAllowed(w)
		return
	}
	var entries []alertMessage
	if d.alerts != nil {
		entries = messages(d.alerts.Entries())
	}
	netx.WriteSuccess(w, "", entries)
}

func (d *Dashboard) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		netx.WriteMethodNotAllowed(w)
		return
	}
	if d.Refresher == nil {
		netx.WriteUnavailable(w, "Agent is not running")
		return
	}
	d.Refresher.Trigger()
	netx.WriteSuccess(w, "Refresh queued", nil)
}
