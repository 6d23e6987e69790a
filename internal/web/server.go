package web

import (
	"net/http"

	"hostwatch/internal/alert"
	"hostwatch/internal/auth"
	"hostwatch/internal/netx"
)

// NewServer builds the dashboard HTTP server: pages, login API and the
// Socket.IO endpoint. The returned Dashboard is the scheduler sink.
func NewServer(addr, root string, users *auth.Users, alerts *alert.Log) (*http.Server, *Dashboard) {
	netx.SetupGlobalServer(DashboardNamespace)
	dash := SetupDashboardService(alerts)

	mux := http.NewServeMux()
	mux.Handle("/socket.io/", netx.GetHandler())
	StartPages(mux, root)
	StartAssets(mux, root)
	StartLogin(mux, users)
	StartAPI(mux, dash)
	StartIndex(mux, root)

	return &http.Server{Addr: addr, Handler: mux}, dash
}
