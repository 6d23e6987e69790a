package web

import (
	"net/http"
	"path/filepath"

	"hostwatch/internal/auth"
	"hostwatch/internal/netx"
)

// StartIndex registers the dashboard page with the given mux
func StartIndex(mux *http.ServeMux, root string) {
	mux.HandleFunc("/", auth.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			netx.WriteMethodNotAllowed(w)
			return
		}
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		http.ServeFile(w, r, filepath.Join(root, "index.html"))
	}))
}
