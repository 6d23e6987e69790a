package web

import (
	"net/http"

	"hostwatch/internal/netx"
)

// StartAssets serves scripts and stylesheets from the web root
func StartAssets(mux *http.ServeMux, root string) {
	netx.StaticDir(mux, root, "assets")
}
