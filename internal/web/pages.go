package web

import (
	"net/http"

	"hostwatch/internal/netx"
)

// StartPages serves the public pages (login) from the web root
func StartPages(mux *http.ServeMux, root string) {
	netx.StaticDir(mux, root, "pages")
}
