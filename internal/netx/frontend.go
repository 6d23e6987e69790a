package netx

import (
	"net/http"
	"path/filepath"
)

// StaticDir serves files below root/dir under the URL prefix /dir/
func StaticDir(mux *http.ServeMux, root, dir string) {
	prefix := "/" + dir
	mux.Handle(prefix+"/", http.StripPrefix(prefix, http.FileServer(http.Dir(filepath.Join(root, dir)))))
}
