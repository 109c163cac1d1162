// Package web provides embedded static assets (CSS, JS) for the
// builder interface, served at /static/.
package web

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed all:static
var staticFS embed.FS

// Static returns an http.Handler serving the embedded assets with the
// static/ prefix stripped.
func Static() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		// Only reachable if the embed directive and path disagree.
		panic(err)
	}
	return http.FileServer(http.FS(sub))
}
