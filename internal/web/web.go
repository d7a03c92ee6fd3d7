// internal/web/web.go
package web

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed views/index.html
var indexHTML []byte

//go:embed public
var publicFiles embed.FS

// IndexHandler serves the landing page.
func IndexHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(indexHTML)
	}
}

// StaticHandler serves the embedded assets under prefix (e.g. "/public/").
func StaticHandler(prefix string) http.Handler {
	sub, err := fs.Sub(publicFiles, "public")
	if err != nil {
		// public is always embedded.
		panic(err)
	}
	return http.StripPrefix(prefix, http.FileServer(http.FS(sub)))
}
