package web

import (
	_ "embed"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/tomz197/roids/internal/config"
)

//go:embed index.html
var htmlPage string

// PageHandler serves the game page. sshHost is shown as the terminal alternative.
func PageHandler(sshHost string) http.Handler {
	page := strings.Replace(htmlPage, "{{.SSHHost}}", sshHost, -1)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, page)
	})
}

// NewMux wires the page at / and the game socket at /play.
func NewMux(cfg config.Config, sshHost string, log *zap.Logger) (*http.ServeMux, *PlayHandler) {
	play := NewPlayHandler(cfg, log)
	mux := http.NewServeMux()
	mux.Handle("/", PageHandler(sshHost))
	mux.Handle("/play", play)
	return mux, play
}
