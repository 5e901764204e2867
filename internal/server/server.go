// Package server exposes the chat protocol over a websocket endpoint on an
// h2c-capable HTTP server.
package server

import (
	"net/http"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

// New assembles the daemon's HTTP handler: the chat websocket plus a health
// endpoint, wrapped for h2c so HTTP/2 clients work without TLS.
func New(chatHandler *ChatHandler) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws/chat", chatHandler.HandleChatWS)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return h2c.NewHandler(mux, &http2.Server{})
}
