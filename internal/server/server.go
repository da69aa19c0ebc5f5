package server

import (
	"context"
	"io/fs"
	"net/http"

	"go.uber.org/zap"

	"github.com/padscope/padscope/internal/hub"
)

// Server exposes the embedded diagnostic frontend and the /ws telemetry
// endpoint.
type Server struct {
	hub         *hub.Hub
	broadcaster *hub.Broadcaster
	commands    hub.CommandSink
	frontendFS  fs.FS
	addr        string
	log         *zap.Logger
	httpServer  *http.Server
}

func New(h *hub.Hub, b *hub.Broadcaster, commands hub.CommandSink, frontendFS fs.FS, addr string, log *zap.Logger) *Server {
	return &Server{
		hub:         h,
		broadcaster: b,
		commands:    commands,
		frontendFS:  frontendFS,
		addr:        addr,
		log:         log,
	}
}

func (s *Server) ListenAndServe() error {
	mux := http.NewServeMux()

	mux.HandleFunc("/ws", handleWebSocket(s.hub, s.broadcaster, s.commands, s.log))
	mux.Handle("/", http.FileServer(http.FS(s.frontendFS)))

	s.httpServer = &http.Server{
		Addr:    s.addr,
		Handler: mux,
	}

	s.log.Info("HTTP server listening", zap.String("addr", s.addr))
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		s.log.Info("shutting down HTTP server")
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
