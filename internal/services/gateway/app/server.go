// Package server hosts the gateway HTTP process: action endpoints, health,
// metrics, and the optional MCP tool endpoint.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/rs/cors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/louisbranch/agenthub/internal/platform/timeouts"
	"github.com/louisbranch/agenthub/internal/services/gateway"
	"github.com/louisbranch/agenthub/internal/services/gateway/storage"
	"github.com/louisbranch/agenthub/internal/services/gateway/tools"
)

// Config defines the inputs for the gateway HTTP process.
type Config struct {
	HTTPAddr          string
	Store             StoreConfig
	CORSOrigins       []string
	MCPEnabled        bool
	ReadHeaderTimeout time.Duration
	ShutdownTimeout   time.Duration
}

// Server hosts the gateway HTTP process.
//
// The store is opened lazily by the first action request, so a server with
// missing credentials still starts and answers health checks.
type Server struct {
	httpAddr        string
	shutdownTimeout time.Duration
	httpServer      *http.Server
	listener        net.Listener
	handle          *storage.Handle
}

// NewServer builds a configured gateway server.
func NewServer(config Config) (*Server, error) {
	httpAddr := strings.TrimSpace(config.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	if config.ReadHeaderTimeout <= 0 {
		config.ReadHeaderTimeout = timeouts.ReadHeader
	}
	if config.ShutdownTimeout <= 0 {
		config.ShutdownTimeout = timeouts.Shutdown
	}

	opener, err := newStoreOpener(config.Store)
	if err != nil {
		return nil, err
	}
	handle := storage.NewHandle(opener)
	handler, err := buildHandler(handle, config)
	if err != nil {
		return nil, err
	}

	listener, err := net.Listen("tcp", httpAddr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", httpAddr, err)
	}

	return &Server{
		httpAddr:        listener.Addr().String(),
		shutdownTimeout: config.ShutdownTimeout,
		httpServer: &http.Server{
			Handler:           handler,
			ReadHeaderTimeout: config.ReadHeaderTimeout,
		},
		listener: listener,
		handle:   handle,
	}, nil
}

// buildHandler composes routing with tracing and, when origins are
// configured, CORS.
func buildHandler(handle *storage.Handle, config Config) (http.Handler, error) {
	svc, err := gateway.NewService(handle)
	if err != nil {
		return nil, err
	}
	var mcpHandler http.Handler
	if config.MCPEnabled {
		mcpHandler, err = tools.NewHandler(svc)
		if err != nil {
			return nil, fmt.Errorf("build mcp handler: %w", err)
		}
	}

	handler := otelhttp.NewHandler(newHandler(svc, mcpHandler), "gateway",
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return r.Method + " " + r.URL.Path
		}),
	)
	if origins := cleanOrigins(config.CORSOrigins); len(origins) > 0 {
		handler = cors.New(cors.Options{
			AllowedOrigins: origins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Authorization", "Content-Type"},
			MaxAge:         86400,
		}).Handler(handler)
	}
	return handler, nil
}

func cleanOrigins(values []string) []string {
	origins := make([]string, 0, len(values))
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

// Run builds the gateway server and serves until ctx ends.
func Run(ctx context.Context, config Config) error {
	server, err := NewServer(config)
	if err != nil {
		return fmt.Errorf("init gateway server: %w", err)
	}
	defer server.Close()

	if err := server.ListenAndServe(ctx); err != nil {
		return fmt.Errorf("serve gateway: %w", err)
	}
	return nil
}

// Addr returns the bound listen address.
func (s *Server) Addr() string {
	if s == nil {
		return ""
	}
	return s.httpAddr
}

// ListenAndServe runs the HTTP server until the context ends.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("gateway server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}

	serveErr := make(chan error, 1)
	log.Printf("gateway server listening on %s", s.httpAddr)
	go func() {
		serveErr <- s.httpServer.Serve(s.listener)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}
}

// Close releases the store and any listener that was never served.
func (s *Server) Close() {
	if s == nil {
		return
	}
	if err := s.listener.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
		log.Printf("close listener: %v", err)
	}
	if err := s.handle.Close(); err != nil {
		log.Printf("close store: %v", err)
	}
}
