package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HTTPServer exposes the MCP endpoint over HTTP for deployments where a
// stdio pipe is impractical, alongside health and metrics routes. The
// JSON-RPC framing is identical to the stdio transport: one request per
// POST to /mcp.
type HTTPServer struct {
	httpServer *http.Server
	logger     *slog.Logger
}

// NewHTTPServer creates an HTTP transport around an MCP server with /mcp,
// /healthz, and /metrics routes.
func NewHTTPServer(addr string, mcp *Server, logger *slog.Logger) *HTTPServer {
	mux := http.NewServeMux()

	h := &HTTPServer{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger: logger,
	}

	mux.HandleFunc("POST /mcp", h.handleMCP(mcp))
	mux.HandleFunc("GET /healthz", h.handleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())

	return h
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (h *HTTPServer) Start() error {
	h.logger.Info("http transport starting", "addr", h.httpServer.Addr)
	return h.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (h *HTTPServer) Shutdown(ctx context.Context) error {
	return h.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (h *HTTPServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.httpServer.Handler.ServeHTTP(w, r)
}

func (h *HTTPServer) handleMCP(mcp *Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req MCPRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, &MCPResponse{
				JSONRPC: "2.0",
				Error: &MCPError{
					Code:    -32700,
					Message: "Parse error",
					Data:    err.Error(),
				},
			})
			return
		}

		resp := mcp.handleRequest(r.Context(), &req)
		if resp == nil {
			// Notifications get no response body.
			w.WriteHeader(http.StatusAccepted)
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func (h *HTTPServer) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
