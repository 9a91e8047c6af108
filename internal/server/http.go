package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/averycrespi/csvquery-mcp/pkg/types"

	"github.com/gin-gonic/gin"
	"github.com/mark3labs/mcp-go/server"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const shutdownTimeout = 5 * time.Second

// Router builds the HTTP handler for the configured transport. baseURL is
// advertised to SSE clients as the origin of the message endpoint.
func (s *CSVServer) Router(baseURL string) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger())

	router.GET("/healthz", func(c *gin.Context) {
		data := s.qc.Dataset()
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"dataset": s.qc.Path(),
			"rows":    data.NumRows(),
			"columns": data.NumColumns(),
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	path := strings.TrimSuffix(s.config.Path, "/")
	switch s.config.Transport {
	case types.TransportSSE:
		sse := server.NewSSEServer(s.mcpServer,
			server.WithBaseURL(baseURL),
			server.WithStaticBasePath(path),
		)
		handler := gin.WrapH(sse)
		router.GET(path+"/sse", handler)
		router.POST(path+"/message", handler)
	default:
		streamable := server.NewStreamableHTTPServer(s.mcpServer,
			server.WithEndpointPath(path),
		)
		handler := gin.WrapH(streamable)
		router.POST(path, handler)
		router.GET(path, handler)
		router.DELETE(path, handler)
	}

	return router
}

// ListenAndServe binds the configured address and serves until ctx is done.
// Binding failures are returned as a *TransportError.
func (s *CSVServer) ListenAndServe(ctx context.Context) error {
	addr := net.JoinHostPort(s.config.Host, strconv.Itoa(s.config.Port))

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return &TransportError{Op: "listen", Addr: addr, Err: err}
	}

	return s.serveListener(ctx, listener)
}

func (s *CSVServer) serveListener(ctx context.Context, listener net.Listener) error {
	addr := listener.Addr().String()
	httpServer := &http.Server{
		Handler:           s.Router("http://" + addr),
		ReadHeaderTimeout: 10 * time.Second,
	}

	slog.Info("Starting MCP server",
		"transport", s.config.Transport,
		"addr", addr,
		"path", s.config.Path,
		"dataset", s.qc.Path())

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.Serve(listener)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return &TransportError{Op: "serve", Addr: addr, Err: err}
	case <-ctx.Done():
	}

	slog.Info("Shutting down MCP server", "addr", addr)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down HTTP server: %w", err)
	}

	return nil
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		slog.Debug("HTTP request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds())
	}
}
