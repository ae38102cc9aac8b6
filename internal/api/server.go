// Package api serves the search job over HTTP: start, stop and status
// endpoints, Prometheus metrics, and the embedded web page.
package api

import (
	"context"
	"embed"
	"errors"
	"io/fs"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/Amr-9/btcvanity/internal/job"
)

//go:embed web
var webFS embed.FS

// Jobs is the part of job.Controller the handlers use.
type Jobs interface {
	Start(req job.Request) (string, error)
	Stop() error
	Status() job.Snapshot
}

// Server is the HTTP front end of a job controller.
type Server struct {
	jobs       Jobs
	logger     *zap.Logger
	router     *gin.Engine
	httpServer *http.Server
}

// NewServer builds the router. Metrics collectors for HTTP traffic are
// registered with reg, and /metrics serves everything reg gathers.
func NewServer(addr string, jobs Jobs, logger *zap.Logger, reg *prometheus.Registry) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	router := gin.New()
	router.Use(requestID(), recovery(logger), accessLog(logger), noStore(), newHTTPMetrics(reg).middleware())

	s := &Server{
		jobs:   jobs,
		logger: logger,
		router: router,
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       10 * time.Second,
			WriteTimeout:      10 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
	}
	s.routes(reg)
	return s
}

func (s *Server) routes(reg *prometheus.Registry) {
	api := s.router.Group("/api")
	{
		api.POST("/start", s.handleStart)
		api.POST("/stop", s.handleStop)
		api.GET("/status", s.handleStatus)
	}

	s.router.GET("/healthz", s.handleHealth)
	s.router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	static, err := fs.Sub(webFS, "web")
	if err != nil {
		panic(err)
	}
	s.router.GET("/", func(c *gin.Context) {
		c.FileFromFS("/", http.FS(static))
	})
	s.router.StaticFS("/static", http.FS(static))
}

// Handler returns the router, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Serve accepts connections on l until Shutdown is called.
func (s *Server) Serve(l net.Listener) error {
	s.logger.Info("HTTP server listening", zap.String("addr", l.Addr().String()))
	if err := s.httpServer.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// ListenAndServe listens on the configured address and serves until
// Shutdown is called.
func (s *Server) ListenAndServe() error {
	l, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return err
	}
	return s.Serve(l)
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
