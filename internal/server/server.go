// Package server exposes the contact and investor forms over HTTP.
package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	goahttp "goa.design/goa/v3/http"
	"goa.design/goa/v3/http/middleware"

	"inquirydesk/internal/config"
	"inquirydesk/internal/logger"
	"inquirydesk/internal/metrics"
	"inquirydesk/internal/services"
)

const (
	readTimeout  = 15 * time.Second
	writeTimeout = 15 * time.Second
	idleTimeout  = 60 * time.Second

	// Form bodies are a few kilobytes at most
	maxBodyBytes = 64 << 10
)

// Services are the handlers' dependencies
type Services struct {
	Contact    *services.ContactService
	Investment *services.InvestmentService
	Health     *services.HealthService
}

// Server routes requests to the form services
type Server struct {
	cfg *config.Config
	svc Services
	log *zap.Logger
}

// New creates a new server
func New(cfg *config.Config, svc Services, log *zap.Logger) *Server {
	return &Server{cfg: cfg, svc: svc, log: logger.OrNop(log).Named("http")}
}

// Handler mounts every route behind the middleware chain:
// security headers -> CORS -> request id -> logging -> prometheus -> routes.
func (s *Server) Handler() http.Handler {
	mux := goahttp.NewMuxer()

	mux.Handle(http.MethodGet, "/health", s.health)
	for _, prefix := range []string{"/api/v1/contact", "/api/v1/contact/"} {
		mux.Handle(http.MethodGet, prefix, s.listContact)
	}
	mux.Handle(http.MethodPost, "/api/v1/contact/submit", s.submitContact)
	for _, prefix := range []string{"/api/v1/investment", "/api/v1/investment/"} {
		mux.Handle(http.MethodPost, prefix, s.submitInvestment)
		mux.Handle(http.MethodGet, prefix, s.listInvestment)
	}

	// /metrics goes straight to Prometheus, everything else to the goa mux
	root := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/metrics" {
			promhttp.Handler().ServeHTTP(w, r)
			return
		}
		mux.ServeHTTP(w, r)
	})

	var h http.Handler = metrics.PrometheusMiddleware(root)
	h = s.requestLogging(h)
	h = middleware.PopulateRequestContext()(h)
	h = middleware.RequestID(middleware.UseXRequestIDHeaderOption(true))(h)
	h = s.cors(h)
	return s.securityHeaders(h)
}

// HTTPServer wraps Handler in an http.Server with the listen address and timeouts from configuration
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf("%s:%s", s.cfg.App.Host, s.cfg.App.Port),
		Handler:      s.Handler(),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
		ErrorLog:     zap.NewStdLog(s.log),
	}
}
