package server

import (
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	goamiddleware "goa.design/goa/v3/middleware"
)

// securityHeaders adds security headers to responses
func (s *Server) securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("X-XSS-Protection", "1; mode=block")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Permissions-Policy", "geolocation=(), microphone=(), camera=()")
		h.Set("Server", "")

		// HSTS only over TLS outside debug
		if !s.cfg.App.Debug && r.TLS != nil {
			h.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}
		next.ServeHTTP(w, r)
	})
}

// cors rejects origins outside ALLOWED_HOSTS unless debug is on or the list is "*"
func (s *Server) cors(next http.Handler) http.Handler {
	c := s.cfg.CORS
	anyOrigin := len(c.AllowedOrigins) == 0 || slices.Contains(c.AllowedOrigins, "*")
	methods := strings.Join(c.AllowedMethods, ", ")
	headers := strings.Join(c.AllowedHeaders, ", ")
	maxAge := strconv.Itoa(c.MaxAge)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" && !s.cfg.App.Debug && !anyOrigin && !slices.Contains(c.AllowedOrigins, origin) {
			s.log.Warn("origin rejected", zap.String("origin", origin), zap.String("path", r.URL.Path))
			w.WriteHeader(http.StatusForbidden)
			return
		}

		h := w.Header()
		if origin != "" {
			h.Set("Access-Control-Allow-Origin", origin)
			h.Add("Vary", "Origin")
		} else if s.cfg.App.Debug {
			h.Set("Access-Control-Allow-Origin", "*")
		}
		h.Set("Access-Control-Allow-Methods", methods)
		h.Set("Access-Control-Allow-Headers", headers)
		h.Set("Access-Control-Expose-Headers", "Content-Type, X-Request-ID")
		h.Set("Access-Control-Max-Age", maxAge)
		h.Set("Access-Control-Allow-Credentials", "true")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the status code for the request log
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rw *statusRecorder) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

// requestLogging logs every request except health checks
func (s *Server) requestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID, _ := r.Context().Value(goamiddleware.RequestIDKey).(string)
		if reqID != "" {
			w.Header().Set("X-Request-ID", reqID)
		}

		if r.URL.Path == "/health" {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		fields := []zap.Field{
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)),
			zap.String("remote_addr", r.RemoteAddr),
		}
		if reqID != "" {
			fields = append(fields, zap.String("request_id", reqID))
		}
		if rec.status >= http.StatusInternalServerError {
			s.log.Error("request failed", fields...)
			return
		}
		s.log.Info("request handled", fields...)
	})
}
