package services

import (
	"context"
	"time"
)

const healthCheckTimeout = 3 * time.Second

// Pinger is the part of a store the health check needs
type Pinger interface {
	Ping(ctx context.Context) error
	Backend() string
}

// HealthResult describes the service and its storage backend
type HealthResult struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
	Storage string `json:"storage"`
	Error   string `json:"error,omitempty"`
}

// Healthy reports whether the storage backend answered
func (r *HealthResult) Healthy() bool {
	return r.Status == "healthy"
}

// HealthService implements the health service
type HealthService struct {
	store   Pinger
	name    string
	version string
}

// NewHealthService creates a new health service
func NewHealthService(store Pinger, name, version string) *HealthService {
	return &HealthService{store: store, name: name, version: version}
}

// Check pings the storage backend
func (s *HealthService) Check(ctx context.Context) *HealthResult {
	res := &HealthResult{
		Status:  "healthy",
		Service: s.name,
		Version: s.version,
		Storage: s.store.Backend(),
	}

	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()
	if err := s.store.Ping(ctx); err != nil {
		res.Status = "degraded"
		res.Error = "storage unreachable"
	}
	return res
}
