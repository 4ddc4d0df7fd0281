package ports

//go:generate mockgen -source=health.go -destination=mocks/mock_health.go -package=mocks

import "context"

// HealthChecker checks external dependency health.
type HealthChecker interface {
	// Ping verifies connectivity. Returns nil if healthy.
	Ping(ctx context.Context) error
	// Name returns the dependency name (e.g., "postgresql", "redis", "escrow-gateway").
	Name() string
}
