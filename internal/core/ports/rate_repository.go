package ports

import (
	"context"
	"time"

	"github.com/freightline/quoting-system/internal/core/domain"
)

// RateRepository is the read/write boundary for tariff rates and shipping
// routes. It is the only shared resource the pricing engine touches.
type RateRepository interface {
	// FindApplicableRates returns every rate row matching the key that is
	// active, effective at asOf, and not expired at asOf, ordered by
	// effective date descending and then version descending. The first
	// element is the applicable rate.
	FindApplicableRates(ctx context.Context, originCountry, classificationCode string, asOf time.Time) ([]*domain.TariffRate, error)

	// InsertRate appends a new rate row for its key and assigns it the next
	// version number. Existing rows are never modified: the resolver's
	// ordering makes the new row supersede them.
	InsertRate(ctx context.Context, rate *domain.TariffRate) error

	// DeactivateRates flips is_active off on every active row for the key
	// and returns how many rows were affected. Used to pull a rate outright
	// rather than supersede it.
	DeactivateRates(ctx context.Context, originCountry, classificationCode string) (int64, error)

	// FindRoute returns the unique active route for the lane, or
	// domain.ErrRouteNotFound.
	FindRoute(ctx context.Context, originCountry, destinationCountry string, mode domain.TransportMode) (*domain.ShippingRoute, error)
}
