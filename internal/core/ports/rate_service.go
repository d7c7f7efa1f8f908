package ports

import (
	"context"
	"time"

	"github.com/freightline/quoting-system/internal/core/domain"
)

// ResolveDutyInput identifies one duty calculation.
type ResolveDutyInput struct {
	OriginCountry      string
	ClassificationCode string
	DeclaredValue      float64
	// AsOf is the rate evaluation instant. The zero value means "now".
	AsOf time.Time
}

// UpdateRateInput carries a new tariff rate version from the admin API.
type UpdateRateInput struct {
	OriginCountry      string
	ClassificationCode string
	BaseRate           float64
	SpecialRate        *float64
	// EffectiveDate zero value means "effective immediately".
	EffectiveDate time.Time
	ExpiryDate    *time.Time
	Source        string
	Notes         string
}

// RateService resolves applicable tariff rates, computes duties, and manages
// rate supersession.
type RateService interface {
	// ResolveRate returns the single applicable rate for the key at the
	// given instant, or nil when none matches. A nil rate is the valid
	// duty-free outcome, not an error.
	ResolveRate(ctx context.Context, originCountry, classificationCode string, asOf time.Time) (*domain.TariffRate, error)

	// ResolveRateAndDuty resolves the applicable rate and applies it to the
	// declared value, producing the duty breakdown.
	ResolveRateAndDuty(ctx context.Context, input ResolveDutyInput) (*domain.DutyBreakdown, error)

	// UpdateRate appends a new rate version for the key, superseding prior
	// versions through the resolver's ordering.
	UpdateRate(ctx context.Context, input UpdateRateInput) (*domain.TariffRate, error)

	// DeactivateRate pulls every active rate row for the key.
	DeactivateRate(ctx context.Context, originCountry, classificationCode string) error
}
