package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/freightline/quoting-system/internal/api/metrics"
	"github.com/freightline/quoting-system/internal/core/domain"
	"github.com/freightline/quoting-system/internal/core/ports"
)

// RateCache abstracts the applicable-rate cache (Redis). A (nil, nil) Get is
// a miss. The cache only ever holds "as of now" resolutions.
type RateCache interface {
	Get(ctx context.Context, originCountry, classificationCode string) (*domain.TariffRate, error)
	Set(ctx context.Context, rate *domain.TariffRate) error
	Invalidate(ctx context.Context, originCountry, classificationCode string) error
}

// RateService resolves applicable tariff rates and computes duty breakdowns.
type RateService struct {
	repo  ports.RateRepository
	cache RateCache
	log   zerolog.Logger
	now   func() time.Time
}

// NewRateService returns a RateService. cache may be nil (resolution then
// always hits the repository).
func NewRateService(repo ports.RateRepository, cache RateCache, log zerolog.Logger) *RateService {
	return &RateService{repo: repo, cache: cache, log: log, now: time.Now}
}

// ResolveRate selects the single applicable rate for the key at asOf:
// the most recently effective active, non-expired row, ties broken by
// highest version (last write wins). A zero asOf means "now". Returns
// (nil, nil) when no rate applies, which is the valid duty-free outcome.
func (s *RateService) ResolveRate(ctx context.Context, originCountry, classificationCode string, asOf time.Time) (*domain.TariffRate, error) {
	origin := strings.ToUpper(strings.TrimSpace(originCountry))
	code := strings.TrimSpace(classificationCode)

	isNow := asOf.IsZero()
	if isNow {
		asOf = s.now().UTC()
	}

	// Historical resolutions bypass the cache: it only holds current rates.
	if isNow && s.cache != nil {
		cached, err := s.cache.Get(ctx, origin, code)
		if err != nil {
			s.log.Warn().Err(err).Str("origin", origin).Str("code", code).Msg("rate cache read failed, falling back to repository")
		} else if cached != nil && cached.ApplicableAt(asOf) {
			metrics.RateLookupsTotal.WithLabelValues("cache_hit").Inc()
			return cached, nil
		}
	}

	candidates, err := s.repo.FindApplicableRates(ctx, origin, code, asOf)
	if err != nil {
		return nil, fmt.Errorf("resolve rate: %w", err)
	}
	if len(candidates) == 0 {
		metrics.RateLookupsTotal.WithLabelValues("zero").Inc()
		return nil, nil
	}

	// Repository ordering guarantees the head is the applicable rate.
	rate := candidates[0]
	metrics.RateLookupsTotal.WithLabelValues("resolved").Inc()

	if isNow && s.cache != nil {
		if err := s.cache.Set(ctx, rate); err != nil {
			s.log.Warn().Err(err).Str("origin", origin).Str("code", code).Msg("rate cache write failed")
		}
	}
	return rate, nil
}

// ResolveRateAndDuty resolves the applicable rate and applies it to the
// declared value. When no rate resolves, the breakdown is all-zero with no
// applied rates.
func (s *RateService) ResolveRateAndDuty(ctx context.Context, input ports.ResolveDutyInput) (*domain.DutyBreakdown, error) {
	if input.DeclaredValue < 0 {
		return nil, invalidShipmentValue("declared value must not be negative")
	}

	rate, err := s.ResolveRate(ctx, input.OriginCountry, input.ClassificationCode, input.AsOf)
	if err != nil {
		return nil, err
	}

	duty := CalculateDuty(rate, input.DeclaredValue)
	return &duty, nil
}

// CalculateDuty applies the resolved rate to the declared value. Each
// component is rounded half-up to 2 decimals independently; the total is
// rounded from the unrounded component sum, never re-derived from the
// rounded parts, so rounding drift cannot accumulate.
func CalculateDuty(rate *domain.TariffRate, declaredValue float64) domain.DutyBreakdown {
	if rate == nil {
		return domain.DutyBreakdown{AppliedRates: []domain.AppliedRate{}}
	}

	value := decimal.NewFromFloat(declaredValue)
	hundred := decimal.NewFromInt(100)

	base := value.Mul(decimal.NewFromFloat(rate.BaseRate)).Div(hundred)
	special := decimal.Zero
	if rate.SpecialRate != nil {
		special = value.Mul(decimal.NewFromFloat(*rate.SpecialRate)).Div(hundred)
	}

	applied := []domain.AppliedRate{{
		Rate:        rate.BaseRate,
		Type:        domain.RateTypeBase,
		Description: rateDescription(rate.Notes, "Base tariff rate %.2f%%", rate.BaseRate),
	}}
	if rate.SpecialRate != nil {
		applied = append(applied, domain.AppliedRate{
			Rate:        *rate.SpecialRate,
			Type:        domain.RateTypeSpecial,
			Description: rateDescription(rate.Notes, "Special tariff rate %.2f%%", *rate.SpecialRate),
		})
	}

	return domain.DutyBreakdown{
		BaseDuty:       round2d(base),
		SpecialTariffs: round2d(special),
		TotalDuties:    round2d(base.Add(special)),
		AppliedRates:   applied,
	}
}

// UpdateRate appends a new versioned rate row for the key. Prior rows are
// left untouched; the resolver's effective-at ordering makes the new row
// supersede them, so readers never observe an empty window mid-update.
func (s *RateService) UpdateRate(ctx context.Context, input ports.UpdateRateInput) (*domain.TariffRate, error) {
	origin := strings.ToUpper(strings.TrimSpace(input.OriginCountry))
	code := strings.TrimSpace(input.ClassificationCode)

	if origin == "" || code == "" {
		return nil, invalidRate("origin country and classification code are required")
	}
	if input.BaseRate < 0 || input.BaseRate > 100 {
		return nil, invalidRate("base rate must be between 0 and 100")
	}
	if input.SpecialRate != nil && (*input.SpecialRate < 0 || *input.SpecialRate > 100) {
		return nil, invalidRate("special rate must be between 0 and 100")
	}

	now := s.now().UTC()
	effective := input.EffectiveDate
	if effective.IsZero() {
		effective = now
	}
	if input.ExpiryDate != nil && !input.ExpiryDate.After(effective) {
		return nil, invalidRate("expiry date must fall after the effective date")
	}

	rate := &domain.TariffRate{
		OriginCountry:      origin,
		ClassificationCode: code,
		BaseRate:           input.BaseRate,
		SpecialRate:        input.SpecialRate,
		EffectiveDate:      effective,
		ExpiryDate:         input.ExpiryDate,
		IsActive:           true,
		Source:             input.Source,
		Notes:              input.Notes,
		CreatedAt:          now,
	}

	if err := s.repo.InsertRate(ctx, rate); err != nil {
		s.log.Error().Err(err).Str("origin", origin).Str("code", code).Msg("failed to insert tariff rate")
		return nil, err
	}

	s.invalidateCache(ctx, origin, code)

	s.log.Info().
		Str("origin", origin).
		Str("code", code).
		Float64("base_rate", rate.BaseRate).
		Int("version", rate.Version).
		Msg("tariff rate updated")

	return rate, nil
}

// DeactivateRate pulls every active rate row for the key outright.
func (s *RateService) DeactivateRate(ctx context.Context, originCountry, classificationCode string) error {
	origin := strings.ToUpper(strings.TrimSpace(originCountry))
	code := strings.TrimSpace(classificationCode)

	n, err := s.repo.DeactivateRates(ctx, origin, code)
	if err != nil {
		return fmt.Errorf("deactivate rate: %w", err)
	}

	s.invalidateCache(ctx, origin, code)
	s.log.Info().Str("origin", origin).Str("code", code).Int64("rows", n).Msg("tariff rates deactivated")
	return nil
}

func (s *RateService) invalidateCache(ctx context.Context, origin, code string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, origin, code); err != nil {
		s.log.Warn().Err(err).Str("origin", origin).Str("code", code).Msg("rate cache invalidation failed")
	}
}

func rateDescription(notes, format string, rate float64) string {
	if notes != "" {
		return notes
	}
	return fmt.Sprintf(format, rate)
}

func round2d(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()
	return f
}

func invalidRate(msg string) error {
	return errors.Join(domain.ErrInvalidRate, errors.New(msg))
}

func invalidShipmentValue(msg string) error {
	return errors.Join(domain.ErrInvalidShipment, errors.New(msg))
}
