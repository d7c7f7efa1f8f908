package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/freightline/quoting-system/internal/api/metrics"
	"github.com/freightline/quoting-system/internal/core/domain"
	"github.com/freightline/quoting-system/internal/core/ports"
)

// PersistenceDispatcher abstracts the asynchronous persistence sink. Saves
// are fire-and-forget: a failed write never fails the quote that produced it.
type PersistenceDispatcher interface {
	EnqueueShipment(s *domain.Shipment)
	EnqueueResult(r *domain.PricingResult)
	EnqueueDutyAudit(a *domain.DutyAudit)
}

// QuoteService runs the full pricing pipeline: normalize, price transport,
// resolve duties, add ancillary fees, estimate transit, aggregate.
type QuoteService struct {
	rates   ports.RateService
	transit ports.TransitService
	repo    ports.QuoteRepository
	sink    PersistenceDispatcher
	log     zerolog.Logger
	now     func() time.Time
}

func NewQuoteService(
	rates ports.RateService,
	transit ports.TransitService,
	repo ports.QuoteRepository,
	sink PersistenceDispatcher,
	log zerolog.Logger,
) *QuoteService {
	return &QuoteService{
		rates:   rates,
		transit: transit,
		repo:    repo,
		sink:    sink,
		log:     log,
		now:     time.Now,
	}
}

// ComputeQuote produces the complete landed cost quote for one request.
// Transit estimation is best-effort inside a quote: a lane without a route
// yields a quote with no transit block, while the dedicated transit endpoint
// surfaces not-found.
func (s *QuoteService) ComputeQuote(ctx context.Context, input ports.QuoteInput) (*domain.PricingResult, error) {
	started := s.now()
	now := started.UTC()

	shipment, err := NormalizeShipment(input, now)
	if err != nil {
		return nil, err
	}
	if err := shipment.Validate(); err != nil {
		return nil, err
	}

	transportCost := ComputeTransportCost(
		shipment.Cargo.WeightKg,
		shipment.Cargo.VolumeM3,
		shipment.Transport.Mode,
		shipment.Transport.Urgency,
	)

	duty, err := s.rates.ResolveRateAndDuty(ctx, ports.ResolveDutyInput{
		OriginCountry:      shipment.Origin.Country,
		ClassificationCode: shipment.Cargo.ClassificationCode,
		DeclaredValue:      shipment.Cargo.DeclaredValue,
	})
	if err != nil {
		return nil, fmt.Errorf("compute quote: %w", err)
	}

	additional := ComputeAdditionalCosts(shipment.Transport.Mode, shipment.Cargo.DeclaredValue, shipment.Options)

	total, breakdown, validity := AggregateCosts(transportCost, *duty, additional, now)

	result := &domain.PricingResult{
		ID:                uuid.NewString(),
		ShipmentID:        shipment.ID,
		ClientID:          shipment.ClientID,
		Origin:            shipment.Origin,
		Destination:       shipment.Destination,
		Mode:              shipment.Transport.Mode,
		Urgency:           shipment.Transport.Urgency,
		BaseTransportCost: transportCost,
		DutiesAndTariffs:  *duty,
		AdditionalCosts:   additional,
		TotalCost:         total,
		Breakdown:         breakdown,
		Validity:          validity,
		CreatedAt:         now,
	}

	estimate, err := s.transit.EstimateTransitTime(ctx, ports.TransitInput{
		OriginCountry:      shipment.Origin.Country,
		DestinationCountry: shipment.Destination.Country,
		Mode:               shipment.Transport.Mode,
		Urgency:            shipment.Transport.Urgency,
	})
	switch {
	case err == nil:
		result.TransitTime = estimate
	case errors.Is(err, domain.ErrRouteNotFound):
		s.log.Debug().
			Str("origin", shipment.Origin.Country).
			Str("destination", shipment.Destination.Country).
			Str("mode", string(shipment.Transport.Mode)).
			Msg("no route for lane, quote issued without transit estimate")
	default:
		return nil, fmt.Errorf("compute quote: transit estimate: %w", err)
	}

	s.persist(shipment, result)

	metrics.QuotesComputedTotal.WithLabelValues(string(result.Mode), string(result.Urgency)).Inc()
	metrics.QuoteComputationDuration.WithLabelValues(string(result.Mode)).Observe(s.now().Sub(started).Seconds())

	s.log.Info().
		Str("quote_id", result.ID).
		Str("client_id", result.ClientID).
		Str("mode", string(result.Mode)).
		Float64("total_cost", result.TotalCost).
		Msg("quote computed")

	return result, nil
}

// persist hands the shipment, the result, and a duty audit record to the
// asynchronous sink.
func (s *QuoteService) persist(shipment *domain.Shipment, result *domain.PricingResult) {
	if s.sink == nil {
		return
	}
	s.sink.EnqueueShipment(shipment)
	s.sink.EnqueueResult(result)
	s.sink.EnqueueDutyAudit(&domain.DutyAudit{
		QuoteID:            result.ID,
		OriginCountry:      shipment.Origin.Country,
		ClassificationCode: shipment.Cargo.ClassificationCode,
		DeclaredValue:      shipment.Cargo.DeclaredValue,
		Result:             result.DutiesAndTariffs,
		EvaluatedAt:        result.CreatedAt,
	})
}

// GetQuote retrieves a stored quote. The client role is scoped to its own
// records by passing its client_id down to the repository filter.
func (s *QuoteService) GetQuote(ctx context.Context, input ports.GetQuoteInput) (*domain.PricingResult, error) {
	clientFilter := ""
	if input.Role != domain.RoleAdmin {
		clientFilter = input.ClientID
	}
	return s.repo.FindResultByID(ctx, input.QuoteID, clientFilter)
}

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// ListQuotes returns a page of stored quotes matching the filters.
func (s *QuoteService) ListQuotes(ctx context.Context, input ports.ListQuotesInput) (*ports.ListQuotesResult, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	page := input.Page
	if page < 1 {
		page = 1
	}

	clientFilter := ""
	if input.Role != domain.RoleAdmin {
		clientFilter = input.ClientID
	}

	items, total, err := s.repo.ListResults(ctx, ports.ListQuotesFilter{
		ClientID:           clientFilter,
		OriginCountry:      input.OriginCountry,
		DestinationCountry: input.DestinationCountry,
		Mode:               domain.TransportMode(input.Mode),
		DateFrom:           input.DateFrom,
		DateTo:             input.DateTo,
		Page:               page,
		Limit:              limit,
	})
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &ports.ListQuotesResult{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}
