package service

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/rs/zerolog"

	"github.com/freightline/quoting-system/internal/api/metrics"
	"github.com/freightline/quoting-system/internal/core/domain"
	"github.com/freightline/quoting-system/internal/core/ports"
)

// transitConfidence is the fixed confidence reported with every estimate.
// A placeholder until route history supports a data-driven figure.
const transitConfidence = 0.8

// TransitService estimates transit time from the route table.
type TransitService struct {
	repo ports.RateRepository
	log  zerolog.Logger
}

func NewTransitService(repo ports.RateRepository, log zerolog.Logger) *TransitService {
	return &TransitService{repo: repo, log: log}
}

// EstimateTransitTime looks up the active route for the lane and applies the
// urgency multiplier. The total is rounded to whole days after the
// multiplier, never before. Returns domain.ErrRouteNotFound when no route
// exists for the lane.
func (s *TransitService) EstimateTransitTime(ctx context.Context, input ports.TransitInput) (*domain.TransitEstimate, error) {
	origin := strings.ToUpper(strings.TrimSpace(input.OriginCountry))
	destination := strings.ToUpper(strings.TrimSpace(input.DestinationCountry))

	route, err := s.repo.FindRoute(ctx, origin, destination, input.Mode)
	if err != nil {
		if err == domain.ErrRouteNotFound {
			metrics.TransitLookupsTotal.WithLabelValues("not_found").Inc()
		}
		return nil, err
	}
	metrics.TransitLookupsTotal.WithLabelValues("found").Inc()

	urgency := input.Urgency
	if urgency == "" {
		urgency = domain.UrgencyStandard
	}

	rawDays := route.BaseTransitDays + route.CustomsDelayDays + route.PortCongestionDays
	totalDays := int(math.Round(float64(rawDays) * urgency.TransitMultiplier()))

	// Factor order is part of the contract: base, customs, congestion, and
	// an urgency line only for expedited service.
	factors := []string{
		fmt.Sprintf("Base transit time: %d days", route.BaseTransitDays),
		fmt.Sprintf("Customs processing: %d days", route.CustomsDelayDays),
		fmt.Sprintf("Port congestion: %d days", route.PortCongestionDays),
	}
	if urgency != domain.UrgencyStandard {
		factors = append(factors, fmt.Sprintf("%s service: transit time x%.1f", urgency, urgency.TransitMultiplier()))
	}

	return &domain.TransitEstimate{
		BaseDays:       route.BaseTransitDays,
		CustomsDays:    route.CustomsDelayDays,
		CongestionDays: route.PortCongestionDays,
		TotalDays:      totalDays,
		Confidence:     transitConfidence,
		Factors:        factors,
	}, nil
}
