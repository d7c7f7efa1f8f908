package ports

import (
	"context"

	"github.com/freightline/quoting-system/internal/core/domain"
)

// TransitInput identifies one transit time estimation. The transit path is
// keyed by lane and mode, independent of classification.
type TransitInput struct {
	OriginCountry      string
	DestinationCountry string
	Mode               domain.TransportMode
	Urgency            domain.Urgency
}

// TransitService estimates door-to-door transit time for a lane.
type TransitService interface {
	// EstimateTransitTime returns the transit estimate for the lane, or
	// domain.ErrRouteNotFound when no active route exists.
	EstimateTransitTime(ctx context.Context, input TransitInput) (*domain.TransitEstimate, error)
}
