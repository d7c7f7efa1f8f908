package ports

import (
	"context"
	"time"

	"github.com/freightline/quoting-system/internal/core/domain"
)

// ListQuotesFilter carries all query parameters for listing stored quotes.
// ClientID is always enforced by the service layer (RBAC).
type ListQuotesFilter struct {
	ClientID           string               // empty = no filter (admin); non-empty = scoped to client
	OriginCountry      string               // optional
	DestinationCountry string               // optional
	Mode               domain.TransportMode // optional
	DateFrom           time.Time            // optional: created_at >= DateFrom
	DateTo             time.Time            // optional: created_at <= DateTo
	Page               int                  // 1-based
	Limit              int                  // max rows per page (capped at 100 by service)
}

// QuoteRepository is the persistence sink for computed quotes. Writes are
// fire-and-forget from the engine's perspective; a failed save never fails
// the quote that produced it.
type QuoteRepository interface {
	SaveShipment(ctx context.Context, s *domain.Shipment) error
	SaveResult(ctx context.Context, r *domain.PricingResult) error
	SaveDutyAudit(ctx context.Context, a *domain.DutyAudit) error

	// FindResultByID retrieves a stored quote. When clientID is non-empty,
	// the lookup is additionally filtered by client_id (RBAC).
	FindResultByID(ctx context.Context, id, clientID string) (*domain.PricingResult, error)

	// ListResults returns a page of quotes matching filter and the total count.
	ListResults(ctx context.Context, filter ListQuotesFilter) ([]*domain.PricingResult, int64, error)
}
