package ports

import (
	"context"
	"time"

	"github.com/freightline/quoting-system/internal/core/domain"
)

// LocationInput is one endpoint of a quoted shipment.
type LocationInput struct {
	Country string
	City    string
}

// DimensionsInput holds cargo size in centimeters.
type DimensionsInput struct {
	LengthCm float64
	WidthCm  float64
	HeightCm float64
}

// CargoInput holds cargo details for the structured request shape.
type CargoInput struct {
	WeightKg           float64
	VolumeM3           float64
	Dimensions         DimensionsInput
	ClassificationCode string
	DeclaredValue      float64
	Quantity           int
	Description        string
}

// TransportInput holds the requested mode and service level.
type TransportInput struct {
	Mode    string
	Urgency string
}

// OptionsInput holds the optional services requested with a quote.
type OptionsInput struct {
	Insurance             bool
	CustomsClearance      bool
	DoorToDoor            bool
	TemperatureControlled bool
}

// NewShipmentInput is the structured (current) request shape.
type NewShipmentInput struct {
	Origin      LocationInput
	Destination LocationInput
	Cargo       CargoInput
	Transport   TransportInput
	Options     OptionsInput
}

// LegacyShipmentInput is the flat request shape still sent by older callers.
// Missing cargo attributes are synthesized by the normalizer.
type LegacyShipmentInput struct {
	Origin        string
	Destination   string
	Weight        float64
	Volume        float64
	TransportType string
}

// QuoteInput is the discriminated request passed to ComputeQuote. Exactly one
// of New or Legacy is set; the transport layer resolves the shape once at
// ingestion.
type QuoteInput struct {
	New      *NewShipmentInput
	Legacy   *LegacyShipmentInput
	ClientID string
}

// GetQuoteInput carries the parameters to retrieve a single stored quote.
type GetQuoteInput struct {
	QuoteID string
	// Role and ClientID enforce RBAC: the client role only sees own quotes.
	Role     string
	ClientID string
}

// ListQuotesInput carries all parameters for the list endpoint.
type ListQuotesInput struct {
	Role               string
	ClientID           string
	OriginCountry      string
	DestinationCountry string
	Mode               string
	DateFrom           time.Time
	DateTo             time.Time
	Page               int
	Limit              int
}

// ListQuotesResult is returned by ListQuotes.
type ListQuotesResult struct {
	Items      []*domain.PricingResult
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// QuoteService defines the use-case operations for freight quotes.
type QuoteService interface {
	// ComputeQuote normalizes the request, runs the pricing engine, and
	// returns the complete landed cost quote. Persistence of the shipment,
	// result, and duty audit happens asynchronously.
	ComputeQuote(ctx context.Context, input QuoteInput) (*domain.PricingResult, error)
	GetQuote(ctx context.Context, input GetQuoteInput) (*domain.PricingResult, error)
	ListQuotes(ctx context.Context, input ListQuotesInput) (*ListQuotesResult, error)
}
