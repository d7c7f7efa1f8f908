package domain

import (
	"errors"
	"strings"
	"time"
)

// TransportMode identifies the mode of transport for a shipment.
type TransportMode string

const (
	ModeRoad       TransportMode = "road"
	ModeAir        TransportMode = "air"
	ModeSea        TransportMode = "sea"
	ModeRail       TransportMode = "rail"
	ModeMultimodal TransportMode = "multimodal"
)

// Urgency is the requested service level for a shipment.
type Urgency string

const (
	UrgencyStandard Urgency = "standard"
	UrgencyExpress  Urgency = "express"
	UrgencyUrgent   Urgency = "urgent"
)

// UnclassifiedCode is the sentinel classification code assigned to legacy
// requests that carry no commodity classification. Quotes computed against it
// resolve no tariff rate and come back duty-free.
const UnclassifiedCode = "UNCLASSIFIED"

var ErrQuoteNotFound = errors.New("quote not found")
var ErrRouteNotFound = errors.New("shipping route not found")
var ErrInvalidShipment = errors.New("invalid shipment")
var ErrInvalidRate = errors.New("invalid tariff rate")
var ErrForbidden = errors.New("access forbidden")

// CostMultiplier returns the factor applied to the base transport cost for
// this service level.
func (u Urgency) CostMultiplier() float64 {
	switch u {
	case UrgencyExpress:
		return 1.5
	case UrgencyUrgent:
		return 2.0
	default:
		return 1.0
	}
}

// TransitMultiplier returns the factor applied to the raw transit day count.
// Expedited service levels compress the estimate.
func (u Urgency) TransitMultiplier() float64 {
	switch u {
	case UrgencyExpress:
		return 0.7
	case UrgencyUrgent:
		return 0.5
	default:
		return 1.0
	}
}

// Location is one endpoint of a shipment.
type Location struct {
	Country string `json:"country" bson:"country"`
	City    string `json:"city" bson:"city"`
}

// Dimensions represents the physical size of the cargo in centimeters.
type Dimensions struct {
	LengthCm float64 `json:"length_cm" bson:"length_cm"`
	WidthCm  float64 `json:"width_cm" bson:"width_cm"`
	HeightCm float64 `json:"height_cm" bson:"height_cm"`
}

// Cargo contains the details of what is being shipped.
type Cargo struct {
	WeightKg           float64    `json:"weight_kg" bson:"weight_kg"`
	VolumeM3           float64    `json:"volume_m3" bson:"volume_m3"`
	Dimensions         Dimensions `json:"dimensions" bson:"dimensions"`
	ClassificationCode string     `json:"classification_code" bson:"classification_code"`
	DeclaredValue      float64    `json:"declared_value" bson:"declared_value"`
	Quantity           int        `json:"quantity" bson:"quantity"`
	Description        string     `json:"description,omitempty" bson:"description,omitempty"`
}

// TransportDetails carries the requested mode and service level.
type TransportDetails struct {
	Mode    TransportMode `json:"mode" bson:"mode"`
	Urgency Urgency       `json:"urgency" bson:"urgency"`
}

// QuoteOptions are the optional services requested with a quote.
type QuoteOptions struct {
	Insurance             bool `json:"insurance" bson:"insurance"`
	CustomsClearance      bool `json:"customs_clearance" bson:"customs_clearance"`
	DoorToDoor            bool `json:"door_to_door" bson:"door_to_door"`
	TemperatureControlled bool `json:"temperature_controlled" bson:"temperature_controlled"`
}

// Shipment is the canonical shipment record every quote is computed from.
// It is built once per request by the normalizer and never mutated afterwards.
type Shipment struct {
	ID          string           `json:"id" bson:"_id,omitempty"`
	ClientID    string           `json:"client_id,omitempty" bson:"client_id,omitempty"`
	Origin      Location         `json:"origin" bson:"origin"`
	Destination Location         `json:"destination" bson:"destination"`
	Cargo       Cargo            `json:"cargo" bson:"cargo"`
	Transport   TransportDetails `json:"transport" bson:"transport"`
	Options     QuoteOptions     `json:"options" bson:"options"`
	CreatedAt   time.Time        `json:"created_at" bson:"created_at"`
}

// validModes lists every transport mode a quote may be computed for.
var validModes = map[TransportMode]struct{}{
	ModeRoad:       {},
	ModeAir:        {},
	ModeSea:        {},
	ModeRail:       {},
	ModeMultimodal: {},
}

// Validate checks the invariants a shipment must hold before pricing:
// strictly positive weight and volume, non-negative declared value, at least
// one unit, a known transport mode, and non-empty endpoint countries.
func (s *Shipment) Validate() error {
	switch {
	case s.Cargo.WeightKg <= 0:
		return invalidShipment("weight must be greater than zero")
	case s.Cargo.VolumeM3 <= 0:
		return invalidShipment("volume must be greater than zero")
	case s.Cargo.DeclaredValue < 0:
		return invalidShipment("declared value must not be negative")
	case s.Cargo.Quantity < 1:
		return invalidShipment("quantity must be at least 1")
	case strings.TrimSpace(s.Origin.Country) == "" || strings.TrimSpace(s.Destination.Country) == "":
		return invalidShipment("origin and destination countries are required")
	}
	if _, ok := validModes[s.Transport.Mode]; !ok {
		return invalidShipment("unknown transport mode")
	}
	return nil
}

func invalidShipment(msg string) error {
	return errors.Join(ErrInvalidShipment, errors.New(msg))
}
