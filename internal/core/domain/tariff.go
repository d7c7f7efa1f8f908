package domain

import "time"

// RateType tags the component a tariff rate contributes to a duty calculation.
type RateType string

const (
	RateTypeBase    RateType = "base"
	RateTypeSpecial RateType = "special"
)

// TariffRate is one versioned row of the duty rate table for an
// (origin country, classification code) key. Rates are never mutated:
// an admin update appends a new row with a higher version, and the resolver
// picks the latest effective row at evaluation time.
type TariffRate struct {
	ID                 string     `json:"id" bson:"_id,omitempty"`
	OriginCountry      string     `json:"origin_country" bson:"origin_country"`
	ClassificationCode string     `json:"classification_code" bson:"classification_code"`
	BaseRate           float64    `json:"base_rate" bson:"base_rate"`
	SpecialRate        *float64   `json:"special_rate,omitempty" bson:"special_rate,omitempty"`
	EffectiveDate      time.Time  `json:"effective_date" bson:"effective_date"`
	ExpiryDate         *time.Time `json:"expiry_date,omitempty" bson:"expiry_date,omitempty"`
	Version            int        `json:"version" bson:"version"`
	IsActive           bool       `json:"is_active" bson:"is_active"`
	Source             string     `json:"source,omitempty" bson:"source,omitempty"`
	Notes              string     `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt          time.Time  `json:"created_at" bson:"created_at"`
}

// ApplicableAt reports whether this rate row may price a shipment at t:
// active, already effective, and not yet expired.
func (r *TariffRate) ApplicableAt(t time.Time) bool {
	if !r.IsActive {
		return false
	}
	if r.EffectiveDate.After(t) {
		return false
	}
	if r.ExpiryDate != nil && !r.ExpiryDate.After(t) {
		return false
	}
	return true
}

// ShippingRoute holds the transit figures for an
// (origin country, destination country, transport mode) lane.
// Total raw transit time is BaseTransitDays + CustomsDelayDays +
// PortCongestionDays, before any urgency adjustment.
type ShippingRoute struct {
	ID                 string        `json:"id" bson:"_id,omitempty"`
	OriginCountry      string        `json:"origin_country" bson:"origin_country"`
	DestinationCountry string        `json:"destination_country" bson:"destination_country"`
	Mode               TransportMode `json:"transport_mode" bson:"transport_mode"`
	BaseTransitDays    int           `json:"base_transit_days" bson:"base_transit_days"`
	CustomsDelayDays   int           `json:"customs_delay_days" bson:"customs_delay_days"`
	PortCongestionDays int           `json:"port_congestion_days" bson:"port_congestion_days"`
	Restrictions       []string      `json:"restrictions,omitempty" bson:"restrictions,omitempty"`
	IsActive           bool          `json:"is_active" bson:"is_active"`
	EffectiveDate      time.Time     `json:"effective_date" bson:"effective_date"`
	ExpiryDate         *time.Time    `json:"expiry_date,omitempty" bson:"expiry_date,omitempty"`
}
