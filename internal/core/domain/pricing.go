package domain

import "time"

// QuoteValidityDays is the length of the validity window stamped on every
// computed quote.
const QuoteValidityDays = 30

// AppliedRate describes one tariff component that contributed to a duty
// calculation, for display and audit.
type AppliedRate struct {
	Rate        float64  `json:"rate" bson:"rate"`
	Type        RateType `json:"type" bson:"type"`
	Description string   `json:"description" bson:"description"`
}

// DutyBreakdown is the result of applying the resolved tariff rate(s) to the
// declared value. A zero breakdown with no applied rates is a valid duty-free
// outcome, not an error.
type DutyBreakdown struct {
	BaseDuty       float64       `json:"base_duty" bson:"base_duty"`
	SpecialTariffs float64       `json:"special_tariffs" bson:"special_tariffs"`
	TotalDuties    float64       `json:"total_duties" bson:"total_duties"`
	AppliedRates   []AppliedRate `json:"applied_rates" bson:"applied_rates"`
}

// AdditionalCosts are the ancillary fee components of a quote. All five
// fields are always present even when zero.
type AdditionalCosts struct {
	CustomsClearance float64 `json:"customs_clearance" bson:"customs_clearance"`
	Documentation    float64 `json:"documentation" bson:"documentation"`
	Insurance        float64 `json:"insurance" bson:"insurance"`
	Handling         float64 `json:"handling" bson:"handling"`
	Storage          float64 `json:"storage" bson:"storage"`
}

// Sum returns the total of all ancillary components.
func (a AdditionalCosts) Sum() float64 {
	return a.CustomsClearance + a.Documentation + a.Insurance + a.Handling + a.Storage
}

// CostBreakdown is the consumer-facing grouping of the quote components.
// Fees covers customs clearance plus documentation only; handling and
// storage are reported exclusively through AdditionalCosts so the two shapes
// never double-count a component.
type CostBreakdown struct {
	Transport float64 `json:"transport" bson:"transport"`
	Duties    float64 `json:"duties" bson:"duties"`
	Fees      float64 `json:"fees" bson:"fees"`
	Insurance float64 `json:"insurance" bson:"insurance"`
	Total     float64 `json:"total" bson:"total"`
}

// TransitEstimate is the outcome of the transit time path of a quote.
type TransitEstimate struct {
	BaseDays       int      `json:"base_days" bson:"base_days"`
	CustomsDays    int      `json:"customs_days" bson:"customs_days"`
	CongestionDays int      `json:"congestion_days" bson:"congestion_days"`
	TotalDays      int      `json:"total_days" bson:"total_days"`
	Confidence     float64  `json:"confidence" bson:"confidence"`
	Factors        []string `json:"factors" bson:"factors"`
}

// Validity is the window a quote may be honoured in.
type Validity struct {
	From time.Time `json:"from" bson:"from"`
	To   time.Time `json:"to" bson:"to"`
}

// PricingResult is the complete landed cost quote for one shipment.
// It is immutable once computed; the persistence layer stores it as an audit
// record and never recomputes it in place.
type PricingResult struct {
	ID                string           `json:"id" bson:"_id,omitempty"`
	ShipmentID        string           `json:"shipment_id" bson:"shipment_id"`
	ClientID          string           `json:"client_id,omitempty" bson:"client_id,omitempty"`
	Origin            Location         `json:"origin" bson:"origin"`
	Destination       Location         `json:"destination" bson:"destination"`
	Mode              TransportMode    `json:"transport_mode" bson:"transport_mode"`
	Urgency           Urgency          `json:"urgency" bson:"urgency"`
	BaseTransportCost float64          `json:"base_transport_cost" bson:"base_transport_cost"`
	DutiesAndTariffs  DutyBreakdown    `json:"duties_and_tariffs" bson:"duties_and_tariffs"`
	AdditionalCosts   AdditionalCosts  `json:"additional_costs" bson:"additional_costs"`
	TotalCost         float64          `json:"total_cost" bson:"total_cost"`
	Breakdown         CostBreakdown    `json:"breakdown" bson:"breakdown"`
	TransitTime       *TransitEstimate `json:"transit_time,omitempty" bson:"transit_time,omitempty"`
	Validity          Validity         `json:"validity" bson:"validity"`
	CreatedAt         time.Time        `json:"created_at" bson:"created_at"`
}

// DutyAudit records one duty calculation for the audit trail.
type DutyAudit struct {
	ID                 string        `json:"id" bson:"_id,omitempty"`
	QuoteID            string        `json:"quote_id" bson:"quote_id"`
	OriginCountry      string        `json:"origin_country" bson:"origin_country"`
	ClassificationCode string        `json:"classification_code" bson:"classification_code"`
	DeclaredValue      float64       `json:"declared_value" bson:"declared_value"`
	Result             DutyBreakdown `json:"result" bson:"result"`
	EvaluatedAt        time.Time     `json:"evaluated_at" bson:"evaluated_at"`
}
