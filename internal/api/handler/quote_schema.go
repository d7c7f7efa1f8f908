package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

type locationRequest struct {
	Country string `json:"country" validate:"required"`
	City    string `json:"city"`
}

type dimensionsRequest struct {
	LengthCm float64 `json:"length_cm" validate:"gte=0"`
	WidthCm  float64 `json:"width_cm"  validate:"gte=0"`
	HeightCm float64 `json:"height_cm" validate:"gte=0"`
}

type cargoRequest struct {
	WeightKg           float64           `json:"weight_kg"           validate:"required,gt=0"`
	VolumeM3           float64           `json:"volume_m3"           validate:"required,gt=0"`
	Dimensions         dimensionsRequest `json:"dimensions"`
	ClassificationCode string            `json:"classification_code"`
	DeclaredValue      float64           `json:"declared_value"      validate:"gte=0"`
	Quantity           int               `json:"quantity"            validate:"gte=0"`
	Description        string            `json:"description"`
}

type transportRequest struct {
	Mode    string `json:"mode"    validate:"required,oneof=road air sea rail multimodal"`
	Urgency string `json:"urgency" validate:"omitempty,oneof=standard express urgent"`
}

type optionsRequest struct {
	Insurance             bool `json:"insurance"`
	CustomsClearance      bool `json:"customs_clearance"`
	DoorToDoor            bool `json:"door_to_door"`
	TemperatureControlled bool `json:"temperature_controlled"`
}

// createQuoteRequest is the structured request shape.
type createQuoteRequest struct {
	Origin      locationRequest  `json:"origin"      validate:"required"`
	Destination locationRequest  `json:"destination" validate:"required"`
	Cargo       cargoRequest     `json:"cargo"       validate:"required"`
	Transport   transportRequest `json:"transport"   validate:"required"`
	Options     optionsRequest   `json:"options"`
}

// legacyQuoteRequest is the flat shape still sent by older integrations.
// It is detected by the absence of a "cargo" object in the payload.
type legacyQuoteRequest struct {
	Origin        string  `json:"origin"         validate:"required"`
	Destination   string  `json:"destination"    validate:"required"`
	Weight        float64 `json:"weight"         validate:"required,gt=0"`
	Volume        float64 `json:"volume"         validate:"required,gt=0"`
	TransportType string  `json:"transport_type" validate:"required,oneof=road air sea rail multimodal"`
}

type updateRateRequest struct {
	OriginCountry      string   `json:"origin_country"      validate:"required"`
	ClassificationCode string   `json:"classification_code" validate:"required"`
	BaseRate           float64  `json:"base_rate"           validate:"gte=0,lte=100"`
	SpecialRate        *float64 `json:"special_rate"        validate:"omitempty,gte=0,lte=100"`
	EffectiveDate      string   `json:"effective_date"`
	ExpiryDate         string   `json:"expiry_date"`
	Source             string   `json:"source"`
	Notes              string   `json:"notes"`
}

// --- Response types ---
// Response-only types owned by the transport layer. These are intentionally
// separate from ports/domain types so the JSON contract is not coupled to
// internal service changes.

type locationResponse struct {
	Country string `json:"country"`
	City    string `json:"city,omitempty"`
}

type appliedRateResponse struct {
	Rate        float64 `json:"rate"`
	Type        string  `json:"type"`
	Description string  `json:"description"`
}

type dutyBreakdownResponse struct {
	BaseDuty       float64               `json:"base_duty"`
	SpecialTariffs float64               `json:"special_tariffs"`
	TotalDuties    float64               `json:"total_duties"`
	AppliedRates   []appliedRateResponse `json:"applied_rates"`
}

type additionalCostsResponse struct {
	CustomsClearance float64 `json:"customs_clearance"`
	Documentation    float64 `json:"documentation"`
	Insurance        float64 `json:"insurance"`
	Handling         float64 `json:"handling"`
	Storage          float64 `json:"storage"`
}

type costBreakdownResponse struct {
	Transport float64 `json:"transport"`
	Duties    float64 `json:"duties"`
	Fees      float64 `json:"fees"`
	Insurance float64 `json:"insurance"`
	Total     float64 `json:"total"`
}

type transitEstimateResponse struct {
	BaseDays       int      `json:"base_days"`
	CustomsDays    int      `json:"customs_days"`
	CongestionDays int      `json:"congestion_days"`
	TotalDays      int      `json:"total_days"`
	Confidence     float64  `json:"confidence"`
	Factors        []string `json:"factors"`
}

type validityResponse struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

type quoteLinks struct {
	Self string `json:"self"`
}

type quoteResponse struct {
	ID                string                   `json:"id"`
	ShipmentID        string                   `json:"shipment_id"`
	Origin            locationResponse         `json:"origin"`
	Destination       locationResponse         `json:"destination"`
	TransportMode     string                   `json:"transport_mode"`
	Urgency           string                   `json:"urgency"`
	BaseTransportCost float64                  `json:"base_transport_cost"`
	DutiesAndTariffs  dutyBreakdownResponse    `json:"duties_and_tariffs"`
	AdditionalCosts   additionalCostsResponse  `json:"additional_costs"`
	TotalCost         float64                  `json:"total_cost"`
	Breakdown         costBreakdownResponse    `json:"breakdown"`
	TransitTime       *transitEstimateResponse `json:"transit_time,omitempty"`
	Validity          validityResponse         `json:"validity"`
	CreatedAt         time.Time                `json:"created_at"`
	Links             quoteLinks               `json:"_links"`
}

// quoteSummaryResponse is the lightweight item used in list responses.
// It intentionally omits the full breakdowns to keep payloads small.
type quoteSummaryResponse struct {
	ID            string           `json:"id"`
	ShipmentID    string           `json:"shipment_id"`
	Origin        locationResponse `json:"origin"`
	Destination   locationResponse `json:"destination"`
	TransportMode string           `json:"transport_mode"`
	Urgency       string           `json:"urgency"`
	TotalCost     float64          `json:"total_cost"`
	CreatedAt     time.Time        `json:"created_at"`
	Links         quoteLinks       `json:"_links"`
}

type paginationResponse struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

type listQuotesResponse struct {
	Data       []quoteSummaryResponse `json:"data"`
	Pagination paginationResponse     `json:"pagination"`
}

type rateResponse struct {
	OriginCountry      string     `json:"origin_country"`
	ClassificationCode string     `json:"classification_code"`
	BaseRate           float64    `json:"base_rate"`
	SpecialRate        *float64   `json:"special_rate,omitempty"`
	EffectiveDate      time.Time  `json:"effective_date"`
	ExpiryDate         *time.Time `json:"expiry_date,omitempty"`
	Version            int        `json:"version"`
	Source             string     `json:"source,omitempty"`
	Notes              string     `json:"notes,omitempty"`
}
