package service

import (
	"time"

	"github.com/freightline/quoting-system/internal/core/domain"
)

// Base transport cost constants. The base fee applies to every mode; the
// per-kg and per-m3 coefficients are mode-specific.
const (
	transportBaseFee = 50.0

	customsClearanceFee = 150.0
	documentationFee    = 50.0
	insuranceRate       = 0.02

	handlingFeeSea     = 200.0
	handlingFeeAir     = 100.0
	handlingFeeDefault = 50.0

	// storageCost is a placeholder for a future volume/time-based
	// calculation. Always reported, always zero for now.
	storageCost = 0.0
)

// modeCoefficient holds the linear cost function for one transport mode.
type modeCoefficient struct {
	perKg float64
	perM3 float64
}

var modeCoefficients = map[domain.TransportMode]modeCoefficient{
	domain.ModeRoad: {perKg: 0.5, perM3: 0.2},
	domain.ModeAir:  {perKg: 1.2, perM3: 0.5},
	domain.ModeSea:  {perKg: 0.3, perM3: 0.1},
}

// defaultCoefficient prices rail, multimodal, and any unrecognized mode.
var defaultCoefficient = modeCoefficient{perKg: 0.7, perM3: 0.3}

// ComputeTransportCost returns the base transport cost for the given cargo,
// mode, and service level, rounded to 2 decimals. Deterministic, no state.
func ComputeTransportCost(weightKg, volumeM3 float64, mode domain.TransportMode, urgency domain.Urgency) float64 {
	coeff, ok := modeCoefficients[mode]
	if !ok {
		coeff = defaultCoefficient
	}
	base := transportBaseFee + coeff.perKg*weightKg + coeff.perM3*volumeM3
	return domain.Round2(base * urgency.CostMultiplier())
}

// ComputeAdditionalCosts returns the ancillary fee components for a quote.
// All five components are always present, zero when not applicable.
func ComputeAdditionalCosts(mode domain.TransportMode, declaredValue float64, opts domain.QuoteOptions) domain.AdditionalCosts {
	costs := domain.AdditionalCosts{
		Documentation: documentationFee,
		Storage:       storageCost,
	}

	if opts.CustomsClearance {
		costs.CustomsClearance = customsClearanceFee
	}
	if opts.Insurance {
		costs.Insurance = domain.Round2(declaredValue * insuranceRate)
	}

	switch mode {
	case domain.ModeSea:
		costs.Handling = handlingFeeSea
	case domain.ModeAir:
		costs.Handling = handlingFeeAir
	default:
		costs.Handling = handlingFeeDefault
	}

	return costs
}

// AggregateCosts sums the component costs into the rounded grand total and
// the consumer-facing breakdown, and stamps the validity window.
//
// Breakdown grouping contract: fees = customs clearance + documentation;
// insurance is reported on its own; handling and storage appear only in
// AdditionalCosts. No component is counted twice across the two shapes.
func AggregateCosts(transport float64, duties domain.DutyBreakdown, additional domain.AdditionalCosts, now time.Time) (total float64, breakdown domain.CostBreakdown, validity domain.Validity) {
	total = domain.Round2(transport + duties.TotalDuties + additional.Sum())

	breakdown = domain.CostBreakdown{
		Transport: transport,
		Duties:    duties.TotalDuties,
		Fees:      additional.CustomsClearance + additional.Documentation,
		Insurance: additional.Insurance,
		Total:     total,
	}

	validity = domain.Validity{
		From: now,
		To:   now.AddDate(0, 0, domain.QuoteValidityDays),
	}
	return total, breakdown, validity
}
