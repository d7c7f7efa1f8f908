package handler

import (
	"github.com/freightline/quoting-system/internal/core/domain"
	"github.com/freightline/quoting-system/internal/core/ports"
)

// --- Request → Service input ---

func toQuoteInput(req createQuoteRequest, clientID string) ports.QuoteInput {
	return ports.QuoteInput{
		ClientID: clientID,
		New: &ports.NewShipmentInput{
			Origin:      ports.LocationInput{Country: req.Origin.Country, City: req.Origin.City},
			Destination: ports.LocationInput{Country: req.Destination.Country, City: req.Destination.City},
			Cargo: ports.CargoInput{
				WeightKg: req.Cargo.WeightKg,
				VolumeM3: req.Cargo.VolumeM3,
				Dimensions: ports.DimensionsInput{
					LengthCm: req.Cargo.Dimensions.LengthCm,
					WidthCm:  req.Cargo.Dimensions.WidthCm,
					HeightCm: req.Cargo.Dimensions.HeightCm,
				},
				ClassificationCode: req.Cargo.ClassificationCode,
				DeclaredValue:      req.Cargo.DeclaredValue,
				Quantity:           req.Cargo.Quantity,
				Description:        req.Cargo.Description,
			},
			Transport: ports.TransportInput{
				Mode:    req.Transport.Mode,
				Urgency: req.Transport.Urgency,
			},
			Options: ports.OptionsInput{
				Insurance:             req.Options.Insurance,
				CustomsClearance:      req.Options.CustomsClearance,
				DoorToDoor:            req.Options.DoorToDoor,
				TemperatureControlled: req.Options.TemperatureControlled,
			},
		},
	}
}

func toLegacyQuoteInput(req legacyQuoteRequest, clientID string) ports.QuoteInput {
	return ports.QuoteInput{
		ClientID: clientID,
		Legacy: &ports.LegacyShipmentInput{
			Origin:        req.Origin,
			Destination:   req.Destination,
			Weight:        req.Weight,
			Volume:        req.Volume,
			TransportType: req.TransportType,
		},
	}
}

// --- Service result → HTTP response ---

func toQuoteResponse(r *domain.PricingResult) quoteResponse {
	return quoteResponse{
		ID:                r.ID,
		ShipmentID:        r.ShipmentID,
		Origin:            toLocationResponse(r.Origin),
		Destination:       toLocationResponse(r.Destination),
		TransportMode:     string(r.Mode),
		Urgency:           string(r.Urgency),
		BaseTransportCost: r.BaseTransportCost,
		DutiesAndTariffs:  toDutyResponse(r.DutiesAndTariffs),
		AdditionalCosts: additionalCostsResponse{
			CustomsClearance: r.AdditionalCosts.CustomsClearance,
			Documentation:    r.AdditionalCosts.Documentation,
			Insurance:        r.AdditionalCosts.Insurance,
			Handling:         r.AdditionalCosts.Handling,
			Storage:          r.AdditionalCosts.Storage,
		},
		TotalCost: r.TotalCost,
		Breakdown: costBreakdownResponse{
			Transport: r.Breakdown.Transport,
			Duties:    r.Breakdown.Duties,
			Fees:      r.Breakdown.Fees,
			Insurance: r.Breakdown.Insurance,
			Total:     r.Breakdown.Total,
		},
		TransitTime: toTransitResponse(r.TransitTime),
		Validity:    validityResponse{From: r.Validity.From, To: r.Validity.To},
		CreatedAt:   r.CreatedAt.UTC(),
		Links:       quoteLinks{Self: "/v1/quotes/" + r.ID},
	}
}

func toLocationResponse(l domain.Location) locationResponse {
	return locationResponse{Country: l.Country, City: l.City}
}

func toDutyResponse(d domain.DutyBreakdown) dutyBreakdownResponse {
	applied := make([]appliedRateResponse, len(d.AppliedRates))
	for i, rate := range d.AppliedRates {
		applied[i] = appliedRateResponse{
			Rate:        rate.Rate,
			Type:        string(rate.Type),
			Description: rate.Description,
		}
	}
	return dutyBreakdownResponse{
		BaseDuty:       d.BaseDuty,
		SpecialTariffs: d.SpecialTariffs,
		TotalDuties:    d.TotalDuties,
		AppliedRates:   applied,
	}
}

func toTransitResponse(t *domain.TransitEstimate) *transitEstimateResponse {
	if t == nil {
		return nil
	}
	return &transitEstimateResponse{
		BaseDays:       t.BaseDays,
		CustomsDays:    t.CustomsDays,
		CongestionDays: t.CongestionDays,
		TotalDays:      t.TotalDays,
		Confidence:     t.Confidence,
		Factors:        t.Factors,
	}
}

func toListResponse(r *ports.ListQuotesResult) listQuotesResponse {
	items := make([]quoteSummaryResponse, len(r.Items))
	for i, result := range r.Items {
		items[i] = quoteSummaryResponse{
			ID:            result.ID,
			ShipmentID:    result.ShipmentID,
			Origin:        toLocationResponse(result.Origin),
			Destination:   toLocationResponse(result.Destination),
			TransportMode: string(result.Mode),
			Urgency:       string(result.Urgency),
			TotalCost:     result.TotalCost,
			CreatedAt:     result.CreatedAt.UTC(),
			Links:         quoteLinks{Self: "/v1/quotes/" + result.ID},
		}
	}
	return listQuotesResponse{
		Data: items,
		Pagination: paginationResponse{
			Total:      r.Total,
			Page:       r.Page,
			Limit:      r.Limit,
			TotalPages: r.TotalPages,
		},
	}
}

func toRateResponse(r *domain.TariffRate) rateResponse {
	return rateResponse{
		OriginCountry:      r.OriginCountry,
		ClassificationCode: r.ClassificationCode,
		BaseRate:           r.BaseRate,
		SpecialRate:        r.SpecialRate,
		EffectiveDate:      r.EffectiveDate,
		ExpiryDate:         r.ExpiryDate,
		Version:            r.Version,
		Source:             r.Source,
		Notes:              r.Notes,
	}
}
