package service

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/freightline/quoting-system/internal/core/domain"
	"github.com/freightline/quoting-system/internal/core/ports"
)

// legacyValuePerKg is the declared-value heuristic for legacy callers that
// send no value: 10 currency units per kilogram. It marks the quote as an
// estimate for unclassified cargo, not a priced declaration.
const legacyValuePerKg = 10.0

// NormalizeShipment converts either request shape into the canonical shipment
// record. The input is a discriminated union resolved at ingestion; exactly
// one of New or Legacy must be set. The returned shipment is never mutated
// afterwards.
func NormalizeShipment(input ports.QuoteInput, now time.Time) (*domain.Shipment, error) {
	switch {
	case input.New != nil:
		return normalizeNew(input.New, input.ClientID, now), nil
	case input.Legacy != nil:
		return normalizeLegacy(input.Legacy, input.ClientID, now), nil
	default:
		return nil, domain.ErrInvalidShipment
	}
}

func normalizeNew(in *ports.NewShipmentInput, clientID string, now time.Time) *domain.Shipment {
	urgency := domain.Urgency(in.Transport.Urgency)
	if urgency == "" {
		urgency = domain.UrgencyStandard
	}
	code := strings.TrimSpace(in.Cargo.ClassificationCode)
	if code == "" {
		code = domain.UnclassifiedCode
	}
	quantity := in.Cargo.Quantity
	if quantity < 1 {
		quantity = 1
	}

	return &domain.Shipment{
		ID:       uuid.NewString(),
		ClientID: clientID,
		Origin: domain.Location{
			Country: strings.ToUpper(strings.TrimSpace(in.Origin.Country)),
			City:    in.Origin.City,
		},
		Destination: domain.Location{
			Country: strings.ToUpper(strings.TrimSpace(in.Destination.Country)),
			City:    in.Destination.City,
		},
		Cargo: domain.Cargo{
			WeightKg: in.Cargo.WeightKg,
			VolumeM3: in.Cargo.VolumeM3,
			Dimensions: domain.Dimensions{
				LengthCm: in.Cargo.Dimensions.LengthCm,
				WidthCm:  in.Cargo.Dimensions.WidthCm,
				HeightCm: in.Cargo.Dimensions.HeightCm,
			},
			ClassificationCode: code,
			DeclaredValue:      in.Cargo.DeclaredValue,
			Quantity:           quantity,
			Description:        in.Cargo.Description,
		},
		Transport: domain.TransportDetails{
			Mode:    domain.TransportMode(in.Transport.Mode),
			Urgency: urgency,
		},
		Options: domain.QuoteOptions{
			Insurance:             in.Options.Insurance,
			CustomsClearance:      in.Options.CustomsClearance,
			DoorToDoor:            in.Options.DoorToDoor,
			TemperatureControlled: in.Options.TemperatureControlled,
		},
		CreatedAt: now,
	}
}

// normalizeLegacy synthesizes a canonical shipment from the flat legacy
// shape. The flat origin/destination string becomes both country and city,
// dimensions degrade to a 1x1xvolume box, the cargo is tagged unclassified,
// and the declared value is estimated from weight.
func normalizeLegacy(in *ports.LegacyShipmentInput, clientID string, now time.Time) *domain.Shipment {
	origin := strings.TrimSpace(in.Origin)
	destination := strings.TrimSpace(in.Destination)

	return &domain.Shipment{
		ID:       uuid.NewString(),
		ClientID: clientID,
		Origin: domain.Location{
			Country: strings.ToUpper(origin),
			City:    origin,
		},
		Destination: domain.Location{
			Country: strings.ToUpper(destination),
			City:    destination,
		},
		Cargo: domain.Cargo{
			WeightKg: in.Weight,
			VolumeM3: in.Volume,
			Dimensions: domain.Dimensions{
				LengthCm: 1,
				WidthCm:  1,
				HeightCm: in.Volume,
			},
			ClassificationCode: domain.UnclassifiedCode,
			DeclaredValue:      in.Weight * legacyValuePerKg,
			Quantity:           1,
		},
		Transport: domain.TransportDetails{
			Mode:    domain.TransportMode(strings.ToLower(strings.TrimSpace(in.TransportType))),
			Urgency: domain.UrgencyStandard,
		},
		CreatedAt: now,
	}
}
