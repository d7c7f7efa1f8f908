package domain

import (
	"errors"
	"testing"
)

func validShipment() *Shipment {
	return &Shipment{
		Origin:      Location{Country: "CN", City: "Shanghai"},
		Destination: Location{Country: "US", City: "Los Angeles"},
		Cargo: Cargo{
			WeightKg:           100,
			VolumeM3:           0.5,
			ClassificationCode: "8517.13.00",
			DeclaredValue:      1000,
			Quantity:           1,
		},
		Transport: TransportDetails{Mode: ModeSea, Urgency: UrgencyStandard},
	}
}

func TestShipmentValidate(t *testing.T) {
	if err := validShipment().Validate(); err != nil {
		t.Fatalf("valid shipment rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Shipment)
	}{
		{"zero weight", func(s *Shipment) { s.Cargo.WeightKg = 0 }},
		{"negative weight", func(s *Shipment) { s.Cargo.WeightKg = -1 }},
		{"zero volume", func(s *Shipment) { s.Cargo.VolumeM3 = 0 }},
		{"negative declared value", func(s *Shipment) { s.Cargo.DeclaredValue = -0.01 }},
		{"zero quantity", func(s *Shipment) { s.Cargo.Quantity = 0 }},
		{"missing origin country", func(s *Shipment) { s.Origin.Country = " " }},
		{"missing destination country", func(s *Shipment) { s.Destination.Country = "" }},
		{"unknown mode", func(s *Shipment) { s.Transport.Mode = "teleport" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := validShipment()
			tc.mutate(s)
			if err := s.Validate(); !errors.Is(err, ErrInvalidShipment) {
				t.Errorf("expected ErrInvalidShipment, got %v", err)
			}
		})
	}
}

func TestShipmentValidate_ZeroDeclaredValueAllowed(t *testing.T) {
	s := validShipment()
	s.Cargo.DeclaredValue = 0
	if err := s.Validate(); err != nil {
		t.Errorf("zero declared value is legal, got %v", err)
	}
}

func TestUrgencyMultipliers(t *testing.T) {
	cases := []struct {
		urgency Urgency
		cost    float64
		transit float64
	}{
		{UrgencyStandard, 1.0, 1.0},
		{UrgencyExpress, 1.5, 0.7},
		{UrgencyUrgent, 2.0, 0.5},
		{Urgency("unknown"), 1.0, 1.0},
	}
	for _, tc := range cases {
		if got := tc.urgency.CostMultiplier(); got != tc.cost {
			t.Errorf("%s cost multiplier: want %v, got %v", tc.urgency, tc.cost, got)
		}
		if got := tc.urgency.TransitMultiplier(); got != tc.transit {
			t.Errorf("%s transit multiplier: want %v, got %v", tc.urgency, tc.transit, got)
		}
	}
}
