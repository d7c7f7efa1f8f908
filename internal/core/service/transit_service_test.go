package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/freightline/quoting-system/internal/core/domain"
	"github.com/freightline/quoting-system/internal/core/ports"
)

func seaRoute(base, customs, congestion int) *domain.ShippingRoute {
	return &domain.ShippingRoute{
		OriginCountry:      "CN",
		DestinationCountry: "US",
		Mode:               domain.ModeSea,
		BaseTransitDays:    base,
		CustomsDelayDays:   customs,
		PortCongestionDays: congestion,
		IsActive:           true,
	}
}

func TestEstimateTransitTime_Standard(t *testing.T) {
	repo := &stubRateRepo{routes: []*domain.ShippingRoute{seaRoute(21, 3, 2)}}
	svc := NewTransitService(repo, discardLogger)

	estimate, err := svc.EstimateTransitTime(context.Background(), ports.TransitInput{
		OriginCountry:      "CN",
		DestinationCountry: "US",
		Mode:               domain.ModeSea,
		Urgency:            domain.UrgencyStandard,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if estimate.TotalDays != 26 {
		t.Errorf("total days: want 26, got %d", estimate.TotalDays)
	}
	if estimate.Confidence != 0.8 {
		t.Errorf("confidence: want 0.8, got %v", estimate.Confidence)
	}
	if len(estimate.Factors) != 3 {
		t.Fatalf("standard urgency must list exactly 3 factors, got %v", estimate.Factors)
	}
	if estimate.Factors[0] != "Base transit time: 21 days" {
		t.Errorf("first factor: got %q", estimate.Factors[0])
	}
	if estimate.Factors[1] != "Customs processing: 3 days" {
		t.Errorf("second factor: got %q", estimate.Factors[1])
	}
	if estimate.Factors[2] != "Port congestion: 2 days" {
		t.Errorf("third factor: got %q", estimate.Factors[2])
	}
}

func TestEstimateTransitTime_Expedited(t *testing.T) {
	repo := &stubRateRepo{routes: []*domain.ShippingRoute{seaRoute(21, 3, 2)}}
	svc := NewTransitService(repo, discardLogger)

	cases := []struct {
		urgency  domain.Urgency
		total    int
		lastLine string
	}{
		{domain.UrgencyExpress, 18, "express service: transit time x0.7"}, // round(26*0.7)
		{domain.UrgencyUrgent, 13, "urgent service: transit time x0.5"},   // round(26*0.5)
	}
	for _, tc := range cases {
		t.Run(string(tc.urgency), func(t *testing.T) {
			estimate, err := svc.EstimateTransitTime(context.Background(), ports.TransitInput{
				OriginCountry:      "CN",
				DestinationCountry: "US",
				Mode:               domain.ModeSea,
				Urgency:            tc.urgency,
			})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if estimate.TotalDays != tc.total {
				t.Errorf("total days: want %d, got %d", tc.total, estimate.TotalDays)
			}
			if len(estimate.Factors) != 4 {
				t.Fatalf("expedited urgency must add a 4th factor, got %v", estimate.Factors)
			}
			if estimate.Factors[3] != tc.lastLine {
				t.Errorf("urgency factor: want %q, got %q", tc.lastLine, estimate.Factors[3])
			}
		})
	}
}

// The multiplier applies to the summed days, rounding once at the end.
func TestEstimateTransitTime_RoundsAfterMultiplier(t *testing.T) {
	repo := &stubRateRepo{routes: []*domain.ShippingRoute{seaRoute(3, 1, 1)}}
	svc := NewTransitService(repo, discardLogger)

	estimate, err := svc.EstimateTransitTime(context.Background(), ports.TransitInput{
		OriginCountry:      "CN",
		DestinationCountry: "US",
		Mode:               domain.ModeSea,
		Urgency:            domain.UrgencyExpress,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 5 * 0.7 = 3.5 → 4; rounding each component first would give 2+1+1 = 4
	// only by coincidence, so also check the component fields stay unscaled.
	if estimate.TotalDays != 4 {
		t.Errorf("total days: want 4, got %d", estimate.TotalDays)
	}
	if estimate.BaseDays != 3 || estimate.CustomsDays != 1 || estimate.CongestionDays != 1 {
		t.Errorf("component days must stay unscaled: %+v", estimate)
	}
}

func TestEstimateTransitTime_EmptyUrgencyDefaultsToStandard(t *testing.T) {
	repo := &stubRateRepo{routes: []*domain.ShippingRoute{seaRoute(21, 3, 2)}}
	svc := NewTransitService(repo, discardLogger)

	estimate, err := svc.EstimateTransitTime(context.Background(), ports.TransitInput{
		OriginCountry:      "cn",
		DestinationCountry: "us",
		Mode:               domain.ModeSea,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if estimate.TotalDays != 26 || len(estimate.Factors) != 3 {
		t.Errorf("empty urgency must behave as standard, got %+v", estimate)
	}
}

func TestEstimateTransitTime_NoRoute(t *testing.T) {
	svc := NewTransitService(&stubRateRepo{}, discardLogger)

	_, err := svc.EstimateTransitTime(context.Background(), ports.TransitInput{
		OriginCountry:      "CN",
		DestinationCountry: "AQ",
		Mode:               domain.ModeSea,
	})
	if !errors.Is(err, domain.ErrRouteNotFound) {
		t.Errorf("expected ErrRouteNotFound, got %v", err)
	}
}

func TestEstimateTransitTime_InactiveRouteIgnored(t *testing.T) {
	route := seaRoute(21, 3, 2)
	route.IsActive = false
	svc := NewTransitService(&stubRateRepo{routes: []*domain.ShippingRoute{route}}, discardLogger)

	_, err := svc.EstimateTransitTime(context.Background(), ports.TransitInput{
		OriginCountry:      "CN",
		DestinationCountry: "US",
		Mode:               domain.ModeSea,
	})
	if !errors.Is(err, domain.ErrRouteNotFound) {
		t.Errorf("inactive route must not match, got %v", err)
	}
}

func TestEstimateTransitTime_UrgencyFactorMentionsService(t *testing.T) {
	repo := &stubRateRepo{routes: []*domain.ShippingRoute{seaRoute(10, 2, 0)}}
	svc := NewTransitService(repo, discardLogger)

	estimate, err := svc.EstimateTransitTime(context.Background(), ports.TransitInput{
		OriginCountry:      "CN",
		DestinationCountry: "US",
		Mode:               domain.ModeSea,
		Urgency:            domain.UrgencyUrgent,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	last := estimate.Factors[len(estimate.Factors)-1]
	if !strings.Contains(last, "urgent") {
		t.Errorf("urgency factor must name the service level, got %q", last)
	}
}
