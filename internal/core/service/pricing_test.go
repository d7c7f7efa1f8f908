package service

import (
	"testing"
	"time"

	"github.com/freightline/quoting-system/internal/core/domain"
)

// ---------------------------------------------------------------------------
// ComputeTransportCost
// ---------------------------------------------------------------------------

func TestComputeTransportCost_ModeTable(t *testing.T) {
	cases := []struct {
		name    string
		weight  float64
		volume  float64
		mode    domain.TransportMode
		urgency domain.Urgency
		want    float64
	}{
		{"road standard", 100, 2, domain.ModeRoad, domain.UrgencyStandard, 100.40},   // 50 + 0.5*100 + 0.2*2
		{"air standard", 100, 0.5, domain.ModeAir, domain.UrgencyStandard, 170.25},   // 50 + 1.2*100 + 0.5*0.5
		{"sea standard", 100, 2, domain.ModeSea, domain.UrgencyStandard, 80.20},      // 50 + 0.3*100 + 0.1*2
		{"rail uses default", 100, 2, domain.ModeRail, domain.UrgencyStandard, 120.60}, // 50 + 0.7*100 + 0.3*2
		{"multimodal uses default", 10, 1, domain.ModeMultimodal, domain.UrgencyStandard, 57.30},
		{"air express", 100, 0.5, domain.ModeAir, domain.UrgencyExpress, 255.38},     // 170.25 * 1.5 = 255.375 → half-up
		{"air urgent", 100, 0.5, domain.ModeAir, domain.UrgencyUrgent, 340.50},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ComputeTransportCost(tc.weight, tc.volume, tc.mode, tc.urgency)
			if got != tc.want {
				t.Errorf("ComputeTransportCost(%v, %v, %s, %s) = %v, want %v",
					tc.weight, tc.volume, tc.mode, tc.urgency, got, tc.want)
			}
		})
	}
}

func TestComputeTransportCost_MonotonicInWeightAndVolume(t *testing.T) {
	modes := []domain.TransportMode{domain.ModeRoad, domain.ModeAir, domain.ModeSea, domain.ModeRail}
	for _, mode := range modes {
		prev := ComputeTransportCost(1, 1, mode, domain.UrgencyStandard)
		for w := 10.0; w <= 1000; w *= 10 {
			cur := ComputeTransportCost(w, 1, mode, domain.UrgencyStandard)
			if cur < prev {
				t.Errorf("mode %s: cost decreased with weight %v: %v < %v", mode, w, cur, prev)
			}
			prev = cur
		}

		prev = ComputeTransportCost(100, 0.1, mode, domain.UrgencyStandard)
		for v := 1.0; v <= 100; v *= 10 {
			cur := ComputeTransportCost(100, v, mode, domain.UrgencyStandard)
			if cur < prev {
				t.Errorf("mode %s: cost decreased with volume %v: %v < %v", mode, v, cur, prev)
			}
			prev = cur
		}
	}
}

func TestComputeTransportCost_ExpeditedCostsStrictlyMore(t *testing.T) {
	standard := ComputeTransportCost(100, 2, domain.ModeRoad, domain.UrgencyStandard)
	express := ComputeTransportCost(100, 2, domain.ModeRoad, domain.UrgencyExpress)
	urgent := ComputeTransportCost(100, 2, domain.ModeRoad, domain.UrgencyUrgent)

	if express <= standard {
		t.Errorf("express (%v) must cost strictly more than standard (%v)", express, standard)
	}
	if urgent <= express {
		t.Errorf("urgent (%v) must cost strictly more than express (%v)", urgent, express)
	}
}

// ---------------------------------------------------------------------------
// ComputeAdditionalCosts
// ---------------------------------------------------------------------------

func TestComputeAdditionalCosts_AllOptions(t *testing.T) {
	costs := ComputeAdditionalCosts(domain.ModeSea, 5000, domain.QuoteOptions{
		Insurance:        true,
		CustomsClearance: true,
	})

	if costs.CustomsClearance != 150 {
		t.Errorf("customs clearance: want 150, got %v", costs.CustomsClearance)
	}
	if costs.Documentation != 50 {
		t.Errorf("documentation: want 50, got %v", costs.Documentation)
	}
	if costs.Insurance != 100 { // 5000 * 0.02
		t.Errorf("insurance: want 100, got %v", costs.Insurance)
	}
	if costs.Handling != 200 {
		t.Errorf("sea handling: want 200, got %v", costs.Handling)
	}
	if costs.Storage != 0 {
		t.Errorf("storage must be the zero stub, got %v", costs.Storage)
	}
}

func TestComputeAdditionalCosts_NoOptions(t *testing.T) {
	costs := ComputeAdditionalCosts(domain.ModeRoad, 5000, domain.QuoteOptions{})

	if costs.CustomsClearance != 0 {
		t.Errorf("customs clearance: want 0, got %v", costs.CustomsClearance)
	}
	if costs.Insurance != 0 {
		t.Errorf("insurance: want 0, got %v", costs.Insurance)
	}
	// Documentation is always charged.
	if costs.Documentation != 50 {
		t.Errorf("documentation: want 50, got %v", costs.Documentation)
	}
}

func TestComputeAdditionalCosts_HandlingByMode(t *testing.T) {
	cases := []struct {
		mode domain.TransportMode
		want float64
	}{
		{domain.ModeSea, 200},
		{domain.ModeAir, 100},
		{domain.ModeRoad, 50},
		{domain.ModeRail, 50},
		{domain.ModeMultimodal, 50},
	}
	for _, tc := range cases {
		costs := ComputeAdditionalCosts(tc.mode, 0, domain.QuoteOptions{})
		if costs.Handling != tc.want {
			t.Errorf("mode %s: handling want %v, got %v", tc.mode, tc.want, costs.Handling)
		}
	}
}

func TestComputeAdditionalCosts_InsuranceRounding(t *testing.T) {
	// 1234.56 * 0.02 = 24.6912 → 24.69
	costs := ComputeAdditionalCosts(domain.ModeRoad, 1234.56, domain.QuoteOptions{Insurance: true})
	if costs.Insurance != 24.69 {
		t.Errorf("insurance: want 24.69, got %v", costs.Insurance)
	}
}

// ---------------------------------------------------------------------------
// AggregateCosts
// ---------------------------------------------------------------------------

func TestAggregateCosts_TotalIsSumOfAllComponents(t *testing.T) {
	duty := domain.DutyBreakdown{BaseDuty: 250, SpecialTariffs: 0, TotalDuties: 250}
	additional := domain.AdditionalCosts{
		CustomsClearance: 150,
		Documentation:    50,
		Insurance:        20,
		Handling:         100,
		Storage:          0,
	}
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	total, breakdown, validity := AggregateCosts(170.25, duty, additional, now)

	want := domain.Round2(170.25 + 250 + 150 + 50 + 20 + 100 + 0)
	if total != want {
		t.Errorf("total: want %v, got %v", want, total)
	}
	if breakdown.Total != total {
		t.Errorf("breakdown.Total must equal total: %v != %v", breakdown.Total, total)
	}
	if !validity.From.Equal(now) {
		t.Errorf("validity.From: want %v, got %v", now, validity.From)
	}
	if !validity.To.Equal(now.AddDate(0, 0, 30)) {
		t.Errorf("validity.To: want now+30d, got %v", validity.To)
	}
}

// The breakdown groups customs+documentation as fees and reports insurance on
// its own; handling and storage live only in AdditionalCosts. Summing the
// breakdown groups plus the excluded components must reproduce the total,
// with nothing counted twice.
func TestAggregateCosts_BreakdownGroupingNoDoubleCount(t *testing.T) {
	duty := domain.DutyBreakdown{TotalDuties: 99.99}
	additional := domain.AdditionalCosts{
		CustomsClearance: 150,
		Documentation:    50,
		Insurance:        31.25,
		Handling:         200,
		Storage:          0,
	}
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	total, breakdown, _ := AggregateCosts(80.20, duty, additional, now)

	if breakdown.Fees != 200 { // 150 + 50
		t.Errorf("fees: want 200, got %v", breakdown.Fees)
	}
	if breakdown.Insurance != 31.25 {
		t.Errorf("insurance: want 31.25, got %v", breakdown.Insurance)
	}
	if breakdown.Transport != 80.20 {
		t.Errorf("transport: want 80.20, got %v", breakdown.Transport)
	}
	if breakdown.Duties != 99.99 {
		t.Errorf("duties: want 99.99, got %v", breakdown.Duties)
	}

	reassembled := domain.Round2(breakdown.Transport + breakdown.Duties + breakdown.Fees +
		breakdown.Insurance + additional.Handling + additional.Storage)
	if reassembled != total {
		t.Errorf("breakdown groups + handling + storage = %v, want total %v", reassembled, total)
	}
}
