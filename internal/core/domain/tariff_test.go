package domain

import (
	"testing"
	"time"
)

func TestTariffRateApplicableAt(t *testing.T) {
	now := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	expiry := now.Add(24 * time.Hour)

	cases := []struct {
		name string
		rate TariffRate
		want bool
	}{
		{"active and effective", TariffRate{IsActive: true, EffectiveDate: now.Add(-time.Hour)}, true},
		{"effective exactly now", TariffRate{IsActive: true, EffectiveDate: now}, true},
		{"not yet effective", TariffRate{IsActive: true, EffectiveDate: now.Add(time.Hour)}, false},
		{"inactive", TariffRate{IsActive: false, EffectiveDate: now.Add(-time.Hour)}, false},
		{"expiry in the future", TariffRate{IsActive: true, EffectiveDate: now.Add(-time.Hour), ExpiryDate: &expiry}, true},
		{"expired", TariffRate{IsActive: true, EffectiveDate: now.Add(-48 * time.Hour), ExpiryDate: &now}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.rate.ApplicableAt(now); got != tc.want {
				t.Errorf("ApplicableAt = %v, want %v", got, tc.want)
			}
		})
	}
}
