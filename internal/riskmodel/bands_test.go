package riskmodel

import (
	"testing"

	"futured/internal/model"
)

func TestFourBandTiers(t *testing.T) {
	cases := []struct {
		percentage float64
		want       model.RiskTier
	}{
		{100, model.TierHigh},
		{85.5, model.TierHigh},
		{80, model.TierHigh},
		{79.99, model.TierMediumHigh},
		{60, model.TierMediumHigh},
		{59.99, model.TierMediumLow},
		{40, model.TierMediumLow},
		{39.99, model.TierLow},
		{5, model.TierLow},
		{0, model.TierLow},
	}
	for _, tc := range cases {
		band := FourBand.Evaluate(tc.percentage)
		if band.Tier != tc.want {
			t.Errorf("Evaluate(%v): got tier %q, want %q", tc.percentage, band.Tier, tc.want)
		}
	}
}

func TestBoundaryBelongsToHigherBand(t *testing.T) {
	below := FourBand.Evaluate(79.99)
	if below.Tier != model.TierMediumHigh {
		t.Errorf("79.99 should sit below the High boundary, got %q", below.Tier)
	}
	exact := FourBand.Evaluate(80.00)
	if exact.Tier != model.TierHigh {
		t.Errorf("80.00 should take the higher band, got %q", exact.Tier)
	}
}

func TestFourBandMotivesAndRecommendations(t *testing.T) {
	low := FourBand.Evaluate(5)
	if low.Motive != "No apparent risk" {
		t.Errorf("low band motive: got %q", low.Motive)
	}
	if low.Recommendation != "Maintain regular monitoring" {
		t.Errorf("low band recommendation: got %q", low.Recommendation)
	}
	high := FourBand.Evaluate(92)
	if high.Motive != "High risk: multiple academic and personal risk factors" {
		t.Errorf("high band motive: got %q", high.Motive)
	}
}

func TestTwoBandCutsAtFifty(t *testing.T) {
	if got := TwoBand.Evaluate(50).Tier; got != model.TierHigh {
		t.Errorf("50 under the two-band policy: got %q, want High", got)
	}
	if got := TwoBand.Evaluate(49.99).Tier; got != model.TierLow {
		t.Errorf("49.99 under the two-band policy: got %q, want Low", got)
	}
}

func TestPoliciesStayDistinct(t *testing.T) {
	// 55% is High under two-band but Medium-Low under four-band.
	if got := TwoBand.Evaluate(55).Tier; got != model.TierHigh {
		t.Errorf("two-band at 55: got %q, want High", got)
	}
	if got := FourBand.Evaluate(55).Tier; got != model.TierMediumLow {
		t.Errorf("four-band at 55: got %q, want Medium-Low", got)
	}
}

func TestPolicyByName(t *testing.T) {
	if got := PolicyByName(model.PolicyTwoBand).Name; got != model.PolicyTwoBand {
		t.Errorf("two_band lookup: got %q", got)
	}
	if got := PolicyByName(model.PolicyFourBand).Name; got != model.PolicyFourBand {
		t.Errorf("four_band lookup: got %q", got)
	}
	if got := PolicyByName("").Name; got != model.PolicyFourBand {
		t.Errorf("empty policy name should fall back to four_band, got %q", got)
	}
	if got := PolicyByName("nonsense").Name; got != model.PolicyFourBand {
		t.Errorf("unknown policy name should fall back to four_band, got %q", got)
	}
}

func TestEvaluateIsDeterministic(t *testing.T) {
	first := FourBand.Evaluate(63.2)
	for i := 0; i < 10; i++ {
		if got := FourBand.Evaluate(63.2); got != first {
			t.Fatalf("iteration %d: got %+v, want %+v", i, got, first)
		}
	}
}
