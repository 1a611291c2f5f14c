package riskmodel

import "futured/internal/model"

// Band is one slice of the risk percentage range. A percentage belongs to
// the band whose threshold it meets or exceeds, so a value sitting
// exactly on a boundary takes the higher band.
type Band struct {
	Threshold      float64
	Tier           model.RiskTier
	Motive         string
	Recommendation string
}

// Policy is a named, ordered banding. Bands are listed highest threshold
// first and the last band is the floor.
type Policy struct {
	Name  model.BandPolicy
	Bands []Band
}

// FourBand is the serving default used by every classification endpoint.
var FourBand = Policy{
	Name: model.PolicyFourBand,
	Bands: []Band{
		{
			Threshold:      80,
			Tier:           model.TierHigh,
			Motive:         "High risk: multiple academic and personal risk factors",
			Recommendation: "Urgent academic counseling and psychological support",
		},
		{
			Threshold:      60,
			Tier:           model.TierMediumHigh,
			Motive:         "Medium risk: low average or personal problems",
			Recommendation: "Tutoring and continuous monitoring",
		},
		{
			Threshold:      40,
			Tier:           model.TierMediumLow,
			Motive:         "Mild risk: study difficulty or low motivation",
			Recommendation: "Tutor follow-up and motivational activities",
		},
		{
			Threshold:      0,
			Tier:           model.TierLow,
			Motive:         "No apparent risk",
			Recommendation: "Maintain regular monitoring",
		},
	},
}

// TwoBand is the coarse yes/no banding the data-generation path labels
// with. It is never the serving default.
var TwoBand = Policy{
	Name: model.PolicyTwoBand,
	Bands: []Band{
		{
			Threshold:      50,
			Tier:           model.TierHigh,
			Motive:         "At risk: dropout probability above the alert threshold",
			Recommendation: "Flag for counselor review",
		},
		{
			Threshold:      0,
			Tier:           model.TierLow,
			Motive:         "No apparent risk",
			Recommendation: "Maintain regular monitoring",
		},
	},
}

// Evaluate returns the band the percentage falls into. Percentages below
// every threshold take the final band.
func (p Policy) Evaluate(riskPercentage float64) Band {
	for _, b := range p.Bands {
		if riskPercentage >= b.Threshold {
			return b
		}
	}
	if len(p.Bands) == 0 {
		return Band{Tier: model.TierLow}
	}
	return p.Bands[len(p.Bands)-1]
}

// PolicyByName resolves a stored policy name. Unknown or empty names fall
// back to the four-band default.
func PolicyByName(name model.BandPolicy) Policy {
	if name == model.PolicyTwoBand {
		return TwoBand
	}
	return FourBand
}
