package analytics

import "github.com/Veraticus/credit-risk-console/internal/model"

// Band is a coarse reading of a probability percentage, used by the gauge.
type Band int

// Gauge bands.
const (
	BandVeryLow Band = iota
	BandLow
	BandHigh
	BandVeryHigh
)

// String returns the band label.
func (b Band) String() string {
	switch b {
	case BandVeryLow:
		return "Very Low"
	case BandLow:
		return "Low"
	case BandHigh:
		return "High"
	default:
		return "Very High"
	}
}

// RiskBand places a probability percentage into a gauge band.
func RiskBand(percent float64) Band {
	switch {
	case percent <= 25:
		return BandVeryLow
	case percent <= 50:
		return BandLow
	case percent <= 75:
		return BandHigh
	default:
		return BandVeryHigh
	}
}

// Advice is the recommendation shown next to a prediction.
type Advice struct {
	Title       string
	Description string
	Actions     []string
}

// AdviceFor picks the recommendation tier for a prediction.
func AdviceFor(p model.Prediction) Advice {
	if p.RiskClass == model.RiskHigh {
		if p.ProbabilityScore >= 0.8 {
			return Advice{
				Title:       "Very High Risk",
				Description: "Declining this loan or requiring substantial additional collateral is strongly recommended.",
				Actions: []string{
					"Request additional collateral",
					"Revise the loan terms",
					"Consider a reduced amount",
					"Run an in-depth verification",
				},
			}
		}
		return Advice{
			Title:       "High Risk",
			Description: "This loan carries significant risk. A deeper assessment is needed.",
			Actions: []string{
				"Review the detailed credit history",
				"Verify income and employment stability",
				"Consider an adjusted interest rate",
				"Monitor repayment closely",
			},
		}
	}

	if p.ProbabilityScore <= 0.2 {
		return Advice{
			Title:       "Very Low Risk",
			Description: "Excellent credit profile. This client shows minimal default risk.",
			Actions: []string{
				"Approve with standard terms",
				"Consider preferential rates",
				"Offer additional products",
				"Maintain a privileged client relationship",
			},
		}
	}
	return Advice{
		Title:       "Low Risk",
		Description: "Good credit profile with acceptable risk. Standard approval procedure recommended.",
		Actions: []string{
			"Approve with standard terms",
			"Routine checks",
			"Periodic monitoring",
			"Keep in touch with the client",
		},
	}
}
