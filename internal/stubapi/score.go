package stubapi

import (
	"math"

	"github.com/Veraticus/credit-risk-console/internal/model"
)

// Score applies the stub's logistic heuristic. Higher loan burden, higher
// rates, renting and prior defaults raise the risk; a better credit score
// and a longer credit history lower it.
func Score(p model.ClientProfile) model.Prediction {
	z := -2.0
	z += 4.0 * (p.LoanPercentIncome - 0.2)
	z += 0.15 * (p.InterestRate - 11)
	z -= 0.012 * float64(p.CreditScore-650)
	z -= 0.02 * float64(p.CreditHistoryYears)
	if p.PriorDefaults == "Yes" {
		z += 2.5
	}
	if p.HomeOwnership == "RENT" {
		z += 0.6
	}

	prob := 1 / (1 + math.Exp(-z))
	prob = math.Round(prob*10000) / 10000

	class := model.RiskLow
	label := "Low Risk"
	if prob >= 0.5 {
		class = model.RiskHigh
		label = "High Risk"
	}

	return model.Prediction{
		RiskClass:        class,
		RiskLabel:        label,
		ProbabilityScore: prob,
		ConfidenceLevel:  confidence(prob),
	}
}

func confidence(prob float64) model.ConfidenceLevel {
	switch d := math.Abs(prob - 0.5); {
	case d >= 0.3:
		return "High"
	case d >= 0.15:
		return "Medium"
	default:
		return "Low"
	}
}
