package domain

// Tier buckets an overall ADEI score for dashboard summaries.
type Tier string

const (
	// TierHigh covers scores in [0.7, 1.0].
	TierHigh Tier = "High"
	// TierMedium covers scores in [0.5, 0.7).
	TierMedium Tier = "Medium"
	// TierLow covers scores below 0.5.
	TierLow Tier = "Low"
)

// TierFor classifies an overall score.
func TierFor(score float64) Tier {
	switch {
	case score >= 0.7:
		return TierHigh
	case score >= 0.5:
		return TierMedium
	default:
		return TierLow
	}
}
