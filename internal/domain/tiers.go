package domain

// RewardTier is a cosmetic unlock gated purely on score.
type RewardTier struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Threshold int    `json:"threshold"`
}

// RewardTiers lists the score-gated cosmetic tiers in ascending threshold
// order. Thresholds may change between releases; tiers are always recomputed
// from the current score rather than updated incrementally, so the derived set
// stays consistent with whatever table ships.
var RewardTiers = []RewardTier{
	{ID: "rookie", Title: "Rookie Badge", Threshold: 100},
	{ID: "operator", Title: "Operator Badge", Threshold: 250},
	{ID: "analyst", Title: "Analyst Badge", Threshold: 500},
	{ID: "specialist", Title: "Specialist Badge", Threshold: 1000},
	{ID: "elite", Title: "Elite Badge", Threshold: 2000},
}

// TiersForScore maps a score to the monotonic set of unlocked tier ids.
// Pure function of the score.
func TiersForScore(score int) []string {
	tiers := []string{}
	for _, t := range RewardTiers {
		if score >= t.Threshold {
			tiers = append(tiers, t.ID)
		}
	}
	return tiers
}
