package domain

// StartingScore is the point grant every new progression record begins with.
const StartingScore = 50

// ProgressionRecord is the per-user mutable save state. Field names are the
// persistence compatibility contract; do not rename without a migration.
type ProgressionRecord struct {
	Score               int      `json:"score"`
	CompletedChallenges []string `json:"completedChallenges"`
	UnlockedChallenges  []string `json:"unlockedChallenges"`
	UnlockedCategories  []string `json:"unlockedCategories"`
	UsedHints           []string `json:"usedHints"` // "<challengeID>/<hintID>" entries
}

// NewProgressionRecord returns an empty record with the starting score.
// Callers seed the default unlocks from the content catalog.
func NewProgressionRecord() *ProgressionRecord {
	return &ProgressionRecord{
		Score:               StartingScore,
		CompletedChallenges: []string{},
		UnlockedChallenges:  []string{},
		UnlockedCategories:  []string{},
		UsedHints:           []string{},
	}
}

// Clone returns a deep copy. The engine mutates a clone and commits it only
// after a successful save so a persistence failure cannot leave drift between
// memory and storage.
func (r *ProgressionRecord) Clone() *ProgressionRecord {
	cp := &ProgressionRecord{
		Score:               r.Score,
		CompletedChallenges: make([]string, len(r.CompletedChallenges)),
		UnlockedChallenges:  make([]string, len(r.UnlockedChallenges)),
		UnlockedCategories:  make([]string, len(r.UnlockedCategories)),
		UsedHints:           make([]string, len(r.UsedHints)),
	}
	copy(cp.CompletedChallenges, r.CompletedChallenges)
	copy(cp.UnlockedChallenges, r.UnlockedChallenges)
	copy(cp.UnlockedCategories, r.UnlockedCategories)
	copy(cp.UsedHints, r.UsedHints)
	return cp
}

// HasCompleted reports whether the challenge is in the completed set.
func (r *ProgressionRecord) HasCompleted(challengeID string) bool {
	return contains(r.CompletedChallenges, challengeID)
}

// HasUnlockedChallenge reports whether the challenge is in the unlocked set.
func (r *ProgressionRecord) HasUnlockedChallenge(challengeID string) bool {
	return contains(r.UnlockedChallenges, challengeID)
}

// HasUnlockedCategory reports whether the category is in the unlocked set.
func (r *ProgressionRecord) HasUnlockedCategory(categoryID string) bool {
	return contains(r.UnlockedCategories, categoryID)
}

// HasUsedHint reports whether the hint has already been purchased.
func (r *ProgressionRecord) HasUsedHint(challengeID, hintID string) bool {
	return contains(r.UsedHints, hintKey(challengeID, hintID))
}

// MarkCompleted adds the challenge to the completed set.
// Returns false if it was already present (idempotence guard).
func (r *ProgressionRecord) MarkCompleted(challengeID string) bool {
	if r.HasCompleted(challengeID) {
		return false
	}
	r.CompletedChallenges = append(r.CompletedChallenges, challengeID)
	return true
}

// UnlockChallenge adds the challenge to the unlocked set.
// Returns false if it was already present.
func (r *ProgressionRecord) UnlockChallenge(challengeID string) bool {
	if r.HasUnlockedChallenge(challengeID) {
		return false
	}
	r.UnlockedChallenges = append(r.UnlockedChallenges, challengeID)
	return true
}

// UnlockCategory adds the category to the unlocked set.
// Returns false if it was already present.
func (r *ProgressionRecord) UnlockCategory(categoryID string) bool {
	if r.HasUnlockedCategory(categoryID) {
		return false
	}
	r.UnlockedCategories = append(r.UnlockedCategories, categoryID)
	return true
}

// UseHint deducts the cost and records the hint as used.
// Returns false without mutation if already used or underfunded.
func (r *ProgressionRecord) UseHint(challengeID, hintID string, cost int) bool {
	if r.HasUsedHint(challengeID, hintID) || cost > r.Score {
		return false
	}
	r.Score -= cost
	r.UsedHints = append(r.UsedHints, hintKey(challengeID, hintID))
	return true
}

// hintKey builds the stored used-hint entry. Hint ids are unique only within
// their owning challenge, so the bare id cannot key the set.
func hintKey(challengeID, hintID string) string {
	return challengeID + "/" + hintID
}

// ChallengeState is the per-challenge position in the
// Locked -> Available -> Completed state machine. No transition moves backward.
type ChallengeState string

const (
	ChallengeStateLocked    ChallengeState = "locked"
	ChallengeStateAvailable ChallengeState = "available"
	ChallengeStateCompleted ChallengeState = "completed"
)

// ChallengeStateOf derives the state of a challenge from the record.
func (r *ProgressionRecord) ChallengeStateOf(challengeID string) ChallengeState {
	switch {
	case r.HasCompleted(challengeID):
		return ChallengeStateCompleted
	case r.HasUnlockedChallenge(challengeID):
		return ChallengeStateAvailable
	default:
		return ChallengeStateLocked
	}
}

func contains(set []string, id string) bool {
	for _, v := range set {
		if v == id {
			return true
		}
	}
	return false
}
