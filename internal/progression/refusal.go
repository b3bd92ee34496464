package progression

import "github.com/cyberquest/backend/internal/metrics"

// Refusal names why the engine declined a mutation. Refusals are expected
// user outcomes (wrong flag, underfunded hint), reported on results and
// queryable after the fact - never thrown as errors.
type Refusal string

const (
	RefusalNone              Refusal = ""
	RefusalWrongFlag         Refusal = "wrong_flag"
	RefusalInsufficientScore Refusal = "insufficient_score"
	RefusalChallengeLocked   Refusal = "challenge_locked"
	RefusalUnknownChallenge  Refusal = "unknown_challenge"
	RefusalUnknownHint       Refusal = "unknown_hint"
)

// LastRefusal returns the reason the user's most recent operation was
// refused, or RefusalNone if it succeeded.
func (s *service) LastRefusal(userID string) Refusal {
	s.refusalMu.RLock()
	defer s.refusalMu.RUnlock()
	return s.lastRefusals[userID]
}

func (s *service) recordRefusal(userID string, r Refusal) {
	s.refusalMu.Lock()
	defer s.refusalMu.Unlock()
	if r == RefusalNone {
		delete(s.lastRefusals, userID)
		return
	}
	s.lastRefusals[userID] = r
	metrics.Refusals.WithLabelValues(string(r)).Inc()
}
