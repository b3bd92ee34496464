package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cyberquest/backend/internal/catalog"
	"github.com/cyberquest/backend/internal/domain"
	"github.com/cyberquest/backend/internal/identity"
	"github.com/cyberquest/backend/internal/progression"
)

// mockProgressionService implements progression.Service for handler tests
type mockProgressionService struct {
	record       *domain.ProgressionRecord
	progressErr  error
	hintResult   *progression.HintResult
	submitResult *progression.SubmitResult
	opErr        error
	refusal      progression.Refusal

	lastUserID      string
	lastChallengeID string
	lastCandidate   string
	lastHintID      string
	resetCalled     bool
}

func (m *mockProgressionService) Progress(ctx context.Context, userID string) (*domain.ProgressionRecord, error) {
	m.lastUserID = userID
	if m.progressErr != nil {
		return nil, m.progressErr
	}
	if m.record == nil {
		return domain.NewProgressionRecord(), nil
	}
	return m.record, nil
}

func (m *mockProgressionService) RewardTiers(score int) []string {
	return domain.TiersForScore(score)
}

func (m *mockProgressionService) LastRefusal(userID string) progression.Refusal {
	return m.refusal
}

func (m *mockProgressionService) RevealHint(ctx context.Context, userID, challengeID, hintID string) (*progression.HintResult, error) {
	m.lastUserID, m.lastChallengeID, m.lastHintID = userID, challengeID, hintID
	return m.hintResult, m.opErr
}

func (m *mockProgressionService) SubmitFlag(ctx context.Context, userID, challengeID, candidate string) (*progression.SubmitResult, error) {
	m.lastUserID, m.lastChallengeID, m.lastCandidate = userID, challengeID, candidate
	return m.submitResult, m.opErr
}

func (m *mockProgressionService) UnlockChallenge(ctx context.Context, userID, challengeID string) error {
	m.lastUserID, m.lastChallengeID = userID, challengeID
	return m.opErr
}

func (m *mockProgressionService) UnlockCategory(ctx context.Context, userID, categoryID string) error {
	m.lastUserID, m.lastChallengeID = userID, categoryID
	return m.opErr
}

func (m *mockProgressionService) Reset(ctx context.Context, userID string) error {
	m.lastUserID = userID
	m.resetCalled = true
	return m.opErr
}

func withTestUser(req *http.Request) *http.Request {
	return req.WithContext(identity.WithUser(req.Context(), &domain.User{ID: "alice", DisplayName: "Alice"}))
}

func newCatalogForHandlers(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New([]domain.Category{
		{
			ID:    "net",
			Title: "Networking",
			Challenges: []domain.Challenge{
				{
					ID: "net-1", Title: "First Hop", Difficulty: 1, Points: 50, Flag: "CQ{secret}",
					Hints: []domain.Hint{
						{ID: "net-1-h1", Text: "hidden until purchased", Cost: 10},
					},
				},
			},
		},
	})
	require.NoError(t, err)
	return c
}

func TestHandleSubmitFlag(t *testing.T) {
	svc := &mockProgressionService{
		submitResult: &progression.SubmitResult{Correct: true, PointsAwarded: 50, Score: 100},
	}
	h := NewProgressionHandlers(svc)

	r := chi.NewRouter()
	r.Post("/challenges/{challengeID}/flag", h.HandleSubmitFlag())

	req := withTestUser(httptest.NewRequest("POST", "/challenges/net-1/flag", strings.NewReader(`{"flag":"CQ{secret}"}`)))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alice", svc.lastUserID)
	assert.Equal(t, "net-1", svc.lastChallengeID)
	assert.Equal(t, "CQ{secret}", svc.lastCandidate)
	assert.Contains(t, rec.Body.String(), `"correct":true`)
}

func TestHandleSubmitFlag_WrongFlagIsStillOK(t *testing.T) {
	svc := &mockProgressionService{
		submitResult: &progression.SubmitResult{Refusal: progression.RefusalWrongFlag, Score: 50},
	}
	h := NewProgressionHandlers(svc)

	r := chi.NewRouter()
	r.Post("/challenges/{challengeID}/flag", h.HandleSubmitFlag())

	req := withTestUser(httptest.NewRequest("POST", "/challenges/net-1/flag", strings.NewReader(`{"flag":"nope"}`)))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	// Wrong guesses are results, not errors
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), string(progression.RefusalWrongFlag))
}

func TestHandleSubmitFlag_UnknownChallengeIs404(t *testing.T) {
	svc := &mockProgressionService{
		submitResult: &progression.SubmitResult{Refusal: progression.RefusalUnknownChallenge},
	}
	h := NewProgressionHandlers(svc)

	r := chi.NewRouter()
	r.Post("/challenges/{challengeID}/flag", h.HandleSubmitFlag())

	req := withTestUser(httptest.NewRequest("POST", "/challenges/ghost/flag", strings.NewReader(`{"flag":"x"}`)))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleSubmitFlag_RequiresUser(t *testing.T) {
	h := NewProgressionHandlers(&mockProgressionService{})

	r := chi.NewRouter()
	r.Post("/challenges/{challengeID}/flag", h.HandleSubmitFlag())

	req := httptest.NewRequest("POST", "/challenges/net-1/flag", strings.NewReader(`{"flag":"x"}`))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandleSubmitFlag_InvalidBody(t *testing.T) {
	h := NewProgressionHandlers(&mockProgressionService{})

	r := chi.NewRouter()
	r.Post("/challenges/{challengeID}/flag", h.HandleSubmitFlag())

	req := withTestUser(httptest.NewRequest("POST", "/challenges/net-1/flag", strings.NewReader(`{`)))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Missing flag field fails validation
	req = withTestUser(httptest.NewRequest("POST", "/challenges/net-1/flag", strings.NewReader(`{}`)))
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleRevealHint(t *testing.T) {
	svc := &mockProgressionService{
		hintResult: &progression.HintResult{Revealed: true, Text: "look closer", Cost: 10, Score: 40},
	}
	h := NewProgressionHandlers(svc)

	r := chi.NewRouter()
	r.Post("/challenges/{challengeID}/hints/{hintID}", h.HandleRevealHint())

	req := withTestUser(httptest.NewRequest("POST", "/challenges/net-1/hints/net-1-h1", nil))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "net-1", svc.lastChallengeID)
	assert.Equal(t, "net-1-h1", svc.lastHintID)
	assert.Contains(t, rec.Body.String(), "look closer")
}

func TestHandleRevealHint_UnknownHintIs404(t *testing.T) {
	svc := &mockProgressionService{
		hintResult: &progression.HintResult{Refusal: progression.RefusalUnknownHint},
	}
	h := NewProgressionHandlers(svc)

	r := chi.NewRouter()
	r.Post("/challenges/{challengeID}/hints/{hintID}", h.HandleRevealHint())

	req := withTestUser(httptest.NewRequest("POST", "/challenges/net-1/hints/ghost", nil))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleGetProgress(t *testing.T) {
	rec := domain.NewProgressionRecord()
	rec.Score = 150
	svc := &mockProgressionService{record: rec}
	h := NewProgressionHandlers(svc)

	req := withTestUser(httptest.NewRequest("GET", "/progress", nil))
	w := httptest.NewRecorder()
	h.HandleGetProgress().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"score":150`)
	assert.Contains(t, w.Body.String(), "rookie")
}

func TestHandleReset(t *testing.T) {
	svc := &mockProgressionService{}
	h := NewProgressionHandlers(svc)

	req := withTestUser(httptest.NewRequest("DELETE", "/progress", nil))
	w := httptest.NewRecorder()
	h.HandleReset().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, svc.resetCalled)
	assert.Equal(t, "alice", svc.lastUserID)
}

func TestHandleGetCatalog_StripsSolutions(t *testing.T) {
	record := domain.NewProgressionRecord()
	record.UnlockCategory("net")
	record.UnlockChallenge("net-1")
	svc := &mockProgressionService{record: record}
	h := NewCatalogHandlers(newCatalogForHandlers(t), svc)

	req := withTestUser(httptest.NewRequest("GET", "/catalog", nil))
	w := httptest.NewRecorder()
	h.HandleGetCatalog().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()

	assert.NotContains(t, body, "CQ{secret}", "the flag must never reach the client")
	assert.NotContains(t, body, "hidden until purchased", "unpurchased hint text must be hidden")
	assert.Contains(t, body, `"state":"available"`)
	assert.Contains(t, body, `"cost":10`)
}

func TestHandleGetCatalog_RevealedHintTextIncluded(t *testing.T) {
	record := domain.NewProgressionRecord()
	record.UnlockCategory("net")
	record.UnlockChallenge("net-1")
	record.UseHint("net-1", "net-1-h1", 10)
	svc := &mockProgressionService{record: record}
	h := NewCatalogHandlers(newCatalogForHandlers(t), svc)

	req := withTestUser(httptest.NewRequest("GET", "/catalog", nil))
	w := httptest.NewRecorder()
	h.HandleGetCatalog().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "hidden until purchased")
	assert.Contains(t, w.Body.String(), `"revealed":true`)
}

func TestHandleGetCategory(t *testing.T) {
	record := domain.NewProgressionRecord()
	record.UnlockCategory("net")
	svc := &mockProgressionService{record: record}
	h := NewCatalogHandlers(newCatalogForHandlers(t), svc)

	r := chi.NewRouter()
	r.Get("/catalog/categories/{categoryID}", h.HandleGetCategory())

	req := withTestUser(httptest.NewRequest("GET", "/catalog/categories/net", nil))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"unlocked":true`)
	assert.NotContains(t, rec.Body.String(), "CQ{secret}")

	req = withTestUser(httptest.NewRequest("GET", "/catalog/categories/ghost", nil))
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleGetRewardTiers(t *testing.T) {
	record := domain.NewProgressionRecord()
	record.Score = 250
	svc := &mockProgressionService{record: record}
	h := NewProgressionHandlers(svc)

	req := withTestUser(httptest.NewRequest("GET", "/progress/tiers", nil))
	w := httptest.NewRecorder()
	h.HandleGetRewardTiers().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"score":250`)
	assert.Contains(t, w.Body.String(), "rookie")
}

func TestHandleGetChallenge_NotFound(t *testing.T) {
	h := NewCatalogHandlers(newCatalogForHandlers(t), &mockProgressionService{})

	r := chi.NewRouter()
	r.Get("/catalog/challenges/{challengeID}", h.HandleGetChallenge())

	req := withTestUser(httptest.NewRequest("GET", "/catalog/challenges/ghost", nil))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleAdminUnlockChallenge(t *testing.T) {
	svc := &mockProgressionService{}
	h := NewProgressionHandlers(svc)

	req := httptest.NewRequest("POST", "/admin/unlock/challenge", strings.NewReader(`{"user_id":"bob","challenge_id":"net-1"}`))
	w := httptest.NewRecorder()
	h.HandleAdminUnlockChallenge().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "bob", svc.lastUserID)
	assert.Equal(t, "net-1", svc.lastChallengeID)
}

func TestHandleAdminUnlockChallenge_UnknownChallenge(t *testing.T) {
	svc := &mockProgressionService{opErr: domain.ErrChallengeNotFound}
	h := NewProgressionHandlers(svc)

	req := httptest.NewRequest("POST", "/admin/unlock/challenge", strings.NewReader(`{"user_id":"bob","challenge_id":"ghost"}`))
	w := httptest.NewRecorder()
	h.HandleAdminUnlockChallenge().ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandleHealthz(t *testing.T) {
	req := httptest.NewRequest("GET", "/healthz", nil)
	w := httptest.NewRecorder()
	HandleHealthz().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestHandleVersion(t *testing.T) {
	req := httptest.NewRequest("GET", "/version", nil)
	w := httptest.NewRecorder()
	HandleVersion().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"go_version"`)
}
