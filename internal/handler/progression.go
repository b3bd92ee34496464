package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cyberquest/backend/internal/domain"
	"github.com/cyberquest/backend/internal/logger"
	"github.com/cyberquest/backend/internal/progression"
)

// ProgressionHandlers contains HTTP handlers for the progression engine
type ProgressionHandlers struct {
	service progression.Service
}

// NewProgressionHandlers creates new progression handlers
func NewProgressionHandlers(service progression.Service) *ProgressionHandlers {
	return &ProgressionHandlers{service: service}
}

// ProgressResponse is the user's progression snapshot
type ProgressResponse struct {
	Record      *domain.ProgressionRecord `json:"record"`
	RewardTiers []string                  `json:"reward_tiers"`
}

// RefusalResponse reports why the user's last operation was refused
type RefusalResponse struct {
	Refusal progression.Refusal `json:"refusal"`
}

// SubmitFlagRequest is the flag submission body
type SubmitFlagRequest struct {
	Flag string `json:"flag" validate:"required,max=256"`
}

// UnlockChallengeRequest targets a challenge for an explicit unlock
type UnlockChallengeRequest struct {
	UserID      string `json:"user_id" validate:"required,max=100"`
	ChallengeID string `json:"challenge_id" validate:"required,max=100"`
}

// UnlockCategoryRequest targets a category for an explicit unlock
type UnlockCategoryRequest struct {
	UserID     string `json:"user_id" validate:"required,max=100"`
	CategoryID string `json:"category_id" validate:"required,max=100"`
}

// HandleGetProgress returns the active user's progression record
// @Summary Get progression record
// @Description Returns the active user's score, completions, unlocks and reward tiers
// @Tags progression
// @Produce json
// @Success 200 {object} ProgressResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /progress [get]
func (h *ProgressionHandlers) HandleGetProgress() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := activeUser(w, r)
		if user == nil {
			return
		}

		rec, err := h.service.Progress(r.Context(), user.ID)
		if err != nil {
			respondServiceError(w, "Get progress", err)
			return
		}

		respondJSON(w, http.StatusOK, ProgressResponse{
			Record:      rec,
			RewardTiers: h.service.RewardTiers(rec.Score),
		})
	}
}

// RewardTiersResponse lists the tier ids the user's score has unlocked
type RewardTiersResponse struct {
	Score       int      `json:"score"`
	RewardTiers []string `json:"reward_tiers"`
}

// HandleGetRewardTiers returns the reward tiers unlocked by the user's score
// @Summary Get reward tiers
// @Description Returns the cosmetic reward tiers the active user's current score has unlocked
// @Tags progression
// @Produce json
// @Success 200 {object} RewardTiersResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /progress/tiers [get]
func (h *ProgressionHandlers) HandleGetRewardTiers() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := activeUser(w, r)
		if user == nil {
			return
		}

		rec, err := h.service.Progress(r.Context(), user.ID)
		if err != nil {
			respondServiceError(w, "Get reward tiers", err)
			return
		}

		respondJSON(w, http.StatusOK, RewardTiersResponse{
			Score:       rec.Score,
			RewardTiers: h.service.RewardTiers(rec.Score),
		})
	}
}

// HandleGetRefusal returns the reason the user's last operation was refused
// @Summary Get last refusal
// @Description Returns why the active user's most recent operation was refused, empty if it succeeded
// @Tags progression
// @Produce json
// @Success 200 {object} RefusalResponse
// @Failure 401 {object} ErrorResponse
// @Router /progress/refusal [get]
func (h *ProgressionHandlers) HandleGetRefusal() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := activeUser(w, r)
		if user == nil {
			return
		}

		respondJSON(w, http.StatusOK, RefusalResponse{Refusal: h.service.LastRefusal(user.ID)})
	}
}

// HandleSubmitFlag validates a flag candidate for a challenge
// @Summary Submit flag
// @Description Submits a candidate flag. Wrong guesses and refused attempts return 200 with the refusal reason.
// @Tags progression
// @Accept json
// @Produce json
// @Param challengeID path string true "Challenge ID"
// @Param request body SubmitFlagRequest true "Flag submission"
// @Success 200 {object} progression.SubmitResult
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /challenges/{challengeID}/flag [post]
func (h *ProgressionHandlers) HandleSubmitFlag() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		user := activeUser(w, r)
		if user == nil {
			return
		}
		challengeID := chi.URLParam(r, "challengeID")

		var req SubmitFlagRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Submit flag"); err != nil {
			return
		}

		result, err := h.service.SubmitFlag(r.Context(), user.ID, challengeID, req.Flag)
		if err != nil {
			respondServiceError(w, "Submit flag", err)
			return
		}

		if result.Refusal == progression.RefusalUnknownChallenge {
			respondError(w, http.StatusNotFound, ErrMsgChallengeNotFound)
			return
		}

		log.Info("Flag submission handled", "userID", user.ID, "challengeID", challengeID, "correct", result.Correct, "refusal", result.Refusal)
		respondJSON(w, http.StatusOK, result)
	}
}

// HandleRevealHint purchases a hint for a challenge
// @Summary Reveal hint
// @Description Purchases a hint, deducting its cost once. Repeat calls return the hint without further charge.
// @Tags progression
// @Produce json
// @Param challengeID path string true "Challenge ID"
// @Param hintID path string true "Hint ID"
// @Success 200 {object} progression.HintResult
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /challenges/{challengeID}/hints/{hintID} [post]
func (h *ProgressionHandlers) HandleRevealHint() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		user := activeUser(w, r)
		if user == nil {
			return
		}
		challengeID := chi.URLParam(r, "challengeID")
		hintID := chi.URLParam(r, "hintID")

		result, err := h.service.RevealHint(r.Context(), user.ID, challengeID, hintID)
		if err != nil {
			respondServiceError(w, "Reveal hint", err)
			return
		}

		switch result.Refusal {
		case progression.RefusalUnknownChallenge:
			respondError(w, http.StatusNotFound, ErrMsgChallengeNotFound)
			return
		case progression.RefusalUnknownHint:
			respondError(w, http.StatusNotFound, ErrMsgHintNotFound)
			return
		}

		log.Info("Hint request handled", "userID", user.ID, "challengeID", challengeID, "hintID", hintID, "revealed", result.Revealed, "refusal", result.Refusal)
		respondJSON(w, http.StatusOK, result)
	}
}

// HandleReset deletes the active user's progression record
// @Summary Reset progression
// @Description Deletes the active user's record. The next operation starts from the default record.
// @Tags progression
// @Produce json
// @Success 200 {object} SuccessResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /progress [delete]
func (h *ProgressionHandlers) HandleReset() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := activeUser(w, r)
		if user == nil {
			return
		}

		if err := h.service.Reset(r.Context(), user.ID); err != nil {
			respondServiceError(w, "Reset progression", err)
			return
		}

		logger.FromContext(r.Context()).Info("Progression reset", "userID", user.ID)
		respondJSON(w, http.StatusOK, SuccessResponse{Message: "Progression reset successfully"})
	}
}

// Admin endpoints

// HandleAdminUnlockChallenge force-unlocks a challenge for a user
// @Summary Admin unlock challenge
// @Description Adds the challenge to the user's unlocked set (admin only). Idempotent.
// @Tags progression,admin
// @Accept json
// @Produce json
// @Param request body UnlockChallengeRequest true "Unlock request"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /admin/unlock/challenge [post]
func (h *ProgressionHandlers) HandleAdminUnlockChallenge() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req UnlockChallengeRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Unlock challenge"); err != nil {
			return
		}

		if err := h.service.UnlockChallenge(r.Context(), req.UserID, req.ChallengeID); err != nil {
			respondServiceError(w, "Unlock challenge", err)
			return
		}

		log.Info("Admin unlocked challenge", "userID", req.UserID, "challengeID", req.ChallengeID)
		respondJSON(w, http.StatusOK, SuccessResponse{Message: "Challenge unlocked successfully"})
	}
}

// HandleAdminUnlockCategory force-unlocks a category for a user
// @Summary Admin unlock category
// @Description Adds the category to the user's unlocked set (admin only). Idempotent.
// @Tags progression,admin
// @Accept json
// @Produce json
// @Param request body UnlockCategoryRequest true "Unlock request"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /admin/unlock/category [post]
func (h *ProgressionHandlers) HandleAdminUnlockCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req UnlockCategoryRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Unlock category"); err != nil {
			return
		}

		if err := h.service.UnlockCategory(r.Context(), req.UserID, req.CategoryID); err != nil {
			respondServiceError(w, "Unlock category", err)
			return
		}

		log.Info("Admin unlocked category", "userID", req.UserID, "categoryID", req.CategoryID)
		respondJSON(w, http.StatusOK, SuccessResponse{Message: "Category unlocked successfully"})
	}
}
