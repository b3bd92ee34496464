package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/cyberquest/backend/internal/domain"
	"github.com/cyberquest/backend/internal/eventlog"
	"github.com/cyberquest/backend/internal/logger"
	"github.com/cyberquest/backend/internal/repository"
)

// SubmissionsResponse wraps audit-trail rows
type SubmissionsResponse struct {
	Submissions []domain.Submission `json:"submissions"`
}

// HandleListSubmissions returns the submission audit trail (admin only)
// @Summary List submissions
// @Description Returns recorded flag attempts and hint purchases, newest first
// @Tags admin
// @Produce json
// @Param user_id query string false "Filter by user ID"
// @Param challenge_id query string false "Filter by challenge ID"
// @Param kind query string false "Filter by kind (flag, hint)"
// @Param since query string false "Only rows at or after this RFC3339 timestamp"
// @Param limit query int false "Maximum rows (default 50)"
// @Success 200 {object} SubmissionsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /admin/submissions [get]
func HandleListSubmissions(service eventlog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		filter := repository.SubmissionFilter{Limit: 50}
		if v, err := strconv.Atoi(GetOptionalQueryParam(r, "limit", "50")); err == nil && v > 0 {
			filter.Limit = v
		}
		if v := r.URL.Query().Get("user_id"); v != "" {
			filter.UserID = &v
		}
		if v := r.URL.Query().Get("challenge_id"); v != "" {
			filter.ChallengeID = &v
		}
		if v := r.URL.Query().Get("kind"); v != "" {
			if v != domain.SubmissionKindFlag && v != domain.SubmissionKindHint {
				respondError(w, http.StatusBadRequest, "kind must be 'flag' or 'hint'")
				return
			}
			filter.Kind = &v
		}
		if v := r.URL.Query().Get("since"); v != "" {
			ts, err := time.Parse(time.RFC3339, v)
			if err != nil {
				respondError(w, http.StatusBadRequest, "since must be an RFC3339 timestamp")
				return
			}
			filter.Since = &ts
		}

		subs, err := service.Submissions(r.Context(), filter)
		if err != nil {
			log.Error("List submissions: service error", "error", err)
			respondError(w, http.StatusInternalServerError, "Failed to retrieve submissions")
			return
		}

		respondJSON(w, http.StatusOK, SubmissionsResponse{Submissions: subs})
	}
}
