package handler

import (
	"net/http"
	"strconv"

	"github.com/cyberquest/backend/internal/domain"
	"github.com/cyberquest/backend/internal/leaderboard"
	"github.com/cyberquest/backend/internal/logger"
)

// LeaderboardResponse wraps the ranked entries
type LeaderboardResponse struct {
	Entries []domain.LeaderboardEntry `json:"entries"`
}

// HandleGetLeaderboard returns the top-scoring users
// @Summary Get leaderboard
// @Description Returns the highest-scoring users, ties broken by completions
// @Tags leaderboard
// @Produce json
// @Param limit query int false "Number of entries (default 10, max 100)"
// @Success 200 {object} LeaderboardResponse
// @Failure 500 {object} ErrorResponse
// @Router /leaderboard [get]
func HandleGetLeaderboard(service leaderboard.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		limit, _ := strconv.Atoi(GetOptionalQueryParam(r, "limit", "10"))
		entries, err := service.Top(r.Context(), limit)
		if err != nil {
			log.Error("Get leaderboard: service error", "error", err, "limit", limit)
			respondError(w, http.StatusInternalServerError, "Failed to retrieve leaderboard")
			return
		}

		respondJSON(w, http.StatusOK, LeaderboardResponse{Entries: entries})
	}
}
