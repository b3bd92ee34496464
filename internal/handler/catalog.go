package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cyberquest/backend/internal/catalog"
	"github.com/cyberquest/backend/internal/domain"
	"github.com/cyberquest/backend/internal/progression"
)

// CatalogHandlers serves the per-user content view. Solutions never leave the
// server: flags are stripped and hint text appears only once purchased.
type CatalogHandlers struct {
	content *catalog.Catalog
	service progression.Service
}

// NewCatalogHandlers creates new catalog handlers
func NewCatalogHandlers(content *catalog.Catalog, service progression.Service) *CatalogHandlers {
	return &CatalogHandlers{content: content, service: service}
}

// CategoryView is a category as the user sees it
type CategoryView struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Unlocked    bool            `json:"unlocked"`
	Challenges  []ChallengeView `json:"challenges"`
}

// ChallengeView is a challenge as the user sees it. The flag is never included.
type ChallengeView struct {
	ID          string                `json:"id"`
	CategoryID  string                `json:"category_id"`
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Difficulty  int                   `json:"difficulty"`
	Points      int                   `json:"points"`
	State       domain.ChallengeState `json:"state"`
	Hints       []HintView            `json:"hints"`
}

// HintView is a hint as the user sees it. Text is present only once revealed.
type HintView struct {
	ID       string `json:"id"`
	Cost     int    `json:"cost"`
	Revealed bool   `json:"revealed"`
	Text     string `json:"text,omitempty"`
}

// CatalogResponse is the full per-user catalog
type CatalogResponse struct {
	Categories []CategoryView `json:"categories"`
}

// HandleGetCatalog returns the full catalog with the active user's states
// @Summary Get catalog
// @Description Returns all categories and challenges with the active user's unlock and completion state
// @Tags catalog
// @Produce json
// @Success 200 {object} CatalogResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /catalog [get]
func (h *CatalogHandlers) HandleGetCatalog() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := activeUser(w, r)
		if user == nil {
			return
		}

		rec, err := h.service.Progress(r.Context(), user.ID)
		if err != nil {
			respondServiceError(w, "Get catalog", err)
			return
		}

		cats := h.content.Categories()
		views := make([]CategoryView, 0, len(cats))
		for i := range cats {
			views = append(views, categoryView(&cats[i], rec))
		}

		respondJSON(w, http.StatusOK, CatalogResponse{Categories: views})
	}
}

// HandleGetChallenge returns one challenge with the active user's state
// @Summary Get challenge
// @Description Returns one challenge with the active user's state. The flag is never included.
// @Tags catalog
// @Produce json
// @Param challengeID path string true "Challenge ID"
// @Success 200 {object} ChallengeView
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /catalog/challenges/{challengeID} [get]
func (h *CatalogHandlers) HandleGetChallenge() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := activeUser(w, r)
		if user == nil {
			return
		}

		ch := h.content.Challenge(chi.URLParam(r, "challengeID"))
		if ch == nil {
			respondError(w, http.StatusNotFound, ErrMsgChallengeNotFound)
			return
		}

		rec, err := h.service.Progress(r.Context(), user.ID)
		if err != nil {
			respondServiceError(w, "Get challenge", err)
			return
		}

		respondJSON(w, http.StatusOK, challengeView(ch, rec))
	}
}

// HandleGetCategory returns one category with the active user's state
// @Summary Get category
// @Description Returns one category and its challenges with the active user's state
// @Tags catalog
// @Produce json
// @Param categoryID path string true "Category ID"
// @Success 200 {object} CategoryView
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /catalog/categories/{categoryID} [get]
func (h *CatalogHandlers) HandleGetCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := activeUser(w, r)
		if user == nil {
			return
		}

		cat := h.content.Category(chi.URLParam(r, "categoryID"))
		if cat == nil {
			respondError(w, http.StatusNotFound, ErrMsgCategoryNotFound)
			return
		}

		rec, err := h.service.Progress(r.Context(), user.ID)
		if err != nil {
			respondServiceError(w, "Get category", err)
			return
		}

		respondJSON(w, http.StatusOK, categoryView(cat, rec))
	}
}

func categoryView(cat *domain.Category, rec *domain.ProgressionRecord) CategoryView {
	view := CategoryView{
		ID:          cat.ID,
		Title:       cat.Title,
		Description: cat.Description,
		Unlocked:    rec.HasUnlockedCategory(cat.ID),
		Challenges:  make([]ChallengeView, 0, len(cat.Challenges)),
	}
	for i := range cat.Challenges {
		view.Challenges = append(view.Challenges, challengeView(&cat.Challenges[i], rec))
	}
	return view
}

func challengeView(ch *domain.Challenge, rec *domain.ProgressionRecord) ChallengeView {
	view := ChallengeView{
		ID:          ch.ID,
		CategoryID:  ch.CategoryID,
		Title:       ch.Title,
		Description: ch.Description,
		Difficulty:  ch.Difficulty,
		Points:      ch.Points,
		State:       rec.ChallengeStateOf(ch.ID),
		Hints:       make([]HintView, 0, len(ch.Hints)),
	}
	for _, hint := range ch.Hints {
		hv := HintView{ID: hint.ID, Cost: hint.Cost}
		if rec.HasUsedHint(ch.ID, hint.ID) {
			hv.Revealed = true
			hv.Text = hint.Text
		}
		view.Hints = append(view.Hints, hv)
	}
	return view
}
