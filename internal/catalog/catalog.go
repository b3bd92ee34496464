package catalog

import (
	"fmt"
	"sort"

	"github.com/cyberquest/backend/internal/domain"
)

// Catalog is the immutable content definition: categories, challenges, hints.
// Built once at startup and read-only afterwards, so lookups need no locking.
type Catalog struct {
	categories   []domain.Category
	categoryByID map[string]*domain.Category
	challenges   map[string]*domain.Challenge
	successors   map[string]string // challengeID -> next challengeID in category order
}

// New builds a catalog from category content and verifies its invariants.
// A malformed catalog is an integration error and fails loudly.
func New(categories []domain.Category) (*Catalog, error) {
	if len(categories) == 0 {
		return nil, fmt.Errorf("%w: no categories", domain.ErrInvalidCatalog)
	}

	sorted := make([]domain.Category, len(categories))
	copy(sorted, categories)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].SortOrder < sorted[j].SortOrder
	})

	c := &Catalog{
		categories:   sorted,
		categoryByID: make(map[string]*domain.Category),
		challenges:   make(map[string]*domain.Challenge),
		successors:   make(map[string]string),
	}

	for i := range c.categories {
		cat := &c.categories[i]
		if _, dup := c.categoryByID[cat.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate category id %q", domain.ErrInvalidCatalog, cat.ID)
		}
		c.categoryByID[cat.ID] = cat

		for j := range cat.Challenges {
			ch := &cat.Challenges[j]
			ch.CategoryID = cat.ID
			if _, dup := c.challenges[ch.ID]; dup {
				return nil, fmt.Errorf("%w: duplicate challenge id %q", domain.ErrInvalidCatalog, ch.ID)
			}
			c.challenges[ch.ID] = ch

			seen := make(map[string]bool, len(ch.Hints))
			for _, h := range ch.Hints {
				if seen[h.ID] {
					return nil, fmt.Errorf("%w: duplicate hint id %q in challenge %q", domain.ErrInvalidCatalog, h.ID, ch.ID)
				}
				seen[h.ID] = true
			}

			if j+1 < len(cat.Challenges) {
				c.successors[ch.ID] = cat.Challenges[j+1].ID
			}
		}
	}

	return c, nil
}

// Categories returns the ordered category list.
func (c *Catalog) Categories() []domain.Category {
	return c.categories
}

// Category returns a category by id, or nil.
func (c *Catalog) Category(id string) *domain.Category {
	return c.categoryByID[id]
}

// Challenge returns a challenge by id, or nil.
func (c *Catalog) Challenge(id string) *domain.Challenge {
	return c.challenges[id]
}

// Hint returns a hint by challenge and hint id, or nil.
func (c *Catalog) Hint(challengeID, hintID string) *domain.Hint {
	ch := c.Challenge(challengeID)
	if ch == nil {
		return nil
	}
	return ch.Hint(hintID)
}

// Successor returns the next challenge in the owning category's order.
// Empty string when the challenge is the last of its category.
func (c *Catalog) Successor(challengeID string) string {
	return c.successors[challengeID]
}

// DefaultRecord builds the starting progression record: the starting score
// plus every category and challenge the content marks unlocked by default.
func (c *Catalog) DefaultRecord() *domain.ProgressionRecord {
	rec := domain.NewProgressionRecord()
	for _, cat := range c.categories {
		if cat.Locked {
			continue
		}
		rec.UnlockCategory(cat.ID)
		for _, ch := range cat.Challenges {
			if !ch.Locked {
				rec.UnlockChallenge(ch.ID)
			}
		}
	}
	return rec
}
