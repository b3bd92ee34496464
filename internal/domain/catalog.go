package domain

// Category groups an ordered sequence of challenges. Categories are immutable
// content; the per-user lock state lives on the ProgressionRecord, the Locked
// flag here is only the default for new users.
type Category struct {
	ID          string      `json:"id" validate:"required"`
	Title       string      `json:"title" validate:"required"`
	Description string      `json:"description"`
	Locked      bool        `json:"locked"`
	SortOrder   int         `json:"sort_order"`
	Challenges  []Challenge `json:"challenges" validate:"required,min=1,dive"`
}

// Challenge represents one puzzle. Challenges are never created or destroyed
// at runtime, only read.
type Challenge struct {
	ID          string `json:"id" validate:"required"`
	CategoryID  string `json:"category_id"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Difficulty  int    `json:"difficulty" validate:"min=1,max=5"`
	Points      int    `json:"points" validate:"gt=0"`
	Flag        string `json:"flag" validate:"required"`
	Locked      bool   `json:"locked"`
	Hints       []Hint `json:"hints" validate:"dive"`
}

// Hint is a purchasable clue within a challenge. The hint belongs to its
// challenge structurally; the per-user "revealed" state lives on the
// ProgressionRecord, never on the hint itself.
type Hint struct {
	ID   string `json:"id" validate:"required"`
	Text string `json:"text" validate:"required"`
	Cost int    `json:"cost" validate:"min=0"`
}

// Hint lookup by ID within a challenge.
func (c *Challenge) Hint(hintID string) *Hint {
	for i := range c.Hints {
		if c.Hints[i].ID == hintID {
			return &c.Hints[i]
		}
	}
	return nil
}
