package progression

import (
	"github.com/cyberquest/backend/internal/repository"
)

// Repository is a local interface for progression persistence operations.
// It embeds repository.Progression so tests in this package can supply fakes.
type Repository interface {
	repository.Progression
}
