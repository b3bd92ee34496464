package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"

	"github.com/cyberquest/backend/internal/domain"
)

// Loader reads category content files from a directory.
// One JSON file per category; non-JSON entries are ignored.
type Loader struct {
	dir      string
	validate *validator.Validate
}

// NewLoader creates a new content loader
func NewLoader(dir string) *Loader {
	return &Loader{
		dir:      dir,
		validate: validator.New(),
	}
}

// Load reads, validates, and assembles the catalog.
func (l *Loader) Load() (*Catalog, error) {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog directory: %w", err)
	}

	var categories []domain.Category
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}

		path := filepath.Join(l.dir, entry.Name())
		cat, err := l.parseFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to parse catalog file %s: %w", entry.Name(), err)
		}

		categories = append(categories, *cat)
	}

	return New(categories)
}

func (l *Loader) parseFile(path string) (*domain.Category, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cat domain.Category
	if err := json.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	if err := l.validate.Struct(cat); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidCatalog, err)
	}

	return &cat, nil
}
