package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTiersForScore(t *testing.T) {
	tests := []struct {
		name  string
		score int
		want  []string
	}{
		{"below first threshold", 99, []string{}},
		{"exactly first threshold", 100, []string{"rookie"}},
		{"mid table", 600, []string{"rookie", "operator", "analyst"}},
		{"all tiers", 2500, []string{"rookie", "operator", "analyst", "specialist", "elite"}},
		{"zero", 0, []string{}},
		{"negative never happens but stays empty", -10, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TiersForScore(tt.score))
		})
	}
}

func TestTiersForScore_Monotonic(t *testing.T) {
	prev := 0
	for score := 0; score <= 2500; score += 50 {
		n := len(TiersForScore(score))
		assert.GreaterOrEqual(t, n, prev, "tier count must never shrink as score grows")
		prev = n
	}
}
