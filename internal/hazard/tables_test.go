package hazard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTierFor(t *testing.T) {
	t.Run("every severity has a tier", func(t *testing.T) {
		for s := MinSeverity; s <= MaxSeverity; s++ {
			tier, ok := TierFor(s)
			require.True(t, ok, "severity %d", s)
			assert.NotEmpty(t, tier.Professions, "severity %d professions", s)
			assert.NotEmpty(t, tier.Equipment, "severity %d equipment", s)
			assert.NotEmpty(t, tier.Materials, "severity %d materials", s)
		}
	})

	t.Run("out of range severities have no tier", func(t *testing.T) {
		for _, s := range []int{0, 6, -1, 100} {
			_, ok := TierFor(s)
			assert.False(t, ok, "severity %d", s)
		}
	})

	t.Run("no duplicate professions within a tier", func(t *testing.T) {
		for s := MinSeverity; s <= MaxSeverity; s++ {
			tier, _ := TierFor(s)
			seen := map[string]bool{}
			for _, p := range tier.Professions {
				assert.False(t, seen[p], "severity %d lists %q twice", s, p)
				seen[p] = true
			}
		}
	})

	t.Run("every listed profession has a rate", func(t *testing.T) {
		for s := MinSeverity; s <= MaxSeverity; s++ {
			tier, _ := TierFor(s)
			for _, p := range tier.Professions {
				assert.Greater(t, RateFor(p), 0.0, "profession %q", p)
			}
		}
	})

	t.Run("returned slices are copies", func(t *testing.T) {
		tier, _ := TierFor(3)
		tier.Professions[0] = "mutated"
		fresh, _ := TierFor(3)
		assert.NotEqual(t, "mutated", fresh.Professions[0])
	})
}

func TestWeatherMultiplier(t *testing.T) {
	tests := []struct {
		condition string
		want      float64
	}{
		{"clear", 1.0},
		{"clouds", 1.1},
		{"mist", 1.2},
		{"drizzle", 1.3},
		{"rain", 1.5},
		{"snow", 1.6},
		{"thunderstorm", 1.8},
		{"Rain", 1.5},
		{"  THUNDERSTORM ", 1.8},
		{"volcanic winter", 1.0},
		{"", 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.condition, func(t *testing.T) {
			assert.Equal(t, tt.want, WeatherMultiplier(tt.condition))
		})
	}
}

func TestRateFor_Unknown(t *testing.T) {
	assert.Equal(t, 0.0, RateFor("Lion Tamer"))
}
