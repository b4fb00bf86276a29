package words

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/spell-smash/asset"
)

func newPool(t *testing.T, tiers [][]string) *Pool {
	t.Helper()
	p, err := NewPool(tiers, rand.New(rand.NewSource(7)))
	require.NoError(t, err)
	return p
}

func TestNextUsesEveryWordBeforeRepeating(t *testing.T) {
	p := newPool(t, [][]string{{"cat", "dog", "sun"}, {"fish", "frog"}})

	seen := make(map[string]bool)
	for i := 0; i < 3; i++ {
		w := p.Next(1)
		assert.False(t, seen[w], "word %q repeated before pool exhausted", w)
		seen[w] = true
	}
	assert.Len(t, seen, 3)
	assert.NotContains(t, seen, "fish", "difficulty 1 must not draw tier 2")

	// Exhausted: the pool refills and earlier words resurface
	resurfaced := p.Next(1)
	assert.Contains(t, []string{"cat", "dog", "sun"}, resurfaced)
}

func TestNextNeverRepeatsImmediately(t *testing.T) {
	p := newPool(t, [][]string{{"cat", "dog"}})

	prev := p.Next(1)
	for i := 0; i < 50; i++ {
		w := p.Next(1)
		require.NotEqual(t, prev, w)
		prev = w
	}
}

func TestNextSingleWordPool(t *testing.T) {
	p := newPool(t, [][]string{{"cat"}})
	assert.Equal(t, "cat", p.Next(1))
	assert.Equal(t, "cat", p.Next(1))
}

func TestNextUnionsLowerTiers(t *testing.T) {
	p := newPool(t, [][]string{{"cat"}, {"fish"}, {"apple"}})

	seen := make(map[string]bool)
	for i := 0; i < 30; i++ {
		seen[p.Next(2)] = true
	}
	assert.Equal(t, map[string]bool{"cat": true, "fish": true}, seen)
}

func TestNextClampsDifficulty(t *testing.T) {
	p := newPool(t, [][]string{{"cat", "dog"}})
	assert.NotPanics(t, func() {
		p.Next(0)
		p.Next(99)
	})
}

func TestNewPoolRejectsEmpty(t *testing.T) {
	_, err := NewPool([][]string{{}, {" "}}, rand.New(rand.NewSource(1)))
	assert.ErrorIs(t, err, ErrEmptyPool)
}

func TestNewPoolNormalizes(t *testing.T) {
	p := newPool(t, [][]string{{"Cat", "cat", " CAT "}})
	assert.Equal(t, []string{"cat"}, p.Eligible(1))
}

func TestReset(t *testing.T) {
	p := newPool(t, [][]string{{"cat", "dog", "sun"}})
	p.Next(1)
	p.Next(1)
	p.Reset()
	assert.Empty(t, p.used)
	assert.Empty(t, p.last)
}

func TestDifficultyForRound(t *testing.T) {
	tests := []struct {
		name                     string
		round, minT, maxT, total int
		want                     int
	}{
		{"first round", 0, 1, 5, 8, 1},
		{"last round", 7, 1, 5, 8, 5},
		{"midpoint rounds", 3, 1, 5, 8, 3},
		{"flat range", 5, 2, 2, 8, 2},
		{"single round", 0, 3, 5, 1, 3},
		{"zero rounds", 4, 2, 5, 0, 2},
		{"past end clamps", 20, 1, 5, 8, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DifficultyForRound(tt.round, tt.minT, tt.maxT, tt.total))
		})
	}
}

func TestLoadTiersEmbedded(t *testing.T) {
	for _, set := range []string{SetStandard, SetSilly} {
		tiers, err := LoadTiers(asset.Words, set)
		require.NoError(t, err, set)
		assert.Len(t, tiers, 5, set)
		for i, tier := range tiers {
			assert.NotEmpty(t, tier, "%s tier %d", set, i+1)
		}
	}
	assert.Contains(t, mustTiers(t)[0], "cat")
}

func mustTiers(t *testing.T) [][]string {
	tiers, err := LoadTiers(asset.Words, SetStandard)
	require.NoError(t, err)
	return tiers
}

func TestLoadTiersErrors(t *testing.T) {
	_, err := LoadTiers(asset.Words, "missing")
	assert.Error(t, err)

	_, err = LoadTiers([]byte("standard: [unterminated"), SetStandard)
	assert.Error(t, err)
}
