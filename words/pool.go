package words

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrEmptyPool is returned when a word set has no usable words
var ErrEmptyPool = errors.New("words: empty pool")

const (
	SetStandard = "standard"
	SetSilly    = "silly"
)

// Pool hands out tiered words without repeating until the eligible pool is spent
// Tier i (1-based) is tiers[i-1]; difficulty d draws from the union of tiers 1..d
type Pool struct {
	tiers [][]string
	rng   *rand.Rand

	used map[string]bool
	last string
}

// NewPool creates a pool over the given tiers, words are lowercased and deduplicated
func NewPool(tiers [][]string, rng *rand.Rand) (*Pool, error) {
	seen := make(map[string]bool)
	clean := make([][]string, 0, len(tiers))
	total := 0

	for _, tier := range tiers {
		out := make([]string, 0, len(tier))
		for _, w := range tier {
			w = strings.ToLower(strings.TrimSpace(w))
			if w == "" || seen[w] {
				continue
			}
			seen[w] = true
			out = append(out, w)
		}
		clean = append(clean, out)
		total += len(out)
	}
	if total == 0 {
		return nil, ErrEmptyPool
	}

	return &Pool{
		tiers: clean,
		rng:   rng,
		used:  make(map[string]bool),
	}, nil
}

// Tiers returns the number of tiers in the pool
func (p *Pool) Tiers() int {
	return len(p.tiers)
}

// Eligible returns the union of tiers 1..difficulty, clamped to the available tiers
func (p *Pool) Eligible(difficulty int) []string {
	difficulty = max(1, min(difficulty, len(p.tiers)))
	var out []string
	for _, tier := range p.tiers[:difficulty] {
		out = append(out, tier...)
	}
	return out
}

// Next returns a word for the given difficulty
// When every eligible word has been used the used set is cleared, the previous
// word is still excluded so two calls never repeat unless the pool holds one word
func (p *Pool) Next(difficulty int) string {
	eligible := p.Eligible(difficulty)
	if len(eligible) == 0 {
		// Lower tiers can be empty after dedup, fall back to everything
		eligible = p.Eligible(len(p.tiers))
	}
	if len(eligible) == 1 {
		p.last = eligible[0]
		return p.last
	}

	available := p.available(eligible)
	if len(available) == 0 {
		for _, w := range eligible {
			delete(p.used, w)
		}
		available = p.available(eligible)
	}

	word := available[p.rng.Intn(len(available))]
	p.used[word] = true
	p.last = word
	return word
}

func (p *Pool) available(eligible []string) []string {
	out := make([]string, 0, len(eligible))
	for _, w := range eligible {
		if !p.used[w] && w != p.last {
			out = append(out, w)
		}
	}
	return out
}

// Reset clears the used set and the last-word memory
func (p *Pool) Reset() {
	p.used = make(map[string]bool)
	p.last = ""
}

// DifficultyForRound interpolates a tier linearly over the session
// round 0 maps to minTier and round totalRounds-1 to maxTier
func DifficultyForRound(round, minTier, maxTier, totalRounds int) int {
	if totalRounds <= 1 {
		return minTier
	}
	progress := float64(round) / float64(totalRounds-1)
	progress = max(0, min(1, progress))
	return int(math.Round(float64(minTier) + float64(maxTier-minTier)*progress))
}

// LoadTiers parses a YAML document of word sets and returns one set ordered by tier
// The document maps a set name to a map of tier number to word list
func LoadTiers(data []byte, set string) ([][]string, error) {
	var doc map[string]map[int][]string
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse word sets: %w", err)
	}

	tiers, ok := doc[set]
	if !ok {
		return nil, fmt.Errorf("word set %q not found", set)
	}

	keys := make([]int, 0, len(tiers))
	for k := range tiers {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	out := make([][]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, tiers[k])
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("word set %q: %w", set, ErrEmptyPool)
	}
	return out, nil
}
