package opponent

import (
	"fmt"
	"strings"

	"github.com/andrescamacho/bakerysim-go/internal/domain/region"
)

// Personality biases an opponent's region choice, stock size and success rate
type Personality string

const (
	PersonalityAggressive   Personality = "aggressive"
	PersonalityBalanced     Personality = "balanced"
	PersonalityConservative Personality = "conservative"
)

// BaseStockQuantity is the per-product quantity every opponent orders before its bonus
const BaseStockQuantity = 1400

// skillWeight scales skill level into success probability
const skillWeight = 0.4

// ParsePersonality converts a string to a Personality
func ParsePersonality(s string) (Personality, error) {
	p := Personality(strings.ToLower(strings.TrimSpace(s)))
	if !p.IsValid() {
		return "", fmt.Errorf("invalid personality: %s", s)
	}
	return p, nil
}

func (p Personality) IsValid() bool {
	switch p {
	case PersonalityAggressive, PersonalityBalanced, PersonalityConservative:
		return true
	}
	return false
}

func (p Personality) String() string {
	return string(p)
}

// MaxStockBonus is the upper bound of the random extra units per product
func (p Personality) MaxStockBonus() int {
	switch p {
	case PersonalityAggressive:
		return 400
	case PersonalityBalanced:
		return 300
	default:
		return 200
	}
}

// SuccessProbability is the chance of picking the correct option
func (p Personality) SuccessProbability(skill float64) float64 {
	base := 0.3
	switch p {
	case PersonalityAggressive:
		base = 0.5
	case PersonalityBalanced:
		base = 0.4
	}
	return base + skillWeight*clampSkill(skill)
}

// PreferredRegion picks from regions sorted by ascending rent:
// aggressive takes the most expensive, conservative the cheapest, balanced the middle.
func (p Personality) PreferredRegion(byRent []region.Region) (region.Region, bool) {
	if len(byRent) == 0 {
		return region.Region{}, false
	}
	switch p {
	case PersonalityAggressive:
		return byRent[len(byRent)-1], true
	case PersonalityConservative:
		return byRent[0], true
	default:
		return byRent[len(byRent)/2], true
	}
}

func clampSkill(skill float64) float64 {
	if skill < 0 {
		return 0
	}
	if skill > 1 {
		return 1
	}
	return skill
}
