package opponent

import (
	"fmt"

	"github.com/andrescamacho/bakerysim-go/internal/domain/resources"
)

// Template is a fixed roster entry
type Template struct {
	ID          string
	Name        string
	Personality Personality
	SkillLevel  float64
}

// Templates is the roster opponents are created from, in order
var Templates = []Template{
	{ID: "ai-golden-crust", Name: "Golden Crust", Personality: PersonalityAggressive, SkillLevel: 0.8},
	{ID: "ai-morning-loaf", Name: "Morning Loaf", Personality: PersonalityBalanced, SkillLevel: 0.6},
	{ID: "ai-grandmas-oven", Name: "Grandma's Oven", Personality: PersonalityConservative, SkillLevel: 0.7},
	{ID: "ai-sugar-rush", Name: "Sugar Rush", Personality: PersonalityAggressive, SkillLevel: 0.4},
	{ID: "ai-daily-bread", Name: "Daily Bread", Personality: PersonalityBalanced, SkillLevel: 0.9},
}

// NewRoster creates the first count opponents from Templates
func NewRoster(count int, start resources.State) ([]*Opponent, error) {
	if count < 0 || count > len(Templates) {
		return nil, fmt.Errorf("opponent count must be within [0, %d], got %d", len(Templates), count)
	}
	roster := make([]*Opponent, 0, count)
	for _, t := range Templates[:count] {
		o, err := New(t.ID, t.Name, t.Personality, t.SkillLevel, start)
		if err != nil {
			return nil, fmt.Errorf("failed to create opponent %s: %w", t.ID, err)
		}
		roster = append(roster, o)
	}
	return roster, nil
}
