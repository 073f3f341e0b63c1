package leaderboard

import (
	"sort"

	"github.com/andrescamacho/bakerysim-go/internal/domain/resources"
	"github.com/andrescamacho/bakerysim-go/internal/domain/shared"
)

// Entry is a read-only snapshot of one actor's standing
type Entry struct {
	Rank        int
	ActorID     shared.ActorID
	Name        string
	Personality string
	Resources   resources.State
}

// IsHuman reports whether the entry is the player
func (e Entry) IsHuman() bool {
	return e.ActorID.IsHuman()
}

// Rank orders entries by currency, then reputation, then satisfaction, then name.
// The input slice is not modified.
func Rank(entries []Entry) []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Resources, out[j].Resources
		if a.Currency != b.Currency {
			return a.Currency > b.Currency
		}
		if a.Reputation != b.Reputation {
			return a.Reputation > b.Reputation
		}
		if a.Satisfaction != b.Satisfaction {
			return a.Satisfaction > b.Satisfaction
		}
		return out[i].Name < out[j].Name
	})

	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}

// PositionOf returns the 1-based rank of an actor, or 0 when absent
func PositionOf(ranked []Entry, actorID shared.ActorID) int {
	for _, e := range ranked {
		if e.ActorID.Equals(actorID) {
			return e.Rank
		}
	}
	return 0
}
