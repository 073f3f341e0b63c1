package leaderboard_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/andrescamacho/bakerysim-go/internal/domain/leaderboard"
	"github.com/andrescamacho/bakerysim-go/internal/domain/resources"
	"github.com/andrescamacho/bakerysim-go/internal/domain/shared"
)

func entry(id, name string, currency, reputation, satisfaction int) leaderboard.Entry {
	return leaderboard.Entry{
		ActorID:   shared.MustNewActorID(id),
		Name:      name,
		Resources: resources.State{Currency: currency, Reputation: reputation, Satisfaction: satisfaction},
	}
}

func TestRank_TieBreakers(t *testing.T) {
	entries := []leaderboard.Entry{
		entry("a", "Alpha", 100, 10, 10),
		entry("b", "Bravo", 200, 0, 0),
		entry("c", "Charlie", 100, 20, 0),
		entry("d", "Delta", 100, 10, 30),
		entry("e", "Echo", 100, 10, 10),
	}

	ranked := leaderboard.Rank(entries)

	var order []string
	for _, e := range ranked {
		order = append(order, e.ActorID.String())
	}
	assert.Equal(t, []string{"b", "c", "d", "a", "e"}, order)
	for i, e := range ranked {
		assert.Equal(t, i+1, e.Rank)
	}

	assert.Equal(t, "a", entries[0].ActorID.String(), "input is not reordered")
	assert.Equal(t, 0, entries[0].Rank)
}

func TestPositionOf(t *testing.T) {
	ranked := leaderboard.Rank([]leaderboard.Entry{
		entry("player", "You", 50, 0, 0),
		entry("ai-1", "Rival", 80, 0, 0),
	})

	assert.Equal(t, 2, leaderboard.PositionOf(ranked, shared.Human()))
	assert.Equal(t, 1, leaderboard.PositionOf(ranked, shared.MustNewActorID("ai-1")))
	assert.Equal(t, 0, leaderboard.PositionOf(ranked, shared.MustNewActorID("ghost")))
	assert.True(t, ranked[1].IsHuman())
	assert.False(t, ranked[0].IsHuman())
}

func TestRank_Empty(t *testing.T) {
	assert.Empty(t, leaderboard.Rank(nil))
}
