package round

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGates(t *testing.T) {
	s := New()
	assert.Equal(t, SignalRegionSelectionRequired, s.Signal())
	assert.ErrorIs(t, s.CanStock(), ErrRegionSelectionRequired)
	assert.ErrorIs(t, s.CanPlayEvents(), ErrRegionSelectionRequired)

	require.NoError(t, s.SelectRegion("住宅區", "中正里", 1.0))
	assert.Equal(t, SignalStockingRequired, s.Signal())
	assert.ErrorIs(t, s.CanPlayEvents(), ErrStockingRequired)
	assert.ErrorIs(t, s.SelectRegion("學區", "大學城", 0.9), ErrRegionAlreadySelected)

	require.NoError(t, s.MarkStocked())
	assert.Equal(t, SignalEventInProgress, s.Signal())
	assert.ErrorIs(t, s.MarkStocked(), ErrAlreadyStocked)
	assert.NoError(t, s.CanPlayEvents())
}

func TestCompleteEvent_Threshold(t *testing.T) {
	s := New()
	require.NoError(t, s.SelectRegion("住宅區", "中正里", 1.0))
	require.NoError(t, s.MarkStocked())

	for i := 1; i < 3; i++ {
		done, err := s.CompleteEvent(3)
		require.NoError(t, err)
		assert.False(t, done)
	}
	done, err := s.CompleteEvent(3)
	require.NoError(t, err)
	assert.True(t, done)

	done, err = s.CompleteEvent(3)
	assert.ErrorIs(t, err, ErrRoundComplete)
	assert.True(t, done)
	assert.Equal(t, 3, s.EventsCompleted)
}

func TestAdvance_ResetsRoundScope(t *testing.T) {
	s := New()
	require.NoError(t, s.SelectRegion("住宅區", "中正里", 1.0))
	require.NoError(t, s.MarkStocked())
	_, _ = s.CompleteEvent(1)

	s.Advance()
	assert.Equal(t, 2, s.CurrentRound)
	assert.Equal(t, 0, s.EventsCompleted)
	assert.False(t, s.HasStocked)
	assert.False(t, s.HasRegion())
	assert.Equal(t, SignalRoundComplete, s.Signal())

	s.AcknowledgeReport()
	assert.Equal(t, SignalRegionSelectionRequired, s.Signal())
}

func TestSelectRegion_ClearsPendingReport(t *testing.T) {
	s := State{CurrentRound: 2, ReportPending: true}
	require.NoError(t, s.SelectRegion("學區", "大學城", 0.9))
	assert.False(t, s.ReportPending)
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name    string
		in      State
		want    State
		changed bool
	}{
		{"valid", State{CurrentRound: 3, RegionType: "a", District: "b", HasStocked: true, EventsCompleted: 2},
			State{CurrentRound: 3, RegionType: "a", District: "b", HasStocked: true, EventsCompleted: 2}, false},
		{"round below one", State{CurrentRound: 0}, State{CurrentRound: 1}, true},
		{"events above threshold", State{CurrentRound: 1, RegionType: "a", District: "b", HasStocked: true, EventsCompleted: 9},
			State{CurrentRound: 1, RegionType: "a", District: "b", HasStocked: true}, true},
		{"stocked without region", State{CurrentRound: 1, HasStocked: true, EventsCompleted: 2}, State{CurrentRound: 1}, true},
		{"events without stock", State{CurrentRound: 1, RegionType: "a", District: "b", EventsCompleted: 2},
			State{CurrentRound: 1, RegionType: "a", District: "b"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := tt.in
			changed := s.Normalize(7)
			assert.Equal(t, tt.changed, changed)
			assert.Equal(t, tt.want, s)
		})
	}
}
