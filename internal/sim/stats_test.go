package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cardtable/blackjack/internal/game"
)

func TestStatisticsAdd(t *testing.T) {
	s := &Statistics{}
	s.Add(RoundResult{
		Net: 10,
		Outcomes: []game.HandOutcome{
			{Result: game.ResultWin},
			{Result: game.ResultLose},
		},
	})
	s.Add(RoundResult{
		Net:             -10,
		Outcomes:        []game.HandOutcome{{Result: game.ResultLose}},
		DealerBlackjack: true,
		Insured:         true,
	})
	s.Add(RoundResult{
		Net:      12,
		Outcomes: []game.HandOutcome{{Result: game.ResultBlackjack}},
	})

	assert.Equal(t, 3, s.Rounds)
	assert.Equal(t, 4, s.Hands)
	assert.Equal(t, 1, s.Wins)
	assert.Equal(t, 2, s.Losses)
	assert.Equal(t, 1, s.Blackjacks)
	assert.Equal(t, 12, s.NetChips)
	assert.Equal(t, 1, s.DealerBlackjacks)
	assert.Equal(t, 1, s.InsuredRounds)
	assert.InDelta(t, 4.0, s.Mean(), 1e-9)
}

func TestStatisticsVariance(t *testing.T) {
	s := &Statistics{}
	for _, net := range []int{10, -10, 10, -10} {
		s.Add(RoundResult{Net: net})
	}
	assert.InDelta(t, 0.0, s.Mean(), 1e-9)
	// Sample variance of {10,-10,10,-10} is 400/3.
	assert.InDelta(t, 400.0/3.0, s.Variance(), 1e-9)
	assert.True(t, s.StdError() > 0)

	lo, hi := s.ConfidenceInterval95()
	assert.Less(t, lo, hi)
}

func TestStatisticsMerge(t *testing.T) {
	a := &Statistics{}
	a.Add(RoundResult{Net: 10, Outcomes: []game.HandOutcome{{Result: game.ResultWin}}})
	b := &Statistics{}
	b.Add(RoundResult{Net: -10, Outcomes: []game.HandOutcome{{Result: game.ResultLose}}})
	b.Add(RoundResult{Net: 0, Outcomes: []game.HandOutcome{{Result: game.ResultPush}}})

	a.Merge(b)
	assert.Equal(t, 3, a.Rounds)
	assert.Equal(t, 1, a.Wins)
	assert.Equal(t, 1, a.Losses)
	assert.Equal(t, 1, a.Pushes)
	assert.Equal(t, 0, a.NetChips)
}

func TestStatisticsEmpty(t *testing.T) {
	s := &Statistics{}
	assert.Zero(t, s.Mean())
	assert.Zero(t, s.Variance())
	assert.Zero(t, s.StdError())
	assert.Equal(t, "no rounds played", s.Summary())
}

func TestSummaryMentionsRoundsAndNet(t *testing.T) {
	s := &Statistics{}
	s.Add(RoundResult{Net: 10, Outcomes: []game.HandOutcome{{Result: game.ResultWin}}})
	out := s.Summary()
	assert.Contains(t, out, "Rounds:")
	assert.Contains(t, out, "+10")
}
