package sim

import (
	"fmt"
	"math"

	"github.com/cardtable/blackjack/internal/game"
)

// RoundResult is one settled round as seen by the runner: the net chip
// movement plus the detail needed for the breakdown counters.
type RoundResult struct {
	Net             int // bank delta across the round, stakes included
	Bet             int
	Payout          int
	Outcomes        []game.HandOutcome
	DealerBlackjack bool
	Insured         bool
}

// Statistics aggregates settled rounds. Workers each fill their own copy
// and Merge folds them together.
type Statistics struct {
	Rounds int
	Hands  int

	Wins       int
	Losses     int
	Pushes     int
	Blackjacks int

	NetChips int
	SumNet   float64
	SumNet2  float64 // sum of squares for variance

	DealerBlackjacks int
	InsuredRounds    int
}

// Add incorporates a settled round
func (s *Statistics) Add(result RoundResult) {
	s.Rounds++
	s.Hands += len(result.Outcomes)
	for _, outcome := range result.Outcomes {
		switch outcome.Result {
		case game.ResultWin:
			s.Wins++
		case game.ResultBlackjack:
			s.Blackjacks++
		case game.ResultPush:
			s.Pushes++
		case game.ResultLose:
			s.Losses++
		}
	}

	net := float64(result.Net)
	s.NetChips += result.Net
	s.SumNet += net
	s.SumNet2 += net * net

	if result.DealerBlackjack {
		s.DealerBlackjacks++
	}
	if result.Insured {
		s.InsuredRounds++
	}
}

// Merge folds another worker's statistics into this one
func (s *Statistics) Merge(other *Statistics) {
	s.Rounds += other.Rounds
	s.Hands += other.Hands
	s.Wins += other.Wins
	s.Losses += other.Losses
	s.Pushes += other.Pushes
	s.Blackjacks += other.Blackjacks
	s.NetChips += other.NetChips
	s.SumNet += other.SumNet
	s.SumNet2 += other.SumNet2
	s.DealerBlackjacks += other.DealerBlackjacks
	s.InsuredRounds += other.InsuredRounds
}

// Mean returns the average net chips per round
func (s *Statistics) Mean() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.SumNet / float64(s.Rounds)
}

// Variance returns the sample variance of per-round net chips
func (s *Statistics) Variance() float64 {
	if s.Rounds < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumNet2 - float64(s.Rounds)*mean*mean) / float64(s.Rounds-1)
}

// StdDev returns the sample standard deviation
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Rounds))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Summary renders a multi-line report of the aggregated results
func (s *Statistics) Summary() string {
	if s.Rounds == 0 {
		return "no rounds played"
	}
	lo, hi := s.ConfidenceInterval95()
	return fmt.Sprintf(
		"Rounds:       %d (%d hands)\n"+
			"Net chips:    %+d (%.2f/round, 95%% CI [%.2f, %.2f])\n"+
			"Hands:        %d won, %d lost, %d pushed, %d blackjacks\n"+
			"Dealer BJ:    %d rounds (%d insured)",
		s.Rounds, s.Hands,
		s.NetChips, s.Mean(), lo, hi,
		s.Wins, s.Losses, s.Pushes, s.Blackjacks,
		s.DealerBlackjacks, s.InsuredRounds,
	)
}
