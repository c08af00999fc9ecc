package sim

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/cardtable/blackjack/internal/game"
	"github.com/cardtable/blackjack/internal/input"
)

// ticksPerRound bounds how long one round may take before the runner
// declares the simulation stalled. A round is a few hundred ticks at most
// with the default deal and draw intervals.
const ticksPerRound = 10000

// Config holds configuration for running simulations
type Config struct {
	Rules    game.Rules
	Strategy Strategy
	Rounds   int
	Seed     int64
	Bank     int
	Logger   *log.Logger

	// Interval paces the loop on Clock when non-zero. The default is to
	// tick as fast as the scheduler allows.
	Interval time.Duration
	Clock    quartz.Clock
}

// Runner plays rounds against the table by feeding it synthesized taps,
// one per tick, the way the interactive shell would.
type Runner struct {
	config Config
}

// New creates a runner with the given configuration
func New(config Config) *Runner {
	if config.Strategy == nil {
		config.Strategy = BasicStrategy{}
	}
	if config.Clock == nil {
		config.Clock = quartz.NewReal()
	}
	if config.Logger == nil {
		config.Logger = log.Default()
	}
	return &Runner{config: config}
}

// collector turns settlement events into round results. It tracks the bank
// across settlements so each result carries its true net movement.
type collector struct {
	stats    *Statistics
	prevBank int
}

func (c *collector) OnEvent(event game.GameEvent) {
	settled, ok := event.(game.RoundSettledEvent)
	if !ok {
		return
	}
	c.stats.Add(RoundResult{
		Net:             settled.Bank - c.prevBank,
		Bet:             settled.Bet,
		Payout:          settled.Payout,
		Outcomes:        settled.Outcomes,
		DealerBlackjack: settled.DealerBlackjack,
		Insured:         settled.Insured,
	})
	c.prevBank = settled.Bank
}

// Run plays rounds until the configured count is reached, the strategy
// stops betting, or the bank drops below the table minimum. It returns the
// aggregated statistics and the final bankroll.
func (r *Runner) Run(ctx context.Context) (*Statistics, int, error) {
	cfg := r.config
	round := game.NewRound(cfg.Rules, cfg.Seed, cfg.Bank, cfg.Logger)

	stats := &Statistics{}
	round.Events().Subscribe(&collector{stats: stats, prevBank: cfg.Bank})

	var ticker *quartz.Ticker
	if cfg.Interval > 0 {
		ticker = cfg.Clock.NewTicker(cfg.Interval)
		defer ticker.Stop()
	}

	maxTicks := (cfg.Rounds + 1) * ticksPerRound
	for tick := 0; ; tick++ {
		if tick > maxTicks {
			return nil, 0, fmt.Errorf("simulation stalled in %s phase after %d ticks", round.Phase(), tick)
		}
		if ticker != nil {
			select {
			case <-ctx.Done():
				return nil, 0, ctx.Err()
			case <-ticker.C:
			}
		} else if err := ctx.Err(); err != nil {
			return nil, 0, err
		}

		bank, done := round.Update(r.step(round, stats))
		if done {
			return stats, bank, nil
		}
	}
}

// step decides this tick's input from the observable round state.
func (r *Runner) step(round *game.Round, stats *Statistics) input.Snapshot {
	cfg := r.config
	switch round.Phase() {
	case game.PhaseBetting:
		if stats.Rounds >= cfg.Rounds || round.Bank() < cfg.Rules.MinimumBet {
			return input.Tap(input.Cancel)
		}
		desired := cfg.Strategy.Bet(round.Bank(), cfg.Rules.MinimumBet, cfg.Rules.BetIncrement)
		if desired <= 0 {
			return input.Tap(input.Cancel)
		}
		switch {
		case round.Bet() < desired && round.Bet() < round.Bank():
			return input.Tap(input.Up)
		case round.Bet() > desired && round.Bet() > cfg.Rules.MinimumBet:
			return input.Tap(input.Down)
		default:
			return input.Tap(input.Confirm)
		}

	case game.PhaseInsurance:
		hand, _ := round.ActiveHand()
		if cfg.Strategy.TakeInsurance(hand, round.Bank()) {
			return input.Tap(input.Confirm)
		}
		return input.Tap(input.Cancel)

	case game.PhasePlaying:
		hand, ok := round.ActiveHand()
		if !ok {
			return input.Snapshot{}
		}
		canSplit := hand.CanSplit() && round.Bank() >= round.Bet()
		canDouble := hand.CanDoubleDown() && round.Bank() >= round.Bet()
		upCard, _ := round.DealerUpCard()
		decision := cfg.Strategy.Play(hand, upCard, canSplit, canDouble)
		// An ineligible choice would press a disabled button forever.
		if (decision == Split && !canSplit) || (decision == DoubleDown && !canDouble) {
			decision = Hit
		}
		return moveToward(round.ButtonIndex(), int(decision))

	case game.PhaseEnd:
		if stats.Rounds >= cfg.Rounds {
			return input.Tap(input.Cancel)
		}
		return input.Tap(input.Confirm)

	default:
		// Dealing and dealer resolution run on their own timers.
		return input.Snapshot{}
	}
}

// moveToward emits one tap stepping the 2x2 menu cursor toward the target
// button, or confirm once it is there. Column first, then row.
func moveToward(current, target int) input.Snapshot {
	switch {
	case current%2 == 0 && target%2 == 1:
		return input.Tap(input.Right)
	case current%2 == 1 && target%2 == 0:
		return input.Tap(input.Left)
	case current/2 == 0 && target/2 == 1:
		return input.Tap(input.Down)
	case current/2 == 1 && target/2 == 0:
		return input.Tap(input.Up)
	default:
		return input.Tap(input.Confirm)
	}
}
