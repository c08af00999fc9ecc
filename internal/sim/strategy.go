// Package sim plays unattended rounds against the table state machine by
// synthesizing the same button taps a human would make, and aggregates the
// outcomes into per-round statistics.
package sim

import (
	"github.com/cardtable/blackjack/internal/deck"
	"github.com/cardtable/blackjack/internal/game"
)

// Decision is a playing-menu choice. Its value doubles as the index of the
// corresponding button in the 2x2 grid.
type Decision int

const (
	Hit Decision = iota
	Stand
	Split
	DoubleDown
)

// String returns the decision name
func (d Decision) String() string {
	switch d {
	case Hit:
		return "hit"
	case Stand:
		return "stand"
	case Split:
		return "split"
	case DoubleDown:
		return "double down"
	default:
		return "?"
	}
}

// Strategy decides what the simulated player does at each prompt.
type Strategy interface {
	// Bet returns the wager for the next round. Zero means leave the table.
	Bet(bank, minimum, increment int) int
	// TakeInsurance is asked when the dealer shows an ace.
	TakeInsurance(hand game.Hand, bank int) bool
	// Play picks an action for the active hand. canSplit and canDouble
	// already account for bankroll, so a true value is actionable.
	Play(hand game.Hand, upCard deck.Card, canSplit, canDouble bool) Decision
}

// BasicStrategy is the standard no-count playing chart: split aces and
// eights, double hard ten and eleven, stand against weak dealer up-cards.
// It always bets the table minimum and never buys insurance.
type BasicStrategy struct{}

func (BasicStrategy) Bet(bank, minimum, increment int) int {
	if bank < minimum {
		return 0
	}
	return minimum
}

func (BasicStrategy) TakeInsurance(hand game.Hand, bank int) bool { return false }

func (BasicStrategy) Play(hand game.Hand, upCard deck.Card, canSplit, canDouble bool) Decision {
	up := upCardValue(upCard)

	if canSplit {
		rank := hand.Cards()[0].Rank
		if rank == deck.Ace || rank == deck.Eight {
			return Split
		}
	}

	points := hand.Points()
	hard := points[0]
	soft := hand.BestTotal() != hard

	if canDouble && !soft {
		if hard == 11 || (hard == 10 && up <= 9) {
			return DoubleDown
		}
	}

	if soft {
		best := hand.BestTotal()
		switch {
		case best >= 19:
			return Stand
		case best == 18 && (up == 2 || up == 7 || up == 8):
			return Stand
		default:
			return Hit
		}
	}

	switch {
	case hard >= 17:
		return Stand
	case hard >= 13 && up <= 6:
		return Stand
	case hard == 12 && up >= 4 && up <= 6:
		return Stand
	default:
		return Hit
	}
}

// upCardValue scores the dealer's up-card for chart lookups, with the ace
// counted high.
func upCardValue(c deck.Card) int {
	if c.IsAce() {
		return 11
	}
	return c.Rank.PointValue()
}
