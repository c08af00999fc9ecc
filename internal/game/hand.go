package game

import (
	"strings"

	"github.com/cardtable/blackjack/internal/deck"
)

// Hand is an ordered set of cards held by the dealer or a player for one
// round. Order matters only for display (the dealer's first card stays
// face-down until showdown); scoring ignores it.
type Hand struct {
	cards []deck.Card
}

// NewHand creates a hand holding the given cards
func NewHand(cards ...deck.Card) Hand {
	h := Hand{cards: make([]deck.Card, 0, 4)}
	h.cards = append(h.cards, cards...)
	return h
}

// Add appends a card to the hand
func (h *Hand) Add(c deck.Card) {
	h.cards = append(h.cards, c)
}

// Cards returns the cards in deal order
func (h Hand) Cards() []deck.Card {
	return h.cards
}

// Len returns the number of cards held
func (h Hand) Len() int {
	return len(h.cards)
}

// Clone returns an independent copy of the hand. Phase transitions clone
// hands rather than sharing backing arrays across phase payloads.
func (h Hand) Clone() Hand {
	c := Hand{cards: make([]deck.Card, len(h.cards))}
	copy(c.cards, h.cards)
	return c
}

// String renders the hand as "A♠ K♥"
func (h Hand) String() string {
	parts := make([]string, len(h.cards))
	for i, c := range h.cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}

// Points returns every total obtainable by counting each ace as 1 or 11.
// The first element is always the all-aces-low total; for each ace the
// set is extended with +10 variants of the totals accumulated so far.
// Duplicates are not collapsed; only membership matters to callers.
func (h Hand) Points() []int {
	sum := 0
	for _, c := range h.cards {
		sum += c.Rank.PointValue()
	}

	pts := []int{sum}
	for _, c := range h.cards {
		if c.IsAce() {
			for _, p := range append([]int(nil), pts...) {
				pts = append(pts, p+10)
			}
		}
	}
	return pts
}

// BestTotal returns the highest total not exceeding 21, or the minimum
// (all-aces-low) total when every interpretation busts.
func (h Hand) BestTotal() int {
	best := -1
	min := -1
	for _, p := range h.Points() {
		if min == -1 || p < min {
			min = p
		}
		if p <= 21 && p > best {
			best = p
		}
	}
	if best == -1 {
		return min
	}
	return best
}

// IsBust reports whether every possible total exceeds 21
func (h Hand) IsBust() bool {
	for _, p := range h.Points() {
		if p <= 21 {
			return false
		}
	}
	return true
}

// IsBlackjack reports whether the hand is a two-card 21
func (h Hand) IsBlackjack() bool {
	if len(h.cards) != 2 {
		return false
	}
	for _, p := range h.Points() {
		if p == 21 {
			return true
		}
	}
	return false
}

// CanSplit reports whether the hand is a splittable pair. Ten-value
// cards are mutually splittable regardless of rank.
func (h Hand) CanSplit() bool {
	return len(h.cards) == 2 && h.cards[0].Rank.SplitEquals(h.cards[1].Rank)
}

// CanDoubleDown reports whether the hand is two cards totalling 10 or 11
func (h Hand) CanDoubleDown() bool {
	if len(h.cards) != 2 {
		return false
	}
	for _, p := range h.Points() {
		if p == 10 || p == 11 {
			return true
		}
	}
	return false
}

// DealerMustHit reports whether the house must take another card. The
// dealer stands as soon as any total in [17,21] is reachable; with
// hitSoft17 the house also hits a 17 that counts an ace as 11.
func (h Hand) DealerMustHit(hitSoft17 bool) bool {
	best := h.BestTotal()
	if best > 21 {
		return false
	}
	if hitSoft17 && best == 17 && h.isSoft() {
		return true
	}
	return best < 17
}

// isSoft reports whether the best total counts an ace as 11
func (h Hand) isSoft() bool {
	min := 0
	for _, c := range h.cards {
		min += c.Rank.PointValue()
	}
	return h.BestTotal() != min
}

// UpCard returns the dealer's visible card, the second one dealt. Before
// the second card arrives there is no up-card yet.
func (h Hand) UpCard() (deck.Card, bool) {
	if len(h.cards) < 2 {
		return deck.Card{}, false
	}
	return h.cards[1], true
}

// Result classifies a player hand's outcome against the dealer
type Result int

const (
	ResultLose Result = iota
	ResultPush
	ResultWin
	ResultBlackjack
)

// String returns the result name
func (r Result) String() string {
	switch r {
	case ResultLose:
		return "lose"
	case ResultPush:
		return "push"
	case ResultWin:
		return "win"
	case ResultBlackjack:
		return "blackjack"
	default:
		return "?"
	}
}

// Showdown classifies this hand against the dealer's. A blackjack wins
// at blackjack odds regardless of the dealer's cards (a dealer blackjack
// is settled before showdown, in the insurance flow). A bust always
// loses. Otherwise best totals are compared; a standing player beats a
// busted dealer, at blackjack odds when the total is exactly 21.
// A nil dealer means no live dealer draw happened, which only occurs
// when every hand already busted or made blackjack.
func (h Hand) Showdown(dealer *Hand) Result {
	if h.IsBlackjack() {
		return ResultBlackjack
	}
	if h.IsBust() {
		return ResultLose
	}
	if dealer == nil {
		return ResultLose
	}

	playerBest := h.BestTotal()

	dealerBest := -1
	for _, p := range dealer.Points() {
		if p <= 21 && p > dealerBest {
			dealerBest = p
		}
	}
	if dealerBest == -1 {
		// Dealer busted. A 21 made with three or more cards still earns
		// the blackjack-tier payout here.
		if playerBest != 21 {
			return ResultWin
		}
		return ResultBlackjack
	}

	switch {
	case playerBest == dealerBest:
		return ResultPush
	case playerBest < dealerBest:
		return ResultLose
	default:
		return ResultWin
	}
}
