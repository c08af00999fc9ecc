package deck

import (
	rand "math/rand/v2"
)

// DefaultDecks is the number of 52-card decks a freshly filled shoe holds.
const DefaultDecks = 7

// Shoe is a multi-deck stack of cards the dealer draws from. Drawing from
// an exhausted shoe transparently refills and reshuffles it, so Draw never
// fails. Cards are popped, never shared: a drawn card belongs to exactly
// one hand.
type Shoe struct {
	cards []Card
	decks int
	rng   *rand.Rand
}

// NewShoe builds a shoe of the given number of concatenated standard decks,
// shuffled with the supplied generator. The generator is retained for
// reshuffles.
func NewShoe(decks int, rng *rand.Rand) *Shoe {
	if decks <= 0 {
		decks = DefaultDecks
	}
	s := &Shoe{
		cards: make([]Card, 0, decks*52),
		decks: decks,
		rng:   rng,
	}
	s.refill()
	return s
}

// refill replaces the shoe contents with a fresh shuffled set of decks.
func (s *Shoe) refill() {
	s.cards = s.cards[:0]
	for i := 0; i < s.decks; i++ {
		for _, suit := range Suits() {
			for _, rank := range Ranks() {
				s.cards = append(s.cards, NewCard(suit, rank))
			}
		}
	}
	s.shuffle()
}

// shuffle applies a Fisher-Yates permutation
func (s *Shoe) shuffle() {
	for i := len(s.cards) - 1; i > 0; i-- {
		j := s.rng.IntN(i + 1)
		s.cards[i], s.cards[j] = s.cards[j], s.cards[i]
	}
}

// Draw removes and returns the top card. An empty shoe is refilled and
// reshuffled first, so exhaustion is never observable.
func (s *Shoe) Draw() Card {
	if len(s.cards) == 0 {
		s.refill()
	}
	card := s.cards[len(s.cards)-1]
	s.cards = s.cards[:len(s.cards)-1]
	return card
}

// Remaining returns the number of cards left in the shoe
func (s *Shoe) Remaining() int {
	return len(s.cards)
}
