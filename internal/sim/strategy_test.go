package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cardtable/blackjack/internal/deck"
	"github.com/cardtable/blackjack/internal/game"
)

func handOf(t *testing.T, spec string) game.Hand {
	t.Helper()
	return game.NewHand(deck.MustParseCards(spec)...)
}

func TestBasicStrategyBetsTableMinimum(t *testing.T) {
	s := BasicStrategy{}
	assert.Equal(t, 10, s.Bet(100, 10, 10))
	assert.Equal(t, 0, s.Bet(5, 10, 10), "below the minimum means leave")
}

func TestBasicStrategyDeclinesInsurance(t *testing.T) {
	s := BasicStrategy{}
	assert.False(t, s.TakeInsurance(handOf(t, "TsTh"), 1000))
}

func TestBasicStrategyPlay(t *testing.T) {
	tests := []struct {
		name      string
		hand      string
		up        string
		canSplit  bool
		canDouble bool
		want      Decision
	}{
		{"always split aces", "AsAh", "Ts", true, true, Split},
		{"always split eights", "8s8h", "9d", true, true, Split},
		{"never split tens", "TsTh", "6d", true, false, Stand},
		{"double hard eleven", "6s5h", "Ts", false, true, DoubleDown},
		{"double hard ten vs nine", "6s4h", "9s", false, true, DoubleDown},
		{"no double hard ten vs ten", "6s4h", "Ts", false, true, Hit},
		{"hit hard ten when double unavailable", "6s4h", "5s", false, false, Hit},
		{"stand hard seventeen", "Ts7h", "As", false, false, Stand},
		{"stand thirteen vs six", "Ts3h", "6s", false, false, Stand},
		{"hit thirteen vs seven", "Ts3h", "7s", false, false, Hit},
		{"stand twelve vs four", "Ts2h", "4s", false, false, Stand},
		{"hit twelve vs three", "Ts2h", "3s", false, false, Hit},
		{"hit hard low total", "5s3h", "2s", false, false, Hit},
		{"stand soft nineteen", "As8h", "Ts", false, false, Stand},
		{"stand soft eighteen vs seven", "As7h", "7s", false, false, Stand},
		{"hit soft eighteen vs nine", "As7h", "9s", false, false, Hit},
		{"hit soft seventeen", "As6h", "6s", false, false, Hit},
		{"no double on soft totals", "As5h", "6s", false, true, Hit},
	}

	s := BasicStrategy{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			up := deck.MustParseCards(tt.up)[0]
			got := s.Play(handOf(t, tt.hand), up, tt.canSplit, tt.canDouble)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecisionString(t *testing.T) {
	assert.Equal(t, "hit", Hit.String())
	assert.Equal(t, "double down", DoubleDown.String())
}
