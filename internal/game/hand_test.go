package game

import (
	"testing"

	"github.com/cardtable/blackjack/internal/deck"
)

func handOf(t *testing.T, cards string) Hand {
	t.Helper()
	return NewHand(deck.MustParseCards(cards)...)
}

func TestHandPoints(t *testing.T) {
	tests := []struct {
		name  string
		cards string
		want  []int // distinct totals, any order
	}{
		{"no aces", "Th9s", []int{19}},
		{"single ace", "Ah9s", []int{10, 20}},
		{"two aces", "AhAs", []int{2, 12, 22}},
		{"ace and face", "AsKh", []int{11, 21}},
		{"three aces", "AhAsAd", []int{3, 13, 23, 33}},
		{"hard twenty", "KhQs", []int{20}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := handOf(t, tt.cards).Points()

			gotSet := make(map[int]bool)
			for _, p := range got {
				gotSet[p] = true
			}
			wantSet := make(map[int]bool)
			for _, p := range tt.want {
				wantSet[p] = true
			}

			for p := range wantSet {
				if !gotSet[p] {
					t.Errorf("missing total %d in %v", p, got)
				}
			}
			for p := range gotSet {
				if !wantSet[p] {
					t.Errorf("unexpected total %d in %v", p, got)
				}
			}
		})
	}
}

func TestHandPointsIncludesAcesLowTotal(t *testing.T) {
	// The all-aces-as-1 total is always present, and for each total <= 11
	// the +10 soft variant is too.
	hands := []string{"Ah9s", "AhAs", "AsKh", "Ah5d3c", "AhAsAdAc"}
	for _, cards := range hands {
		h := handOf(t, cards)
		pts := h.Points()

		low := 0
		for _, c := range h.Cards() {
			low += c.Rank.PointValue()
		}

		member := func(n int) bool {
			for _, p := range pts {
				if p == n {
					return true
				}
			}
			return false
		}

		if !member(low) {
			t.Errorf("%s: all-aces-low total %d missing from %v", cards, low, pts)
		}
		hasAce := false
		for _, c := range h.Cards() {
			if c.IsAce() {
				hasAce = true
			}
		}
		if hasAce {
			for _, p := range pts {
				if p <= 11 && !member(p+10) {
					t.Errorf("%s: soft variant %d of %d missing from %v", cards, p+10, p, pts)
				}
			}
		}
	}
}

func TestHandBestTotal(t *testing.T) {
	tests := []struct {
		cards string
		want  int
	}{
		{"AsKh", 21},
		{"Ah9s", 20},
		{"AhAs", 12},
		{"Th9s", 19},
		{"ThTs5d", 25}, // bust: minimum total
		{"Ah5d3c", 19},
	}

	for _, tt := range tests {
		if got := handOf(t, tt.cards).BestTotal(); got != tt.want {
			t.Errorf("%s: BestTotal() = %d, want %d", tt.cards, got, tt.want)
		}
	}
}

func TestHandIsBust(t *testing.T) {
	tests := []struct {
		cards string
		want  bool
	}{
		{"ThTs5d", true},
		{"ThTsAd", false}, // ace as 1 gives 21
		{"Th9s2d", true},
		{"AsKh", false},
		{"5h5s5d5c2h", true},
	}

	for _, tt := range tests {
		if got := handOf(t, tt.cards).IsBust(); got != tt.want {
			t.Errorf("%s: IsBust() = %v, want %v", tt.cards, got, tt.want)
		}
	}
}

func TestHandIsBlackjack(t *testing.T) {
	tests := []struct {
		cards string
		want  bool
	}{
		{"AsKh", true},
		{"AsTd", true},
		{"AsQc", true},
		{"As9h", false},     // 20
		{"Th5s6d", false},   // 21 in three cards
		{"AhAs9dKc", false}, // 21 in four cards
		{"KhQs", false},
	}

	for _, tt := range tests {
		if got := handOf(t, tt.cards).IsBlackjack(); got != tt.want {
			t.Errorf("%s: IsBlackjack() = %v, want %v", tt.cards, got, tt.want)
		}
	}
}

func TestHandCanSplit(t *testing.T) {
	tests := []struct {
		cards string
		want  bool
	}{
		{"8h8s", true},
		{"AhAs", true},
		{"ThKs", true}, // ten-value ranks are split-equal
		{"JhQs", true},
		{"9hTs", false},
		{"8h8s8d", false},
		{"AhKs", false},
	}

	for _, tt := range tests {
		if got := handOf(t, tt.cards).CanSplit(); got != tt.want {
			t.Errorf("%s: CanSplit() = %v, want %v", tt.cards, got, tt.want)
		}
	}
}

func TestHandCanDoubleDown(t *testing.T) {
	tests := []struct {
		cards string
		want  bool
	}{
		{"6h4s", true},  // 10
		{"6h5s", true},  // 11
		{"Ah9s", true},  // soft 10/20
		{"6h3s", false}, // 9
		{"6h6s", false}, // 12
		{"6h4s2d", false},
	}

	for _, tt := range tests {
		if got := handOf(t, tt.cards).CanDoubleDown(); got != tt.want {
			t.Errorf("%s: CanDoubleDown() = %v, want %v", tt.cards, got, tt.want)
		}
	}
}

func TestDealerMustHit(t *testing.T) {
	tests := []struct {
		name      string
		cards     string
		hitSoft17 bool
		want      bool
	}{
		{"sixteen hits", "Th6s", false, true},
		{"hard seventeen stands", "Th7s", false, false},
		{"soft seventeen stands", "6hAs", false, false},
		{"soft seventeen hits under alternate rule", "6hAs", true, true},
		{"soft eighteen stands either way", "7hAs", true, false},
		{"hard seventeen stands under alternate rule", "Th7s", true, false},
		{"twenty-one stands", "ThAs", false, false},
		{"twelve hits", "Th2s", false, true},
		{"bust does not hit", "Th9s5d", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := handOf(t, tt.cards).DealerMustHit(tt.hitSoft17); got != tt.want {
				t.Errorf("%s: DealerMustHit(%v) = %v, want %v", tt.cards, tt.hitSoft17, got, tt.want)
			}
		})
	}
}

func TestShowdown(t *testing.T) {
	tests := []struct {
		name   string
		player string
		dealer string
		want   Result
	}{
		{"blackjack beats dealer nineteen", "AsKh", "Th9s", ResultBlackjack},
		{"bust loses even against dealer bust", "Th9s5d", "Th9s4d", ResultLose},
		{"higher total wins", "ThKs", "Th9s", ResultWin},
		{"lower total loses", "Th8s", "Th9s", ResultLose},
		{"equal totals push", "Th9s", "Kh9d", ResultPush},
		{"standing hand beats dealer bust", "Th8s", "Th9s5d", ResultWin},
		{"three-card 21 against dealer bust pays blackjack tier", "Th5s6d", "Th9s5d", ResultBlackjack},
		{"three-card 21 beats dealer twenty", "Th5s6d", "ThKs", ResultWin},
		{"soft total counts high", "Ah9s", "Th9s", ResultWin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			player := handOf(t, tt.player)
			dealer := handOf(t, tt.dealer)
			if got := player.Showdown(&dealer); got != tt.want {
				t.Errorf("Showdown(%s vs %s) = %v, want %v", tt.player, tt.dealer, got, tt.want)
			}
		})
	}
}

func TestShowdownNoDealer(t *testing.T) {
	bust := handOf(t, "Th9s5d")
	if got := bust.Showdown(nil); got != ResultLose {
		t.Errorf("bust vs no dealer = %v, want lose", got)
	}
	natural := handOf(t, "AsKh")
	if got := natural.Showdown(nil); got != ResultBlackjack {
		t.Errorf("blackjack vs no dealer = %v, want blackjack", got)
	}
}

func TestHandClone(t *testing.T) {
	h := handOf(t, "AsKh")
	c := h.Clone()
	c.Add(deck.NewCard(deck.Spades, deck.Five))

	if h.Len() != 2 {
		t.Fatalf("clone mutation leaked into original: %s", h)
	}
	if c.Len() != 3 {
		t.Fatalf("expected 3 cards in clone, got %d", c.Len())
	}
}

func TestHandUpCard(t *testing.T) {
	h := NewHand()
	if _, ok := h.UpCard(); ok {
		t.Fatal("empty hand has no up-card")
	}
	h.Add(deck.NewCard(deck.Spades, deck.Five))
	if _, ok := h.UpCard(); ok {
		t.Fatal("one-card hand has no up-card")
	}
	h.Add(deck.NewCard(deck.Hearts, deck.Ace))
	up, ok := h.UpCard()
	if !ok || !up.IsAce() {
		t.Fatalf("expected ace up-card, got %v ok=%v", up, ok)
	}
}
