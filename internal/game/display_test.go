package game

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cardtable/blackjack/internal/deck"
)

// recordingSink captures draw calls for assertions
type recordingSink struct {
	calls []string
}

func (s *recordingSink) FillRect(x, y, w, h int, ink Ink) {
	s.calls = append(s.calls, fmt.Sprintf("rect %d,%d %dx%d", x, y, w, h))
}

func (s *recordingSink) StrokeOval(x, y, w, h int, ink Ink) {
	s.calls = append(s.calls, fmt.Sprintf("oval %d,%d %dx%d", x, y, w, h))
}

func (s *recordingSink) HLine(x, y, w int, ink Ink) {
	s.calls = append(s.calls, fmt.Sprintf("hline %d,%d w%d", x, y, w))
}

func (s *recordingSink) Text(x, y int, text string, ink Ink) {
	s.calls = append(s.calls, fmt.Sprintf("text %d,%d %q", x, y, text))
}

func (s *recordingSink) Card(x, y int, c deck.Card, faceUp bool) {
	face := "down"
	if faceUp {
		face = "up"
	}
	s.calls = append(s.calls, fmt.Sprintf("card %d,%d %s %s", x, y, c, face))
}

func (s *recordingSink) contains(substr string) bool {
	for _, c := range s.calls {
		if strings.Contains(c, substr) {
			return true
		}
	}
	return false
}

func TestDrawBetting(t *testing.T) {
	r := testRound(t, 100)
	sink := &recordingSink{}

	r.Draw(sink)

	assert.True(t, sink.contains(`"Chips: $100"`))
	assert.True(t, sink.contains(`"Bet Amount: $0"`))
	assert.True(t, sink.contains("change bet"))
	assert.True(t, sink.contains("oval"), "table rail is drawn")
	assert.False(t, sink.contains("card"), "no cards before the deal")
}

func TestDrawPlayingHidesHoleCard(t *testing.T) {
	r := testRound(t, 90)
	r.bet, r.totalBet = 10, 10
	r.state = newPlayingPhase(handOf(t, "9hTs"), handOf(t, "Th8s"))

	sink := &recordingSink{}
	r.Draw(sink)

	assert.True(t, sink.contains("9♥ down"), "dealer hole card face down")
	assert.True(t, sink.contains("T♠ up"), "dealer up-card visible")
	assert.True(t, sink.contains("Hit"))
	assert.True(t, sink.contains("Double Down"))
	assert.True(t, sink.contains("▼"), "active hand marker")
}

func TestDrawEndShowsHoleCardAndOutcomes(t *testing.T) {
	r := testRound(t, 100)
	r.bet, r.bank, r.totalBet = 10, 90, 10
	r.state = &endPhase{
		dealer:   handOf(t, "9hTs"),
		outcomes: []HandOutcome{{Hand: handOf(t, "ThKs"), Result: ResultWin}},
		settled:  true,
	}

	sink := &recordingSink{}
	r.Draw(sink)

	assert.True(t, sink.contains("9♥ up"), "hole card revealed at showdown")
	assert.True(t, sink.contains(`"WIN"`))
	assert.True(t, sink.contains("play again"))
}

func TestDrawInsurance(t *testing.T) {
	r := testRound(t, 100)
	r.bet, r.bank, r.totalBet = 10, 90, 10
	r.state = &insurancePhase{
		dealer: handOf(t, "9hAs"),
		player: handOf(t, "Th9s"),
	}

	sink := &recordingSink{}
	r.Draw(sink)

	assert.True(t, sink.contains(`"Insurance Bet: $5"`))
	assert.True(t, sink.contains("Insurance bet?"))
}

func TestDrawIsReadOnly(t *testing.T) {
	r := testRound(t, 100)
	r.Update(idle())

	before := r.ShoeRemaining()
	for i := 0; i < 3; i++ {
		r.Draw(&recordingSink{})
	}
	assert.Equal(t, before, r.ShoeRemaining())
	assert.Equal(t, PhaseBetting, r.Phase())
}

func TestHandXSpreadsHands(t *testing.T) {
	// More hands pack tighter but stay on screen.
	for count := 1; count <= 4; count++ {
		for i := 0; i < count; i++ {
			x := handX(i, count)
			assert.GreaterOrEqual(t, x, 0)
			assert.Less(t, x, ScreenW)
		}
	}
}
