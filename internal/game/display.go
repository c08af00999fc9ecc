package game

import (
	"fmt"

	"github.com/cardtable/blackjack/internal/deck"
)

// Ink is a semantic drawing color. The sink decides what each ink looks
// like on the actual output device.
type Ink int

const (
	InkFelt Ink = iota
	InkRail
	InkLine
	InkBar
	InkText
	InkHighlight
	InkDim
	InkMarker
)

// Sink is the rendering surface the round draws into, in screen cells.
// Draw calls are descriptive; the sink owns pixels, glyphs and color.
type Sink interface {
	FillRect(x, y, w, h int, ink Ink)
	StrokeOval(x, y, w, h int, ink Ink)
	HLine(x, y, w int, ink Ink)
	Text(x, y int, s string, ink Ink)
	Card(x, y int, c deck.Card, faceUp bool)
}

// Table layout, in screen cells.
const (
	ScreenW = 64
	ScreenH = 24

	tableHeight = 9
	inputBarY   = ScreenH - 3

	cardW = 5
	cardH = 4

	dealerRowY  = tableHeight + 1
	dealerRowX  = 24
	markerRowY  = dealerRowY + cardH
	playerRowY  = markerRowY + 1
	outcomeRowY = playerRowY + cardH
)

// Draw renders the round onto the sink. It is read-only on game state;
// one call per tick, after Update.
func (r *Round) Draw(sink Sink) {
	// Table: rail arc behind a felt rectangle, divider, input bar.
	sink.StrokeOval(0, 0, ScreenW, tableHeight*2, InkRail)
	sink.FillRect(0, 0, ScreenW, tableHeight, InkFelt)
	sink.HLine(0, tableHeight, ScreenW, InkLine)
	sink.FillRect(0, inputBarY, ScreenW, ScreenH-inputBarY, InkBar)

	sink.Text(1, 1, fmt.Sprintf("Chips: $%d", r.bank), InkText)
	sink.Text(1, 2, fmt.Sprintf("Bet Amount: $%d", r.bet), InkText)
	sink.Text(1, 3, fmt.Sprintf("Cards in Shoe: %d", r.shoe.Remaining()), InkText)
	sink.Text(1, 4, fmt.Sprintf("Total Bet: $%d", r.totalBet), InkText)

	switch s := r.state.(type) {
	case bettingPhase:
		r.drawBetting(sink)
	case *dealingPhase:
		drawTableCards(sink, s.dealer, []Hand{s.player}, 0, false)
	case *insurancePhase:
		r.drawInsurance(sink, s)
	case *playingPhase:
		r.drawPlaying(sink, s)
	case *dealerResolvingPhase:
		drawTableCards(sink, s.dealer, s.hands, -1, true)
	case *endPhase:
		r.drawEnd(sink, s)
	}
}

func (r *Round) drawBetting(sink Sink) {
	sink.Text(1, inputBarY+1, "↑/↓: change bet", InkText)
	sink.Text(1, inputBarY+2, "enter: deal  esc: leave table", InkText)
}

func (r *Round) drawInsurance(sink Sink, s *insurancePhase) {
	drawTableCards(sink, s.dealer, []Hand{s.player}, 0, false)
	sink.Text(1, 5, fmt.Sprintf("Insurance Bet: $%d", r.bet/2), InkHighlight)
	sink.Text(1, inputBarY+1, "Insurance bet?", InkText)
	sink.Text(1, inputBarY+2, "enter: yes  esc: no", InkText)
}

func (r *Round) drawPlaying(sink Sink, s *playingPhase) {
	drawTableCards(sink, s.dealer, s.hands, s.active, false)

	for i, b := range s.buttons {
		x := 2 + (i%2)*20
		y := inputBarY + 1 + i/2
		ink := InkText
		switch {
		case i == s.buttonIndex:
			ink = InkHighlight
		case b.disabled:
			ink = InkDim
		}
		sink.Text(x, y, b.label, ink)
	}
}

func (r *Round) drawEnd(sink Sink, s *endPhase) {
	hands := make([]Hand, len(s.outcomes))
	for i, o := range s.outcomes {
		hands[i] = o.Hand
	}
	drawTableCards(sink, s.dealer, hands, -1, true)

	for i, o := range s.outcomes {
		x := handX(i, len(s.outcomes))
		sink.Text(x, outcomeRowY, resultLabel(o.Result), InkHighlight)
	}

	sink.Text(1, inputBarY+1, "enter: play again", InkText)
	sink.Text(1, inputBarY+2, "esc: leave table", InkText)
}

func resultLabel(res Result) string {
	switch res {
	case ResultWin:
		return "WIN"
	case ResultLose:
		return "LOSE"
	case ResultPush:
		return "PUSH"
	case ResultBlackjack:
		return "BLACKJACK"
	default:
		return "?"
	}
}

// drawTableCards lays out the dealer row and the player hands. The
// dealer's first card stays face-down until showdown. activeHand marks
// the hand being played, -1 for none.
func drawTableCards(sink Sink, dealer Hand, hands []Hand, activeHand int, showdown bool) {
	for i, card := range dealer.Cards() {
		faceUp := showdown || i != 0
		sink.Card(dealerRowX+i*(cardW+1), dealerRowY, card, faceUp)
	}

	for hi, hand := range hands {
		x := handX(hi, len(hands))
		if hi == activeHand {
			sink.Text(x+1, markerRowY, "▼", InkMarker)
		}
		for ci, card := range hand.Cards() {
			sink.Card(x+ci*(cardW+1), playerRowY, card, true)
		}
	}
}

// handX spreads hands evenly across the felt
func handX(index, count int) int {
	if count <= 0 {
		count = 1
	}
	space := ScreenW / count
	return space*(index+1) - space*2/3
}
