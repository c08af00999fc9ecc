package game

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/cardtable/blackjack/internal/deck"
	"github.com/cardtable/blackjack/internal/input"
	"github.com/cardtable/blackjack/internal/randutil"
)

// PhaseKind identifies which phase a round is in
type PhaseKind int

const (
	PhaseBetting PhaseKind = iota
	PhaseDealing
	PhaseInsurance
	PhasePlaying
	PhaseDealerResolving
	PhaseEnd
)

// String returns the phase name
func (p PhaseKind) String() string {
	switch p {
	case PhaseBetting:
		return "betting"
	case PhaseDealing:
		return "dealing"
	case PhaseInsurance:
		return "insurance"
	case PhasePlaying:
		return "playing"
	case PhaseDealerResolving:
		return "dealer resolving"
	case PhaseEnd:
		return "end"
	default:
		return "?"
	}
}

// phase is the tagged variant holding per-phase state. Each transition
// constructs the next variant; no payload outlives its phase.
type phase interface {
	kind() PhaseKind
}

type bettingPhase struct{}

func (bettingPhase) kind() PhaseKind { return PhaseBetting }

type dealingPhase struct {
	frame  int
	dealer Hand
	player Hand
}

func (*dealingPhase) kind() PhaseKind { return PhaseDealing }

type insurancePhase struct {
	dealer Hand
	player Hand
}

func (*insurancePhase) kind() PhaseKind { return PhaseInsurance }

// menu button indices in the 2x2 playing grid
const (
	buttonHit = iota
	buttonStand
	buttonSplit
	buttonDoubleDown
	buttonCount
)

type button struct {
	label    string
	disabled bool
}

type playingPhase struct {
	buttons     [buttonCount]button
	buttonIndex int
	dealer      Hand
	hands       []Hand
	active      int
}

func (*playingPhase) kind() PhaseKind { return PhasePlaying }

func newPlayingPhase(dealer, player Hand) *playingPhase {
	return &playingPhase{
		buttons: [buttonCount]button{
			{label: "Hit"},
			{label: "Stand"},
			{label: "Split", disabled: true},
			{label: "Double Down", disabled: true},
		},
		dealer: dealer,
		hands:  []Hand{player},
	}
}

type dealerResolvingPhase struct {
	dealer Hand
	hands  []Hand
	frames int
}

func (*dealerResolvingPhase) kind() PhaseKind { return PhaseDealerResolving }

type endPhase struct {
	dealer          Hand
	outcomes        []HandOutcome
	boughtInsurance bool
	settled         bool
}

func (*endPhase) kind() PhaseKind { return PhaseEnd }

// Round owns one seat's blackjack session: the shoe, the bankroll, the
// current wager, and the phase state machine. Exactly one Update call
// happens per logical tick; all mutation is synchronous inside it.
type Round struct {
	rules  Rules
	shoe   *deck.Shoe
	logger *log.Logger
	bus    EventBus

	bet      int
	totalBet int
	bank     int

	state phase
}

// NewRound creates a session seeded with the given bankroll. The seed
// drives a single deterministic generator used for every shuffle.
func NewRound(rules Rules, seed int64, bank int, logger *log.Logger) *Round {
	return &Round{
		rules:  rules,
		shoe:   deck.NewShoe(rules.Decks, randutil.New(seed)),
		logger: logger,
		bus:    NewEventBus(),
		bank:   bank,
		state:  bettingPhase{},
	}
}

// Events returns the bus the round publishes to, for shell and test
// subscriptions.
func (r *Round) Events() EventBus {
	return r.bus
}

// Phase returns the current phase kind
func (r *Round) Phase() PhaseKind {
	return r.state.kind()
}

// Bank returns the player's current bankroll
func (r *Round) Bank() int { return r.bank }

// Bet returns the current base wager
func (r *Round) Bet() int { return r.bet }

// TotalBet returns the sum of all outstanding wagers this round
func (r *Round) TotalBet() int { return r.totalBet }

// ShoeRemaining returns the number of cards left in the shoe
func (r *Round) ShoeRemaining() int { return r.shoe.Remaining() }

// ActiveHand returns the hand currently awaiting the player's decision:
// the hand being played, or the dealt hand during the insurance prompt.
func (r *Round) ActiveHand() (Hand, bool) {
	switch s := r.state.(type) {
	case *playingPhase:
		if s.active >= len(s.hands) {
			return Hand{}, false
		}
		return s.hands[s.active].Clone(), true
	case *insurancePhase:
		return s.player.Clone(), true
	default:
		return Hand{}, false
	}
}

// DealerUpCard returns the dealer's visible card once dealt
func (r *Round) DealerUpCard() (deck.Card, bool) {
	switch s := r.state.(type) {
	case *dealingPhase:
		return s.dealer.UpCard()
	case *insurancePhase:
		return s.dealer.UpCard()
	case *playingPhase:
		return s.dealer.UpCard()
	case *dealerResolvingPhase:
		return s.dealer.UpCard()
	case *endPhase:
		return s.dealer.UpCard()
	default:
		return deck.Card{}, false
	}
}

// ButtonIndex returns the selected playing-menu button
func (r *Round) ButtonIndex() int {
	if p, ok := r.state.(*playingPhase); ok {
		return p.buttonIndex
	}
	return 0
}

// HandCount returns the number of player hands in play
func (r *Round) HandCount() int {
	switch s := r.state.(type) {
	case *playingPhase:
		return len(s.hands)
	case *dealerResolvingPhase:
		return len(s.hands)
	case *endPhase:
		return len(s.outcomes)
	case *dealingPhase, *insurancePhase:
		return 1
	default:
		return 0
	}
}

// Update advances the state machine by one tick. It returns the final
// bankroll and true when the player exits the table, which is only
// possible from the betting and end phases.
func (r *Round) Update(in input.Snapshot) (int, bool) {
	switch s := r.state.(type) {
	case bettingPhase:
		return r.updateBetting(in)
	case *dealingPhase:
		r.updateDealing(s)
	case *insurancePhase:
		r.updateInsurance(s, in)
	case *playingPhase:
		r.updatePlaying(s, in)
	case *dealerResolvingPhase:
		r.updateDealerResolving(s)
	case *endPhase:
		return r.updateEnd(s, in)
	}
	return 0, false
}

func (r *Round) updateBetting(in input.Snapshot) (int, bool) {
	if in.Tapped(input.Cancel) {
		r.logger.Info("player left the table", "bank", r.bank)
		return r.bank, true
	}

	if r.bank < r.rules.MinimumBet {
		if in.Tapped(input.Confirm) {
			r.buzz("bank is below the table minimum")
		}
		return 0, false
	}

	if in.Tapped(input.Up) {
		r.bet = satAdd(r.bet, r.rules.BetIncrement)
	} else if in.Tapped(input.Down) {
		r.bet = satSub(r.bet, r.rules.BetIncrement)
	}
	if r.bet < r.rules.MinimumBet {
		r.bet = r.rules.MinimumBet
	}
	if r.bet > r.bank {
		r.bet = r.bank
	}

	if in.Tapped(input.Confirm) {
		if r.bet > r.bank {
			r.buzz("bet exceeds bank")
		} else {
			r.bank -= r.bet
			r.totalBet = r.bet
			r.setPhase(&dealingPhase{dealer: NewHand(), player: NewHand()})
		}
	}
	return 0, false
}

func (r *Round) updateDealing(s *dealingPhase) {
	s.frame++
	iv := r.rules.DealInterval
	switch s.frame {
	case iv:
		r.dealTo(&s.dealer, true, false, 0) // hole card
	case 2 * iv:
		r.dealTo(&s.player, false, true, 0)
	case 3 * iv:
		r.dealTo(&s.dealer, true, true, 0)
	case 4 * iv:
		r.dealTo(&s.player, false, true, 0)
	case 5 * iv:
		if up, ok := s.dealer.UpCard(); ok && up.IsAce() {
			r.setPhase(&insurancePhase{dealer: s.dealer.Clone(), player: s.player.Clone()})
		} else {
			r.setPhase(newPlayingPhase(s.dealer.Clone(), s.player.Clone()))
		}
	}
}

func (r *Round) updateInsurance(s *insurancePhase, in input.Snapshot) {
	if !in.Tapped(input.Confirm) && !in.Tapped(input.Cancel) {
		return
	}

	bought := false
	if in.Tapped(input.Confirm) {
		r.bank = satSub(r.bank, r.bet/2)
		bought = true
		r.logger.Debug("insurance purchased", "stake", r.bet/2, "bank", r.bank)
	}

	if s.dealer.IsBlackjack() {
		result := ResultLose
		if s.player.IsBlackjack() {
			result = ResultBlackjack
		}
		r.setPhase(&endPhase{
			dealer:          s.dealer.Clone(),
			outcomes:        []HandOutcome{{Hand: s.player.Clone(), Result: result}},
			boughtInsurance: bought,
		})
		return
	}
	r.setPhase(newPlayingPhase(s.dealer.Clone(), s.player.Clone()))
}

func (r *Round) updatePlaying(s *playingPhase, in input.Snapshot) {
	if s.active >= len(s.hands) {
		r.finishPlaying(s)
		return
	}

	hand := &s.hands[s.active]
	if hand.IsBust() || hand.IsBlackjack() {
		s.active++
		return
	}

	s.buttons[buttonSplit].disabled = !(hand.CanSplit() && r.bank >= r.bet)
	s.buttons[buttonDoubleDown].disabled = !(hand.CanDoubleDown() && r.bank >= r.bet)

	if in.Tapped(input.Confirm) {
		r.pressButton(s, hand)
		return
	}
	r.moveButtonSelection(s, in)
}

func (r *Round) pressButton(s *playingPhase, hand *Hand) {
	if s.buttonIndex < 0 || s.buttonIndex >= buttonCount || s.buttons[s.buttonIndex].disabled {
		r.buzz("that action is not available")
		return
	}

	switch s.buttonIndex {
	case buttonHit:
		r.dealTo(hand, false, true, s.active)

	case buttonStand:
		s.active++

	case buttonSplit:
		// Second card seeds the new hand; both hands draw a replacement.
		moved := hand.cards[len(hand.cards)-1]
		hand.cards = hand.cards[:len(hand.cards)-1]
		r.dealTo(hand, false, true, s.active)

		split := NewHand(moved)
		r.dealTo(&split, false, true, len(s.hands))
		s.hands = append(s.hands, split)

		r.totalBet = satAdd(r.totalBet, r.bet)
		r.logger.Debug("hand split", "hands", len(s.hands), "totalBet", r.totalBet)

	case buttonDoubleDown:
		r.dealTo(hand, false, true, s.active)
		r.totalBet = satAdd(r.totalBet, r.bet)
		s.active++
		r.logger.Debug("double down", "totalBet", r.totalBet)
	}
}

func (r *Round) moveButtonSelection(s *playingPhase, in input.Snapshot) {
	if r.rules.MenuWraparound {
		if in.Tapped(input.Right) {
			s.buttonIndex = s.buttonIndex/2*2 + (s.buttonIndex+1)%2
		} else if in.Tapped(input.Left) {
			s.buttonIndex = s.buttonIndex/2*2 + (s.buttonIndex+1)%2
		}
		if in.Tapped(input.Down) || in.Tapped(input.Up) {
			s.buttonIndex = (s.buttonIndex + 2) % buttonCount
		}
		return
	}

	// No wraparound: input past a grid edge is ignored.
	if in.Tapped(input.Right) && s.buttonIndex%2 == 0 {
		s.buttonIndex++
	}
	if in.Tapped(input.Left) && s.buttonIndex%2 == 1 {
		s.buttonIndex--
	}
	if in.Tapped(input.Down) && s.buttonIndex/2 == 0 {
		s.buttonIndex += 2
	}
	if in.Tapped(input.Up) && s.buttonIndex/2 == 1 {
		s.buttonIndex -= 2
	}
}

func (r *Round) finishPlaying(s *playingPhase) {
	showdownNeeded := false
	for _, hand := range s.hands {
		if !hand.IsBust() && !hand.IsBlackjack() {
			showdownNeeded = true
			break
		}
	}

	if showdownNeeded {
		hands := make([]Hand, len(s.hands))
		for i, h := range s.hands {
			hands[i] = h.Clone()
		}
		r.setPhase(&dealerResolvingPhase{
			dealer: s.dealer.Clone(),
			hands:  hands,
		})
		return
	}

	// Every hand busted or made blackjack; no dealer draw needed.
	outcomes := make([]HandOutcome, len(s.hands))
	for i, h := range s.hands {
		outcomes[i] = HandOutcome{Hand: h.Clone(), Result: h.Showdown(nil)}
	}
	r.setPhase(&endPhase{dealer: s.dealer.Clone(), outcomes: outcomes})
}

func (r *Round) updateDealerResolving(s *dealerResolvingPhase) {
	s.frames++
	if s.dealer.DealerMustHit(r.rules.DealerHitsSoft17) && !s.dealer.IsBust() {
		if s.frames%r.rules.DealerDrawInterval == 0 {
			r.dealTo(&s.dealer, true, true, 0)
		}
		return
	}

	outcomes := make([]HandOutcome, len(s.hands))
	for i, h := range s.hands {
		outcomes[i] = HandOutcome{Hand: h.Clone(), Result: h.Showdown(&s.dealer)}
	}
	r.setPhase(&endPhase{dealer: s.dealer.Clone(), outcomes: outcomes})
}

func (r *Round) updateEnd(s *endPhase, in input.Snapshot) (int, bool) {
	if !s.settled {
		r.settle(s)
	}

	if in.Tapped(input.Confirm) {
		r.setPhase(bettingPhase{})
		return 0, false
	}
	if in.Tapped(input.Cancel) {
		r.logger.Info("player left the table", "bank", r.bank)
		return r.bank, true
	}
	return 0, false
}

// settle applies payouts exactly once per round. A dealer blackjack
// voids per-hand payouts entirely; an insured player instead collects
// 3:2 on the original bet.
func (r *Round) settle(s *endPhase) {
	s.settled = true

	payout := 0
	dealerBlackjack := s.dealer.IsBlackjack()
	if dealerBlackjack {
		if s.boughtInsurance {
			payout = r.bet * 3 / 2
		}
	} else {
		for _, o := range s.outcomes {
			switch o.Result {
			case ResultBlackjack:
				payout += r.rules.BlackjackWinnings(r.bet) + r.bet
			case ResultWin:
				payout += r.bet * 2
			case ResultPush:
				payout += r.bet
			case ResultLose:
			}
		}
	}

	r.bank = satAdd(r.bank, payout)
	bet := r.bet
	r.bet = 0
	r.totalBet = 0

	r.logger.Info("round settled",
		"bet", bet,
		"payout", payout,
		"bank", r.bank,
		"dealerBlackjack", dealerBlackjack,
		"insured", s.boughtInsurance)

	r.bus.Publish(RoundSettledEvent{
		Outcomes:        s.outcomes,
		Bet:             bet,
		Payout:          payout,
		DealerBlackjack: dealerBlackjack,
		Insured:         s.boughtInsurance,
		Bank:            r.bank,
		timestamp:       time.Now(),
	})
}

func (r *Round) dealTo(h *Hand, toDealer, faceUp bool, handIndex int) {
	card := r.shoe.Draw()
	h.Add(card)
	r.bus.Publish(CardDealtEvent{
		Card:      card,
		ToDealer:  toDealer,
		HandIndex: handIndex,
		FaceUp:    faceUp,
		timestamp: time.Now(),
	})
}

func (r *Round) setPhase(next phase) {
	from := r.state.kind()
	r.state = next
	r.logger.Debug("phase change", "from", from, "to", next.kind())
	r.bus.Publish(PhaseChangeEvent{From: from, To: next.kind(), timestamp: time.Now()})
}

func (r *Round) buzz(reason string) {
	r.logger.Debug("invalid action", "reason", reason)
	r.bus.Publish(InvalidActionEvent{Reason: reason, timestamp: time.Now()})
}

func satAdd(a, b int) int {
	c := a + b
	if c < a {
		return int(^uint(0) >> 1)
	}
	return c
}

func satSub(a, b int) int {
	if b > a {
		return 0
	}
	return a - b
}
