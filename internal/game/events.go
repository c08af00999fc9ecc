package game

import (
	"fmt"
	"time"

	"github.com/cardtable/blackjack/internal/deck"
)

// EventType represents a game event type with type safety
type EventType string

const (
	EventTypePhaseChange   EventType = "phase_change"
	EventTypeCardDealt     EventType = "card_dealt"
	EventTypeInvalidAction EventType = "invalid_action"
	EventTypeRoundSettled  EventType = "round_settled"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}

// GameEvent represents any event that occurs during a round
type GameEvent interface {
	EventType() EventType
	Timestamp() time.Time
}

// PhaseChangeEvent is published when the round moves to a new phase
type PhaseChangeEvent struct {
	From      PhaseKind
	To        PhaseKind
	timestamp time.Time
}

func (e PhaseChangeEvent) EventType() EventType { return EventTypePhaseChange }
func (e PhaseChangeEvent) Timestamp() time.Time { return e.timestamp }

// CardDealtEvent is published when a card leaves the shoe for a hand
type CardDealtEvent struct {
	Card      deck.Card
	ToDealer  bool
	HandIndex int
	FaceUp    bool
	timestamp time.Time
}

func (e CardDealtEvent) EventType() EventType { return EventTypeCardDealt }
func (e CardDealtEvent) Timestamp() time.Time { return e.timestamp }

// InvalidActionEvent is published when a player action is rejected: a bet
// the bank cannot cover, a disabled menu button, playing below the table
// minimum. State is unchanged; the shell turns this into a buzz cue.
type InvalidActionEvent struct {
	Reason    string
	timestamp time.Time
}

func (e InvalidActionEvent) EventType() EventType { return EventTypeInvalidAction }
func (e InvalidActionEvent) Timestamp() time.Time { return e.timestamp }

// HandOutcome pairs a finished player hand with its result
type HandOutcome struct {
	Hand   Hand
	Result Result
}

// RoundSettledEvent is published once per round when payouts are applied
type RoundSettledEvent struct {
	Outcomes        []HandOutcome
	Bet             int
	Payout          int
	DealerBlackjack bool
	Insured         bool
	Bank            int
	timestamp       time.Time
}

func (e RoundSettledEvent) EventType() EventType { return EventTypeRoundSettled }
func (e RoundSettledEvent) Timestamp() time.Time { return e.timestamp }

// EventSubscriber receives published game events
type EventSubscriber interface {
	OnEvent(event GameEvent)
}

// EventBus manages event publishing and subscription
type EventBus interface {
	Subscribe(subscriber EventSubscriber)
	Unsubscribe(subscriber EventSubscriber)
	Publish(event GameEvent)
}

// SimpleEventBus is a basic in-memory event bus implementation
type SimpleEventBus struct {
	subscribers []EventSubscriber
}

// NewEventBus creates a new event bus
func NewEventBus() EventBus {
	return &SimpleEventBus{
		subscribers: make([]EventSubscriber, 0),
	}
}

// Subscribe adds a subscriber to receive events
func (bus *SimpleEventBus) Subscribe(subscriber EventSubscriber) {
	bus.subscribers = append(bus.subscribers, subscriber)
}

// Unsubscribe removes a subscriber from receiving events
func (bus *SimpleEventBus) Unsubscribe(subscriber EventSubscriber) {
	for i, sub := range bus.subscribers {
		if sub == subscriber {
			bus.subscribers = append(bus.subscribers[:i], bus.subscribers[i+1:]...)
			break
		}
	}
}

// Publish sends an event to all subscribers
func (bus *SimpleEventBus) Publish(event GameEvent) {
	for _, subscriber := range bus.subscribers {
		subscriber.OnEvent(event)
	}
}

// FormatEvent renders an event as a one-line log entry for the shell's
// round log.
func FormatEvent(event GameEvent) string {
	switch e := event.(type) {
	case PhaseChangeEvent:
		return fmt.Sprintf("— %s —", e.To)
	case CardDealtEvent:
		who := "player"
		if e.ToDealer {
			who = "dealer"
		}
		if !e.FaceUp {
			return fmt.Sprintf("%s draws a card face down", who)
		}
		if e.ToDealer {
			return fmt.Sprintf("dealer draws %s", e.Card)
		}
		if e.HandIndex > 0 {
			return fmt.Sprintf("hand %d draws %s", e.HandIndex+1, e.Card)
		}
		return fmt.Sprintf("player draws %s", e.Card)
	case InvalidActionEvent:
		return fmt.Sprintf("✗ %s", e.Reason)
	case RoundSettledEvent:
		if e.DealerBlackjack {
			if e.Insured {
				return fmt.Sprintf("dealer blackjack, insurance pays $%d (bank $%d)", e.Payout, e.Bank)
			}
			return fmt.Sprintf("dealer blackjack (bank $%d)", e.Bank)
		}
		return fmt.Sprintf("round over: %s (bank $%d)", summarizeOutcomes(e.Outcomes), e.Bank)
	default:
		return string(event.EventType())
	}
}

func summarizeOutcomes(outcomes []HandOutcome) string {
	if len(outcomes) == 1 {
		return outcomes[0].Result.String()
	}
	s := ""
	for i, o := range outcomes {
		if i > 0 {
			s += ", "
		}
		s += fmt.Sprintf("hand %d %s", i+1, o.Result)
	}
	return s
}
