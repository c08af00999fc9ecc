package game

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/cardtable/blackjack/internal/deck"
)

// Rules carries the table policy for a session. The defaults reproduce
// the house rules this table has always used; the alternates (3:2
// blackjack, hit soft 17, wraparound menus) are selectable per table.
type Rules struct {
	MinimumBet   int `hcl:"minimum_bet,optional"`
	BetIncrement int `hcl:"bet_increment,optional"`
	Decks        int `hcl:"decks,optional"`
	StartingBank int `hcl:"starting_bank,optional"`

	// BlackjackPayout is a ratio string like "6:5" or "3:2", paid on the
	// bet in addition to returning the stake.
	BlackjackPayout string `hcl:"blackjack_payout,optional"`

	DealerHitsSoft17 bool `hcl:"dealer_hits_soft_17,optional"`
	MenuWraparound   bool `hcl:"menu_wraparound,optional"`

	// Animation pacing, in ticks.
	DealInterval       int `hcl:"deal_interval,optional"`
	DealerDrawInterval int `hcl:"dealer_draw_interval,optional"`

	payoutNum int
	payoutDen int
}

// DefaultRules returns the standard table policy
func DefaultRules() Rules {
	r := Rules{
		MinimumBet:         10,
		BetIncrement:       10,
		Decks:              deck.DefaultDecks,
		StartingBank:       100,
		BlackjackPayout:    "6:5",
		DealerHitsSoft17:   false,
		MenuWraparound:     false,
		DealInterval:       10,
		DealerDrawInterval: 30,
	}
	r.payoutNum, r.payoutDen = 6, 5
	return r
}

// LoadRules loads table policy from an HCL file. A missing file yields
// the defaults; a present file has its unset fields back-filled from the
// defaults and is then validated.
func LoadRules(filename string) (Rules, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultRules(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return Rules{}, fmt.Errorf("failed to parse rules file: %s", diags.Error())
	}

	var rules Rules
	diags = gohcl.DecodeBody(file.Body, nil, &rules)
	if diags.HasErrors() {
		return Rules{}, fmt.Errorf("failed to decode rules: %s", diags.Error())
	}

	applyRuleDefaults(&rules)
	if err := rules.Validate(); err != nil {
		return Rules{}, err
	}
	return rules, nil
}

func applyRuleDefaults(r *Rules) {
	def := DefaultRules()
	if r.MinimumBet == 0 {
		r.MinimumBet = def.MinimumBet
	}
	if r.BetIncrement == 0 {
		r.BetIncrement = def.BetIncrement
	}
	if r.Decks == 0 {
		r.Decks = def.Decks
	}
	if r.StartingBank == 0 {
		r.StartingBank = def.StartingBank
	}
	if r.BlackjackPayout == "" {
		r.BlackjackPayout = def.BlackjackPayout
	}
	if r.DealInterval == 0 {
		r.DealInterval = def.DealInterval
	}
	if r.DealerDrawInterval == 0 {
		r.DealerDrawInterval = def.DealerDrawInterval
	}
}

// Validate checks the policy for internal consistency and caches the
// parsed payout ratio.
func (r *Rules) Validate() error {
	if r.MinimumBet <= 0 {
		return fmt.Errorf("minimum_bet must be positive, got %d", r.MinimumBet)
	}
	if r.BetIncrement <= 0 {
		return fmt.Errorf("bet_increment must be positive, got %d", r.BetIncrement)
	}
	if r.MinimumBet%r.BetIncrement != 0 {
		return fmt.Errorf("minimum_bet %d must be a multiple of bet_increment %d", r.MinimumBet, r.BetIncrement)
	}
	if r.Decks <= 0 {
		return fmt.Errorf("decks must be positive, got %d", r.Decks)
	}
	if r.StartingBank < 0 {
		return fmt.Errorf("starting_bank must not be negative, got %d", r.StartingBank)
	}

	num, den, err := parsePayout(r.BlackjackPayout)
	if err != nil {
		return err
	}
	r.payoutNum, r.payoutDen = num, den

	if r.DealInterval <= 0 {
		return fmt.Errorf("deal_interval must be positive, got %d", r.DealInterval)
	}
	if r.DealerDrawInterval <= 0 {
		return fmt.Errorf("dealer_draw_interval must be positive, got %d", r.DealerDrawInterval)
	}
	return nil
}

// BlackjackWinnings returns the winnings (excluding the returned stake)
// for a blackjack on the given bet.
func (r Rules) BlackjackWinnings(bet int) int {
	num, den := r.payoutNum, r.payoutDen
	if den == 0 {
		// Zero value Rules was never validated; fall back to the default.
		num, den = 6, 5
	}
	return bet * num / den
}

func parsePayout(s string) (int, int, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("blackjack_payout %q must look like \"6:5\"", s)
	}
	num, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("blackjack_payout %q: %w", s, err)
	}
	den, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, fmt.Errorf("blackjack_payout %q: %w", s, err)
	}
	if num <= 0 || den <= 0 {
		return 0, 0, fmt.Errorf("blackjack_payout %q must be a positive ratio", s)
	}
	return num, den, nil
}
