package main

import (
	"github.com/alecthomas/kong"

	"github.com/cardtable/blackjack/internal/game"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Play     PlayCmd          `cmd:"" default:"1" help:"Sit down at the table"`
	Simulate SimulateCmd      `cmd:"" help:"Play unattended rounds and report statistics"`
}

// resolveBank picks the starting bankroll: an explicit --bank flag wins,
// otherwise the rules file's starting bank applies.
func resolveBank(flag *int, rules game.Rules) int {
	if flag != nil {
		return *flag
	}
	return rules.StartingBank
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("blackjack"),
		kong.Description("Casino blackjack at a 64x24 terminal table"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
