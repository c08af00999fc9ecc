package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/cardtable/blackjack/internal/fileutil"
	"github.com/cardtable/blackjack/internal/game"
	"github.com/cardtable/blackjack/internal/sim"
)

type SimulateCmd struct {
	Rounds  int    `default:"10000" help:"Total rounds to play"`
	Workers int    `default:"4" help:"Parallel tables"`
	Seed    int64  `default:"0" help:"RNG seed (0 for random)"`
	Bank    *int   `help:"Starting bankroll per table (defaults to the rules' starting bank)"`
	Rules   string `type:"path" help:"HCL rules file overriding the table defaults"`
	Output  string `type:"path" help:"Write aggregated statistics to a JSON file"`
	Verbose bool   `help:"Verbose logging"`
}

func (c *SimulateCmd) Run() error {
	rules, err := game.LoadRules(c.Rules)
	if err != nil {
		return fmt.Errorf("loading rules: %w", err)
	}
	if c.Workers < 1 {
		return fmt.Errorf("need at least one worker")
	}

	logger := log.NewWithOptions(io.Discard, log.Options{})
	if c.Verbose {
		logger = log.NewWithOptions(os.Stderr, log.Options{Level: log.DebugLevel})
	}

	bank := resolveBank(c.Bank, rules)
	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	fmt.Printf("Simulating %d rounds across %d tables (seed %d)...\n", c.Rounds, c.Workers, seed)
	start := time.Now()

	// Each worker plays its share at its own table with an offset seed, so
	// results stay reproducible for a given seed and worker count.
	g, ctx := errgroup.WithContext(context.Background())
	results := make(chan *sim.Statistics, c.Workers)
	perWorker := c.Rounds / c.Workers
	remainder := c.Rounds % c.Workers

	for w := 0; w < c.Workers; w++ {
		rounds := perWorker
		if w < remainder {
			rounds++
		}
		if rounds == 0 {
			continue
		}
		workerSeed := seed + int64(w)*1_000_003

		g.Go(func() error {
			runner := sim.New(sim.Config{
				Rules:  rules,
				Rounds: rounds,
				Seed:   workerSeed,
				Bank:   bank,
				Logger: logger,
			})
			stats, _, err := runner.Run(ctx)
			if err != nil {
				return err
			}
			results <- stats
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}
	close(results)

	total := &sim.Statistics{}
	for stats := range results {
		total.Merge(stats)
	}

	if c.Output != "" {
		data, err := json.MarshalIndent(total, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding statistics: %w", err)
		}
		if err := fileutil.WriteFileAtomic(c.Output, data, 0o644); err != nil {
			return fmt.Errorf("writing statistics: %w", err)
		}
	}

	fmt.Println()
	fmt.Println(total.Summary())
	fmt.Printf("\nCompleted in %s (%.0f rounds/sec)\n",
		time.Since(start).Round(time.Millisecond),
		float64(total.Rounds)/time.Since(start).Seconds())
	return nil
}
