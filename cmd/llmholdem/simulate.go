package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lox/llmholdem/internal/config"
	"github.com/lox/llmholdem/internal/game"
	"github.com/lox/llmholdem/internal/randutil"
	"github.com/lox/llmholdem/internal/statistics"
)

type SimulateCmd struct {
	Config      string   `arg:"" optional:"" type:"existingfile" help:"HCL match file"`
	Seat        []string `short:"s" help:"Seat as name=strategy or name=llm:model; repeat for each seat"`
	Matches     int      `short:"n" default:"100" help:"Number of matches to play"`
	Parallel    int      `short:"p" default:"4" help:"Matches played concurrently"`
	Rounds      int      `short:"r" help:"Override the target number of rounds"`
	Seed        int64    `help:"Base RNG seed (0 uses the match file or a random seed)"`
	NoColor     bool     `help:"Disable coloured output"`
	DatabaseURL string   `env:"DATABASE_URL" help:"Record every match in PostgreSQL, or in file://<dir> as JSON"`

	out io.Writer `kong:"-"`
}

func (c *SimulateCmd) Run(ctx context.Context, logger *log.Logger) error {
	out := c.out
	if out == nil {
		out = os.Stdout
	}
	if c.Matches < 1 {
		return fmt.Errorf("--matches must be positive, got %d", c.Matches)
	}

	f, err := loadMatch(c.Config, c.Seat, c.Rounds)
	if err != nil {
		return err
	}
	cfg, err := f.GameConfig()
	if err != nil {
		return err
	}
	_, base := randutil.Resolve(resolveSeed(c.Seed, f))
	logger.Info("Starting simulation", "matches", c.Matches, "parallel", c.Parallel, "seed", base)

	st, err := openStore(ctx, c.DatabaseURL, logger)
	if err != nil {
		return err
	}
	defer st.Close()

	var (
		mu        sync.Mutex
		summaries = make([]statistics.Summary, len(f.Seats))
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(c.Parallel, 1))
	for i := range c.Matches {
		seed := randutil.Derive(base, i)
		g.Go(func() error {
			seats, err := f.BuildSeats(config.SeatDeps{
				Seed:      seed,
				Logger:    logger,
				NewClient: clientFactory(logger),
			})
			if err != nil {
				return err
			}
			match, err := game.NewGame(seats, cfg,
				game.WithRNG(randutil.New(seed)),
				game.WithLogger(logger.With("n", i)))
			if err != nil {
				return err
			}
			if _, err := match.Play(gctx); err != nil {
				return fmt.Errorf("match %d (seed %d): %w", i, seed, err)
			}

			snap := match.Snapshot()
			if err := st.SaveMatch(gctx, snap); err != nil {
				return fmt.Errorf("save match %d: %w", i, err)
			}
			mu.Lock()
			for seat, deltas := range snap.Statistics.MoneyGained {
				for _, d := range deltas {
					summaries[seat].Add(float64(d))
				}
			}
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	render := newNarrativeRenderer(out, c.NoColor)
	fmt.Fprintf(out, "%d matches, base seed %d\n\n", c.Matches, base)
	fmt.Fprintf(out, "%-16s %7s %9s %9s %21s %8s\n", "player", "rounds", "mean", "stddev", "95% CI", "median")
	for seat, s := range summaries {
		lo, hi := s.ConfidenceInterval95()
		fmt.Fprintf(out, "%-16s %7d %+9.2f %9.2f [%+8.2f, %+8.2f] %+8.1f\n",
			f.Seats[seat].Name, s.Rounds, s.Mean(), s.StdDev(), lo, hi, s.Median())
	}

	standings, err := st.Standings(ctx)
	if err != nil {
		return err
	}
	render.Standings(standings)
	return nil
}
