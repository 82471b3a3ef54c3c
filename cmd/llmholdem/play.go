package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/sanity-io/litter"

	"github.com/lox/llmholdem/internal/config"
	"github.com/lox/llmholdem/internal/game"
	"github.com/lox/llmholdem/internal/randutil"
)

type PlayCmd struct {
	Config      string   `arg:"" optional:"" type:"existingfile" help:"HCL match file"`
	Seat        []string `short:"s" help:"Seat as name=strategy or name=llm:model; repeat for each seat"`
	Rounds      int      `short:"r" help:"Override the target number of rounds"`
	Seed        int64    `help:"RNG seed (0 uses the match file or a random seed)"`
	NoColor     bool     `help:"Disable coloured output"`
	JSON        bool     `help:"Print the final snapshot as JSON instead of the narrative"`
	Dump        bool     `help:"Dump the final snapshot as Go values"`
	DatabaseURL string   `env:"DATABASE_URL" help:"Record the match in PostgreSQL, or in file://<dir> as JSON"`

	out io.Writer `kong:"-"`
}

func (c *PlayCmd) Run(ctx context.Context, logger *log.Logger) error {
	out := c.out
	if out == nil {
		out = os.Stdout
	}

	f, err := loadMatch(c.Config, c.Seat, c.Rounds)
	if err != nil {
		return err
	}
	cfg, err := f.GameConfig()
	if err != nil {
		return err
	}
	rng, seed := randutil.Resolve(resolveSeed(c.Seed, f))
	logger.Info("Starting match", "seats", len(f.Seats), "seed", seed)

	seats, err := f.BuildSeats(config.SeatDeps{
		Seed:      seed,
		Logger:    logger,
		NewClient: clientFactory(logger),
	})
	if err != nil {
		return err
	}

	bus := game.NewEventBus()
	g, err := game.NewGame(seats, cfg,
		game.WithRNG(rng),
		game.WithLogger(logger),
		game.WithEventBus(bus))
	if err != nil {
		return err
	}

	render := newNarrativeRenderer(out, c.NoColor)
	printed := 0
	flush := func() {
		lines := g.Table().Narrative.Since(printed)
		printed += len(lines)
		if !c.JSON {
			render.Lines(lines)
		}
	}
	unsubscribe := bus.Subscribe(game.SubscriberFunc(func(e game.GameEvent) {
		if e.EventType() == game.EventTypeRoundEnd {
			flush()
		}
	}))
	defer unsubscribe()

	_, playErr := g.Play(ctx)
	flush()
	snap := g.Snapshot()

	if c.DatabaseURL != "" && playErr == nil {
		st, err := openStore(ctx, c.DatabaseURL, logger)
		if err != nil {
			return err
		}
		defer st.Close()
		if err := st.SaveMatch(ctx, snap); err != nil {
			return fmt.Errorf("save match: %w", err)
		}
		logger.Info("Match recorded", "match", snap.ID)
	}

	switch {
	case c.JSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(snap); err != nil {
			return err
		}
	default:
		render.Stacks(snap)
	}
	if c.Dump {
		fmt.Fprintln(out, litter.Sdump(snap))
	}
	return playErr
}
