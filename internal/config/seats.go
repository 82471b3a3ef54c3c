package config

import (
	"fmt"
	"io"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/llmholdem/internal/bot"
	"github.com/lox/llmholdem/internal/game"
	"github.com/lox/llmholdem/internal/randutil"
)

// ClientFactory returns a model client for the llm strategy
type ClientFactory func(model string) (bot.Completer, error)

// SeatDeps are the runtime dependencies needed to turn seat blocks into agents
type SeatDeps struct {
	// Seed derives one independent random stream per seat
	Seed      int64
	Logger    *log.Logger
	Clock     quartz.Clock
	NewClient ClientFactory
}

// BuildSeats creates an agent for every seat block. Agents are wrapped with
// the match move timeout when one is set.
func (f *File) BuildSeats(deps SeatDeps) ([]game.Seat, error) {
	cfg, err := f.GameConfig()
	if err != nil {
		return nil, err
	}
	if deps.Logger == nil {
		deps.Logger = log.New(io.Discard)
	}
	if deps.Clock == nil {
		deps.Clock = quartz.NewReal()
	}

	seats := make([]game.Seat, len(f.Seats))
	for i, s := range f.Seats {
		opts := bot.Options{
			RNG:    rngFor(deps.Seed, i),
			Logger: deps.Logger.With("seat", s.Name),
		}
		if strategy, _ := bot.Canonical(s.Strategy); strategy == "llm" {
			if deps.NewClient == nil {
				return nil, fmt.Errorf("seat %q uses a model but no client is configured", s.Name)
			}
			client, err := deps.NewClient(s.Model)
			if err != nil {
				return nil, fmt.Errorf("seat %q: %w", s.Name, err)
			}
			opts.Completer = client
		}

		agent, err := bot.New(s.Strategy, opts)
		if err != nil {
			return nil, fmt.Errorf("seat %q: %w", s.Name, err)
		}
		seats[i] = game.Seat{Name: s.Name, Agent: bot.WithTimeout(agent, cfg.MoveTimeout, deps.Clock)}
	}
	return seats, nil
}

func rngFor(seed int64, seat int) *rand.Rand {
	return randutil.New(randutil.Derive(seed, seat+1))
}
