package main

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/lox/llmholdem/internal/bot"
	"github.com/lox/llmholdem/internal/config"
	"github.com/lox/llmholdem/internal/llm"
	"github.com/lox/llmholdem/internal/store"
)

const fileScheme = "file://"

var defaultSeats = []string{"Alice=random", "Bob=random"}

// loadMatch reads a match file, or builds one from --seat flags
func loadMatch(path string, seatFlags []string, rounds int) (*config.File, error) {
	var (
		f   *config.File
		err error
	)
	switch {
	case path != "" && len(seatFlags) > 0:
		return nil, errors.New("give either a match file or --seat flags, not both")
	case path != "":
		f, err = config.Load(path)
	default:
		if len(seatFlags) == 0 {
			seatFlags = defaultSeats
		}
		seats := make([]config.SeatConfig, len(seatFlags))
		for i, spec := range seatFlags {
			if seats[i], err = config.ParseSeat(spec); err != nil {
				return nil, err
			}
		}
		f, err = config.New(nil, seats)
	}
	if err != nil {
		return nil, err
	}

	if rounds > 0 {
		f.Match.TargetRounds = &rounds
		if err := f.Validate(); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// resolveSeed prefers the flag, then the match file
func resolveSeed(flag int64, f *config.File) *int64 {
	if flag != 0 {
		return &flag
	}
	return f.Seed()
}

func clientFactory(logger *log.Logger) config.ClientFactory {
	return func(model string) (bot.Completer, error) {
		cfg, err := llm.ConfigFromEnv(model)
		if err != nil {
			return nil, err
		}
		return llm.NewClient(cfg, nil, logger), nil
	}
}

// openStore picks a store from dsn: empty keeps results in memory,
// file://<dir> writes one JSON file per match, anything else is PostgreSQL.
func openStore(ctx context.Context, dsn string, logger *log.Logger) (store.Store, error) {
	switch {
	case dsn == "":
		return store.NewMemoryStore(nil), nil
	case strings.HasPrefix(dsn, fileScheme):
		return store.OpenFileStore(strings.TrimPrefix(dsn, fileScheme), nil)
	}
	pg, err := store.OpenPostgres(ctx, dsn, logger)
	if err != nil {
		return nil, err
	}
	if err := pg.Migrate(ctx); err != nil {
		pg.Close()
		return nil, err
	}
	return pg, nil
}
