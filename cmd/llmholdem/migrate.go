package main

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/lox/llmholdem/internal/store"
)

type MigrateCmd struct {
	DatabaseURL string `env:"DATABASE_URL" required:"" help:"PostgreSQL connection string"`
}

func (c *MigrateCmd) Run(ctx context.Context, logger *log.Logger) error {
	pg, err := store.OpenPostgres(ctx, c.DatabaseURL, logger)
	if err != nil {
		return err
	}
	defer pg.Close()
	return pg.Migrate(ctx)
}
