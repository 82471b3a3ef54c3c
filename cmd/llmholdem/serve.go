package main

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/lox/llmholdem/internal/config"
	"github.com/lox/llmholdem/internal/server"
)

type ServeCmd struct {
	Config      string `short:"c" type:"existingfile" help:"HCL file whose server block supplies defaults"`
	Addr        string `short:"a" help:"Address to listen on (default from the config file, then localhost:8080)"`
	DatabaseURL string `env:"DATABASE_URL" help:"PostgreSQL connection string or file://<dir>; results are kept in memory when unset"`
	Seed        int64  `help:"Seed for random games (0 for random)"`
}

func (c *ServeCmd) Run(ctx context.Context, globals *Globals, logger *log.Logger) error {
	addr, dsn := config.DefaultAddress, ""
	if c.Config != "" {
		f, err := config.Load(c.Config)
		if err != nil {
			return err
		}
		addr, dsn = f.Server.Address, f.Server.DatabaseURL
		if globals.LogLevel == "" {
			logger.SetLevel(parseLevel(f.Server.LogLevel))
		}
	}
	if c.Addr != "" {
		addr = c.Addr
	}
	if c.DatabaseURL != "" {
		dsn = c.DatabaseURL
	}

	st, err := openStore(ctx, dsn, logger)
	if err != nil {
		return err
	}
	defer st.Close()

	opts := server.Options{Store: st, Logger: logger}
	if c.Seed != 0 {
		opts.Seed = &c.Seed
	}
	return server.New(opts).ListenAndServe(ctx, addr)
}
