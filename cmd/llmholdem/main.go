package main

import (
	"context"

	"github.com/alecthomas/kong"

	"github.com/lox/llmholdem/internal/config"
)

// Globals are flags shared by every command
type Globals struct {
	LogLevel string   `short:"l" help:"Log level: debug, info, warn or error (default warn)"`
	Env      []string `help:"Environment files holding model credentials (default ./.env when present)" type:"existingfile"`
}

type CLI struct {
	Globals

	Play     PlayCmd     `cmd:"" help:"Play one match and print its narrative"`
	Simulate SimulateCmd `cmd:"" help:"Play many independent matches and report standings"`
	Serve    ServeCmd    `cmd:"" help:"Serve the results API and live event feed"`
	Migrate  MigrateCmd  `cmd:"" help:"Apply the PostgreSQL schema"`
}

func main() {
	// .env is read first so it can supply flag defaults such as DATABASE_URL
	envErr := config.LoadEnv()

	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("llmholdem"),
		kong.Description("Texas Hold'em arena for language models and scripted bots"),
		kong.UsageOnError(),
	)

	logger := newLogger(cli.LogLevel)
	if envErr != nil {
		logger.Fatal("Failed to load .env", "error", envErr)
	}
	if len(cli.Env) > 0 {
		if err := config.LoadEnv(cli.Env...); err != nil {
			logger.Fatal("Failed to load environment", "error", err)
		}
	}

	ctx, stop := signalContext(logger)
	defer stop()

	kctx.BindTo(ctx, (*context.Context)(nil))
	if err := kctx.Run(&cli.Globals, logger); err != nil {
		logger.Error("Command failed", "error", err)
		stop()
		kctx.Exit(1)
	}
}
