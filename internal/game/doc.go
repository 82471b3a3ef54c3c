// Package game implements a multi-round Texas Hold'em match between seated agents.
//
// The main type is Game, which owns the table (per-seat PlayerState plus the
// shared RoundState), drives each round through blinds, dealing, four betting
// streets and showdown, and records every outcome into statistics.
//
// # Basic Usage
//
//	seats := []game.Seat{
//	    {Name: "Alice", Agent: bot.NewCallBot(logger)},
//	    {Name: "Bob", Agent: bot.NewRandBot(rng, logger)},
//	}
//	g, err := game.NewGame(seats, game.DefaultConfig(), game.WithRNG(rng))
//	if err != nil {
//	    return err
//	}
//	stats, err := g.Play(ctx)
//
// # Decisions
//
// Agents never touch game state. Each call to Agent.ProposeMove receives a
// Prompt holding the running narrative (with the agent's own name marked
// "(you)"), the reason its previous attempt was rejected, and a structured
// SeatView. The BettingEngine validates the Move and either applies it or
// feeds the rejection back, up to Config.MaxRetriesPerMove attempts, after
// which the seat is folded.
//
// # Cancellation
//
// The context passed to PlayRound and Play is checked between seat moves.
// A cancelled round is voided: bets are refunded and nothing is recorded.
//
// # Deterministic Testing
//
// Pass WithRNG(randutil.New(seed)) to make shuffles reproducible, and use
// scripted agents to fix every decision.
package game
