package bot

import (
	"context"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lox/llmholdem/internal/game"
)

// RandBot picks fold, check, call or raise uniformly, with a raise amount
// anywhere up to its stack. It does not filter illegal choices; the engine
// rejects them and asks again.
type RandBot struct {
	rng    *rand.Rand
	logger *log.Logger
}

// NewRandBot creates a new RandBot instance
func NewRandBot(rng *rand.Rand, logger *log.Logger) *RandBot {
	return &RandBot{rng: rng, logger: logger}
}

func (r *RandBot) ProposeMove(_ context.Context, p game.Prompt) (game.Move, error) {
	actions := []game.Action{game.Fold, game.Check, game.Call, game.Raise}
	action := actions[r.rng.IntN(len(actions))]

	amount := 0
	if action == game.Raise && p.View.Money > 0 {
		amount = 1 + r.rng.IntN(p.View.Money)
	}
	r.logger.Debug("rand-bot random action", "seat", p.Seat, "action", action, "amount", amount)
	return game.NewMove(action, amount)
}
