package bot

import (
	"context"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lox/llmholdem/internal/game"
)

// ManiacBot is an extremely aggressive bot that raises and shoves often
type ManiacBot struct {
	rng    *rand.Rand
	logger *log.Logger
}

// NewManiacBot creates a new ManiacBot instance
func NewManiacBot(rng *rand.Rand, logger *log.Logger) *ManiacBot {
	return &ManiacBot{rng: rng, logger: logger}
}

func (m *ManiacBot) ProposeMove(_ context.Context, p game.Prompt) (game.Move, error) {
	v := p.View
	roll := m.rng.Float64()

	if v.CanRaise() {
		shortStack := v.Money <= 5*v.MinRaise()
		switch {
		case shortStack && roll < 0.85, roll < 0.3:
			m.logger.Debug("maniac shove", "seat", p.Seat, "amount", v.Money)
			return game.RaiseMove(v.Money)
		case roll < 0.85:
			// three quarters of the way from the minimum raise to the stack
			amount := v.MinRaise() + (v.Money-v.MinRaise())*3/4
			m.logger.Debug("maniac big raise", "seat", p.Seat, "amount", amount)
			return game.RaiseMove(amount)
		}
	}

	if v.CanCheck() {
		return game.CheckMove(), nil
	}
	if roll < 0.9 {
		return game.CallMove(), nil
	}
	m.logger.Debug("maniac fold", "seat", p.Seat)
	return game.FoldMove(), nil
}
