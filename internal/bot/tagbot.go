package bot

import (
	"context"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lox/llmholdem/internal/game"
)

const tagEquitySamples = 300

// TAGBot is a tight aggressive bot: it plays few hands preflop, raises the
// strong ones and folds weak hands facing a bet after the flop.
type TAGBot struct {
	rng    *rand.Rand
	logger *log.Logger
}

// NewTAGBot creates a new TAGBot instance
func NewTAGBot(rng *rand.Rand, logger *log.Logger) *TAGBot {
	return &TAGBot{rng: rng, logger: logger}
}

func (t *TAGBot) ProposeMove(_ context.Context, p game.Prompt) (game.Move, error) {
	v := p.View
	strength := t.strength(v)
	t.logger.Debug("TAG hand strength", "seat", p.Seat, "street", v.Street, "strength", strength)

	switch strength {
	case VeryStrong:
		if v.CanRaise() {
			// a quarter of the way from the minimum raise to the stack
			return game.RaiseMove(v.MinRaise() + (v.Money-v.MinRaise())/4)
		}
		return passive(v), nil
	case Strong:
		if v.CanRaise() && v.Owed == 0 {
			return game.RaiseMove(min(v.Money, max(v.MinRaise(), v.Pot/2)))
		}
		return passive(v), nil
	case Medium:
		return passive(v), nil
	}

	if v.CanCheck() {
		return game.CheckMove(), nil
	}
	// weak hands only continue when the price is small
	if strength == Weak && v.Owed*5 <= v.Pot && t.rng.Float64() < 0.5 {
		return game.CallMove(), nil
	}
	return game.FoldMove(), nil
}

func (t *TAGBot) strength(v game.SeatView) HandStrength {
	if v.Street == game.Preflop {
		return PreflopStrength(v.Hand)
	}
	opponents := 0
	for _, o := range v.Opponents {
		if o.IsActive {
			opponents++
		}
	}
	equity := EstimateEquity(v.Hand, v.CommunityCards, max(opponents, 1), tagEquitySamples, t.rng)
	return EquityToStrength(equity, opponents)
}
