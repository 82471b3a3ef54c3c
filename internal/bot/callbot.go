package bot

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/lox/llmholdem/internal/game"
)

// CallBot is a calling station: it checks when it can and calls otherwise
type CallBot struct {
	logger *log.Logger
}

// NewCallBot creates a new CallBot instance
func NewCallBot(logger *log.Logger) *CallBot {
	return &CallBot{logger: logger}
}

func (c *CallBot) ProposeMove(_ context.Context, p game.Prompt) (game.Move, error) {
	m := passive(p.View)
	c.logger.Debug("call-bot", "seat", p.Seat, "move", m, "owed", p.View.Owed)
	return m, nil
}
