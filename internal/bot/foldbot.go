package bot

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/lox/llmholdem/internal/game"
)

// FoldBot always folds, except when it can check for free
type FoldBot struct {
	logger *log.Logger
}

// NewFoldBot creates a new FoldBot instance
func NewFoldBot(logger *log.Logger) *FoldBot {
	return &FoldBot{logger: logger}
}

func (f *FoldBot) ProposeMove(_ context.Context, p game.Prompt) (game.Move, error) {
	if p.View.CanCheck() {
		return game.CheckMove(), nil
	}
	f.logger.Debug("fold-bot folding", "seat", p.Seat, "owed", p.View.Owed)
	return game.FoldMove(), nil
}
