package bot

import (
	"context"
	"errors"
	"sync"

	"github.com/lox/llmholdem/internal/game"
)

// ErrScriptExhausted is returned once a ScriptedBot has played every move
var ErrScriptExhausted = errors.New("scripted moves exhausted")

// ScriptedBot replays a fixed list of moves in order, one per request,
// including requests that retry a rejected move.
type ScriptedBot struct {
	mu    sync.Mutex
	moves []game.Move
	next  int
}

// NewScriptedBot creates a bot that plays moves in order
func NewScriptedBot(moves ...game.Move) *ScriptedBot {
	return &ScriptedBot{moves: moves}
}

func (s *ScriptedBot) ProposeMove(_ context.Context, _ game.Prompt) (game.Move, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.next >= len(s.moves) {
		return game.Move{}, ErrScriptExhausted
	}
	m := s.moves[s.next]
	s.next++
	return m, nil
}

// Remaining reports how many moves have not been played yet
func (s *ScriptedBot) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.moves) - s.next
}
