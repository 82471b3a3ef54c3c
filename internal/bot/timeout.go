package bot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/coder/quartz"

	"github.com/lox/llmholdem/internal/game"
)

// ErrTimeout is returned when a wrapped agent does not answer in time
var ErrTimeout = errors.New("decision timed out")

type timeoutAgent struct {
	agent   game.Agent
	timeout time.Duration
	clock   quartz.Clock
}

// WithTimeout bounds every ProposeMove call on agent. When the clock fires
// first the call's context is cancelled and ErrTimeout returned, which the
// engine treats as a failed attempt. A non-positive timeout returns agent
// unchanged.
func WithTimeout(agent game.Agent, timeout time.Duration, clock quartz.Clock) game.Agent {
	if timeout <= 0 {
		return agent
	}
	return &timeoutAgent{agent: agent, timeout: timeout, clock: clock}
}

type proposal struct {
	move game.Move
	err  error
}

func (t *timeoutAgent) ProposeMove(ctx context.Context, p game.Prompt) (game.Move, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	timeoutFired := make(chan struct{})
	timer := t.clock.AfterFunc(t.timeout, func() {
		close(timeoutFired)
	}, "bot", "timeout")
	defer timer.Stop()

	done := make(chan proposal, 1)
	go func() {
		m, err := t.agent.ProposeMove(ctx, p)
		done <- proposal{move: m, err: err}
	}()

	select {
	case r := <-done:
		return r.move, r.err
	case <-timeoutFired:
		return game.Move{}, fmt.Errorf("%w after %s", ErrTimeout, t.timeout)
	case <-ctx.Done():
		return game.Move{}, ctx.Err()
	}
}
