package game

import (
	"context"
	"io"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/lox/llmholdem/poker"
)

func discardLogger() *log.Logger {
	return log.New(io.Discard)
}

// passiveMove checks when it can and calls otherwise
func passiveMove(v SeatView) Move {
	if v.CanCheck() {
		return CheckMove()
	}
	return CallMove()
}

// scriptAgent replays moves in order, then plays passively. Every prompt is kept.
type scriptAgent struct {
	mu      sync.Mutex
	moves   []Move
	errs    []error
	prompts []Prompt
}

func script(moves ...Move) *scriptAgent {
	return &scriptAgent{moves: moves}
}

func (s *scriptAgent) ProposeMove(_ context.Context, p Prompt) (Move, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prompts = append(s.prompts, p)
	if len(s.errs) > 0 {
		err := s.errs[0]
		s.errs = s.errs[1:]
		if err != nil {
			return Move{}, err
		}
	}
	if len(s.moves) > 0 {
		m := s.moves[0]
		s.moves = s.moves[1:]
		return m, nil
	}
	return passiveMove(p.View), nil
}

func (s *scriptAgent) calls() []Prompt {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Prompt(nil), s.prompts...)
}

var passive = AgentFunc(func(_ context.Context, p Prompt) (Move, error) {
	return passiveMove(p.View), nil
})

// shove raises its whole stack whenever it may, otherwise calls
var shove = AgentFunc(func(_ context.Context, p Prompt) (Move, error) {
	if p.View.CanRaise() {
		return RaiseMove(p.View.Money)
	}
	return passiveMove(p.View), nil
})

func raise(amount int) Move {
	return MustMove(Raise, amount)
}

func seatsOf(agents ...Agent) []Seat {
	seats := make([]Seat, len(agents))
	for i, a := range agents {
		seats[i] = Seat{Name: string(rune('A' + i)), Agent: a}
	}
	return seats
}

// testTable builds a table mid-round with the given stacks and call amount
func testTable(callAmount int, stacks ...int) *Table {
	names := make([]string, len(stacks))
	for i := range stacks {
		names[i] = string(rune('A' + i))
	}
	t := NewTable(names, stacks)
	t.Round.CallAmount = callAmount
	return t
}

func newTestEngine(cfg Config, agents ...Agent) *BettingEngine {
	return NewBettingEngine(cfg, agents, NewEventBus(), discardLogger())
}

// stackedTwoSeat deals hole cards to seats 0 and 1, then the five board cards
func stackedTwoSeat(hole0, hole1, board string) *poker.Deck {
	cards := poker.MustParseCards(hole0 + " " + hole1 + " " + board)
	return poker.NewStackedDeck(cards)
}

type recorder struct {
	mu     sync.Mutex
	events []GameEvent
}

func (r *recorder) OnEvent(e GameEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) ofType(et EventType) []GameEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []GameEvent
	for _, e := range r.events {
		if e.EventType() == et {
			out = append(out, e)
		}
	}
	return out
}
