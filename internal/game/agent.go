package game

import (
	"context"

	"github.com/lox/llmholdem/poker"
)

// SeatView is the structured, read-only state offered alongside the narrative.
// Only the acting seat's hole cards are included.
type SeatView struct {
	Seat           int          `json:"seat"`
	Name           string       `json:"name"`
	Street         Street       `json:"street"`
	Hand           []poker.Card `json:"hand"`
	CommunityCards []poker.Card `json:"community_cards"`
	Pot            int          `json:"pot"`
	CallAmount     int          `json:"call_amount"`
	Bet            int          `json:"bet"`
	Owed           int          `json:"owed"`
	Money          int          `json:"money"`
	RaisesLeft     int          `json:"raises_left"`
	Opponents      []Opponent   `json:"opponents"`
}

// Opponent is the public state of another seat
type Opponent struct {
	Seat     int    `json:"seat"`
	Name     string `json:"name"`
	Money    int    `json:"money"`
	Bet      int    `json:"bet"`
	IsActive bool   `json:"is_active"`
	IsAllIn  bool   `json:"is_all_in"`
}

// CanCheck reports whether a check would be accepted
func (v SeatView) CanCheck() bool { return v.Owed == 0 }

// CanRaise reports whether some raise amount would be accepted
func (v SeatView) CanRaise() bool { return v.RaisesLeft > 0 && v.Money > v.Owed }

// MinRaise is the smallest accepted raise amount
func (v SeatView) MinRaise() int { return v.Owed + 1 }

// Prompt is everything an agent is told when asked for a move
type Prompt struct {
	Seat       int      `json:"seat"`
	Name       string   `json:"name"`
	Narrative  string   `json:"narrative"`
	PriorError string   `json:"prior_error,omitempty"`
	Attempt    int      `json:"attempt"`
	View       SeatView `json:"view"`
}

// Agent proposes moves for a seat. Agents receive an immutable prompt and
// return a move; the betting engine alone mutates state. Returning an error
// counts as a failed attempt.
type Agent interface {
	ProposeMove(ctx context.Context, prompt Prompt) (Move, error)
}

// AgentFunc adapts a function to the Agent interface
type AgentFunc func(ctx context.Context, prompt Prompt) (Move, error)

func (f AgentFunc) ProposeMove(ctx context.Context, prompt Prompt) (Move, error) {
	return f(ctx, prompt)
}

// Seat binds a player name to the agent deciding for it
type Seat struct {
	Name  string
	Agent Agent
}
