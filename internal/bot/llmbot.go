package bot

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/lox/llmholdem/internal/game"
	"github.com/lox/llmholdem/internal/llm"
	"github.com/lox/llmholdem/poker"
)

// Completer sends one system and user message to a chat model. *llm.Client
// implements it.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// SystemPrompt is sent ahead of every decision request
const SystemPrompt = `You are a poker player playing texas holdem poker against other players.
Your goal is to win the game consisting of multiple rounds by any strategy you can devise.

Every request describes what has happened so far; your own name is marked "(you)".
Reply with a single JSON object and nothing else:
{"action": "fold" | "check" | "call" | "raise", "amount": <integer>, "reasoning": "<one sentence>"}
"amount" is only read for a raise and is the total you put in this turn, including what you owe to call.`

// LLMBot asks a chat model for each move
type LLMBot struct {
	client Completer
	logger *log.Logger
}

// NewLLMBot creates a bot backed by client
func NewLLMBot(client Completer, logger *log.Logger) *LLMBot {
	return &LLMBot{client: client, logger: logger}
}

func (b *LLMBot) ProposeMove(ctx context.Context, p game.Prompt) (game.Move, error) {
	text, err := b.client.Complete(ctx, SystemPrompt, BuildPrompt(p))
	if err != nil {
		return game.Move{}, err
	}
	d, err := llm.ParseDecision(text)
	if err != nil {
		b.logger.Warn("Unparseable model reply", "seat", p.Seat, "player", p.Name, "reply", text)
		return game.Move{}, err
	}
	b.logger.Debug("Model decision", "seat", p.Seat, "player", p.Name, "action", d.Action, "amount", d.Amount, "reasoning", d.Reasoning)
	return game.ParseMove(d.Action, d.Amount)
}

// BuildPrompt renders the user message for one decision: the narrative so
// far, the seat's private view, and the rejection of its previous attempt.
func BuildPrompt(p game.Prompt) string {
	v := p.View
	var b strings.Builder

	b.WriteString("Here is what has happened so far:\n")
	b.WriteString(p.Narrative)
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "You are Player %s. Your cards are %s.\n", p.Name, poker.CardNames(v.Hand))
	if len(v.CommunityCards) > 0 {
		fmt.Fprintf(&b, "The community cards are %s.\n", poker.CardNames(v.CommunityCards))
	}
	fmt.Fprintf(&b, "The pot is %d. The current call amount is %d and you have bet %d, so you owe %d.\n", v.Pot, v.CallAmount, v.Bet, v.Owed)
	fmt.Fprintf(&b, "You have %d dollars.\n", v.Money)
	if v.CanRaise() {
		fmt.Fprintf(&b, "You may raise by any amount from %d to %d.\n", v.MinRaise(), v.Money)
	} else {
		b.WriteString("You may not raise.\n")
	}
	for _, o := range v.Opponents {
		status := "folded or out"
		switch {
		case o.IsAllIn:
			status = "all in"
		case o.IsActive:
			status = "in the hand"
		}
		fmt.Fprintf(&b, "Player %s has %d dollars, has bet %d and is %s.\n", o.Name, o.Money, o.Bet, status)
	}

	if p.PriorError != "" {
		fmt.Fprintf(&b, "\nYour previous move was rejected: %s\n", p.PriorError)
	}
	b.WriteString("\nWhat is your move?")
	return b.String()
}
