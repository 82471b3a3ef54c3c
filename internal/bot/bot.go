// Package bot provides the decision providers that sit in a seat: simple
// rule-based strategies used for baselines and tests, an LLM-backed agent,
// and a wrapper bounding how long any provider may think.
package bot

import (
	"errors"
	"fmt"
	"io"
	rand "math/rand/v2"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/lox/llmholdem/internal/game"
)

// ErrUnknownStrategy is returned by New for names it does not recognise
var ErrUnknownStrategy = errors.New("unknown strategy")

// Options carries the dependencies a strategy may need
type Options struct {
	RNG    *rand.Rand
	Logger *log.Logger
	// Completer backs the "llm" strategy
	Completer Completer
}

var strategies = map[string]func(Options) (game.Agent, error){
	"random": func(o Options) (game.Agent, error) { return NewRandBot(o.RNG, o.Logger), nil },
	"call":   func(o Options) (game.Agent, error) { return NewCallBot(o.Logger), nil },
	"fold":   func(o Options) (game.Agent, error) { return NewFoldBot(o.Logger), nil },
	"maniac": func(o Options) (game.Agent, error) { return NewManiacBot(o.RNG, o.Logger), nil },
	"tight":  func(o Options) (game.Agent, error) { return NewTAGBot(o.RNG, o.Logger), nil },
	"llm": func(o Options) (game.Agent, error) {
		if o.Completer == nil {
			return nil, errors.New("llm strategy needs a model client")
		}
		return NewLLMBot(o.Completer, o.Logger), nil
	},
}

var aliases = map[string]string{
	"rnd":             "random",
	"rand":            "random",
	"calling-station": "call",
	"calling":         "call",
	"cs":              "call",
	"aggressive":      "maniac",
	"aggro":           "maniac",
	"tag":             "tight",
	"model":           "llm",
}

// Canonical resolves an alias to its strategy name
func Canonical(name string) (string, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if canonical, ok := aliases[name]; ok {
		name = canonical
	}
	_, ok := strategies[name]
	return name, ok
}

// New builds the named strategy. Missing RNG and Logger options are filled
// with a random seed and a discarding logger.
func New(name string, opts Options) (game.Agent, error) {
	canonical, ok := Canonical(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %s)", ErrUnknownStrategy, name, strings.Join(Strategies(), ", "))
	}
	if opts.RNG == nil {
		opts.RNG = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	return strategies[canonical](opts)
}

// Strategies lists the canonical strategy names
func Strategies() []string {
	names := make([]string, 0, len(strategies))
	for name := range strategies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// passive checks when nothing is owed and calls otherwise
func passive(v game.SeatView) game.Move {
	if v.CanCheck() {
		return game.CheckMove()
	}
	return game.CallMove()
}
