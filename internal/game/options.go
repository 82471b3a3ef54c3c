package game

import (
	rand "math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lox/llmholdem/poker"
)

// Option configures a Game during creation
type Option func(*gameOptions)

type gameOptions struct {
	id     string
	rng    *rand.Rand
	logger *log.Logger
	bus    EventBus
	deck   *poker.Deck
}

// WithID sets the match id instead of generating one
func WithID(id string) Option {
	return func(o *gameOptions) { o.id = id }
}

// WithRNG sets the random source used for every shuffle in the match
func WithRNG(rng *rand.Rand) Option {
	return func(o *gameOptions) { o.rng = rng }
}

// WithLogger sets the logger; the default discards output
func WithLogger(logger *log.Logger) Option {
	return func(o *gameOptions) { o.logger = logger }
}

// WithEventBus publishes match events to bus
func WithEventBus(bus EventBus) Option {
	return func(o *gameOptions) { o.bus = bus }
}

// WithDeck replaces the shuffled deck, e.g. with poker.NewStackedDeck to
// fix every card dealt in tests
func WithDeck(deck *poker.Deck) Option {
	return func(o *gameOptions) { o.deck = deck }
}
