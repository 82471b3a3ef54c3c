package game

import (
	"fmt"
	"time"
)

// TiePolicy decides how a pot is awarded when several seats hold equal hands
type TiePolicy string

const (
	// TieSplit shares the pot equally between tied seats. Odd chips go one
	// at a time to the tied seats in ascending seat order.
	TieSplit TiePolicy = "split"
	// TieFirstSeat awards the whole pot to the lowest tied seat index
	TieFirstSeat TiePolicy = "first"
)

// Termination decides how the round and elimination targets combine when
// deciding whether to play another round.
type Termination string

const (
	// ContinueWhileBoth keeps playing while rounds < TargetRounds AND
	// eliminations < TargetEliminations, so reaching either target ends the match.
	ContinueWhileBoth Termination = "and"
	// ContinueWhileEither keeps playing while either target is still unmet
	ContinueWhileEither Termination = "or"
)

const (
	DefaultSmallBlind         = 10
	DefaultBigBlind           = 20
	DefaultMaxRaisesPerStreet = 3
	DefaultMaxRetriesPerMove  = 3
	DefaultStack              = 100
)

// Config is fixed for the lifetime of a match
type Config struct {
	SmallBlind         int           `json:"small_blind"`
	BigBlind           int           `json:"big_blind"`
	MaxRaisesPerStreet int           `json:"max_raises_per_street"`
	MaxRetriesPerMove  int           `json:"max_retries_per_move"`
	TargetRounds       int           `json:"target_num_rounds"`
	TargetEliminations int           `json:"target_num_eliminations"`
	Stacks             []int         `json:"stacks,omitempty"` // per seat; empty means DefaultStack each
	Termination        Termination   `json:"termination"`
	TiePolicy          TiePolicy     `json:"tie_policy"`
	RotateBlinds       bool          `json:"rotate_blinds"`
	MoveTimeout        time.Duration `json:"move_timeout,omitempty"` // applied by hosts that wrap agents
}

// DefaultConfig returns a heads-up friendly configuration for a single round
func DefaultConfig() Config {
	return Config{
		SmallBlind:         DefaultSmallBlind,
		BigBlind:           DefaultBigBlind,
		MaxRaisesPerStreet: DefaultMaxRaisesPerStreet,
		MaxRetriesPerMove:  DefaultMaxRetriesPerMove,
		TargetRounds:       1,
		TargetEliminations: 1,
		Termination:        ContinueWhileBoth,
		TiePolicy:          TieSplit,
	}
}

// StartingStacks returns the stack for each of n seats
func (c Config) StartingStacks(n int) []int {
	stacks := make([]int, n)
	for i := range stacks {
		if len(c.Stacks) == n {
			stacks[i] = c.Stacks[i]
		} else {
			stacks[i] = DefaultStack
		}
	}
	return stacks
}

// Validate checks the configuration for a table of the given size
func (c Config) Validate(seats int) error {
	if seats < 2 {
		return fmt.Errorf("%w: at least 2 seats required, got %d", ErrInvalidConfig, seats)
	}
	if c.SmallBlind < 0 || c.BigBlind <= 0 {
		return fmt.Errorf("%w: blinds must be positive (small %d, big %d)", ErrInvalidConfig, c.SmallBlind, c.BigBlind)
	}
	if c.SmallBlind > c.BigBlind {
		return fmt.Errorf("%w: small blind %d exceeds big blind %d", ErrInvalidConfig, c.SmallBlind, c.BigBlind)
	}
	if c.MaxRaisesPerStreet < 0 {
		return fmt.Errorf("%w: max raises per street cannot be negative", ErrInvalidConfig)
	}
	if c.MaxRetriesPerMove < 1 {
		return fmt.Errorf("%w: at least one attempt per move required", ErrInvalidConfig)
	}
	if c.TargetRounds < 0 || c.TargetEliminations < 0 {
		return fmt.Errorf("%w: targets cannot be negative", ErrInvalidConfig)
	}
	if len(c.Stacks) != 0 && len(c.Stacks) != seats {
		return fmt.Errorf("%w: %d starting stacks for %d seats", ErrInvalidConfig, len(c.Stacks), seats)
	}
	for i, s := range c.Stacks {
		if s < 0 {
			return fmt.Errorf("%w: seat %d has negative stack %d", ErrInvalidConfig, i, s)
		}
	}
	switch c.Termination {
	case ContinueWhileBoth, ContinueWhileEither:
	default:
		return fmt.Errorf("%w: unknown termination policy %q", ErrInvalidConfig, c.Termination)
	}
	switch c.TiePolicy {
	case TieSplit, TieFirstSeat:
	default:
		return fmt.Errorf("%w: unknown tie policy %q", ErrInvalidConfig, c.TiePolicy)
	}
	if c.MoveTimeout < 0 {
		return fmt.Errorf("%w: move timeout cannot be negative", ErrInvalidConfig)
	}
	return nil
}

// ShouldContinue applies the termination policy to the current counts
func (c Config) ShouldContinue(rounds, eliminations int) bool {
	moreRounds := rounds < c.TargetRounds
	moreEliminations := eliminations < c.TargetEliminations
	if c.Termination == ContinueWhileEither {
		return moreRounds || moreEliminations
	}
	return moreRounds && moreEliminations
}
