// Package config loads match files written in HCL:
//
//	match {
//	  small_blind  = 10
//	  big_blind    = 20
//	  target_rounds = 20
//	  move_timeout = "30s"
//	  seed         = 42
//	}
//
//	seat "gpt" {
//	  strategy = "llm"
//	  model    = "openai/gpt-4o-mini"
//	}
//
//	seat "rand" {
//	  strategy = "random"
//	}
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/joho/godotenv"

	"github.com/lox/llmholdem/internal/bot"
	"github.com/lox/llmholdem/internal/game"
)

const (
	DefaultStrategy = "random"
	DefaultAddress  = "localhost:8080"
	DefaultLogLevel = "info"
)

// File is a parsed match file
type File struct {
	Match  *MatchConfig    `hcl:"match,block"`
	Server *ServerSettings `hcl:"server,block"`
	Seats  []SeatConfig    `hcl:"seat,block"`
}

// MatchConfig mirrors game.Config. Pointer fields distinguish an explicit
// zero from an omitted attribute.
type MatchConfig struct {
	SmallBlind         *int   `hcl:"small_blind,optional"`
	BigBlind           *int   `hcl:"big_blind,optional"`
	MaxRaisesPerStreet *int   `hcl:"max_raises_per_street,optional"`
	MaxRetriesPerMove  *int   `hcl:"max_retries_per_move,optional"`
	TargetRounds       *int   `hcl:"target_rounds,optional"`
	TargetEliminations *int   `hcl:"target_eliminations,optional"`
	Termination        string `hcl:"termination,optional"`
	TiePolicy          string `hcl:"tie_policy,optional"`
	RotateBlinds       bool   `hcl:"rotate_blinds,optional"`
	MoveTimeout        string `hcl:"move_timeout,optional"`
	Seed               *int64 `hcl:"seed,optional"`
}

// ServerSettings configures llmholdem serve
type ServerSettings struct {
	Address     string `hcl:"address,optional"`
	LogLevel    string `hcl:"log_level,optional"`
	DatabaseURL string `hcl:"database_url,optional"`
}

// SeatConfig is one seat; seats are numbered in file order
type SeatConfig struct {
	Name     string `hcl:"name,label"`
	Strategy string `hcl:"strategy,optional"`
	Model    string `hcl:"model,optional"`
	Stack    *int   `hcl:"stack,optional"`
}

// Load reads and validates a match file
func Load(filename string) (*File, error) {
	src, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return Parse(src, filename)
}

// Parse decodes a match file from memory, applies defaults and validates it
func Parse(src []byte, filename string) (*File, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var f File
	if diags := gohcl.DecodeBody(file.Body, nil, &f); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}
	f.applyDefaults()
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// New builds a match file from flags rather than HCL. A nil match block
// takes the defaults.
func New(match *MatchConfig, seats []SeatConfig) (*File, error) {
	f := File{Match: match, Seats: seats}
	f.applyDefaults()
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// ParseSeat reads a seat given as name=strategy or name=llm:model
func ParseSeat(spec string) (SeatConfig, error) {
	name, rest, ok := strings.Cut(spec, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return SeatConfig{}, fmt.Errorf("seat %q: want name=strategy", spec)
	}
	seat := SeatConfig{Name: name, Strategy: strings.TrimSpace(rest)}
	if strategy, model, ok := strings.Cut(seat.Strategy, ":"); ok {
		seat.Strategy, seat.Model = strategy, model
	}
	return seat, nil
}

func (f *File) applyDefaults() {
	if f.Match == nil {
		f.Match = &MatchConfig{}
	}
	if f.Server == nil {
		f.Server = &ServerSettings{}
	}
	if f.Server.Address == "" {
		f.Server.Address = DefaultAddress
	}
	if f.Server.LogLevel == "" {
		f.Server.LogLevel = DefaultLogLevel
	}
	for i := range f.Seats {
		if f.Seats[i].Strategy == "" {
			f.Seats[i].Strategy = DefaultStrategy
		}
	}
}

// Validate checks the seats and the derived game configuration
func (f *File) Validate() error {
	seen := make(map[string]bool, len(f.Seats))
	for _, s := range f.Seats {
		if seen[s.Name] {
			return fmt.Errorf("duplicate seat %q", s.Name)
		}
		seen[s.Name] = true
		if _, ok := bot.Canonical(s.Strategy); !ok {
			return fmt.Errorf("seat %q: %w: %q", s.Name, bot.ErrUnknownStrategy, s.Strategy)
		}
	}
	_, err := f.GameConfig()
	return err
}

// GameConfig converts the match block to a validated game.Config
func (f *File) GameConfig() (game.Config, error) {
	cfg := game.DefaultConfig()
	m := f.Match
	if m == nil {
		m = &MatchConfig{}
	}
	setInt(&cfg.SmallBlind, m.SmallBlind)
	setInt(&cfg.BigBlind, m.BigBlind)
	setInt(&cfg.MaxRaisesPerStreet, m.MaxRaisesPerStreet)
	setInt(&cfg.MaxRetriesPerMove, m.MaxRetriesPerMove)
	setInt(&cfg.TargetRounds, m.TargetRounds)
	setInt(&cfg.TargetEliminations, m.TargetEliminations)
	if m.Termination != "" {
		cfg.Termination = game.Termination(m.Termination)
	}
	if m.TiePolicy != "" {
		cfg.TiePolicy = game.TiePolicy(m.TiePolicy)
	}
	cfg.RotateBlinds = m.RotateBlinds
	if m.MoveTimeout != "" {
		d, err := time.ParseDuration(m.MoveTimeout)
		if err != nil {
			return game.Config{}, fmt.Errorf("%w: move_timeout: %v", game.ErrInvalidConfig, err)
		}
		cfg.MoveTimeout = d
	}

	custom := false
	stacks := make([]int, len(f.Seats))
	for i, s := range f.Seats {
		stacks[i] = game.DefaultStack
		if s.Stack != nil {
			stacks[i] = *s.Stack
			custom = true
		}
	}
	if custom {
		cfg.Stacks = stacks
	}

	if err := cfg.Validate(len(f.Seats)); err != nil {
		return game.Config{}, err
	}
	return cfg, nil
}

// Seed returns the configured seed, or nil for a random one
func (f *File) Seed() *int64 {
	if f.Match == nil {
		return nil
	}
	return f.Match.Seed
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

// LoadEnv loads environment files for model credentials. With no arguments
// it loads ./.env when present; named files must exist.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		err := godotenv.Load()
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return godotenv.Load(files...)
}
