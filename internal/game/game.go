package game

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lox/llmholdem/internal/gameid"
	"github.com/lox/llmholdem/internal/randutil"
	"github.com/lox/llmholdem/internal/statistics"
	"github.com/lox/llmholdem/poker"
)

// Game orchestrates a match: it resets the table each round, posts blinds,
// deals, runs the four betting streets and resolves the showdown.
type Game struct {
	id         string
	cfg        Config
	table      *Table
	engine     *BettingEngine
	stats      *statistics.GameStatistics
	deck       *poker.Deck
	bus        EventBus
	logger     *log.Logger
	startChips int
	finished   bool
}

// NewGame seats the agents and validates the configuration. No round is
// played until PlayRound or Play is called.
func NewGame(seats []Seat, cfg Config, opts ...Option) (*Game, error) {
	if err := cfg.Validate(len(seats)); err != nil {
		return nil, err
	}

	o := gameOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.rng == nil {
		o.rng, _ = randutil.Resolve(nil)
	}
	if o.logger == nil {
		o.logger = log.New(io.Discard)
	}
	if o.bus == nil {
		o.bus = NewEventBus()
	}
	if o.id == "" {
		o.id = gameid.Generate()
	}
	if o.deck == nil {
		o.deck = poker.NewDeck(o.rng)
	}

	names := make([]string, len(seats))
	agents := make([]Agent, len(seats))
	seen := make(map[string]bool, len(seats))
	for i, s := range seats {
		if s.Name == "" {
			return nil, fmt.Errorf("%w: seat %d has no name", ErrInvalidConfig, i)
		}
		if seen[s.Name] {
			return nil, fmt.Errorf("%w: duplicate seat name %q", ErrInvalidConfig, s.Name)
		}
		if s.Agent == nil {
			return nil, fmt.Errorf("%w: seat %q has no agent", ErrInvalidConfig, s.Name)
		}
		seen[s.Name] = true
		names[i] = s.Name
		agents[i] = s.Agent
	}

	table := NewTable(names, cfg.StartingStacks(len(seats)))
	logger := o.logger.With("match", o.id)
	g := &Game{
		id:         o.id,
		cfg:        cfg,
		table:      table,
		engine:     NewBettingEngine(cfg, agents, o.bus, logger),
		stats:      statistics.New(names),
		deck:       o.deck,
		bus:        o.bus,
		logger:     logger,
		startChips: table.TotalChips(),
	}
	g.table.Round.SmallBlindSeat = -1
	return g, nil
}

// ID returns the match id
func (g *Game) ID() string { return g.id }

// Config returns the match configuration
func (g *Game) Config() Config { return g.cfg }

// Table exposes the live table. Callers must not mutate it while a round
// is being played.
func (g *Game) Table() *Table { return g.table }

// Statistics returns the match ledger
func (g *Game) Statistics() *statistics.GameStatistics { return g.stats }

// Narrative returns the full play-by-play so far
func (g *Game) Narrative() string { return g.table.Narrative.String() }

// Finished reports whether Play has returned
func (g *Game) Finished() bool { return g.finished }

// ShouldContinue applies the termination policy to the current table. Eliminations
// are the seats holding no money, as counted at the start of a round.
func (g *Game) ShouldContinue() bool {
	if g.table.Funded() < 2 {
		return false
	}
	return g.cfg.ShouldContinue(g.stats.NumRounds, g.table.Eliminations())
}

// Play runs rounds until the termination policy says stop, the context is
// cancelled, or a round fails.
func (g *Game) Play(ctx context.Context) (*statistics.GameStatistics, error) {
	g.logger.Info("Match starting",
		"seats", len(g.table.Players),
		"target_rounds", g.cfg.TargetRounds,
		"target_eliminations", g.cfg.TargetEliminations,
		"termination", g.cfg.Termination)

	var err error
	for g.ShouldContinue() {
		if _, err = g.PlayRound(ctx); err != nil {
			break
		}
	}
	g.finished = true

	end := MatchEndEvent{
		MatchID:      g.id,
		Rounds:       g.stats.NumRounds,
		Eliminations: g.table.Eliminations(),
		timestamp:    time.Now(),
	}
	if err != nil {
		end.Error = err.Error()
		g.logger.Error("Match aborted", "rounds", g.stats.NumRounds, "error", err)
	} else {
		g.logger.Info("Match finished", "rounds", g.stats.NumRounds, "eliminations", end.Eliminations)
	}
	g.bus.Publish(end)
	return g.stats, err
}

// PlayRound plays one complete round and records its result. If the context
// is cancelled or the deck runs out, the round is voided and an error returned.
func (g *Game) PlayRound(ctx context.Context) (RoundResult, error) {
	if g.table.Funded() < 2 {
		return RoundResult{}, fmt.Errorf("%w: fewer than two seats have money", ErrMatchFinished)
	}

	eliminations := g.reset()
	t := g.table
	logger := g.logger.With("round", t.Round.Number)
	logger.Info("Round starting", "eliminations", eliminations, "small_blind_seat", t.Round.SmallBlindSeat, "big_blind_seat", t.Round.BigBlindSeat)

	result, err := g.playStreets(ctx)
	if err != nil {
		t.refund()
		logger.Error("Round voided", "error", err)
		return RoundResult{}, fmt.Errorf("round %d: %w", t.Round.Number, err)
	}

	if err := g.stats.RecordRound(result.Winners, result.Deltas); err != nil {
		return RoundResult{}, fmt.Errorf("record round %d: %w", t.Round.Number, err)
	}
	if total := t.TotalChips(); total != g.startChips {
		return RoundResult{}, fmt.Errorf("chip conservation violation: have %d, started with %d", total, g.startChips)
	}

	logger.Info("Round finished", "winners", result.Winners, "pot", result.Pot)
	g.bus.Publish(RoundEndEvent{Result: result, timestamp: time.Now()})
	return result, nil
}

// reset prepares the table for a new round and returns the number of
// eliminated seats
func (g *Game) reset() int {
	t := g.table
	g.deck.Shuffle()

	sb, bb := g.blindSeats()
	t.Round = RoundState{
		Number:         g.stats.NumRounds + 1,
		Street:         Preflop,
		CallAmount:     g.cfg.BigBlind,
		SmallBlindSeat: sb,
		BigBlindSeat:   bb,
	}

	eliminations := 0
	for i := range t.Players {
		p := &t.Players[i]
		p.Hand = nil
		p.Bet = 0
		p.IsAllIn = false
		p.IsActive = p.Money > 0
		if !p.IsActive {
			eliminations++
		}
	}

	n := t.Narrative
	n.Addf("A new round of poker is starting.")
	n.Addf("%d players have been eliminated.", eliminations)
	n.Addf("The small blind is %d.", g.cfg.SmallBlind)
	n.Addf("The big blind is %d.", g.cfg.BigBlind)
	for _, seat := range t.ActiveFrom(0) {
		n.Addf("Player %s has %d dollars at the start of the round.", t.Players[seat].Name, t.Players[seat].Money)
	}

	g.bus.Publish(RoundStartEvent{
		Round:          t.Round.Number,
		Players:        t.clonePlayers(),
		Eliminations:   eliminations,
		SmallBlindSeat: sb,
		BigBlindSeat:   bb,
		timestamp:      time.Now(),
	})
	return eliminations
}

// blindSeats returns the small and big blind seats for the next round. They
// stay on seats 0 and 1 unless rotation is enabled.
func (g *Game) blindSeats() (int, int) {
	if !g.cfg.RotateBlinds {
		return 0, 1
	}
	t := g.table
	prev := t.Round.SmallBlindSeat
	if prev < 0 {
		prev = len(t.Players) - 1
	}
	sb := t.NextFunded(prev)
	return sb, t.NextFunded(sb)
}

func (g *Game) playStreets(ctx context.Context) (RoundResult, error) {
	t := g.table
	sb, bb := t.Round.SmallBlindSeat, t.Round.BigBlindSeat

	for _, blind := range []struct {
		seat   int
		amount int
		kind   string
	}{{sb, g.cfg.SmallBlind, "small"}, {bb, g.cfg.BigBlind, "big"}} {
		if !t.Players[blind.seat].IsActive {
			g.logger.Debug("Blind seat is eliminated, no blind posted", "seat", blind.seat, "blind", blind.kind)
			continue
		}
		g.engine.PostBlind(t, blind.seat, blind.amount, blind.kind)
	}

	for _, seat := range t.ActiveFrom(0) {
		hand, err := g.deck.Deal(2)
		if err != nil {
			return RoundResult{}, fmt.Errorf("deal hole cards: %w", err)
		}
		t.Players[seat].Hand = hand
	}

	g.startStreet(Preflop)
	if err := g.engine.RunStreet(ctx, t, (bb+1)%len(t.Players)); err != nil {
		return RoundResult{}, err
	}

	for _, street := range []struct {
		street Street
		cards  int
	}{{Flop, 3}, {Turn, 1}, {River, 1}} {
		cards, err := g.deck.Deal(street.cards)
		if err != nil {
			return RoundResult{}, fmt.Errorf("deal %s: %w", street.street, err)
		}
		t.Round.CommunityCards = append(t.Round.CommunityCards, cards...)
		switch street.street {
		case Flop:
			t.Narrative.Addf("The flop cards are %s.", poker.CardNames(cards))
		default:
			t.Narrative.Addf("The %s card is %s.", street.street, cards[0].Name())
		}
		g.startStreet(street.street)
		if err := g.engine.RunStreet(ctx, t, sb); err != nil {
			return RoundResult{}, err
		}
	}

	return ResolveShowdown(t, g.cfg.TiePolicy)
}

func (g *Game) startStreet(s Street) {
	t := g.table
	t.Round.Street = s
	g.bus.Publish(StreetChangeEvent{
		Round:          t.Round.Number,
		Street:         s,
		CommunityCards: append([]poker.Card(nil), t.Round.CommunityCards...),
		Pot:            t.Round.Pot,
		timestamp:      time.Now(),
	})
}
