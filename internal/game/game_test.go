package game

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/llmholdem/internal/randutil"
	"github.com/lox/llmholdem/poker"
)

func TestTwoSeatRoundEndsInSplit(t *testing.T) {
	t.Parallel()
	a := script(CallMove())
	b := script()
	bus := NewEventBus()
	rec := &recorder{}
	bus.Subscribe(rec)

	g, err := NewGame(seatsOf(a, b), DefaultConfig(),
		WithID("split-round"),
		WithEventBus(bus),
		WithLogger(discardLogger()),
		WithDeck(stackedTwoSeat("9h 3d", "9c 3s", "Ks Kd 7h 4c 2s")),
	)
	require.NoError(t, err)

	stats, err := g.Play(context.Background())
	require.NoError(t, err)
	assert.True(t, g.Finished())

	assert.Equal(t, 1, stats.NumRounds)
	assert.Equal(t, [][]int{{0, 1}}, stats.Winners)
	assert.Equal(t, [][]int{{0}, {0}}, stats.MoneyGained)
	assert.Equal(t, 100, g.Table().Players[0].Money)
	assert.Equal(t, 100, g.Table().Players[1].Money)

	narrative := g.Narrative()
	assert.Contains(t, narrative, "A new round of poker is starting.")
	assert.Contains(t, narrative, "0 players have been eliminated.")
	assert.Contains(t, narrative, "Player A is forced to bet 10 as small blind.")
	assert.Contains(t, narrative, "Player B is forced to bet 20 as big blind.")
	assert.Contains(t, narrative, "Player A calls by betting 10.")
	assert.Contains(t, narrative, "The flop cards are ['King of Spades', 'King of Diamonds', '7 of Hearts'].")
	assert.Contains(t, narrative, "The turn card is 4 of Clubs.")
	assert.Contains(t, narrative, "The river card is 2 of Spades.")
	assert.Contains(t, narrative, "Players A and B split the pot of 40!")

	// seat 0 acts first preflop, then leads every later street
	promptsA := a.calls()
	require.Len(t, promptsA, 4)
	assert.Equal(t, Preflop, promptsA[0].View.Street)
	assert.Equal(t, 10, promptsA[0].View.Owed)
	assert.Contains(t, promptsA[0].Narrative, "Player A (you) has 100 dollars at the start of the round.")
	assert.Equal(t, poker.MustParseCards("9h 3d"), promptsA[0].View.Hand)
	assert.Len(t, promptsA[3].View.CommunityCards, 5)
	assert.Len(t, b.calls(), 4)

	assert.Len(t, rec.ofType(EventTypeRoundStart), 1)
	assert.Len(t, rec.ofType(EventTypeForcedBet), 2)
	assert.Len(t, rec.ofType(EventTypeStreetChange), 4)
	assert.Len(t, rec.ofType(EventTypePlayerAction), 8)
	assert.Empty(t, rec.ofType(EventTypeMoveRejected))

	ends := rec.ofType(EventTypeRoundEnd)
	require.Len(t, ends, 1)
	assert.Equal(t, []int{0, 1}, ends[0].(RoundEndEvent).Result.Winners)

	matchEnds := rec.ofType(EventTypeMatchEnd)
	require.Len(t, matchEnds, 1)
	end := matchEnds[0].(MatchEndEvent)
	assert.Equal(t, "split-round", end.MatchID)
	assert.Equal(t, 1, end.Rounds)
	assert.Empty(t, end.Error)
}

func TestTermination(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name         string
		termination  Termination
		rounds       int
		eliminations int
		agent        Agent
		check        func(t *testing.T, rounds, eliminations int)
	}{
		{
			name:         "and stops at the first target reached",
			termination:  ContinueWhileBoth,
			rounds:       1,
			eliminations: 1,
			agent:        passive,
			check: func(t *testing.T, rounds, _ int) {
				assert.Equal(t, 1, rounds)
			},
		},
		{
			name:         "and with no eliminations wanted plays nothing",
			termination:  ContinueWhileBoth,
			rounds:       3,
			eliminations: 0,
			agent:        passive,
			check: func(t *testing.T, rounds, _ int) {
				assert.Equal(t, 0, rounds)
			},
		},
		{
			name:         "or plays every requested round",
			termination:  ContinueWhileEither,
			rounds:       3,
			eliminations: 0,
			agent:        passive,
			check: func(t *testing.T, rounds, eliminations int) {
				assert.Equal(t, 3, rounds)
				assert.Equal(t, 0, eliminations)
			},
		},
		{
			name:         "or keeps going until someone is eliminated",
			termination:  ContinueWhileEither,
			rounds:       1,
			eliminations: 1,
			agent:        shove,
			check: func(t *testing.T, rounds, eliminations int) {
				assert.GreaterOrEqual(t, rounds, 1)
				assert.Equal(t, 1, eliminations)
			},
		},
		{
			name:         "and ends on elimination before the round target",
			termination:  ContinueWhileBoth,
			rounds:       100,
			eliminations: 1,
			agent:        shove,
			check: func(t *testing.T, rounds, eliminations int) {
				assert.Less(t, rounds, 100)
				assert.Equal(t, 1, eliminations)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Termination = tt.termination
			cfg.TargetRounds = tt.rounds
			cfg.TargetEliminations = tt.eliminations

			g, err := NewGame(seatsOf(tt.agent, tt.agent), cfg, WithRNG(randutil.New(7)))
			require.NoError(t, err)
			stats, err := g.Play(context.Background())
			require.NoError(t, err)
			tt.check(t, stats.NumRounds, g.Table().Eliminations())
			require.NoError(t, stats.Validate())
		})
	}
}

func TestPlayStopsWhenOneSeatHasMoney(t *testing.T) {
	t.Parallel()
	cfg := DefaultConfig()
	cfg.Termination = ContinueWhileEither
	cfg.TargetRounds = 1000
	cfg.TargetEliminations = 5

	g, err := NewGame(seatsOf(shove, shove, shove), cfg, WithRNG(randutil.New(3)))
	require.NoError(t, err)
	stats, err := g.Play(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, g.Table().Funded())
	assert.Equal(t, 300, g.Table().TotalChips())
	assert.Less(t, stats.NumRounds, 1000)

	_, err = g.PlayRound(context.Background())
	assert.ErrorIs(t, err, ErrMatchFinished)

	snap := g.Snapshot()
	assert.Equal(t, 300, snap.Players[snap.Winner()].Money)
}

func TestEliminatedSeatsSitOut(t *testing.T) {
	t.Parallel()
	var asked []int
	agent := AgentFunc(func(_ context.Context, p Prompt) (Move, error) {
		asked = append(asked, p.Seat)
		return passiveMove(p.View), nil
	})
	cfg := DefaultConfig()
	cfg.Stacks = []int{100, 0, 100}

	g, err := NewGame(seatsOf(agent, agent, agent), cfg, WithRNG(randutil.New(1)))
	require.NoError(t, err)
	result, err := g.PlayRound(context.Background())
	require.NoError(t, err)

	assert.NotContains(t, asked, 1)
	assert.Nil(t, g.Table().Players[1].Hand)
	assert.Equal(t, 0, result.Deltas[1])
	// no big blind is posted for the empty seat but the call amount still starts at 20
	assert.Equal(t, 40, result.Pot)
	assert.NotContains(t, g.Narrative(), "Player B is forced")
	assert.Contains(t, g.Narrative(), "1 players have been eliminated.")
}

func TestRotateBlinds(t *testing.T) {
	t.Parallel()
	bus := NewEventBus()
	rec := &recorder{}
	bus.Subscribe(rec)
	cfg := DefaultConfig()
	cfg.RotateBlinds = true
	cfg.TargetRounds = 3
	cfg.TargetEliminations = 3

	g, err := NewGame(seatsOf(passive, passive, passive), cfg, WithRNG(randutil.New(5)), WithEventBus(bus))
	require.NoError(t, err)
	_, err = g.Play(context.Background())
	require.NoError(t, err)

	starts := rec.ofType(EventTypeRoundStart)
	require.Len(t, starts, 3)
	var blinds [][2]int
	for _, e := range starts {
		rs := e.(RoundStartEvent)
		blinds = append(blinds, [2]int{rs.SmallBlindSeat, rs.BigBlindSeat})
	}
	assert.Equal(t, [][2]int{{0, 1}, {1, 2}, {2, 0}}, blinds)
}

func TestDeckExhaustionVoidsRound(t *testing.T) {
	t.Parallel()
	agents := make([]Agent, 24)
	for i := range agents {
		agents[i] = passive
	}
	seats := make([]Seat, len(agents))
	for i, a := range agents {
		seats[i] = Seat{Name: "seat" + string(rune('a'+i)), Agent: a}
	}

	g, err := NewGame(seats, DefaultConfig(), WithRNG(randutil.New(9)))
	require.NoError(t, err)
	_, err = g.PlayRound(context.Background())
	require.ErrorIs(t, err, poker.ErrDeckExhausted)

	assert.Equal(t, 0, g.Statistics().NumRounds)
	for _, p := range g.Table().Players {
		assert.Equal(t, 100, p.Money)
		assert.Zero(t, p.Bet)
	}
	assert.Zero(t, g.Table().Round.Pot)
}

func TestCancellationVoidsRound(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	cancelling := AgentFunc(func(_ context.Context, p Prompt) (Move, error) {
		cancel()
		return passiveMove(p.View), nil
	})
	bus := NewEventBus()
	rec := &recorder{}
	bus.Subscribe(rec)

	g, err := NewGame(seatsOf(cancelling, passive), DefaultConfig(), WithEventBus(bus))
	require.NoError(t, err)
	stats, err := g.Play(ctx)
	require.ErrorIs(t, err, context.Canceled)

	assert.Equal(t, 0, stats.NumRounds)
	assert.Equal(t, 100, g.Table().Players[0].Money)
	assert.Equal(t, 100, g.Table().Players[1].Money)
	assert.Empty(t, rec.ofType(EventTypeRoundEnd))

	ends := rec.ofType(EventTypeMatchEnd)
	require.Len(t, ends, 1)
	assert.Contains(t, ends[0].(MatchEndEvent).Error, "context canceled")
}

func TestNewGameValidation(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		seats []Seat
		cfg   func(*Config)
	}{
		{name: "one seat", seats: seatsOf(passive)},
		{name: "duplicate names", seats: []Seat{{Name: "x", Agent: passive}, {Name: "x", Agent: passive}}},
		{name: "empty name", seats: []Seat{{Name: "", Agent: passive}, {Name: "y", Agent: passive}}},
		{name: "missing agent", seats: []Seat{{Name: "x", Agent: passive}, {Name: "y"}}},
		{name: "bad blinds", seats: seatsOf(passive, passive), cfg: func(c *Config) { c.SmallBlind = 50 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			if tt.cfg != nil {
				tt.cfg(&cfg)
			}
			_, err := NewGame(tt.seats, cfg)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestSnapshotJSON(t *testing.T) {
	t.Parallel()
	g, err := NewGame(seatsOf(script(CallMove()), passive), DefaultConfig(),
		WithID("snap"),
		WithDeck(stackedTwoSeat("9h 3d", "9c 3s", "Ks Kd 7h 4c 2s")),
	)
	require.NoError(t, err)
	_, err = g.Play(context.Background())
	require.NoError(t, err)

	snap := g.Snapshot()
	assert.Equal(t, -1, snap.Winner(), "a split leaves the stacks level")
	assert.True(t, snap.Finished)

	data, err := json.Marshal(snap)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "snap", decoded["id"])
	round := decoded["round"].(map[string]any)
	assert.Equal(t, "showdown", round["street"])
	assert.Equal(t, []any{"Ks", "Kd", "7h", "4c", "2s"}, round["community_cards"])
	players := decoded["players"].([]any)
	assert.Equal(t, []any{"9h", "3d"}, players[0].(map[string]any)["hand"])

	// the snapshot must not alias the live table
	snap.Players[0].Money = 0
	assert.Equal(t, 100, g.Table().Players[0].Money)
}

func TestSnapshotRoundTrip(t *testing.T) {
	t.Parallel()
	cfg := DefaultConfig()
	cfg.TargetRounds = 3
	cfg.TargetEliminations = 2
	g, err := NewGame(seatsOf(shove, passive, passive), cfg, WithID("trip"), WithRNG(randutil.New(21)))
	require.NoError(t, err)
	_, err = g.Play(context.Background())
	require.NoError(t, err)

	snap := g.Snapshot()
	data, err := json.Marshal(snap)
	require.NoError(t, err)

	var decoded Snapshot
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, snap, decoded)
}
