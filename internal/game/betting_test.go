package game

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/llmholdem/internal/randutil"
)

func TestApplyCheck(t *testing.T) {
	t.Parallel()
	e := newTestEngine(DefaultConfig(), passive, passive)
	tbl := testTable(20, 100, 100)
	tbl.Players[0].Bet = 10

	_, err := e.Apply(tbl, 0, CheckMove())
	require.ErrorIs(t, err, ErrInvalidMove)
	assert.Equal(t, "You tried checking but you have not bet the current call amount 10.", err.Error())

	tbl.Players[1].Bet = 20
	_, err = e.Apply(tbl, 1, CheckMove())
	require.NoError(t, err)
	assert.Contains(t, tbl.Narrative.String(), "Player B checks.")
}

func TestApplyCall(t *testing.T) {
	t.Parallel()
	e := newTestEngine(DefaultConfig(), passive, passive)
	tbl := testTable(20, 100, 100)
	tbl.Players[0].Bet = 10
	tbl.Round.Pot = 10

	paid, err := e.Apply(tbl, 0, CallMove())
	require.NoError(t, err)
	assert.Equal(t, 10, paid)
	assert.Equal(t, 90, tbl.Players[0].Money)
	assert.Equal(t, 20, tbl.Players[0].Bet)
	assert.Equal(t, 20, tbl.Round.Pot)
	assert.False(t, tbl.Players[0].IsAllIn)
	assert.Contains(t, tbl.Narrative.String(), "Player A calls by betting 10.")
}

func TestApplyPartialCallGoesAllIn(t *testing.T) {
	t.Parallel()
	e := newTestEngine(DefaultConfig(), passive, passive)
	tbl := testTable(80, 30, 100)

	paid, err := e.Apply(tbl, 0, CallMove())
	require.NoError(t, err)
	assert.Equal(t, 30, paid)
	assert.Equal(t, 0, tbl.Players[0].Money)
	assert.Equal(t, 30, tbl.Players[0].Bet)
	assert.True(t, tbl.Players[0].IsAllIn)
	assert.Equal(t, 80, tbl.Round.CallAmount, "a short call must not lower the call amount")
	assert.Contains(t, tbl.Narrative.String(), "calls by betting 30 and is thus all in.")
}

func TestApplyExactCallMarksAllIn(t *testing.T) {
	t.Parallel()
	e := newTestEngine(DefaultConfig(), passive, passive)
	tbl := testTable(40, 40, 100)

	_, err := e.Apply(tbl, 0, CallMove())
	require.NoError(t, err)
	assert.Equal(t, 0, tbl.Players[0].Money)
	assert.True(t, tbl.Players[0].IsAllIn)
}

func TestApplyRaise(t *testing.T) {
	t.Parallel()
	e := newTestEngine(DefaultConfig(), passive, passive)
	tbl := testTable(20, 90, 80)
	tbl.Players[0].Bet = 10
	tbl.Players[1].Bet = 20
	tbl.Round.Pot = 30

	paid, err := e.Apply(tbl, 0, raise(50))
	require.NoError(t, err)
	assert.Equal(t, 50, paid)
	assert.Equal(t, 40, tbl.Players[0].Money)
	assert.Equal(t, 60, tbl.Players[0].Bet)
	assert.Equal(t, 80, tbl.Round.Pot)
	// owed was 10, so the call amount rises by 40
	assert.Equal(t, 60, tbl.Round.CallAmount)
	assert.Equal(t, 1, tbl.Round.RaiseCount)
	assert.Equal(t, tbl.Players[0].Bet, tbl.Round.CallAmount)
	assert.Contains(t, tbl.Narrative.String(), "Player A raises by betting 50.")
}

func TestRejectedRaiseLeavesStateUnchanged(t *testing.T) {
	t.Parallel()
	cfg := DefaultConfig()
	cfg.MaxRaisesPerStreet = 1

	tests := []struct {
		name   string
		setup  func(*Table)
		move   Move
		reason string
	}{
		{
			name:   "not above owed",
			move:   raise(10),
			reason: "You tried raising but your raise amount 10 is less than the current call amount 10.",
		},
		{
			name:   "more than stack",
			move:   raise(200),
			reason: "You tried raising but your raise amount 200 is greater than the amount of money you have 90.",
		},
		{
			name:   "raise cap reached",
			setup:  func(t *Table) { t.Round.RaiseCount = 1 },
			move:   raise(30),
			reason: "You tried raising but you are not allowed to raise this round as there have already been 1 raises.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(cfg, passive, passive)
			tbl := testTable(20, 90, 80)
			tbl.Players[0].Bet = 10
			tbl.Players[1].Bet = 20
			tbl.Round.Pot = 30
			if tt.setup != nil {
				tt.setup(tbl)
			}
			beforePlayers := tbl.clonePlayers()
			beforeRound := tbl.Round
			beforeLines := tbl.Narrative.Len()

			_, err := e.Apply(tbl, 0, tt.move)
			require.ErrorIs(t, err, ErrInvalidMove)
			var moveErr *MoveError
			require.True(t, errors.As(err, &moveErr))
			assert.Equal(t, tt.reason, moveErr.Reason)

			assert.Equal(t, beforePlayers, tbl.Players)
			assert.Equal(t, beforeRound, tbl.Round)
			assert.Equal(t, beforeLines, tbl.Narrative.Len())
		})
	}
}

func TestApplyRejectsSeatThatCannotAct(t *testing.T) {
	t.Parallel()
	e := newTestEngine(DefaultConfig(), passive, passive)
	tbl := testTable(20, 100, 100)
	tbl.Players[1].IsActive = false

	_, err := e.Apply(tbl, 1, CallMove())
	assert.ErrorIs(t, err, ErrInvalidMove)
}

func TestPostBlindShortStackGoesAllIn(t *testing.T) {
	t.Parallel()
	e := newTestEngine(DefaultConfig(), passive, passive)
	tbl := testTable(20, 100, 15)

	assert.Equal(t, 10, e.PostBlind(tbl, 0, 10, "small"))
	assert.Equal(t, 15, e.PostBlind(tbl, 1, 20, "big"))

	assert.Equal(t, 90, tbl.Players[0].Money)
	assert.False(t, tbl.Players[0].IsAllIn)
	assert.Equal(t, 0, tbl.Players[1].Money)
	assert.Equal(t, 15, tbl.Players[1].Bet)
	assert.True(t, tbl.Players[1].IsAllIn)
	assert.Equal(t, 25, tbl.Round.Pot)
	assert.Contains(t, tbl.Narrative.String(), "Player B is forced to bet 20 as big blind. Player B is thus all in.")
}

func TestRunStreetReopensActionAfterRaise(t *testing.T) {
	t.Parallel()
	a := script(CheckMove())
	b := script(raise(30))
	c := script(CallMove())
	e := newTestEngine(DefaultConfig(), a, b, c)
	tbl := testTable(0, 100, 100, 100)

	require.NoError(t, e.RunStreet(context.Background(), tbl, 0))

	// A checks, B raises, C calls, then A is asked again and (passively) calls
	assert.Len(t, a.calls(), 2)
	assert.Len(t, b.calls(), 1, "the raiser is not re-queued")
	assert.Len(t, c.calls(), 1)
	for _, p := range tbl.Players {
		assert.Equal(t, 30, p.Bet)
	}
	assert.Equal(t, 90, tbl.Round.Pot)
}

func TestRunStreetStartsFromGivenSeatAndWraps(t *testing.T) {
	t.Parallel()
	var order []int
	record := AgentFunc(func(_ context.Context, p Prompt) (Move, error) {
		order = append(order, p.Seat)
		return CheckMove(), nil
	})
	e := newTestEngine(DefaultConfig(), record, record, record, record)
	tbl := testTable(0, 100, 100, 100, 100)
	tbl.Players[3].IsActive = false

	require.NoError(t, e.RunStreet(context.Background(), tbl, 2))
	assert.Equal(t, []int{2, 0, 1}, order)
}

func TestRunStreetRaiseCap(t *testing.T) {
	t.Parallel()
	cfg := DefaultConfig()
	cfg.MaxRaisesPerStreet = 2
	a := script(raise(10), raise(30), raise(50))
	b := script(raise(20))
	e := newTestEngine(cfg, a, b)
	tbl := testTable(0, 200, 200)

	require.NoError(t, e.RunStreet(context.Background(), tbl, 0))

	// A raises, B re-raises to the cap, then both of A's further raises are
	// rejected and the passive fallback calls on the last attempt
	assert.Equal(t, 2, tbl.Round.RaiseCount)
	prompts := a.calls()
	require.Len(t, prompts, 3)
	assert.Contains(t, prompts[2].PriorError, "not allowed to raise")
	assert.Equal(t, 20, tbl.Players[0].Bet)
	assert.Equal(t, 20, tbl.Players[1].Bet)
	assert.Equal(t, 20, tbl.Round.CallAmount)
}

func TestRetryFeedsBackPriorError(t *testing.T) {
	t.Parallel()
	a := script(CheckMove(), raise(5), CallMove())
	e := newTestEngine(DefaultConfig(), a, passive)
	tbl := testTable(20, 100, 100)
	tbl.Players[1].Bet = 20
	tbl.Round.Pot = 20

	require.NoError(t, e.RunStreet(context.Background(), tbl, 0))

	prompts := a.calls()
	require.Len(t, prompts, 3)
	assert.Empty(t, prompts[0].PriorError)
	assert.Equal(t, "You tried checking but you have not bet the current call amount 20.", prompts[1].PriorError)
	assert.Contains(t, prompts[2].PriorError, "raise amount 5 is less than the current call amount 20")
	assert.Equal(t, 3, prompts[2].Attempt)
	assert.Equal(t, 20, tbl.Players[0].Bet)
}

func TestRetryBudgetExhaustedForcesFold(t *testing.T) {
	t.Parallel()
	cfg := DefaultConfig()
	cfg.MaxRetriesPerMove = 2
	a := script(CheckMove(), CheckMove(), CheckMove())
	bus := NewEventBus()
	rec := &recorder{}
	bus.Subscribe(rec)
	e := NewBettingEngine(cfg, []Agent{a, passive}, bus, discardLogger())
	tbl := testTable(20, 100, 100)
	tbl.Players[1].Bet = 20
	tbl.Round.Pot = 20

	require.NoError(t, e.RunStreet(context.Background(), tbl, 0))

	assert.Len(t, a.calls(), 2)
	assert.False(t, tbl.Players[0].IsActive)
	assert.Equal(t, 100, tbl.Players[0].Money)
	assert.Len(t, rec.ofType(EventTypeMoveRejected), 2)

	actions := rec.ofType(EventTypePlayerAction)
	require.Len(t, actions, 1, "the lone survivor is not asked to act")
	forced := actions[0].(PlayerActionEvent)
	assert.True(t, forced.Forced)
	assert.Equal(t, Fold, forced.Move.Action())
}

func TestAgentErrorCountsAsAttempt(t *testing.T) {
	t.Parallel()
	a := script(CallMove())
	a.errs = []error{errors.New("upstream timeout")}
	e := newTestEngine(DefaultConfig(), a, passive)
	tbl := testTable(20, 100, 100)
	tbl.Players[1].Bet = 20
	tbl.Round.Pot = 20

	require.NoError(t, e.RunStreet(context.Background(), tbl, 0))
	prompts := a.calls()
	require.Len(t, prompts, 2)
	assert.Equal(t, "Your move could not be obtained: upstream timeout.", prompts[1].PriorError)
	assert.Equal(t, 20, tbl.Players[0].Bet)
}

func TestPromptMarksSelfAndHidesOpponentCards(t *testing.T) {
	t.Parallel()
	a := script(CheckMove())
	e := newTestEngine(DefaultConfig(), a, passive)
	tbl := testTable(0, 100, 100)
	tbl.Narrative.Addf("Player A has 100 dollars at the start of the round.")
	tbl.Narrative.Addf("Player B has 100 dollars at the start of the round.")

	require.NoError(t, e.RunStreet(context.Background(), tbl, 0))
	p := a.calls()[0]
	assert.Contains(t, p.Narrative, "Player A (you) has 100 dollars")
	assert.NotContains(t, p.Narrative, "Player B (you)")
	require.Len(t, p.View.Opponents, 1)
	assert.Equal(t, "B", p.View.Opponents[0].Name)
	assert.Equal(t, 3, p.View.RaisesLeft)
}

func TestRunStreetStopsBetweenMovesOnCancel(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	var asked []int
	agent := AgentFunc(func(_ context.Context, p Prompt) (Move, error) {
		asked = append(asked, p.Seat)
		return CheckMove(), nil
	})
	cancelling := AgentFunc(func(_ context.Context, p Prompt) (Move, error) {
		asked = append(asked, p.Seat)
		cancel()
		return CheckMove(), nil
	})
	e := newTestEngine(DefaultConfig(), agent, cancelling, agent)
	tbl := testTable(0, 100, 100, 100)

	err := e.RunStreet(ctx, tbl, 0)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, []int{0, 1}, asked)
}

// Money is only ever moved between stacks and the pot, whatever the agents do.
func TestChipConservationUnderRandomPlay(t *testing.T) {
	t.Parallel()
	rng := randutil.New(11)
	randomAgent := AgentFunc(func(_ context.Context, p Prompt) (Move, error) {
		switch rng.IntN(5) {
		case 0:
			return FoldMove(), nil
		case 1:
			return CheckMove(), nil
		case 2:
			return CallMove(), nil
		default:
			return RaiseMove(rng.IntN(p.View.Money + 20))
		}
	})

	for trial := 0; trial < 200; trial++ {
		e := newTestEngine(DefaultConfig(), randomAgent, randomAgent, randomAgent, randomAgent)
		tbl := testTable(20, 100, 60, 150, 90)
		e.PostBlind(tbl, 0, 10, "small")
		e.PostBlind(tbl, 1, 20, "big")
		total := tbl.TotalChips()

		for street := 0; street < 4; street++ {
			require.NoError(t, e.RunStreet(context.Background(), tbl, street%4))
			require.Equal(t, 400, total)
			require.Equal(t, total, tbl.TotalChips(), "trial %d street %d", trial, street)
			bets := 0
			for _, p := range tbl.Players {
				require.GreaterOrEqual(t, p.Money, 0)
				require.LessOrEqual(t, p.Bet, tbl.Round.CallAmount)
				bets += p.Bet
			}
			require.Equal(t, tbl.Round.Pot, bets)
		}
		require.False(t, strings.Contains(tbl.Narrative.String(), "Invalid move"))
	}
}
