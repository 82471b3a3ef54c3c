package game

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/charmbracelet/log"
)

// BettingEngine validates and applies moves against a Table and runs the
// FIFO queue of seats that makes up one betting street.
type BettingEngine struct {
	cfg    Config
	agents []Agent
	bus    EventBus
	logger *log.Logger
}

// NewBettingEngine creates an engine asking agents[i] to act for seat i
func NewBettingEngine(cfg Config, agents []Agent, bus EventBus, logger *log.Logger) *BettingEngine {
	return &BettingEngine{
		cfg:    cfg,
		agents: agents,
		bus:    bus,
		logger: logger.WithPrefix("betting"),
	}
}

// PostBlind debits a forced bet without validation. A seat that cannot
// cover the blind goes all-in for its whole stack.
func (e *BettingEngine) PostBlind(t *Table, seat, blind int, kind string) int {
	p := &t.Players[seat]
	paid := min(blind, p.Money)
	p.Money -= paid
	p.Bet += paid
	t.Round.Pot += paid
	if p.Money == 0 {
		p.IsAllIn = true
	}

	t.Narrative.Addf("Player %s is forced to bet %d as %s blind.", p.Name, blind, kind)
	if p.IsAllIn {
		t.Narrative.Appendf(" Player %s is thus all in.", p.Name)
	}
	e.logger.Debug("Blind posted", "seat", seat, "player", p.Name, "blind", kind, "paid", paid, "all_in", p.IsAllIn)
	e.bus.Publish(ForcedBetEvent{
		Round:     t.Round.Number,
		Seat:      seat,
		Name:      p.Name,
		Blind:     kind,
		Amount:    paid,
		AllIn:     p.IsAllIn,
		PotAfter:  t.Round.Pot,
		timestamp: time.Now(),
	})
	return paid
}

// Apply validates m for seat and, if legal, mutates the table. It returns the
// chips the seat put in. A rejected move returns a *MoveError and leaves
// the table untouched.
func (e *BettingEngine) Apply(t *Table, seat int, m Move) (int, error) {
	p := &t.Players[seat]
	if !p.CanAct() {
		return 0, rejectf(seat, m, "Player %s cannot act this round.", p.Name)
	}
	owed := t.owed(seat)

	switch m.Action() {
	case Fold:
		p.IsActive = false
		t.Narrative.Addf("Player %s folds.", p.Name)
		return 0, nil

	case Check:
		if p.Bet != t.Round.CallAmount {
			return 0, rejectf(seat, m, "You tried checking but you have not bet the current call amount %d.", owed)
		}
		t.Narrative.Addf("Player %s checks.", p.Name)
		return 0, nil

	case Call:
		paid := min(owed, p.Money)
		p.Money -= paid
		p.Bet += paid
		t.Round.Pot += paid
		if p.Money == 0 {
			p.IsAllIn = true
			t.Narrative.Addf("Player %s calls by betting %d and is thus all in.", p.Name, paid)
		} else {
			t.Narrative.Addf("Player %s calls by betting %d.", p.Name, paid)
		}
		return paid, nil

	case Raise:
		amount := m.Amount()
		if t.Round.RaiseCount >= e.cfg.MaxRaisesPerStreet {
			return 0, rejectf(seat, m, "You tried raising but you are not allowed to raise this round as there have already been %d raises.", t.Round.RaiseCount)
		}
		if amount <= owed {
			return 0, rejectf(seat, m, "You tried raising but your raise amount %d is less than the current call amount %d.", amount, owed)
		}
		if p.Money < amount {
			return 0, rejectf(seat, m, "You tried raising but your raise amount %d is greater than the amount of money you have %d.", amount, p.Money)
		}
		p.Money -= amount
		p.Bet += amount
		t.Round.Pot += amount
		t.Round.CallAmount += amount - owed
		t.Round.RaiseCount++
		if p.Money == 0 {
			p.IsAllIn = true
			t.Narrative.Addf("Player %s raises by betting %d and is thus all in.", p.Name, amount)
		} else {
			t.Narrative.Addf("Player %s raises by betting %d.", p.Name, amount)
		}
		return amount, nil
	}

	return 0, rejectf(seat, m, "Invalid move %q.", m.Action())
}

// RunStreet plays one betting street starting at seat start. The queue is
// seeded with every active seat; an accepted raise re-queues every other
// seat that can still act. The context is only checked between moves.
func (e *BettingEngine) RunStreet(ctx context.Context, t *Table, start int) error {
	t.Round.RaiseCount = 0
	queue := t.ActiveFrom(start)

	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}
		seat := queue[0]
		queue = queue[1:]

		if !t.Players[seat].CanAct() {
			continue
		}
		if t.Contenders() < 2 {
			// everyone else folded; nobody is left to bet against
			return nil
		}

		move, err := e.decide(ctx, t, seat)
		if err != nil {
			return err
		}

		if move.Action() == Raise {
			for _, other := range t.ActiveFrom(seat + 1) {
				if other != seat && t.Players[other].CanAct() && !slices.Contains(queue, other) {
					queue = append(queue, other)
				}
			}
		}
	}
	return nil
}

// decide asks the seat's agent for a move until one is accepted or the retry
// budget runs out, in which case the seat is folded. Each attempt starts
// from a clean result; only the rejection text carries into the next one.
func (e *BettingEngine) decide(ctx context.Context, t *Table, seat int) (Move, error) {
	name := t.Players[seat].Name
	logger := e.logger.With("seat", seat, "player", name)
	priorError := ""

	for attempt := 1; attempt <= e.cfg.MaxRetriesPerMove; attempt++ {
		prompt := e.prompt(t, seat, attempt, priorError)
		move, err := e.agents[seat].ProposeMove(ctx, prompt)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Move{}, ctxErr
		}
		if err != nil {
			priorError = fmt.Sprintf("Your move could not be obtained: %v.", err)
			logger.Warn("Agent failed to propose a move", "attempt", attempt, "error", err)
			e.publishRejected(t, seat, attempt, priorError)
			continue
		}

		paid, err := e.Apply(t, seat, move)
		if err != nil {
			var moveErr *MoveError
			if !errors.As(err, &moveErr) {
				return Move{}, err
			}
			priorError = moveErr.Reason
			logger.Warn("Move rejected", "attempt", attempt, "move", move, "reason", moveErr.Reason)
			e.publishRejected(t, seat, attempt, priorError)
			continue
		}

		logger.Debug("Move applied", "move", move, "paid", paid, "pot", t.Round.Pot)
		e.publishAction(t, seat, move, paid, attempt, false)
		return move, nil
	}

	logger.Warn("Retry budget exhausted, folding", "attempts", e.cfg.MaxRetriesPerMove)
	move := FoldMove()
	if _, err := e.Apply(t, seat, move); err != nil {
		return Move{}, fmt.Errorf("forced fold for seat %d: %w", seat, err)
	}
	e.publishAction(t, seat, move, 0, e.cfg.MaxRetriesPerMove, true)
	return move, nil
}

func (e *BettingEngine) prompt(t *Table, seat, attempt int, priorError string) Prompt {
	p := t.Players[seat]
	view := SeatView{
		Seat:           seat,
		Name:           p.Name,
		Street:         t.Round.Street,
		Hand:           slices.Clone(p.Hand),
		CommunityCards: slices.Clone(t.Round.CommunityCards),
		Pot:            t.Round.Pot,
		CallAmount:     t.Round.CallAmount,
		Bet:            p.Bet,
		Owed:           t.owed(seat),
		Money:          p.Money,
		RaisesLeft:     max(e.cfg.MaxRaisesPerStreet-t.Round.RaiseCount, 0),
	}
	for _, o := range t.Players {
		if o.Seat == seat {
			continue
		}
		view.Opponents = append(view.Opponents, Opponent{
			Seat:     o.Seat,
			Name:     o.Name,
			Money:    o.Money,
			Bet:      o.Bet,
			IsActive: o.IsActive,
			IsAllIn:  o.IsAllIn,
		})
	}
	return Prompt{
		Seat:       seat,
		Name:       p.Name,
		Narrative:  MarkSelf(t.Narrative.String(), p.Name),
		PriorError: priorError,
		Attempt:    attempt,
		View:       view,
	}
}

func (e *BettingEngine) publishAction(t *Table, seat int, m Move, paid, attempts int, forced bool) {
	p := t.Players[seat]
	e.bus.Publish(PlayerActionEvent{
		Round:      t.Round.Number,
		Street:     t.Round.Street,
		Seat:       seat,
		Name:       p.Name,
		Move:       m,
		Paid:       paid,
		AllIn:      p.IsAllIn,
		PotAfter:   t.Round.Pot,
		CallAmount: t.Round.CallAmount,
		Attempts:   attempts,
		Forced:     forced,
		timestamp:  time.Now(),
	})
}

func (e *BettingEngine) publishRejected(t *Table, seat, attempt int, reason string) {
	e.bus.Publish(MoveRejectedEvent{
		Round:     t.Round.Number,
		Street:    t.Round.Street,
		Seat:      seat,
		Name:      t.Players[seat].Name,
		Attempt:   attempt,
		Reason:    reason,
		timestamp: time.Now(),
	})
}
