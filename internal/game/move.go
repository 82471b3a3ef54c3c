package game

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Action is one of the four betting actions
type Action uint8

const (
	Fold Action = iota
	Check
	Call
	Raise
)

var actionNames = [...]string{"fold", "check", "call", "raise"}

func (a Action) String() string {
	if int(a) < len(actionNames) {
		return actionNames[a]
	}
	return fmt.Sprintf("action(%d)", a)
}

// Valid reports whether a is one of the four known actions
func (a Action) Valid() bool {
	return int(a) < len(actionNames)
}

// ParseAction converts "fold", "check", "call" or "raise" (any case) to an Action
func ParseAction(s string) (Action, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range actionNames {
		if n == name {
			return Action(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown action %q", ErrMalformedMove, s)
}

func (a Action) MarshalText() ([]byte, error) {
	if !a.Valid() {
		return nil, fmt.Errorf("%w: unknown action %d", ErrMalformedMove, a)
	}
	return []byte(a.String()), nil
}

func (a *Action) UnmarshalText(text []byte) error {
	parsed, err := ParseAction(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// Move is a validated action proposal. Amount is the number of chips put in
// by a raise (call portion included) and is zero for every other action.
// The fields are unexported so a Move can only come from NewMove.
type Move struct {
	action Action
	amount int
}

// NewMove builds a move, rejecting unknown actions and negative amounts
func NewMove(action Action, amount int) (Move, error) {
	if !action.Valid() {
		return Move{}, fmt.Errorf("%w: unknown action %d", ErrMalformedMove, action)
	}
	if amount < 0 {
		return Move{}, fmt.Errorf("%w: amount %d is negative", ErrMalformedMove, amount)
	}
	if action != Raise {
		amount = 0
	}
	return Move{action: action, amount: amount}, nil
}

// ParseMove builds a move from loosely typed input such as a model response.
// Fractional amounts are truncated to whole chips.
func ParseMove(action string, amount float64) (Move, error) {
	a, err := ParseAction(action)
	if err != nil {
		return Move{}, err
	}
	if amount < 0 {
		return Move{}, fmt.Errorf("%w: amount %v is negative", ErrMalformedMove, amount)
	}
	return NewMove(a, int(amount))
}

// MustMove is NewMove for literals known to be valid
func MustMove(action Action, amount int) Move {
	m, err := NewMove(action, amount)
	if err != nil {
		panic(err)
	}
	return m
}

// FoldMove returns a fold
func FoldMove() Move { return Move{action: Fold} }

// CheckMove returns a check
func CheckMove() Move { return Move{action: Check} }

// CallMove returns a call
func CallMove() Move { return Move{action: Call} }

// RaiseMove returns a raise committing amount chips
func RaiseMove(amount int) (Move, error) { return NewMove(Raise, amount) }

// Action returns the move's action
func (m Move) Action() Action { return m.action }

// Amount returns the chips committed by a raise
func (m Move) Amount() int { return m.amount }

func (m Move) String() string {
	if m.action == Raise {
		return fmt.Sprintf("raise %d", m.amount)
	}
	return m.action.String()
}

type moveJSON struct {
	Action Action `json:"action"`
	Amount int    `json:"amount"`
}

func (m Move) MarshalJSON() ([]byte, error) {
	return json.Marshal(moveJSON{Action: m.action, Amount: m.amount})
}

func (m *Move) UnmarshalJSON(data []byte) error {
	var raw moveJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := NewMove(raw.Action, raw.Amount)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
