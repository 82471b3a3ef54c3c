package game

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestNewMoveValidation(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		action  Action
		amount  int
		wantErr bool
	}{
		{"fold", Fold, 0, false},
		{"check", Check, 0, false},
		{"call", Call, 0, false},
		{"raise", Raise, 40, false},
		{"raise zero is constructible", Raise, 0, false},
		{"negative amount", Raise, -1, true},
		{"negative amount on call", Call, -5, true},
		{"unknown action", Action(7), 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewMove(tt.action, tt.amount)
			if tt.wantErr {
				if !errors.Is(err, ErrMalformedMove) {
					t.Fatalf("expected ErrMalformedMove, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if m.Action() != tt.action {
				t.Errorf("action = %v, want %v", m.Action(), tt.action)
			}
			if m.Amount() < 0 {
				t.Errorf("amount must be non-negative, got %d", m.Amount())
			}
		})
	}
}

func TestNonRaiseAmountIsDropped(t *testing.T) {
	t.Parallel()
	m := MustMove(Call, 30)
	if m.Amount() != 0 {
		t.Errorf("call should carry no amount, got %d", m.Amount())
	}
}

func TestParseMove(t *testing.T) {
	t.Parallel()
	m, err := ParseMove(" RAISE ", 25.9)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Action() != Raise || m.Amount() != 25 {
		t.Errorf("got %v", m)
	}

	if _, err := ParseMove("allin", 0); !errors.Is(err, ErrMalformedMove) {
		t.Errorf("expected ErrMalformedMove for unknown action, got %v", err)
	}
	if _, err := ParseMove("raise", -3); !errors.Is(err, ErrMalformedMove) {
		t.Errorf("expected ErrMalformedMove for negative amount, got %v", err)
	}
}

func TestMoveJSON(t *testing.T) {
	t.Parallel()
	data, err := json.Marshal(raise(60))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `{"action":"raise","amount":60}` {
		t.Errorf("unexpected encoding %s", data)
	}

	var m Move
	if err := json.Unmarshal([]byte(`{"action":"fold","amount":0}`), &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if m.Action() != Fold {
		t.Errorf("expected fold, got %v", m)
	}
	if err := json.Unmarshal([]byte(`{"action":"raise","amount":-1}`), &m); err == nil {
		t.Errorf("negative amount must not decode")
	}
	if err := json.Unmarshal([]byte(`{"action":"bet","amount":10}`), &m); err == nil {
		t.Errorf("unknown action must not decode")
	}
}
