package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrNoDecision is returned when a response holds no recognisable action
var ErrNoDecision = errors.New("no action in response")

// Decision is a move as proposed by a model, before validation against
// the table
type Decision struct {
	Action    string  `json:"action"`
	Amount    float64 `json:"amount"`
	Reasoning string  `json:"reasoning,omitempty"`
}

// ParseDecision extracts a decision from model output. It accepts a bare
// JSON object, an object wrapped in prose or a code fence, amounts given as
// numbers or strings, and "bet" as a synonym for "raise".
func ParseDecision(text string) (Decision, error) {
	raw := strings.TrimSpace(text)
	if raw == "" {
		return Decision{}, fmt.Errorf("%w: empty response", ErrNoDecision)
	}

	var parsed map[string]any
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		cleaned := extractJSONObject(raw)
		if cleaned == "" {
			return Decision{}, fmt.Errorf("%w: %q", ErrNoDecision, truncate(raw, 120))
		}
		if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
			return Decision{}, fmt.Errorf("%w: %v", ErrNoDecision, err)
		}
	}
	return coerceDecision(parsed)
}

func extractJSONObject(s string) string {
	start := strings.Index(s, "{")
	if start < 0 {
		return ""
	}
	end := strings.LastIndex(s, "}")
	if end < start {
		return ""
	}
	return strings.TrimSpace(s[start : end+1])
}

func coerceDecision(parsed map[string]any) (Decision, error) {
	var d Decision
	if v, ok := parsed["action"].(string); ok {
		d.Action = strings.ToLower(strings.TrimSpace(v))
	}
	switch d.Action {
	case "bet":
		d.Action = "raise"
	case "fold", "check", "call", "raise":
	default:
		return Decision{}, fmt.Errorf("%w: unknown action %q", ErrNoDecision, d.Action)
	}

	switch amt := parsed["amount"].(type) {
	case float64:
		d.Amount = amt
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(amt), 64)
		if err != nil && d.Action == "raise" {
			return Decision{}, fmt.Errorf("%w: raise amount %q is not a number", ErrNoDecision, amt)
		}
		d.Amount = f
	}
	if d.Action == "raise" && d.Amount <= 0 {
		return Decision{}, fmt.Errorf("%w: raise without a positive amount", ErrNoDecision)
	}
	if d.Action != "raise" {
		d.Amount = 0
	}
	if v, ok := parsed["reasoning"].(string); ok {
		d.Reasoning = v
	}
	return d, nil
}
