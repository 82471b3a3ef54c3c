package poker

import (
	"encoding/json"
	"testing"
)

func TestCardCreation(t *testing.T) {
	t.Parallel()
	aceSpades := NewCard(Ace, Spades)
	if aceSpades.Rank != Ace {
		t.Errorf("Expected rank Ace, got %d", aceSpades.Rank)
	}
	if aceSpades.String() != "As" {
		t.Errorf("Expected 'As', got %s", aceSpades.String())
	}
	if aceSpades.Name() != "Ace of Spades" {
		t.Errorf("Expected 'Ace of Spades', got %s", aceSpades.Name())
	}
	if got := NewCard(Ten, Hearts).Name(); got != "10 of Hearts" {
		t.Errorf("Expected '10 of Hearts', got %s", got)
	}
}

func TestParseCard(t *testing.T) {
	t.Parallel()
	tests := []struct {
		input   string
		want    Card
		wantErr bool
	}{
		{"As", NewCard(Ace, Spades), false},
		{"2h", NewCard(Two, Hearts), false},
		{"Kd", NewCard(King, Diamonds), false},
		{"Tc", NewCard(Ten, Clubs), false},
		{"10c", NewCard(Ten, Clubs), false},
		{"aS", NewCard(Ace, Spades), false},
		{"Xs", Card{}, true},
		{"Ax", Card{}, true},
		{"", Card{}, true},
		{"Asd", Card{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseCard(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseCard(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseCard(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestCardJSONRoundTrip(t *testing.T) {
	t.Parallel()
	hand := MustParseCards("As Kd")
	data, err := json.Marshal(hand)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `["As","Kd"]` {
		t.Errorf("unexpected encoding %s", data)
	}
	var decoded []Card
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded[0] != hand[0] || decoded[1] != hand[1] {
		t.Errorf("round trip mismatch: %v vs %v", decoded, hand)
	}
}

func TestCardNames(t *testing.T) {
	t.Parallel()
	got := CardNames(MustParseCards("Qs Jh 2c"))
	want := "['Queen of Spades', 'Jack of Hearts', '2 of Clubs']"
	if got != want {
		t.Errorf("CardNames = %s, want %s", got, want)
	}
}
