package poker

import (
	"fmt"
	"strings"
)

// Suit represents a card suit
type Suit uint8

const (
	Hearts Suit = iota
	Diamonds
	Clubs
	Spades
)

// Suits lists every suit in generation order
var Suits = [...]Suit{Hearts, Diamonds, Clubs, Spades}

var suitNames = [...]string{"Hearts", "Diamonds", "Clubs", "Spades"}

// String returns the single-letter form of a suit ("h", "d", "c", "s")
func (s Suit) String() string {
	if int(s) < len(suitChars) {
		return string(suitChars[s])
	}
	return "?"
}

// Name returns the English name of the suit
func (s Suit) Name() string {
	if int(s) < len(suitNames) {
		return suitNames[s]
	}
	return "Unknown"
}

// Symbol returns the unicode glyph for the suit
func (s Suit) Symbol() string {
	switch s {
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	case Clubs:
		return "♣"
	case Spades:
		return "♠"
	default:
		return "?"
	}
}

// IsRed returns true if the suit is red (Hearts or Diamonds)
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

// Rank is a card rank in the ace-high convention, 2 through 14
type Rank uint8

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

const (
	suitChars = "hdcs"
	rankChars = "23456789TJQKA"
)

// Valid reports whether r is within Two..Ace
func (r Rank) Valid() bool {
	return r >= Two && r <= Ace
}

// String returns the single-character form of a rank ("2".."9", "T", "J", "Q", "K", "A")
func (r Rank) String() string {
	if !r.Valid() {
		return "?"
	}
	return string(rankChars[r-Two])
}

// Name returns the rank as written in the narrative ("10", "Jack", "Ace")
func (r Rank) Name() string {
	switch r {
	case Jack:
		return "Jack"
	case Queen:
		return "Queen"
	case King:
		return "King"
	case Ace:
		return "Ace"
	case Ten:
		return "10"
	}
	if r.Valid() {
		return r.String()
	}
	return "?"
}

// Card is an immutable playing card
type Card struct {
	Rank Rank `json:"rank"`
	Suit Suit `json:"suit"`
}

// NewCard creates a new card
func NewCard(rank Rank, suit Suit) Card {
	return Card{Rank: rank, Suit: suit}
}

// String returns the compact form of a card (e.g., "As", "Th")
func (c Card) String() string {
	return c.Rank.String() + c.Suit.String()
}

// Name returns the long form used in narratives (e.g., "Ace of Spades")
func (c Card) Name() string {
	return c.Rank.Name() + " of " + c.Suit.Name()
}

// Valid reports whether the card has a known rank and suit
func (c Card) Valid() bool {
	return c.Rank.Valid() && int(c.Suit) < len(suitNames)
}

// MarshalText encodes the card in its compact form
func (c Card) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("invalid card %d/%d", c.Rank, c.Suit)
	}
	return []byte(c.String()), nil
}

// UnmarshalText decodes a card from its compact form
func (c *Card) UnmarshalText(text []byte) error {
	parsed, err := ParseCard(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseCard parses a card such as "As", "Td" or "10h"
func ParseCard(s string) (Card, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "10") {
		s = "T" + s[2:]
	}
	if len(s) != 2 {
		return Card{}, fmt.Errorf("invalid card %q", s)
	}
	r := strings.IndexByte(rankChars, upper(s[0]))
	if r < 0 {
		return Card{}, fmt.Errorf("invalid rank in card %q", s)
	}
	su := strings.IndexByte(suitChars, lower(s[1]))
	if su < 0 {
		return Card{}, fmt.Errorf("invalid suit in card %q", s)
	}
	return NewCard(Two+Rank(r), Suit(su)), nil
}

// ParseCards parses a whitespace-separated list of cards
func ParseCards(s string) ([]Card, error) {
	fields := strings.Fields(s)
	cards := make([]Card, 0, len(fields))
	for _, f := range fields {
		c, err := ParseCard(f)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}

// MustParseCards is ParseCards for literals in tests and examples
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(err)
	}
	return cards
}

// CardNames renders cards in long form as a bracketed list
func CardNames(cards []Card) string {
	names := make([]string, len(cards))
	for i, c := range cards {
		names[i] = "'" + c.Name() + "'"
	}
	return "[" + strings.Join(names, ", ") + "]"
}

func upper(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - 'a' + 'A'
	}
	return b
}

func lower(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b - 'A' + 'a'
	}
	return b
}
