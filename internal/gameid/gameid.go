// Package gameid generates compact, time-sortable match identifiers.
//
// An id is a UUIDv7 rendered as 26 characters of lowercase Crockford base32,
// so ids sort lexically in creation order and survive URLs unescaped.
package gameid

import (
	"encoding/base32"
	"fmt"
	"io"

	"github.com/google/uuid"
)

// Crockford's base32 alphabet, lowercased
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// Length is the number of characters in an id
const Length = 26

var encoding = base32.NewEncoding(alphabet).WithPadding(base32.NoPadding)

// Generator creates ids from an optional entropy source
type Generator struct {
	rand io.Reader
}

// NewGenerator returns a generator reading randomness from r, or from
// crypto/rand when r is nil
func NewGenerator(r io.Reader) *Generator {
	return &Generator{rand: r}
}

// Generate creates a new match id using crypto/rand
func Generate() string {
	id, err := NewGenerator(nil).Generate()
	if err != nil {
		panic("failed to generate match id: " + err.Error())
	}
	return id
}

// Generate creates a new match id
func (g *Generator) Generate() (string, error) {
	var (
		u   uuid.UUID
		err error
	)
	if g.rand != nil {
		u, err = uuid.NewV7FromReader(g.rand)
	} else {
		u, err = uuid.NewV7()
	}
	if err != nil {
		return "", fmt.Errorf("generate uuidv7: %w", err)
	}
	return Encode(u), nil
}

// Encode renders a UUID in id form
func Encode(u uuid.UUID) string {
	return encoding.EncodeToString(u[:])
}

// Parse decodes an id back to its UUID
func Parse(id string) (uuid.UUID, error) {
	if len(id) != Length {
		return uuid.Nil, fmt.Errorf("match id must be exactly %d characters, got %d", Length, len(id))
	}
	raw, err := encoding.DecodeString(id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid match id %q: %w", id, err)
	}
	u, err := uuid.FromBytes(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid match id %q: %w", id, err)
	}
	return u, nil
}

// Validate checks that id decodes to a version 7 UUID
func Validate(id string) error {
	u, err := Parse(id)
	if err != nil {
		return err
	}
	if u.Version() != 7 {
		return fmt.Errorf("match id %q has version %d, expected 7", id, u.Version())
	}
	return nil
}
