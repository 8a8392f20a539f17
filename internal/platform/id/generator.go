package id

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// Generator mints opaque identifiers. Sync runs are tagged with one so a
// single pass can be traced through logs and job responses.
type Generator interface {
	NewID() (string, error)
}

// RandomGenerator produces hex-encoded identifiers from crypto/rand.
type RandomGenerator struct {
	size int
}

func NewRandomGenerator() *RandomGenerator {
	return &RandomGenerator{size: 16}
}

func (g *RandomGenerator) NewID() (string, error) {
	n := g.size
	if n <= 0 {
		n = 16
	}

	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate id: %w", err)
	}

	return hex.EncodeToString(buf), nil
}
