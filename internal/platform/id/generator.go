package id

import (
	"fmt"

	"github.com/google/uuid"
)

// Generator creates opaque IDs suitable for external references.
type Generator interface {
	NewID() (string, error)
}

// UUIDGenerator issues time-ordered UUIDv7 values so conflict and device ids
// sort by creation.
type UUIDGenerator struct{}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) NewID() (string, error) {
	value, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generate uuid: %w", err)
	}

	return value.String(), nil
}

// Valid reports whether raw parses as a UUID.
func Valid(raw string) bool {
	_, err := uuid.Parse(raw)
	return err == nil
}

// StaticGenerator returns preset ids in order; for tests and fixtures.
type StaticGenerator struct {
	IDs  []string
	next int
}

func (g *StaticGenerator) NewID() (string, error) {
	if g.next >= len(g.IDs) {
		return "", fmt.Errorf("static generator exhausted after %d ids", len(g.IDs))
	}
	out := g.IDs[g.next]
	g.next++
	return out, nil
}
