// Package ident generates the numeric identifiers used for clients and sessions.
// Identifiers are positive, unique per generator and hard to guess from one
// another: the sequence starts at a random offset and advances by random steps.
package ident

import (
	"math/rand/v2"
	"sync/atomic"
)

const (
	startMin     = 1_000_000
	startMax     = 10_000_000
	incrementMin = 10_000
	incrementMax = 100_000
)

// Generator hands out unique positive ids. It is safe for concurrent use.
type Generator struct {
	current atomic.Int64
}

// New returns a Generator starting at a random offset.
func New() *Generator {
	g := &Generator{}
	g.current.Store(int64(startMin + rand.IntN(startMax-startMin+1))) //nolint: gosec

	return g
}

// Next returns the next id. At least 21,000 ids fit before the int32 range is
// exhausted, which is the range clients are expected to handle.
func (g *Generator) Next() int {
	step := int64(incrementMin + rand.IntN(incrementMax-incrementMin+1)) //nolint: gosec

	return int(g.current.Add(step))
}
