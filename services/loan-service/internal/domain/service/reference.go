package service

import (
	"strconv"
	"sync/atomic"
	"time"
)

// Reference number prefixes.
const (
	UnderwritingPrefix = "UW"
	SanctionPrefix     = "SNCT"
)

// ReferenceGenerator issues "<prefix><unix-nanos>" identifiers. Values are
// strictly increasing within a process even when the clock stalls or steps
// backwards.
type ReferenceGenerator struct {
	prefix string
	now    func() time.Time
	last   atomic.Int64
}

// NewReferenceGenerator returns a generator; a nil clock means time.Now.
func NewReferenceGenerator(prefix string, now func() time.Time) *ReferenceGenerator {
	if now == nil {
		now = time.Now
	}
	return &ReferenceGenerator{prefix: prefix, now: now}
}

// Next returns a fresh reference number.
func (g *ReferenceGenerator) Next() string {
	for {
		prev := g.last.Load()
		n := g.now().UnixNano()
		if n <= prev {
			n = prev + 1
		}
		if g.last.CompareAndSwap(prev, n) {
			return g.prefix + strconv.FormatInt(n, 10)
		}
	}
}
