package goquery

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// idGenerator produces synthetic record identifiers of the form
// <prefix>_<ms>_<random>. The millisecond part never repeats within a
// generator, even for ids requested in the same millisecond.
type idGenerator struct {
	prefix string

	mu   sync.Mutex
	last int64
}

func (g *idGenerator) next(now time.Time) string {
	g.mu.Lock()
	ms := now.UnixMilli()
	if ms <= g.last {
		ms = g.last + 1
	}
	g.last = ms
	g.mu.Unlock()

	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return fmt.Sprintf("%s_%d_%s", g.prefix, ms, suffix)
}
