package ledger

import (
	"fmt"
	"strconv"
	"sync"
	"time"
)

// idGenerator issues collection-unique transaction ids. Ids are the wall
// clock in milliseconds, with a sequence suffix when two ids land on the
// same millisecond (or the clock steps backwards), so rapid successive
// inserts can never collide.
type idGenerator struct {
	mu   sync.Mutex
	now  func() time.Time
	last int64
	seq  int
}

func newIDGenerator(now func() time.Time) *idGenerator {
	if now == nil {
		now = time.Now
	}
	return &idGenerator{now: now}
}

func (g *idGenerator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	ms := g.now().UnixMilli()
	if ms <= g.last {
		g.seq++
		return fmt.Sprintf("%d-%d", g.last, g.seq)
	}
	g.last = ms
	g.seq = 0
	return strconv.FormatInt(ms, 10)
}
