package domain

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// clock is a package-level time source so tests can freeze time via SetClock.
var clock = clockwork.NewRealClock()

// SetClock swaps the time source used for load stamps. Pass nil to reset to real time.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}

// Snapshot is a parsed table together with where and when it was loaded.
type Snapshot struct {
	Table    *Table
	Source   string
	LoadedAt time.Time
}

// NewSnapshot stamps a table with the current time in UTC.
func NewSnapshot(t *Table, source string) Snapshot {
	return Snapshot{Table: t, Source: source, LoadedAt: clock.Now().UTC()}
}
