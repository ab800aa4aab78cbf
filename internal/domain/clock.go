package domain

import "github.com/jonboulle/clockwork"

// clock stamps ProcessedAt on report events. Tests freeze it via SetClock so
// serialized events are reproducible.
var clock = clockwork.NewRealClock()

// SetClock swaps the time source used by StampReportEvent. Pass nil to reset to real time.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}
