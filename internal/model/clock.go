package model

import "github.com/jonboulle/clockwork"

// clock stamps TrainedAt. Tests freeze it via SetClock for stable artifacts.
var clock = clockwork.NewRealClock()

// SetClock swaps the training time source. Pass nil to reset to real time.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}
