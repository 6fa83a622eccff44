package core

import (
	"fmt"
	"time"
)

// GameResult is the finalized elapsed time of a won round.
type GameResult struct {
	Minutes      int
	Seconds      int
	Milliseconds int
}

// NewGameResult splits an elapsed duration into minutes, seconds and milliseconds.
// Negative durations are treated as zero.
func NewGameResult(elapsed time.Duration) GameResult {
	if elapsed < 0 {
		elapsed = 0
	}
	ms := elapsed.Milliseconds()
	return GameResult{
		Minutes:      int(ms / 60000),
		Seconds:      int(ms / 1000 % 60),
		Milliseconds: int(ms % 1000),
	}
}

// Duration converts the breakdown back into a duration.
func (r GameResult) Duration() time.Duration {
	return time.Duration(r.Minutes)*time.Minute +
		time.Duration(r.Seconds)*time.Second +
		time.Duration(r.Milliseconds)*time.Millisecond
}

// String formats the result as MM:SS.mmm.
func (r GameResult) String() string {
	return fmt.Sprintf("%02d:%02d.%03d", r.Minutes, r.Seconds, r.Milliseconds)
}
