package core

import (
	"testing"
	"time"
)

func TestNewGameResult(t *testing.T) {
	tests := []struct {
		name     string
		elapsed  time.Duration
		expected GameResult
		text     string
	}{
		{"zero", 0, GameResult{}, "00:00.000"},
		{"sub-second", 250 * time.Millisecond, GameResult{Milliseconds: 250}, "00:00.250"},
		{"mixed", 2*time.Minute + 5*time.Second + 42*time.Millisecond, GameResult{2, 5, 42}, "02:05.042"},
		{"negative clamps", -time.Second, GameResult{}, "00:00.000"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := NewGameResult(tc.elapsed)
			if got != tc.expected {
				t.Errorf("NewGameResult(%v) = %+v, expected %+v", tc.elapsed, got, tc.expected)
			}
			if got.String() != tc.text {
				t.Errorf("String() = %q, expected %q", got.String(), tc.text)
			}
		})
	}
}

func TestGameResultDuration(t *testing.T) {
	d := 3*time.Minute + 7*time.Second + 9*time.Millisecond
	if got := NewGameResult(d).Duration(); got != d {
		t.Errorf("Duration() = %v, expected %v", got, d)
	}
}

func TestManualClock(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewManualClock(start)
	c.Advance(150 * time.Millisecond)

	if got := c.Now().Sub(start); got != 150*time.Millisecond {
		t.Errorf("clock advanced %v, expected 150ms", got)
	}
}
