package streaks

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestAdvanceFirstActivity(t *testing.T) {
	s := Advance(Streak{}, day("2026-03-10"))
	assert.Equal(t, 1, s.Current)
	assert.Equal(t, 1, s.Longest)
	assert.Equal(t, "2026-03-10", s.LastDate)
}

func TestAdvanceSameDayIsNoOp(t *testing.T) {
	start := Streak{Current: 4, Longest: 9, LastDate: "2026-03-10"}
	s := Advance(start, day("2026-03-10"))
	assert.Equal(t, start, s)
}

func TestAdvanceConsecutiveDayExtends(t *testing.T) {
	s := Advance(Streak{Current: 4, Longest: 9, LastDate: "2026-03-10"}, day("2026-03-11"))
	assert.Equal(t, 5, s.Current)
	assert.Equal(t, 9, s.Longest)
}

func TestAdvanceGapResets(t *testing.T) {
	s := Advance(Streak{Current: 4, Longest: 9, LastDate: "2026-03-10"}, day("2026-03-13"))
	assert.Equal(t, 1, s.Current)
	assert.Equal(t, 9, s.Longest)
}

func TestAdvanceUpdatesLongest(t *testing.T) {
	s := Advance(Streak{Current: 9, Longest: 9, LastDate: "2026-03-10"}, day("2026-03-11"))
	assert.Equal(t, 10, s.Current)
	assert.Equal(t, 10, s.Longest)
}

func TestAdvanceAcrossMonthBoundary(t *testing.T) {
	s := Advance(Streak{Current: 2, Longest: 2, LastDate: "2026-02-28"}, day("2026-03-01"))
	assert.Equal(t, 3, s.Current)
}
