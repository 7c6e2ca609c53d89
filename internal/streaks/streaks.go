package streaks

import "time"

const dayFormat = "2006-01-02"

type Streak struct {
	Current  int    `json:"current"`
	Longest  int    `json:"longest"`
	LastDate string `json:"lastDate"`
}

// Advance applies one activity day to a streak. Repeating the same day
// is a no-op, the day after the last one extends the run, any other
// day restarts it at 1.
func Advance(s Streak, today time.Time) Streak {
	day := today.UTC().Format(dayFormat)
	if s.LastDate == day {
		return s
	}

	if last, err := time.Parse(dayFormat, s.LastDate); err == nil &&
		last.AddDate(0, 0, 1).Format(dayFormat) == day {
		s.Current++
	} else {
		s.Current = 1
	}

	if s.Current > s.Longest {
		s.Longest = s.Current
	}
	s.LastDate = day
	return s
}
