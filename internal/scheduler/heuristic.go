package scheduler

import (
	"math"
	"strings"
	"time"
)

// ScorerConfig tunes how task signals combine into a heuristic score.
type ScorerConfig struct {
	UrgencyWeight    float64
	DaysWeight       float64
	DifficultyWeight float64
	HighThreshold    float64
	MediumThreshold  float64
}

// DefaultScorerConfig returns the reference weights and thresholds.
func DefaultScorerConfig() ScorerConfig {
	return ScorerConfig{
		UrgencyWeight:    5.0,
		DaysWeight:       -2.0,
		DifficultyWeight: 1.0,
		HighThreshold:    18.0,
		MediumThreshold:  10.0,
	}
}

// Scorer converts one task plus optional mood context into a priority label
// and a numeric score. It never fails: malformed fields fall back to neutral
// defaults instead of surfacing errors.
type Scorer struct {
	cfg ScorerConfig
}

// NewScorer creates a scorer. Zero-value weights/thresholds are filled with
// the reference defaults.
func NewScorer(cfg ScorerConfig) *Scorer {
	def := DefaultScorerConfig()
	if cfg.UrgencyWeight == 0 {
		cfg.UrgencyWeight = def.UrgencyWeight
	}
	if cfg.DaysWeight == 0 {
		cfg.DaysWeight = def.DaysWeight
	}
	if cfg.DifficultyWeight == 0 {
		cfg.DifficultyWeight = def.DifficultyWeight
	}
	if cfg.HighThreshold == 0 {
		cfg.HighThreshold = def.HighThreshold
	}
	if cfg.MediumThreshold == 0 {
		cfg.MediumThreshold = def.MediumThreshold
	}
	return &Scorer{cfg: cfg}
}

// neutralHorizonDays stands in for an absent or unparseable deadline.
const neutralHorizonDays = 7.0

// Score returns the label and numeric score for one task at the given time.
func (s *Scorer) Score(t Task, ctx *Context, now time.Time) (Priority, float64) {
	urgencyScore := float64(6 - clampInt(t.Urgency, 1, 5))

	days := neutralHorizonDays
	if d, known := daysRemaining(t, now); known {
		days = clampFloat(d, -7, 21)
	}

	difficulty := normDifficulty(t.Difficulty)
	difficultyScore := map[string]float64{"easy": 1, "medium": 2, "hard": 3}[difficulty]

	raw := s.cfg.UrgencyWeight*urgencyScore +
		s.cfg.DaysWeight*days +
		s.cfg.DifficultyWeight*difficultyScore

	// Fuzzy mood adjustment.
	if mood := normMood(ctx); mood != "" {
		switch {
		case (mood == "okay" || mood == "focused") && difficulty == "medium":
			raw = math.Max(raw, s.cfg.HighThreshold)
		case (mood == "sad" || mood == "very_sad" || mood == "tired") && difficulty == "hard":
			raw -= 4
		}
	}

	switch {
	case raw >= s.cfg.HighThreshold:
		return PriorityHigh, raw
	case raw >= s.cfg.MediumThreshold:
		return PriorityMedium, raw
	default:
		return PriorityLow, raw
	}
}

// daysRemaining reports whole days until the deadline (floored, so an
// overdue deadline counts negative) and whether a deadline was present.
func daysRemaining(t Task, now time.Time) (float64, bool) {
	if t.Deadline == nil {
		return 0, false
	}
	return math.Floor(t.Deadline.Sub(now).Hours() / 24), true
}

func normMood(ctx *Context) string {
	if ctx == nil {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(ctx.Mood))
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
