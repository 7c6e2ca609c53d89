package predict

import (
	"math"
	"time"
)

// PriorityInput mirrors the task fields the classifier looks at.
type PriorityInput struct {
	Deadline *time.Time `json:"deadline"`
	Urgency  int        `json:"urgency"`
}

// Priority buckets a task without a trained model. Overdue work and
// urgent near-term deadlines rank high, the rest falls back to the
// urgency scale.
func Priority(in PriorityInput, now time.Time) string {
	urgency := in.Urgency
	if urgency < 1 {
		urgency = 3
	}

	days := math.Inf(1)
	if in.Deadline != nil {
		days = math.Floor(in.Deadline.Sub(now).Hours() / 24)
	}

	switch {
	case days < 0:
		return "high"
	case days <= 1 && urgency <= 2:
		return "high"
	case days <= 3 || urgency <= 2:
		return "medium"
	case urgency >= 4:
		return "low"
	default:
		return "medium"
	}
}

const (
	minMoodHistory = 10
	moodWindow     = 30
)

// MoodPrediction is the answer of the rule-based mood predictor.
type MoodPrediction struct {
	Mood       string
	Confidence float64
	Message    string
}

// Mood votes over the most recent entries (newest first). Each entry
// contributes a base vote plus a recency bonus that decays linearly
// across the window, and confidence is the winner's share of the
// total weight. Under minMoodHistory entries the answer is "okay"
// with zero confidence.
func Mood(history []string) MoodPrediction {
	if len(history) < minMoodHistory {
		return MoodPrediction{
			Mood:    "okay",
			Message: "Need more mood history for accurate predictions",
		}
	}
	if len(history) > moodWindow {
		history = history[:moodWindow]
	}

	n := len(history)
	weights := map[string]float64{}
	var total float64
	for i, m := range history {
		w := 1.0 + float64(n-i)/float64(n)
		weights[m] += w
		total += w
	}

	best, bestWeight := "okay", 0.0
	for _, m := range history {
		if weights[m] > bestWeight {
			best, bestWeight = m, weights[m]
		}
	}
	return MoodPrediction{
		Mood:       best,
		Confidence: math.Round(bestWeight/total*100) / 100,
	}
}
