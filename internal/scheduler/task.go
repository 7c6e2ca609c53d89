package scheduler

import "time"

// Task is the read-only input record for one pending todo.
// Only identity and scoring fields are carried here; the HTTP layer keeps
// the rest of the todo document and joins the result back by ID.
type Task struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Difficulty   string     `json:"difficulty"` // easy | medium | hard
	Urgency      int        `json:"urgency"`    // 1 (highest) .. 5 (lowest)
	Deadline     *time.Time `json:"deadline,omitempty"`
	Dependencies []string   `json:"dependencies,omitempty"` // stored, not interpreted
}

// Context carries the optional mood/focus snapshot for one optimization run.
type Context struct {
	Mood         string `json:"mood"`
	FocusMinutes int    `json:"focusMinutes"`
}

// Priority is the three-level heuristic label.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Weight maps a label to its fitness weight (high=3, medium=2, low=1).
func (p Priority) Weight() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	default:
		return 1
	}
}

// normDifficulty sanitizes the free-form difficulty field.
// Unrecognized values default to medium.
func normDifficulty(d string) string {
	switch d {
	case "easy", "medium", "hard":
		return d
	default:
		return "medium"
	}
}
