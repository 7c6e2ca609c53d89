package tasks

import (
	"encoding/json"
	"time"
)

type Todo struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Completed       bool       `json:"completed"`
	Deadline        *time.Time `json:"deadline,omitempty"`
	Reminder        bool       `json:"reminder"`
	ReminderTime    *time.Time `json:"reminderTime,omitempty"`
	Difficulty      string     `json:"difficulty"`
	Urgency         int        `json:"urgency"`
	EstimateMinutes int        `json:"estimateMinutes"`
	Dependencies    []string   `json:"dependencies"`
	Source          string     `json:"source"`
	OrderIndex      int        `json:"orderIndex"`
	// Context carries arbitrary client metadata (location, device, notes).
	Context   json.RawMessage `json:"context"`
	CreatedAt time.Time       `json:"createdAt"`
}

type todoInput struct {
	Title           *string         `json:"title"`
	Completed       *bool           `json:"completed"`
	Deadline        *time.Time      `json:"deadline"`
	Reminder        *bool           `json:"reminder"`
	ReminderTime    *time.Time      `json:"reminderTime"`
	Difficulty      *string         `json:"difficulty"`
	Urgency         *int            `json:"urgency"`
	EstimateMinutes *int            `json:"estimateMinutes"`
	Dependencies    []string        `json:"dependencies"`
	Source          *string         `json:"source"`
	Context         json.RawMessage `json:"context"`
}
