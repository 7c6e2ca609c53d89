package ai

import (
	"fmt"
	"strings"

	"eduhub-backend/internal/scheduler"
)

// AdvisorPrompt asks for short study advice grounded in the user's
// current state.
func AdvisorPrompt(mood string, focusMinutes int, pendingTitles []string) string {
	var b strings.Builder
	b.WriteString("You are a supportive study advisor for a student planner app.\n")
	fmt.Fprintf(&b, "Current mood: %s. Focus minutes today: %d.\n", orUnknown(mood), focusMinutes)
	if len(pendingTitles) > 0 {
		b.WriteString("Pending tasks:\n")
		for _, t := range pendingTitles {
			fmt.Fprintf(&b, "- %s\n", t)
		}
	} else {
		b.WriteString("No pending tasks.\n")
	}
	b.WriteString("Give 2-3 short, concrete suggestions for the rest of the day. Plain text, no markdown.")
	return b.String()
}

// ChatPrompt wraps a free-form user message with the advisor persona.
func ChatPrompt(message, mood string) string {
	var b strings.Builder
	b.WriteString("You are a supportive study advisor for a student planner app. ")
	fmt.Fprintf(&b, "The student's current mood is %s. ", orUnknown(mood))
	b.WriteString("Answer briefly and practically.\n\nStudent: ")
	b.WriteString(message)
	return b.String()
}

// SchedulePrompt asks the model to narrate an already-computed
// ordering. The order itself is fixed, the model only explains it.
func SchedulePrompt(schedule []scheduler.ScheduledTask, mood string) string {
	var b strings.Builder
	b.WriteString("A scheduling engine ordered a student's tasks for today. ")
	fmt.Fprintf(&b, "The student's mood is %s.\n", orUnknown(mood))
	b.WriteString("Ordered tasks:\n")
	for _, st := range schedule {
		fmt.Fprintf(&b, "%d. %s (priority %s, score %.1f)\n",
			st.GARank, st.Title, st.HeuristicPriority, st.HeuristicScore)
	}
	b.WriteString("\nRespond with JSON only: {\"summary\": string, \"tips\": [string]}. ")
	b.WriteString("Do not change the task order. Keep the summary under 60 words.")
	return b.String()
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
