package advisor

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/lib/pq"

	"eduhub-backend/internal/ai"
	"eduhub-backend/internal/analytics"
	"eduhub-backend/internal/auth"
	"eduhub-backend/internal/focus"
	"eduhub-backend/internal/moods"
	"eduhub-backend/internal/scheduler"
)

func pendingTasks(r *http.Request, db *sql.DB, userID string) ([]scheduler.Task, error) {
	rows, err := db.QueryContext(r.Context(),
		`SELECT id, title, difficulty, urgency, deadline, dependencies
		 FROM todos WHERE user_id = $1 AND completed = FALSE
		 ORDER BY order_index, created_at`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []scheduler.Task
	for rows.Next() {
		var t scheduler.Task
		var deps pq.StringArray
		if err := rows.Scan(&t.ID, &t.Title, &t.Difficulty, &t.Urgency, &t.Deadline, &deps); err != nil {
			return nil, err
		}
		t.Dependencies = []string(deps)
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// AdvisorHandler answers with short study advice. Without a reachable
// model it falls back to canned guidance built from the same state.
func AdvisorHandler(db *sql.DB, client *ai.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := auth.UserID(r.Context())

		tasks, err := pendingTasks(r, db, userID)
		if err != nil {
			http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
			return
		}
		mood := moods.Latest(r.Context(), db, userID)
		minutes := focus.SecondsToday(r.Context(), db, userID, time.Now().UTC()) / 60

		titles := make([]string, len(tasks))
		for i, t := range tasks {
			titles[i] = t.Title
		}

		advice, err := client.Generate(r.Context(), ai.AdvisorPrompt(mood, minutes, titles))
		source := "gemini"
		if err != nil {
			log.Printf("[WARN] advisor generation failed: %v", err)
			advice = fallbackAdvice(mood, minutes, len(tasks))
			source = "fallback"
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"advice": advice,
			"source": source,
		})
	}
}

func ChatHandler(db *sql.DB, client *ai.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := auth.UserID(r.Context())

		var in struct {
			Message string `json:"message"`
		}
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.Message == "" {
			http.Error(w, "message required", http.StatusBadRequest)
			return
		}

		mood := moods.Latest(r.Context(), db, userID)
		reply, err := client.Generate(r.Context(), ai.ChatPrompt(in.Message, mood))
		source := "gemini"
		if err != nil {
			log.Printf("[WARN] chat generation failed: %v", err)
			reply = "I can't reach the advisor right now. Pick your most urgent task and give it 25 focused minutes."
			source = "fallback"
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"reply":  reply,
			"source": source,
		})
	}
}

type narration struct {
	Summary string   `json:"summary"`
	Tips    []string `json:"tips"`
}

// ScheduleHandler orders the user's pending tasks and narrates the
// result. The ordering always comes from the optimizer; the model
// only adds prose on top, and its failure never fails the request.
func ScheduleHandler(db *sql.DB, client *ai.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := auth.UserID(r.Context())

		tasks, err := pendingTasks(r, db, userID)
		if err != nil {
			http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
			return
		}

		mood := moods.Latest(r.Context(), db, userID)
		minutes := focus.SecondsToday(r.Context(), db, userID, time.Now().UTC()) / 60

		result := scheduler.New(scheduler.DefaultConfig()).Optimize(tasks, &scheduler.Context{
			Mood:         mood,
			FocusMinutes: minutes,
		})

		var note narration
		source := "fallback"
		if len(result.Schedule) > 0 {
			raw, err := client.Generate(r.Context(), ai.SchedulePrompt(result.Schedule, mood))
			if err == nil {
				if jsonErr := json.Unmarshal([]byte(ai.StripFence(raw)), &note); jsonErr == nil && note.Summary != "" {
					source = "gemini"
				} else {
					log.Printf("[WARN] schedule narration unparseable: %v", jsonErr)
				}
			} else {
				log.Printf("[WARN] schedule narration failed: %v", err)
			}
		}
		if source == "fallback" {
			note = fallbackNarration(result.Schedule, mood)
		}

		env := analytics.FromRequest(r, "schedule_optimized")
		env.UserID = userID
		env.Properties = map[string]any{
			"tasks":          len(tasks),
			"fitness":        result.Metadata.Fitness,
			"bestGeneration": result.Metadata.BestGeneration,
		}
		analytics.Log(r.Context(), db, env)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"schedule": result.Schedule,
			"metadata": result.Metadata,
			"summary":  note.Summary,
			"tips":     note.Tips,
			"source":   source,
		})
	}
}

func fallbackAdvice(mood string, minutes, pending int) string {
	switch {
	case pending == 0:
		return "Nothing pending. Log how you feel and bank some rest, or get ahead on next week's reading."
	case mood == "sad" || mood == "very_sad" || mood == "tired":
		return fmt.Sprintf("You have %d tasks waiting, but go easy today. Start with the smallest one, and stop after a short session.", pending)
	case minutes >= 120:
		return fmt.Sprintf("Strong day already (%d focused minutes). Knock out one more task, then take a real break.", minutes)
	default:
		return fmt.Sprintf("You have %d pending tasks. Start with the top-priority one and commit to 25 minutes.", pending)
	}
}

func fallbackNarration(schedule []scheduler.ScheduledTask, mood string) narration {
	if len(schedule) == 0 {
		return narration{Summary: "No pending tasks to schedule.", Tips: []string{"Add a task or enjoy the free time."}}
	}

	top := schedule
	if len(top) > 3 {
		top = top[:3]
	}
	tips := make([]string, 0, len(top)+1)
	for _, st := range top {
		tips = append(tips, fmt.Sprintf("Start with %q (%s priority).", st.Title, st.HeuristicPriority))
	}
	if mood == "tired" || mood == "sad" || mood == "very_sad" {
		tips = append(tips, "Keep sessions short and take breaks between tasks.")
	}
	return narration{
		Summary: fmt.Sprintf("Ordered %d tasks by urgency, deadline and difficulty, adjusted for your mood.", len(schedule)),
		Tips:    tips,
	}
}
