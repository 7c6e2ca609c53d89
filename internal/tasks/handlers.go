package tasks

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"eduhub-backend/internal/analytics"
	"eduhub-backend/internal/auth"
)

const selectCols = `id, title, completed, deadline, reminder, reminder_time,
	difficulty, urgency, estimate_minutes, dependencies, source, order_index, context, created_at`

func scanTodo(row interface{ Scan(...any) error }) (Todo, error) {
	var t Todo
	var deps pq.StringArray
	var contextRaw []byte
	err := row.Scan(&t.ID, &t.Title, &t.Completed, &t.Deadline, &t.Reminder, &t.ReminderTime,
		&t.Difficulty, &t.Urgency, &t.EstimateMinutes, &deps, &t.Source, &t.OrderIndex,
		&contextRaw, &t.CreatedAt)
	t.Dependencies = []string(deps)
	if t.Dependencies == nil {
		t.Dependencies = []string{}
	}
	t.Context = json.RawMessage(contextRaw)
	if len(t.Context) == 0 {
		t.Context = json.RawMessage(`{}`)
	}
	return t, err
}

func ListHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := auth.UserID(r.Context())
		rows, err := db.QueryContext(r.Context(),
			`SELECT `+selectCols+` FROM todos WHERE user_id = $1 ORDER BY order_index, created_at DESC`, userID)
		if err != nil {
			http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
			return
		}
		defer rows.Close()

		todos := []Todo{}
		for rows.Next() {
			t, err := scanTodo(rows)
			if err != nil {
				http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
				return
			}
			todos = append(todos, t)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(todos)
	}
}

func CreateHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := auth.UserID(r.Context())

		var in todoInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if in.Title == nil || *in.Title == "" {
			http.Error(w, "title required", http.StatusBadRequest)
			return
		}

		t := Todo{
			ID:           uuid.NewString(),
			Title:        *in.Title,
			Difficulty:   "medium",
			Urgency:      3,
			Source:       "manual",
			Dependencies: []string{},
			Context:      json.RawMessage(`{}`),
			CreatedAt:    time.Now().UTC(),
		}
		if in.Completed != nil {
			t.Completed = *in.Completed
		}
		t.Deadline = in.Deadline
		if in.Reminder != nil {
			t.Reminder = *in.Reminder
		}
		t.ReminderTime = in.ReminderTime
		if in.Difficulty != nil && *in.Difficulty != "" {
			t.Difficulty = *in.Difficulty
		}
		if in.Urgency != nil {
			t.Urgency = *in.Urgency
		}
		if in.EstimateMinutes != nil {
			t.EstimateMinutes = *in.EstimateMinutes
		}
		if in.Dependencies != nil {
			t.Dependencies = in.Dependencies
		}
		if in.Source != nil && *in.Source != "" {
			t.Source = *in.Source
		}
		if len(in.Context) > 0 {
			t.Context = in.Context
		}

		err := db.QueryRowContext(r.Context(),
			`INSERT INTO todos (id, user_id, title, completed, deadline, reminder, reminder_time,
				difficulty, urgency, estimate_minutes, dependencies, source, order_index, context, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12,
				(SELECT COALESCE(MAX(order_index), 0) + 1 FROM todos WHERE user_id = $2), $13, $14)
			 RETURNING order_index`,
			t.ID, userID, t.Title, t.Completed, t.Deadline, t.Reminder, t.ReminderTime,
			t.Difficulty, t.Urgency, t.EstimateMinutes, pq.Array(t.Dependencies), t.Source,
			[]byte(t.Context), t.CreatedAt,
		).Scan(&t.OrderIndex)
		if err != nil {
			http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
			return
		}

		env := analytics.FromRequest(r, "task_created")
		env.UserID = userID
		env.Properties = map[string]any{"taskId": t.ID, "source": t.Source}
		analytics.Log(r.Context(), db, env)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(t)
	}
}

func UpdateHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := auth.UserID(r.Context())
		id := r.PathValue("id")

		var in todoInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		existing, err := scanTodo(db.QueryRowContext(r.Context(),
			`SELECT `+selectCols+` FROM todos WHERE id = $1 AND user_id = $2`, id, userID))
		if err == sql.ErrNoRows {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		if err != nil {
			http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
			return
		}

		wasCompleted := existing.Completed
		if in.Title != nil {
			existing.Title = *in.Title
		}
		if in.Completed != nil {
			existing.Completed = *in.Completed
		}
		if in.Deadline != nil {
			existing.Deadline = in.Deadline
		}
		if in.Reminder != nil {
			existing.Reminder = *in.Reminder
		}
		if in.ReminderTime != nil {
			existing.ReminderTime = in.ReminderTime
		}
		if in.Difficulty != nil {
			existing.Difficulty = *in.Difficulty
		}
		if in.Urgency != nil {
			existing.Urgency = *in.Urgency
		}
		if in.EstimateMinutes != nil {
			existing.EstimateMinutes = *in.EstimateMinutes
		}
		if in.Dependencies != nil {
			existing.Dependencies = in.Dependencies
		}
		if in.Source != nil {
			existing.Source = *in.Source
		}
		if len(in.Context) > 0 {
			existing.Context = in.Context
		}

		_, err = db.ExecContext(r.Context(),
			`UPDATE todos SET title = $1, completed = $2, deadline = $3, reminder = $4,
				reminder_time = $5, difficulty = $6, urgency = $7, estimate_minutes = $8,
				dependencies = $9, source = $10, context = $11
			 WHERE id = $12 AND user_id = $13`,
			existing.Title, existing.Completed, existing.Deadline, existing.Reminder,
			existing.ReminderTime, existing.Difficulty, existing.Urgency, existing.EstimateMinutes,
			pq.Array(existing.Dependencies), existing.Source, []byte(existing.Context), id, userID)
		if err != nil {
			http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
			return
		}

		if !wasCompleted && existing.Completed {
			env := analytics.FromRequest(r, "task_completed")
			env.UserID = userID
			env.Properties = map[string]any{"taskId": id}
			analytics.Log(r.Context(), db, env)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(existing)
	}
}

func DeleteHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := auth.UserID(r.Context())
		id := r.PathValue("id")

		res, err := db.ExecContext(r.Context(),
			`DELETE FROM todos WHERE id = $1 AND user_id = $2`, id, userID)
		if err != nil {
			http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
			return
		}
		if n, _ := res.RowsAffected(); n == 0 {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// ReorderHandler persists a client-provided ordering. Ids missing from
// the list keep their old index and sort after the reordered ones.
func ReorderHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := auth.UserID(r.Context())

		var payload struct {
			Order []string `json:"order"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		tx, err := db.BeginTx(r.Context(), nil)
		if err != nil {
			http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
			return
		}
		defer tx.Rollback()

		for i, id := range payload.Order {
			if _, err := tx.ExecContext(r.Context(),
				`UPDATE todos SET order_index = $1 WHERE id = $2 AND user_id = $3`,
				i+1, id, userID); err != nil {
				http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
				return
			}
		}
		if err := tx.Commit(); err != nil {
			http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"reordered": len(payload.Order)})
	}
}
