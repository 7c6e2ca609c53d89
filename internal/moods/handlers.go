package moods

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"eduhub-backend/internal/auth"
)

type Entry struct {
	ID   string    `json:"id"`
	Mood string    `json:"mood"`
	Note string    `json:"note"`
	Date time.Time `json:"date"`
}

func ListHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := auth.UserID(r.Context())

		limit := 100
		if raw := r.URL.Query().Get("limit"); raw != "" {
			if n, err := strconv.Atoi(raw); err == nil && n > 0 {
				limit = n
			}
		}

		rows, err := db.QueryContext(r.Context(),
			`SELECT id, mood, note, date FROM moods WHERE user_id = $1 ORDER BY date DESC LIMIT $2`,
			userID, limit)
		if err != nil {
			http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
			return
		}
		defer rows.Close()

		entries := []Entry{}
		for rows.Next() {
			var e Entry
			if err := rows.Scan(&e.ID, &e.Mood, &e.Note, &e.Date); err != nil {
				http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
				return
			}
			entries = append(entries, e)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(entries)
	}
}

func CreateHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := auth.UserID(r.Context())

		var in struct {
			Mood string     `json:"mood"`
			Note string     `json:"note"`
			Date *time.Time `json:"date"`
		}
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if in.Mood == "" {
			http.Error(w, "mood required", http.StatusBadRequest)
			return
		}

		e := Entry{ID: uuid.NewString(), Mood: in.Mood, Note: in.Note, Date: time.Now().UTC()}
		if in.Date != nil {
			e.Date = *in.Date
		}

		_, err := db.ExecContext(r.Context(),
			`INSERT INTO moods (id, user_id, mood, note, date) VALUES ($1, $2, $3, $4, $5)`,
			e.ID, userID, e.Mood, e.Note, e.Date)
		if err != nil {
			http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(e)
	}
}

func DeleteHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := auth.UserID(r.Context())
		id := r.PathValue("id")

		res, err := db.ExecContext(r.Context(),
			`DELETE FROM moods WHERE id = $1 AND user_id = $2`, id, userID)
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

// Latest returns the most recent mood label for a user, or "" when
// none has been logged.
func Latest(ctx context.Context, db *sql.DB, userID string) string {
	var mood string
	err := db.QueryRowContext(ctx,
		`SELECT mood FROM moods WHERE user_id = $1 ORDER BY date DESC LIMIT 1`, userID,
	).Scan(&mood)
	if err != nil {
		return ""
	}
	return mood
}
