package focus

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"eduhub-backend/internal/analytics"
	"eduhub-backend/internal/auth"
)

type Session struct {
	ID        string     `json:"id"`
	StartTime time.Time  `json:"startTime"`
	EndTime   *time.Time `json:"endTime,omitempty"`
	Duration  int        `json:"duration"` // seconds
	Status    string     `json:"status"`
}

// StartHandler opens a focus session. Any session still marked active
// is closed first so a crashed client cannot leave two running.
func StartHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := auth.UserID(r.Context())
		now := time.Now().UTC()

		_, err := db.ExecContext(r.Context(),
			`UPDATE focus_sessions SET status = 'abandoned', end_time = $1
			 WHERE user_id = $2 AND status = 'active'`, now, userID)
		if err != nil {
			http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
			return
		}

		s := Session{ID: uuid.NewString(), StartTime: now, Status: "active"}
		_, err = db.ExecContext(r.Context(),
			`INSERT INTO focus_sessions (id, user_id, start_time, status) VALUES ($1, $2, $3, $4)`,
			s.ID, userID, s.StartTime, s.Status)
		if err != nil {
			http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(s)
	}
}

func StopHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := auth.UserID(r.Context())
		now := time.Now().UTC()

		var s Session
		err := db.QueryRowContext(r.Context(),
			`SELECT id, start_time FROM focus_sessions
			 WHERE user_id = $1 AND status = 'active'
			 ORDER BY start_time DESC LIMIT 1`, userID,
		).Scan(&s.ID, &s.StartTime)
		if err == sql.ErrNoRows {
			http.Error(w, "no active session", http.StatusNotFound)
			return
		}
		if err != nil {
			http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
			return
		}

		s.Duration = int(now.Sub(s.StartTime).Seconds())
		s.EndTime = &now
		s.Status = "completed"

		_, err = db.ExecContext(r.Context(),
			`UPDATE focus_sessions SET end_time = $1, duration = $2, status = 'completed' WHERE id = $3`,
			now, s.Duration, s.ID)
		if err != nil {
			http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
			return
		}

		env := analytics.FromRequest(r, "focus_stopped")
		env.UserID = userID
		env.Properties = map[string]any{"sessionId": s.ID, "seconds": s.Duration}
		analytics.Log(r.Context(), db, env)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(s)
	}
}

// SecondsToday sums completed session seconds since midnight UTC.
func SecondsToday(ctx context.Context, db *sql.DB, userID string, now time.Time) int {
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	var seconds int
	err := db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(duration), 0) FROM focus_sessions
		 WHERE user_id = $1 AND status = 'completed' AND start_time >= $2`,
		userID, dayStart,
	).Scan(&seconds)
	if err != nil {
		return 0
	}
	return seconds
}

func TodayHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := auth.UserID(r.Context())
		seconds := SecondsToday(r.Context(), db, userID, time.Now().UTC())

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"totalSeconds": seconds})
	}
}
