package streaks

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"eduhub-backend/internal/auth"
)

func load(r *http.Request, db *sql.DB, userID string) (Streak, error) {
	var s Streak
	err := db.QueryRowContext(r.Context(),
		`SELECT current, longest, COALESCE(last_date, '') FROM streaks WHERE user_id = $1`, userID,
	).Scan(&s.Current, &s.Longest, &s.LastDate)
	if err == sql.ErrNoRows {
		return Streak{}, nil
	}
	return s, err
}

func GetHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, err := load(r, db, auth.UserID(r.Context()))
		if err != nil {
			http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(s)
	}
}

func UpdateHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := auth.UserID(r.Context())

		s, err := load(r, db, userID)
		if err != nil {
			http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
			return
		}

		s = Advance(s, time.Now().UTC())
		_, err = db.ExecContext(r.Context(),
			`INSERT INTO streaks (user_id, current, longest, last_date) VALUES ($1, $2, $3, $4)
			 ON CONFLICT (user_id) DO UPDATE SET current = $2, longest = $3, last_date = $4`,
			userID, s.Current, s.Longest, s.LastDate)
		if err != nil {
			http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(s)
	}
}
