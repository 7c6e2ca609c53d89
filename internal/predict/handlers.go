package predict

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"eduhub-backend/internal/auth"
)

func PriorityHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in PriorityInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"priority": Priority(in, time.Now().UTC()),
			"method":   "rule-based",
		})
	}
}

func MoodHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := auth.UserID(r.Context())

		rows, err := db.QueryContext(r.Context(),
			`SELECT mood FROM moods WHERE user_id = $1 ORDER BY date DESC LIMIT 30`, userID)
		if err != nil {
			http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
			return
		}
		defer rows.Close()

		var history []string
		for rows.Next() {
			var m string
			if err := rows.Scan(&m); err != nil {
				http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
				return
			}
			history = append(history, m)
		}

		pred := Mood(history)
		out := map[string]any{
			"predictedMood": pred.Mood,
			"confidence":    pred.Confidence,
			"method":        "rule-based",
		}
		if pred.Message != "" {
			out["message"] = pred.Message
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(out)
	}
}
