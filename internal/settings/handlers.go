package settings

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"eduhub-backend/internal/auth"
)

// Defaults are merged under whatever the user has stored, so new keys
// appear without a migration.
func defaults() map[string]any {
	return map[string]any{
		"theme":              "system",
		"notifications":      true,
		"focusDefaultLength": 25,
		"dayStartHour":       8,
		"language":           "en",
	}
}

func GetHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := auth.UserID(r.Context())

		merged := defaults()
		var raw []byte
		err := db.QueryRowContext(r.Context(),
			`SELECT settings FROM settings WHERE user_id = $1`, userID,
		).Scan(&raw)
		if err != nil && err != sql.ErrNoRows {
			http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
			return
		}
		if err == nil {
			var stored map[string]any
			if json.Unmarshal(raw, &stored) == nil {
				for k, v := range stored {
					merged[k] = v
				}
			}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(merged)
	}
}

func PutHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := auth.UserID(r.Context())

		var incoming map[string]any
		if err := json.NewDecoder(r.Body).Decode(&incoming); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		raw, err := json.Marshal(incoming)
		if err != nil {
			http.Error(w, "invalid settings", http.StatusBadRequest)
			return
		}

		now := time.Now().UTC()
		_, err = db.ExecContext(r.Context(),
			`INSERT INTO settings (user_id, settings, created_at, updated_at) VALUES ($1, $2, $3, $3)
			 ON CONFLICT (user_id) DO UPDATE SET settings = $2, updated_at = $3`,
			userID, raw, now)
		if err != nil {
			http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
			return
		}

		merged := defaults()
		for k, v := range incoming {
			merged[k] = v
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(merged)
	}
}
