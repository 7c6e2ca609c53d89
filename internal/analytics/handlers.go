package analytics

import (
	"database/sql"
	"encoding/json"
	"net/http"

	"eduhub-backend/internal/auth"
)

type eventPayload struct {
	Name           string         `json:"name"`
	SourceEventKey string         `json:"sourceEventKey"`
	Properties     map[string]any `json:"properties"`
}

// EventHandler accepts client-side events (app_opened and friends).
func EventHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload eventPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if payload.Name == "" {
			http.Error(w, "name required", http.StatusBadRequest)
			return
		}

		env := FromRequest(r, payload.Name)
		env.UserID = auth.UserID(r.Context())
		env.SourceEventKey = payload.SourceEventKey
		env.Properties = payload.Properties
		Log(r.Context(), db, env)

		w.WriteHeader(http.StatusNoContent)
	}
}
