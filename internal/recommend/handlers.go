package recommend

import (
	"database/sql"
	"encoding/json"
	"net/http"

	"eduhub-backend/internal/auth"
)

// Handler recommends resources by collaborative filtering over the
// ratings every user has left on their saved resources.
func Handler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := auth.UserID(r.Context())

		var in struct {
			Limit int `json:"limit"`
		}
		// body is optional
		_ = json.NewDecoder(r.Body).Decode(&in)
		if in.Limit <= 0 {
			in.Limit = 10
		}

		rows, err := db.QueryContext(r.Context(),
			`SELECT user_id, COALESCE(NULLIF(url, ''), title), rating
			 FROM resources WHERE rating IS NOT NULL`)
		if err != nil {
			http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
			return
		}
		defer rows.Close()

		ratings := Ratings{}
		for rows.Next() {
			var uid, item string
			var rating float64
			if err := rows.Scan(&uid, &item, &rating); err != nil {
				http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
				return
			}
			if ratings[uid] == nil {
				ratings[uid] = map[string]float64{}
			}
			ratings[uid][item] = rating
		}

		w.Header().Set("Content-Type", "application/json")
		if len(ratings[userID]) < MinRatings {
			json.NewEncoder(w).Encode(map[string]any{
				"recommendations": []string{},
				"message":         "Insufficient data for recommendations",
			})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"recommendations": ForUser(ratings, userID, in.Limit),
		})
	}
}
