package resources

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"eduhub-backend/internal/auth"
)

type Resource struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	Description string    `json:"description"`
	Rating      *float64  `json:"rating,omitempty"`
	Favorite    bool      `json:"favorite"`
	CreatedAt   time.Time `json:"createdAt"`
}

func ListHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := auth.UserID(r.Context())

		query := `SELECT id, type, title, url, description, rating, favorite, created_at
			FROM resources WHERE user_id = $1`
		args := []any{userID}
		if kind := r.URL.Query().Get("type"); kind != "" {
			query += ` AND type = $2`
			args = append(args, kind)
		}
		query += ` ORDER BY created_at DESC`

		rows, err := db.QueryContext(r.Context(), query, args...)
		if err != nil {
			http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
			return
		}
		defer rows.Close()

		out := []Resource{}
		for rows.Next() {
			var res Resource
			if err := rows.Scan(&res.ID, &res.Type, &res.Title, &res.URL,
				&res.Description, &res.Rating, &res.Favorite, &res.CreatedAt); err != nil {
				http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
				return
			}
			out = append(out, res)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(out)
	}
}

func CreateHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := auth.UserID(r.Context())

		var in struct {
			Type        string   `json:"type"`
			Title       string   `json:"title"`
			URL         string   `json:"url"`
			Description string   `json:"description"`
			Rating      *float64 `json:"rating"`
			Favorite    bool     `json:"favorite"`
		}
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if in.Title == "" {
			http.Error(w, "title required", http.StatusBadRequest)
			return
		}
		if in.Type == "" {
			in.Type = "youtube"
		}

		res := Resource{
			ID: uuid.NewString(), Type: in.Type, Title: in.Title, URL: in.URL,
			Description: in.Description, Rating: in.Rating, Favorite: in.Favorite,
			CreatedAt: time.Now().UTC(),
		}
		_, err := db.ExecContext(r.Context(),
			`INSERT INTO resources (id, user_id, type, title, url, description, rating, favorite, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			res.ID, userID, res.Type, res.Title, res.URL, res.Description, res.Rating, res.Favorite, res.CreatedAt)
		if err != nil {
			http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(res)
	}
}

func UpdateHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := auth.UserID(r.Context())
		id := r.PathValue("id")

		var in struct {
			Rating   *float64 `json:"rating"`
			Favorite *bool    `json:"favorite"`
		}
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		res, err := db.ExecContext(r.Context(),
			`UPDATE resources SET
				rating = COALESCE($1, rating),
				favorite = COALESCE($2, favorite)
			 WHERE id = $3 AND user_id = $4`,
			in.Rating, in.Favorite, id, userID)
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

func DeleteHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := auth.UserID(r.Context())
		id := r.PathValue("id")

		res, err := db.ExecContext(r.Context(),
			`DELETE FROM resources WHERE id = $1 AND user_id = $2`, id, userID)
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
