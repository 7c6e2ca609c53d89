package medications

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"eduhub-backend/internal/auth"
)

type Medication struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Dosage    string     `json:"dosage"`
	Frequency string     `json:"frequency"`
	Times     []string   `json:"times"`
	Notes     string     `json:"notes"`
	TakenAt   *time.Time `json:"takenAt,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

func scan(row interface{ Scan(...any) error }) (Medication, error) {
	var m Medication
	var times pq.StringArray
	err := row.Scan(&m.ID, &m.Name, &m.Dosage, &m.Frequency, &times,
		&m.Notes, &m.TakenAt, &m.CreatedAt, &m.UpdatedAt)
	m.Times = []string(times)
	if m.Times == nil {
		m.Times = []string{}
	}
	return m, err
}

const selectCols = `id, name, dosage, frequency, times, notes, taken_at, created_at, updated_at`

func ListHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := auth.UserID(r.Context())
		rows, err := db.QueryContext(r.Context(),
			`SELECT `+selectCols+` FROM medications WHERE user_id = $1 ORDER BY created_at`, userID)
		if err != nil {
			http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
			return
		}
		defer rows.Close()

		meds := []Medication{}
		for rows.Next() {
			m, err := scan(rows)
			if err != nil {
				http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
				return
			}
			meds = append(meds, m)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(meds)
	}
}

func CreateHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := auth.UserID(r.Context())

		var in struct {
			Name      string   `json:"name"`
			Dosage    string   `json:"dosage"`
			Frequency string   `json:"frequency"`
			Times     []string `json:"times"`
			Notes     string   `json:"notes"`
		}
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if in.Name == "" {
			http.Error(w, "name required", http.StatusBadRequest)
			return
		}
		if in.Frequency == "" {
			in.Frequency = "daily"
		}
		if in.Times == nil {
			in.Times = []string{}
		}

		now := time.Now().UTC()
		m := Medication{
			ID: uuid.NewString(), Name: in.Name, Dosage: in.Dosage,
			Frequency: in.Frequency, Times: in.Times, Notes: in.Notes,
			CreatedAt: now, UpdatedAt: now,
		}
		_, err := db.ExecContext(r.Context(),
			`INSERT INTO medications (id, user_id, name, dosage, frequency, times, notes, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			m.ID, userID, m.Name, m.Dosage, m.Frequency, pq.Array(m.Times), m.Notes, m.CreatedAt, m.UpdatedAt)
		if err != nil {
			http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(m)
	}
}

// UpdateHandler applies a partial update; absent fields keep their
// stored values. updated_at is always bumped.
func UpdateHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := auth.UserID(r.Context())
		id := r.PathValue("id")

		var in struct {
			Name      *string  `json:"name"`
			Dosage    *string  `json:"dosage"`
			Frequency *string  `json:"frequency"`
			Times     []string `json:"times"`
			Notes     *string  `json:"notes"`
		}
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		m, err := scan(db.QueryRowContext(r.Context(),
			`SELECT `+selectCols+` FROM medications WHERE id = $1 AND user_id = $2`, id, userID))
		if err == sql.ErrNoRows {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		if err != nil {
			http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
			return
		}

		if in.Name != nil && *in.Name != "" {
			m.Name = *in.Name
		}
		if in.Dosage != nil {
			m.Dosage = *in.Dosage
		}
		if in.Frequency != nil && *in.Frequency != "" {
			m.Frequency = *in.Frequency
		}
		if in.Times != nil {
			m.Times = in.Times
		}
		if in.Notes != nil {
			m.Notes = *in.Notes
		}
		m.UpdatedAt = time.Now().UTC()

		_, err = db.ExecContext(r.Context(),
			`UPDATE medications SET name = $1, dosage = $2, frequency = $3, times = $4,
				notes = $5, updated_at = $6
			 WHERE id = $7 AND user_id = $8`,
			m.Name, m.Dosage, m.Frequency, pq.Array(m.Times), m.Notes, m.UpdatedAt, id, userID)
		if err != nil {
			http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(m)
	}
}

func DeleteHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := auth.UserID(r.Context())
		id := r.PathValue("id")

		res, err := db.ExecContext(r.Context(),
			`DELETE FROM medications WHERE id = $1 AND user_id = $2`, id, userID)
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

// LogHandler records that a dose was taken just now.
func LogHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := auth.UserID(r.Context())
		id := r.PathValue("id")
		now := time.Now().UTC()

		m, err := scan(db.QueryRowContext(r.Context(),
			`UPDATE medications SET taken_at = $1, updated_at = $1
			 WHERE id = $2 AND user_id = $3
			 RETURNING `+selectCols, now, id, userID))
		if err == sql.ErrNoRows {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		if err != nil {
			http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(m)
	}
}
