package auth

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// RegisterHandler creates an account. Sign-in is optional for the rest
// of the API, so this path mostly serves future multi-user setups.
func RegisterHandler(db *sql.DB, secret []byte, expMin int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var creds credentials
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		creds.Email = strings.TrimSpace(strings.ToLower(creds.Email))
		if creds.Email == "" || len(creds.Password) < 6 {
			http.Error(w, "email and password (min 6 chars) required", http.StatusBadRequest)
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), bcrypt.DefaultCost)
		if err != nil {
			http.Error(w, "hash error", http.StatusInternalServerError)
			return
		}

		var id int
		err = db.QueryRowContext(r.Context(),
			`INSERT INTO users (email, name, password) VALUES ($1, $2, $3) RETURNING id`,
			creds.Email, creds.Name, string(hash),
		).Scan(&id)
		if err != nil {
			http.Error(w, "email already registered", http.StatusConflict)
			return
		}

		token, err := GenerateToken(secret, strconv.Itoa(id), expMin)
		if err != nil {
			http.Error(w, "token error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{
			"token": token,
			"user":  map[string]any{"id": id, "email": creds.Email, "name": creds.Name},
		})
	}
}

func LoginHandler(db *sql.DB, secret []byte, expMin int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var creds credentials
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		creds.Email = strings.TrimSpace(strings.ToLower(creds.Email))

		var (
			id   int
			name string
			hash string
		)
		err := db.QueryRowContext(r.Context(),
			`SELECT id, name, password FROM users WHERE email = $1`, creds.Email,
		).Scan(&id, &name, &hash)
		if err != nil {
			http.Error(w, "invalid credentials", http.StatusUnauthorized)
			return
		}
		if bcrypt.CompareHashAndPassword([]byte(hash), []byte(creds.Password)) != nil {
			http.Error(w, "invalid credentials", http.StatusUnauthorized)
			return
		}

		token, err := GenerateToken(secret, strconv.Itoa(id), expMin)
		if err != nil {
			http.Error(w, "token error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"token": token,
			"user":  map[string]any{"id": id, "email": creds.Email, "name": name},
		})
	}
}

// MeHandler reports the resolved identity. Without a token it answers
// with the shared demo profile instead of rejecting.
func MeHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := UserID(r.Context())

		w.Header().Set("Content-Type", "application/json")
		if id, err := strconv.Atoi(userID); err == nil {
			var email, name string
			if err := db.QueryRowContext(r.Context(),
				`SELECT email, name FROM users WHERE id = $1`, id,
			).Scan(&email, &name); err == nil {
				json.NewEncoder(w).Encode(map[string]any{
					"id": userID, "email": email, "name": name, "demo": false,
				})
				return
			}
		}
		json.NewEncoder(w).Encode(map[string]any{
			"id":    DemoUserID,
			"email": "demo@eduhub.local",
			"name":  "Demo User",
			"demo":  true,
		})
	}
}
