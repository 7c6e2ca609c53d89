package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"eduhub-backend/internal/advisor"
	"eduhub-backend/internal/ai"
	"eduhub-backend/internal/analytics"
	"eduhub-backend/internal/auth"
	"eduhub-backend/internal/config"
	"eduhub-backend/internal/db"
	"eduhub-backend/internal/focus"
	"eduhub-backend/internal/medications"
	"eduhub-backend/internal/moods"
	"eduhub-backend/internal/predict"
	"eduhub-backend/internal/recommend"
	"eduhub-backend/internal/resources"
	"eduhub-backend/internal/settings"
	"eduhub-backend/internal/streaks"
	"eduhub-backend/internal/tasks"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, relying on environment")
	}

	cfg := config.Load()

	database, err := db.Connect(cfg.ConnString())
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer database.Close()

	if err := db.Migrate(context.Background(), database); err != nil {
		log.Fatalf("db migrate: %v", err)
	}

	gemini := ai.NewClient(cfg.GeminiAPIKey, cfg.GeminiModel)
	if !gemini.Enabled() {
		log.Println("[WARN] GEMINI_API_KEY not set, AI endpoints use fallbacks")
	}

	secret := []byte(cfg.JWTSecret)
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	mux.HandleFunc("POST /api/auth/register", auth.RegisterHandler(database, secret, cfg.JWTExpMin))
	mux.HandleFunc("POST /api/auth/login", auth.LoginHandler(database, secret, cfg.JWTExpMin))
	mux.HandleFunc("GET /api/auth/me", auth.WithUser(secret, auth.MeHandler(database)))

	withUser := func(h http.HandlerFunc) http.HandlerFunc { return auth.WithUser(secret, h) }

	mux.HandleFunc("GET /api/eduhub/todos", withUser(tasks.ListHandler(database)))
	mux.HandleFunc("POST /api/eduhub/todos", withUser(tasks.CreateHandler(database)))
	mux.HandleFunc("POST /api/eduhub/todos/reorder", withUser(tasks.ReorderHandler(database)))
	mux.HandleFunc("PUT /api/eduhub/todos/{id}", withUser(tasks.UpdateHandler(database)))
	mux.HandleFunc("DELETE /api/eduhub/todos/{id}", withUser(tasks.DeleteHandler(database)))

	mux.HandleFunc("GET /api/eduhub/moods", withUser(moods.ListHandler(database)))
	mux.HandleFunc("POST /api/eduhub/moods", withUser(moods.CreateHandler(database)))
	mux.HandleFunc("DELETE /api/eduhub/moods/{id}", withUser(moods.DeleteHandler(database)))

	mux.HandleFunc("GET /api/eduhub/streak", withUser(streaks.GetHandler(database)))
	mux.HandleFunc("POST /api/eduhub/streak/update", withUser(streaks.UpdateHandler(database)))

	mux.HandleFunc("POST /api/eduhub/focus/start", withUser(focus.StartHandler(database)))
	mux.HandleFunc("POST /api/eduhub/focus/stop", withUser(focus.StopHandler(database)))
	mux.HandleFunc("GET /api/eduhub/focus/today", withUser(focus.TodayHandler(database)))

	mux.HandleFunc("GET /api/eduhub/resources", withUser(resources.ListHandler(database)))
	mux.HandleFunc("POST /api/eduhub/resources", withUser(resources.CreateHandler(database)))
	mux.HandleFunc("PUT /api/eduhub/resources/{id}", withUser(resources.UpdateHandler(database)))
	mux.HandleFunc("DELETE /api/eduhub/resources/{id}", withUser(resources.DeleteHandler(database)))

	mux.HandleFunc("GET /api/eduhub/medications", withUser(medications.ListHandler(database)))
	mux.HandleFunc("POST /api/eduhub/medications", withUser(medications.CreateHandler(database)))
	mux.HandleFunc("PUT /api/eduhub/medications/{id}", withUser(medications.UpdateHandler(database)))
	mux.HandleFunc("DELETE /api/eduhub/medications/{id}", withUser(medications.DeleteHandler(database)))
	mux.HandleFunc("POST /api/eduhub/medications/{id}/log", withUser(medications.LogHandler(database)))

	mux.HandleFunc("GET /api/eduhub/settings", withUser(settings.GetHandler(database)))
	mux.HandleFunc("PUT /api/eduhub/settings", withUser(settings.PutHandler(database)))

	mux.HandleFunc("POST /api/ml/recommendations", withUser(recommend.Handler(database)))
	mux.HandleFunc("POST /api/ml/tasks/predict-priority", withUser(predict.PriorityHandler()))
	mux.HandleFunc("POST /api/ml/mood/predict", withUser(predict.MoodHandler(database)))

	mux.HandleFunc("POST /api/eduhub/ai/advisor", withUser(advisor.AdvisorHandler(database, gemini)))
	mux.HandleFunc("POST /api/eduhub/ai/chat", withUser(advisor.ChatHandler(database, gemini)))
	mux.HandleFunc("POST /api/eduhub/ai/schedule", withUser(advisor.ScheduleHandler(database, gemini)))

	mux.HandleFunc("POST /api/analytics/events", withUser(analytics.EventHandler(database)))

	handler := cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.CORSOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}).Handler(mux)

	addr := fmt.Sprintf(":%d", cfg.Port)
	log.Printf("eduhub backend listening on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatal(err)
	}
}
