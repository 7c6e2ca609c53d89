package analytics

import (
	"context"
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"time"
)

// Envelope is one analytics event. SourceEventKey deduplicates
// retried deliveries on the unique index.
type Envelope struct {
	Name           string         `json:"name"`
	Time           time.Time      `json:"time"`
	UserID         string         `json:"userId"`
	SessionID      string         `json:"sessionId"`
	Platform       string         `json:"platform"`
	AppVersion     string         `json:"appVersion"`
	DeviceLocale   string         `json:"deviceLocale"`
	IPCountry      string         `json:"ipCountry"`
	SourceEventKey string         `json:"sourceEventKey"`
	Properties     map[string]any `json:"properties"`
}

// FromRequest builds an envelope from the client-context headers the
// app sends on every call.
func FromRequest(r *http.Request, name string) Envelope {
	return Envelope{
		Name:         name,
		Time:         time.Now().UTC(),
		SessionID:    r.Header.Get("X-Session-Id"),
		Platform:     r.Header.Get("X-Platform"),
		AppVersion:   r.Header.Get("X-App-Version"),
		DeviceLocale: r.Header.Get("X-Device-Locale"),
		IPCountry:    r.Header.Get("CF-IPCountry"),
	}
}

// Log stores the event. Failures are logged and swallowed, analytics
// must never break the calling endpoint.
func Log(ctx context.Context, db *sql.DB, env Envelope) {
	if env.Time.IsZero() {
		env.Time = time.Now().UTC()
	}
	props, err := json.Marshal(env.Properties)
	if err != nil {
		props = []byte("{}")
	}

	_, err = db.ExecContext(ctx,
		`INSERT INTO analytics_events
			(event_name, event_time, user_id, session_id, platform, app_version, device_locale, ip_country, source_event_key, properties)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 ON CONFLICT (source_event_key) DO NOTHING`,
		env.Name, env.Time, env.UserID,
		nullIfEmpty(env.SessionID), nullIfEmpty(env.Platform), nullIfEmpty(env.AppVersion),
		nullIfEmpty(env.DeviceLocale), nullIfEmpty(env.IPCountry), nullIfEmpty(env.SourceEventKey),
		props,
	)
	if err != nil {
		log.Printf("[WARN] analytics insert failed for %s: %v", env.Name, err)
	}
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
