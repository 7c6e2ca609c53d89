package focus

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStopHandlerRecordsDurationSeconds(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	start := time.Now().UTC().Add(-90 * time.Second)
	mock.ExpectQuery(`SELECT id, start_time FROM focus_sessions`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "start_time"}).AddRow("s1", start))
	mock.ExpectExec(`UPDATE focus_sessions SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO analytics_events`).
		WillReturnResult(sqlmock.NewResult(1, 1))

	r := httptest.NewRequest(http.MethodPost, "/api/eduhub/focus/stop", nil)
	w := httptest.NewRecorder()
	StopHandler(db)(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	var got Session
	require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
	assert.Equal(t, "completed", got.Status)
	assert.InDelta(t, 90, got.Duration, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStopHandlerWithoutActiveSession(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT id, start_time FROM focus_sessions`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "start_time"}))

	r := httptest.NewRequest(http.MethodPost, "/api/eduhub/focus/stop", nil)
	w := httptest.NewRecorder()
	StopHandler(db)(w, r)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTodayHandlerReportsTotalSeconds(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT COALESCE\(SUM\(duration\), 0\) FROM focus_sessions`).
		WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow(3600))

	r := httptest.NewRequest(http.MethodGet, "/api/eduhub/focus/today", nil)
	w := httptest.NewRecorder()
	TodayHandler(db)(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	var got map[string]int
	require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
	assert.Equal(t, 3600, got["totalSeconds"])
	assert.NoError(t, mock.ExpectationsWereMet())
}
