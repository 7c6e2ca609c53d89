package tasks

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eduhub-backend/internal/auth"
)

var todoCols = []string{
	"id", "title", "completed", "deadline", "reminder", "reminder_time",
	"difficulty", "urgency", "estimate_minutes", "dependencies", "source",
	"order_index", "context", "created_at",
}

func TestListHandlerOrdersByIndexThenNewestFirst(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	created := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(todoCols).
		AddRow("t1", "read notes", false, nil, false, nil,
			"medium", 3, 0, "{}", "manual", 1, []byte(`{"room":"library"}`), created)

	mock.ExpectQuery(regexp.QuoteMeta(`ORDER BY order_index, created_at DESC`)).
		WithArgs(auth.DemoUserID).
		WillReturnRows(rows)

	r := httptest.NewRequest(http.MethodGet, "/api/eduhub/todos", nil)
	w := httptest.NewRecorder()
	ListHandler(db)(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	var got []Todo
	require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
	require.Len(t, got, 1)
	assert.Equal(t, "t1", got[0].ID)
	assert.JSONEq(t, `{"room":"library"}`, string(got[0].Context))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScanTodoDefaultsEmptyContext(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows(todoCols).
		AddRow("t1", "read notes", false, nil, false, nil,
			"medium", 3, 0, "{}", "manual", 1, nil, time.Now().UTC())
	mock.ExpectQuery(`SELECT`).WillReturnRows(rows)

	r := httptest.NewRequest(http.MethodGet, "/api/eduhub/todos", nil)
	w := httptest.NewRecorder()
	ListHandler(db)(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	var got []Todo
	require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
	require.Len(t, got, 1)
	assert.JSONEq(t, `{}`, string(got[0].Context))
}
