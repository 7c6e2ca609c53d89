package medications

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func medRow(created time.Time) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "name", "dosage", "frequency", "times", "notes", "taken_at", "created_at", "updated_at",
	}).AddRow("med1", "Ritalin", "10mg", "daily", "{morning}", "with food", nil, created, created)
}

func TestUpdateHandlerPartialUpdateKeepsOtherFields(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	created := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT .+ FROM medications WHERE id = \$1 AND user_id = \$2`).
		WillReturnRows(medRow(created))
	mock.ExpectExec(`UPDATE medications SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	body := strings.NewReader(`{"dosage":"20mg"}`)
	r := httptest.NewRequest(http.MethodPut, "/api/eduhub/medications/med1", body)
	r.SetPathValue("id", "med1")
	w := httptest.NewRecorder()
	UpdateHandler(db)(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	var got Medication
	require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
	assert.Equal(t, "20mg", got.Dosage)
	assert.Equal(t, "Ritalin", got.Name)
	assert.Equal(t, []string{"morning"}, got.Times)
	assert.True(t, got.UpdatedAt.After(created))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateHandlerUnknownIDIs404(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT .+ FROM medications WHERE id = \$1 AND user_id = \$2`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	body := strings.NewReader(`{"dosage":"20mg"}`)
	r := httptest.NewRequest(http.MethodPut, "/api/eduhub/medications/missing", body)
	r.SetPathValue("id", "missing")
	w := httptest.NewRecorder()
	UpdateHandler(db)(w, r)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
