package moods

import (
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eduhub-backend/internal/auth"
)

func TestDeleteHandlerRemovesOwnEntry(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM moods WHERE id = $1 AND user_id = $2`)).
		WithArgs("m1", auth.DemoUserID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	r := httptest.NewRequest(http.MethodDelete, "/api/eduhub/moods/m1", nil)
	r.SetPathValue("id", "m1")
	w := httptest.NewRecorder()
	DeleteHandler(db)(w, r)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteHandlerUnknownIDIs404(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM moods WHERE id = $1 AND user_id = $2`)).
		WithArgs("missing", auth.DemoUserID).
		WillReturnResult(sqlmock.NewResult(0, 0))

	r := httptest.NewRequest(http.MethodDelete, "/api/eduhub/moods/missing", nil)
	r.SetPathValue("id", "missing")
	w := httptest.NewRecorder()
	DeleteHandler(db)(w, r)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
