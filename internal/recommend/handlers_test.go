package recommend

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eduhub-backend/internal/auth"
)

func TestHandlerInsufficientRatings(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"user_id", "item", "rating"}).
		AddRow(auth.DemoUserID, "https://a", 5.0).
		AddRow(auth.DemoUserID, "https://b", 4.0).
		AddRow("other", "https://c", 5.0)
	mock.ExpectQuery(`FROM resources WHERE rating IS NOT NULL`).
		WillReturnRows(rows)

	r := httptest.NewRequest(http.MethodPost, "/api/ml/recommendations", nil)
	w := httptest.NewRecorder()
	Handler(db)(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	var got struct {
		Recommendations []string `json:"recommendations"`
		Message         string   `json:"message"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
	assert.Empty(t, got.Recommendations)
	assert.Equal(t, "Insufficient data for recommendations", got.Message)
	assert.NoError(t, mock.ExpectationsWereMet())
}
