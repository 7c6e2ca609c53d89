package predict

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriorityHandlerReportsRuleBasedMethod(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/api/ml/tasks/predict-priority",
		strings.NewReader(`{"urgency":5}`))
	w := httptest.NewRecorder()
	PriorityHandler()(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	var got map[string]any
	require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
	assert.Equal(t, "low", got["priority"])
	assert.Equal(t, "rule-based", got["method"])
}

func TestMoodHandlerSparseHistory(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"mood"})
	for i := 0; i < 5; i++ {
		rows.AddRow("tired")
	}
	mock.ExpectQuery(`SELECT mood FROM moods .+ LIMIT 30`).WillReturnRows(rows)

	r := httptest.NewRequest(http.MethodPost, "/api/ml/mood/predict", nil)
	w := httptest.NewRecorder()
	MoodHandler(db)(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	var got map[string]any
	require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
	assert.Equal(t, "okay", got["predictedMood"])
	assert.Equal(t, 0.0, got["confidence"])
	assert.Equal(t, "rule-based", got["method"])
	assert.NotEmpty(t, got["message"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMoodHandlerVotesOverHistory(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"mood"})
	for i := 0; i < 12; i++ {
		rows.AddRow("focused")
	}
	mock.ExpectQuery(`SELECT mood FROM moods .+ LIMIT 30`).WillReturnRows(rows)

	r := httptest.NewRequest(http.MethodPost, "/api/ml/mood/predict", nil)
	w := httptest.NewRecorder()
	MoodHandler(db)(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	var got map[string]any
	require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
	assert.Equal(t, "focused", got["predictedMood"])
	assert.Equal(t, 1.0, got["confidence"])
	assert.Nil(t, got["message"])
}
