package predict

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var predNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func in(days float64, urgency int) PriorityInput {
	d := predNow.Add(time.Duration(days*24) * time.Hour)
	return PriorityInput{Deadline: &d, Urgency: urgency}
}

func TestPriorityOverdueIsHigh(t *testing.T) {
	assert.Equal(t, "high", Priority(in(-2, 5), predNow))
}

func TestPriorityUrgentNearDeadlineIsHigh(t *testing.T) {
	assert.Equal(t, "high", Priority(in(1, 2), predNow))
}

func TestPriorityNearDeadlineAlone(t *testing.T) {
	assert.Equal(t, "medium", Priority(in(2, 5), predNow))
}

func TestPriorityUrgencyAlone(t *testing.T) {
	assert.Equal(t, "medium", Priority(in(10, 2), predNow))
}

func TestPriorityFarAndRelaxed(t *testing.T) {
	assert.Equal(t, "low", Priority(in(10, 5), predNow))
	assert.Equal(t, "medium", Priority(in(10, 3), predNow))
}

func TestPriorityNoDeadline(t *testing.T) {
	assert.Equal(t, "medium", Priority(PriorityInput{Urgency: 2}, predNow))
	assert.Equal(t, "low", Priority(PriorityInput{Urgency: 5}, predNow))
}

func TestPriorityZeroUrgencyDefaults(t *testing.T) {
	assert.Equal(t, "medium", Priority(PriorityInput{}, predNow))
}

func repeatMoods(moods ...string) []string {
	var out []string
	for len(out) < minMoodHistory {
		out = append(out, moods...)
	}
	return out
}

func TestMoodEmptyHistory(t *testing.T) {
	pred := Mood(nil)
	assert.Equal(t, "okay", pred.Mood)
	assert.Equal(t, 0.0, pred.Confidence)
	assert.NotEmpty(t, pred.Message)
}

func TestMoodSparseHistoryDefaultsToOkay(t *testing.T) {
	history := []string{"tired", "tired", "tired", "tired", "tired",
		"tired", "tired", "tired", "tired"} // one short of the threshold
	pred := Mood(history)
	assert.Equal(t, "okay", pred.Mood)
	assert.Equal(t, 0.0, pred.Confidence)
	assert.NotEmpty(t, pred.Message)
}

func TestMoodMostFrequentWins(t *testing.T) {
	history := append([]string{"okay", "focused"}, repeatMoods("tired")...)
	pred := Mood(history)
	assert.Equal(t, "tired", pred.Mood)
	assert.Greater(t, pred.Confidence, 0.5)
	assert.Empty(t, pred.Message)
}

func TestMoodUnanimousHistoryIsCertain(t *testing.T) {
	pred := Mood(repeatMoods("focused"))
	assert.Equal(t, "focused", pred.Mood)
	assert.Equal(t, 1.0, pred.Confidence)
}

func TestMoodRecencyBreaksFrequencyTies(t *testing.T) {
	// 5 recent "focused" vs 5 older "tired"; recency weight decides
	history := append(repeatMoods("focused")[:5], repeatMoods("tired")[:5]...)
	pred := Mood(history)
	assert.Equal(t, "focused", pred.Mood)
}

func TestMoodWindowIgnoresOldEntries(t *testing.T) {
	history := make([]string, 0, moodWindow+20)
	for i := 0; i < moodWindow; i++ {
		history = append(history, "okay")
	}
	for i := 0; i < 20; i++ {
		history = append(history, "sad")
	}
	pred := Mood(history)
	assert.Equal(t, "okay", pred.Mood)
	assert.Equal(t, 1.0, pred.Confidence)
}
