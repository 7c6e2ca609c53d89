package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func fixtureRatings() Ratings {
	return Ratings{
		"alice": {"a": 5, "b": 4, "c": 5, "d": 2, "e": 4},
		"bob":   {"a": 5, "b": 4, "c": 5, "d": 2, "e": 4, "f": 5},
		"carol": {"a": 1, "b": 2, "x": 5, "y": 5},
	}
}

func TestCosineIdenticalVectors(t *testing.T) {
	v := map[string]float64{"a": 3, "b": 4}
	assert.InDelta(t, 1.0, cosine(v, v), 1e-9)
}

func TestCosineNoOverlap(t *testing.T) {
	assert.Equal(t, 0.0, cosine(map[string]float64{"a": 5}, map[string]float64{"b": 5}))
}

func TestForUserRecommendsNeighborLikes(t *testing.T) {
	got := ForUser(fixtureRatings(), "alice", 10)
	// bob is the near-identical neighbour; his unshared like is f
	assert.Contains(t, got, "f")
	assert.NotContains(t, got, "a") // already rated
	assert.NotContains(t, got, "d") // rated low by the neighbour
}

func TestForUserSkipsOwnItems(t *testing.T) {
	got := ForUser(fixtureRatings(), "bob", 10)
	for _, item := range []string{"a", "b", "c", "d", "e", "f"} {
		assert.NotContains(t, got, item)
	}
}

func TestForUserUnderMinRatingsGetsNothing(t *testing.T) {
	ratings := fixtureRatings()
	ratings["dave"] = map[string]float64{"a": 5}
	assert.Empty(t, ForUser(ratings, "dave", 5))
}

func TestForUserUnknownUserGetsNothing(t *testing.T) {
	assert.Empty(t, ForUser(fixtureRatings(), "nobody", 5))
}

func TestForUserExactlyMinRatingsAnswers(t *testing.T) {
	// alice holds exactly five ratings, the minimum that unlocks KNN
	ratings := fixtureRatings()
	assert.Len(t, ratings["alice"], MinRatings)
	assert.NotEmpty(t, ForUser(ratings, "alice", 10))
}

func TestTopItemsDeterministicOnTies(t *testing.T) {
	scores := map[string]float64{"b": 1, "a": 1, "c": 1}
	assert.Equal(t, []string{"a", "b", "c"}, topItems(scores, 0))
}
