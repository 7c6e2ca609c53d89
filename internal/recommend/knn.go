package recommend

import (
	"math"
	"sort"
)

const (
	defaultNeighbors = 5
	likeThreshold    = 3.0
)

// MinRatings is how many own ratings a user needs before the
// recommender answers at all.
const MinRatings = 5

// Ratings maps user id to item id to the rating that user gave.
type Ratings map[string]map[string]float64

type scoredItem struct {
	Item  string
	Score float64
}

func cosine(a, b map[string]float64) float64 {
	var dot, normA, normB float64
	for item, ra := range a {
		if rb, ok := b[item]; ok {
			dot += ra * rb
		}
		normA += ra * ra
	}
	for _, rb := range b {
		normB += rb * rb
	}
	if dot == 0 || normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// ForUser runs user-based collaborative filtering. Neighbours are the
// k most similar raters; candidates are items they liked that the
// target user has not rated, scored by similarity-weighted rating.
// Users with fewer than MinRatings ratings get no recommendations.
func ForUser(ratings Ratings, userID string, limit int) []string {
	own := ratings[userID]
	if len(own) < MinRatings {
		return []string{}
	}

	type neighbor struct {
		id  string
		sim float64
	}
	var neighbors []neighbor
	for id, theirs := range ratings {
		if id == userID {
			continue
		}
		if sim := cosine(own, theirs); sim > 0 {
			neighbors = append(neighbors, neighbor{id, sim})
		}
	}
	sort.SliceStable(neighbors, func(i, j int) bool { return neighbors[i].sim > neighbors[j].sim })
	if len(neighbors) > defaultNeighbors {
		neighbors = neighbors[:defaultNeighbors]
	}

	scores := map[string]float64{}
	for _, n := range neighbors {
		for item, rating := range ratings[n.id] {
			if _, seen := own[item]; seen || rating <= likeThreshold {
				continue
			}
			scores[item] += n.sim * rating
		}
	}
	return topItems(scores, limit)
}

func topItems(scores map[string]float64, limit int) []string {
	items := make([]scoredItem, 0, len(scores))
	for item, score := range scores {
		items = append(items, scoredItem{item, score})
	}
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Score != items[j].Score {
			return items[i].Score > items[j].Score
		}
		return items[i].Item < items[j].Item
	})
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Item
	}
	return out
}
