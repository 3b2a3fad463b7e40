package algorithms

import (
	"sort"
	"time"
)

const DefaultRecommendationTopN = 10

// Like - лайк арендатора (renter -> listing, is_right = true)
type Like struct {
	RenterProfileID string
	ListingID       string
}

// CollaborativeScores считает для каждого листинга, сколько "похожих" арендаторов
// его лайкнули. Похожий - любой другой арендатор, лайкнувший хотя бы один листинг
// из liked. Листинги из liked в результат не попадают.
func CollaborativeScores(renterID string, likes []Like) (scores map[string]int, liked map[string]struct{}) {
	liked = make(map[string]struct{})
	for _, lk := range likes {
		if lk.RenterProfileID == renterID {
			liked[lk.ListingID] = struct{}{}
		}
	}

	scores = make(map[string]int)
	if len(liked) == 0 {
		return scores, liked
	}

	similar := make(map[string]struct{})
	for _, lk := range likes {
		if lk.RenterProfileID == renterID {
			continue
		}
		if _, ok := liked[lk.ListingID]; ok {
			similar[lk.RenterProfileID] = struct{}{}
		}
	}

	seen := make(map[Like]struct{})
	for _, lk := range likes {
		if _, ok := similar[lk.RenterProfileID]; !ok {
			continue
		}
		if _, ok := liked[lk.ListingID]; ok {
			continue
		}
		if _, dup := seen[lk]; dup {
			continue
		}
		seen[lk] = struct{}{}
		scores[lk.ListingID]++
	}
	return scores, liked
}

type Recommendation struct {
	ListingID string
	Score     int
	StartDate time.Time
}

// RankRecommendations: скор по убыванию, затем более ранняя дата начала.
// При полном совпадении порядок фиксируется по ListingID.
func RankRecommendations(recs []Recommendation, topN int) []Recommendation {
	sort.Slice(recs, func(i, j int) bool {
		if recs[i].Score != recs[j].Score {
			return recs[i].Score > recs[j].Score
		}
		if !recs[i].StartDate.Equal(recs[j].StartDate) {
			return recs[i].StartDate.Before(recs[j].StartDate)
		}
		return recs[i].ListingID < recs[j].ListingID
	})
	if topN > 0 && len(recs) > topN {
		recs = recs[:topN]
	}
	return recs
}
