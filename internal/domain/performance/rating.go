package performance

import "math"

// OverallRating is the mean of the scores rounded to one decimal place.
func OverallRating(scores []int) float64 {
	if len(scores) == 0 {
		return 0
	}
	sum := 0
	for _, score := range scores {
		sum += score
	}
	mean := float64(sum) / float64(len(scores))
	return math.Round(mean*10) / 10
}
