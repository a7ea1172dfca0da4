package testimonial

import "math"

// SatisfactionRate maps the average rating linearly onto a percentage.
// With no reviews the site shows a confident default of 100.
func SatisfactionRate(averageRating float64, totalReviews int) int {
	if totalReviews == 0 {
		return 100
	}

	return int(math.Round(averageRating / 5 * 100))
}

// Round1 rounds a rating average to one decimal place for display.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
