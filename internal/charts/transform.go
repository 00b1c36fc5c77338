package charts

import "market_dashboard/internal/models"

const (
	// DefaultOtherThreshold is the share, in percent, below which a slice is folded into Other.
	DefaultOtherThreshold = 5.0

	// OtherLabel names the synthetic bucket produced by GroupSmall.
	OtherLabel = "其他"

	// DefaultTopSkills is how many skills the skills chart shows.
	DefaultTopSkills = 10
)

// GroupSmall keeps every point whose share is at least threshold, in order,
// and folds the rest into one trailing Other point carrying their summed
// value and summed share. A missing percentage counts as 0.
func GroupSmall(points []models.CategoryPoint, threshold float64) []models.CategoryPoint {
	out := make([]models.CategoryPoint, 0, len(points))

	var (
		merged          int
		otherValue      float64
		otherPercentage float64
	)
	for _, p := range points {
		share := p.Share()
		if share >= threshold {
			out = append(out, p)
			continue
		}
		merged++
		otherValue += p.Value
		otherPercentage += share
	}

	if merged > 0 {
		out = append(out, models.CategoryPoint{
			Label:      OtherLabel,
			Value:      otherValue,
			Percentage: models.Percent(otherPercentage),
		})
	}
	return out
}

// MedianIndex returns the first bucket at which the running sum of values
// reaches half of the total. Empty input and an all-zero total give 0.
func MedianIndex(points []models.CategoryPoint) int {
	var total float64
	for _, p := range points {
		total += p.Value
	}
	if total <= 0 {
		return 0
	}

	half := total / 2
	var cumulative float64
	for i, p := range points {
		cumulative += p.Value
		if cumulative >= half {
			return i
		}
	}
	return len(points) - 1
}

// MedianLabel is the label of the median bucket; ok is false for empty input.
func MedianLabel(points []models.CategoryPoint) (label string, ok bool) {
	if len(points) == 0 {
		return "", false
	}
	return points[MedianIndex(points)].Label, true
}

// TopN returns at most the first n points. The API sends skills sorted by demand.
func TopN(points []models.CategoryPoint, n int) []models.CategoryPoint {
	if n < 0 {
		n = 0
	}
	if len(points) <= n {
		return append([]models.CategoryPoint(nil), points...)
	}
	return append([]models.CategoryPoint(nil), points[:n]...)
}
