package scoring

// Result is the outcome of a composite score computation: the overall
// 0-100 risk score and the per-category breakdown behind it.
type Result struct {
	Overall    float64            `json:"overall"`
	Categories map[string]float64 `json:"categories"`
}

// SimpleAverage scores every category as the unweighted mean of its
// indicators and the overall score as the mean of the categories. The
// baseline method: no assumptions, slowest to respond.
func SimpleAverage(readings map[string]float64) Result {
	categories := make(map[string]float64, len(Categories))
	for _, category := range Categories {
		var sum float64
		var count int
		for indicatorID := range indicatorWeights[category] {
			if v, ok := readings[indicatorID]; ok {
				sum += v
				count++
			}
		}
		if count > 0 {
			categories[category] = sum / float64(count)
		} else {
			categories[category] = defaultCategoryScore
		}
	}
	return Result{
		Overall:    categoryMean(categories),
		Categories: categories,
	}
}

// WeightedAverage applies the per-indicator research weights within each
// category, renormalised over the indicators present, and averages the
// category scores for the overall result.
func WeightedAverage(readings map[string]float64) Result {
	categories := weightedCategoryScores(readings)
	return Result{
		Overall:    categoryMean(categories),
		Categories: categories,
	}
}

func weightedCategoryScores(readings map[string]float64) map[string]float64 {
	categories := make(map[string]float64, len(Categories))
	for _, category := range Categories {
		var weightedSum, totalWeight float64
		for indicatorID, weight := range indicatorWeights[category] {
			if v, ok := readings[indicatorID]; ok {
				weightedSum += v * weight
				totalWeight += weight
			}
		}
		if totalWeight > 0 {
			categories[category] = weightedSum / totalWeight
		} else {
			categories[category] = defaultCategoryScore
		}
	}
	return categories
}

func categoryMean(categories map[string]float64) float64 {
	if len(categories) == 0 {
		return defaultCategoryScore
	}
	var sum float64
	for _, v := range categories {
		sum += v
	}
	return sum / float64(len(categories))
}
