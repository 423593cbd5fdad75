package aggregate

import (
	"math"

	"github.com/sentiscope/sentiscope/pkg/domain"
)

// Summarize reduces a series into headline metrics. Average sentiment is the plain mean
// of daily scores. The trend compares the mean score of the second half of the series
// (split at n/2) with the first half and needs to move strictly more than threshold.
func Summarize(series []domain.DailyAggregate, threshold float64) domain.DashboardSummary {
	res := domain.DashboardSummary{TrendDirection: domain.TrendStable}
	if len(series) == 0 {
		return res
	}

	var scores float64
	var positive, negative int
	for _, agg := range series {
		scores += agg.SentimentScore
		res.TotalVolume += agg.TotalCount
		positive += agg.PositiveCount
		negative += agg.NegativeCount
	}
	res.AverageSentiment = scores / float64(len(series))
	if res.TotalVolume > 0 {
		res.PositivePercentage = float64(positive) / float64(res.TotalVolume) * 100
		res.NegativePercentage = float64(negative) / float64(res.TotalVolume) * 100
	}
	res.TrendDirection = Trend(series, threshold)
	return res
}

// Trend detects the sentiment direction of a series
func Trend(series []domain.DailyAggregate, threshold float64) domain.Trend {
	mid := len(series) / 2
	first, firstOK := meanScore(series[:mid])
	second, secondOK := meanScore(series[mid:])
	switch {
	case !firstOK && !secondOK:
		return domain.TrendStable
	case !firstOK:
		first = second
	case !secondOK:
		second = first
	}

	// rounded to absorb float noise, so a move of exactly threshold stays stable
	delta := math.Round((second-first)*1e9) / 1e9
	switch {
	case delta > threshold:
		return domain.TrendUp
	case delta < -threshold:
		return domain.TrendDown
	default:
		return domain.TrendStable
	}
}

func meanScore(series []domain.DailyAggregate) (float64, bool) {
	if len(series) == 0 {
		return 0, false
	}
	var sum float64
	for _, agg := range series {
		sum += agg.SentimentScore
	}
	return sum / float64(len(series)), true
}
