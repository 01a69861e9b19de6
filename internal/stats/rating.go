package stats

// Rating is a coarse grade shown next to a figure on the dashboard.
type Rating int

const (
	RatingNone Rating = iota
	RatingBad
	RatingAverage
	RatingGood
	RatingExcellent
)

func (r Rating) String() string {
	switch r {
	case RatingBad:
		return "bad"
	case RatingAverage:
		return "average"
	case RatingGood:
		return "good"
	case RatingExcellent:
		return "excellent"
	default:
		return "none"
	}
}

// RateAccuracy grades an accuracy percentage.
func RateAccuracy(pct int) Rating {
	switch {
	case pct >= 95:
		return RatingExcellent
	case pct >= 85:
		return RatingGood
	case pct >= 70:
		return RatingAverage
	default:
		return RatingBad
	}
}

// RateTime grades an answer latency. Zero is "no data" and rates RatingNone.
func RateTime(ms int64) Rating {
	switch {
	case ms <= 0:
		return RatingNone
	case ms < 1500:
		return RatingExcellent
	case ms < 3000:
		return RatingGood
	case ms < 6000:
		return RatingAverage
	default:
		return RatingBad
	}
}
