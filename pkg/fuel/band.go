package fuel

import "naftwatch.dz/fuel-monitor-service/pkg/models"

// Band is the derived severity classification of a stock level. It is never
// persisted. Ordering matters: a smaller band is less healthy.
type Band int

const (
	BandCritical Band = iota
	BandWarning
	BandHealthy
	BandFull
)

func (b Band) String() string {
	switch b {
	case BandCritical:
		return "critical"
	case BandWarning:
		return "warning"
	case BandHealthy:
		return "healthy"
	case BandFull:
		return "full"
	}
	return "unknown"
}

// Classify maps a stock level and capacity to a severity band. Total over
// stock >= 0, capacity >= 0: a zero capacity reads as 0% and classifies as
// critical rather than dividing by zero.
func Classify(stock, capacity float64) Band {
	if capacity <= 0 {
		return BandCritical
	}
	ratio := stock / capacity
	switch {
	case ratio < 0.10:
		return BandCritical
	case ratio < 0.25:
		return BandWarning
	case ratio < 0.85:
		return BandHealthy
	default:
		return BandFull
	}
}

// WorstOf returns the less healthy of two bands.
func WorstOf(a, b Band) Band {
	if a < b {
		return a
	}
	return b
}

// StationBand summarizes a station by the worst band across tracked fuels.
func StationBand(station *models.Station) Band {
	worst := BandFull
	for _, f := range models.TrackedFuels {
		worst = WorstOf(worst, Classify(station.Stock(f), station.Capacity(f)))
	}
	return worst
}
