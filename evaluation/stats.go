package evaluation

import (
	"github.com/montanaflynn/stats"

	"go.viam.com/trajeval/utils"
)

// Stats summarizes a set of non-negative errors.
type Stats struct {
	RMSE   float64 `json:"rmse"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Std    float64 `json:"std"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Count  int     `json:"count"`
}

// summarize returns the statistics of errs without reordering it. An empty input gives a
// zero Stats.
func summarize(errs []float64) Stats {
	if len(errs) == 0 {
		return Stats{}
	}
	data := stats.Float64Data(errs)
	// the stats functions only fail on empty input
	mean, _ := stats.Mean(data)
	median, _ := stats.Median(data)
	std, _ := stats.StandardDeviationPopulation(data)
	minimum, _ := stats.Min(data)
	maximum, _ := stats.Max(data)

	var rms utils.RootMeanSquare
	for _, e := range errs {
		rms.Add(e)
	}
	return Stats{
		RMSE:   rms.Value(),
		Mean:   mean,
		Median: median,
		Std:    std,
		Min:    minimum,
		Max:    maximum,
		Count:  len(errs),
	}
}
