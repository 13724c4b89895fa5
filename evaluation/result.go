package evaluation

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
)

// Result keys, shared by Map and the JSON encoding.
const (
	ATEScoreKey   = "ate_score"
	RPEScoreKey   = "rpe_score"
	KittiScoreKey = "kitti_score"
)

// Result is the outcome of a single evaluation. Its JSON form holds exactly the ate_score,
// rpe_score and kitti_score keys; kitti_score is null when the trajectory was too short for
// every KITTI segment length.
type Result struct {
	ATE   float64     `json:"ate_score"`
	RPE   RPEScore    `json:"rpe_score"`
	Kitti *KittiScore `json:"kitti_score"`

	// ATEDetail holds the alignment and the compared positions.
	ATEDetail *ATEResult `json:"-"`
}

// Map returns the result record keyed by metric name.
func (r *Result) Map() map[string]interface{} {
	var kitti interface{}
	if r.Kitti != nil {
		kitti = map[string]float64{
			"translational": r.Kitti.Translational,
			"rotational":    r.Kitti.Rotational,
		}
	}
	return map[string]interface{}{
		ATEScoreKey: r.ATE,
		RPEScoreKey: map[string]float64{
			"translational": r.RPE.Translational,
			"rotational":    r.RPE.Rotational,
		},
		KittiScoreKey: kitti,
	}
}

// String prints a table with one row per metric.
func (r *Result) String() string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Metric", "Translational", "Rotational", "Samples"})
	samples := ""
	if r.ATEDetail != nil {
		samples = fmt.Sprintf("%d", r.ATEDetail.Stats.Count)
	}
	t.AppendRow(table.Row{"ATE", fmt.Sprintf("%.6f", r.ATE), "", samples})
	t.AppendRow(table.Row{
		"RPE",
		fmt.Sprintf("%.6f", r.RPE.Translational),
		fmt.Sprintf("%.6f rad", r.RPE.Rotational),
		fmt.Sprintf("%d", r.RPE.Pairs),
	})
	if r.Kitti == nil {
		t.AppendRow(table.Row{"KITTI", "n/a", "n/a", "0"})
		return t.Render()
	}
	t.AppendRow(table.Row{
		"KITTI",
		fmt.Sprintf("%.4f %%", r.Kitti.Translational),
		fmt.Sprintf("%.4f deg/100m", r.Kitti.Rotational),
		fmt.Sprintf("%d", r.Kitti.Samples),
	})
	for _, seg := range r.Kitti.Segments {
		if seg.Samples == 0 {
			continue
		}
		t.AppendRow(table.Row{
			fmt.Sprintf("  %gm", seg.Length),
			fmt.Sprintf("%.4f %%", seg.Translational),
			fmt.Sprintf("%.4f deg/100m", seg.Rotational),
			fmt.Sprintf("%d", seg.Samples),
		})
	}
	return t.Render()
}
