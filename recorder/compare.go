package recorder

import (
	"fmt"

	"github.com/steersuite/crowdsim/dtw"
	"github.com/steersuite/crowdsim/geometry"
)

// TrajectoryDistance measures how closely two recorded position
// trajectories for the same agent track each other, using Dynamic Time
// Warping so the comparison tolerates the two runs drifting a frame or two
// out of step (e.g. one recording started a tick later) without being
// thrown off by it the way a pointwise distance would be.
//
// Each trajectory is flattened to its x,y components interleaved
// (x0,y0,x1,y1,...) since dtw.DTW operates on scalar sequences; a DTW
// distance near zero means the two trajectories are effectively the same
// path.
func TrajectoryDistance(a, b []geometry.Point2) (float64, error) {
	if len(a) == 0 || len(b) == 0 {
		return 0, dtw.ErrEmptyInput
	}

	flatten := func(points []geometry.Point2) []float64 {
		out := make([]float64, 0, len(points)*2)
		for _, p := range points {
			out = append(out, p[0], p[1])
		}

		return out
	}

	// A tight Sakoe-Chiba band: replay is expected to track the recorded
	// path point-for-point, not merely resemble its shape, so a wide band
	// that tolerates large timing drift would mask a real divergence.
	opts := dtw.DefaultOptions()
	opts.Window = 2
	dist, _, err := dtw.DTW(flatten(a), flatten(b), &opts)
	if err != nil {
		return 0, fmt.Errorf("recorder: trajectory distance: %w", err)
	}

	return dist, nil
}
