package orca

import "strconv"

// ParseParameters overlays the rvo_* (and next_waypoint_distance) keys
// found in options onto DefaultParameters, mirroring
// original_source/rvo2AI/include/RVO2D_Parameters.h's setParameters: an
// unrecognized key or an unparsable value is ignored rather than rejected,
// matching the original's silent stringstream-extraction behaviour.
func ParseParameters(options map[string]string) Parameters {
	p := DefaultParameters()

	if v, ok := floatOption(options, "rvo_neighbor_distance"); ok {
		p.NeighborDistance = v
	}
	if v, ok := floatOption(options, "rvo_time_horizon"); ok {
		p.TimeHorizon = v
	}
	if v, ok := floatOption(options, "rvo_max_speed"); ok {
		p.MaxSpeed = v
	}
	if v, ok := floatOption(options, "rvo_preferred_speed"); ok {
		p.PreferredSpeed = v
	}
	if v, ok := floatOption(options, "rvo_time_horizon_obstacles"); ok {
		p.TimeHorizonObstacles = v
	}
	if v, ok := intOption(options, "rvo_max_neighbors"); ok {
		p.MaxNeighbors = v
	}
	if v, ok := floatOption(options, "next_waypoint_distance"); ok {
		p.NextWaypointDistance = v
	}

	return p
}

func floatOption(options map[string]string, key string) (float64, bool) {
	raw, present := options[key]
	if !present {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)

	return v, err == nil
}

func intOption(options map[string]string, key string) (int, bool) {
	raw, present := options[key]
	if !present {
		return 0, false
	}
	v, err := strconv.Atoi(raw)

	return v, err == nil
}
