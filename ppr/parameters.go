package ppr

import "strconv"

// Parameters is the ped_* behaviour parameter set, named and defaulted
// from original_source/pprAI/include/PPRParameters.h.
type Parameters struct {
	MaxSpeed                        float64
	TypicalSpeed                    float64
	MaxForce                        float64
	MaxSpeedFactor                  float64
	FasterSpeedFactor                float64
	SlightlyFasterSpeedFactor        float64
	TypicalSpeedFactor               float64
	SlightlySlowerSpeedFactor        float64
	SlowerSpeedFactor                float64
	CorneringTurnRate                float64
	AdjustmentTurnRate                float64
	FasterAvoidanceTurnRate           float64
	TypicalAvoidanceTurnRate          float64
	BrakingRate                       float64
	ComfortZone                       float64
	QueryRadius                       float64
	MaxNeighbors                      int
	SimilarDirectionDotThreshold      float64
	SameDirectionDotThreshold         float64
	OncomingPredictionThreshold       float64
	OncomingReactionThreshold         float64
	WrongDirectionDotThreshold        float64
	ThreatDistanceThreshold           float64
	ThreatMinTime                     float64
	ThreatMaxTime                     float64
	PredictiveAnticipationFactor      float64
	ReactiveAnticipationFactor        float64
	CrowdInfluenceFactor              float64
	FacingStaticObjectThreshold       float64
	OrdinarySteeringStrength          float64
	OncomingThreatAvoidanceStrength   float64
	CrossThreatAvoidanceStrength      float64
	MaxTurningRate                    float64
	FeelingCrowdedThreshold           int
	ScootRate                         float64
	ReachedTargetDistanceThreshold    float64
	DynamicCollisionPadding           float64
	FurthestLocalTargetDistance       float64
	NextWaypointDistance              float64
	MaxNumWaypoints                   int
	FeelerMinLength                   float64
	FeelerMaxLength                   float64
	ClearPathMinTime                  float64
}

// DefaultParameters mirrors PPRParameters.h's compiled-in constants. The
// feeler min/max bounds are this package's own choice (the original
// clamps nowhere near as explicitly; SPEC_FULL.md §4.3.1 calls for a
// clamp, so this package picks a comfort-zone-scaled floor and a
// query-radius-scaled ceiling).
func DefaultParameters() Parameters {
	return Parameters{
		MaxSpeed:                        2.6,
		TypicalSpeed:                    1.33,
		MaxForce:                        14.0,
		MaxSpeedFactor:                  1.7,
		FasterSpeedFactor:               1.31,
		SlightlyFasterSpeedFactor:       1.15,
		TypicalSpeedFactor:              1.0,
		SlightlySlowerSpeedFactor:       0.77,
		SlowerSpeedFactor:               0.5,
		CorneringTurnRate:               1.9,
		AdjustmentTurnRate:              0.16,
		FasterAvoidanceTurnRate:         0.55,
		TypicalAvoidanceTurnRate:        0.26,
		BrakingRate:                     0.95,
		ComfortZone:                     1.5,
		QueryRadius:                     10.0,
		MaxNeighbors:                    10,
		SimilarDirectionDotThreshold:    0.94,
		SameDirectionDotThreshold:       0.99,
		OncomingPredictionThreshold:     -0.95,
		OncomingReactionThreshold:       -0.95,
		WrongDirectionDotThreshold:      0.55,
		ThreatDistanceThreshold:         8.0,
		ThreatMinTime:                   0.8,
		ThreatMaxTime:                   4.0,
		PredictiveAnticipationFactor:    5.0,
		ReactiveAnticipationFactor:      1.1,
		CrowdInfluenceFactor:            0.3,
		FacingStaticObjectThreshold:     0.3,
		OrdinarySteeringStrength:        0.05,
		OncomingThreatAvoidanceStrength: 0.15,
		CrossThreatAvoidanceStrength:    0.9,
		MaxTurningRate:                  0.1,
		FeelingCrowdedThreshold:         3,
		ScootRate:                       0.4,
		ReachedTargetDistanceThreshold:  0.5,
		DynamicCollisionPadding:         0.2,
		FurthestLocalTargetDistance:     20,
		NextWaypointDistance:            70,
		MaxNumWaypoints:                 20,
		FeelerMinLength:                 0.5,
		FeelerMaxLength:                 10.0,
		ClearPathMinTime:                0.5,
	}
}

// ParseParameters overlays recognized ped_* keys from options onto
// DefaultParameters, ignoring unknown keys and unparsable values exactly
// as PPRParameters::setParameters does.
func ParseParameters(options map[string]string) Parameters {
	p := DefaultParameters()

	floats := map[string]*float64{
		"ped_max_speed":                          &p.MaxSpeed,
		"ped_typical_speed":                       &p.TypicalSpeed,
		"ped_max_force":                           &p.MaxForce,
		"ped_max_speed_factor":                    &p.MaxSpeedFactor,
		"ped_faster_speed_factor":                 &p.FasterSpeedFactor,
		"ped_slightly_faster_speed_factor":         &p.SlightlyFasterSpeedFactor,
		"ped_typical_speed_factor":                 &p.TypicalSpeedFactor,
		"ped_slightly_slower_speed_factor":         &p.SlightlySlowerSpeedFactor,
		"ped_slower_speed_factor":                  &p.SlowerSpeedFactor,
		"ped_cornering_turn_rate":                  &p.CorneringTurnRate,
		"ped_adjustment_turn_rate":                 &p.AdjustmentTurnRate,
		"ped_faster_avoidance_turn_rate":            &p.FasterAvoidanceTurnRate,
		"ped_typical_avoidance_turn_rate":           &p.TypicalAvoidanceTurnRate,
		"ped_braking_rate":                          &p.BrakingRate,
		"ped_comfort_zone":                          &p.ComfortZone,
		"ped_query_radius":                          &p.QueryRadius,
		"ped_similar_direction_dot_product_threshold": &p.SimilarDirectionDotThreshold,
		"ped_same_direction_dot_product_threshold":    &p.SameDirectionDotThreshold,
		"ped_oncoming_prediction_threshold":           &p.OncomingPredictionThreshold,
		"ped_oncoming_reaction_threshold":             &p.OncomingReactionThreshold,
		"ped_wrong_direction_dot_product_threshold":   &p.WrongDirectionDotThreshold,
		"ped_threat_distance_threshold":               &p.ThreatDistanceThreshold,
		"ped_threat_min_time_threshold":                &p.ThreatMinTime,
		"ped_threat_max_time_threshold":                &p.ThreatMaxTime,
		"ped_predictive_anticipation_factor":           &p.PredictiveAnticipationFactor,
		"ped_reactive_anticipation_factor":             &p.ReactiveAnticipationFactor,
		"ped_crowd_influence_factor":                   &p.CrowdInfluenceFactor,
		"ped_facing_static_object_threshold":           &p.FacingStaticObjectThreshold,
		"ped_ordinary_steering_strength":                &p.OrdinarySteeringStrength,
		"ped_oncoming_threat_avoidance_strength":        &p.OncomingThreatAvoidanceStrength,
		"ped_cross_threat_avoidance_strength":           &p.CrossThreatAvoidanceStrength,
		"ped_max_turning_rate":                          &p.MaxTurningRate,
		"ped_scoot_rate":                                &p.ScootRate,
		"ped_reached_target_distance_threshold":         &p.ReachedTargetDistanceThreshold,
		"ped_dynamic_collision_padding":                  &p.DynamicCollisionPadding,
		"ped_furthest_local_target_distance":             &p.FurthestLocalTargetDistance,
		"ped_next_waypoint_distance":                     &p.NextWaypointDistance,
		"ped_clear_path_min_time":                        &p.ClearPathMinTime,
		"ped_feeler_min_length":                          &p.FeelerMinLength,
		"ped_feeler_max_length":                          &p.FeelerMaxLength,
	}
	for key, dst := range floats {
		if raw, ok := options[key]; ok {
			if v, err := strconv.ParseFloat(raw, 64); err == nil {
				*dst = v
			}
		}
	}

	ints := map[string]*int{
		"ped_feeling_crowded_threshold": &p.FeelingCrowdedThreshold,
		"ped_max_num_waypoints":         &p.MaxNumWaypoints,
		"ped_max_neighbors":             &p.MaxNeighbors,
	}
	for key, dst := range ints {
		if raw, ok := options[key]; ok {
			if v, err := strconv.Atoi(raw); err == nil {
				*dst = v
			}
		}
	}

	return p
}
