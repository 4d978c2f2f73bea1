package domain

// ExerciseMetric is one per-exercise aggregation result: the folded metric
// value for every done workout of one exercise identity inside a time window.
// Computed on read, never persisted. The embedded exercise is a representative
// snapshot from the group, not necessarily the canonical catalog entry.
type ExerciseMetric struct {
	Exercise  Exercise `bson:"exercise" json:"exercise"`
	Value     int      `bson:"value" json:"value"`
	TimeRange string   `bson:"-" json:"timeRange,omitempty"`
}

// WorkoutPage is an ephemeral page of date-sorted workouts plus the total
// page count for the same filter.
type WorkoutPage struct {
	Workouts []Workout `json:"workouts"`
	NumPages int       `json:"numPages"`
}
