package domain

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Workout represents one logged exercise instance on a date, owned by a user.
// The exercise is embedded by value (a snapshot taken at create/update time),
// not referenced, so the record keeps describing the exercise as performed.
type Workout struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID   primitive.ObjectID `bson:"user_id" json:"userId"`
	Exercise Exercise           `bson:"exercise" json:"exercise"`
	Sets     int                `bson:"sets" json:"sets"`
	Reps     int                `bson:"reps" json:"reps"`
	// Weight and Duration are optional metrics; nil means "not tracked for
	// this workout" and never contributes to a max aggregate.
	Weight   *int   `bson:"weight,omitempty" json:"weight,omitempty"`
	Duration *int   `bson:"duration,omitempty" json:"duration,omitempty"`
	Date     string `bson:"date" json:"date"` // YYYY-MM-DD
	Done     bool   `bson:"done" json:"done"`
	Comment  string `bson:"comment,omitempty" json:"comment,omitempty"`
}

// TotalReps returns sets*reps for this single record.
func (w *Workout) TotalReps() int {
	return w.Sets * w.Reps
}
