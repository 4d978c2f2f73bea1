package domain

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Exercise is a single entry in the exercise catalog. Catalog entries are
// reference data: workouts embed a copy of the exercise as it was at the time
// the workout was logged, so later catalog edits never rewrite history.
type Exercise struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description []string           `bson:"description,omitempty" json:"description,omitempty"`
	Muscles     []string           `bson:"muscles,omitempty" json:"muscles,omitempty"`
	Image       string             `bson:"image,omitempty" json:"image,omitempty"`
}
