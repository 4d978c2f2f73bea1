package graphql

import (
	"alcyxob/workout-tracker/internal/domain"

	"github.com/graphql-go/graphql"
)

// Object types mirroring the domain records. Ids are exposed as hex strings.

func exerciseFromSource(src interface{}) (domain.Exercise, bool) {
	switch e := src.(type) {
	case domain.Exercise:
		return e, true
	case *domain.Exercise:
		if e != nil {
			return *e, true
		}
	}
	return domain.Exercise{}, false
}

func workoutFromSource(src interface{}) (domain.Workout, bool) {
	switch w := src.(type) {
	case domain.Workout:
		return w, true
	case *domain.Workout:
		if w != nil {
			return *w, true
		}
	}
	return domain.Workout{}, false
}

func newExerciseType() *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Exercise",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if e, ok := exerciseFromSource(p.Source); ok {
						return e.ID.Hex(), nil
					}
					return nil, nil
				},
			},
			"name":        &graphql.Field{Type: graphql.String},
			"description": &graphql.Field{Type: graphql.NewList(graphql.String)},
			"muscles":     &graphql.Field{Type: graphql.NewList(graphql.String)},
			"image":       &graphql.Field{Type: graphql.String},
		},
	})
}

func newWorkoutType(exerciseType *graphql.Object) *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Workout",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if w, ok := workoutFromSource(p.Source); ok {
						return w.ID.Hex(), nil
					}
					return nil, nil
				},
			},
			"userId": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if w, ok := workoutFromSource(p.Source); ok {
						return w.UserID.Hex(), nil
					}
					return nil, nil
				},
			},
			"exercise": &graphql.Field{
				Type: exerciseType,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if w, ok := workoutFromSource(p.Source); ok {
						return w.Exercise, nil
					}
					return nil, nil
				},
			},
			"sets":     &graphql.Field{Type: graphql.Int},
			"reps":     &graphql.Field{Type: graphql.Int},
			"weight":   &graphql.Field{Type: graphql.Int},
			"duration": &graphql.Field{Type: graphql.Int},
			"date":     &graphql.Field{Type: graphql.String},
			"done":     &graphql.Field{Type: graphql.Boolean},
			"comment":  &graphql.Field{Type: graphql.String},
		},
	})
}

// newMetricType builds one of the report record types. They share the shape
// {exercise, <metric>, timeRange} and differ only in the metric field name.
func newMetricType(name, valueField string, exerciseType *graphql.Object) *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: name,
		Fields: graphql.Fields{
			"exercise": &graphql.Field{
				Type: exerciseType,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if m, ok := p.Source.(domain.ExerciseMetric); ok {
						return m.Exercise, nil
					}
					return nil, nil
				},
			},
			valueField: &graphql.Field{
				Type: graphql.Int,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if m, ok := p.Source.(domain.ExerciseMetric); ok {
						return m.Value, nil
					}
					return nil, nil
				},
			},
			"timeRange": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if m, ok := p.Source.(domain.ExerciseMetric); ok {
						return m.TimeRange, nil
					}
					return nil, nil
				},
			},
		},
	})
}

func newWorkoutPaginationType(workoutType *graphql.Object) *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "WorkoutPagination",
		Fields: graphql.Fields{
			"workouts": &graphql.Field{Type: graphql.NewList(workoutType)},
			"numPages": &graphql.Field{Type: graphql.Int},
		},
	})
}

func newDeleteResultType() *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "DeleteResult",
		Fields: graphql.Fields{
			"success": &graphql.Field{Type: graphql.Boolean},
		},
	})
}

func newUserType() *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "User",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if u, ok := p.Source.(*domain.User); ok && u != nil {
						return u.ID.Hex(), nil
					}
					return nil, nil
				},
			},
			"username": &graphql.Field{Type: graphql.String},
			"email":    &graphql.Field{Type: graphql.String},
		},
	})
}
