// Package graphql wires the service layer into the single query endpoint.
package graphql

import (
	"alcyxob/workout-tracker/internal/service"
	"context"
	"errors"

	"github.com/graphql-go/graphql"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Services bundles the service dependencies the schema resolves against.
type Services struct {
	Auth      service.AuthService
	Workouts  service.WorkoutService
	Reports   service.ReportService
	Exercises service.ExerciseService
}

type identityKey struct{}

// WithIdentity stores the authenticated user id (hex) in the request context
// for the currentUser resolver.
func WithIdentity(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, identityKey{}, userID)
}

func identityFrom(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(identityKey{}).(string)
	return id, ok
}

// NewSchema builds the executable schema: every query and mutation the
// backend exposes goes through here.
func NewSchema(services Services) (graphql.Schema, error) {
	exerciseType := newExerciseType()
	workoutType := newWorkoutType(exerciseType)
	totalRepsType := newMetricType("TotalReps", "totalReps", exerciseType)
	maxWeightType := newMetricType("MaxWeight", "maxWeight", exerciseType)
	maxDurationType := newMetricType("MaxDuration", "maxDuration", exerciseType)
	paginationType := newWorkoutPaginationType(workoutType)
	deleteResultType := newDeleteResultType()
	userType := newUserType()

	userIDArg := &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)}

	metricArgs := graphql.FieldConfigArgument{
		"userId":     userIDArg,
		"exerciseId": &graphql.ArgumentConfig{Type: graphql.String},
		"timeRange":  &graphql.ArgumentConfig{Type: graphql.String},
	}

	// metricResolver adapts one report service call into a resolver.
	metricResolver := func(run func(ctx context.Context, userID primitive.ObjectID, exerciseID *primitive.ObjectID, timeRange string) (interface{}, error)) graphql.FieldResolveFn {
		return func(p graphql.ResolveParams) (interface{}, error) {
			userID, err := requiredObjectID(p.Args, "userId")
			if err != nil {
				return nil, err
			}
			exerciseID, err := optionalObjectID(p.Args, "exerciseId")
			if err != nil {
				return nil, err
			}
			return run(p.Context, userID, exerciseID, stringArg(p.Args, "timeRange"))
		}
	}

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"workouts": &graphql.Field{
				Type: paginationType,
				Args: graphql.FieldConfigArgument{
					"userId":     userIDArg,
					"dateGte":    &graphql.ArgumentConfig{Type: graphql.String},
					"dateLte":    &graphql.ArgumentConfig{Type: graphql.String},
					"exerciseId": &graphql.ArgumentConfig{Type: graphql.String},
					"page":       &graphql.ArgumentConfig{Type: graphql.Int},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					userID, err := requiredObjectID(p.Args, "userId")
					if err != nil {
						return nil, err
					}
					exerciseID, err := optionalObjectID(p.Args, "exerciseId")
					if err != nil {
						return nil, err
					}
					return services.Reports.GetWorkouts(
						p.Context,
						userID,
						stringArg(p.Args, "dateGte"),
						stringArg(p.Args, "dateLte"),
						exerciseID,
						optionalInt(p.Args, "page"),
					)
				},
			},
			"workoutsLeftToday": &graphql.Field{
				Type: graphql.NewList(workoutType),
				Args: graphql.FieldConfigArgument{"userId": userIDArg},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					userID, err := requiredObjectID(p.Args, "userId")
					if err != nil {
						return nil, err
					}
					return services.Reports.WorkoutsLeftToday(p.Context, userID)
				},
			},
			"workoutsLeftWeek": &graphql.Field{
				Type: graphql.NewList(workoutType),
				Args: graphql.FieldConfigArgument{"userId": userIDArg},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					userID, err := requiredObjectID(p.Args, "userId")
					if err != nil {
						return nil, err
					}
					return services.Reports.WorkoutsLeftWeek(p.Context, userID)
				},
			},
			"totalReps": &graphql.Field{
				Type: graphql.NewList(totalRepsType),
				Args: metricArgs,
				Resolve: metricResolver(func(ctx context.Context, userID primitive.ObjectID, exerciseID *primitive.ObjectID, timeRange string) (interface{}, error) {
					return services.Reports.TotalReps(ctx, userID, exerciseID, timeRange)
				}),
			},
			"maxWeight": &graphql.Field{
				Type: graphql.NewList(maxWeightType),
				Args: metricArgs,
				Resolve: metricResolver(func(ctx context.Context, userID primitive.ObjectID, exerciseID *primitive.ObjectID, timeRange string) (interface{}, error) {
					return services.Reports.MaxWeight(ctx, userID, exerciseID, timeRange)
				}),
			},
			"maxDuration": &graphql.Field{
				Type: graphql.NewList(maxDurationType),
				Args: metricArgs,
				Resolve: metricResolver(func(ctx context.Context, userID primitive.ObjectID, exerciseID *primitive.ObjectID, timeRange string) (interface{}, error) {
					return services.Reports.MaxDuration(ctx, userID, exerciseID, timeRange)
				}),
			},
			"exercises": &graphql.Field{
				Type: graphql.NewList(exerciseType),
				Args: graphql.FieldConfigArgument{
					"muscles": &graphql.ArgumentConfig{Type: graphql.NewList(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return services.Exercises.GetExercises(p.Context, stringList(p.Args, "muscles"))
				},
			},
			"userExercises": &graphql.Field{
				Type: graphql.NewList(exerciseType),
				Args: graphql.FieldConfigArgument{
					"userId":  userIDArg,
					"muscles": &graphql.ArgumentConfig{Type: graphql.NewList(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					userID, err := requiredObjectID(p.Args, "userId")
					if err != nil {
						return nil, err
					}
					return services.Exercises.GetUserExercises(p.Context, userID, stringList(p.Args, "muscles"))
				},
			},
			"currentUser": &graphql.Field{
				Type: userType,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					identity, ok := identityFrom(p.Context)
					if !ok {
						return nil, errors.New("no authenticated user")
					}
					userID, err := primitive.ObjectIDFromHex(identity)
					if err != nil {
						return nil, err
					}
					return services.Auth.GetUserByID(p.Context, userID)
				},
			},
		},
	})

	mutationType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"createWorkout": &graphql.Field{
				Type: workoutType,
				Args: graphql.FieldConfigArgument{
					"userId":     userIDArg,
					"exerciseId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"sets":       &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
					"reps":       &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
					"date":       &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"done":       &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Boolean)},
					"weight":     &graphql.ArgumentConfig{Type: graphql.Int},
					"duration":   &graphql.ArgumentConfig{Type: graphql.Int},
					"comment":    &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					userID, err := requiredObjectID(p.Args, "userId")
					if err != nil {
						return nil, err
					}
					exerciseID, err := requiredObjectID(p.Args, "exerciseId")
					if err != nil {
						return nil, err
					}
					return services.Workouts.Create(
						p.Context,
						userID,
						exerciseID,
						p.Args["sets"].(int),
						p.Args["reps"].(int),
						p.Args["date"].(string),
						p.Args["done"].(bool),
						optionalInt(p.Args, "weight"),
						optionalInt(p.Args, "duration"),
						optionalString(p.Args, "comment"),
					)
				},
			},
			"updateWorkout": &graphql.Field{
				Type: workoutType,
				Args: graphql.FieldConfigArgument{
					"workoutId":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"userId":     userIDArg,
					"exerciseId": &graphql.ArgumentConfig{Type: graphql.String},
					"sets":       &graphql.ArgumentConfig{Type: graphql.Int},
					"reps":       &graphql.ArgumentConfig{Type: graphql.Int},
					"weight":     &graphql.ArgumentConfig{Type: graphql.Int},
					"duration":   &graphql.ArgumentConfig{Type: graphql.Int},
					"date":       &graphql.ArgumentConfig{Type: graphql.String},
					"done":       &graphql.ArgumentConfig{Type: graphql.Boolean},
					"comment":    &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					workoutID, err := requiredObjectID(p.Args, "workoutId")
					if err != nil {
						return nil, err
					}
					userID, err := requiredObjectID(p.Args, "userId")
					if err != nil {
						return nil, err
					}
					exerciseID, err := optionalObjectID(p.Args, "exerciseId")
					if err != nil {
						return nil, err
					}

					input := service.WorkoutUpdateInput{
						ExerciseID: exerciseID,
						Sets:       optionalInt(p.Args, "sets"),
						Reps:       optionalInt(p.Args, "reps"),
						Date:       optionalString(p.Args, "date"),
						Done:       optionalBool(p.Args, "done"),
						Comment:    optionalString(p.Args, "comment"),
					}
					// A null-bound variable never reaches p.Args; it is read
					// from the raw request variables instead.
					input.Weight = optionalInt(p.Args, "weight")
					input.ClearWeight = explicitNull(p, "weight")
					input.Duration = optionalInt(p.Args, "duration")
					input.ClearDuration = explicitNull(p, "duration")

					workout, err := services.Workouts.Update(p.Context, workoutID, userID, input)
					if err != nil {
						// A miss (absent or foreign workout) is a null
						// payload, not a query error, so existence never
						// leaks across users.
						if errors.Is(err, service.ErrWorkoutNotFound) {
							return nil, nil
						}
						return nil, err
					}
					return workout, nil
				},
			},
			"deleteWorkout": &graphql.Field{
				Type: deleteResultType,
				Args: graphql.FieldConfigArgument{
					"workoutId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"userId":    userIDArg,
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					workoutID, err := requiredObjectID(p.Args, "workoutId")
					if err != nil {
						return nil, err
					}
					userID, err := requiredObjectID(p.Args, "userId")
					if err != nil {
						return nil, err
					}
					success, err := services.Workouts.Delete(p.Context, workoutID, userID)
					if err != nil {
						return nil, err
					}
					return map[string]interface{}{"success": success}, nil
				},
			},
			"createExercise": &graphql.Field{
				Type: exerciseType,
				Args: graphql.FieldConfigArgument{
					"name":        &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"description": &graphql.ArgumentConfig{Type: graphql.NewList(graphql.String)},
					"muscles":     &graphql.ArgumentConfig{Type: graphql.NewList(graphql.String)},
					"image":       &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return services.Exercises.CreateExercise(
						p.Context,
						p.Args["name"].(string),
						stringList(p.Args, "description"),
						stringList(p.Args, "muscles"),
						stringArg(p.Args, "image"),
					)
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    queryType,
		Mutation: mutationType,
	})
}
