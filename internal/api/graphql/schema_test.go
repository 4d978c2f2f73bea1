package graphql

import (
	"context"
	"testing"
	"time"

	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/repository/memory"
	"alcyxob/workout-tracker/internal/service"

	"github.com/graphql-go/graphql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type schemaFixture struct {
	schema   graphql.Schema
	auth     service.AuthService
	workouts service.WorkoutService
	userID   primitive.ObjectID
	exercise domain.Exercise
}

// newSchemaFixture builds the full schema over the in-memory repositories with
// the clock pinned to Wednesday 2024-01-10.
func newSchemaFixture(t *testing.T) *schemaFixture {
	t.Helper()

	userRepo := memory.NewMemoryUserRepository()
	exerciseRepo := memory.NewMemoryExerciseRepository()
	workoutRepo := memory.NewMemoryWorkoutRepository()

	now := func() time.Time {
		return time.Date(2024, time.January, 10, 15, 0, 0, 0, time.UTC)
	}

	authService := service.NewAuthService(userRepo, "test-secret", time.Hour)
	workoutService := service.NewWorkoutService(workoutRepo, exerciseRepo)

	schema, err := NewSchema(Services{
		Auth:      authService,
		Workouts:  workoutService,
		Reports:   service.NewReportService(workoutRepo, now),
		Exercises: service.NewExerciseService(exerciseRepo, workoutRepo),
	})
	require.NoError(t, err)

	exercise := domain.Exercise{Name: "Bench Press", Muscles: []string{"chest", "triceps"}}
	id, err := exerciseRepo.Insert(context.Background(), &exercise)
	require.NoError(t, err)
	exercise.ID = id

	return &schemaFixture{
		schema:   schema,
		auth:     authService,
		workouts: workoutService,
		userID:   primitive.NewObjectID(),
		exercise: exercise,
	}
}

func (f *schemaFixture) do(t *testing.T, query string, variables map[string]interface{}) map[string]interface{} {
	t.Helper()

	// Raw variables ride along in the context, as the HTTP handler does it.
	result := graphql.Do(graphql.Params{
		Schema:         f.schema,
		RequestString:  query,
		VariableValues: variables,
		Context:        WithVariables(context.Background(), variables),
	})
	require.Empty(t, result.Errors, "unexpected errors: %v", result.Errors)

	data, ok := result.Data.(map[string]interface{})
	require.True(t, ok)
	return data
}

func TestSchemaCreateAndListWorkouts(t *testing.T) {
	f := newSchemaFixture(t)

	data := f.do(t, `
		mutation ($userId: String!, $exerciseId: String!) {
			createWorkout(userId: $userId, exerciseId: $exerciseId, sets: 3, reps: 10, date: "2024-01-08", done: true, weight: 60, comment: "solid session") {
				id
				sets
				reps
				weight
				duration
				date
				done
				comment
				exercise { id name muscles }
			}
		}`,
		map[string]interface{}{
			"userId":     f.userID.Hex(),
			"exerciseId": f.exercise.ID.Hex(),
		})

	created, ok := data["createWorkout"].(map[string]interface{})
	require.True(t, ok)
	assert.NotEmpty(t, created["id"])
	assert.Equal(t, 3, created["sets"])
	assert.Equal(t, 10, created["reps"])
	assert.Equal(t, 60, created["weight"])
	assert.Nil(t, created["duration"])
	assert.Equal(t, "2024-01-08", created["date"])
	assert.Equal(t, true, created["done"])
	assert.Equal(t, "solid session", created["comment"])

	embedded, ok := created["exercise"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, f.exercise.ID.Hex(), embedded["id"])
	assert.Equal(t, "Bench Press", embedded["name"])

	data = f.do(t, `
		query ($userId: String!) {
			workouts(userId: $userId) {
				numPages
				workouts { id date exercise { name } }
			}
		}`,
		map[string]interface{}{"userId": f.userID.Hex()})

	page, ok := data["workouts"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, 1, page["numPages"])

	list, ok := page["workouts"].([]interface{})
	require.True(t, ok)
	require.Len(t, list, 1)
	first := list[0].(map[string]interface{})
	assert.Equal(t, created["id"], first["id"])
}

func TestSchemaTotalRepsWeekWindow(t *testing.T) {
	f := newSchemaFixture(t)
	ctx := context.Background()

	// Monday of the pinned week, done.
	_, err := f.workouts.Create(ctx, f.userID, f.exercise.ID, 3, 10, "2024-01-08", true, nil, nil, nil)
	require.NoError(t, err)
	// Same week but unfinished, must not count.
	_, err = f.workouts.Create(ctx, f.userID, f.exercise.ID, 5, 5, "2024-01-09", false, nil, nil, nil)
	require.NoError(t, err)
	// Previous week, outside the window.
	_, err = f.workouts.Create(ctx, f.userID, f.exercise.ID, 4, 4, "2024-01-05", true, nil, nil, nil)
	require.NoError(t, err)

	data := f.do(t, `
		query ($userId: String!) {
			totalReps(userId: $userId, timeRange: "week") {
				totalReps
				timeRange
				exercise { id }
			}
		}`,
		map[string]interface{}{"userId": f.userID.Hex()})

	results, ok := data["totalReps"].([]interface{})
	require.True(t, ok)
	require.Len(t, results, 1)

	metric := results[0].(map[string]interface{})
	assert.Equal(t, 30, metric["totalReps"])
	assert.Equal(t, "week", metric["timeRange"])
	assert.Equal(t, f.exercise.ID.Hex(), metric["exercise"].(map[string]interface{})["id"])
}

func TestSchemaDeleteWorkout(t *testing.T) {
	f := newSchemaFixture(t)

	created, err := f.workouts.Create(context.Background(), f.userID, f.exercise.ID, 3, 10, "2024-01-08", false, nil, nil, nil)
	require.NoError(t, err)

	query := `
		mutation ($workoutId: String!, $userId: String!) {
			deleteWorkout(workoutId: $workoutId, userId: $userId) { success }
		}`
	variables := map[string]interface{}{
		"workoutId": created.ID.Hex(),
		"userId":    f.userID.Hex(),
	}

	data := f.do(t, query, variables)
	assert.Equal(t, true, data["deleteWorkout"].(map[string]interface{})["success"])

	// Already gone, reported as success: false rather than an error.
	data = f.do(t, query, variables)
	assert.Equal(t, false, data["deleteWorkout"].(map[string]interface{})["success"])
}

func TestSchemaUpdateWorkoutMissIsNull(t *testing.T) {
	f := newSchemaFixture(t)

	data := f.do(t, `
		mutation ($workoutId: String!, $userId: String!) {
			updateWorkout(workoutId: $workoutId, userId: $userId, sets: 5) { id sets }
		}`,
		map[string]interface{}{
			"workoutId": primitive.NewObjectID().Hex(),
			"userId":    f.userID.Hex(),
		})

	assert.Nil(t, data["updateWorkout"])
}

func TestSchemaUpdateWorkoutPartial(t *testing.T) {
	f := newSchemaFixture(t)

	created, err := f.workouts.Create(context.Background(), f.userID, f.exercise.ID, 3, 10, "2024-01-08", false, nil, nil, nil)
	require.NoError(t, err)

	data := f.do(t, `
		mutation ($workoutId: String!, $userId: String!) {
			updateWorkout(workoutId: $workoutId, userId: $userId, sets: 5, done: true) {
				sets
				reps
				done
				date
			}
		}`,
		map[string]interface{}{
			"workoutId": created.ID.Hex(),
			"userId":    f.userID.Hex(),
		})

	updated := data["updateWorkout"].(map[string]interface{})
	assert.Equal(t, 5, updated["sets"])
	assert.Equal(t, 10, updated["reps"])
	assert.Equal(t, true, updated["done"])
	assert.Equal(t, "2024-01-08", updated["date"])
}

func intRef(n int) *int {
	return &n
}

func TestSchemaUpdateWorkoutNullClearsMetric(t *testing.T) {
	f := newSchemaFixture(t)

	created, err := f.workouts.Create(context.Background(), f.userID, f.exercise.ID, 3, 10, "2024-01-08", true, intRef(60), intRef(300), nil)
	require.NoError(t, err)

	query := `
		mutation ($workoutId: String!, $userId: String!, $weight: Int) {
			updateWorkout(workoutId: $workoutId, userId: $userId, weight: $weight) {
				weight
				duration
			}
		}`

	// A null-bound variable clears the metric.
	data := f.do(t, query, map[string]interface{}{
		"workoutId": created.ID.Hex(),
		"userId":    f.userID.Hex(),
		"weight":    nil,
	})
	updated := data["updateWorkout"].(map[string]interface{})
	assert.Nil(t, updated["weight"])
	assert.Equal(t, 300, updated["duration"])

	// The cleared value survives a re-read.
	stored, err := f.workouts.Update(context.Background(), created.ID, f.userID, service.WorkoutUpdateInput{})
	require.NoError(t, err)
	assert.Nil(t, stored.Weight)
	require.NotNil(t, stored.Duration)
	assert.Equal(t, 300, *stored.Duration)

	// A value-bound variable sets it back; the untouched metric stays put.
	data = f.do(t, query, map[string]interface{}{
		"workoutId": created.ID.Hex(),
		"userId":    f.userID.Hex(),
		"weight":    70,
	})
	updated = data["updateWorkout"].(map[string]interface{})
	assert.Equal(t, 70, updated["weight"])
	assert.Equal(t, 300, updated["duration"])

	// Leaving the variable unbound touches nothing.
	data = f.do(t, query, map[string]interface{}{
		"workoutId": created.ID.Hex(),
		"userId":    f.userID.Hex(),
	})
	updated = data["updateWorkout"].(map[string]interface{})
	assert.Equal(t, 70, updated["weight"])
	assert.Equal(t, 300, updated["duration"])
}

func TestSchemaUserExercises(t *testing.T) {
	f := newSchemaFixture(t)

	_, err := f.workouts.Create(context.Background(), f.userID, f.exercise.ID, 3, 10, "2024-01-08", true, nil, nil, nil)
	require.NoError(t, err)

	data := f.do(t, `
		query ($userId: String!) {
			userExercises(userId: $userId) { id name }
			filtered: userExercises(userId: $userId, muscles: ["quads"]) { id }
		}`,
		map[string]interface{}{"userId": f.userID.Hex()})

	all, ok := data["userExercises"].([]interface{})
	require.True(t, ok)
	require.Len(t, all, 1)
	assert.Equal(t, "Bench Press", all[0].(map[string]interface{})["name"])

	filtered, ok := data["filtered"].([]interface{})
	require.True(t, ok)
	assert.Empty(t, filtered)
}

func TestSchemaCurrentUser(t *testing.T) {
	f := newSchemaFixture(t)

	user, err := f.auth.Signup(context.Background(), "frank", "frank@example.com", "Sup3rS3cret!")
	require.NoError(t, err)

	result := graphql.Do(graphql.Params{
		Schema:        f.schema,
		RequestString: `{ currentUser { id username email } }`,
		Context:       WithIdentity(context.Background(), user.ID.Hex()),
	})
	require.Empty(t, result.Errors)

	current := result.Data.(map[string]interface{})["currentUser"].(map[string]interface{})
	assert.Equal(t, user.ID.Hex(), current["id"])
	assert.Equal(t, "frank", current["username"])
	assert.Equal(t, "frank@example.com", current["email"])

	// Without an identity in context the field resolves to an error.
	result = graphql.Do(graphql.Params{
		Schema:        f.schema,
		RequestString: `{ currentUser { id } }`,
		Context:       context.Background(),
	})
	assert.NotEmpty(t, result.Errors)
}

func TestSchemaResolverErrorsSurfaceAsGraphQLErrors(t *testing.T) {
	f := newSchemaFixture(t)

	result := graphql.Do(graphql.Params{
		Schema: f.schema,
		RequestString: `
			mutation ($userId: String!, $exerciseId: String!) {
				createWorkout(userId: $userId, exerciseId: $exerciseId, sets: 3, reps: 10, date: "08.01.2024", done: true) { id }
			}`,
		VariableValues: map[string]interface{}{
			"userId":     f.userID.Hex(),
			"exerciseId": f.exercise.ID.Hex(),
		},
		Context: context.Background(),
	})
	assert.NotEmpty(t, result.Errors)
}
