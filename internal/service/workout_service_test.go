package service

import (
	"context"
	"testing"

	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/repository"
	"alcyxob/workout-tracker/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newWorkoutServiceFixture(t *testing.T) (WorkoutService, repository.WorkoutRepository, domain.Exercise) {
	t.Helper()

	exerciseRepo := memory.NewMemoryExerciseRepository()
	workoutRepo := memory.NewMemoryWorkoutRepository()

	exercise := domain.Exercise{
		Name:    "Bench Press",
		Muscles: []string{"chest", "triceps"},
	}
	id, err := exerciseRepo.Insert(context.Background(), &exercise)
	require.NoError(t, err)
	exercise.ID = id

	return NewWorkoutService(workoutRepo, exerciseRepo), workoutRepo, exercise
}

func strPtr(s string) *string {
	return &s
}

func TestCreateWorkoutSnapshotsExercise(t *testing.T) {
	svc, repo, exercise := newWorkoutServiceFixture(t)
	userID := primitive.NewObjectID()

	workout, err := svc.Create(context.Background(), userID, exercise.ID, 3, 10, "2024-01-08", true, intPtr(60), nil, strPtr("solid session"))
	require.NoError(t, err)
	require.NotEqual(t, primitive.NilObjectID, workout.ID)

	assert.Equal(t, userID, workout.UserID)
	assert.Equal(t, exercise.ID, workout.Exercise.ID)
	assert.Equal(t, exercise.Name, workout.Exercise.Name)
	assert.Equal(t, exercise.Muscles, workout.Exercise.Muscles)
	assert.Equal(t, 3, workout.Sets)
	assert.Equal(t, 10, workout.Reps)
	require.NotNil(t, workout.Weight)
	assert.Equal(t, 60, *workout.Weight)
	assert.Nil(t, workout.Duration)
	assert.Equal(t, "solid session", workout.Comment)

	// The record is retrievable for its owner afterwards.
	stored, err := repo.GetByID(context.Background(), workout.ID, userID)
	require.NoError(t, err)
	assert.Equal(t, workout.Exercise, stored.Exercise)
}

func TestCreateWorkoutUnknownExercise(t *testing.T) {
	svc, _, _ := newWorkoutServiceFixture(t)

	_, err := svc.Create(context.Background(), primitive.NewObjectID(), primitive.NewObjectID(), 3, 10, "2024-01-08", true, nil, nil, nil)
	assert.ErrorIs(t, err, ErrExerciseNotFound)
}

func TestCreateWorkoutValidation(t *testing.T) {
	svc, _, exercise := newWorkoutServiceFixture(t)
	userID := primitive.NewObjectID()

	_, err := svc.Create(context.Background(), userID, exercise.ID, -1, 10, "2024-01-08", true, nil, nil, nil)
	assert.ErrorIs(t, err, ErrValidationFailed)

	_, err = svc.Create(context.Background(), userID, exercise.ID, 3, 10, "08.01.2024", true, nil, nil, nil)
	assert.ErrorIs(t, err, ErrValidationFailed)
}

func TestCreateWorkoutSanitizesComment(t *testing.T) {
	svc, _, exercise := newWorkoutServiceFixture(t)

	workout, err := svc.Create(
		context.Background(), primitive.NewObjectID(), exercise.ID,
		3, 10, "2024-01-08", true, nil, nil,
		strPtr("<!-- sneaky --><script>alert(1)</script>felt <b>strong</b>"),
	)
	require.NoError(t, err)
	assert.Equal(t, "felt strong", workout.Comment)

	// Absent comment normalizes to the empty string.
	workout, err = svc.Create(context.Background(), primitive.NewObjectID(), exercise.ID, 3, 10, "2024-01-08", true, nil, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "", workout.Comment)
}

func TestUpdateWorkoutPartialFields(t *testing.T) {
	svc, _, exercise := newWorkoutServiceFixture(t)
	userID := primitive.NewObjectID()

	created, err := svc.Create(context.Background(), userID, exercise.ID, 3, 10, "2024-01-08", false, intPtr(60), nil, strPtr("first try"))
	require.NoError(t, err)

	done := true
	updated, err := svc.Update(context.Background(), created.ID, userID, WorkoutUpdateInput{
		Sets: intPtr(5),
		Done: &done,
	})
	require.NoError(t, err)

	// Supplied fields overwrite, omitted ones stay untouched.
	assert.Equal(t, 5, updated.Sets)
	assert.True(t, updated.Done)
	assert.Equal(t, 10, updated.Reps)
	assert.Equal(t, "2024-01-08", updated.Date)
	assert.Equal(t, "first try", updated.Comment)
	require.NotNil(t, updated.Weight)
	assert.Equal(t, 60, *updated.Weight)
}

func TestUpdateWorkoutExplicitNullClearsWeight(t *testing.T) {
	svc, _, exercise := newWorkoutServiceFixture(t)
	userID := primitive.NewObjectID()

	created, err := svc.Create(context.Background(), userID, exercise.ID, 3, 10, "2024-01-08", true, intPtr(60), intPtr(300), nil)
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), created.ID, userID, WorkoutUpdateInput{
		ClearWeight: true,
	})
	require.NoError(t, err)
	assert.Nil(t, updated.Weight)
	require.NotNil(t, updated.Duration)
	assert.Equal(t, 300, *updated.Duration)
}

func TestUpdateWorkoutReplacesExerciseSnapshot(t *testing.T) {
	exerciseRepo := memory.NewMemoryExerciseRepository()
	workoutRepo := memory.NewMemoryWorkoutRepository()
	svc := NewWorkoutService(workoutRepo, exerciseRepo)

	bench := domain.Exercise{Name: "Bench Press", Muscles: []string{"chest"}}
	benchID, err := exerciseRepo.Insert(context.Background(), &bench)
	require.NoError(t, err)

	squat := domain.Exercise{Name: "Squat", Muscles: []string{"quads", "glutes"}}
	squatID, err := exerciseRepo.Insert(context.Background(), &squat)
	require.NoError(t, err)

	userID := primitive.NewObjectID()
	created, err := svc.Create(context.Background(), userID, benchID, 3, 10, "2024-01-08", true, nil, nil, nil)
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), created.ID, userID, WorkoutUpdateInput{
		ExerciseID: &squatID,
	})
	require.NoError(t, err)
	assert.Equal(t, squatID, updated.Exercise.ID)
	assert.Equal(t, "Squat", updated.Exercise.Name)
	assert.Equal(t, []string{"quads", "glutes"}, updated.Exercise.Muscles)

	// Unknown exercise on update is a typed failure.
	_, err = svc.Update(context.Background(), created.ID, userID, WorkoutUpdateInput{
		ExerciseID: &primitive.NilObjectID,
	})
	assert.ErrorIs(t, err, ErrExerciseNotFound)
}

func TestUpdateWorkoutOwnershipScoping(t *testing.T) {
	svc, repo, exercise := newWorkoutServiceFixture(t)
	owner := primitive.NewObjectID()
	intruder := primitive.NewObjectID()

	created, err := svc.Create(context.Background(), owner, exercise.ID, 3, 10, "2024-01-08", false, nil, nil, nil)
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), created.ID, intruder, WorkoutUpdateInput{
		Sets: intPtr(99),
	})
	assert.ErrorIs(t, err, ErrWorkoutNotFound)

	// The document was not mutated.
	stored, err := repo.GetByID(context.Background(), created.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, 3, stored.Sets)
}

func TestDeleteWorkout(t *testing.T) {
	svc, _, exercise := newWorkoutServiceFixture(t)
	owner := primitive.NewObjectID()
	intruder := primitive.NewObjectID()

	created, err := svc.Create(context.Background(), owner, exercise.ID, 3, 10, "2024-01-08", false, nil, nil, nil)
	require.NoError(t, err)

	// A foreign user cannot delete it; reported as plain false, no error.
	success, err := svc.Delete(context.Background(), created.ID, intruder)
	require.NoError(t, err)
	assert.False(t, success)

	success, err = svc.Delete(context.Background(), created.ID, owner)
	require.NoError(t, err)
	assert.True(t, success)

	// Gone now, deleting again reports false.
	success, err = svc.Delete(context.Background(), created.ID, owner)
	require.NoError(t, err)
	assert.False(t, success)
}
