package service

import (
	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/repository"
	"alcyxob/workout-tracker/internal/sanitize"
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrExerciseNotFound = errors.New("exercise not found")
	// ErrWorkoutNotFound covers both a missing workout and one owned by a
	// different user; callers must not be able to tell the two apart.
	ErrWorkoutNotFound  = errors.New("workout not found or not owned")
	ErrValidationFailed = errors.New("workout validation failed")
)

// WorkoutUpdateInput carries a partial workout update. Nil fields were not
// supplied and stay untouched. ClearWeight/ClearDuration report an explicit
// null for the optional metrics, which clears them.
type WorkoutUpdateInput struct {
	ExerciseID    *primitive.ObjectID
	Sets          *int
	Reps          *int
	Weight        *int
	ClearWeight   bool
	Duration      *int
	ClearDuration bool
	Date          *string
	Done          *bool
	Comment       *string
}

// WorkoutService validates and applies workout mutations. Every operation is
// scoped to the requesting user; a mutation can never touch another user's
// documents.
type WorkoutService interface {
	// Create resolves the exercise, snapshots it by value into the new
	// workout, sanitizes the comment and inserts the record for userID.
	Create(ctx context.Context, userID, exerciseID primitive.ObjectID, sets, reps int, date string, done bool, weight, duration *int, comment *string) (*domain.Workout, error)
	// Update applies a partial update and returns the post-update record.
	// Returns ErrWorkoutNotFound when id+userID matched nothing.
	Update(ctx context.Context, workoutID, userID primitive.ObjectID, input WorkoutUpdateInput) (*domain.Workout, error)
	// Delete removes the workout matching id and owner. A zero-document match
	// is reported as success=false, not an error.
	Delete(ctx context.Context, workoutID, userID primitive.ObjectID) (bool, error)
}

type workoutService struct {
	workoutRepo  repository.WorkoutRepository
	exerciseRepo repository.ExerciseRepository
}

// NewWorkoutService creates a new instance of workoutService.
func NewWorkoutService(workoutRepo repository.WorkoutRepository, exerciseRepo repository.ExerciseRepository) WorkoutService {
	return &workoutService{
		workoutRepo:  workoutRepo,
		exerciseRepo: exerciseRepo,
	}
}

// resolveExercise loads the catalog exercise that a mutation references.
func (s *workoutService) resolveExercise(ctx context.Context, exerciseID primitive.ObjectID) (*domain.Exercise, error) {
	exercise, err := s.exerciseRepo.GetByID(ctx, exerciseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	return exercise, nil
}

func validDate(date string) bool {
	_, err := time.Parse(dateLayout, date)
	return err == nil
}

// Create handles the createWorkout mutation.
func (s *workoutService) Create(ctx context.Context, userID, exerciseID primitive.ObjectID, sets, reps int, date string, done bool, weight, duration *int, comment *string) (*domain.Workout, error) {
	if userID == primitive.NilObjectID {
		return nil, errors.New("user ID is required to create a workout")
	}
	if sets < 0 || reps < 0 {
		return nil, ErrValidationFailed
	}
	if !validDate(date) {
		return nil, ErrValidationFailed
	}

	exercise, err := s.resolveExercise(ctx, exerciseID)
	if err != nil {
		return nil, err
	}

	var cleanComment string
	if comment != nil {
		cleanComment = sanitize.Clean(*comment)
	}

	workout := &domain.Workout{
		UserID:   userID,
		Exercise: *exercise, // snapshot by value, never re-synced
		Sets:     sets,
		Reps:     reps,
		Weight:   weight,
		Duration: duration,
		Date:     date,
		Done:     done,
		Comment:  cleanComment,
	}

	workoutID, err := s.workoutRepo.Insert(ctx, workout)
	if err != nil {
		return nil, err
	}
	workout.ID = workoutID
	return workout, nil
}

// Update handles the updateWorkout mutation.
func (s *workoutService) Update(ctx context.Context, workoutID, userID primitive.ObjectID, input WorkoutUpdateInput) (*domain.Workout, error) {
	if workoutID == primitive.NilObjectID || userID == primitive.NilObjectID {
		return nil, errors.New("workout ID and user ID are required for update")
	}
	if input.Sets != nil && *input.Sets < 0 {
		return nil, ErrValidationFailed
	}
	if input.Reps != nil && *input.Reps < 0 {
		return nil, ErrValidationFailed
	}
	if input.Date != nil && !validDate(*input.Date) {
		return nil, ErrValidationFailed
	}

	update := repository.WorkoutUpdate{
		Sets:          input.Sets,
		Reps:          input.Reps,
		Weight:        input.Weight,
		ClearWeight:   input.ClearWeight,
		Duration:      input.Duration,
		ClearDuration: input.ClearDuration,
		Date:          input.Date,
		Done:          input.Done,
	}

	// A supplied exercise id replaces the stored snapshot wholesale with a
	// fresh resolution; it is never merged with the old one.
	if input.ExerciseID != nil {
		exercise, err := s.resolveExercise(ctx, *input.ExerciseID)
		if err != nil {
			return nil, err
		}
		update.Exercise = exercise
	}

	if input.Comment != nil {
		clean := sanitize.Clean(*input.Comment)
		update.Comment = &clean
	}

	err := s.workoutRepo.UpdateByID(ctx, workoutID, userID, update)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}

	return s.workoutRepo.GetByID(ctx, workoutID, userID)
}

// Delete handles the deleteWorkout mutation.
func (s *workoutService) Delete(ctx context.Context, workoutID, userID primitive.ObjectID) (bool, error) {
	err := s.workoutRepo.DeleteByID(ctx, workoutID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
