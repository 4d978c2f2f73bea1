package service

import (
	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/repository"
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ExerciseService exposes the exercise catalog and the per-user view of
// exercises actually performed.
type ExerciseService interface {
	CreateExercise(ctx context.Context, name string, description, muscles []string, image string) (*domain.Exercise, error)
	// GetExercises lists catalog exercises matching every given muscle,
	// sorted by name.
	GetExercises(ctx context.Context, muscles []string) ([]domain.Exercise, error)
	// GetUserExercises lists the distinct exercise snapshots embedded in the
	// user's workouts, optionally restricted to snapshots touching any of the
	// given muscles.
	GetUserExercises(ctx context.Context, userID primitive.ObjectID, muscles []string) ([]domain.Exercise, error)
}

type exerciseService struct {
	exerciseRepo repository.ExerciseRepository
	workoutRepo  repository.WorkoutRepository
}

// NewExerciseService creates a new instance of exerciseService.
func NewExerciseService(exerciseRepo repository.ExerciseRepository, workoutRepo repository.WorkoutRepository) ExerciseService {
	return &exerciseService{
		exerciseRepo: exerciseRepo,
		workoutRepo:  workoutRepo,
	}
}

// CreateExercise adds a catalog entry.
func (s *exerciseService) CreateExercise(ctx context.Context, name string, description, muscles []string, image string) (*domain.Exercise, error) {
	if name == "" {
		return nil, errors.New("exercise name is required")
	}

	exercise := &domain.Exercise{
		Name:        name,
		Description: description,
		Muscles:     muscles,
		Image:       image,
	}

	exerciseID, err := s.exerciseRepo.Insert(ctx, exercise)
	if err != nil {
		return nil, err
	}
	exercise.ID = exerciseID
	return exercise, nil
}

// GetExercises lists the catalog.
func (s *exerciseService) GetExercises(ctx context.Context, muscles []string) ([]domain.Exercise, error) {
	return s.exerciseRepo.FindByMuscles(ctx, muscles)
}

// GetUserExercises lists exercises the user has actually logged workouts for.
func (s *exerciseService) GetUserExercises(ctx context.Context, userID primitive.ObjectID, muscles []string) ([]domain.Exercise, error) {
	if userID == primitive.NilObjectID {
		return nil, errors.New("user ID cannot be nil")
	}
	return s.workoutRepo.DistinctExercises(ctx, userID, muscles)
}
