package memory

import (
	"context"
	"sort"
	"sync"

	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// memoryExerciseRepository implements repository.ExerciseRepository in memory.
type memoryExerciseRepository struct {
	mu        sync.RWMutex
	exercises []domain.Exercise
}

// NewMemoryExerciseRepository creates an empty in-memory exercise catalog.
func NewMemoryExerciseRepository() repository.ExerciseRepository {
	return &memoryExerciseRepository{}
}

func (r *memoryExerciseRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, ex := range r.exercises {
		if ex.ID == id {
			found := ex
			return &found, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memoryExerciseRepository) FindByMuscles(ctx context.Context, muscles []string) ([]domain.Exercise, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []domain.Exercise
	for _, ex := range r.exercises {
		if matchesAllMuscles(ex.Muscles, muscles) {
			result = append(result, ex)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result, nil
}

func matchesAllMuscles(have, want []string) bool {
	for _, w := range want {
		found := false
		for _, h := range have {
			if h == w {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func (r *memoryExerciseRepository) Insert(ctx context.Context, exercise *domain.Exercise) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	exercise.ID = primitive.NewObjectID()
	r.exercises = append(r.exercises, *exercise)
	return exercise.ID, nil
}
