package memory

import (
	"bytes"
	"context"
	"sort"
	"sync"

	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// memoryWorkoutRepository implements repository.WorkoutRepository with an
// in-memory slice. It mirrors the semantics of the MongoDB implementation
// (filter composition, ownership scoping, aggregate ordering) and backs the
// service-layer tests.
type memoryWorkoutRepository struct {
	mu       sync.RWMutex
	workouts []domain.Workout
}

// NewMemoryWorkoutRepository creates an empty in-memory workout repository.
func NewMemoryWorkoutRepository() repository.WorkoutRepository {
	return &memoryWorkoutRepository{}
}

// matchesFilter applies the same composition rules as the mongo filter
// builder: exact date wins over a range, both bounds combine into one
// inclusive range, a single bound is open-ended. Date strings are YYYY-MM-DD,
// so plain string comparison orders them correctly.
func matchesFilter(w domain.Workout, f repository.WorkoutFilter) bool {
	if w.UserID != f.UserID {
		return false
	}
	if f.ExerciseID != nil && w.Exercise.ID != *f.ExerciseID {
		return false
	}
	switch {
	case f.Date != "":
		if w.Date != f.Date {
			return false
		}
	case f.DateGte != "" && f.DateLte != "":
		if w.Date < f.DateGte || w.Date > f.DateLte {
			return false
		}
	case f.DateGte != "":
		if w.Date < f.DateGte {
			return false
		}
	case f.DateLte != "":
		if w.Date > f.DateLte {
			return false
		}
	}
	if f.Done != nil && w.Done != *f.Done {
		return false
	}
	return true
}

func (r *memoryWorkoutRepository) filtered(f repository.WorkoutFilter) []domain.Workout {
	var result []domain.Workout
	for _, w := range r.workouts {
		if matchesFilter(w, f) {
			result = append(result, w)
		}
	}
	return result
}

// Find returns matching workouts in insertion order.
func (r *memoryWorkoutRepository) Find(ctx context.Context, filter repository.WorkoutFilter) ([]domain.Workout, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.filtered(filter), nil
}

// FindPage returns matching workouts sorted by date descending, optionally
// sliced to one page.
func (r *memoryWorkoutRepository) FindPage(ctx context.Context, filter repository.WorkoutFilter, pageSize, page int) ([]domain.Workout, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := r.filtered(filter)
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Date > result[j].Date
	})

	if page < 1 {
		return result, nil
	}
	skip := (page - 1) * pageSize
	if skip >= len(result) {
		return []domain.Workout{}, nil
	}
	end := skip + pageSize
	if end > len(result) {
		end = len(result)
	}
	return result[skip:end], nil
}

func (r *memoryWorkoutRepository) Count(ctx context.Context, filter repository.WorkoutFilter) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.filtered(filter))), nil
}

func (r *memoryWorkoutRepository) GetByID(ctx context.Context, id, userID primitive.ObjectID) (*domain.Workout, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, w := range r.workouts {
		if w.ID == id && w.UserID == userID {
			found := w
			return &found, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memoryWorkoutRepository) Insert(ctx context.Context, workout *domain.Workout) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	workout.ID = primitive.NewObjectID()
	r.workouts = append(r.workouts, *workout)
	return workout.ID, nil
}

func applyUpdate(w *domain.Workout, update repository.WorkoutUpdate) {
	if update.Exercise != nil {
		w.Exercise = *update.Exercise
	}
	if update.Sets != nil {
		w.Sets = *update.Sets
	}
	if update.Reps != nil {
		w.Reps = *update.Reps
	}
	if update.ClearWeight {
		w.Weight = nil
	} else if update.Weight != nil {
		w.Weight = update.Weight
	}
	if update.ClearDuration {
		w.Duration = nil
	} else if update.Duration != nil {
		w.Duration = update.Duration
	}
	if update.Date != nil {
		w.Date = *update.Date
	}
	if update.Done != nil {
		w.Done = *update.Done
	}
	if update.Comment != nil {
		w.Comment = *update.Comment
	}
}

func (r *memoryWorkoutRepository) UpdateByID(ctx context.Context, id, userID primitive.ObjectID, update repository.WorkoutUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.workouts {
		if r.workouts[i].ID == id && r.workouts[i].UserID == userID {
			applyUpdate(&r.workouts[i], update)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *memoryWorkoutRepository) DeleteByID(ctx context.Context, id, userID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.workouts {
		if r.workouts[i].ID == id && r.workouts[i].UserID == userID {
			r.workouts = append(r.workouts[:i], r.workouts[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

// metricGroup accumulates one exercise identity during the fold.
type metricGroup struct {
	exercise domain.Exercise
	value    int
	seen     bool
}

// foldByExercise is the single grouping fold shared by all three metrics.
// Groups where no member contributed (all-null max metrics) are dropped.
func foldByExercise(workouts []domain.Workout, metric repository.Metric) []domain.ExerciseMetric {
	groups := make(map[primitive.ObjectID]*metricGroup)

	for _, w := range workouts {
		key := w.Exercise.ID
		g, ok := groups[key]
		if !ok {
			g = &metricGroup{exercise: w.Exercise}
			groups[key] = g
		}

		switch metric {
		case repository.MetricTotalReps:
			g.value += w.TotalReps()
			g.seen = true
		case repository.MetricMaxWeight:
			if w.Weight != nil && (!g.seen || *w.Weight > g.value) {
				g.value = *w.Weight
			}
			if w.Weight != nil {
				g.seen = true
			}
		case repository.MetricMaxDuration:
			if w.Duration != nil && (!g.seen || *w.Duration > g.value) {
				g.value = *w.Duration
			}
			if w.Duration != nil {
				g.seen = true
			}
		}
	}

	results := make([]domain.ExerciseMetric, 0, len(groups))
	for _, g := range groups {
		if !g.seen {
			continue
		}
		results = append(results, domain.ExerciseMetric{Exercise: g.exercise, Value: g.value})
	}

	// Metric value descending, exercise id ascending on ties.
	sort.Slice(results, func(i, j int) bool {
		if results[i].Value != results[j].Value {
			return results[i].Value > results[j].Value
		}
		a, b := results[i].Exercise.ID, results[j].Exercise.ID
		return bytes.Compare(a[:], b[:]) < 0
	})
	return results
}

func (r *memoryWorkoutRepository) Aggregate(ctx context.Context, spec repository.AggregateSpec) ([]domain.ExerciseMetric, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return foldByExercise(r.filtered(spec.Filter), spec.Metric), nil
}

func (r *memoryWorkoutRepository) DistinctExercises(ctx context.Context, userID primitive.ObjectID, muscles []string) ([]domain.Exercise, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[primitive.ObjectID]bool)
	exercises := []domain.Exercise{}
	for _, w := range r.workouts {
		if w.UserID != userID || seen[w.Exercise.ID] {
			continue
		}
		if len(muscles) > 0 && !touchesAny(w.Exercise.Muscles, muscles) {
			continue
		}
		seen[w.Exercise.ID] = true
		exercises = append(exercises, w.Exercise)
	}
	return exercises, nil
}

func touchesAny(have, want []string) bool {
	for _, h := range have {
		for _, w := range want {
			if h == w {
				return true
			}
		}
	}
	return false
}
