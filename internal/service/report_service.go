package service

import (
	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/repository"
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// workoutsPageSize is the fixed page size for the workouts listing.
const workoutsPageSize = 12

// ReportService computes the per-user read models: the paginated workout
// listing, the "left to do" listings and the per-exercise aggregates.
type ReportService interface {
	// GetWorkouts returns the user's workouts sorted by date descending,
	// optionally date-bounded and restricted to one exercise. When page is
	// nil the full result is returned; NumPages reflects the fixed page size
	// either way. A page outside [1, NumPages] yields an empty slice.
	GetWorkouts(ctx context.Context, userID primitive.ObjectID, dateGte, dateLte string, exerciseID *primitive.ObjectID, page *int) (*domain.WorkoutPage, error)
	// WorkoutsLeftToday lists the user's unfinished workouts dated today,
	// in storage order.
	WorkoutsLeftToday(ctx context.Context, userID primitive.ObjectID) ([]domain.Workout, error)
	// WorkoutsLeftWeek lists the user's unfinished workouts dated within the
	// current Monday-to-Sunday week, in storage order.
	WorkoutsLeftWeek(ctx context.Context, userID primitive.ObjectID) ([]domain.Workout, error)
	TotalReps(ctx context.Context, userID primitive.ObjectID, exerciseID *primitive.ObjectID, timeRange string) ([]domain.ExerciseMetric, error)
	MaxWeight(ctx context.Context, userID primitive.ObjectID, exerciseID *primitive.ObjectID, timeRange string) ([]domain.ExerciseMetric, error)
	MaxDuration(ctx context.Context, userID primitive.ObjectID, exerciseID *primitive.ObjectID, timeRange string) ([]domain.ExerciseMetric, error)
}

type reportService struct {
	workoutRepo repository.WorkoutRepository
	now         func() time.Time
}

// NewReportService creates a new report service. now may be nil, in which
// case the wall clock is used; tests inject a fixed clock.
func NewReportService(workoutRepo repository.WorkoutRepository, now func() time.Time) ReportService {
	if now == nil {
		now = time.Now
	}
	return &reportService{
		workoutRepo: workoutRepo,
		now:         now,
	}
}

// GetWorkouts implements the paginated listing.
func (s *reportService) GetWorkouts(ctx context.Context, userID primitive.ObjectID, dateGte, dateLte string, exerciseID *primitive.ObjectID, page *int) (*domain.WorkoutPage, error) {
	filter := repository.WorkoutFilter{
		UserID:     userID,
		ExerciseID: exerciseID,
		DateGte:    dateGte,
		DateLte:    dateLte,
	}

	total, err := s.workoutRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	numPages := int(total) / workoutsPageSize
	if int(total)%workoutsPageSize != 0 {
		numPages++
	}

	var workouts []domain.Workout
	switch {
	case page == nil:
		workouts, err = s.workoutRepo.FindPage(ctx, filter, 0, 0)
	case *page < 1 || *page > numPages:
		workouts = []domain.Workout{}
	default:
		workouts, err = s.workoutRepo.FindPage(ctx, filter, workoutsPageSize, *page)
	}
	if err != nil {
		return nil, err
	}
	if workouts == nil {
		workouts = []domain.Workout{}
	}

	return &domain.WorkoutPage{Workouts: workouts, NumPages: numPages}, nil
}

// WorkoutsLeftToday lists unfinished workouts dated today.
func (s *reportService) WorkoutsLeftToday(ctx context.Context, userID primitive.ObjectID) ([]domain.Workout, error) {
	notDone := false
	return s.workoutRepo.Find(ctx, repository.WorkoutFilter{
		UserID: userID,
		Date:   s.now().Format(dateLayout),
		Done:   &notDone,
	})
}

// WorkoutsLeftWeek lists unfinished workouts within the current week. Unlike
// the aggregate windows the upper bound is Sunday, not today: the week's
// remaining schedule includes days that have not happened yet.
func (s *reportService) WorkoutsLeftWeek(ctx context.Context, userID primitive.ObjectID) ([]domain.Workout, error) {
	notDone := false
	now := s.now()
	return s.workoutRepo.Find(ctx, repository.WorkoutFilter{
		UserID:  userID,
		DateGte: startOfWeek(now).Format(dateLayout),
		DateLte: endOfWeek(now).Format(dateLayout),
		Done:    &notDone,
	})
}

func (s *reportService) TotalReps(ctx context.Context, userID primitive.ObjectID, exerciseID *primitive.ObjectID, timeRange string) ([]domain.ExerciseMetric, error) {
	return s.aggregate(ctx, userID, exerciseID, timeRange, repository.MetricTotalReps)
}

func (s *reportService) MaxWeight(ctx context.Context, userID primitive.ObjectID, exerciseID *primitive.ObjectID, timeRange string) ([]domain.ExerciseMetric, error) {
	return s.aggregate(ctx, userID, exerciseID, timeRange, repository.MetricMaxWeight)
}

func (s *reportService) MaxDuration(ctx context.Context, userID primitive.ObjectID, exerciseID *primitive.ObjectID, timeRange string) ([]domain.ExerciseMetric, error) {
	return s.aggregate(ctx, userID, exerciseID, timeRange, repository.MetricMaxDuration)
}

// aggregate runs one grouping fold over the user's done workouts, window and
// exercise scope applied. Aggregates only ever cover completed workouts.
func (s *reportService) aggregate(ctx context.Context, userID primitive.ObjectID, exerciseID *primitive.ObjectID, timeRange string, metric repository.Metric) ([]domain.ExerciseMetric, error) {
	done := true
	filter := repository.WorkoutFilter{
		UserID:     userID,
		ExerciseID: exerciseID,
		Done:       &done,
	}

	var window string
	if start, end, ok := resolveTimeWindow(timeRange, s.now()); ok {
		filter.DateGte = start
		filter.DateLte = end
		window = timeRange
	}

	results, err := s.workoutRepo.Aggregate(ctx, repository.AggregateSpec{Filter: filter, Metric: metric})
	if err != nil {
		return nil, err
	}
	for i := range results {
		results[i].TimeRange = window
	}
	return results, nil
}
