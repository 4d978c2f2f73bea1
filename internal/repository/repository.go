package repository

import (
	"alcyxob/workout-tracker/internal/domain"
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrNotFound reports a document that does not exist or is not owned by the
// requesting user.
var ErrNotFound = RepositoryError("not found")

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// Metric selects the per-exercise fold computed by Aggregate.
type Metric string

const (
	MetricTotalReps   Metric = "total_reps"   // sum of sets*reps
	MetricMaxWeight   Metric = "max_weight"   // max of non-null weight
	MetricMaxDuration Metric = "max_duration" // max of non-null duration
)

// WorkoutFilter describes a workout query. UserID is mandatory: every
// per-user read and every mutation is scoped to the owning user. Date bounds
// are inclusive "YYYY-MM-DD" strings; an empty bound leaves that side open.
type WorkoutFilter struct {
	UserID     primitive.ObjectID
	ExerciseID *primitive.ObjectID // match the embedded snapshot's id
	DateGte    string
	DateLte    string
	Date       string // exact-date match, used by the "left today" query
	Done       *bool
}

// WorkoutUpdate carries a partial update. Nil fields are left untouched.
// Exercise, when set, replaces the stored snapshot wholesale. ClearWeight and
// ClearDuration distinguish "set to null" from "not supplied".
type WorkoutUpdate struct {
	Exercise      *domain.Exercise
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

// AggregateSpec describes one grouping fold: filter the user's workouts,
// group by the embedded exercise id and fold Metric per group.
type AggregateSpec struct {
	Filter WorkoutFilter
	Metric Metric
}

// WorkoutRepository defines the interface for interacting with workout data.
type WorkoutRepository interface {
	// Find returns matching workouts in storage order.
	Find(ctx context.Context, filter WorkoutFilter) ([]domain.Workout, error)
	// FindPage returns matching workouts sorted by date descending. When
	// page >= 1 the result is the page-th slice of pageSize records;
	// otherwise the full sorted result is returned.
	FindPage(ctx context.Context, filter WorkoutFilter, pageSize, page int) ([]domain.Workout, error)
	Count(ctx context.Context, filter WorkoutFilter) (int64, error)
	GetByID(ctx context.Context, id, userID primitive.ObjectID) (*domain.Workout, error)
	Insert(ctx context.Context, workout *domain.Workout) (primitive.ObjectID, error)
	// UpdateByID applies a partial update to the workout matching both id and
	// owner. Returns ErrNotFound when no document matched (absent or owned by
	// someone else; the two are deliberately indistinguishable).
	UpdateByID(ctx context.Context, id, userID primitive.ObjectID, update WorkoutUpdate) error
	// DeleteByID removes the workout matching both id and owner. Returns
	// ErrNotFound when no document matched.
	DeleteByID(ctx context.Context, id, userID primitive.ObjectID) error
	// Aggregate runs the grouping fold described by spec and returns one
	// result per exercise identity, sorted by metric value descending with
	// exercise id ascending as the tie-break. Groups whose members all have a
	// null metric are omitted.
	Aggregate(ctx context.Context, spec AggregateSpec) ([]domain.ExerciseMetric, error)
	// DistinctExercises returns the distinct exercise snapshots embedded in
	// the user's workouts, optionally restricted to snapshots targeting any
	// of the given muscles.
	DistinctExercises(ctx context.Context, userID primitive.ObjectID, muscles []string) ([]domain.Exercise, error)
}

// ExerciseRepository defines the interface for interacting with the exercise catalog.
type ExerciseRepository interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error)
	// FindByMuscles returns catalog exercises matching every given muscle,
	// sorted by name ascending. An empty muscles list matches everything.
	FindByMuscles(ctx context.Context, muscles []string) ([]domain.Exercise, error)
	Insert(ctx context.Context, exercise *domain.Exercise) (primitive.ObjectID, error)
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}
