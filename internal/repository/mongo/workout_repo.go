package mongo

import (
	"alcyxob/workout-tracker/internal/domain"
	"alcyxob/workout-tracker/internal/repository"
	"context"
	"errors"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const workoutCollectionName = "workouts"

// mongoWorkoutRepository implements repository.WorkoutRepository on a single
// "workouts" collection. Every document carries a mandatory user_id field and
// every filter produced here includes it, so the store enforces ownership
// scoping uniformly.
type mongoWorkoutRepository struct {
	collection *mongo.Collection
}

// NewMongoWorkoutRepository creates a new Workout repository backed by MongoDB.
func NewMongoWorkoutRepository(db *mongo.Database) repository.WorkoutRepository {
	return &mongoWorkoutRepository{
		collection: db.Collection(workoutCollectionName),
	}
}

// buildWorkoutFilter translates a repository.WorkoutFilter into a bson filter
// document. Date bounds combine into a single range predicate when both are
// given, an open-ended range when only one is.
func buildWorkoutFilter(f repository.WorkoutFilter) bson.M {
	filter := bson.M{"user_id": f.UserID}

	if f.ExerciseID != nil {
		filter["exercise._id"] = *f.ExerciseID
	}

	switch {
	case f.Date != "":
		filter["date"] = f.Date
	case f.DateGte != "" && f.DateLte != "":
		filter["date"] = bson.M{"$gte": f.DateGte, "$lte": f.DateLte}
	case f.DateGte != "":
		filter["date"] = bson.M{"$gte": f.DateGte}
	case f.DateLte != "":
		filter["date"] = bson.M{"$lte": f.DateLte}
	}

	if f.Done != nil {
		filter["done"] = *f.Done
	}

	return filter
}

// buildAggregatePipeline builds the $match/$group/$sort pipeline for one
// grouping fold. All three metrics share the same shape; only the match on
// the metric field and the accumulator differ. The $sort stage fixes the
// ordering: metric value descending, exercise id ascending on ties.
func buildAggregatePipeline(spec repository.AggregateSpec) mongo.Pipeline {
	match := buildWorkoutFilter(spec.Filter)

	var value bson.M
	switch spec.Metric {
	case repository.MetricTotalReps:
		value = bson.M{"$sum": bson.M{"$multiply": bson.A{"$sets", "$reps"}}}
	case repository.MetricMaxWeight:
		// Exclude null/absent values so an all-null group never surfaces.
		match["weight"] = bson.M{"$ne": nil}
		value = bson.M{"$max": "$weight"}
	case repository.MetricMaxDuration:
		match["duration"] = bson.M{"$ne": nil}
		value = bson.M{"$max": "$duration"}
	}

	return mongo.Pipeline{
		bson.D{{Key: "$match", Value: match}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":      "$exercise._id",
			"value":    value,
			"exercise": bson.M{"$first": "$exercise"},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{
			{Key: "value", Value: -1},
			{Key: "_id", Value: 1},
		}}},
	}
}

// Find returns matching workouts in storage order.
func (r *mongoWorkoutRepository) Find(ctx context.Context, filter repository.WorkoutFilter) ([]domain.Workout, error) {
	cursor, err := r.collection.Find(ctx, buildWorkoutFilter(filter))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var workouts []domain.Workout
	if err = cursor.All(ctx, &workouts); err != nil {
		return nil, err
	}
	return workouts, nil
}

// FindPage returns matching workouts sorted by date descending, optionally
// sliced to one page.
func (r *mongoWorkoutRepository) FindPage(ctx context.Context, filter repository.WorkoutFilter, pageSize, page int) ([]domain.Workout, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	if page >= 1 {
		findOptions.SetSkip(int64((page - 1) * pageSize)).SetLimit(int64(pageSize))
	}

	cursor, err := r.collection.Find(ctx, buildWorkoutFilter(filter), findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var workouts []domain.Workout
	if err = cursor.All(ctx, &workouts); err != nil {
		return nil, err
	}
	return workouts, nil
}

// Count returns the number of workouts matching the filter.
func (r *mongoWorkoutRepository) Count(ctx context.Context, filter repository.WorkoutFilter) (int64, error) {
	return r.collection.CountDocuments(ctx, buildWorkoutFilter(filter))
}

// GetByID retrieves a single workout matching both id and owner.
func (r *mongoWorkoutRepository) GetByID(ctx context.Context, id, userID primitive.ObjectID) (*domain.Workout, error) {
	var workout domain.Workout
	filter := bson.M{"_id": id, "user_id": userID}

	err := r.collection.FindOne(ctx, filter).Decode(&workout)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &workout, nil
}

// Insert stores a new workout and returns its generated id.
func (r *mongoWorkoutRepository) Insert(ctx context.Context, workout *domain.Workout) (primitive.ObjectID, error) {
	if workout.UserID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("workout requires a user id")
	}

	workout.ID = primitive.NewObjectID()

	result, err := r.collection.InsertOne(ctx, workout)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted workout ID")
	}
	return insertedID, nil
}

// buildUpdateDocument translates a partial update into $set/$unset documents.
func buildUpdateDocument(update repository.WorkoutUpdate) bson.M {
	set := bson.M{}
	unset := bson.M{}

	if update.Exercise != nil {
		set["exercise"] = *update.Exercise
	}
	if update.Sets != nil {
		set["sets"] = *update.Sets
	}
	if update.Reps != nil {
		set["reps"] = *update.Reps
	}
	if update.ClearWeight {
		unset["weight"] = ""
	} else if update.Weight != nil {
		set["weight"] = *update.Weight
	}
	if update.ClearDuration {
		unset["duration"] = ""
	} else if update.Duration != nil {
		set["duration"] = *update.Duration
	}
	if update.Date != nil {
		set["date"] = *update.Date
	}
	if update.Done != nil {
		set["done"] = *update.Done
	}
	if update.Comment != nil {
		set["comment"] = *update.Comment
	}

	doc := bson.M{}
	if len(set) > 0 {
		doc["$set"] = set
	}
	if len(unset) > 0 {
		doc["$unset"] = unset
	}
	return doc
}

// UpdateByID applies a partial update to the workout matching both id and
// owner. Matching zero documents is reported as ErrNotFound, which covers the
// not-found and not-owned cases without distinguishing them.
func (r *mongoWorkoutRepository) UpdateByID(ctx context.Context, id, userID primitive.ObjectID, update repository.WorkoutUpdate) error {
	filter := bson.M{"_id": id, "user_id": userID}

	doc := buildUpdateDocument(update)
	if len(doc) == 0 {
		// Nothing to change; still verify the target exists and is owned.
		_, err := r.GetByID(ctx, id, userID)
		return err
	}

	result, err := r.collection.UpdateOne(ctx, filter, doc)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// DeleteByID removes the workout matching both id and owner.
func (r *mongoWorkoutRepository) DeleteByID(ctx context.Context, id, userID primitive.ObjectID) error {
	filter := bson.M{"_id": id, "user_id": userID}

	result, err := r.collection.DeleteOne(ctx, filter)
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Aggregate runs one grouping fold as a server-side aggregation pipeline.
func (r *mongoWorkoutRepository) Aggregate(ctx context.Context, spec repository.AggregateSpec) ([]domain.ExerciseMetric, error) {
	cursor, err := r.collection.Aggregate(ctx, buildAggregatePipeline(spec))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		ID       primitive.ObjectID `bson:"_id"`
		Value    int                `bson:"value"`
		Exercise domain.Exercise    `bson:"exercise"`
	}
	if err = cursor.All(ctx, &rows); err != nil {
		return nil, err
	}

	results := make([]domain.ExerciseMetric, 0, len(rows))
	for _, row := range rows {
		results = append(results, domain.ExerciseMetric{
			Exercise: row.Exercise,
			Value:    row.Value,
		})
	}
	return results, nil
}

// DistinctExercises returns the distinct exercise snapshots embedded in the
// user's workouts.
func (r *mongoWorkoutRepository) DistinctExercises(ctx context.Context, userID primitive.ObjectID, muscles []string) ([]domain.Exercise, error) {
	filter := bson.M{"user_id": userID}
	if len(muscles) > 0 {
		filter["exercise.muscles"] = bson.M{"$in": muscles}
	}

	values, err := r.collection.Distinct(ctx, "exercise", filter)
	if err != nil {
		return nil, err
	}

	exercises := make([]domain.Exercise, 0, len(values))
	for _, value := range values {
		doc, ok := value.(bson.D)
		if !ok {
			continue
		}
		raw, err := bson.Marshal(doc)
		if err != nil {
			return nil, err
		}
		var exercise domain.Exercise
		if err := bson.Unmarshal(raw, &exercise); err != nil {
			return nil, err
		}
		exercises = append(exercises, exercise)
	}
	return exercises, nil
}

// EnsureWorkoutIndexes creates necessary indexes. Call during startup.
func EnsureWorkoutIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			// Every query is user-scoped and most are date-windowed.
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "date", Value: -1}},
			Options: options.Index(),
		},
		{
			// Grouping and per-exercise filters key on the embedded snapshot id.
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "exercise._id", Value: 1}},
			Options: options.Index(),
		},
	}
	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		logrus.Warnf("failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}
