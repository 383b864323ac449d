package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/taskforge/task-manager/internal/core/domain"
	"github.com/taskforge/task-manager/internal/core/ports"
)

const taskCollection = "tasks"

type MongoTaskRepository struct {
	coll *mongo.Collection
}

func NewTaskRepository(db *mongo.Database) *MongoTaskRepository {
	return &MongoTaskRepository{coll: db.Collection(taskCollection)}
}

type mongoTask struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	UserID         primitive.ObjectID `bson:"user_id"`
	Title          string             `bson:"title"`
	Description    string             `bson:"description,omitempty"`
	Completed      bool               `bson:"completed"`
	Cost           float64            `bson:"cost"`
	HoursEstimated float64            `bson:"hours_estimated"`
	FinishedAt     *time.Time         `bson:"finished_at,omitempty"`
	Image          string             `bson:"image,omitempty"`
	CreatedAt      time.Time          `bson:"created_at"`
	UpdatedAt      time.Time          `bson:"updated_at"`
	Owner          []mongoUser        `bson:"owner,omitempty"`
}

func (mt *mongoTask) toDomain() *domain.Task {
	t := &domain.Task{
		ID:             mt.ID.Hex(),
		UserID:         mt.UserID.Hex(),
		Title:          mt.Title,
		Description:    mt.Description,
		Completed:      mt.Completed,
		Cost:           mt.Cost,
		HoursEstimated: mt.HoursEstimated,
		FinishedAt:     mt.FinishedAt,
		Image:          mt.Image,
		CreatedAt:      mt.CreatedAt,
		UpdatedAt:      mt.UpdatedAt,
	}
	if len(mt.Owner) > 0 {
		o := mt.Owner[0]
		t.Owner = &domain.TaskOwner{
			ID:    o.ID.Hex(),
			Name:  o.Name,
			Email: o.Email,
			Role:  o.Role,
		}
	}
	return t
}

func ensureTaskIndexes(ctx context.Context, coll *mongo.Collection) error {
	_, err := coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "completed", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("create task indexes: %w", err)
	}
	return nil
}

// ownerFilter builds the id+owner conjunction. A malformed task id can
// never match, so it maps to not-found. An empty ownerID skips the owner
// clause (admin audit path).
func ownerFilter(id, ownerID string) (bson.M, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrTaskNotFound
	}
	filter := bson.M{"_id": oid}
	if ownerID != "" {
		uid, err := primitive.ObjectIDFromHex(ownerID)
		if err != nil {
			return nil, domain.ErrTaskNotFound
		}
		filter["user_id"] = uid
	}
	return filter, nil
}

func (r *MongoTaskRepository) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	uid, err := primitive.ObjectIDFromHex(task.UserID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	ctx, cancel := opCtx(ctx)
	defer cancel()

	now := time.Now().UTC()
	doc := mongoTask{
		UserID:         uid,
		Title:          task.Title,
		Description:    task.Description,
		Completed:      task.Completed,
		Cost:           task.Cost,
		HoursEstimated: task.HoursEstimated,
		Image:          task.Image,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}

	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (r *MongoTaskRepository) FindByOwner(ctx context.Context, ownerID string) ([]*domain.Task, error) {
	uid, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	ctx, cancel := opCtx(ctx)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.coll.Find(ctx, bson.M{"user_id": uid}, opts)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer cur.Close(ctx)

	return decodeTasks(ctx, cur)
}

func (r *MongoTaskRepository) FindOne(ctx context.Context, id, ownerID string) (*domain.Task, error) {
	filter, err := ownerFilter(id, ownerID)
	if err != nil {
		return nil, err
	}

	ctx, cancel := opCtx(ctx)
	defer cancel()

	var mt mongoTask
	if err := r.coll.FindOne(ctx, filter).Decode(&mt); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("find task: %w", err)
	}
	return mt.toDomain(), nil
}

func (r *MongoTaskRepository) Update(ctx context.Context, id, ownerID string, fields ports.TaskUpdate) (*domain.Task, error) {
	filter, err := ownerFilter(id, ownerID)
	if err != nil {
		return nil, err
	}

	ctx, cancel := opCtx(ctx)
	defer cancel()

	set := bson.M{"updated_at": time.Now().UTC()}
	if fields.Title != nil {
		set["title"] = *fields.Title
	}
	if fields.Description != nil {
		set["description"] = *fields.Description
	}
	if fields.Completed != nil {
		set["completed"] = *fields.Completed
	}
	if fields.Cost != nil {
		set["cost"] = *fields.Cost
	}
	if fields.HoursEstimated != nil {
		set["hours_estimated"] = *fields.HoursEstimated
	}
	if fields.Image != nil {
		set["image"] = *fields.Image
	}
	if fields.FinishedAt != nil {
		set["finished_at"] = *fields.FinishedAt
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var mt mongoTask
	err = r.coll.FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, opts).Decode(&mt)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("update task: %w", err)
	}
	return mt.toDomain(), nil
}

func (r *MongoTaskRepository) Delete(ctx context.Context, id, ownerID string) (*domain.Task, error) {
	filter, err := ownerFilter(id, ownerID)
	if err != nil {
		return nil, err
	}

	ctx, cancel := opCtx(ctx)
	defer cancel()

	var mt mongoTask
	if err := r.coll.FindOneAndDelete(ctx, filter).Decode(&mt); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("delete task: %w", err)
	}
	return mt.toDomain(), nil
}

func (r *MongoTaskRepository) Stats(ctx context.Context, ownerID string) (*domain.TaskStats, error) {
	uid, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	ctx, cancel := opCtx(ctx)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"user_id": uid}}},
		{{Key: "$group", Value: bson.M{
			"_id":        nil,
			"totalTasks": bson.M{"$sum": 1},
			"completedTasks": bson.M{"$sum": bson.M{
				"$cond": bson.A{"$completed", 1, 0},
			}},
			"totalCost":  bson.M{"$sum": "$cost"},
			"totalHours": bson.M{"$sum": "$hours_estimated"},
			"avgCost":    bson.M{"$avg": "$cost"},
			"avgHours":   bson.M{"$avg": "$hours_estimated"},
		}}},
	}

	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate stats: %w", err)
	}
	defer cur.Close(ctx)

	var rows []struct {
		TotalTasks     int64   `bson:"totalTasks"`
		CompletedTasks int64   `bson:"completedTasks"`
		TotalCost      float64 `bson:"totalCost"`
		TotalHours     float64 `bson:"totalHours"`
		AvgCost        float64 `bson:"avgCost"`
		AvgHours       float64 `bson:"avgHours"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode stats: %w", err)
	}
	if len(rows) == 0 {
		return &domain.TaskStats{}, nil
	}

	row := rows[0]
	return &domain.TaskStats{
		TotalTasks:     row.TotalTasks,
		CompletedTasks: row.CompletedTasks,
		PendingTasks:   row.TotalTasks - row.CompletedTasks,
		TotalCost:      row.TotalCost,
		TotalHours:     row.TotalHours,
		AverageCost:    row.AvgCost,
		AverageHours:   row.AvgHours,
	}, nil
}

func (r *MongoTaskRepository) FindAllWithOwners(ctx context.Context) ([]*domain.Task, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$lookup", Value: bson.M{
			"from":         userCollection,
			"localField":   "user_id",
			"foreignField": "_id",
			"as":           "owner",
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}}}},
	}

	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("list all tasks: %w", err)
	}
	defer cur.Close(ctx)

	return decodeTasks(ctx, cur)
}

func (r *MongoTaskRepository) Count(ctx context.Context, completed *bool) (int64, error) {
	ctx, cancel := opCtx(ctx)
	defer cancel()

	filter := bson.M{}
	if completed != nil {
		filter["completed"] = *completed
	}
	n, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("count tasks: %w", err)
	}
	return n, nil
}

func decodeTasks(ctx context.Context, cur *mongo.Cursor) ([]*domain.Task, error) {
	tasks := make([]*domain.Task, 0)
	for cur.Next(ctx) {
		var mt mongoTask
		if err := cur.Decode(&mt); err != nil {
			return nil, fmt.Errorf("decode task: %w", err)
		}
		tasks = append(tasks, mt.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate tasks: %w", err)
	}
	return tasks, nil
}
