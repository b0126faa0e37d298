package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"hrms-portal/models"
)

// AttendanceRepository is the shift ledger: one AttendanceDay per
// (user, date). Writes are guarded by the day's version so that concurrent
// read-modify-write cycles cannot both succeed from the same state.
type AttendanceRepository interface {
	FindByUserAndDate(ctx context.Context, userID, date string) (*models.AttendanceDay, error)
	// Create inserts a new day and returns ErrDuplicate if one already exists
	// for the same user and date.
	Create(ctx context.Context, day *models.AttendanceDay) error
	// UpdateIfVersion persists day only if the stored version still equals
	// expectedVersion. On success day.Version is advanced.
	UpdateIfVersion(ctx context.Context, day *models.AttendanceDay, expectedVersion int64) (bool, error)
	// FindByUser returns days in [from, to] (inclusive, empty = unbounded),
	// newest first.
	FindByUser(ctx context.Context, userID, from, to string) ([]models.AttendanceDay, error)
}

type attendanceRepository struct {
	attendanceCollection *mongo.Collection
}

func NewAttendanceRepository(collection *mongo.Collection) AttendanceRepository {
	return &attendanceRepository{attendanceCollection: collection}
}

func (r *attendanceRepository) FindByUserAndDate(ctx context.Context, userID, date string) (*models.AttendanceDay, error) {
	var day models.AttendanceDay
	filter := bson.M{"user_id": userID, "date": date}
	err := r.attendanceCollection.FindOne(ctx, filter).Decode(&day)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find attendance by user and date: %w", err)
	}
	return &day, nil
}

func (r *attendanceRepository) Create(ctx context.Context, day *models.AttendanceDay) error {
	if _, err := r.attendanceCollection.InsertOne(ctx, day); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to create attendance day: %w", err)
	}
	return nil
}

func (r *attendanceRepository) UpdateIfVersion(ctx context.Context, day *models.AttendanceDay, expectedVersion int64) (bool, error) {
	filter := bson.M{"_id": day.ID, "version": expectedVersion}
	update := bson.M{
		"$set": bson.M{
			"shifts":        day.Shifts,
			"working_hours": day.WorkingHours,
			"status":        day.Status,
			"updated_at":    day.UpdatedAt,
			"version":       expectedVersion + 1,
		},
	}

	res, err := r.attendanceCollection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to update attendance day: %w", err)
	}
	if res.MatchedCount == 0 {
		return false, nil
	}
	day.Version = expectedVersion + 1
	return true, nil
}

func (r *attendanceRepository) FindByUser(ctx context.Context, userID, from, to string) ([]models.AttendanceDay, error) {
	filter := bson.M{"user_id": userID}
	dateRange := bson.M{}
	if from != "" {
		dateRange["$gte"] = from
	}
	if to != "" {
		dateRange["$lte"] = to
	}
	if len(dateRange) > 0 {
		filter["date"] = dateRange
	}

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := r.attendanceCollection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find attendance history: %w", err)
	}
	defer cursor.Close(ctx)

	var results []models.AttendanceDay
	if err = cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("failed to decode attendance history: %w", err)
	}

	if len(results) == 0 {
		return []models.AttendanceDay{}, nil
	}
	return results, nil
}
