package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"hrms-portal/models"
)

// OTPRepository keeps at most one challenge per phone number. Update and
// Delete are scoped to a challenge id so they never touch a challenge that
// superseded the one the caller loaded.
type OTPRepository interface {
	// Replace atomically stores ch as the only challenge for its phone number.
	Replace(ctx context.Context, ch *models.OTPChallenge) error
	FindByPhone(ctx context.Context, phone string) (*models.OTPChallenge, error)
	UpdateIfVersion(ctx context.Context, ch *models.OTPChallenge, expectedVersion int64) (bool, error)
	Delete(ctx context.Context, phone, challengeID string) error
	// DeleteExpired removes every challenge whose expiry is before now.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type otpRepository struct {
	otpCollection *mongo.Collection
}

func NewOTPRepository(collection *mongo.Collection) OTPRepository {
	return &otpRepository{otpCollection: collection}
}

func (r *otpRepository) Replace(ctx context.Context, ch *models.OTPChallenge) error {
	opts := options.Replace().SetUpsert(true)
	if _, err := r.otpCollection.ReplaceOne(ctx, bson.M{"_id": ch.PhoneNumber}, ch, opts); err != nil {
		return fmt.Errorf("failed to store otp challenge: %w", err)
	}
	return nil
}

func (r *otpRepository) FindByPhone(ctx context.Context, phone string) (*models.OTPChallenge, error) {
	var ch models.OTPChallenge
	err := r.otpCollection.FindOne(ctx, bson.M{"_id": phone}).Decode(&ch)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find otp challenge: %w", err)
	}
	return &ch, nil
}

func (r *otpRepository) UpdateIfVersion(ctx context.Context, ch *models.OTPChallenge, expectedVersion int64) (bool, error) {
	filter := bson.M{
		"_id":          ch.PhoneNumber,
		"challenge_id": ch.ChallengeID,
		"version":      expectedVersion,
	}
	set := bson.M{
		"attempts":    ch.Attempts,
		"is_verified": ch.IsVerified,
		"version":     expectedVersion + 1,
	}
	if ch.VerifiedAt != nil {
		set["verified_at"] = ch.VerifiedAt
	}

	res, err := r.otpCollection.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return false, fmt.Errorf("failed to update otp challenge: %w", err)
	}
	if res.MatchedCount == 0 {
		return false, nil
	}
	ch.Version = expectedVersion + 1
	return true, nil
}

func (r *otpRepository) Delete(ctx context.Context, phone, challengeID string) error {
	filter := bson.M{"_id": phone, "challenge_id": challengeID}
	if _, err := r.otpCollection.DeleteOne(ctx, filter); err != nil {
		return fmt.Errorf("failed to delete otp challenge: %w", err)
	}
	return nil
}

func (r *otpRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.otpCollection.DeleteMany(ctx, bson.M{"expires_at": bson.M{"$lt": now}})
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired otp challenges: %w", err)
	}
	return res.DeletedCount, nil
}
