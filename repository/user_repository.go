package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"hrms-portal/models"
)

var ErrUserNotFound = errors.New("user not found")

// UserRepository is the narrow slice of the host application's user store
// used after a successful phone verification.
type UserRepository interface {
	UpdateVerifiedPhone(ctx context.Context, userID, phone string) (*models.User, error)
	// EnsureUser inserts user unless one with the same id exists and reports
	// whether it was created.
	EnsureUser(ctx context.Context, user *models.User) (bool, error)
}

type userRepository struct {
	collection *mongo.Collection
}

func NewUserRepository(collection *mongo.Collection) UserRepository {
	return &userRepository{collection: collection}
}

// userKey matches the host application's ObjectID keys and falls back to the
// raw string for ids that are not hex ObjectIDs.
func userKey(userID string) interface{} {
	if oid, err := primitive.ObjectIDFromHex(userID); err == nil {
		return oid
	}
	return userID
}

func (r *userRepository) UpdateVerifiedPhone(ctx context.Context, userID, phone string) (*models.User, error) {
	filter := bson.M{"_id": userKey(userID)}
	update := bson.M{
		"$set": bson.M{
			"phone":          phone,
			"phone_verified": true,
			"updated_at":     time.Now(),
		},
	}

	res, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return nil, fmt.Errorf("failed to update user phone: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, ErrUserNotFound
	}

	var user models.User
	if err := r.collection.FindOne(ctx, filter).Decode(&user); err != nil {
		return nil, fmt.Errorf("failed to reload user: %w", err)
	}
	return &user, nil
}

func (r *userRepository) EnsureUser(ctx context.Context, user *models.User) (bool, error) {
	doc := bson.M{
		"name":           user.Name,
		"email":          user.Email,
		"role":           user.Role,
		"phone_verified": user.PhoneVerified,
		"updated_at":     time.Now(),
	}
	if user.Phone != "" {
		doc["phone"] = user.Phone
	}

	opts := options.Update().SetUpsert(true)
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": userKey(user.ID)}, bson.M{"$setOnInsert": doc}, opts)
	if err != nil {
		return false, fmt.Errorf("failed to ensure user: %w", err)
	}
	return res.UpsertedCount > 0, nil
}

// MemoryUserRepository backs STORE_DRIVER=memory and tests. Unknown users
// are created on first update since there is no host user store behind it.
type MemoryUserRepository struct {
	mu    sync.Mutex
	users map[string]models.User
}

func NewMemoryUserRepository(users ...models.User) *MemoryUserRepository {
	r := &MemoryUserRepository{users: make(map[string]models.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *MemoryUserRepository) Get(userID string) (models.User, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[userID]
	return user, ok
}

func (r *MemoryUserRepository) UpdateVerifiedPhone(_ context.Context, userID, phone string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[userID]
	if !ok {
		user = models.User{ID: userID}
	}
	user.Phone = phone
	user.PhoneVerified = true
	user.UpdatedAt = time.Now()
	r.users[userID] = user

	out := user
	return &out, nil
}

func (r *MemoryUserRepository) EnsureUser(_ context.Context, user *models.User) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.ID]; ok {
		return false, nil
	}
	stored := *user
	stored.UpdatedAt = time.Now()
	r.users[user.ID] = stored
	return true, nil
}
