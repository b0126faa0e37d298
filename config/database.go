package config

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	util "hrms-portal/pkg/utils"
)

var MongoConn *mongo.Client

var DBName string = "hrms-portal-db"
var UserCollection string = "users"
var AttendanceCollection string = "attendance_days"
var OTPCollection string = "otp_challenges"

func MongoConnect(uri string) error {
	if uri == "" {
		return fmt.Errorf("MONGOSTRING is not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	util.Logger.Info("Connected to MongoDB!")
	MongoConn = client
	return nil
}

func GetCollection(collectionName string) *mongo.Collection {
	if MongoConn == nil {
		util.Logger.Fatal("MongoDB client is not initialised. Call MongoConnect() first")
	}
	return MongoConn.Database(DBName).Collection(collectionName)
}

// InitDatabase creates the indexes the repositories rely on: the unique
// (user_id, date) key for attendance days and the TTL index that lets MongoDB
// evict expired OTP challenges on its own.
func InitDatabase(ctx context.Context) error {
	attendance := GetCollection(AttendanceCollection)
	_, err := attendance.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("user_date_unique"),
		},
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "date", Value: -1}},
			Options: options.Index().SetName("user_date_desc"),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create attendance indexes: %w", err)
	}

	otp := GetCollection(OTPCollection)
	_, err = otp.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "expires_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0).SetName("expires_at_ttl"),
	})
	if err != nil {
		return fmt.Errorf("failed to create otp TTL index: %w", err)
	}

	util.Logger.Info("MongoDB indexes ensured")
	return nil
}

func DisconnectDB() {
	if MongoConn != nil {
		if err := MongoConn.Disconnect(context.Background()); err != nil {
			util.Logger.Errorf("Error disconnecting from MongoDB: %v", err)
			return
		}
		util.Logger.Info("Disconnected from MongoDB")
	}
}
