package repositories

import (
	"context"
	"time"

	"github.com/a-boudoun/matcha-server/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// NotificationRepository extends the core's NotificationStore contract
// with the listing and read-state operations the notification endpoints
// need.
type NotificationRepository interface {
	Create(ctx context.Context, senderID, receiverID uint, message string) (string, error)
	GetByReceiverID(ctx context.Context, receiverID uint, limit int64) ([]models.Notification, error)
	GetUnreadCount(ctx context.Context, receiverID uint) (int64, error)
	MarkAsRead(ctx context.Context, ids []string) error
}

// MongoNotificationRepository implements NotificationRepository for MongoDB
type MongoNotificationRepository struct {
	collection *mongo.Collection
}

// NewMongoNotificationRepository creates a new MongoNotificationRepository
func NewMongoNotificationRepository(db *mongo.Database) *MongoNotificationRepository {
	return &MongoNotificationRepository{collection: db.Collection("notifications")}
}

// Create inserts a notification row and returns its ID
func (r *MongoNotificationRepository) Create(ctx context.Context, senderID, receiverID uint, message string) (string, error) {
	notification := models.Notification{
		ID:         primitive.NewObjectID(),
		SenderID:   senderID,
		ReceiverID: receiverID,
		Message:    message,
		IsRead:     false,
		CreatedAt:  time.Now(),
	}
	_, err := r.collection.InsertOne(ctx, notification)
	if err != nil {
		return "", err
	}
	return notification.ID.Hex(), nil
}

// GetByReceiverID retrieves a user's notifications, newest first
func (r *MongoNotificationRepository) GetByReceiverID(ctx context.Context, receiverID uint, limit int64) ([]models.Notification, error) {
	findOptions := options.Find().SetLimit(limit).SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"receiver_id": receiverID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var notifications []models.Notification
	if err = cursor.All(ctx, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

// GetUnreadCount returns the number of unread notifications
func (r *MongoNotificationRepository) GetUnreadCount(ctx context.Context, receiverID uint) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"receiver_id": receiverID, "is_read": false})
}

// MarkAsRead flags the given notifications as read
func (r *MongoNotificationRepository) MarkAsRead(ctx context.Context, ids []string) error {
	objIDs := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		objID, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			continue
		}
		objIDs = append(objIDs, objID)
	}
	if len(objIDs) == 0 {
		return nil
	}

	_, err := r.collection.UpdateMany(ctx,
		bson.M{"_id": bson.M{"$in": objIDs}},
		bson.M{"$set": bson.M{"is_read": true}},
	)
	return err
}
