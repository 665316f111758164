package services

import (
	"context"
	"errors"
	"time"

	"smartrail/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const complaintsCollection = "complaints"

// ComplaintStore persists passenger complaints in MongoDB.
type ComplaintStore struct {
	db *mongo.Database
}

func NewComplaintStore(db *mongo.Database) *ComplaintStore {
	return &ComplaintStore{db: db}
}

func (c *ComplaintStore) Enabled() bool {
	return c != nil && c.db != nil
}

func (c *ComplaintStore) Create(ctx context.Context, complaint *models.Complaint) error {
	if !c.Enabled() {
		return errors.New("complaint store not configured")
	}

	complaint.Status = models.ComplaintOpen
	complaint.CreatedAt = time.Now().UTC()

	result, err := c.db.Collection(complaintsCollection).InsertOne(ctx, complaint)
	if err != nil {
		return err
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		complaint.ID = oid
	}
	return nil
}

// List returns complaints, newest first, optionally filtered by train.
func (c *ComplaintStore) List(ctx context.Context, trainNumber string, limit int64) ([]models.Complaint, error) {
	if !c.Enabled() {
		return nil, errors.New("complaint store not configured")
	}

	filter := bson.M{}
	if trainNumber != "" {
		filter["train_number"] = trainNumber
	}

	opts := options.Find().
		SetSort(bson.M{"created_at": -1}).
		SetLimit(limit)

	cursor, err := c.db.Collection(complaintsCollection).Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	complaints := make([]models.Complaint, 0)
	if err := cursor.All(ctx, &complaints); err != nil {
		return nil, err
	}
	return complaints, nil
}
