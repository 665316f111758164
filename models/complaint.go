package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Complaint struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TrainNumber string             `bson:"train_number" json:"trainNumber" validate:"required"`
	CoachID     string             `bson:"coach_id,omitempty" json:"coachId,omitempty"`
	PNR         string             `bson:"pnr,omitempty" json:"pnr,omitempty"`
	Category    string             `bson:"category" json:"category" validate:"required"`
	Description string             `bson:"description" json:"description" validate:"required"`
	Reporter    string             `bson:"reporter,omitempty" json:"reporter,omitempty"`
	Status      string             `bson:"status" json:"status"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
}

const (
	ComplaintOpen     = "Open"
	ComplaintResolved = "Resolved"
)
