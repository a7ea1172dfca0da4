package contact

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ErrNotFound = errors.New("contact not found")

const (
	StatusNew        = "new"
	StatusContacted  = "contacted"
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"
)

// Contact is the stored lead document. The public contact form does not
// write one of these: submissions are relayed by email only. The collection
// is still served on the admin side for leads recorded by other means.
type Contact struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Email       string             `bson:"email" json:"email"`
	Phone       string             `bson:"phone" json:"phone"`
	ProjectType string             `bson:"projectType,omitempty" json:"projectType,omitempty"`
	Message     string             `bson:"message" json:"message"`
	Budget      string             `bson:"budget,omitempty" json:"budget,omitempty"`
	Timeline    string             `bson:"timeline,omitempty" json:"timeline,omitempty"`
	Status      string             `bson:"status" json:"status"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// SubmitRequest is the public contact-form payload (the emailed one).
type SubmitRequest struct {
	Name    string `json:"name" binding:"required,min=2,max=120"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone" binding:"omitempty,max=40"`
	Subject string `json:"subject" binding:"required,min=2,max=200"`
	Message string `json:"message" binding:"required,min=2"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=new contacted in-progress completed"`
}
