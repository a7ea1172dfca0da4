package project

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ErrNotFound = errors.New("project not found")

const (
	StatusCompleted = "completed"
	StatusOngoing   = "ongoing"
	StatusUpcoming  = "upcoming"
)

type Image struct {
	URL string `bson:"url" json:"url"`
	Alt string `bson:"alt" json:"alt,omitempty"`
}

// Free-text figures shown on the project card.
type Stats struct {
	Area     string `bson:"area,omitempty" json:"area,omitempty"`
	Duration string `bson:"duration,omitempty" json:"duration,omitempty"`
	Client   string `bson:"client,omitempty" json:"client,omitempty"`
}

type Project struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title          string             `bson:"title" json:"title"`
	Description    string             `bson:"description" json:"description"`
	Category       string             `bson:"category" json:"category"`
	Location       string             `bson:"location" json:"location"`
	CompletionDate time.Time          `bson:"completionDate" json:"completionDate"`
	Images         []Image            `bson:"images" json:"images"`
	Featured       bool               `bson:"featured" json:"featured"`
	Stats          Stats              `bson:"stats" json:"stats"`
	Status         string             `bson:"status" json:"status"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// nil field means "no filter" / "leave unchanged"
type ListFilter struct {
	Category *string
	Featured *bool
	Status   *string
}

type CreateProjectRequest struct {
	Title          string    `json:"title" binding:"required,min=2,max=200"`
	Description    string    `json:"description" binding:"required"`
	Category       string    `json:"category" binding:"required,oneof=residential apartment renovation commercial"`
	Location       string    `json:"location" binding:"required"`
	CompletionDate time.Time `json:"completionDate" binding:"required"`
	Images         []Image   `json:"images" binding:"omitempty,dive"`
	Featured       bool      `json:"featured"`
	Stats          Stats     `json:"stats"`
	Status         string    `json:"status" binding:"omitempty,oneof=completed ongoing upcoming"`
}

type UpdateProjectRequest struct {
	Title          *string    `json:"title" binding:"omitempty,min=2,max=200"`
	Description    *string    `json:"description" binding:"omitempty"`
	Category       *string    `json:"category" binding:"omitempty,oneof=residential apartment renovation commercial"`
	Location       *string    `json:"location" binding:"omitempty"`
	CompletionDate *time.Time `json:"completionDate" binding:"omitempty"`
	Images         []Image    `json:"images" binding:"omitempty,dive"`
	Featured       *bool      `json:"featured"`
	Stats          *Stats     `json:"stats"`
	Status         *string    `json:"status" binding:"omitempty,oneof=completed ongoing upcoming"`
}
