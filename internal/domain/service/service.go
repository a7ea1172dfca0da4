package service

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrNotFound  = errors.New("service not found")
	ErrSlugTaken = errors.New("slug already in use")
)

type Image struct {
	URL string `bson:"url" json:"url"`
	Alt string `bson:"alt" json:"alt,omitempty"`
}

// Service is static reference content: one card per offering, ordered
// manually on the services page.
type Service struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Slug        string             `bson:"slug" json:"slug"`
	Description string             `bson:"description" json:"description"`
	Icon        string             `bson:"icon,omitempty" json:"icon,omitempty"`
	Features    []string           `bson:"features" json:"features"`
	Image       *Image             `bson:"image,omitempty" json:"image,omitempty"`
	Order       int                `bson:"order" json:"order"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type CreateServiceRequest struct {
	Title       string   `json:"title" binding:"required,min=2,max=200"`
	Slug        string   `json:"slug" binding:"required,min=2,max=120"`
	Description string   `json:"description" binding:"required"`
	Icon        string   `json:"icon"`
	Features    []string `json:"features"`
	Image       *Image   `json:"image"`
	Order       int      `json:"order" binding:"omitempty,min=0"`
}

type UpdateServiceRequest struct {
	Title       *string  `json:"title" binding:"omitempty,min=2,max=200"`
	Slug        *string  `json:"slug" binding:"omitempty,min=2,max=120"`
	Description *string  `json:"description" binding:"omitempty"`
	Icon        *string  `json:"icon"`
	Features    []string `json:"features"`
	Image       *Image   `json:"image"`
	Order       *int     `json:"order" binding:"omitempty,min=0"`
}
