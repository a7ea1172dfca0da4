package testimonial

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ErrNotFound = errors.New("testimonial not found")

// ProjectRef is the populated slice of the referenced project returned on
// reads. The reference itself is a soft link: deleting the project leaves it
// dangling and population simply yields nothing.
type ProjectRef struct {
	ID       primitive.ObjectID `json:"id"`
	Title    string             `json:"title"`
	Category string             `json:"category"`
}

type Testimonial struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	ClientName  string              `bson:"clientName" json:"clientName"`
	ClientEmail string              `bson:"clientEmail" json:"clientEmail"`
	Company     string              `bson:"company,omitempty" json:"company,omitempty"`
	ProjectID   *primitive.ObjectID `bson:"projectId,omitempty" json:"projectId,omitempty"`
	Rating      int                 `bson:"rating" json:"rating"`
	Testimonial string              `bson:"testimonial" json:"testimonial"`
	ProjectType string              `bson:"projectType,omitempty" json:"projectType,omitempty"`
	IsApproved  bool                `bson:"isApproved" json:"isApproved"`
	IsFeatured  bool                `bson:"isFeatured" json:"isFeatured"`
	ClientImage string              `bson:"clientImage,omitempty" json:"clientImage,omitempty"`
	CreatedAt   time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time           `bson:"updatedAt" json:"updatedAt"`

	// populated at read time, never stored
	Project *ProjectRef `bson:"-" json:"project,omitempty"`
}

type ListFilter struct {
	// when false, only approved testimonials are returned
	IncludeUnapproved bool
	Featured          *bool
}

type CreateTestimonialRequest struct {
	ClientName  string `json:"clientName" binding:"required,min=2,max=120"`
	ClientEmail string `json:"clientEmail" binding:"required,email"`
	Company     string `json:"company" binding:"omitempty,max=200"`
	ProjectID   string `json:"projectId" binding:"omitempty,len=24,hexadecimal"`
	Rating      int    `json:"rating" binding:"required,min=1,max=5"`
	Testimonial string `json:"testimonial" binding:"required,min=3"`
	ProjectType string `json:"projectType" binding:"omitempty,oneof=residential apartment renovation commercial other"`
	ClientImage string `json:"clientImage" binding:"omitempty,max=500"`
}

type UpdateTestimonialRequest struct {
	ClientName  *string `json:"clientName" binding:"omitempty,min=2,max=120"`
	ClientEmail *string `json:"clientEmail" binding:"omitempty,email"`
	Company     *string `json:"company" binding:"omitempty,max=200"`
	ProjectID   *string `json:"projectId" binding:"omitempty,len=24,hexadecimal"`
	Rating      *int    `json:"rating" binding:"omitempty,min=1,max=5"`
	Testimonial *string `json:"testimonial" binding:"omitempty,min=3"`
	ProjectType *string `json:"projectType" binding:"omitempty,oneof=residential apartment renovation commercial other"`
	IsApproved  *bool   `json:"isApproved"`
	IsFeatured  *bool   `json:"isFeatured"`
	ClientImage *string `json:"clientImage" binding:"omitempty,max=500"`
}

// Stats are the review aggregates shown on the testimonials page.
type Stats struct {
	AverageRating    float64 `json:"averageRating"`
	TotalReviews     int     `json:"totalReviews"`
	SatisfactionRate int     `json:"satisfactionRate"`
	FiveStarCount    int     `json:"fiveStarCount"`
	FourStarCount    int     `json:"fourStarCount"`
}
