package testimonial

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NewFromCreateRequest builds the stored document for a public submission.
// isApproved is always false here: visibility is granted by an admin later,
// never by the submitter.
func NewFromCreateRequest(req CreateTestimonialRequest) Testimonial {
	now := time.Now().UTC()

	t := Testimonial{
		ID:          primitive.NewObjectID(),
		ClientName:  strings.TrimSpace(req.ClientName),
		ClientEmail: strings.ToLower(strings.TrimSpace(req.ClientEmail)),
		Company:     strings.TrimSpace(req.Company),
		Rating:      req.Rating,
		Testimonial: strings.TrimSpace(req.Testimonial),
		ProjectType: req.ProjectType,
		IsApproved:  false,
		IsFeatured:  false,
		ClientImage: req.ClientImage,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if req.ProjectID != "" {
		if oid, err := primitive.ObjectIDFromHex(req.ProjectID); err == nil {
			t.ProjectID = &oid
		}
	}

	return t
}
