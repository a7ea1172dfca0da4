package service

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func NewFromCreateRequest(req CreateServiceRequest) Service {
	now := time.Now().UTC()

	features := req.Features

	if features == nil {
		features = []string{}
	}

	return Service{
		ID:          primitive.NewObjectID(),
		Title:       req.Title,
		Slug:        NormalizeSlug(req.Slug),
		Description: req.Description,
		Icon:        req.Icon,
		Features:    features,
		Image:       req.Image,
		Order:       req.Order,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Slugs are stored lowercase so lookups are case-insensitive.
func NormalizeSlug(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
