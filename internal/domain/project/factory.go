package project

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func NewFromCreateRequest(req CreateProjectRequest) Project {
	now := time.Now().UTC()

	status := req.Status

	if status == "" {
		status = StatusCompleted
	}

	images := req.Images

	if images == nil {
		images = []Image{}
	}

	return Project{
		ID:             primitive.NewObjectID(),
		Title:          req.Title,
		Description:    req.Description,
		Category:       req.Category,
		Location:       req.Location,
		CompletionDate: req.CompletionDate,
		Images:         images,
		Featured:       req.Featured,
		Stats:          req.Stats,
		Status:         status,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}
