package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/prestigebuild/siteapi/internal/config"
	"github.com/prestigebuild/siteapi/internal/domain/project"
	"github.com/prestigebuild/siteapi/internal/domain/testimonial"
)

// The company launched in 2021; the homepage counts years from there.
const foundedYear = 2021

type ProjectCounter interface {
	CountByStatus(ctx context.Context, status string) (int64, error)
}

type ReviewStatsSource interface {
	Stats(ctx context.Context) (testimonial.Stats, error)
}

// StatsHandler serves the homepage counters. Everything is computed at
// request time from the live collections, nothing is precomputed.
type StatsHandler struct {
	projects     ProjectCounter
	testimonials ReviewStatsSource
	now          func() time.Time
}

func NewStatsHandler(projects ProjectCounter, testimonials ReviewStatsSource) *StatsHandler {
	return &StatsHandler{
		projects:     projects,
		testimonials: testimonials,
		now:          time.Now,
	}
}

func (h *StatsHandler) GetHomeStats(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(5 * time.Second)
	defer cancel()

	completed, err := h.projects.CountByStatus(cctx, project.StatusCompleted)

	if err != nil {
		RespondInternal(ctx, "Could not compute stats")
		return
	}

	ongoing, err := h.projects.CountByStatus(cctx, project.StatusOngoing)

	if err != nil {
		RespondInternal(ctx, "Could not compute stats")
		return
	}

	reviews, err := h.testimonials.Stats(cctx)

	if err != nil {
		RespondInternal(ctx, "Could not compute stats")
		return
	}

	years := h.now().Year() - foundedYear
	if years < 1 {
		years = 1
	}

	RespondJSONWithETag(ctx, http.StatusOK, gin.H{
		"projectsCompleted": completed,
		"ongoingProjects":   ongoing,
		"yearsOfExperience": years,
		"happyClients":      reviews.TotalReviews,
		"satisfactionRate":  reviews.SatisfactionRate,
		"averageRating":     reviews.AverageRating,
	})
}
