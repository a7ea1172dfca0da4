package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/prestigebuild/siteapi/internal/config"
	"github.com/prestigebuild/siteapi/internal/domain/testimonial"
)

type TestimonialsRepo interface {
	Create(ctx context.Context, req testimonial.CreateTestimonialRequest) (testimonial.Testimonial, error)
	List(ctx context.Context, filter testimonial.ListFilter) ([]testimonial.Testimonial, error)
	GetByID(ctx context.Context, id string) (testimonial.Testimonial, error)
	Update(ctx context.Context, id string, req testimonial.UpdateTestimonialRequest) (testimonial.Testimonial, error)
	SetApproved(ctx context.Context, id string) (testimonial.Testimonial, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (testimonial.Stats, error)
}

type TestimonialsHandler struct {
	repo TestimonialsRepo
}

func NewTestimonialsHandler(repo TestimonialsRepo) *TestimonialsHandler {
	return &TestimonialsHandler{repo: repo}
}

// ListTestimonials is the public listing: approved reviews only, optionally
// narrowed to featured ones.
func (h *TestimonialsHandler) ListTestimonials(ctx *gin.Context) {
	var filter testimonial.ListFilter

	if v := ctx.Query("featured"); v != "" {
		featured, err := strconv.ParseBool(v)

		if err != nil {
			RespondBadRequest(ctx, "featured must be a boolean", nil)
			return
		}

		filter.Featured = &featured
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	items, err := h.repo.List(cctx, filter)

	if err != nil {
		RespondInternal(ctx, "Could not list testimonials")
		return
	}

	RespondJSONWithETag(ctx, http.StatusOK, gin.H{
		"items": items,
		"count": len(items),
	})
}

// ListAllTestimonials is the admin listing and includes unapproved entries.
func (h *TestimonialsHandler) ListAllTestimonials(ctx *gin.Context) {
	filter := testimonial.ListFilter{IncludeUnapproved: true}

	if v := ctx.Query("featured"); v != "" {
		featured, err := strconv.ParseBool(v)

		if err != nil {
			RespondBadRequest(ctx, "featured must be a boolean", nil)
			return
		}

		filter.Featured = &featured
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	items, err := h.repo.List(cctx, filter)

	if err != nil {
		RespondInternal(ctx, "Could not list testimonials")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"items": items,
		"count": len(items),
	})
}

func (h *TestimonialsHandler) GetTestimonialById(ctx *gin.Context) {
	id := ctx.Param("id")

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	t, err := h.repo.GetByID(cctx, id)

	if err != nil {
		if errors.Is(err, testimonial.ErrNotFound) {
			RespondNotFound(ctx, "Testimonial not found")
			return
		}
		RespondInternal(ctx, "Could not fetch testimonial")
		return
	}

	ctx.JSON(http.StatusOK, t)
}

func (h *TestimonialsHandler) GetTestimonialStats(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	stats, err := h.repo.Stats(cctx)

	if err != nil {
		RespondInternal(ctx, "Could not compute testimonial stats")
		return
	}

	RespondJSONWithETag(ctx, http.StatusOK, stats)
}

// SubmitTestimonial is the public submission endpoint. New entries always
// land unapproved regardless of what the body claims.
func (h *TestimonialsHandler) SubmitTestimonial(ctx *gin.Context) {
	var req testimonial.CreateTestimonialRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	t, err := h.repo.Create(cctx, req)

	if err != nil {
		RespondInternal(ctx, "Could not submit testimonial")
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message":     "Thank you for your feedback! Your testimonial will be reviewed before publishing.",
		"testimonial": t,
	})
}

func (h *TestimonialsHandler) UpdateTestimonial(ctx *gin.Context) {
	var req testimonial.UpdateTestimonialRequest

	if !BindJSON(ctx, &req) {
		return
	}

	id := ctx.Param("id")

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	t, err := h.repo.Update(cctx, id, req)

	if err != nil {
		if errors.Is(err, testimonial.ErrNotFound) {
			RespondNotFound(ctx, "Testimonial not found")
			return
		}
		RespondInternal(ctx, "Could not update testimonial")
		return
	}

	ctx.JSON(http.StatusOK, t)
}

func (h *TestimonialsHandler) ApproveTestimonial(ctx *gin.Context) {
	id := ctx.Param("id")

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	t, err := h.repo.SetApproved(cctx, id)

	if err != nil {
		if errors.Is(err, testimonial.ErrNotFound) {
			RespondNotFound(ctx, "Testimonial not found")
			return
		}
		RespondInternal(ctx, "Could not approve testimonial")
		return
	}

	ctx.JSON(http.StatusOK, t)
}

func (h *TestimonialsHandler) DeleteTestimonial(ctx *gin.Context) {
	id := ctx.Param("id")

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	err := h.repo.Delete(cctx, id)

	if err != nil {
		if errors.Is(err, testimonial.ErrNotFound) {
			RespondNotFound(ctx, "Testimonial not found")
			return
		}
		RespondInternal(ctx, "Could not delete testimonial")
		return
	}

	ctx.Status(http.StatusNoContent)
}
