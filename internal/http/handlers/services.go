package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/prestigebuild/siteapi/internal/config"
	"github.com/prestigebuild/siteapi/internal/domain/service"
)

type ServicesRepo interface {
	Create(ctx context.Context, req service.CreateServiceRequest) (service.Service, error)
	List(ctx context.Context) ([]service.Service, error)
	GetBySlug(ctx context.Context, slug string) (service.Service, error)
	Update(ctx context.Context, id string, req service.UpdateServiceRequest) (service.Service, error)
	Delete(ctx context.Context, id string) error
}

type ServicesHandler struct {
	repo ServicesRepo
}

func NewServicesHandler(repo ServicesRepo) *ServicesHandler {
	return &ServicesHandler{repo: repo}
}

func (h *ServicesHandler) ListServices(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	services, err := h.repo.List(cctx)

	if err != nil {
		RespondInternal(ctx, "Could not list services")
		return
	}

	RespondJSONWithETag(ctx, http.StatusOK, gin.H{
		"items": services,
		"count": len(services),
	})
}

func (h *ServicesHandler) GetServiceBySlug(ctx *gin.Context) {
	slug := ctx.Param("slug")

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	s, err := h.repo.GetBySlug(cctx, slug)

	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			RespondNotFound(ctx, "Service not found")
			return
		}
		RespondInternal(ctx, "Could not fetch service")
		return
	}

	RespondJSONWithETag(ctx, http.StatusOK, s)
}

func (h *ServicesHandler) CreateService(ctx *gin.Context) {
	var req service.CreateServiceRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	s, err := h.repo.Create(cctx, req)

	if err != nil {
		if errors.Is(err, service.ErrSlugTaken) {
			RespondConflict(ctx, "slug_taken", "A service with this slug already exists")
			return
		}
		RespondInternal(ctx, "Could not create service")
		return
	}

	ctx.JSON(http.StatusCreated, s)
}

func (h *ServicesHandler) UpdateService(ctx *gin.Context) {
	var req service.UpdateServiceRequest

	if !BindJSON(ctx, &req) {
		return
	}

	id := ctx.Param("id")

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	s, err := h.repo.Update(cctx, id, req)

	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			RespondNotFound(ctx, "Service not found")
			return
		}
		if errors.Is(err, service.ErrSlugTaken) {
			RespondConflict(ctx, "slug_taken", "A service with this slug already exists")
			return
		}
		RespondInternal(ctx, "Could not update service")
		return
	}

	ctx.JSON(http.StatusOK, s)
}

func (h *ServicesHandler) DeleteService(ctx *gin.Context) {
	id := ctx.Param("id")

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	err := h.repo.Delete(cctx, id)

	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			RespondNotFound(ctx, "Service not found")
			return
		}
		RespondInternal(ctx, "Could not delete service")
		return
	}

	ctx.Status(http.StatusNoContent)
}
