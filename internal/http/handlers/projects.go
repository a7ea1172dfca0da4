package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/prestigebuild/siteapi/internal/config"
	"github.com/prestigebuild/siteapi/internal/domain/project"
)

type ProjectsRepo interface {
	Create(ctx context.Context, req project.CreateProjectRequest) (project.Project, error)
	List(ctx context.Context, filter project.ListFilter) ([]project.Project, error)
	GetByID(ctx context.Context, id string) (project.Project, error)
	Update(ctx context.Context, id string, req project.UpdateProjectRequest) (project.Project, error)
	Delete(ctx context.Context, id string) error
}

type ProjectsHandler struct {
	repo ProjectsRepo
}

func NewProjectsHandler(repo ProjectsRepo) *ProjectsHandler {
	return &ProjectsHandler{repo: repo}
}

func (h *ProjectsHandler) ListProjects(ctx *gin.Context) {
	var filter project.ListFilter

	if v := ctx.Query("category"); v != "" {
		filter.Category = &v
	}

	if v := ctx.Query("status"); v != "" {
		filter.Status = &v
	}

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

	projects, err := h.repo.List(cctx, filter)

	if err != nil {
		RespondInternal(ctx, "Could not list projects")
		return
	}

	RespondJSONWithETag(ctx, http.StatusOK, gin.H{
		"items": projects,
		"count": len(projects),
	})
}

func (h *ProjectsHandler) GetProjectById(ctx *gin.Context) {
	id := ctx.Param("id")

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	p, err := h.repo.GetByID(cctx, id)

	if err != nil {
		if errors.Is(err, project.ErrNotFound) {
			RespondNotFound(ctx, "Project not found")
			return
		}
		RespondInternal(ctx, "Could not fetch project")
		return
	}

	RespondJSONWithETag(ctx, http.StatusOK, p)
}

func (h *ProjectsHandler) CreateProject(ctx *gin.Context) {
	var req project.CreateProjectRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	p, err := h.repo.Create(cctx, req)

	if err != nil {
		RespondInternal(ctx, "Could not create project")
		return
	}

	ctx.JSON(http.StatusCreated, p)
}

func (h *ProjectsHandler) UpdateProject(ctx *gin.Context) {
	var req project.UpdateProjectRequest

	if !BindJSON(ctx, &req) {
		return
	}

	id := ctx.Param("id")

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	p, err := h.repo.Update(cctx, id, req)

	if err != nil {
		if errors.Is(err, project.ErrNotFound) {
			RespondNotFound(ctx, "Project not found")
			return
		}
		RespondInternal(ctx, "Could not update project")
		return
	}

	ctx.JSON(http.StatusOK, p)
}

func (h *ProjectsHandler) DeleteProject(ctx *gin.Context) {
	id := ctx.Param("id")

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	err := h.repo.Delete(cctx, id)

	if err != nil {
		if errors.Is(err, project.ErrNotFound) {
			RespondNotFound(ctx, "Project not found")
			return
		}
		RespondInternal(ctx, "Could not delete project")
		return
	}

	ctx.Status(http.StatusNoContent)
}
