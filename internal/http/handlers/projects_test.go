package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/prestigebuild/siteapi/internal/domain/project"
)

type fakeProjectsRepo struct {
	items      []project.Project
	err        error
	lastFilter project.ListFilter
	created    []project.CreateProjectRequest
	deleted    []string
}

func (f *fakeProjectsRepo) Create(_ context.Context, req project.CreateProjectRequest) (project.Project, error) {
	if f.err != nil {
		return project.Project{}, f.err
	}

	f.created = append(f.created, req)
	return project.NewFromCreateRequest(req), nil
}

func (f *fakeProjectsRepo) List(_ context.Context, filter project.ListFilter) ([]project.Project, error) {
	f.lastFilter = filter
	return f.items, f.err
}

func (f *fakeProjectsRepo) GetByID(_ context.Context, id string) (project.Project, error) {
	if f.err != nil {
		return project.Project{}, f.err
	}

	for _, p := range f.items {
		if p.ID.Hex() == id {
			return p, nil
		}
	}
	return project.Project{}, project.ErrNotFound
}

func (f *fakeProjectsRepo) Update(_ context.Context, id string, _ project.UpdateProjectRequest) (project.Project, error) {
	if f.err != nil {
		return project.Project{}, f.err
	}

	for _, p := range f.items {
		if p.ID.Hex() == id {
			return p, nil
		}
	}
	return project.Project{}, project.ErrNotFound
}

func (f *fakeProjectsRepo) Delete(_ context.Context, id string) error {
	if f.err != nil {
		return f.err
	}

	for _, p := range f.items {
		if p.ID.Hex() == id {
			f.deleted = append(f.deleted, id)
			return nil
		}
	}
	return project.ErrNotFound
}

func projectsRouter(repo *fakeProjectsRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)

	h := NewProjectsHandler(repo)

	router := gin.New()
	router.GET("/api/projects", h.ListProjects)
	router.GET("/api/projects/:id", h.GetProjectById)
	router.POST("/api/projects", h.CreateProject)
	router.DELETE("/api/projects/:id", h.DeleteProject)
	return router
}

func TestListProjectsFilters(t *testing.T) {
	tests := []struct {
		name         string
		query        string
		wantStatus   int
		wantCategory string
		wantFeatured *bool
	}{
		{
			name:       "no filters",
			query:      "",
			wantStatus: http.StatusOK,
		},
		{
			name:         "category filter",
			query:        "?category=residential",
			wantStatus:   http.StatusOK,
			wantCategory: "residential",
		},
		{
			name:         "featured true",
			query:        "?featured=true",
			wantStatus:   http.StatusOK,
			wantFeatured: boolPtr(true),
		},
		{
			name:       "featured garbage",
			query:      "?featured=banana",
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			repo := &fakeProjectsRepo{}

			router := projectsRouter(repo)

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/projects"+tc.query, nil)
			router.ServeHTTP(rec, req)

			if rec.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tc.wantStatus)
			}

			if tc.wantStatus != http.StatusOK {
				return
			}

			if tc.wantCategory != "" {
				if repo.lastFilter.Category == nil || *repo.lastFilter.Category != tc.wantCategory {
					t.Fatalf("category filter = %v, want %q", repo.lastFilter.Category, tc.wantCategory)
				}
			}

			if tc.wantFeatured != nil {
				if repo.lastFilter.Featured == nil || *repo.lastFilter.Featured != *tc.wantFeatured {
					t.Fatalf("featured filter = %v, want %v", repo.lastFilter.Featured, *tc.wantFeatured)
				}
			}
		})
	}
}

func TestCreateProjectValidation(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{
			name:       "valid",
			body:       `{"title":"Skyline Tower","description":"A tower.","category":"apartment","location":"Downtown","completionDate":"2024-06-15T00:00:00Z"}`,
			wantStatus: http.StatusCreated,
		},
		{
			name:       "unknown category",
			body:       `{"title":"Skyline Tower","description":"A tower.","category":"castle","location":"Downtown","completionDate":"2024-06-15T00:00:00Z"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing title",
			body:       `{"description":"A tower.","category":"apartment","location":"Downtown","completionDate":"2024-06-15T00:00:00Z"}`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			repo := &fakeProjectsRepo{}

			router := projectsRouter(repo)

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/projects", strings.NewReader(tc.body))
			req.Header.Set("Content-Type", "application/json")
			router.ServeHTTP(rec, req)

			if rec.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tc.wantStatus, rec.Body.String())
			}

			if tc.wantStatus == http.StatusBadRequest && len(repo.created) != 0 {
				t.Fatal("invalid request must not reach the repository")
			}
		})
	}
}

func TestGetProjectByIdNotFound(t *testing.T) {
	repo := &fakeProjectsRepo{}

	router := projectsRouter(repo)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/projects/64b000000000000000000000", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestDeleteProject(t *testing.T) {
	existing := project.NewFromCreateRequest(project.CreateProjectRequest{
		Title:       "Skyline Tower",
		Description: "A tower.",
		Category:    "apartment",
		Location:    "Downtown",
	})

	repo := &fakeProjectsRepo{items: []project.Project{existing}}

	router := projectsRouter(repo)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/projects/"+existing.ID.Hex(), nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNoContent)
	}

	if len(repo.deleted) != 1 {
		t.Fatalf("deleted = %v, want one entry", repo.deleted)
	}
}

func boolPtr(v bool) *bool { return &v }
