package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/prestigebuild/siteapi/internal/domain/project"
	"github.com/prestigebuild/siteapi/internal/domain/testimonial"
)

type fakeProjectCounter struct {
	counts map[string]int64
	err    error
}

func (f *fakeProjectCounter) CountByStatus(_ context.Context, status string) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.counts[status], nil
}

type fakeReviewStats struct {
	stats testimonial.Stats
	err   error
}

func (f *fakeReviewStats) Stats(_ context.Context) (testimonial.Stats, error) {
	return f.stats, f.err
}

func TestGetHomeStats(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := NewStatsHandler(
		&fakeProjectCounter{counts: map[string]int64{
			project.StatusCompleted: 42,
			project.StatusOngoing:   3,
		}},
		&fakeReviewStats{stats: testimonial.Stats{
			AverageRating:    4.6,
			TotalReviews:     25,
			SatisfactionRate: 92,
		}},
	)
	h.now = func() time.Time { return time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC) }

	router := gin.New()
	router.GET("/api/stats/home", h.GetHomeStats)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/stats/home", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var resp struct {
		ProjectsCompleted int64   `json:"projectsCompleted"`
		OngoingProjects   int64   `json:"ongoingProjects"`
		YearsExperience   int     `json:"yearsOfExperience"`
		HappyClients      int     `json:"happyClients"`
		SatisfactionRate  int     `json:"satisfactionRate"`
		AverageRating     float64 `json:"averageRating"`
	}

	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if resp.ProjectsCompleted != 42 {
		t.Errorf("projectsCompleted = %d, want 42", resp.ProjectsCompleted)
	}
	if resp.OngoingProjects != 3 {
		t.Errorf("ongoingProjects = %d, want 3", resp.OngoingProjects)
	}
	if resp.YearsExperience != 5 {
		t.Errorf("yearsExperience = %d, want 5", resp.YearsExperience)
	}
	if resp.HappyClients != 25 {
		t.Errorf("happyClients = %d, want 25", resp.HappyClients)
	}
	if resp.SatisfactionRate != 92 {
		t.Errorf("satisfactionRate = %d, want 92", resp.SatisfactionRate)
	}
	if resp.AverageRating != 4.6 {
		t.Errorf("averageRating = %v, want 4.6", resp.AverageRating)
	}
}

func TestGetHomeStatsYearsNeverBelowOne(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := NewStatsHandler(
		&fakeProjectCounter{counts: map[string]int64{}},
		&fakeReviewStats{stats: testimonial.Stats{SatisfactionRate: 100}},
	)
	// clock set before the company even existed
	h.now = func() time.Time { return time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC) }

	router := gin.New()
	router.GET("/api/stats/home", h.GetHomeStats)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/stats/home", nil)
	router.ServeHTTP(rec, req)

	var resp struct {
		YearsExperience int `json:"yearsOfExperience"`
	}

	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if resp.YearsExperience != 1 {
		t.Fatalf("yearsExperience = %d, want 1", resp.YearsExperience)
	}
}

func TestGetHomeStatsCounterError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := NewStatsHandler(
		&fakeProjectCounter{err: errors.New("boom")},
		&fakeReviewStats{},
	)

	router := gin.New()
	router.GET("/api/stats/home", h.GetHomeStats)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/stats/home", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
}
