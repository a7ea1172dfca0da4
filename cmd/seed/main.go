package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/prestigebuild/siteapi/internal/config"
	"github.com/prestigebuild/siteapi/internal/db"
	"github.com/prestigebuild/siteapi/internal/domain/project"
	"github.com/prestigebuild/siteapi/internal/domain/service"
	repo "github.com/prestigebuild/siteapi/internal/repo/mongo"
)

// Seeds the projects and services collections with showcase content for
// local development and demos.
func main() {
	force := flag.Bool("force", false, "seed even if the collections already contain documents")
	flag.Parse()

	_ = godotenv.Load()

	cfg := config.Load()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	database, err := db.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase)

	if err != nil {
		logger.Error("database connection failed", "error", err)
		os.Exit(1)
	}

	defer func() {
		_ = database.Client().Disconnect(context.Background())
	}()

	if err := db.EnsureIndexes(ctx, database); err != nil {
		logger.Error("index creation failed", "error", err)
		os.Exit(1)
	}

	if !*force {
		count, err := database.Collection("projects").EstimatedDocumentCount(ctx)

		if err != nil {
			logger.Error("could not inspect projects collection", "error", err)
			os.Exit(1)
		}

		if count > 0 {
			logger.Info("projects collection is not empty, refusing to seed (use -force)")
			return
		}
	}

	projects := repo.NewProjectsRepo(database, nil)
	services := repo.NewServicesRepo(database, nil)

	for _, req := range sampleProjects() {
		p, err := projects.Create(ctx, req)

		if err != nil {
			logger.Error("seed project failed", "title", req.Title, "error", err)
			os.Exit(1)
		}

		logger.Info("seeded project", "id", p.ID.Hex(), "title", p.Title)
	}

	for _, req := range sampleServices() {
		s, err := services.Create(ctx, req)

		if err != nil {
			logger.Error("seed service failed", "title", req.Title, "error", err)
			os.Exit(1)
		}

		logger.Info("seeded service", "id", s.ID.Hex(), "slug", s.Slug)
	}

	logger.Info("seed complete")
}

func sampleProjects() []project.CreateProjectRequest {
	return []project.CreateProjectRequest{
		{
			Title:          "Skyline Residence Tower",
			Description:    "A 14-storey apartment tower with underground parking, rooftop terrace and energy-efficient facade.",
			Category:       "apartment",
			Location:       "Riverside District",
			CompletionDate: time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC),
			Featured:       true,
			Stats: project.Stats{
				Area:     "12,400 m²",
				Duration: "26 months",
				Client:   "Riverside Development Group",
			},
			Status: project.StatusCompleted,
		},
		{
			Title:          "Oakwood Family Home",
			Description:    "Custom four-bedroom family house with timber-frame construction and a landscaped garden.",
			Category:       "residential",
			Location:       "Oakwood Hills",
			CompletionDate: time.Date(2023, time.September, 1, 0, 0, 0, 0, time.UTC),
			Featured:       true,
			Stats: project.Stats{
				Area:     "280 m²",
				Duration: "11 months",
				Client:   "Private",
			},
			Status: project.StatusCompleted,
		},
		{
			Title:          "Harbor Street Office Refit",
			Description:    "Full interior renovation of a heritage-listed office building, preserving the original brick shell.",
			Category:       "renovation",
			Location:       "Old Harbor Quarter",
			CompletionDate: time.Date(2025, time.February, 28, 0, 0, 0, 0, time.UTC),
			Stats: project.Stats{
				Area:     "3,100 m²",
				Duration: "9 months",
				Client:   "Harbor Street Partners",
			},
			Status: project.StatusCompleted,
		},
		{
			Title:          "Greenfield Retail Park",
			Description:    "Three-unit retail park with shared logistics yard and 200 parking spaces.",
			Category:       "commercial",
			Location:       "Greenfield Junction",
			CompletionDate: time.Date(2026, time.November, 30, 0, 0, 0, 0, time.UTC),
			Stats: project.Stats{
				Area:     "8,700 m²",
				Duration: "18 months",
			},
			Status: project.StatusOngoing,
		},
	}
}

func sampleServices() []service.CreateServiceRequest {
	return []service.CreateServiceRequest{
		{
			Title:       "Residential Construction",
			Slug:        "residential-construction",
			Description: "Turn-key family homes from foundation to handover, built to your plans or ours.",
			Icon:        "home",
			Features: []string{
				"Custom design support",
				"Fixed-price contracts",
				"10-year structural warranty",
			},
			Order: 1,
		},
		{
			Title:       "Commercial Building",
			Slug:        "commercial-building",
			Description: "Offices, retail and light industrial buildings delivered on schedule.",
			Icon:        "building",
			Features: []string{
				"Design-build delivery",
				"Tenant fit-out coordination",
			},
			Order: 2,
		},
		{
			Title:       "Renovation & Restoration",
			Slug:        "renovation-restoration",
			Description: "Modernising existing structures while respecting what makes them worth keeping.",
			Icon:        "hammer",
			Features: []string{
				"Heritage-compliant methods",
				"Occupied-building scheduling",
				"Structural assessments",
			},
			Order: 3,
		},
		{
			Title:       "Project Management",
			Slug:        "project-management",
			Description: "Independent oversight of budget, schedule and quality for construction projects of any size.",
			Icon:        "clipboard",
			Features: []string{
				"Weekly progress reporting",
				"Contractor coordination",
			},
			Order: 4,
		},
	}
}
