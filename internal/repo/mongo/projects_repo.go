package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/prestigebuild/siteapi/internal/domain/project"
	"github.com/prestigebuild/siteapi/internal/observability"
)

type ProjectsRepo struct {
	collection *mongo.Collection
	prom       *observability.Prom
}

func NewProjectsRepo(database *mongo.Database, prom *observability.Prom) *ProjectsRepo {
	return &ProjectsRepo{
		collection: database.Collection("projects"),
		prom:       prom,
	}
}

func (r *ProjectsRepo) Create(ctx context.Context, req project.CreateProjectRequest) (project.Project, error) {
	p := project.NewFromCreateRequest(req)

	err := observe(r.prom, "projects.create", func() error {
		_, err := r.collection.InsertOne(ctx, p)
		return err
	})

	if err != nil {
		return project.Project{}, err
	}

	return p, nil
}

func (r *ProjectsRepo) List(ctx context.Context, filter project.ListFilter) ([]project.Project, error) {
	query := bson.M{}

	if filter.Category != nil {
		query["category"] = *filter.Category
	}

	if filter.Featured != nil {
		query["featured"] = *filter.Featured
	}

	if filter.Status != nil {
		query["status"] = *filter.Status
	}

	// newest first, matching the site's project grid
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	out := []project.Project{}

	err := observe(r.prom, "projects.list", func() error {
		cursor, err := r.collection.Find(ctx, query, opts)

		if err != nil {
			return err
		}

		defer cursor.Close(ctx)

		return cursor.All(ctx, &out)
	})

	if err != nil {
		return nil, err
	}

	return out, nil
}

func (r *ProjectsRepo) GetByID(ctx context.Context, id string) (project.Project, error) {
	oid, err := primitive.ObjectIDFromHex(id)

	if err != nil {
		return project.Project{}, project.ErrNotFound
	}

	var p project.Project

	err = observe(r.prom, "projects.get", func() error {
		return r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&p)
	})

	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return project.Project{}, project.ErrNotFound
		}

		return project.Project{}, err
	}

	return p, nil
}

// Update applies only the fields supplied in the request.
func (r *ProjectsRepo) Update(ctx context.Context, id string, req project.UpdateProjectRequest) (project.Project, error) {
	oid, err := primitive.ObjectIDFromHex(id)

	if err != nil {
		return project.Project{}, project.ErrNotFound
	}

	set := bson.M{"updatedAt": nowUTC()}

	if req.Title != nil {
		set["title"] = *req.Title
	}
	if req.Description != nil {
		set["description"] = *req.Description
	}
	if req.Category != nil {
		set["category"] = *req.Category
	}
	if req.Location != nil {
		set["location"] = *req.Location
	}
	if req.CompletionDate != nil {
		set["completionDate"] = *req.CompletionDate
	}
	if req.Images != nil {
		set["images"] = req.Images
	}
	if req.Featured != nil {
		set["featured"] = *req.Featured
	}
	if req.Stats != nil {
		set["stats"] = *req.Stats
	}
	if req.Status != nil {
		set["status"] = *req.Status
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var p project.Project

	err = observe(r.prom, "projects.update", func() error {
		return r.collection.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&p)
	})

	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return project.Project{}, project.ErrNotFound
		}

		return project.Project{}, err
	}

	return p, nil
}

// Delete is a hard delete. Testimonials referencing the project keep their
// dangling projectId on purpose.
func (r *ProjectsRepo) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)

	if err != nil {
		return project.ErrNotFound
	}

	var deleted int64

	err = observe(r.prom, "projects.delete", func() error {
		res, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})

		if err != nil {
			return err
		}

		deleted = res.DeletedCount
		return nil
	})

	if err != nil {
		return err
	}

	if deleted == 0 {
		return project.ErrNotFound
	}

	return nil
}

func (r *ProjectsRepo) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64

	err := observe(r.prom, "projects.count", func() error {
		var err error
		count, err = r.collection.CountDocuments(ctx, bson.M{"status": status})
		return err
	})

	if err != nil {
		return 0, err
	}

	return count, nil
}
