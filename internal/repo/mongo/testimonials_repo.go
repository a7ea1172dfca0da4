package mongo

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/prestigebuild/siteapi/internal/domain/testimonial"
	"github.com/prestigebuild/siteapi/internal/observability"
)

type TestimonialsRepo struct {
	collection *mongo.Collection
	projects   *mongo.Collection
	prom       *observability.Prom
}

func NewTestimonialsRepo(database *mongo.Database, prom *observability.Prom) *TestimonialsRepo {
	return &TestimonialsRepo{
		collection: database.Collection("testimonials"),
		projects:   database.Collection("projects"),
		prom:       prom,
	}
}

func (r *TestimonialsRepo) Create(ctx context.Context, req testimonial.CreateTestimonialRequest) (testimonial.Testimonial, error) {
	t := testimonial.NewFromCreateRequest(req)

	err := observe(r.prom, "testimonials.create", func() error {
		_, err := r.collection.InsertOne(ctx, t)
		return err
	})

	if err != nil {
		return testimonial.Testimonial{}, err
	}

	return t, nil
}

func (r *TestimonialsRepo) List(ctx context.Context, filter testimonial.ListFilter) ([]testimonial.Testimonial, error) {
	query := bson.M{}

	if !filter.IncludeUnapproved {
		query["isApproved"] = true
	}

	if filter.Featured != nil {
		query["isFeatured"] = *filter.Featured
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	out := []testimonial.Testimonial{}

	err := observe(r.prom, "testimonials.list", func() error {
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

	if err := r.populateProjects(ctx, out); err != nil {
		return nil, err
	}

	return out, nil
}

func (r *TestimonialsRepo) GetByID(ctx context.Context, id string) (testimonial.Testimonial, error) {
	oid, err := primitive.ObjectIDFromHex(id)

	if err != nil {
		return testimonial.Testimonial{}, testimonial.ErrNotFound
	}

	var t testimonial.Testimonial

	err = observe(r.prom, "testimonials.get", func() error {
		return r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&t)
	})

	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return testimonial.Testimonial{}, testimonial.ErrNotFound
		}

		return testimonial.Testimonial{}, err
	}

	single := []testimonial.Testimonial{t}

	if err := r.populateProjects(ctx, single); err != nil {
		return testimonial.Testimonial{}, err
	}

	return single[0], nil
}

func (r *TestimonialsRepo) Update(ctx context.Context, id string, req testimonial.UpdateTestimonialRequest) (testimonial.Testimonial, error) {
	oid, err := primitive.ObjectIDFromHex(id)

	if err != nil {
		return testimonial.Testimonial{}, testimonial.ErrNotFound
	}

	set := bson.M{"updatedAt": nowUTC()}

	if req.ClientName != nil {
		set["clientName"] = strings.TrimSpace(*req.ClientName)
	}
	if req.ClientEmail != nil {
		set["clientEmail"] = strings.ToLower(strings.TrimSpace(*req.ClientEmail))
	}
	if req.Company != nil {
		set["company"] = strings.TrimSpace(*req.Company)
	}
	if req.ProjectID != nil {
		if pid, err := primitive.ObjectIDFromHex(*req.ProjectID); err == nil {
			set["projectId"] = pid
		}
	}
	if req.Rating != nil {
		set["rating"] = *req.Rating
	}
	if req.Testimonial != nil {
		set["testimonial"] = strings.TrimSpace(*req.Testimonial)
	}
	if req.ProjectType != nil {
		set["projectType"] = *req.ProjectType
	}
	if req.IsApproved != nil {
		set["isApproved"] = *req.IsApproved
	}
	if req.IsFeatured != nil {
		set["isFeatured"] = *req.IsFeatured
	}
	if req.ClientImage != nil {
		set["clientImage"] = *req.ClientImage
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var t testimonial.Testimonial

	err = observe(r.prom, "testimonials.update", func() error {
		return r.collection.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&t)
	})

	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return testimonial.Testimonial{}, testimonial.ErrNotFound
		}

		return testimonial.Testimonial{}, err
	}

	return t, nil
}

// SetApproved flips the approval gate; the only way a public submission
// becomes visible.
func (r *TestimonialsRepo) SetApproved(ctx context.Context, id string) (testimonial.Testimonial, error) {
	approved := true

	return r.Update(ctx, id, testimonial.UpdateTestimonialRequest{IsApproved: &approved})
}

func (r *TestimonialsRepo) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)

	if err != nil {
		return testimonial.ErrNotFound
	}

	var deleted int64

	err = observe(r.prom, "testimonials.delete", func() error {
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
		return testimonial.ErrNotFound
	}

	return nil
}

// Stats aggregates approved reviews only.
func (r *TestimonialsRepo) Stats(ctx context.Context) (testimonial.Stats, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"isApproved": true}}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":           nil,
			"averageRating": bson.M{"$avg": "$rating"},
			"totalReviews":  bson.M{"$sum": 1},
			"fiveStarCount": bson.M{"$sum": bson.M{"$cond": bson.A{bson.M{"$eq": bson.A{"$rating", 5}}, 1, 0}}},
			"fourStarCount": bson.M{"$sum": bson.M{"$cond": bson.A{bson.M{"$eq": bson.A{"$rating", 4}}, 1, 0}}},
		}}},
	}

	var rows []struct {
		AverageRating float64 `bson:"averageRating"`
		TotalReviews  int     `bson:"totalReviews"`
		FiveStarCount int     `bson:"fiveStarCount"`
		FourStarCount int     `bson:"fourStarCount"`
	}

	err := observe(r.prom, "testimonials.stats", func() error {
		cursor, err := r.collection.Aggregate(ctx, pipeline)

		if err != nil {
			return err
		}

		defer cursor.Close(ctx)

		return cursor.All(ctx, &rows)
	})

	if err != nil {
		return testimonial.Stats{}, err
	}

	if len(rows) == 0 {
		// no approved reviews yet
		return testimonial.Stats{SatisfactionRate: 100}, nil
	}

	row := rows[0]

	return testimonial.Stats{
		AverageRating:    testimonial.Round1(row.AverageRating),
		TotalReviews:     row.TotalReviews,
		SatisfactionRate: testimonial.SatisfactionRate(row.AverageRating, row.TotalReviews),
		FiveStarCount:    row.FiveStarCount,
		FourStarCount:    row.FourStarCount,
	}, nil
}

// populateProjects fills the soft project reference with {title, category}.
// Dangling references (project deleted since) are silently skipped.
func (r *TestimonialsRepo) populateProjects(ctx context.Context, items []testimonial.Testimonial) error {
	ids := make([]primitive.ObjectID, 0, len(items))
	seen := map[primitive.ObjectID]struct{}{}

	for _, t := range items {
		if t.ProjectID == nil {
			continue
		}

		if _, ok := seen[*t.ProjectID]; ok {
			continue
		}

		seen[*t.ProjectID] = struct{}{}
		ids = append(ids, *t.ProjectID)
	}

	if len(ids) == 0 {
		return nil
	}

	var refs []struct {
		ID       primitive.ObjectID `bson:"_id"`
		Title    string             `bson:"title"`
		Category string             `bson:"category"`
	}

	err := observe(r.prom, "testimonials.populate", func() error {
		opts := options.Find().SetProjection(bson.M{"title": 1, "category": 1})
		cursor, err := r.projects.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, opts)

		if err != nil {
			return err
		}

		defer cursor.Close(ctx)

		return cursor.All(ctx, &refs)
	})

	if err != nil {
		return err
	}

	byID := make(map[primitive.ObjectID]testimonial.ProjectRef, len(refs))

	for _, ref := range refs {
		byID[ref.ID] = testimonial.ProjectRef{ID: ref.ID, Title: ref.Title, Category: ref.Category}
	}

	for i := range items {
		if items[i].ProjectID == nil {
			continue
		}

		if ref, ok := byID[*items[i].ProjectID]; ok {
			refCopy := ref
			items[i].Project = &refCopy
		}
	}

	return nil
}
