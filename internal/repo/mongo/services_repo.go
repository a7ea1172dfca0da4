package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/prestigebuild/siteapi/internal/domain/service"
	"github.com/prestigebuild/siteapi/internal/observability"
)

type ServicesRepo struct {
	collection *mongo.Collection
	prom       *observability.Prom
}

func NewServicesRepo(database *mongo.Database, prom *observability.Prom) *ServicesRepo {
	return &ServicesRepo{
		collection: database.Collection("services"),
		prom:       prom,
	}
}

func (r *ServicesRepo) Create(ctx context.Context, req service.CreateServiceRequest) (service.Service, error) {
	s := service.NewFromCreateRequest(req)

	err := observe(r.prom, "services.create", func() error {
		_, err := r.collection.InsertOne(ctx, s)
		return err
	})

	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return service.Service{}, service.ErrSlugTaken
		}

		return service.Service{}, err
	}

	return s, nil
}

func (r *ServicesRepo) List(ctx context.Context) ([]service.Service, error) {
	// manual display order, ties broken by creation time
	opts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}, {Key: "createdAt", Value: 1}})

	out := []service.Service{}

	err := observe(r.prom, "services.list", func() error {
		cursor, err := r.collection.Find(ctx, bson.M{}, opts)

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

func (r *ServicesRepo) GetBySlug(ctx context.Context, slug string) (service.Service, error) {
	var s service.Service

	err := observe(r.prom, "services.get_by_slug", func() error {
		return r.collection.FindOne(ctx, bson.M{"slug": service.NormalizeSlug(slug)}).Decode(&s)
	})

	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return service.Service{}, service.ErrNotFound
		}

		return service.Service{}, err
	}

	return s, nil
}

func (r *ServicesRepo) Update(ctx context.Context, id string, req service.UpdateServiceRequest) (service.Service, error) {
	oid, err := primitive.ObjectIDFromHex(id)

	if err != nil {
		return service.Service{}, service.ErrNotFound
	}

	set := bson.M{"updatedAt": nowUTC()}

	if req.Title != nil {
		set["title"] = *req.Title
	}
	if req.Slug != nil {
		set["slug"] = service.NormalizeSlug(*req.Slug)
	}
	if req.Description != nil {
		set["description"] = *req.Description
	}
	if req.Icon != nil {
		set["icon"] = *req.Icon
	}
	if req.Features != nil {
		set["features"] = req.Features
	}
	if req.Image != nil {
		set["image"] = req.Image
	}
	if req.Order != nil {
		set["order"] = *req.Order
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var s service.Service

	err = observe(r.prom, "services.update", func() error {
		return r.collection.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&s)
	})

	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return service.Service{}, service.ErrNotFound
		}

		if mongo.IsDuplicateKeyError(err) {
			return service.Service{}, service.ErrSlugTaken
		}

		return service.Service{}, err
	}

	return s, nil
}

func (r *ServicesRepo) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)

	if err != nil {
		return service.ErrNotFound
	}

	var deleted int64

	err = observe(r.prom, "services.delete", func() error {
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
		return service.ErrNotFound
	}

	return nil
}
