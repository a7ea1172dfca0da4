package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/prestigebuild/siteapi/internal/domain/contact"
	"github.com/prestigebuild/siteapi/internal/observability"
)

// ContactsRepo serves the admin lead views. The public contact form never
// writes here; submissions go out by email.
type ContactsRepo struct {
	collection *mongo.Collection
	prom       *observability.Prom
}

func NewContactsRepo(database *mongo.Database, prom *observability.Prom) *ContactsRepo {
	return &ContactsRepo{
		collection: database.Collection("contacts"),
		prom:       prom,
	}
}

func (r *ContactsRepo) List(ctx context.Context) ([]contact.Contact, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	out := []contact.Contact{}

	err := observe(r.prom, "contacts.list", func() error {
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

func (r *ContactsRepo) UpdateStatus(ctx context.Context, id string, status string) (contact.Contact, error) {
	oid, err := primitive.ObjectIDFromHex(id)

	if err != nil {
		return contact.Contact{}, contact.ErrNotFound
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var c contact.Contact

	err = observe(r.prom, "contacts.update_status", func() error {
		return r.collection.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
			"status":    status,
			"updatedAt": nowUTC(),
		}}, opts).Decode(&c)
	})

	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return contact.Contact{}, contact.ErrNotFound
		}

		return contact.Contact{}, err
	}

	return c, nil
}

func (r *ContactsRepo) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)

	if err != nil {
		return contact.ErrNotFound
	}

	var deleted int64

	err = observe(r.prom, "contacts.delete", func() error {
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
		return contact.ErrNotFound
	}

	return nil
}
