package mongo

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/prestigebuild/siteapi/internal/domain/user"
	"github.com/prestigebuild/siteapi/internal/observability"
)

type UsersRepo struct {
	collection *mongo.Collection
	prom       *observability.Prom
}

func NewUsersRepo(database *mongo.Database, prom *observability.Prom) *UsersRepo {
	return &UsersRepo{
		collection: database.Collection("users"),
		prom:       prom,
	}
}

func (r *UsersRepo) Create(ctx context.Context, username, email, passwordHash, role string) (user.User, error) {
	u := user.User{
		ID:           primitive.NewObjectID(),
		Username:     strings.ToLower(strings.TrimSpace(username)),
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: passwordHash,
		Role:         role,
		IsActive:     true,
		CreatedAt:    nowUTC(),
		UpdatedAt:    nowUTC(),
	}

	// pre-checks give precise errors; the unique indexes are the backstop
	var existing user.User

	err := observe(r.prom, "users.check_username", func() error {
		return r.collection.FindOne(ctx, bson.M{"username": u.Username}).Decode(&existing)
	})

	if err == nil {
		return user.User{}, user.ErrUsernameTaken
	}

	if !errors.Is(err, mongo.ErrNoDocuments) {
		return user.User{}, err
	}

	err = observe(r.prom, "users.check_email", func() error {
		return r.collection.FindOne(ctx, bson.M{"email": u.Email}).Decode(&existing)
	})

	if err == nil {
		return user.User{}, user.ErrEmailTaken
	}

	if !errors.Is(err, mongo.ErrNoDocuments) {
		return user.User{}, err
	}

	err = observe(r.prom, "users.create", func() error {
		_, err := r.collection.InsertOne(ctx, u)
		return err
	})

	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return user.User{}, user.ErrUsernameTaken
		}

		return user.User{}, err
	}

	return u, nil
}

func (r *UsersRepo) GetByUsername(ctx context.Context, username string) (user.User, error) {
	var u user.User

	err := observe(r.prom, "users.get_by_username", func() error {
		return r.collection.FindOne(ctx, bson.M{"username": strings.ToLower(strings.TrimSpace(username))}).Decode(&u)
	})

	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return user.User{}, user.ErrNotFound
		}

		return user.User{}, err
	}

	return u, nil
}

func (r *UsersRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)

	if err != nil {
		return user.User{}, user.ErrNotFound
	}

	var u user.User

	err = observe(r.prom, "users.get", func() error {
		return r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&u)
	})

	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return user.User{}, user.ErrNotFound
		}

		return user.User{}, err
	}

	return u, nil
}

func (r *UsersRepo) UpdatePassword(ctx context.Context, id string, passwordHash string) error {
	oid, err := primitive.ObjectIDFromHex(id)

	if err != nil {
		return user.ErrNotFound
	}

	var matched int64

	err = observe(r.prom, "users.update_password", func() error {
		res, err := r.collection.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
			"password":  passwordHash,
			"updatedAt": nowUTC(),
		}})

		if err != nil {
			return err
		}

		matched = res.MatchedCount
		return nil
	})

	if err != nil {
		return err
	}

	if matched == 0 {
		return user.ErrNotFound
	}

	return nil
}
