package storage

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/arnobm97/Trial-Project-backend/internal/models"
)

// ErrNotFound indicates a record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrAlreadyExists indicates a uniqueness conflict.
var ErrAlreadyExists = errors.New("record already exists")

// ErrInvalidID indicates a malformed document identifier.
var ErrInvalidID = errors.New("invalid document id")

// UpdateResult reports the outcome of an update or upsert.
type UpdateResult struct {
	Matched    int64  `json:"matchedCount"`
	Modified   int64  `json:"modifiedCount"`
	UpsertedID string `json:"upsertedId,omitempty"`
}

// DeleteResult reports the outcome of a delete.
type DeleteResult struct {
	Deleted int64 `json:"deletedCount"`
}

// UserStore captures persistence operations over the users collection.
type UserStore interface {
	CreateUser(ctx context.Context, user models.User) (string, error)
	FindByEmail(ctx context.Context, email string) (models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	// AdminExists reports whether at least one admin record exists.
	AdminExists(ctx context.Context) (bool, error)
	// UpsertAdmin sets the record for user.Email to the admin role,
	// inserting the record when absent.
	UpsertAdmin(ctx context.Context, user models.User) (UpdateResult, error)
	PromoteByID(ctx context.Context, id string) (UpdateResult, error)
	DeleteUserByID(ctx context.Context, id string) (DeleteResult, error)
}

// CartStore captures persistence operations over the carts collection.
// Cart documents are passthrough payloads keyed only by their owner email.
type CartStore interface {
	ListCarts(ctx context.Context, email string) ([]bson.M, error)
	CreateCart(ctx context.Context, item bson.M) (string, error)
	DeleteCartByID(ctx context.Context, id string) (DeleteResult, error)
}

// CatalogStore serves the read-only menu and reviews collections.
type CatalogStore interface {
	ListMenu(ctx context.Context) ([]bson.M, error)
	ListReviews(ctx context.Context) ([]bson.M, error)
}

// Store is the full persistence surface needed by the HTTP layer.
type Store interface {
	UserStore
	CartStore
	CatalogStore
}
