package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/arnobm97/Trial-Project-backend/internal/models"
	"github.com/arnobm97/Trial-Project-backend/internal/storage"
)

// Ensure Store satisfies the storage interfaces at compile time.
var _ storage.Store = (*Store)(nil)

// Store provides MongoDB-backed persistence over the four collections.
type Store struct {
	client  *mongo.Client
	users   *mongo.Collection
	menu    *mongo.Collection
	reviews *mongo.Collection
	carts   *mongo.Collection
}

// NewStore connects to MongoDB and binds the named collections.
func NewStore(ctx context.Context, uri, database string) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	db := client.Database(database)
	return &Store{
		client:  client,
		users:   db.Collection("users"),
		menu:    db.Collection("menu"),
		reviews: db.Collection("reviews"),
		carts:   db.Collection("carts"),
	}, nil
}

// Close releases the client connection pool.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// CreateUser inserts a new user document and returns its generated id.
func (s *Store) CreateUser(ctx context.Context, user models.User) (string, error) {
	res, err := s.users.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", storage.ErrAlreadyExists
		}
		return "", fmt.Errorf("insert user: %w", err)
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	return oid.Hex(), nil
}

// FindByEmail fetches a user document by email.
func (s *Store) FindByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	err := s.users.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.User{}, storage.ErrNotFound
		}
		return models.User{}, fmt.Errorf("find user by email: %w", err)
	}
	return user, nil
}

// ListUsers returns every user document in storage order, without password hashes.
func (s *Store) ListUsers(ctx context.Context) ([]models.User, error) {
	opts := options.Find().SetProjection(bson.M{"password": 0})
	cur, err := s.users.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	return users, nil
}

// AdminExists reports whether any document carries the admin role.
func (s *Store) AdminExists(ctx context.Context) (bool, error) {
	n, err := s.users.CountDocuments(ctx, bson.M{"role": models.RoleAdmin},
		options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("count admins: %w", err)
	}
	return n > 0, nil
}

// UpsertAdmin sets the document for user.Email to the admin role, inserting
// it when absent.
func (s *Store) UpsertAdmin(ctx context.Context, user models.User) (storage.UpdateResult, error) {
	set := bson.M{
		"role":      models.RoleAdmin,
		"updatedAt": user.UpdatedAt,
	}
	if user.Name != "" {
		set["name"] = user.Name
	}
	if user.Status != "" {
		set["status"] = user.Status
	}
	if user.PasswordHash != "" {
		set["password"] = user.PasswordHash
	}
	update := bson.M{
		"$set":         set,
		"$setOnInsert": bson.M{"email": user.Email, "createdAt": user.CreatedAt},
	}
	res, err := s.users.UpdateOne(ctx, bson.M{"email": user.Email}, update,
		options.Update().SetUpsert(true))
	if err != nil {
		return storage.UpdateResult{}, fmt.Errorf("upsert admin: %w", err)
	}
	return toUpdateResult(res), nil
}

// PromoteByID sets the role of the identified user to admin.
func (s *Store) PromoteByID(ctx context.Context, id string) (storage.UpdateResult, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return storage.UpdateResult{}, storage.ErrInvalidID
	}
	res, err := s.users.UpdateOne(ctx, bson.M{"_id": oid},
		bson.M{"$set": bson.M{"role": models.RoleAdmin}})
	if err != nil {
		return storage.UpdateResult{}, fmt.Errorf("promote user: %w", err)
	}
	return toUpdateResult(res), nil
}

// DeleteUserByID removes the identified user document.
func (s *Store) DeleteUserByID(ctx context.Context, id string) (storage.DeleteResult, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return storage.DeleteResult{}, storage.ErrInvalidID
	}
	res, err := s.users.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return storage.DeleteResult{}, fmt.Errorf("delete user: %w", err)
	}
	return storage.DeleteResult{Deleted: res.DeletedCount}, nil
}

// ListCarts returns cart documents, optionally filtered by exact owner email.
func (s *Store) ListCarts(ctx context.Context, email string) ([]bson.M, error) {
	filter := bson.M{}
	if email != "" {
		filter["email"] = email
	}
	cur, err := s.carts.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list carts: %w", err)
	}
	var items []bson.M
	if err := cur.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("decode carts: %w", err)
	}
	return items, nil
}

// CreateCart inserts the payload as-is and returns the generated id.
func (s *Store) CreateCart(ctx context.Context, item bson.M) (string, error) {
	res, err := s.carts.InsertOne(ctx, item)
	if err != nil {
		return "", fmt.Errorf("insert cart item: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		return oid.Hex(), nil
	}
	return fmt.Sprintf("%v", res.InsertedID), nil
}

// DeleteCartByID removes the identified cart document.
func (s *Store) DeleteCartByID(ctx context.Context, id string) (storage.DeleteResult, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return storage.DeleteResult{}, storage.ErrInvalidID
	}
	res, err := s.carts.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return storage.DeleteResult{}, fmt.Errorf("delete cart item: %w", err)
	}
	return storage.DeleteResult{Deleted: res.DeletedCount}, nil
}

// ListMenu returns the menu collection in storage order.
func (s *Store) ListMenu(ctx context.Context) ([]bson.M, error) {
	return listAll(ctx, s.menu)
}

// ListReviews returns the reviews collection in storage order.
func (s *Store) ListReviews(ctx context.Context) ([]bson.M, error) {
	return listAll(ctx, s.reviews)
}

func listAll(ctx context.Context, coll *mongo.Collection) ([]bson.M, error) {
	cur, err := coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", coll.Name(), err)
	}
	var docs []bson.M
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode %s: %w", coll.Name(), err)
	}
	return docs, nil
}

func toUpdateResult(res *mongo.UpdateResult) storage.UpdateResult {
	out := storage.UpdateResult{
		Matched:  res.MatchedCount,
		Modified: res.ModifiedCount,
	}
	if oid, ok := res.UpsertedID.(primitive.ObjectID); ok {
		out.UpsertedID = oid.Hex()
	}
	return out
}
