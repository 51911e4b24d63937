package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/arnobm97/Trial-Project-backend/internal/auth"
	"github.com/arnobm97/Trial-Project-backend/internal/models"
	"github.com/arnobm97/Trial-Project-backend/internal/storage"
)

// memStore is an in-memory stand-in for the MongoDB store.
type memStore struct {
	mu      sync.RWMutex
	users   map[string]models.User
	carts   map[string]bson.M
	menu    []bson.M
	reviews []bson.M
}

var _ storage.Store = (*memStore)(nil)

func newMemStore() *memStore {
	return &memStore{
		users: make(map[string]models.User),
		carts: make(map[string]bson.M),
	}
}

func (s *memStore) CreateUser(ctx context.Context, user models.User) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == user.Email {
			return "", storage.ErrAlreadyExists
		}
	}
	user.ID = primitive.NewObjectID()
	s.users[user.ID.Hex()] = user
	return user.ID.Hex(), nil
}

func (s *memStore) FindByEmail(ctx context.Context, email string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return models.User{}, storage.ErrNotFound
}

func (s *memStore) ListUsers(ctx context.Context) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	return out, nil
}

func (s *memStore) AdminExists(ctx context.Context) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Role == models.RoleAdmin {
			return true, nil
		}
	}
	return false, nil
}

func (s *memStore) UpsertAdmin(ctx context.Context, user models.User) (storage.UpdateResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, u := range s.users {
		if u.Email == user.Email {
			u.Role = models.RoleAdmin
			u.UpdatedAt = user.UpdatedAt
			s.users[id] = u
			return storage.UpdateResult{Matched: 1, Modified: 1}, nil
		}
	}
	user.ID = primitive.NewObjectID()
	user.Role = models.RoleAdmin
	s.users[user.ID.Hex()] = user
	return storage.UpdateResult{UpsertedID: user.ID.Hex()}, nil
}

func (s *memStore) PromoteByID(ctx context.Context, id string) (storage.UpdateResult, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return storage.UpdateResult{}, storage.ErrInvalidID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return storage.UpdateResult{}, nil
	}
	modified := int64(0)
	if u.Role != models.RoleAdmin {
		u.Role = models.RoleAdmin
		s.users[id] = u
		modified = 1
	}
	return storage.UpdateResult{Matched: 1, Modified: modified}, nil
}

func (s *memStore) DeleteUserByID(ctx context.Context, id string) (storage.DeleteResult, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return storage.DeleteResult{}, storage.ErrInvalidID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return storage.DeleteResult{}, nil
	}
	delete(s.users, id)
	return storage.DeleteResult{Deleted: 1}, nil
}

func (s *memStore) ListCarts(ctx context.Context, email string) ([]bson.M, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]bson.M, 0, len(s.carts))
	for _, item := range s.carts {
		if email != "" && item["email"] != email {
			continue
		}
		out = append(out, item)
	}
	return out, nil
}

func (s *memStore) CreateCart(ctx context.Context, item bson.M) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := primitive.NewObjectID()
	stored := bson.M{"_id": id}
	for k, v := range item {
		stored[k] = v
	}
	s.carts[id.Hex()] = stored
	return id.Hex(), nil
}

func (s *memStore) DeleteCartByID(ctx context.Context, id string) (storage.DeleteResult, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return storage.DeleteResult{}, storage.ErrInvalidID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.carts[id]; !ok {
		return storage.DeleteResult{}, nil
	}
	delete(s.carts, id)
	return storage.DeleteResult{Deleted: 1}, nil
}

func (s *memStore) ListMenu(ctx context.Context) ([]bson.M, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.menu, nil
}

func (s *memStore) ListReviews(ctx context.Context) ([]bson.M, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.reviews, nil
}

// newTestServer wires the full route table over a fresh memStore.
func newTestServer() (*httptest.Server, *memStore, *auth.TokenManager) {
	store := newMemStore()
	tokens := auth.NewTokenManager("test-secret", "test", time.Hour)
	gate := auth.NewGate(store)

	mux := http.NewServeMux()
	NewRootHandler().Register(mux)
	NewTokenHandler(tokens).Register(mux)
	NewUsersHandler(store, gate, tokens).Register(mux)
	NewCatalogHandler(store).Register(mux)
	NewCartsHandler(store).Register(mux)

	return httptest.NewServer(mux), store, tokens
}
