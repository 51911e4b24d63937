package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/arnobm97/Trial-Project-backend/internal/auth"
	"github.com/arnobm97/Trial-Project-backend/internal/http/respond"
	"github.com/arnobm97/Trial-Project-backend/internal/middleware"
	"github.com/arnobm97/Trial-Project-backend/internal/models"
	"github.com/arnobm97/Trial-Project-backend/internal/models/dto"
	"github.com/arnobm97/Trial-Project-backend/internal/storage"
)

// UsersHandler owns account registration, listing, promotion, and deletion.
type UsersHandler struct {
	store  storage.UserStore
	gate   *auth.Gate
	tokens *auth.TokenManager
}

// NewUsersHandler constructs the handler.
func NewUsersHandler(store storage.UserStore, gate *auth.Gate, tokens *auth.TokenManager) *UsersHandler {
	return &UsersHandler{store: store, gate: gate, tokens: tokens}
}

// Register attaches user routes to the mux. Admin creation stays outside the
// authentication middleware because the bootstrap call is unauthenticated.
func (h *UsersHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /users", h.handleRegister)
	mux.HandleFunc("POST /users/admin", h.handleCreateAdmin)
	mux.HandleFunc("GET /users", middleware.Authenticate(h.tokens, h.handleList))
	mux.HandleFunc("GET /users/admin/{email}", middleware.Authenticate(h.tokens, h.handleAdminStatus))
	mux.HandleFunc("PATCH /users/admin/{id}", middleware.Authenticate(h.tokens, h.handlePromote))
	mux.HandleFunc("DELETE /users/{id}", middleware.Authenticate(h.tokens, h.handleDelete))
}

func (h *UsersHandler) handleRegister(w http.ResponseWriter, r *http.Request) {
	req, err := decodeRegisterRequest(r)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	_, err = h.store.FindByEmail(r.Context(), req.Email)
	if err == nil {
		respond.JSON(w, http.StatusOK, map[string]string{"message": "user already exists"})
		return
	}
	if !errors.Is(err, storage.ErrNotFound) {
		log.Printf("find user error: %v", err)
		respond.Error(w, http.StatusInternalServerError, "failed to look up user")
		return
	}

	user, err := buildUser(req, models.RoleUser)
	if err != nil {
		respond.Error(w, http.StatusInternalServerError, "failed to hash password")
		return
	}
	id, err := h.store.CreateUser(r.Context(), user)
	if err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			respond.JSON(w, http.StatusOK, map[string]string{"message": "user already exists"})
			return
		}
		log.Printf("create user error: %v", err)
		respond.Error(w, http.StatusInternalServerError, "failed to create user")
		return
	}
	respond.JSON(w, http.StatusCreated, dto.InsertResponse{InsertedID: id})
}

func (h *UsersHandler) handleCreateAdmin(w http.ResponseWriter, r *http.Request) {
	req, err := decodeRegisterRequest(r)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	exists, err := h.store.AdminExists(r.Context())
	if err != nil {
		log.Printf("admin existence check error: %v", err)
		respond.Error(w, http.StatusInternalServerError, "failed to check admin state")
		return
	}
	if exists {
		claims, err := h.tokens.Authenticate(r)
		if err != nil {
			respond.Error(w, http.StatusUnauthorized, err.Error())
			return
		}
		if !h.gate.IsAdmin(r.Context(), claims.Email) {
			respond.Error(w, http.StatusForbidden, "access denied")
			return
		}
	}

	// The existence check and the upsert are not atomic: two concurrent
	// bootstrap calls can both observe "no admin" and both succeed.
	user, err := buildUser(req, models.RoleAdmin)
	if err != nil {
		respond.Error(w, http.StatusInternalServerError, "failed to hash password")
		return
	}
	result, err := h.store.UpsertAdmin(r.Context(), user)
	if err != nil {
		log.Printf("upsert admin error: %v", err)
		respond.Error(w, http.StatusInternalServerError, "failed to create admin")
		return
	}
	respond.JSON(w, http.StatusOK, result)
}

func (h *UsersHandler) handleList(w http.ResponseWriter, r *http.Request) {
	if !h.callerIsAdmin(r) {
		respond.Error(w, http.StatusForbidden, "access denied")
		return
	}
	users, err := h.store.ListUsers(r.Context())
	if err != nil {
		log.Printf("list users error: %v", err)
		respond.Error(w, http.StatusInternalServerError, "failed to list users")
		return
	}
	if users == nil {
		users = []models.User{}
	}
	respond.JSON(w, http.StatusOK, users)
}

// handleAdminStatus lets a caller query their own admin status freely;
// querying another email requires the gate to pass.
func (h *UsersHandler) handleAdminStatus(w http.ResponseWriter, r *http.Request) {
	target := r.PathValue("email")
	claims, ok := middleware.Identity(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, auth.ErrMissingToken.Error())
		return
	}
	if claims.Email != target && !h.gate.IsAdmin(r.Context(), claims.Email) {
		respond.Error(w, http.StatusForbidden, "access denied")
		return
	}
	respond.JSON(w, http.StatusOK, dto.AdminStatusResponse{
		Admin: h.gate.IsAdmin(r.Context(), target),
	})
}

func (h *UsersHandler) handlePromote(w http.ResponseWriter, r *http.Request) {
	if !h.callerIsAdmin(r) {
		respond.Error(w, http.StatusForbidden, "access denied")
		return
	}
	result, err := h.store.PromoteByID(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, storage.ErrInvalidID) {
			respond.Error(w, http.StatusBadRequest, "invalid user id")
			return
		}
		log.Printf("promote user error: %v", err)
		respond.Error(w, http.StatusInternalServerError, "failed to update user")
		return
	}
	respond.JSON(w, http.StatusOK, result)
}

func (h *UsersHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if !h.callerIsAdmin(r) {
		respond.Error(w, http.StatusForbidden, "access denied")
		return
	}
	result, err := h.store.DeleteUserByID(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, storage.ErrInvalidID) {
			respond.Error(w, http.StatusBadRequest, "invalid user id")
			return
		}
		log.Printf("delete user error: %v", err)
		respond.Error(w, http.StatusInternalServerError, "failed to delete user")
		return
	}
	respond.JSON(w, http.StatusOK, result)
}

func (h *UsersHandler) callerIsAdmin(r *http.Request) bool {
	claims, ok := middleware.Identity(r.Context())
	return ok && h.gate.IsAdmin(r.Context(), claims.Email)
}

func decodeRegisterRequest(r *http.Request) (dto.RegisterRequest, error) {
	var req dto.RegisterRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return dto.RegisterRequest{}, errors.New("invalid JSON payload")
	}
	if strings.TrimSpace(req.Email) == "" {
		return dto.RegisterRequest{}, auth.ErrEmailRequired
	}
	req.Email = strings.TrimSpace(req.Email)
	return req, nil
}

func buildUser(req dto.RegisterRequest, role models.Role) (models.User, error) {
	now := time.Now()
	user := models.User{
		Name:      strings.TrimSpace(req.Name),
		Email:     req.Email,
		Role:      role,
		Status:    strings.TrimSpace(req.Status),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if user.Status == "" {
		user.Status = "active"
	}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return models.User{}, err
		}
		user.PasswordHash = string(hash)
	}
	return user, nil
}
