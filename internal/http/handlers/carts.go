package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/arnobm97/Trial-Project-backend/internal/http/respond"
	"github.com/arnobm97/Trial-Project-backend/internal/models/dto"
	"github.com/arnobm97/Trial-Project-backend/internal/storage"
)

// CartsHandler owns the public cart routes. Cart payloads are stored as-is,
// and deletion is not scoped to the owner.
type CartsHandler struct {
	store storage.CartStore
}

// NewCartsHandler constructs the handler.
func NewCartsHandler(store storage.CartStore) *CartsHandler {
	return &CartsHandler{store: store}
}

// Register attaches cart routes to the mux.
func (h *CartsHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /carts", h.handleList)
	mux.HandleFunc("POST /carts", h.handleCreate)
	mux.HandleFunc("DELETE /carts/{id}", h.handleDelete)
}

func (h *CartsHandler) handleList(w http.ResponseWriter, r *http.Request) {
	items, err := h.store.ListCarts(r.Context(), r.URL.Query().Get("email"))
	if err != nil {
		log.Printf("list carts error: %v", err)
		respond.Error(w, http.StatusInternalServerError, "failed to list cart items")
		return
	}
	if items == nil {
		items = []bson.M{}
	}
	respond.JSON(w, http.StatusOK, items)
}

func (h *CartsHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var item bson.M
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	id, err := h.store.CreateCart(r.Context(), item)
	if err != nil {
		log.Printf("create cart item error: %v", err)
		respond.Error(w, http.StatusInternalServerError, "failed to create cart item")
		return
	}
	respond.JSON(w, http.StatusCreated, dto.InsertResponse{InsertedID: id})
}

func (h *CartsHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	result, err := h.store.DeleteCartByID(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, storage.ErrInvalidID) {
			respond.Error(w, http.StatusBadRequest, "invalid cart id")
			return
		}
		log.Printf("delete cart item error: %v", err)
		respond.Error(w, http.StatusInternalServerError, "failed to delete cart item")
		return
	}
	respond.JSON(w, http.StatusOK, result)
}
