package handlers

import (
	"context"
	"log"
	"net/http"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/arnobm97/Trial-Project-backend/internal/http/respond"
	"github.com/arnobm97/Trial-Project-backend/internal/storage"
)

// CatalogHandler serves the read-only menu and reviews collections.
type CatalogHandler struct {
	store storage.CatalogStore
}

// NewCatalogHandler constructs the handler.
func NewCatalogHandler(store storage.CatalogStore) *CatalogHandler {
	return &CatalogHandler{store: store}
}

// Register attaches catalog routes to the mux.
func (h *CatalogHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /menu", h.handleMenu)
	mux.HandleFunc("GET /reviews", h.handleReviews)
}

func (h *CatalogHandler) handleMenu(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, "menu", h.store.ListMenu)
}

func (h *CatalogHandler) handleReviews(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, "reviews", h.store.ListReviews)
}

func (h *CatalogHandler) list(w http.ResponseWriter, r *http.Request, name string, fetch func(context.Context) ([]bson.M, error)) {
	docs, err := fetch(r.Context())
	if err != nil {
		log.Printf("list %s error: %v", name, err)
		respond.Error(w, http.StatusInternalServerError, "failed to list "+name)
		return
	}
	if docs == nil {
		docs = []bson.M{}
	}
	respond.JSON(w, http.StatusOK, docs)
}
