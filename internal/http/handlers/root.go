package handlers

import (
	"net/http"

	"github.com/arnobm97/Trial-Project-backend/internal/http/respond"
)

// RootHandler serves the service-identity route.
type RootHandler struct{}

// NewRootHandler creates the root endpoint handler.
func NewRootHandler() *RootHandler {
	return &RootHandler{}
}

// Register wires the handler into a ServeMux.
func (h *RootHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", h.handle)
}

func (h *RootHandler) handle(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, map[string]string{
		"message": "food ordering backend is running",
	})
}
