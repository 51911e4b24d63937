package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/arnobm97/Trial-Project-backend/internal/auth"
	"github.com/arnobm97/Trial-Project-backend/internal/http/respond"
	"github.com/arnobm97/Trial-Project-backend/internal/models/dto"
)

// TokenHandler issues bearer tokens binding an email identity.
type TokenHandler struct {
	tokens *auth.TokenManager
}

// NewTokenHandler constructs the handler.
func NewTokenHandler(tokens *auth.TokenManager) *TokenHandler {
	return &TokenHandler{tokens: tokens}
}

// Register attaches the token route to the mux.
func (h *TokenHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /jwt", h.handleIssue)
}

func (h *TokenHandler) handleIssue(w http.ResponseWriter, r *http.Request) {
	var req dto.TokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	token, err := h.tokens.Issue(req.Email)
	if err != nil {
		if errors.Is(err, auth.ErrEmailRequired) {
			respond.Error(w, http.StatusBadRequest, err.Error())
			return
		}
		respond.Error(w, http.StatusInternalServerError, "failed to issue token")
		return
	}
	respond.JSON(w, http.StatusOK, dto.TokenResponse{Token: token})
}
