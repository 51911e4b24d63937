package auth

import (
	"context"
	"strings"

	"github.com/arnobm97/Trial-Project-backend/internal/models"
)

// UserFinder is the single lookup the gate needs from the store.
type UserFinder interface {
	FindByEmail(ctx context.Context, email string) (models.User, error)
}

// Gate answers whether an authenticated identity holds the admin role.
type Gate struct {
	users UserFinder
}

// NewGate constructs the gate over a user lookup.
func NewGate(users UserFinder) *Gate {
	return &Gate{users: users}
}

// IsAdmin reports whether the email's record exists with the admin role.
// Any lookup failure counts as non-admin.
func (g *Gate) IsAdmin(ctx context.Context, email string) bool {
	email = strings.TrimSpace(email)
	if email == "" {
		return false
	}
	user, err := g.users.FindByEmail(ctx, email)
	if err != nil {
		return false
	}
	return user.Role == models.RoleAdmin
}
