package dto

type TokenRequest struct {
	Email string `json:"email"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

// RegisterRequest is the accepted shape for POST /users and POST /users/admin.
// Unknown fields are rejected at decode time.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Status   string `json:"status"`
}

type AdminStatusResponse struct {
	Admin bool `json:"admin"`
}

type InsertResponse struct {
	InsertedID string `json:"insertedId"`
}
