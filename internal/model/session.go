package model

import (
	"time"

	"github.com/google/uuid"
)

// User is the profile returned by the auth endpoints and cached locally.
type User struct {
	ID    string `json:"_id,omitempty"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Session is the authenticated identity on the client. A nil *Session
// means anonymous mode.
type Session struct {
	Token string
	User  User
}

// Credentials is the login request payload.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SignupRequest is the signup request payload.
type SignupRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=128"`
}

// AuthResponse is returned by login and signup.
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Account is the server-side user record.
type Account struct {
	ID           uuid.UUID `db:"id"`
	Name         string    `db:"name"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}

// Profile returns the public view of the account.
func (a *Account) Profile() User {
	return User{
		ID:    a.ID.String(),
		Name:  a.Name,
		Email: a.Email,
	}
}

// AddToCartRequest is the body of POST /cart/add.
type AddToCartRequest struct {
	ItemID   string `json:"itemId" validate:"required"`
	Quantity int    `json:"quantity" validate:"gte=1,lte=1000"`
}

// CartResponse wraps a cart the way the API returns it.
type CartResponse struct {
	Cart Cart `json:"cart"`
}
