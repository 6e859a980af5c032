// Package dto defines Data Transfer Objects for authentication.
package dto

// LoginRequest represents the JSON request body for the owner login
// endpoint.
//
// @Description Request to authenticate the shop owner
// @Example {"email": "owner@kalakaari.in", "password": "password123"}
type LoginRequest struct {
	// Email is the owner's email address.
	Email string `json:"email" binding:"required,email" example:"owner@kalakaari.in"`
	// Password is the owner's password.
	Password string `json:"password" binding:"required,min=6" example:"password123"`
} // @name LoginRequest

// LoginResponse represents the JSON response body for the login endpoint.
//
// @Description Successful authentication response with JWT tokens
type LoginResponse struct {
	// Token is the JWT access token.
	Token string `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	// RefreshToken is the JWT refresh token.
	RefreshToken string `json:"refresh_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	// Owner contains the authenticated owner information.
	Owner OwnerResponse `json:"owner"`
} // @name LoginResponse

// TokenPair represents access and refresh tokens.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"` // seconds
}

// Claims represents JWT claims. Lives here rather than in the service
// package so middleware can use it without an import cycle.
type Claims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// OwnerResponse represents owner information in API responses.
type OwnerResponse struct {
	// Email is the owner's email address.
	Email string `json:"email" example:"owner@kalakaari.in"`
	// Name is the owner's display name.
	Name string `json:"name,omitempty" example:"Kalakaari Crafts"`
} // @name OwnerResponse

// Validate performs custom validation on the login request.
func (r *LoginRequest) Validate() error {
	if r.Email == "" {
		return &ValidationError{
			Field:   "email",
			Message: "email is required",
		}
	}
	if len(r.Password) < 6 {
		return &ValidationError{
			Field:   "password",
			Message: "password must be at least 6 characters",
		}
	}
	return nil
}
