package mapper

import (
	"time"

	"github.com/Apurer/go-gin-storefront/internal/domains/identity/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/identity/ports"
)

// RegisterRequest is the sign-up payload.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the sign-in payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ProfileRequest updates the caller's profile. Omitted fields stay unchanged.
type ProfileRequest struct {
	Name      *string          `json:"name"`
	Avatar    *string          `json:"avatar"`
	Addresses []domain.Address `json:"addresses"`
}

// User is the public account view. The password hash never leaves the service.
type User struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	Email           string           `json:"email"`
	Avatar          string           `json:"avatar,omitempty"`
	Role            string           `json:"role"`
	Addresses       []domain.Address `json:"addresses"`
	IsEmailVerified bool             `json:"isEmailVerified"`
	CreatedAt       time.Time        `json:"createdAt"`
	UpdatedAt       time.Time        `json:"updatedAt"`
}

// Session is returned by login and registration.
type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      User      `json:"user"`
}

func ToRegisterInput(req RegisterRequest) ports.RegisterInput {
	return ports.RegisterInput{Name: req.Name, Email: req.Email, Password: req.Password}
}

func ToProfileUpdate(req ProfileRequest) ports.ProfileUpdate {
	return ports.ProfileUpdate{Name: req.Name, Avatar: req.Avatar, Addresses: req.Addresses}
}

func FromDomainUser(user *domain.User) User {
	if user == nil {
		return User{}
	}
	addresses := user.Addresses
	if addresses == nil {
		addresses = []domain.Address{}
	}
	return User{
		ID:              user.ID,
		Name:            user.Name,
		Email:           user.Email,
		Avatar:          user.Avatar,
		Role:            string(user.Role),
		Addresses:       addresses,
		IsEmailVerified: user.IsEmailVerified,
		CreatedAt:       user.CreatedAt,
		UpdatedAt:       user.UpdatedAt,
	}
}

func FromAuthResult(result *ports.AuthResult) Session {
	if result == nil {
		return Session{}
	}
	return Session{Token: result.Token, ExpiresAt: result.ExpiresAt, User: FromDomainUser(result.User)}
}
