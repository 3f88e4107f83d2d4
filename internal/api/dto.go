package api

import (
	"time"

	"github.com/starford/folio/internal/catalog"
	"github.com/starford/folio/internal/portfolio"
)

// Project is a merged project as served by the API.
type Project = catalog.Project

// Certificate is a merged certificate as served by the API.
type Certificate = catalog.Certificate

// ContactRequest is the request body for the contact form.
type ContactRequest = portfolio.ContactInput

// ContactResponse is returned after a contact message is stored.
type ContactResponse struct {
	Message string `json:"message" example:"Contact form submitted successfully" validate:"required"`
	ID      string `json:"id" example:"8c1f..." validate:"required"`
}

// LoginRequest is the request body for admin login.
type LoginRequest struct {
	Email    string `json:"email" example:"admin@example.com" validate:"required"`
	Password string `json:"password" example:"secret" validate:"required"`
}

// LoginUser is the public view of the logged-in user.
type LoginUser struct {
	ID    string `json:"id" validate:"required"`
	Email string `json:"email" validate:"required"`
}

// LoginResponse is returned after a successful login.
type LoginResponse struct {
	Message string    `json:"message" example:"Login successful" validate:"required"`
	Token   string    `json:"token" validate:"required"`
	User    LoginUser `json:"user" validate:"required"`
}

// MessageDTO is a stored contact message.
type MessageDTO struct {
	ID        string    `json:"_id" validate:"required"`
	Name      string    `json:"name" validate:"required"`
	Email     string    `json:"email" validate:"required"`
	Message   string    `json:"message" validate:"required"`
	CreatedAt time.Time `json:"createdAt" validate:"required"`
	UpdatedAt time.Time `json:"updatedAt" validate:"required"`
}

// StatsResponse reports collection counts and sample titles.
type StatsResponse = portfolio.Stats

// HealthResponse is returned by the health probes.
type HealthResponse struct {
	Status string `json:"status" example:"ok" validate:"required"`
	Store  string `json:"store,omitempty" example:"ready"`
}
