package handler

import (
	"time"

	"github.com/medicocare/hospital-portal/internal/core/domain"
)

// --- Requests ---

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	// From is the protected path that sent the user to the login screen.
	From string `json:"from,omitempty"`
}

type registerRequest struct {
	Name            string `json:"name" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,password_policy"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
	Phone           string `json:"phone" validate:"required"`
	DateOfBirth     string `json:"dateOfBirth" validate:"required"`
	Address         string `json:"address" validate:"required"`
	Role            string `json:"role" validate:"required,role"`
	Specialization  string `json:"specialization,omitempty"`
	AssignedDoctor  string `json:"assignedDoctor,omitempty"`
	Department      string `json:"department,omitempty"`
}

type profileRequest struct {
	Name           *string `json:"name,omitempty"`
	Email          *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone          *string `json:"phone,omitempty"`
	DateOfBirth    *string `json:"dateOfBirth,omitempty"`
	Address        *string `json:"address,omitempty"`
	Specialization *string `json:"specialization,omitempty"`
	AssignedDoctor *string `json:"assignedDoctor,omitempty"`
	Department     *string `json:"department,omitempty"`
}

type passwordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
}

type avatarRequest struct {
	Image string `json:"image" validate:"required"`
}

type languageRequest struct {
	Language string `json:"language" validate:"required,locale"`
}

// --- Responses ---

type userResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Role           string    `json:"role"`
	Phone          string    `json:"phone,omitempty"`
	DateOfBirth    string    `json:"dateOfBirth,omitempty"`
	Address        string    `json:"address,omitempty"`
	Specialization string    `json:"specialization,omitempty"`
	AssignedDoctor string    `json:"assignedDoctor,omitempty"`
	Department     string    `json:"department,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

type authResponse struct {
	Token    string        `json:"token,omitempty"`
	User     *userResponse `json:"user"`
	Redirect string        `json:"redirect"`
}

type sessionResponse struct {
	Status string            `json:"status"`
	User   *userResponse     `json:"user,omitempty"`
	Menu   []domain.MenuItem `json:"menu,omitempty"`
}

type viewResponse struct {
	View string            `json:"view"`
	User *userResponse     `json:"user,omitempty"`
	Menu []domain.MenuItem `json:"menu,omitempty"`
	From string            `json:"from,omitempty"`
}

type avatarResponse struct {
	Image string `json:"image"`
}

type languageResponse struct {
	Language string `json:"language"`
}

type usersResponse struct {
	Users []*userResponse `json:"users"`
	Total int             `json:"total"`
}
