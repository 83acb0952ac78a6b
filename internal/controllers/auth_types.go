package controllers

import "time"

// Registration is the body for registering a new account.
type Registration struct {
	Name       string `json:"name" binding:"required,max=255" example:"Ada Lovelace"`
	Email      string `json:"email" binding:"required,email" example:"ada@example.com"`
	Password   string `json:"password" binding:"required,min=8" example:"correct horse battery staple"`
	Department string `json:"department" binding:"max=255" example:"Engineering"`
}

// Credentials is the body for logging in.
type Credentials struct {
	Email    string `json:"email" binding:"required,email" example:"ada@example.com"`
	Password string `json:"password" binding:"required" example:"correct horse battery staple"`
}

// Session is returned on registration, login and password changes.
type Session struct {
	Token     string    `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."` // Bearer token for the Authorization header
	ExpiresAt time.Time `json:"expiresAt" example:"2024-05-03T08:15:00Z"`                // Time the token expires
	User      User      `json:"user"`
}

// ProfileEditable contains the fields users can change on their own account.
type ProfileEditable struct {
	Name       string `json:"name" binding:"omitempty,max=255" example:"Ada Lovelace"`
	Email      string `json:"email" binding:"omitempty,email" example:"ada@example.com"`
	Department string `json:"department" binding:"max=255" example:"Engineering"`
}

// PasswordChange is the body for changing the own password.
type PasswordChange struct {
	CurrentPassword string `json:"currentPassword" binding:"required" example:"correct horse battery staple"`
	NewPassword     string `json:"newPassword" binding:"required,min=8" example:"tr0ub4dor&3"`
}

type (
	SessionResponse = Response[Session]
	ProfileResponse = Response[User]
)
