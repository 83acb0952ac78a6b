package test

import (
	"testing"

	"github.com/budgetwise/backend/internal/auth"
	"github.com/budgetwise/backend/internal/config"
	"github.com/budgetwise/backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// Password is the password of all users created with CreateUser.
const Password = "correct horse battery staple"

// CreateUser stores an active user with the role. Name and email are
// generated when empty.
func CreateUser(t *testing.T, user models.User) models.User {
	if user.Email == "" {
		user.Email = uuid.NewString() + "@example.com"
	}

	if user.Name == "" {
		user.Name = "Test User"
	}

	if user.Role == "" {
		user.Role = models.RoleUser
	}

	user.IsActive = true

	hash, err := auth.HashPassword(Password)
	require.Nil(t, err)
	user.PasswordHash = hash

	err = models.DB.Create(&user).Error
	require.Nil(t, err, "User could not be saved: %#v", user)

	return user
}

// Authorization returns the header for requests authenticated as the user.
func Authorization(t *testing.T, user models.User) map[string]string {
	cfg, err := config.Load()
	require.Nil(t, err)
	require.Nil(t, auth.Configure(cfg.JWT.Secret, cfg.JWT.TTL), "Token signing could not be configured")

	token, _, err := auth.Issue(user)
	require.Nil(t, err, "Token could not be issued")

	return map[string]string{"Authorization": "Bearer " + token}
}

// AsRole creates a user with the role and returns the authorization header for it.
func AsRole(t *testing.T, role models.Role) map[string]string {
	return Authorization(t, CreateUser(t, models.User{Role: role}))
}
