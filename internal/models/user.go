package models

import (
	"strings"
	"time"

	"github.com/budgetwise/backend/internal/ledger"
	"github.com/budgetwise/backend/internal/types"
	"gorm.io/gorm"
)

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleUser    Role = "user"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleManager || r == RoleUser
}

// PermissionApproveExpenses allows a user to approve and reject expenses regardless of the role.
const PermissionApproveExpenses = "approve_expenses"

// User is an account that can log in to the API.
//
// TokenVersion is embedded into issued tokens. Incrementing it invalidates
// all tokens issued before.
type User struct {
	DefaultModel
	Name         string
	Email        string `gorm:"uniqueIndex"`
	PasswordHash string
	Role         Role
	Department   string
	Permissions  types.StringSet
	IsActive     bool
	TokenVersion int
	LastLogin    *time.Time
}

func (u *User) BeforeSave(_ *gorm.DB) error {
	u.normalize()

	if u.Role == "" {
		u.Role = RoleUser
	}

	if u.Permissions == nil {
		u.Permissions = types.StringSet{}
	}

	return nil
}

func (u *User) normalize() {
	u.Name = strings.TrimSpace(u.Name)
	u.Email = NormalizeEmail(u.Email)
	u.Department = strings.TrimSpace(u.Department)

	if u.Permissions != nil {
		u.Permissions = types.NewStringSet(u.Permissions...)
	}
}

func (u *User) AfterSave(_ *gorm.DB) error {
	if !u.Role.Valid() {
		return ErrInvalidRole
	}

	return nil
}

// NormalizeEmail returns the email address in the form it is stored in.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// CanApprove reports if the user may approve and reject expenses.
func (u User) CanApprove() bool {
	return u.Role == RoleAdmin || u.Role == RoleManager || u.Permissions.Has(PermissionApproveExpenses)
}

// Actor returns the user as the actor of an approval.
func (u User) Actor() ledger.Actor {
	return ledger.Actor{Name: u.Name, Email: u.Email}
}

// UpdateUser writes the selected fields of patch to the user.
func UpdateUser(db *gorm.DB, u *User, fields []any, patch User) error {
	patch.normalize()

	err := db.Model(u).Select("", fields...).Updates(patch).Error
	if err != nil {
		return err
	}

	return reload(db, u, u.ID)
}

// SetPassword stores the new password hash and invalidates all issued tokens.
func SetPassword(db *gorm.DB, u *User, hash string) error {
	return bumpTokenVersion(db, u, map[string]any{"password_hash": hash})
}

// SetActive activates or deactivates the user and invalidates all issued tokens.
func SetActive(db *gorm.DB, u *User, active bool) error {
	return bumpTokenVersion(db, u, map[string]any{"is_active": active})
}

// bumpTokenVersion writes the columns and increments the token version in
// the same statement, then reloads the user.
func bumpTokenVersion(db *gorm.DB, u *User, columns map[string]any) error {
	columns["token_version"] = gorm.Expr("token_version + ?", 1)

	err := db.Model(u).Updates(columns).Error
	if err != nil {
		return err
	}

	return reload(db, u, u.ID)
}

// TouchLogin records a successful login.
func TouchLogin(db *gorm.DB, u *User) error {
	now := time.Now().In(time.UTC)
	return db.Model(u).Select("LastLogin").Updates(User{LastLogin: &now}).Error
}
