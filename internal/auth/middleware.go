package auth

import (
	"errors"
	"net/http"
	"slices"
	"strings"

	"github.com/budgetwise/backend/internal/httperror"
	"github.com/budgetwise/backend/internal/models"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const userKey = "budget-user"

var (
	ErrMissingToken    = errors.New("authentication required: send a bearer token in the Authorization header")
	ErrUserInactive    = errors.New("the user account is deactivated")
	ErrTokenRevoked    = errors.New("the token has been revoked, please log in again")
	ErrForbidden       = errors.New("you are not allowed to perform this action")
	ErrUnauthenticated = errors.New("no authenticated user")
)

// Middleware authenticates the request with the bearer token and stores
// the user in the context.
//
// Tokens of deactivated users and tokens issued before the last change of
// the user's token version are rejected.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			httperror.Abort(c, http.StatusUnauthorized, ErrMissingToken)
			return
		}

		claims, err := Parse(strings.TrimSpace(token))
		if err != nil {
			httperror.Abort(c, http.StatusUnauthorized, err)
			return
		}

		var user models.User
		err = models.DB.First(&user, "id = ?", claims.UserID).Error
		if err != nil {
			if errors.Is(err, models.ErrResourceNotFound) {
				httperror.Abort(c, http.StatusUnauthorized, ErrTokenInvalid)
				return
			}

			log.Error().Str("request-id", requestid.Get(c)).Msgf("%T: %v", err, err.Error())
			httperror.Abort(c, http.StatusInternalServerError, models.ErrGeneral)
			return
		}

		if !user.IsActive {
			httperror.Abort(c, http.StatusUnauthorized, ErrUserInactive)
			return
		}

		if user.TokenVersion != claims.TokenVersion {
			httperror.Abort(c, http.StatusUnauthorized, ErrTokenRevoked)
			return
		}

		c.Set(userKey, user)
		c.Next()
	}
}

// CurrentUser returns the user authenticated by Middleware.
func CurrentUser(c *gin.Context) (models.User, error) {
	v, ok := c.Get(userKey)
	if !ok {
		return models.User{}, ErrUnauthenticated
	}

	user, ok := v.(models.User)
	if !ok {
		return models.User{}, ErrUnauthenticated
	}

	return user, nil
}

func guard(allowed func(models.User) bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := CurrentUser(c)
		if err != nil {
			httperror.Abort(c, http.StatusUnauthorized, err)
			return
		}

		if !allowed(user) {
			httperror.Abort(c, http.StatusForbidden, ErrForbidden)
			return
		}

		c.Next()
	}
}

// RequireRole only lets users with one of the roles pass.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	return guard(func(u models.User) bool {
		return slices.Contains(roles, u.Role)
	})
}

// RequireApprover only lets users pass that may approve expenses.
func RequireApprover() gin.HandlerFunc {
	return guard(models.User.CanApprove)
}
