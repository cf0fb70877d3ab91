package admin

import (
	"context"

	"minicrm/internal/domain"

	"github.com/gin-gonic/gin"
)

// API is the user management surface; every call needs an admin token.
type API interface {
	ListUsers(ctx context.Context, token string) ([]domain.User, error)
	UpdateUserRole(ctx context.Context, token, id string, role domain.UserRole) error
	DeleteUser(ctx context.Context, token, id string) error
}

type SessionExpirer interface {
	Expire(c *gin.Context, err error) bool
}
