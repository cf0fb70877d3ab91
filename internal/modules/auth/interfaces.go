package auth

import (
	"context"

	"minicrm/internal/apiclient"
	"minicrm/internal/domain"

	"github.com/gin-gonic/gin"
)

// API lists only the endpoints the auth pages call.
type API interface {
	Login(ctx context.Context, in apiclient.LoginInput) (*domain.Session, error)
	Signup(ctx context.Context, in apiclient.SignupInput) (*domain.Session, error)
}

// SessionKeeper starts and ends the browser session.
type SessionKeeper interface {
	Begin(c *gin.Context, sess domain.Session) error
	End(c *gin.Context)
}
