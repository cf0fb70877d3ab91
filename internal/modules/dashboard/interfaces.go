package dashboard

import (
	"context"

	"minicrm/internal/domain"

	"github.com/gin-gonic/gin"
)

type StatsReader interface {
	DashboardStats(ctx context.Context, token string) (*domain.DashboardStats, error)
}

type SessionExpirer interface {
	Expire(c *gin.Context, err error) bool
}
