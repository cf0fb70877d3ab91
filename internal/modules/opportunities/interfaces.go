package opportunities

import (
	"context"

	"minicrm/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type API interface {
	ListOpportunities(ctx context.Context, token string) ([]domain.Opportunity, error)
	UpdateOpportunityValue(ctx context.Context, token, id string, value decimal.Decimal) error
	UpdateOpportunityStage(ctx context.Context, token, id string, stage domain.Stage) error
}

type ViewCache interface {
	LoadView(ctx context.Context, sess *domain.Session, view string, dst any) (bool, error)
	StoreView(ctx context.Context, sess *domain.Session, view string, v any) error
}

type SessionExpirer interface {
	Expire(c *gin.Context, err error) bool
}
