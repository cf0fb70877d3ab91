package leads

import (
	"context"

	"minicrm/internal/apiclient"
	"minicrm/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// API is the lead surface of the CRM API.
type API interface {
	ListLeads(ctx context.Context, token string) ([]domain.Lead, error)
	CreateLead(ctx context.Context, token string, in apiclient.LeadInput) error
	UpdateLead(ctx context.Context, token, id string, in apiclient.LeadInput) error
	DeleteLead(ctx context.Context, token, id string) error
	ConvertLead(ctx context.Context, token, id string, value decimal.Decimal) (*domain.Lead, error)
}

// ViewCache keeps the last collection rendered for a session.
type ViewCache interface {
	LoadView(ctx context.Context, sess *domain.Session, view string, dst any) (bool, error)
	StoreView(ctx context.Context, sess *domain.Session, view string, v any) error
}

// SessionExpirer drops the session when the API stops accepting its token.
type SessionExpirer interface {
	Expire(c *gin.Context, err error) bool
}
