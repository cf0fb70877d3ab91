package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"minicrm/internal/domain"

	"github.com/shopspring/decimal"
)

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignupInput struct {
	Name     string          `json:"name"`
	Email    string          `json:"email"`
	Password string          `json:"password"`
	Role     domain.UserRole `json:"role"`
}

type LeadInput struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

func (r authResponse) session() *domain.Session {
	if r.Token == "" || r.User == nil {
		return nil
	}
	return &domain.Session{Token: r.Token, User: *r.User}
}

func (c *Client) Login(ctx context.Context, in LoginInput) (*domain.Session, error) {
	var resp authResponse
	if err := c.Do(ctx, http.MethodPost, "/api/auth/login", "", in, &resp); err != nil {
		return nil, err
	}
	sess := resp.session()
	if sess == nil {
		return nil, &HTTPError{Method: http.MethodPost, Path: "/api/auth/login", Status: http.StatusBadGateway, Message: "login response without token"}
	}
	return sess, nil
}

// Signup registers a user. Some deployments log the user in right away and
// return a session; otherwise the returned session is nil.
func (c *Client) Signup(ctx context.Context, in SignupInput) (*domain.Session, error) {
	var resp authResponse
	if err := c.Do(ctx, http.MethodPost, "/api/auth/signup", "", in, &resp); err != nil {
		return nil, err
	}
	return resp.session(), nil
}

func (c *Client) DashboardStats(ctx context.Context, token string) (*domain.DashboardStats, error) {
	var stats domain.DashboardStats
	if err := c.Do(ctx, http.MethodGet, "/api/dashboard/stats", token, nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (c *Client) ListLeads(ctx context.Context, token string) ([]domain.Lead, error) {
	var leads []domain.Lead
	if err := c.Do(ctx, http.MethodGet, "/api/leads", token, nil, &leads); err != nil {
		return nil, err
	}
	return leads, nil
}

func (c *Client) CreateLead(ctx context.Context, token string, in LeadInput) error {
	return c.Do(ctx, http.MethodPost, "/api/leads", token, in, nil)
}

func (c *Client) UpdateLead(ctx context.Context, token, id string, in LeadInput) error {
	return c.Do(ctx, http.MethodPut, "/api/leads/"+url.PathEscape(id), token, in, nil)
}

func (c *Client) DeleteLead(ctx context.Context, token, id string) error {
	return c.Do(ctx, http.MethodDelete, "/api/leads/"+url.PathEscape(id), token, nil, nil)
}

// ConvertLead converts a lead; the API creates the opportunity. The returned
// lead is nil when the response did not carry one.
func (c *Client) ConvertLead(ctx context.Context, token, id string, value decimal.Decimal) (*domain.Lead, error) {
	body := map[string]any{"value": value.InexactFloat64()}
	var resp struct {
		Lead *domain.Lead `json:"lead"`
	}
	if err := c.Do(ctx, http.MethodPost, "/api/leads/"+url.PathEscape(id)+"/convert", token, body, &resp); err != nil {
		return nil, err
	}
	return resp.Lead, nil
}

func (c *Client) ListOpportunities(ctx context.Context, token string) ([]domain.Opportunity, error) {
	var opps []domain.Opportunity
	if err := c.Do(ctx, http.MethodGet, "/api/opportunities", token, nil, &opps); err != nil {
		return nil, err
	}
	return opps, nil
}

func (c *Client) UpdateOpportunityValue(ctx context.Context, token, id string, value decimal.Decimal) error {
	body := map[string]any{"value": value.InexactFloat64()}
	return c.Do(ctx, http.MethodPut, "/api/opportunities/"+url.PathEscape(id), token, body, nil)
}

func (c *Client) UpdateOpportunityStage(ctx context.Context, token, id string, stage domain.Stage) error {
	body := map[string]any{"stage": stage}
	return c.Do(ctx, http.MethodPut, "/api/opportunities/"+url.PathEscape(id), token, body, nil)
}

func (c *Client) ListUsers(ctx context.Context, token string) ([]domain.User, error) {
	var users []domain.User
	if err := c.Do(ctx, http.MethodGet, "/api/admin/users", token, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *Client) UpdateUserRole(ctx context.Context, token, id string, role domain.UserRole) error {
	body := map[string]any{"role": role}
	return c.Do(ctx, http.MethodPut, "/api/admin/users/"+url.PathEscape(id), token, body, nil)
}

func (c *Client) DeleteUser(ctx context.Context, token, id string) error {
	return c.Do(ctx, http.MethodDelete, "/api/admin/users/"+url.PathEscape(id), token, nil, nil)
}
