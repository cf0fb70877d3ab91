package auth

import (
	"context"
	"strings"

	"minicrm/internal/apiclient"
	"minicrm/internal/domain"
	"minicrm/internal/pkg/validator"
)

// Service validates the auth forms and exchanges them for an API session.
type Service struct {
	api API
}

func NewService(api API) *Service {
	return &Service{api: api}
}

func (s *Service) Login(ctx context.Context, form LoginForm) (*domain.Session, error) {
	form.Email = strings.TrimSpace(form.Email)
	if err := validator.Check(form); err != nil {
		return nil, err
	}
	return s.api.Login(ctx, apiclient.LoginInput{Email: form.Email, Password: form.Password})
}

// Signup registers a rep or manager. The returned session is nil when the
// API does not log the new user in.
func (s *Service) Signup(ctx context.Context, form SignupForm) (*domain.Session, error) {
	form.Name = strings.TrimSpace(form.Name)
	form.Email = strings.TrimSpace(form.Email)
	if err := validator.Check(form); err != nil {
		return nil, err
	}

	role, ok := domain.ParseUserRole(form.Role)
	if !ok || role == domain.RoleAdmin {
		return nil, ErrInvalidRole
	}

	return s.api.Signup(ctx, apiclient.SignupInput{
		Name:     form.Name,
		Email:    form.Email,
		Password: form.Password,
		Role:     role,
	})
}
