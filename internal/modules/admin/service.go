package admin

import (
	"context"

	"minicrm/internal/domain"
)

type Service struct {
	api API
}

func NewService(api API) *Service {
	return &Service{api: api}
}

// List always fetches the full user list; filtering happens here.
func (s *Service) List(ctx context.Context, sess *domain.Session, f Filter) (*Board, error) {
	users, err := s.api.ListUsers(ctx, sess.Token)
	if err != nil {
		return nil, err
	}
	return &Board{Users: f.Apply(users), Total: len(users), Filter: f}, nil
}

// ChangeRole applies immediately; there is no confirmation step.
func (s *Service) ChangeRole(ctx context.Context, sess *domain.Session, id string, form RoleForm) error {
	role, ok := domain.ParseUserRole(form.Role)
	if !ok {
		return domain.NewValidationError("Role", "oneof")
	}
	return s.api.UpdateUserRole(ctx, sess.Token, id, role)
}

// Delete removes the user once confirmed. Without confirmation nothing is
// sent.
func (s *Service) Delete(ctx context.Context, sess *domain.Session, id string, confirmed bool) error {
	if !confirmed {
		return nil
	}
	return s.api.DeleteUser(ctx, sess.Token, id)
}
