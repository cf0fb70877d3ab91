package leads

import (
	"context"
	"log"
	"strings"

	"minicrm/internal/apiclient"
	"minicrm/internal/domain"
	"minicrm/internal/pkg/validator"
	"minicrm/internal/policy"
)

const viewName = "leads"

// Service holds the lead use cases. The leads last shown to a session are
// kept in the view cache so a conversion can patch one row in place.
type Service struct {
	api   API
	views ViewCache
}

func NewService(api API, views ViewCache) *Service {
	return &Service{api: api, views: views}
}

// List fetches all leads and keeps the ones the user may see.
func (s *Service) List(ctx context.Context, sess *domain.Session) (*Board, error) {
	leads, err := s.fetch(ctx, sess)
	if err != nil {
		return nil, err
	}
	return s.board(sess, leads), nil
}

// Cached returns the last list shown to the session without calling the API.
// The board is empty when nothing is cached.
func (s *Service) Cached(ctx context.Context, sess *domain.Session) *Board {
	var leads []domain.Lead
	if ok, err := s.views.LoadView(ctx, sess, viewName, &leads); err != nil || !ok {
		leads = nil
	}
	return s.board(sess, leads)
}

// Get returns one visible lead, preferring the cached list.
func (s *Service) Get(ctx context.Context, sess *domain.Session, id string) (*domain.Lead, error) {
	leads, err := s.cached(ctx, sess)
	if err != nil {
		return nil, err
	}
	if i := indexOf(leads, id); i >= 0 {
		return &leads[i], nil
	}
	return nil, ErrLeadNotFound
}

// Save creates the lead when id is empty and updates it otherwise. Invalid
// forms are rejected before any request is sent.
func (s *Service) Save(ctx context.Context, sess *domain.Session, id string, form LeadForm) error {
	if !policy.CanMutateLeads(sess.User.Role) {
		return domain.ErrForbidden
	}

	form.Name = strings.TrimSpace(form.Name)
	form.Email = strings.TrimSpace(form.Email)
	form.Phone = strings.TrimSpace(form.Phone)
	if err := validator.Check(form); err != nil {
		return err
	}

	in := apiclient.LeadInput{Name: form.Name, Email: form.Email, Phone: form.Phone}
	if id == "" {
		return s.api.CreateLead(ctx, sess.Token, in)
	}
	return s.api.UpdateLead(ctx, sess.Token, id, in)
}

// Delete removes the lead once the user has confirmed. Without confirmation
// nothing is sent.
func (s *Service) Delete(ctx context.Context, sess *domain.Session, id string, confirmed bool) error {
	if !confirmed {
		return nil
	}
	if !policy.CanMutateLeads(sess.User.Role) {
		return domain.ErrForbidden
	}
	return s.api.DeleteLead(ctx, sess.Token, id)
}

// Convert turns a lead into an opportunity of the given value. A cancelled
// prompt or an empty value returns (nil, nil) without any request. On
// success the lead is replaced by id in the cached list, which is returned.
func (s *Service) Convert(ctx context.Context, sess *domain.Session, id string, form ConvertForm) (*Board, error) {
	raw := strings.TrimSpace(form.Value)
	if form.Action == "cancel" || raw == "" {
		return nil, nil
	}
	if !policy.CanMutateLeads(sess.User.Role) {
		return nil, domain.ErrForbidden
	}

	value, err := domain.ParseValue(raw)
	if err != nil {
		return nil, err
	}

	leads, err := s.cached(ctx, sess)
	if err != nil {
		return nil, err
	}
	i := indexOf(leads, id)
	if i >= 0 && !policy.CanConvert(leads[i]) {
		return nil, ErrAlreadyConverted
	}

	converted, err := s.api.ConvertLead(ctx, sess.Token, id, value)
	if err != nil {
		return nil, err
	}

	if i < 0 {
		// Not in the cached list; a fresh fetch shows the new status.
		return s.List(ctx, sess)
	}
	if converted != nil {
		leads[i] = *converted
	} else {
		leads[i].Status = domain.LeadConverted
	}
	s.remember(ctx, sess, leads)
	return s.board(sess, leads), nil
}

func (s *Service) fetch(ctx context.Context, sess *domain.Session) ([]domain.Lead, error) {
	leads, err := s.api.ListLeads(ctx, sess.Token)
	if err != nil {
		return nil, err
	}
	visible := policy.VisibleLeads(sess.User.Role, sess.User.ID, leads)
	s.remember(ctx, sess, visible)
	return visible, nil
}

func (s *Service) cached(ctx context.Context, sess *domain.Session) ([]domain.Lead, error) {
	var leads []domain.Lead
	ok, err := s.views.LoadView(ctx, sess, viewName, &leads)
	if err != nil {
		log.Printf("view_load_failed view=%s user_id=%s err=%v", viewName, sess.User.ID, err)
	}
	if ok && err == nil {
		return leads, nil
	}
	return s.fetch(ctx, sess)
}

func (s *Service) remember(ctx context.Context, sess *domain.Session, leads []domain.Lead) {
	if err := s.views.StoreView(ctx, sess, viewName, leads); err != nil {
		log.Printf("view_store_failed view=%s user_id=%s err=%v", viewName, sess.User.ID, err)
	}
}

func (s *Service) board(sess *domain.Session, leads []domain.Lead) *Board {
	return &Board{Leads: leads, CanMutate: policy.CanMutateLeads(sess.User.Role)}
}

func indexOf(leads []domain.Lead, id string) int {
	for i := range leads {
		if leads[i].ID == id {
			return i
		}
	}
	return -1
}
