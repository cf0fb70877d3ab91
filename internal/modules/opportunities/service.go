package opportunities

import (
	"context"
	"log"

	"minicrm/internal/domain"
	"minicrm/internal/policy"
)

const viewName = "opportunities"

type Service struct {
	api   API
	views ViewCache
}

func NewService(api API, views ViewCache) *Service {
	return &Service{api: api, views: views}
}

func (s *Service) List(ctx context.Context, sess *domain.Session) (*Board, error) {
	opps, err := s.fetch(ctx, sess)
	if err != nil {
		return nil, err
	}
	return &Board{Opportunities: opps}, nil
}

// Cached returns the last table shown to the session without any request.
func (s *Service) Cached(ctx context.Context, sess *domain.Session) *Board {
	var opps []domain.Opportunity
	if ok, err := s.views.LoadView(ctx, sess, viewName, &opps); err != nil || !ok {
		opps = nil
	}
	return &Board{Opportunities: opps}
}

// Edit fetches the table and opens the value form for id.
func (s *Service) Edit(ctx context.Context, sess *domain.Session, id string) (*Board, error) {
	board, err := s.List(ctx, sess)
	if err != nil {
		return nil, err
	}
	i := indexOf(board.Opportunities, id)
	if i < 0 {
		return nil, ErrOpportunityNotFound
	}
	board.Editing = &board.Opportunities[i]
	board.EditValue = board.Editing.Value.String()
	return board, nil
}

// UpdateValue sets a new value. The caller re-fetches the table afterwards.
func (s *Service) UpdateValue(ctx context.Context, sess *domain.Session, id string, form ValueForm) error {
	value, err := domain.ParseValue(form.Value)
	if err != nil {
		return err
	}
	return s.api.UpdateOpportunityValue(ctx, sess.Token, id, value)
}

// UpdateStage moves an opportunity to any stage and patches only that record
// in the cached table. Setting the current stage again is harmless.
func (s *Service) UpdateStage(ctx context.Context, sess *domain.Session, id string, form StageForm) (*Board, error) {
	stage, ok := domain.ParseStage(form.Stage)
	if !ok {
		return nil, domain.NewValidationError("Stage", "oneof")
	}

	if err := s.api.UpdateOpportunityStage(ctx, sess.Token, id, stage); err != nil {
		return nil, err
	}

	var opps []domain.Opportunity
	ok, err := s.views.LoadView(ctx, sess, viewName, &opps)
	if err != nil || !ok {
		return s.List(ctx, sess)
	}

	if i := indexOf(opps, id); i >= 0 {
		opps[i].Stage = stage
		s.remember(ctx, sess, opps)
	}
	return &Board{Opportunities: opps}, nil
}

func (s *Service) fetch(ctx context.Context, sess *domain.Session) ([]domain.Opportunity, error) {
	opps, err := s.api.ListOpportunities(ctx, sess.Token)
	if err != nil {
		return nil, err
	}
	visible := policy.VisibleOpportunities(sess.User.Role, sess.User.ID, opps)
	s.remember(ctx, sess, visible)
	return visible, nil
}

func (s *Service) remember(ctx context.Context, sess *domain.Session, opps []domain.Opportunity) {
	if err := s.views.StoreView(ctx, sess, viewName, opps); err != nil {
		log.Printf("view_store_failed view=%s user_id=%s err=%v", viewName, sess.User.ID, err)
	}
}

func indexOf(opps []domain.Opportunity, id string) int {
	for i := range opps {
		if opps[i].ID == id {
			return i
		}
	}
	return -1
}
