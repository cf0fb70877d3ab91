package leads

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"minicrm/internal/apiclient"
	"minicrm/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockAPI struct {
	mock.Mock
}

func (m *mockAPI) ListLeads(ctx context.Context, token string) ([]domain.Lead, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Lead), args.Error(1)
}

func (m *mockAPI) CreateLead(ctx context.Context, token string, in apiclient.LeadInput) error {
	return m.Called(ctx, token, in).Error(0)
}

func (m *mockAPI) UpdateLead(ctx context.Context, token, id string, in apiclient.LeadInput) error {
	return m.Called(ctx, token, id, in).Error(0)
}

func (m *mockAPI) DeleteLead(ctx context.Context, token, id string) error {
	return m.Called(ctx, token, id).Error(0)
}

func (m *mockAPI) ConvertLead(ctx context.Context, token, id string, value decimal.Decimal) (*domain.Lead, error) {
	args := m.Called(ctx, token, id, value)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Lead), args.Error(1)
}

// memViews stores views as JSON, like the real store does.
type memViews struct {
	data map[string][]byte
}

func newMemViews() *memViews {
	return &memViews{data: map[string][]byte{}}
}

func (v *memViews) LoadView(_ context.Context, sess *domain.Session, view string, dst any) (bool, error) {
	raw, ok := v.data[sess.Token+"/"+view]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dst)
}

func (v *memViews) StoreView(_ context.Context, sess *domain.Session, view string, val any) error {
	raw, err := json.Marshal(val)
	if err != nil {
		return err
	}
	v.data[sess.Token+"/"+view] = raw
	return nil
}

var (
	repSess     = &domain.Session{Token: "rep-token", User: domain.User{ID: "u1", Name: "Ann", Role: domain.RoleRep}}
	managerSess = &domain.Session{Token: "mgr-token", User: domain.User{ID: "m1", Name: "Meg", Role: domain.RoleManager}}
)

func sampleLeads() []domain.Lead {
	return []domain.Lead{
		{ID: "l1", Name: "Acme", Status: domain.LeadNew, Owner: domain.OwnerRef{ID: "u1", Name: "Ann"}},
		{ID: "l2", Name: "Globex", Status: domain.LeadQualified, Owner: domain.OwnerRef{ID: "u2"}},
		{ID: "l3", Name: "Initech", Status: domain.LeadContacted, Owner: domain.OwnerRef{ID: "u1"}},
	}
}

func TestService_List_RepSeesOwnLeads(t *testing.T) {
	api := new(mockAPI)
	api.On("ListLeads", mock.Anything, "rep-token").Return(sampleLeads(), nil)
	views := newMemViews()

	board, err := NewService(api, views).List(context.Background(), repSess)

	require.NoError(t, err)
	assert.True(t, board.CanMutate)
	require.Len(t, board.Leads, 2)
	assert.Equal(t, "l1", board.Leads[0].ID)
	assert.Equal(t, "l3", board.Leads[1].ID)
	assert.Contains(t, views.data, "rep-token/leads")
}

func TestService_List_ManagerReadOnly(t *testing.T) {
	api := new(mockAPI)
	api.On("ListLeads", mock.Anything, "mgr-token").Return(sampleLeads(), nil)

	board, err := NewService(api, newMemViews()).List(context.Background(), managerSess)

	require.NoError(t, err)
	assert.False(t, board.CanMutate)
	assert.Len(t, board.Leads, 3)
}

func TestService_Save(t *testing.T) {
	t.Run("invalid form sends nothing", func(t *testing.T) {
		api := new(mockAPI)
		err := NewService(api, newMemViews()).Save(context.Background(), repSess, "", LeadForm{Name: "Acme", Email: "nope"})

		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "email", verr.Fields["Email"])
		assert.Equal(t, "required", verr.Fields["Phone"])
		api.AssertNotCalled(t, "CreateLead", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("manager is forbidden", func(t *testing.T) {
		api := new(mockAPI)
		err := NewService(api, newMemViews()).Save(context.Background(), managerSess, "", LeadForm{Name: "A", Email: "a@b.co", Phone: "1"})
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("create and update", func(t *testing.T) {
		api := new(mockAPI)
		in := apiclient.LeadInput{Name: "Acme", Email: "a@acme.io", Phone: "555"}
		api.On("CreateLead", mock.Anything, "rep-token", in).Return(nil).Once()
		api.On("UpdateLead", mock.Anything, "rep-token", "l1", in).Return(nil).Once()
		svc := NewService(api, newMemViews())

		form := LeadForm{Name: " Acme ", Email: "a@acme.io", Phone: "555"}
		require.NoError(t, svc.Save(context.Background(), repSess, "", form))
		require.NoError(t, svc.Save(context.Background(), repSess, "l1", form))
		api.AssertExpectations(t)
	})
}

func TestService_Delete_RequiresConfirmation(t *testing.T) {
	api := new(mockAPI)
	api.On("DeleteLead", mock.Anything, "rep-token", "l1").Return(nil).Once()
	svc := NewService(api, newMemViews())

	require.NoError(t, svc.Delete(context.Background(), repSess, "l1", false))
	api.AssertNotCalled(t, "DeleteLead", mock.Anything, mock.Anything, mock.Anything)

	require.NoError(t, svc.Delete(context.Background(), repSess, "l1", true))
	api.AssertNumberOfCalls(t, "DeleteLead", 1)
}

func TestService_Convert_CancelSendsNothing(t *testing.T) {
	api := new(mockAPI)
	svc := NewService(api, newMemViews())

	for _, form := range []ConvertForm{
		{Action: "cancel", Value: "500"},
		{Action: "convert", Value: ""},
		{Action: "convert", Value: "   "},
	} {
		board, err := svc.Convert(context.Background(), repSess, "l1", form)
		require.NoError(t, err)
		assert.Nil(t, board)
	}
	assert.Empty(t, api.Calls)
}

func TestService_Convert_RejectsBadValues(t *testing.T) {
	api := new(mockAPI)
	svc := NewService(api, newMemViews())

	for _, raw := range []string{"-1", "abc", "1.2.3"} {
		_, err := svc.Convert(context.Background(), repSess, "l1", ConvertForm{Value: raw})
		var verr *domain.ValidationError
		assert.ErrorAs(t, err, &verr, raw)
	}
	assert.Empty(t, api.Calls)
}

func TestService_Convert_PatchesByID(t *testing.T) {
	api := new(mockAPI)
	api.On("ListLeads", mock.Anything, "rep-token").Return(sampleLeads(), nil).Once()
	returned := &domain.Lead{ID: "l3", Name: "Initech", Status: domain.LeadConverted, Owner: domain.OwnerRef{ID: "u1"}}
	api.On("ConvertLead", mock.Anything, "rep-token", "l3", mock.MatchedBy(func(d decimal.Decimal) bool {
		return d.Equal(decimal.NewFromInt(5000))
	})).Return(returned, nil).Once()

	svc := NewService(api, newMemViews())
	_, err := svc.List(context.Background(), repSess)
	require.NoError(t, err)

	board, err := svc.Convert(context.Background(), repSess, "l3", ConvertForm{Action: "convert", Value: "5000"})
	require.NoError(t, err)

	require.Len(t, board.Leads, 2)
	assert.Equal(t, domain.LeadNew, board.Leads[0].Status)
	assert.Equal(t, domain.LeadConverted, board.Leads[1].Status)
	// one list call only: the conversion patches the cached copy
	api.AssertNumberOfCalls(t, "ListLeads", 1)

	_, err = svc.Convert(context.Background(), repSess, "l3", ConvertForm{Value: "1"})
	assert.ErrorIs(t, err, ErrAlreadyConverted)
	api.AssertNumberOfCalls(t, "ConvertLead", 1)
}

func TestService_Convert_NoLeadInResponse(t *testing.T) {
	api := new(mockAPI)
	api.On("ListLeads", mock.Anything, "rep-token").Return(sampleLeads(), nil).Once()
	api.On("ConvertLead", mock.Anything, "rep-token", "l1", mock.Anything).Return(nil, nil).Once()

	board, err := NewService(api, newMemViews()).Convert(context.Background(), repSess, "l1", ConvertForm{Value: "0"})

	require.NoError(t, err)
	assert.Equal(t, domain.LeadConverted, board.Leads[0].Status)
	assert.Equal(t, "Acme", board.Leads[0].Name)
}

func TestService_Convert_APIErrorKeepsState(t *testing.T) {
	api := new(mockAPI)
	api.On("ListLeads", mock.Anything, "rep-token").Return(sampleLeads(), nil).Once()
	api.On("ConvertLead", mock.Anything, "rep-token", "l1", mock.Anything).
		Return(nil, &apiclient.HTTPError{Status: http.StatusInternalServerError})
	svc := NewService(api, newMemViews())

	_, err := svc.Convert(context.Background(), repSess, "l1", ConvertForm{Value: "10"})
	require.Error(t, err)

	board := svc.Cached(context.Background(), repSess)
	assert.Equal(t, domain.LeadNew, board.Leads[0].Status)
}

func TestBuildWorkbook(t *testing.T) {
	f, err := buildWorkbook(sampleLeads())
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(exportSheet)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"Name", "Email", "Phone", "Status", "Rep"}, rows[0])
	assert.Equal(t, "Acme", rows[1][0])
	assert.Equal(t, "Ann", rows[1][4])
	assert.Equal(t, "N/A", rows[2][4])
}
