package dashboard

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"minicrm/internal/apiclient"
	"minicrm/internal/domain"
	"minicrm/internal/policy"
	"minicrm/internal/web"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockStats struct {
	mock.Mock
}

func (m *mockStats) DashboardStats(ctx context.Context, token string) (*domain.DashboardStats, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DashboardStats), args.Error(1)
}

func keys(rows []Row) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Key)
	}
	return out
}

func TestBuild_OrderAndColors(t *testing.T) {
	view := Build(domain.RoleManager, &domain.DashboardStats{
		Leads:         map[string]int{"Converted": 1, "New": 4, "Archived": 2, "Contacted": 3},
		Opportunities: map[string]int{"Won": 2, "Discovery": 5, "Lost": 1},
	})

	assert.Equal(t, "Manager Dashboard", view.Title)
	require.Len(t, view.Groups, 2)

	leads := view.Groups[0]
	assert.Equal(t, "/leads", leads.Target)
	assert.Equal(t, []string{"New", "Contacted", "Converted", "Archived"}, keys(leads.Rows))
	assert.Equal(t, 4, leads.Rows[0].Count)
	assert.Equal(t, policy.ColorFor("New"), leads.Rows[0].Color)
	assert.Equal(t, policy.FallbackColor, leads.Rows[3].Color)

	opps := view.Groups[1]
	assert.Equal(t, "/opportunities", opps.Target)
	assert.Equal(t, []string{"Discovery", "Won", "Lost"}, keys(opps.Rows))
}

func TestBuild_EmptyGroupings(t *testing.T) {
	view := Build(domain.RoleRep, &domain.DashboardStats{})

	assert.Equal(t, "Sales Rep Dashboard", view.Title)
	assert.Empty(t, view.Groups[0].Rows)
	assert.Empty(t, view.Groups[1].Rows)
}

func TestService_Load(t *testing.T) {
	stats := new(mockStats)
	stats.On("DashboardStats", mock.Anything, "tok").
		Return(&domain.DashboardStats{Leads: map[string]int{"Qualified": 7}}, nil)
	sess := &domain.Session{Token: "tok", User: domain.User{ID: "u1", Role: domain.RoleRep}}

	view, err := NewService(stats).Load(context.Background(), sess)

	require.NoError(t, err)
	assert.Equal(t, []string{"Qualified"}, keys(view.Groups[0].Rows))
}

type noExpiry struct{}

func (noExpiry) Expire(*gin.Context, error) bool { return false }

func TestHandler_Show(t *testing.T) {
	gin.SetMode(gin.TestMode)
	renderer, err := web.NewRenderer()
	require.NoError(t, err)

	stats := new(mockStats)
	stats.On("DashboardStats", mock.Anything, "tok").
		Return(&domain.DashboardStats{Leads: map[string]int{"New": 3}}, nil).Once()
	stats.On("DashboardStats", mock.Anything, "tok").
		Return(nil, &apiclient.HTTPError{Status: http.StatusInternalServerError}).Once()

	r := gin.New()
	r.HTMLRender = renderer
	r.Use(func(c *gin.Context) {
		web.SetSession(c, "h", &domain.Session{Token: "tok", User: domain.User{ID: "m1", Role: domain.RoleManager}})
		c.Next()
	})
	NewHandler(NewService(stats), noExpiry{}).RegisterRoutes(r)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/dashboard", nil))
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Manager Dashboard")
	assert.Contains(t, body, "Leads by Status")
	assert.Contains(t, body, `href="/opportunities"`)
	assert.Contains(t, body, "No data")

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/dashboard", nil))
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "Failed to fetch dashboard stats")
}
