package leads

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"minicrm/internal/apiclient"
	"minicrm/internal/domain"
	"minicrm/internal/web"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fakeExpirer struct {
	expired bool
}

func (f *fakeExpirer) Expire(c *gin.Context, err error) bool {
	if !apiclient.IsUnauthorized(err) {
		return false
	}
	f.expired = true
	c.Redirect(http.StatusSeeOther, "/login")
	c.Abort()
	return true
}

func newRouter(t *testing.T, api API, sess *domain.Session, exp SessionExpirer) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	renderer, err := web.NewRenderer()
	require.NoError(t, err)

	r := gin.New()
	r.HTMLRender = renderer
	r.Use(func(c *gin.Context) {
		web.SetSession(c, "handle", sess)
		c.Next()
	})
	NewHandler(NewService(api, newMemViews()), exp).RegisterRoutes(r)
	return r
}

func do(r *gin.Engine, method, path string, form url.Values) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	r.ServeHTTP(w, req)
	return w
}

func TestHandler_ListShowsRepColumnAndActions(t *testing.T) {
	api := new(mockAPI)
	api.On("ListLeads", mock.Anything, "rep-token").Return(sampleLeads(), nil)
	r := newRouter(t, api, repSess, &fakeExpirer{})

	w := do(r, http.MethodGet, "/leads", nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Acme")
	assert.Contains(t, body, "Initech")
	assert.NotContains(t, body, "Globex")
	assert.Contains(t, body, "/leads/l1/convert")
	assert.Contains(t, body, "+ Add Lead")
}

func TestHandler_ManagerHasNoActions(t *testing.T) {
	api := new(mockAPI)
	api.On("ListLeads", mock.Anything, "mgr-token").Return(sampleLeads(), nil)
	r := newRouter(t, api, managerSess, &fakeExpirer{})

	w := do(r, http.MethodGet, "/leads", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Globex")
	assert.NotContains(t, w.Body.String(), "/convert")
	assert.NotContains(t, w.Body.String(), "+ Add Lead")
}

func TestHandler_FetchFailureShowsAlert(t *testing.T) {
	api := new(mockAPI)
	api.On("ListLeads", mock.Anything, "rep-token").Return(nil, &apiclient.NetworkError{Err: assert.AnError})
	r := newRouter(t, api, repSess, &fakeExpirer{})

	w := do(r, http.MethodGet, "/leads", nil)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "Failed to fetch leads")
}

func TestHandler_UnauthorizedExpiresSession(t *testing.T) {
	api := new(mockAPI)
	api.On("ListLeads", mock.Anything, "rep-token").Return(nil, &apiclient.HTTPError{Status: http.StatusUnauthorized})
	exp := &fakeExpirer{}
	r := newRouter(t, api, repSess, exp)

	w := do(r, http.MethodGet, "/leads", nil)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
	assert.True(t, exp.expired)
}

func TestHandler_ConvertRendersNotice(t *testing.T) {
	api := new(mockAPI)
	api.On("ListLeads", mock.Anything, "rep-token").Return(sampleLeads(), nil).Once()
	api.On("ConvertLead", mock.Anything, "rep-token", "l1", mock.Anything).Return(nil, nil).Once()
	r := newRouter(t, api, repSess, &fakeExpirer{})

	w := do(r, http.MethodPost, "/leads/l1/convert", url.Values{"action": {"convert"}, "value": {"1000"}})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Lead converted to opportunity!")
	assert.NotContains(t, w.Body.String(), "/leads/l1/convert")
}

func TestHandler_ConvertResubmitRedirects(t *testing.T) {
	api := new(mockAPI)
	api.On("ListLeads", mock.Anything, "rep-token").Return(sampleLeads(), nil).Once()
	api.On("ConvertLead", mock.Anything, "rep-token", "l1", mock.Anything).Return(nil, nil).Once()
	r := newRouter(t, api, repSess, &fakeExpirer{})
	form := url.Values{"action": {"convert"}, "value": {"1000"}}

	w := do(r, http.MethodPost, "/leads/l1/convert", form)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodPost, "/leads/l1/convert", form)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/leads", w.Header().Get("Location"))
	api.AssertNumberOfCalls(t, "ConvertLead", 1)
}

func TestHandler_ConvertCancelRedirects(t *testing.T) {
	api := new(mockAPI)
	r := newRouter(t, api, repSess, &fakeExpirer{})

	w := do(r, http.MethodPost, "/leads/l1/convert", url.Values{"action": {"cancel"}, "value": {"1000"}})

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/leads", w.Header().Get("Location"))
	assert.Empty(t, api.Calls)
}

func TestHandler_DeleteNeedsConfirm(t *testing.T) {
	api := new(mockAPI)
	api.On("DeleteLead", mock.Anything, "rep-token", "l1").Return(nil).Once()
	r := newRouter(t, api, repSess, &fakeExpirer{})

	w := do(r, http.MethodGet, "/leads/l1/delete", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Are you sure you want to delete this lead?")

	w = do(r, http.MethodPost, "/leads/l1/delete", url.Values{})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	api.AssertNotCalled(t, "DeleteLead", mock.Anything, mock.Anything, mock.Anything)

	w = do(r, http.MethodPost, "/leads/l1/delete", url.Values{"confirm": {"yes"}})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	api.AssertNumberOfCalls(t, "DeleteLead", 1)
}

func TestHandler_SaveValidationRerendersForm(t *testing.T) {
	api := new(mockAPI)
	r := newRouter(t, api, repSess, &fakeExpirer{})

	w := do(r, http.MethodPost, "/leads", url.Values{"name": {"Acme"}, "email": {"bad"}})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "must be a valid email")
	assert.Empty(t, api.Calls)
}

func TestHandler_Export(t *testing.T) {
	api := new(mockAPI)
	api.On("ListLeads", mock.Anything, "rep-token").Return(sampleLeads(), nil)
	r := newRouter(t, api, repSess, &fakeExpirer{})

	w := do(r, http.MethodGet, "/leads/export.xlsx", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, xlsxContentType, w.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(w.Body.String(), "PK"))
}
