package apiclient

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"minicrm/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDo_AttachesBearerToken(t *testing.T) {
	var gotAuth, gotType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotType = r.Header.Get("Content-Type")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := New(srv.URL+"/", 0)
	_, err := c.ListLeads(context.Background(), "t1")
	require.NoError(t, err)

	assert.Equal(t, "Bearer t1", gotAuth)
	assert.Equal(t, "application/json", gotType)
}

func TestDo_NoTokenNoHeader(t *testing.T) {
	var hadAuth bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hadAuth = r.Header["Authorization"]
		_, _ = w.Write([]byte(`{"token":"t1","user":{"_id":"u1","role":"rep"}}`))
	}))
	defer srv.Close()

	sess, err := New(srv.URL, 0).Login(context.Background(), LoginInput{Email: "a@x.com", Password: "p"})
	require.NoError(t, err)
	assert.False(t, hadAuth)
	assert.Equal(t, "t1", sess.Token)
	assert.Equal(t, "u1", sess.User.ID)
}

func TestDo_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Invalid credentials"}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL, 0).Login(context.Background(), LoginInput{Email: "a@x.com", Password: "bad"})
	require.Error(t, err)

	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Status)
	assert.Equal(t, "API error: 401", err.Error())
	assert.True(t, IsUnauthorized(err))
	assert.Equal(t, "Invalid credentials", ServerMessage(err))
}

func TestDo_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := New(url, 0).ListLeads(context.Background(), "t1")

	var netErr *NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.False(t, IsUnauthorized(err))
}

func TestConvertLead_SendsValue(t *testing.T) {
	var path string
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.Method + " " + r.URL.Path
		data, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(data, &body)
		_, _ = w.Write([]byte(`{"lead":{"_id":"l1","status":"Converted","ownerId":"u1"}}`))
	}))
	defer srv.Close()

	lead, err := New(srv.URL, 0).ConvertLead(context.Background(), "t1", "l1", decimal.RequireFromString("2500"))
	require.NoError(t, err)

	assert.Equal(t, "POST /api/leads/l1/convert", path)
	assert.Equal(t, float64(2500), body["value"])
	assert.Equal(t, domain.LeadConverted, lead.Status)
}

func TestUpdateStage_EmptyBodyOK(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(data, &body)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	err := New(srv.URL, 0).UpdateOpportunityStage(context.Background(), "t1", "o1", domain.StageWon)
	require.NoError(t, err)
	assert.Equal(t, "Won", body["stage"])
}

func TestSignup_WithoutSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"message":"User created"}`))
	}))
	defer srv.Close()

	sess, err := New(srv.URL, 0).Signup(context.Background(), SignupInput{Name: "A", Email: "a@x.com", Password: "p", Role: domain.RoleRep})
	require.NoError(t, err)
	assert.Nil(t, sess)
}
