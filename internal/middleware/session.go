package middleware

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"minicrm/internal/apiclient"
	"minicrm/internal/domain"
	"minicrm/internal/pkg/jwt"
	"minicrm/internal/pkg/response"
	"minicrm/internal/session"
	"minicrm/internal/web"

	"github.com/gin-gonic/gin"
)

type sessionStore interface {
	Save(ctx context.Context, sess domain.Session) (string, error)
	Load(ctx context.Context, handle string) (*domain.Session, error)
	Clear(ctx context.Context, handle string) error
}

// CookieConfig describes the browser cookie that carries the signed handle.
type CookieConfig struct {
	Name     string
	Secure   bool
	SameSite string
}

func (cc CookieConfig) sameSite() http.SameSite {
	switch strings.ToLower(cc.SameSite) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}

// Sessions ties the session cookie to the session store. The cookie holds an
// HS256 token whose only claim of interest is the store handle.
type Sessions struct {
	store  sessionStore
	tokens *jwt.Service
	cookie CookieConfig
}

func NewSessions(store sessionStore, tokens *jwt.Service, cookie CookieConfig) *Sessions {
	return &Sessions{store: store, tokens: tokens, cookie: cookie}
}

// Load resolves the cookie into a session and puts it on the context. A
// missing or forged session clears the cookie and continues; pages that need
// one add Required after it. A store failure aborts with 503.
func (s *Sessions) Load() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(s.cookie.Name)
		if err != nil || raw == "" {
			c.Next()
			return
		}

		claims, err := s.tokens.ValidateToken(raw)
		if err != nil {
			s.clearCookie(c)
			c.Next()
			return
		}

		sess, err := s.store.Load(c.Request.Context(), claims.SessionID)
		if errors.Is(err, session.ErrNoSession) {
			s.clearCookie(c)
			c.Next()
			return
		}
		if err != nil {
			// The record may still be there; keep the cookie for the next try.
			log.Printf("session_load_failed request_id=%s err=%v", requestID(c), err)
			_ = c.Error(err)
			web.Render(c, http.StatusServiceUnavailable, "error", web.Page{Title: "Unavailable"})
			c.Abort()
			return
		}

		web.SetSession(c, claims.SessionID, sess)
		c.Next()
	}
}

// Required redirects to /login when the request has no session.
func (s *Sessions) Required() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !web.SessionFrom(c).Valid() {
			response.Found(c, "/login")
			return
		}
		c.Next()
	}
}

// Begin stores sess and sets the cookie for it.
func (s *Sessions) Begin(c *gin.Context, sess domain.Session) error {
	handle, err := s.store.Save(c.Request.Context(), sess)
	if err != nil {
		return err
	}

	token, err := s.tokens.GenerateToken(handle)
	if err != nil {
		_ = s.store.Clear(c.Request.Context(), handle)
		return err
	}

	c.SetSameSite(s.cookie.sameSite())
	c.SetCookie(s.cookie.Name, token, 0, "/", "", s.cookie.Secure, true)
	web.SetSession(c, handle, &sess)
	return nil
}

// End clears the stored session and the cookie.
func (s *Sessions) End(c *gin.Context) {
	if handle := web.HandleFrom(c); handle != "" {
		if err := s.store.Clear(c.Request.Context(), handle); err != nil {
			log.Printf("session_clear_failed request_id=%s err=%v", requestID(c), err)
		}
	}
	s.clearCookie(c)
	web.SetSession(c, "", nil)
}

// Expire handles an API error that means the bearer token is no longer
// accepted: the session is dropped and the browser sent to /login. It
// reports whether it did so.
func (s *Sessions) Expire(c *gin.Context, err error) bool {
	if !apiclient.IsUnauthorized(err) {
		return false
	}
	log.Printf("session_expired request_id=%s path=%s", requestID(c), c.Request.URL.Path)
	s.End(c)
	if c.Request.Method == http.MethodGet {
		response.Found(c, "/login")
	} else {
		response.SeeOther(c, "/login")
	}
	return true
}

func (s *Sessions) clearCookie(c *gin.Context) {
	c.SetSameSite(s.cookie.sameSite())
	c.SetCookie(s.cookie.Name, "", -1, "/", "", s.cookie.Secure, true)
}
