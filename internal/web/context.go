package web

import (
	"github.com/gin-gonic/gin"

	"minicrm/internal/domain"
)

const (
	sessionKey = "session"
	handleKey  = "session_handle"
)

// SetSession stores the loaded session and its handle on the request.
func SetSession(c *gin.Context, handle string, sess *domain.Session) {
	c.Set(handleKey, handle)
	c.Set(sessionKey, sess)
}

// SessionFrom returns the request's session, or nil when signed out.
func SessionFrom(c *gin.Context) *domain.Session {
	v, ok := c.Get(sessionKey)
	if !ok {
		return nil
	}
	sess, _ := v.(*domain.Session)
	return sess
}

func HandleFrom(c *gin.Context) string {
	return c.GetString(handleKey)
}

// Render writes the named page inside the layout, with the navigation shell
// built from the request's session.
func Render(c *gin.Context, status int, name string, p Page) {
	p.Shell = NewShell(SessionFrom(c), c.Request.URL.Path)
	c.HTML(status, name, p)
}
