package web

import (
	"strings"

	"minicrm/internal/domain"
	"minicrm/internal/policy"
)

// Shell is the navigation bar. It is built from the session alone.
type Shell struct {
	Visible  bool
	HomePath string
	Links    []policy.NavLink
	Active   string
	UserName string
	SignedIn bool
}

// Page is the data every template receives.
type Page struct {
	Title  string
	Shell  Shell
	Alert  string
	Notice string
	Data   any
}

// NewShell builds the navigation for the session (nil when signed out) on
// the page at path. The bar is hidden on the login and signup pages.
func NewShell(sess *domain.Session, path string) Shell {
	var role domain.UserRole
	var name string
	if sess.Valid() {
		role = sess.User.Role
		name = sess.User.Name
	}

	return Shell{
		Visible:  path != "/login" && path != "/signup",
		HomePath: policy.HomePath(role),
		Links:    policy.NavigationFor(role),
		Active:   activeSection(path),
		UserName: name,
		SignedIn: sess.Valid(),
	}
}

func activeSection(path string) string {
	path = strings.Trim(path, "/")
	if i := strings.IndexByte(path, '/'); i >= 0 {
		path = path[:i]
	}
	return "/" + path
}
