package admin

import (
	"net/url"
	"strings"

	"minicrm/internal/domain"
)

const allRoles = "all"

// Filter narrows the user table. Both conditions must hold.
type Filter struct {
	Search string
	Role   string
}

func NewFilter(search, role string) Filter {
	role = strings.TrimSpace(role)
	if _, ok := domain.ParseUserRole(role); !ok {
		role = allRoles
	}
	return Filter{Search: strings.TrimSpace(search), Role: role}
}

// Apply keeps users whose name or email contains Search, ignoring case, and
// whose role equals Role unless Role is "all".
func (f Filter) Apply(users []domain.User) []domain.User {
	needle := strings.ToLower(f.Search)
	out := make([]domain.User, 0, len(users))
	for _, u := range users {
		if needle != "" &&
			!strings.Contains(strings.ToLower(u.Name), needle) &&
			!strings.Contains(strings.ToLower(u.Email), needle) {
			continue
		}
		if f.Role != allRoles && f.Role != "" && string(u.Role) != f.Role {
			continue
		}
		out = append(out, u)
	}
	return out
}

// Query encodes the filter for the /admin URL.
func (f Filter) Query() string {
	v := url.Values{}
	if f.Search != "" {
		v.Set("q", f.Search)
	}
	if f.Role != "" && f.Role != allRoles {
		v.Set("role", f.Role)
	}
	return v.Encode()
}

// ListURL is /admin with the filter kept.
func (f Filter) ListURL() string {
	if q := f.Query(); q != "" {
		return "/admin?" + q
	}
	return "/admin"
}

func (f Filter) DeleteURL(id string) string {
	u := "/admin/users/" + url.PathEscape(id) + "/delete"
	if q := f.Query(); q != "" {
		u += "?" + q
	}
	return u
}

type RoleForm struct {
	Role string `form:"role"`
}

// Board is the admin page.
type Board struct {
	Users  []domain.User
	Total  int
	Filter Filter
}

type confirmView struct {
	Message string
	Action  string
	Cancel  string
	Hidden  map[string]string
}
