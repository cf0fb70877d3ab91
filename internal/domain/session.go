package domain

// Session is the bearer token and user identity pair held for a browser.
// It is not validated beyond presence; the API is the authority.
type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Valid reports whether both halves of the session are present.
func (s *Session) Valid() bool {
	return s != nil && s.Token != "" && s.User.ID != ""
}

// DashboardStats is the read-only aggregate served by the API.
type DashboardStats struct {
	Leads         map[string]int `json:"leads"`
	Opportunities map[string]int `json:"opportunities"`
}
