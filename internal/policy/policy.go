// Package policy maps a user's role to what the front end shows and offers.
//
// These checks are a convenience for the UI only. The CRM API enforces roles
// on its own and is the authority for every request.
package policy

import "minicrm/internal/domain"

type NavLink struct {
	Label string
	Path  string
}

var (
	linkAdmin         = NavLink{Label: "Admin", Path: "/admin"}
	linkDashboard     = NavLink{Label: "Dashboard", Path: "/dashboard"}
	linkLeads         = NavLink{Label: "Leads", Path: "/leads"}
	linkOpportunities = NavLink{Label: "Opportunities", Path: "/opportunities"}
)

// NavigationFor returns the navigation links for role. An empty role means
// nobody is signed in.
func NavigationFor(role domain.UserRole) []NavLink {
	switch role {
	case domain.RoleAdmin:
		return []NavLink{linkAdmin}
	case domain.RoleRep, domain.RoleManager:
		return []NavLink{linkDashboard, linkLeads, linkOpportunities}
	default:
		return []NavLink{}
	}
}

// VisibleLeads returns the leads role may see. Reps only see their own.
func VisibleLeads(role domain.UserRole, userID string, leads []domain.Lead) []domain.Lead {
	if role != domain.RoleRep {
		return leads
	}
	out := make([]domain.Lead, 0, len(leads))
	for _, l := range leads {
		if l.Owner.Is(userID) {
			out = append(out, l)
		}
	}
	return out
}

// VisibleOpportunities applies the same ownership rule as VisibleLeads.
func VisibleOpportunities(role domain.UserRole, userID string, opps []domain.Opportunity) []domain.Opportunity {
	if role != domain.RoleRep {
		return opps
	}
	out := make([]domain.Opportunity, 0, len(opps))
	for _, o := range opps {
		if o.Owner.Is(userID) {
			out = append(out, o)
		}
	}
	return out
}

// CanMutateLeads is true only for reps. Managers and admins get a read-only
// lead list.
func CanMutateLeads(role domain.UserRole) bool {
	return role == domain.RoleRep
}

// CanConvert hides the convert action once a lead is converted.
func CanConvert(lead domain.Lead) bool {
	return !lead.IsConverted()
}

// LandingPath is where a successful login goes.
func LandingPath(role domain.UserRole) string {
	if role == domain.RoleAdmin {
		return linkAdmin.Path
	}
	return linkLeads.Path
}

// SignupLandingPath is where a signup that returned a session goes.
func SignupLandingPath(role domain.UserRole) string {
	if role == domain.RoleManager {
		return linkDashboard.Path
	}
	return linkLeads.Path
}

// HomePath is the target of the logo link.
func HomePath(role domain.UserRole) string {
	switch role {
	case "":
		return "/login"
	case domain.RoleAdmin:
		return linkAdmin.Path
	default:
		return linkDashboard.Path
	}
}
