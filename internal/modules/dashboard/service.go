package dashboard

import (
	"context"
	"sort"

	"minicrm/internal/domain"
	"minicrm/internal/policy"
)

type Service struct {
	stats StatsReader
}

func NewService(stats StatsReader) *Service {
	return &Service{stats: stats}
}

// Load fetches the aggregate counts and lays them out for role.
func (s *Service) Load(ctx context.Context, sess *domain.Session) (*View, error) {
	stats, err := s.stats.DashboardStats(ctx, sess.Token)
	if err != nil {
		return nil, err
	}
	return Build(sess.User.Role, stats), nil
}

// Build turns stats into the two dashboard cards. A nil stats value gives
// empty cards.
func Build(role domain.UserRole, stats *domain.DashboardStats) *View {
	if stats == nil {
		stats = &domain.DashboardStats{}
	}
	return &View{
		Title: Title(role),
		Groups: []Group{
			{Title: "Leads by Status", Target: "/leads", Rows: rows(stats.Leads, leadOrder())},
			{Title: "Opportunities by Stage", Target: "/opportunities", Rows: rows(stats.Opportunities, stageOrder())},
		},
	}
}

func Title(role domain.UserRole) string {
	if role == domain.RoleManager {
		return "Manager Dashboard"
	}
	return "Sales Rep Dashboard"
}

// rows lists known keys in their canonical order, then any other key
// alphabetically.
func rows(counts map[string]int, order []string) []Row {
	out := make([]Row, 0, len(counts))
	seen := make(map[string]bool, len(order))
	for _, key := range order {
		seen[key] = true
		if n, ok := counts[key]; ok {
			out = append(out, Row{Key: key, Count: n, Color: policy.ColorFor(key)})
		}
	}

	var extra []string
	for key := range counts {
		if !seen[key] {
			extra = append(extra, key)
		}
	}
	sort.Strings(extra)
	for _, key := range extra {
		out = append(out, Row{Key: key, Count: counts[key], Color: policy.ColorFor(key)})
	}
	return out
}

func leadOrder() []string {
	out := make([]string, 0, len(domain.LeadStatuses))
	for _, s := range domain.LeadStatuses {
		out = append(out, string(s))
	}
	return out
}

func stageOrder() []string {
	out := make([]string, 0, len(domain.Stages))
	for _, s := range domain.Stages {
		out = append(out, string(s))
	}
	return out
}
