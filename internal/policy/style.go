package policy

import "minicrm/internal/domain"

// FallbackColor is used for any category key the table does not know.
const FallbackColor = "#6b7280"

// categoryColors is the single status/stage color table shared by every view.
var categoryColors = map[string]string{
	string(domain.LeadNew):        "#3b82f6",
	string(domain.LeadContacted):  "#6f42c1",
	string(domain.LeadQualified):  "#10b981",
	string(domain.LeadConverted):  "#fd7e14",
	string(domain.StageDiscovery): "#6366f1",
	string(domain.StageProposal):  "#f59e0b",
	string(domain.StageWon):       "#22c55e",
	string(domain.StageLost):      "#ef4444",
}

func ColorFor(key string) string {
	if c, ok := categoryColors[key]; ok {
		return c
	}
	return FallbackColor
}
