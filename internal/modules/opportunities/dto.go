package opportunities

import "minicrm/internal/domain"

type StageForm struct {
	Stage string `form:"stage"`
}

type ValueForm struct {
	Value string `form:"value"`
}

// Board is the opportunity table. Editing is set while the inline value form
// is open for one row.
type Board struct {
	Opportunities []domain.Opportunity
	Editing       *domain.Opportunity
	EditValue     string
}
