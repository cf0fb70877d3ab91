package leads

import "minicrm/internal/domain"

// LeadForm is the create/edit form. All fields are required.
type LeadForm struct {
	Name  string `form:"name" validate:"required"`
	Email string `form:"email" validate:"required,email"`
	Phone string `form:"phone" validate:"required"`
}

// ConvertForm is the answer to the conversion prompt. Action "cancel" or an
// empty value dismisses it.
type ConvertForm struct {
	Action string `form:"action"`
	Value  string `form:"value"`
}

// Board is the lead list as one user sees it.
type Board struct {
	Leads     []domain.Lead
	CanMutate bool
}

type formView struct {
	ID     string
	Form   LeadForm
	Errors map[string]string
}

type convertView struct {
	Lead  domain.Lead
	Value string
}

type confirmView struct {
	Message string
	Action  string
	Cancel  string
	Hidden  map[string]string
}
