package domain

import "encoding/json"

// LeadStatus represents lead status
type LeadStatus string

const (
	LeadNew       LeadStatus = "New"
	LeadContacted LeadStatus = "Contacted"
	LeadQualified LeadStatus = "Qualified"
	LeadConverted LeadStatus = "Converted"
)

// LeadStatuses is the canonical status order.
var LeadStatuses = []LeadStatus{LeadNew, LeadContacted, LeadQualified, LeadConverted}

// Lead is a prospective customer owned by one sales rep.
type Lead struct {
	ID     string     `json:"id"`
	Name   string     `json:"name"`
	Email  string     `json:"email"`
	Phone  string     `json:"phone"`
	Status LeadStatus `json:"status"`
	Owner  OwnerRef   `json:"ownerId"`
}

func (l *Lead) UnmarshalJSON(data []byte) error {
	type alias Lead
	aux := struct {
		ID    flexID `json:"id"`
		AltID flexID `json:"_id"`
		*alias
	}{alias: (*alias)(l)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	l.ID = firstID(aux.ID, aux.AltID)
	return nil
}

func (l Lead) IsConverted() bool {
	return l.Status == LeadConverted
}
