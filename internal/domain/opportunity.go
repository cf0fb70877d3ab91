package domain

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

type Stage string

const (
	StageDiscovery Stage = "Discovery"
	StageProposal  Stage = "Proposal"
	StageWon       Stage = "Won"
	StageLost      Stage = "Lost"
)

// Stages is the canonical stage order.
var Stages = []Stage{StageDiscovery, StageProposal, StageWon, StageLost}

func ParseStage(s string) (Stage, bool) {
	for _, st := range Stages {
		if string(st) == s {
			return st, true
		}
	}
	return "", false
}

// ParseValue reads a non-negative monetary amount typed by a user.
func ParseValue(raw string) (decimal.Decimal, error) {
	value, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, NewValidationError("Value", "decimal")
	}
	if value.IsNegative() {
		return decimal.Zero, NewValidationError("Value", "gte")
	}
	return value, nil
}

// Opportunity is a monetized pipeline record created by converting a lead.
type Opportunity struct {
	ID    string          `json:"id"`
	Title string          `json:"title"`
	Value decimal.Decimal `json:"value"`
	Stage Stage           `json:"stage"`
	Owner OwnerRef        `json:"ownerId"`
}

func (o *Opportunity) UnmarshalJSON(data []byte) error {
	type alias Opportunity
	aux := struct {
		ID    flexID `json:"id"`
		AltID flexID `json:"_id"`
		*alias
	}{alias: (*alias)(o)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	o.ID = firstID(aux.ID, aux.AltID)
	return nil
}
