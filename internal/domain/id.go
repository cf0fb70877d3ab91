package domain

import (
	"bytes"
	"encoding/json"
)

// flexID accepts an identifier sent either as a JSON string or a JSON number.
type flexID string

func (f *flexID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexID(n.String())
	return nil
}

func firstID(ids ...flexID) string {
	for _, id := range ids {
		if id != "" {
			return string(id)
		}
	}
	return ""
}

// OwnerRef is the owning rep of a record. The API sends it either as a raw
// id or as an embedded user object; both decode to the same value.
type OwnerRef struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

func (o *OwnerRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*o = OwnerRef{}
		return nil
	}

	if data[0] != '{' {
		var id flexID
		if err := id.UnmarshalJSON(data); err != nil {
			return err
		}
		*o = OwnerRef{ID: string(id)}
		return nil
	}

	var aux struct {
		ID    flexID `json:"id"`
		AltID flexID `json:"_id"`
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*o = OwnerRef{ID: firstID(aux.ID, aux.AltID), Name: aux.Name, Email: aux.Email}
	return nil
}

// Is reports whether the reference points at userID.
func (o OwnerRef) Is(userID string) bool {
	return userID != "" && o.ID == userID
}

// DisplayName is the owner's name, or "N/A" when only the id is known.
func (o OwnerRef) DisplayName() string {
	if o.Name == "" {
		return "N/A"
	}
	return o.Name
}
