package domain

import "encoding/json"

type UserRole string

const (
	RoleRep     UserRole = "rep"
	RoleManager UserRole = "manager"
	RoleAdmin   UserRole = "admin"
)

// UserRoles lists the roles in the order the admin page offers them.
var UserRoles = []UserRole{RoleRep, RoleManager, RoleAdmin}

// ParseUserRole returns the role for s and false when s is not a known role.
func ParseUserRole(s string) (UserRole, bool) {
	for _, r := range UserRoles {
		if string(r) == s {
			return r, true
		}
	}
	return "", false
}

type User struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Email string   `json:"email"`
	Role  UserRole `json:"role"`
}

func (u *User) UnmarshalJSON(data []byte) error {
	type alias User
	aux := struct {
		ID    flexID `json:"id"`
		AltID flexID `json:"_id"`
		*alias
	}{alias: (*alias)(u)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	u.ID = firstID(aux.ID, aux.AltID)
	return nil
}
