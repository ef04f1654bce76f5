package user

import "strings"

const RoleAdmin = "admin"

// Principal is the authenticated caller resolved from an access token.
type Principal struct {
	Subject string
	Email   string
	Roles   []string
}

func (p Principal) IsAdmin() bool {
	for _, role := range p.Roles {
		if strings.EqualFold(strings.TrimSpace(role), RoleAdmin) {
			return true
		}
	}
	return false
}
