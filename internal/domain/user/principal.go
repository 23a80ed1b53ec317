package user

// Roles granted by the forum. Admin implies everything; PT graders may
// issue task grants; the regression role may file regression updates on
// behalf of players.
const (
	RoleAdmin      = "admin"
	RolePT         = "pt"
	RoleRegression = "regression"
)

// Principal is the authenticated caller attached to each request.
type Principal struct {
	UserID string   `json:"userId"`
	Name   string   `json:"name"`
	Roles  []string `json:"roles"`
}

func (p Principal) HasRole(role string) bool {
	for _, r := range p.Roles {
		if r == role || r == RoleAdmin {
			return true
		}
	}
	return false
}
