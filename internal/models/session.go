// internal/models/session.go
package models

// Role is an employee role as the backend spells it. Board behavior is gated
// on these exact strings.
type Role string

const (
	RoleSalesExecutive     Role = "Sales Executive"
	RoleSystemAdmin        Role = "System Admin"
	RoleOperationsEngineer Role = "Operations Engineer"
)

// Session is the identity triple returned by login and threaded through every
// board component. It is the only cross-component shared state besides the
// task list.
type Session struct {
	EmployeeID int    `json:"employee_id"`
	Name       string `json:"name"`
	Role       Role   `json:"role"`
}

// LoggedIn reports whether the session carries a complete identity.
func (s *Session) LoggedIn() bool {
	return s != nil && s.EmployeeID != 0 && s.Name != "" && s.Role != ""
}
