// internal/models/auth.go
package models

// LoginInput is the payload of POST /auth/login.
type LoginInput struct {
	EmailID  string `json:"email_id"`
	Password string `json:"password"`
}

// SignupInput is the payload of POST /auth/signup.
type SignupInput struct {
	Name         string `json:"name"`
	EmailID      string `json:"email_id"`
	PhoneNumber  string `json:"phone_number"`
	EmployeeRole Role   `json:"employee_role"`
	Password     string `json:"password"`
}
