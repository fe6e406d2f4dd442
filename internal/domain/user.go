package domain

type User struct {
	ID        string `json:"_id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type RegisterForm struct {
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

type SignInForm struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SessionInfo is the JSON object returned by login and validate-token, passed
// through as decoded.
type SessionInfo map[string]any

// UserID returns the "userId" member, or "" when absent.
func (s SessionInfo) UserID() string {
	if v, ok := s["userId"].(string); ok {
		return v
	}
	return ""
}
