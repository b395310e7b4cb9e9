package request_models

// Session is the authenticated caller, taken from the JWT claims. Every
// service call that touches user data receives one.
type Session struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

func (s Session) IsZero() bool { return s.Email == "" }
