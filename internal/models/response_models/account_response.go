package response_models

type AccountLoginResponse struct {
	Token     string `json:"token"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	ExpiresAt int64  `json:"expires_at"`
}

type AccountResponse struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}
