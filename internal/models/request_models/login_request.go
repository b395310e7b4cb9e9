package request_models

// GoogleLoginRequest carries the access token obtained by the frontend's
// Google sign-in.
type GoogleLoginRequest struct {
	AccessToken string `json:"access_token" binding:"required"`
}
