package response_models

// CheckoutSessionResponse is the body of the public payment-session
// endpoints. Exactly one field is set.
type CheckoutSessionResponse struct {
	ID    string `json:"id,omitempty"`
	Error string `json:"error,omitempty"`
}
