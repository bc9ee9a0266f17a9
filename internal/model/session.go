package model

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the issued token under one of two field names.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	Token       string `json:"token"`
}

// BearerToken returns access_token, falling back to token.
func (r LoginResponse) BearerToken() (string, bool) {
	if r.AccessToken != "" {
		return r.AccessToken, true
	}
	if r.Token != "" {
		return r.Token, true
	}
	return "", false
}
