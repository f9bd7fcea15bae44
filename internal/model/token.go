package model

// Token is a time-limited credential binding a random 20-character id
// to a user's phone number. Expires is an absolute timestamp in
// milliseconds since the epoch.
type Token struct {
	ID      string `json:"id"`
	Phone   string `json:"phone"`
	Expires int64  `json:"expires"`
}

// CreateTokenRequest is used for logging in
type CreateTokenRequest struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// ExtendTokenRequest is used for extending a token's expiration.
// Extend must be explicitly true.
type ExtendTokenRequest struct {
	ID     string `json:"id"`
	Extend bool   `json:"extend"`
}
