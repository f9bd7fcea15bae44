package model

// User represents a registered account, keyed by phone number. The
// hashed password is part of the persisted record but is stripped from
// any client-facing response via UserView.
type User struct {
	FirstName      string   `json:"firstName"`
	LastName       string   `json:"lastName"`
	Phone          string   `json:"phone"`
	HashedPassword string   `json:"hashedPassword"`
	TOSAgreement   bool     `json:"tosAgreement"`
	Checks         []string `json:"checks,omitempty"` // IDs of checks owned by this user
}

// UserView is the client-facing shape of a user record.
type UserView struct {
	FirstName    string   `json:"firstName"`
	LastName     string   `json:"lastName"`
	Phone        string   `json:"phone"`
	TOSAgreement bool     `json:"tosAgreement"`
	Checks       []string `json:"checks,omitempty"`
}

// View returns the user with the password hash stripped.
func (u *User) View() UserView {
	return UserView{
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Phone:        u.Phone,
		TOSAgreement: u.TOSAgreement,
		Checks:       u.Checks,
	}
}

// CreateUserRequest is used for registering a new user
type CreateUserRequest struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Phone        string `json:"phone"`
	Password     string `json:"password"`
	TOSAgreement bool   `json:"tosAgreement"`
}

// UpdateUserRequest carries a partial update. Empty fields are treated
// as absent; at least one optional field must be supplied.
type UpdateUserRequest struct {
	Phone     string `json:"phone"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Password  string `json:"password"`
}
