package model

// Session is the result of a successful login or registration: the bearer
// credential plus the identity and display attributes of the user.
type Session struct {
	Token    string `json:"token"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Currency string `json:"currency"`
	UserID   int64  `json:"userId"`
}

// LoginRequest is the body of a login call.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest is the body of a registration call.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Currency string `json:"currency"`
}
