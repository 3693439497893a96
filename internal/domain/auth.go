package domain

// AuthData is the persisted session record. If present, Token must be a
// well-formed three-part JWT-like string; absence means unauthenticated.
type AuthData struct {
	Token  string `json:"token"`
	Email  string `json:"email"`
	UserID string `json:"userId,omitempty"`
}

type Profile struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
