package domain

// User is the identity record supplied by the external auth layer.
// The engine consumes the id and display name only, never credentials.
type User struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}
