package request

// LoginRequest authenticates with the shared admin password when Username is
// empty, otherwise against the admins table.
type LoginRequest struct {
	Username string `json:"username,omitempty"`
	Password string `json:"password" validate:"required"`
}
