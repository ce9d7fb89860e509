// Package schemas defines the request structures for various operations in the application.
package schemas

// RegistrationRequest is a struct that represents a registration request
// Name, Email, Password and Nick are required; an empty string is rejected
// Surname is optional
type RegistrationRequest struct {
	Name     string `json:"name" validate:"required"`
	Surname  string `json:"surname"`
	Nick     string `json:"nick" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginRequest is a struct that represents a login request
// Email and Password are required; an empty string is rejected
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UpdateRequest is a struct that represents a partial profile update.
// Only the listed fields are mergeable: role, image, iat and exp have no
// place here, so client-supplied values for them are dropped on decode.
type UpdateRequest struct {
	Name     *string `json:"name"`
	Surname  *string `json:"surname"`
	Nick     *string `json:"nick"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Password *string `json:"password"`
}
