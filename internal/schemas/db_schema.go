// Package schemas defines the data structures
package schemas

import (
	"time"

	"github.com/google/uuid"
)

// User represents the data model for a user in the system.
// Password carries the bcrypt hash and is only serialized where the
// persistence layer projected it (the register response); profile and
// list reads never select it.
type User struct {
	ID        uuid.UUID  `json:"id"`                   // Unique identifier for the user.
	Name      string     `json:"name"`                 // Given name of the user.
	Surname   string     `json:"surname,omitempty"`    // Family name of the user, optional.
	Nick      string     `json:"nick"`                 // Unique handle of the user, stored lower-cased.
	Email     string     `json:"email"`                // Email address of the user, stored lower-cased.
	Password  string     `json:"password,omitempty"`   // Bcrypt hash of the password.
	Role      string     `json:"role,omitempty"`       // Role of the user, defaulted on registration.
	Image     string     `json:"image,omitempty"`      // Avatar image reference.
	CreatedAt *time.Time `json:"created_at,omitempty"` // Timestamp when the user was created.
}
