package schemas

// Catalog of known failure kinds. Every handler maps an outcome to one
// of these; the HTTP status is chosen at the call site because the
// contract reuses messages across statuses.
var (
	// MissingAuthHeader is returned when the authorization header is absent.
	MissingAuthHeader = &APIError{Message: "the request is missing the authentication header"}

	// InvalidToken is returned when the bearer token fails signature or encoding checks.
	InvalidToken = &APIError{Message: "invalid token"}

	// ExpiredToken is returned when the bearer token is past its expiry.
	ExpiredToken = &APIError{Message: "expired token"}

	// MissingFields is returned when a required request field is absent or empty.
	MissingFields = &APIError{Message: "missing fields for the operation"}

	// UserNotFound is returned when no user matches the requested identity.
	UserNotFound = &APIError{Message: "user not found"}

	// IncorrectPassword is returned when the login password does not match the stored hash.
	IncorrectPassword = &APIError{Message: "incorrect password"}

	// NoUsersAvailable is returned when a listing page holds no records.
	NoUsersAvailable = &APIError{Message: "no users available"}

	// UpdateTargetMissing is returned when the authenticated user no longer exists on update.
	UpdateTargetMissing = &APIError{Message: "no user found to update"}

	// MissingImage is returned when the upload request carries no file.
	MissingImage = &APIError{Message: "request does not include an image"}

	// InvalidExtension is returned when the uploaded file extension is not allowed.
	InvalidExtension = &APIError{Message: "invalid file extension"}

	// EmailUnreachable is returned when the optional MX verification rejects the address.
	EmailUnreachable = &APIError{Message: "email address is not reachable"}

	// Unauthorized is returned when a guarded route is reached without claims.
	Unauthorized = &APIError{Message: "the request is unauthorized"}

	// DatabaseError is returned when the persistence layer fails unexpectedly.
	DatabaseError = &APIError{Message: "error in the operation"}

	// InternalServerError is returned for any other unexpected failure.
	InternalServerError = &APIError{Message: "internal server error"}
)
