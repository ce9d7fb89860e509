package schemas

// ErrorDTO is the wire shape of every error response
// Status is always "error", Message describes the failure
type ErrorDTO struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// APIError is a catalog entry for a known failure kind, see errors.go
type APIError struct {
	Message string
}

// LoginUserDTO is the trimmed user view returned by a successful login
type LoginUserDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Nick string `json:"nick"`
}

// RegisterResponse is returned after a successful registration.
// The user carries the record as stored, including the password hash;
// this mirrors the documented contract rather than the profile view.
type RegisterResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	User    *User  `json:"user"`
}

// ConflictResponse is the documented conflict-as-success body returned
// when a duplicate email or nick is detected on register or update.
type ConflictResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// LoginResponse is returned after a successful login
type LoginResponse struct {
	Status  string       `json:"status"`
	Message string       `json:"message"`
	User    LoginUserDTO `json:"user"`
	Token   string       `json:"token"`
}

// ProfileResponse wraps a sanitized user record (no password, no role)
type ProfileResponse struct {
	Status string `json:"status"`
	User   *User  `json:"user"`
}

// ListResponse is the paginated user listing
type ListResponse struct {
	Status       string `json:"status"`
	Users        []User `json:"users"`
	Page         int    `json:"page"`
	ItemsPerPage int    `json:"itemsPerPage"`
	Total        int    `json:"total"`
	Pages        int    `json:"pages"`
}

// UpdateResponse is returned after a successful profile update
type UpdateResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	User    *User  `json:"user"`
}

// FileDTO echoes the metadata of an uploaded file
type FileDTO struct {
	Field        string `json:"field"`
	OriginalName string `json:"originalName"`
	FileName     string `json:"fileName"`
	Path         string `json:"path"`
	Size         int64  `json:"size"`
}

// UploadResponse is returned after a successful avatar upload
type UploadResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	User    interface{} `json:"user"`
	File    *FileDTO    `json:"file"`
}

// PingResponse echoes the authenticated caller's claims, used by the
// auth smoke-test route
type PingResponse struct {
	Message string      `json:"message"`
	User    interface{} `json:"user"`
}

// MetadataDTO describes the running API version
type MetadataDTO struct {
	ApiVersion string `json:"apiVersion"`
	ApiName    string `json:"apiName"`
}
