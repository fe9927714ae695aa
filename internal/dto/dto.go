package dto

type ErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

// ValidationErrorResponse carries per-field messages for inline display
// plus the form-level banner message.
type ValidationErrorResponse struct {
	Error   bool              `json:"error"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	DB        string `json:"db"`
	Sessions  int    `json:"sessions"`
}

type LoginRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	RememberMe bool   `json:"remember_me"`
}

type LoginResponse struct {
	Token    string `json:"token"`
	UserID   int64  `json:"user_id"`
	UserName string `json:"user_name"`
	Email    string `json:"email"`
	RoleID   int64  `json:"role_id"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

type ProfileResponse struct {
	UserID   int64  `json:"user_id"`
	UserName string `json:"user_name"`
	Email    string `json:"email"`
	RoleID   int64  `json:"role_id"`
}

// ListMeta is the pagination state every collection endpoint answers
// with alongside the page window.
type ListMeta struct {
	Page        int  `json:"page"`
	PageSize    int  `json:"page_size"`
	PageCount   int  `json:"page_count"`
	Total       int  `json:"total"`
	HasNext     bool `json:"has_next"`
	HasPrevious bool `json:"has_previous"`
}

type ListResponse struct {
	Data any      `json:"data"`
	Meta ListMeta `json:"meta"`
}

// Write-side request bodies mirror the modal forms.

type UserRequest struct {
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Password string   `json:"password"`
	RoleID   int64    `json:"role_id"`
	Tags     []string `json:"tags"`
}

type AdminRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type TagRequest struct {
	Name    string   `json:"name"`
	Values  []string `json:"values"`
	UserIDs []int64  `json:"user_ids"`
}

type ProjectRequest struct {
	Name    string  `json:"name"`
	UserIDs []int64 `json:"user_ids"`
}

type NameRequest struct {
	Name string `json:"name"`
}
