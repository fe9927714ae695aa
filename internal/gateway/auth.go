package gateway

import (
	"context"
	"net/http"
)

// LoginData is the backend's answer to a successful credential check.
type LoginData struct {
	Token    string `json:"token"`
	UserID   int64  `json:"user_id"`
	UserName string `json:"user_name"`
	Email    string `json:"email"`
	RoleID   int64  `json:"role_id"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c *Client) Login(ctx context.Context, email, password string) Result[LoginData] {
	return request[LoginData](ctx, c, http.MethodPost, "/api/auth/login", "", loginRequest{
		Email:    email,
		Password: password,
	})
}

func (c *Client) ForgotPassword(ctx context.Context, email string) Result[struct{}] {
	return request[struct{}](ctx, c, http.MethodPost, "/api/auth/forgot-password", "", map[string]string{
		"email": email,
	})
}

// Logout tells the backend to drop the token. Callers treat logout as
// unconditionally successful regardless of this result; the call exists
// to close the server-side session where the backend supports it.
func (c *Client) Logout(ctx context.Context, token string) Result[struct{}] {
	return request[struct{}](ctx, c, http.MethodPost, "/api/auth/logout", token, nil)
}
