package api

import (
	"context"

	"airclient/internal/domain"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
	Email string `json:"email"`
	User  struct {
		ID string `json:"id"`
	} `json:"user"`
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*domain.AuthData, error) {
	var resp loginResponse
	if err := c.http.Post(ctx, "/api/login", req, &resp); err != nil {
		return nil, err
	}
	return &domain.AuthData{Token: resp.Token, Email: resp.Email, UserID: resp.User.ID}, nil
}

func (c *Client) Register(ctx context.Context, req RegisterRequest) error {
	return c.http.Post(ctx, "/api/register", req, nil)
}
