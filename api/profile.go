package api

import (
	"context"
	"errors"
	"net/http"

	"airclient/internal/domain"
	"airclient/internal/transport"
)

// Both profile paths are live across backend variants; reads and writes try
// the singular path first and fall back on 404.
const (
	profilePath       = "/api/user/profile"
	legacyProfilePath = "/api/users/profile"
)

type UpdateProfileRequest struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

func (c *Client) GetProfile(ctx context.Context) (*domain.Profile, error) {
	var profile domain.Profile
	err := c.http.Get(ctx, profilePath, nil, &profile)
	if isNotFound(err) {
		err = c.http.Get(ctx, legacyProfilePath, nil, &profile)
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (c *Client) UpdateProfile(ctx context.Context, req UpdateProfileRequest) (*domain.Profile, error) {
	var profile domain.Profile
	err := c.http.Put(ctx, profilePath, req, &profile)
	if isNotFound(err) {
		err = c.http.Put(ctx, legacyProfilePath, req, &profile)
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (c *Client) DeleteAccount(ctx context.Context) error {
	err := c.http.Delete(ctx, profilePath)
	if isNotFound(err) {
		err = c.http.Delete(ctx, legacyProfilePath)
	}
	return err
}

func isNotFound(err error) bool {
	var apiErr *transport.APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}
