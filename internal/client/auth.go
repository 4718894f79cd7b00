package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Varun5711/autocare/internal/models/user"
)

func (c *Client) Login(ctx context.Context, email, password string) (*user.LoginResponse, error) {
	var resp user.LoginResponse
	err := c.doJSON(ctx, http.MethodPost, "/auth/login", "", user.Credentials{
		Email:    email,
		Password: password,
	}, &resp)
	if err != nil {
		return nil, err
	}

	if resp.Token == "" || resp.User == nil {
		return nil, fmt.Errorf("%w: login response missing token or user", ErrMalformedResponse)
	}
	return &resp, nil
}

func (c *Client) Signup(ctx context.Context, email, password string) error {
	return c.doJSON(ctx, http.MethodPost, "/auth/signup", "", user.Credentials{
		Email:    email,
		Password: password,
	}, nil)
}

// Logout asks the backend to invalidate token. An empty token sends the
// request without an Authorization header.
func (c *Client) Logout(ctx context.Context, token string) error {
	return c.doJSON(ctx, http.MethodPost, "/auth/logout", token, nil, nil)
}
