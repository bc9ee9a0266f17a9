package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/penshort/userconsole/internal/model"
)

// Login exchanges credentials for a token. It never sends an auth header.
func (c *Client) Login(ctx context.Context, email, password string) (*model.LoginResponse, error) {
	var resp model.LoginResponse
	req := model.LoginRequest{Email: email, Password: password}
	if err := c.do(ctx, OpLogin, http.MethodPost, "/auth/login", req, &resp, false); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListUsers handles GET /users.
func (c *Client) ListUsers(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := c.do(ctx, OpListUsers, http.MethodGet, "/users", nil, &users, true); err != nil {
		return nil, err
	}
	return users, nil
}

// GetUser handles GET /users/{id}.
func (c *Client) GetUser(ctx context.Context, id model.UserID) (*model.User, error) {
	var user model.User
	if err := c.do(ctx, OpGetUser, http.MethodGet, userPath(id), nil, &user, true); err != nil {
		return nil, err
	}
	if user.ID == "" {
		user.ID = id
	}
	return &user, nil
}

// CreateUser handles POST /users.
func (c *Client) CreateUser(ctx context.Context, input model.NewUser) (*model.User, error) {
	var user model.User
	if err := c.do(ctx, OpCreateUser, http.MethodPost, "/users", input, &user, true); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser handles PATCH /users/{id}.
func (c *Client) UpdateUser(ctx context.Context, id model.UserID, input model.UserUpdate) (*model.User, error) {
	var user model.User
	if err := c.do(ctx, OpUpdateUser, http.MethodPatch, userPath(id), input, &user, true); err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteUser handles DELETE /users/{id}.
func (c *Client) DeleteUser(ctx context.Context, id model.UserID) error {
	return c.do(ctx, OpDeleteUser, http.MethodDelete, userPath(id), nil, nil, true)
}

func userPath(id model.UserID) string {
	return "/users/" + url.PathEscape(id.String())
}
