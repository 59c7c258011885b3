package api

import (
	"context"
	"net/http"
)

// ProfileUpdate changes the current account's profile. Avatar is a data
// URI; empty keeps the current one.
type ProfileUpdate struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Bio    string `json:"bio"`
	Avatar string `json:"avatar,omitempty"`
}

// PasswordChange changes the current account's password.
type PasswordChange struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// Me returns the account the token belongs to.
func (c *Client) Me(ctx context.Context, token string) (User, error) {
	const op = "users.me"
	_, env, _, err := c.do(ctx, call{op: op, root: c.baseURL, method: http.MethodGet, path: []string{"users", "me"}, token: token})
	if err != nil {
		return User{}, err
	}
	var u User
	err = decodeData(op, env, &u)
	return u, err
}

// UpdateMe saves profile changes and returns the updated account.
func (c *Client) UpdateMe(ctx context.Context, token string, p ProfileUpdate) (User, error) {
	const op = "users.update"
	_, env, _, err := c.do(ctx, call{op: op, root: c.baseURL, method: http.MethodPut, path: []string{"users", "me"}, token: token, body: p})
	if err != nil {
		return User{}, err
	}
	var u User
	err = decodeData(op, env, &u)
	return u, err
}

// ChangePassword changes the current account's password.
func (c *Client) ChangePassword(ctx context.Context, token string, p PasswordChange) error {
	_, _, _, err := c.do(ctx, call{op: "users.password", root: c.baseURL, method: http.MethodPut, path: []string{"users", "me", "password"}, token: token, body: p})
	return err
}
