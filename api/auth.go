package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/eringen/pubdesk/editor"
)

// TokenCookie is the cookie name the auth API may set the bearer token in
// instead of returning it in the body.
const TokenCookie = "token"

// User is an account as the auth and content APIs describe it.
type User struct {
	ID     editor.ID `json:"id"`
	Name   string    `json:"name"`
	Email  string    `json:"email"`
	Bio    string    `json:"bio,omitempty"`
	Avatar string    `json:"avatar,omitempty"`
}

// Session is the result of a successful login.
type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Credentials is a login request.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signup is a registration request.
type Signup struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, cred Credentials) (Session, error) {
	const op = "auth.login"
	resp, env, _, err := c.do(ctx, call{op: op, root: c.authURL, method: http.MethodPost, path: []string{"auth", "login"}, body: cred})
	if err != nil {
		return Session{}, err
	}
	var s Session
	if err := decodeData(op, env, &s); err != nil {
		return Session{}, err
	}
	if s.Token == "" {
		for _, ck := range resp.Cookies() {
			if ck.Name == TokenCookie && ck.Value != "" {
				s.Token = ck.Value
				break
			}
		}
	}
	if s.Token == "" {
		return Session{}, fmt.Errorf("%w: %s: %w", ErrTransport, op, errors.New("no token in response"))
	}
	return s, nil
}

// Logout tells the auth API to end the token's session.
func (c *Client) Logout(ctx context.Context, token string) error {
	_, _, _, err := c.do(ctx, call{op: "auth.logout", root: c.authURL, method: http.MethodPost, path: []string{"auth", "logout"}, token: token})
	return err
}

// Signup registers a new account.
func (c *Client) Signup(ctx context.Context, s Signup) error {
	_, _, _, err := c.do(ctx, call{op: "auth.signup", root: c.authURL, method: http.MethodPost, path: []string{"auth", "signup"}, body: s})
	return err
}

// ForgotPassword asks the auth API to send a reset link to email.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	body := map[string]string{"email": email}
	_, _, _, err := c.do(ctx, call{op: "auth.forgot_password", root: c.authURL, method: http.MethodPost, path: []string{"auth", "forgot-password"}, body: body})
	return err
}

// ResetPassword sets a new password using the token from a reset link.
func (c *Client) ResetPassword(ctx context.Context, resetToken, password string) error {
	body := map[string]string{"token": resetToken, "password": password}
	_, _, _, err := c.do(ctx, call{op: "auth.reset_password", root: c.authURL, method: http.MethodPost, path: []string{"auth", "reset-password"}, body: body})
	return err
}
