package api

import (
	"context"
	"net/http"

	"hotel_booking/internal/domain"
)

const (
	msgFetchUser = "Error fetching user"
	msgRegister  = "Error during registration"
	msgSignIn    = "Error during sign in"
	msgToken     = "Token invalid"
	msgSignOut   = "Error during sign out"
)

func (c *Client) CurrentUser(ctx context.Context) (domain.User, error) {
	var out domain.User
	ep := endpoint{method: http.MethodGet, path: "/api/users/me", route: "/api/users/me", credentials: true, failure: msgFetchUser}
	if err := c.call(ctx, ep, nil, &out); err != nil {
		return domain.User{}, err
	}
	return out, nil
}

func (c *Client) Register(ctx context.Context, f domain.RegisterForm) error {
	b, err := jsonBody(f)
	if err != nil {
		return c.fail(domain.KindTransport, 0, msgRegister, err)
	}
	ep := endpoint{method: http.MethodPost, path: "/api/users/register", route: "/api/users/register", credentials: true, failure: msgRegister}
	return c.call(ctx, ep, b, nil)
}

func (c *Client) SignIn(ctx context.Context, f domain.SignInForm) (domain.SessionInfo, error) {
	b, err := jsonBody(f)
	if err != nil {
		return nil, c.fail(domain.KindTransport, 0, msgSignIn, err)
	}
	var out domain.SessionInfo
	ep := endpoint{method: http.MethodPost, path: "/api/auth/login", route: "/api/auth/login", credentials: true, failure: msgSignIn}
	if err := c.call(ctx, ep, b, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ValidateToken(ctx context.Context) (domain.SessionInfo, error) {
	var out domain.SessionInfo
	ep := endpoint{method: http.MethodGet, path: "/api/auth/validate-token", route: "/api/auth/validate-token", credentials: true, failure: msgToken}
	if err := c.call(ctx, ep, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) SignOut(ctx context.Context) error {
	ep := endpoint{method: http.MethodPost, path: "/api/auth/logout", route: "/api/auth/logout", credentials: true, failure: msgSignOut}
	return c.call(ctx, ep, nil, nil)
}
