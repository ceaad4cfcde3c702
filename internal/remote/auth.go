package remote

import (
	"context"
	"net/http"
	"time"
)

type AuthClient struct{ c *Client }

func NewAuthClient(c *Client) *AuthClient { return &AuthClient{c: c} }

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type User struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Surname         string `json:"surname"`
	Email           string `json:"email"`
	Role            string `json:"role"`
	DefaultOutletID string `json:"default_outlet_id,omitempty"`
}

type AuthResult struct {
	User        User      `json:"user"`
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

func (ac *AuthClient) Login(ctx context.Context, creds Credentials) (AuthResult, error) {
	var res AuthResult
	if err := ac.c.do(ctx, http.MethodPost, "/api/v1/auth/login", creds, &res); err != nil {
		return AuthResult{}, err
	}
	return res, nil
}

type Registration struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Surname  string `json:"surname"`
	Phone    string `json:"phone,omitempty"`
}

func (ac *AuthClient) Register(ctx context.Context, reg Registration) (AuthResult, error) {
	var res AuthResult
	if err := ac.c.do(ctx, http.MethodPost, "/api/v1/auth/register", reg, &res); err != nil {
		return AuthResult{}, err
	}
	return res, nil
}
