package remote

import (
	"context"
	"net/http"
)

type UserClient struct{ c *Client }

func NewUserClient(c *Client) *UserClient { return &UserClient{c: c} }

func (uc *UserClient) List(ctx context.Context) ([]User, error) {
	var users []User
	if err := uc.c.do(ctx, http.MethodGet, "/api/v1/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (uc *UserClient) UpdateRole(ctx context.Context, userID, role string) error {
	body := map[string]string{"role": role}
	return uc.c.do(ctx, http.MethodPatch, "/api/v1/users/"+userID+"/role", body, nil)
}

func (uc *UserClient) Delete(ctx context.Context, userID string) error {
	return uc.c.do(ctx, http.MethodDelete, "/api/v1/users/"+userID, nil, nil)
}
