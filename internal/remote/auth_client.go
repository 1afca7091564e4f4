// FILE: internal/remote/auth_client.go
package remote

import (
	"context"
	"net/http"

	"news-feed-client/internal/dto"
	"news-feed-client/internal/entity"
)

type IAuthClient interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	Register(ctx context.Context, req *dto.RegisterRequest) (*entity.User, error)
	Me(ctx context.Context) (*entity.User, error)
	Update(ctx context.Context, req *dto.UpdateProfileRequest) (*entity.User, error)
	ChangePassword(ctx context.Context, req *dto.ChangePasswordRequest) error
}

type authClient struct {
	client *Client
}

func NewAuthClient(client *Client) IAuthClient {
	return &authClient{client: client}
}

func (a *authClient) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	var res dto.LoginResponse
	err := a.client.do(ctx, call{
		method: http.MethodPost,
		path:   "/api/auth/login",
		body:   req,
		out:    &res,
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (a *authClient) Register(ctx context.Context, req *dto.RegisterRequest) (*entity.User, error) {
	var user entity.User
	err := a.client.do(ctx, call{
		method: http.MethodPost,
		path:   "/api/auth/register",
		body:   req,
		out:    &user,
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (a *authClient) Me(ctx context.Context) (*entity.User, error) {
	var user entity.User
	err := a.client.do(ctx, call{
		method:    http.MethodGet,
		path:      "/api/auth/me",
		out:       &user,
		retryable: true,
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (a *authClient) Update(ctx context.Context, req *dto.UpdateProfileRequest) (*entity.User, error) {
	var user entity.User
	err := a.client.do(ctx, call{
		method: http.MethodPut,
		path:   "/api/auth/update",
		body:   req,
		out:    &user,
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (a *authClient) ChangePassword(ctx context.Context, req *dto.ChangePasswordRequest) error {
	return a.client.do(ctx, call{
		method: http.MethodPost,
		path:   "/api/auth/change-password",
		body:   req,
	})
}
