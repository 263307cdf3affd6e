package testhub

import (
	"context"
	"net/http"

	"github.com/kmaitland/testhub/internal/apimachinery"
)

// AuthClient is the specialized client for the API server's auth endpoints.
type AuthClient interface {
	// Login exchanges a username and password for a bearer token.
	Login(ctx context.Context, username, password string) (Token, error)
	// Register creates a new user account. It does not authenticate.
	Register(ctx context.Context, username, email, password string) (User, error)
	// Me returns the user the current credential belongs to.
	Me(context.Context) (User, error)
}

type authClient struct {
	gateway *apimachinery.Gateway
}

// NewAuthClient returns a specialized client for the auth endpoints.
func NewAuthClient(gateway *apimachinery.Gateway) AuthClient {
	return &authClient{
		gateway: gateway,
	}
}

func (a *authClient) Login(
	ctx context.Context,
	username string,
	password string,
) (Token, error) {
	token := Token{}
	return token, a.gateway.ExecuteRequest(
		ctx,
		apimachinery.OutboundRequest{
			Method: http.MethodPost,
			Path:   "auth/login",
			Form: map[string]string{
				"username": username,
				"password": password,
			},
			SuccessCode: http.StatusOK,
			RespObj:     &token,
		},
	)
}

func (a *authClient) Register(
	ctx context.Context,
	username string,
	email string,
	password string,
) (User, error) {
	user := User{}
	return user, a.gateway.ExecuteRequest(
		ctx,
		apimachinery.OutboundRequest{
			Method: http.MethodPost,
			Path:   "auth/register",
			ReqBodyObj: struct {
				Username string `json:"username"`
				Email    string `json:"email"`
				Password string `json:"password"`
			}{
				Username: username,
				Email:    email,
				Password: password,
			},
			SuccessCode: http.StatusOK,
			RespObj:     &user,
		},
	)
}

func (a *authClient) Me(ctx context.Context) (User, error) {
	user := User{}
	return user, a.gateway.ExecuteRequest(
		ctx,
		apimachinery.OutboundRequest{
			Method:      http.MethodGet,
			Path:        "auth/me",
			SuccessCode: http.StatusOK,
			RespObj:     &user,
		},
	)
}
