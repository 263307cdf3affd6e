package apimachinery

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestGatewayAttachesStoredCredential(t *testing.T) {
	server := httptest.NewServer(
		http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, "Bearer tok1", r.Header.Get("Authorization"))
				fmt.Fprintln(w, "{}")
			},
		),
	)
	defer server.Close()
	gateway := NewGateway(
		server.URL,
		&fakeCredStore{token: "tok1"},
		nil,
		nil,
	)
	err := gateway.ExecuteRequest(
		context.Background(),
		OutboundRequest{
			Method: http.MethodGet,
			Path:   "projects",
		},
	)
	require.NoError(t, err)
}

func TestGatewayOmitsAuthorizationWhenNoCredential(t *testing.T) {
	server := httptest.NewServer(
		http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				require.Empty(t, r.Header.Get("Authorization"))
				fmt.Fprintln(w, "{}")
			},
		),
	)
	defer server.Close()
	gateway := NewGateway(server.URL, &fakeCredStore{}, nil, nil)
	err := gateway.ExecuteRequest(
		context.Background(),
		OutboundRequest{
			Method: http.MethodGet,
			Path:   "projects",
		},
	)
	require.NoError(t, err)
}

func TestGatewaySendsFormBody(t *testing.T) {
	server := httptest.NewServer(
		http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				require.Equal(
					t,
					"application/x-www-form-urlencoded",
					r.Header.Get("Content-Type"),
				)
				require.NoError(t, r.ParseForm())
				require.Equal(t, "alice", r.PostFormValue("username"))
				require.Equal(t, "correct-pw", r.PostFormValue("password"))
				fmt.Fprintln(w, "{}")
			},
		),
	)
	defer server.Close()
	gateway := NewGateway(server.URL, &fakeCredStore{}, nil, nil)
	err := gateway.ExecuteRequest(
		context.Background(),
		OutboundRequest{
			Method: http.MethodPost,
			Path:   "auth/login",
			Form: map[string]string{
				"username": "alice",
				"password": "correct-pw",
			},
		},
	)
	require.NoError(t, err)
}

// A 401 on any call clears the stored credential, redirects the user to the
// login entry point, and still rejects the in-flight call.
func TestGatewayUnauthorizedClearsCredential(t *testing.T) {
	server := httptest.NewServer(
		http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
				fmt.Fprintln(w, `{"detail": "Could not validate credentials"}`)
			},
		),
	)
	defer server.Close()
	creds := &fakeCredStore{token: "stale"}
	notifier := &recordingNotifier{}
	gateway := NewGateway(server.URL, creds, notifier, nil)
	err := gateway.ExecuteRequest(
		context.Background(),
		OutboundRequest{
			Method: http.MethodGet,
			Path:   "projects",
		},
	)
	require.Error(t, err)
	expired := &ErrSessionExpired{}
	require.True(t, errors.As(err, &expired))
	require.True(t, creds.cleared)
	require.True(t, notifier.sessionExpired)
	require.Empty(t, notifier.messages)
}

// A 401 with no stored credential (e.g. a rejected login attempt) must not
// announce an expired session; there was nothing to expire.
func TestGatewayUnauthorizedWithoutCredential(t *testing.T) {
	server := httptest.NewServer(
		http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
				fmt.Fprintln(w, `{"detail": "Incorrect username or password"}`)
			},
		),
	)
	defer server.Close()
	notifier := &recordingNotifier{}
	gateway := NewGateway(server.URL, &fakeCredStore{}, notifier, nil)
	err := gateway.ExecuteRequest(
		context.Background(),
		OutboundRequest{
			Method: http.MethodPost,
			Path:   "auth/login",
		},
	)
	require.Error(t, err)
	expired := &ErrSessionExpired{}
	require.True(t, errors.As(err, &expired))
	require.Equal(t, "Incorrect username or password", expired.Detail)
	require.False(t, notifier.sessionExpired)
}

func TestGatewayServerErrorNotifies(t *testing.T) {
	server := httptest.NewServer(
		http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
		),
	)
	defer server.Close()
	creds := &fakeCredStore{token: "tok1"}
	notifier := &recordingNotifier{}
	gateway := NewGateway(server.URL, creds, notifier, nil)
	err := gateway.ExecuteRequest(
		context.Background(),
		OutboundRequest{
			Method: http.MethodGet,
			Path:   "projects",
		},
	)
	require.Error(t, err)
	serverErr := &ErrServer{}
	require.True(t, errors.As(err, &serverErr))
	require.Len(t, notifier.messages, 1)
	require.Contains(t, notifier.messages[0], "try again later")
	// Infrastructure errors don't end the session.
	require.False(t, creds.cleared)
}

func TestGatewayDetailErrorNotifies(t *testing.T) {
	server := httptest.NewServer(
		http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
				fmt.Fprintln(w, `{"detail": "Project not found"}`)
			},
		),
	)
	defer server.Close()
	notifier := &recordingNotifier{}
	gateway := NewGateway(server.URL, &fakeCredStore{token: "tok1"}, notifier, nil)
	err := gateway.ExecuteRequest(
		context.Background(),
		OutboundRequest{
			Method: http.MethodGet,
			Path:   "projects/42",
		},
	)
	require.Error(t, err)
	detailErr := &ErrDetail{}
	require.True(t, errors.As(err, &detailErr))
	require.Equal(t, "Project not found", detailErr.Detail)
	require.Equal(t, []string{"Project not found"}, notifier.messages)
}

func TestGatewayOtherErrorPropagates(t *testing.T) {
	server := httptest.NewServer(
		http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
				fmt.Fprintln(w, "no envelope here")
			},
		),
	)
	defer server.Close()
	creds := &fakeCredStore{token: "tok1"}
	notifier := &recordingNotifier{}
	gateway := NewGateway(server.URL, creds, notifier, nil)
	err := gateway.ExecuteRequest(
		context.Background(),
		OutboundRequest{
			Method: http.MethodGet,
			Path:   "projects",
		},
	)
	require.Error(t, err)
	require.Contains(t, err.Error(), "400")
	require.Empty(t, notifier.messages)
	require.False(t, notifier.sessionExpired)
	require.False(t, creds.cleared)
}

func TestGatewayUnmarshalsResponse(t *testing.T) {
	server := httptest.NewServer(
		http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprintln(w, `{"access_token": "tok1", "token_type": "bearer"}`)
			},
		),
	)
	defer server.Close()
	gateway := NewGateway(server.URL, &fakeCredStore{}, nil, nil)
	respObj := struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}{}
	err := gateway.ExecuteRequest(
		context.Background(),
		OutboundRequest{
			Method:  http.MethodPost,
			Path:    "auth/login",
			RespObj: &respObj,
		},
	)
	require.NoError(t, err)
	require.Equal(t, "tok1", respObj.AccessToken)
	require.Equal(t, "bearer", respObj.TokenType)
}
