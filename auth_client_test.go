package testhub

import (
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAuthClientLogin(t *testing.T) {
	testSessionToken := Token{
		AccessToken: "opensesame",
		TokenType:   "bearer",
	}
	server := httptest.NewServer(
		http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, http.MethodPost, r.Method)
				require.Equal(t, "/auth/login", r.URL.Path)
				require.Equal(
					t,
					"application/x-www-form-urlencoded",
					r.Header.Get("Content-Type"),
				)
				require.NoError(t, r.ParseForm())
				require.Equal(t, "alice", r.PostFormValue("username"))
				require.Equal(t, "foobar", r.PostFormValue("password"))
				bodyBytes, err := json.Marshal(testSessionToken)
				require.NoError(t, err)
				fmt.Fprintln(w, string(bodyBytes))
			},
		),
	)
	defer server.Close()
	client := newTestClient(server)
	token, err := client.Auth().Login(context.Background(), "alice", "foobar")
	require.NoError(t, err)
	require.Equal(t, testSessionToken, token)
}

func TestAuthClientRegister(t *testing.T) {
	server := httptest.NewServer(
		http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, http.MethodPost, r.Method)
				require.Equal(t, "/auth/register", r.URL.Path)
				bodyBytes, err := ioutil.ReadAll(r.Body)
				require.NoError(t, err)
				reqBody := map[string]string{}
				require.NoError(t, json.Unmarshal(bodyBytes, &reqBody))
				require.Equal(t, "alice", reqBody["username"])
				require.Equal(t, "alice@example.com", reqBody["email"])
				require.Equal(t, "foobar", reqBody["password"])
				fmt.Fprintln(w, `{"id": 1, "username": "alice", "role": "tester"}`)
			},
		),
	)
	defer server.Close()
	client := newTestClient(server)
	user, err := client.Auth().Register(
		context.Background(),
		"alice",
		"alice@example.com",
		"foobar",
	)
	require.NoError(t, err)
	require.Equal(t, 1, user.ID)
	require.Equal(t, RoleTester, user.Role)
}

func TestAuthClientMe(t *testing.T) {
	server := httptest.NewServer(
		http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, http.MethodGet, r.Method)
				require.Equal(t, "/auth/me", r.URL.Path)
				require.Equal(
					t,
					fmt.Sprintf("Bearer %s", testToken),
					r.Header.Get("Authorization"),
				)
				fmt.Fprintln(w, `{"id": 1, "username": "alice", "is_active": true}`)
			},
		),
	)
	defer server.Close()
	client := newTestClient(server)
	user, err := client.Auth().Me(context.Background())
	require.NoError(t, err)
	require.Equal(t, "alice", user.Username)
	require.True(t, user.IsActive)
}
