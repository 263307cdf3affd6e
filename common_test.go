package testhub

import (
	"net/http/httptest"

	"github.com/kmaitland/testhub/internal/apimachinery"
)

const testToken = "11235813213455"

type testCredStore struct {
	token string
}

func (t *testCredStore) Token() (string, error) {
	return t.token, nil
}

func (t *testCredStore) Clear() error {
	t.token = ""
	return nil
}

func newTestClient(server *httptest.Server) Client {
	return NewClient(
		apimachinery.NewGateway(
			server.URL,
			&testCredStore{token: testToken},
			nil,
			nil,
		),
	)
}
