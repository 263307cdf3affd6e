package testhub

import (
	"github.com/kmaitland/testhub/internal/apimachinery"
)

// Client is the top-level client for the test management API. All resource
// clients share a single Gateway, so the credential handling and response
// classification described in the apimachinery package apply uniformly to
// every call.
type Client interface {
	Auth() AuthClient
	Projects() ProjectsClient
	TestCases() TestCasesClient
	Executions() ExecutionsClient
}

type client struct {
	authClient       AuthClient
	projectsClient   ProjectsClient
	testCasesClient  TestCasesClient
	executionsClient ExecutionsClient
}

// NewClient returns a Client that issues every request through the given
// Gateway.
func NewClient(gateway *apimachinery.Gateway) Client {
	return &client{
		authClient:       NewAuthClient(gateway),
		projectsClient:   NewProjectsClient(gateway),
		testCasesClient:  NewTestCasesClient(gateway),
		executionsClient: NewExecutionsClient(gateway),
	}
}

func (c *client) Auth() AuthClient {
	return c.authClient
}

func (c *client) Projects() ProjectsClient {
	return c.projectsClient
}

func (c *client) TestCases() TestCasesClient {
	return c.testCasesClient
}

func (c *client) Executions() ExecutionsClient {
	return c.executionsClient
}
