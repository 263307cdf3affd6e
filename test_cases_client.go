package testhub

import (
	"context"
	"fmt"
	"net/http"

	"github.com/kmaitland/testhub/internal/apimachinery"
)

// TestCaseListOptions controls paging and filtering for test case lists.
type TestCaseListOptions struct {
	ListOptions
	// Type restricts results to a single test case type.
	Type TestCaseType
}

func (t TestCaseListOptions) queryParams() map[string]string {
	params := t.ListOptions.queryParams()
	if t.Type != "" {
		params["test_type"] = string(t.Type)
	}
	return params
}

// TestCasesClient is the specialized client for managing TestCases.
type TestCasesClient interface {
	List(
		ctx context.Context,
		projectID int,
		opts TestCaseListOptions,
	) ([]TestCase, error)
	Get(ctx context.Context, id int) (TestCase, error)
	Create(
		ctx context.Context,
		projectID int,
		spec TestCaseSpec,
	) (TestCase, error)
	Update(ctx context.Context, id int, spec TestCaseSpec) (TestCase, error)
	Delete(ctx context.Context, id int) error
}

type testCasesClient struct {
	gateway *apimachinery.Gateway
}

// NewTestCasesClient returns a specialized client for managing TestCases.
func NewTestCasesClient(gateway *apimachinery.Gateway) TestCasesClient {
	return &testCasesClient{
		gateway: gateway,
	}
}

func (t *testCasesClient) List(
	ctx context.Context,
	projectID int,
	opts TestCaseListOptions,
) ([]TestCase, error) {
	testCases := []TestCase{}
	return testCases, t.gateway.ExecuteRequest(
		ctx,
		apimachinery.OutboundRequest{
			Method:      http.MethodGet,
			Path:        fmt.Sprintf("projects/%d/test-cases", projectID),
			QueryParams: opts.queryParams(),
			SuccessCode: http.StatusOK,
			RespObj:     &testCases,
		},
	)
}

func (t *testCasesClient) Get(ctx context.Context, id int) (TestCase, error) {
	testCase := TestCase{}
	return testCase, t.gateway.ExecuteRequest(
		ctx,
		apimachinery.OutboundRequest{
			Method:      http.MethodGet,
			Path:        fmt.Sprintf("test-cases/%d", id),
			SuccessCode: http.StatusOK,
			RespObj:     &testCase,
		},
	)
}

func (t *testCasesClient) Create(
	ctx context.Context,
	projectID int,
	spec TestCaseSpec,
) (TestCase, error) {
	testCase := TestCase{}
	return testCase, t.gateway.ExecuteRequest(
		ctx,
		apimachinery.OutboundRequest{
			Method:      http.MethodPost,
			Path:        fmt.Sprintf("projects/%d/test-cases", projectID),
			ReqBodyObj:  spec,
			SuccessCode: http.StatusOK,
			RespObj:     &testCase,
		},
	)
}

func (t *testCasesClient) Update(
	ctx context.Context,
	id int,
	spec TestCaseSpec,
) (TestCase, error) {
	testCase := TestCase{}
	return testCase, t.gateway.ExecuteRequest(
		ctx,
		apimachinery.OutboundRequest{
			Method:      http.MethodPut,
			Path:        fmt.Sprintf("test-cases/%d", id),
			ReqBodyObj:  spec,
			SuccessCode: http.StatusOK,
			RespObj:     &testCase,
		},
	)
}

func (t *testCasesClient) Delete(ctx context.Context, id int) error {
	return t.gateway.ExecuteRequest(
		ctx,
		apimachinery.OutboundRequest{
			Method:      http.MethodDelete,
			Path:        fmt.Sprintf("test-cases/%d", id),
			SuccessCode: http.StatusOK,
		},
	)
}
