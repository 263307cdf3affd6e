package testhub

import (
	"context"
	"fmt"
	"net/http"

	"github.com/kmaitland/testhub/internal/apimachinery"
)

// ExecutionsClient is the specialized client for the execution lifecycle.
// Executions run server-side; this client only starts, stops, and observes
// them.
type ExecutionsClient interface {
	List(
		ctx context.Context,
		projectID int,
		opts ListOptions,
	) ([]Execution, error)
	Get(ctx context.Context, id int) (Execution, error)
	Start(
		ctx context.Context,
		projectID int,
		spec ExecutionSpec,
	) (Execution, error)
	Stop(ctx context.Context, id int) error
}

type executionsClient struct {
	gateway *apimachinery.Gateway
}

// NewExecutionsClient returns a specialized client for the execution
// lifecycle.
func NewExecutionsClient(gateway *apimachinery.Gateway) ExecutionsClient {
	return &executionsClient{
		gateway: gateway,
	}
}

func (e *executionsClient) List(
	ctx context.Context,
	projectID int,
	opts ListOptions,
) ([]Execution, error) {
	executions := []Execution{}
	return executions, e.gateway.ExecuteRequest(
		ctx,
		apimachinery.OutboundRequest{
			Method:      http.MethodGet,
			Path:        fmt.Sprintf("projects/%d/executions", projectID),
			QueryParams: opts.queryParams(),
			SuccessCode: http.StatusOK,
			RespObj:     &executions,
		},
	)
}

func (e *executionsClient) Get(ctx context.Context, id int) (Execution, error) {
	execution := Execution{}
	return execution, e.gateway.ExecuteRequest(
		ctx,
		apimachinery.OutboundRequest{
			Method:      http.MethodGet,
			Path:        fmt.Sprintf("executions/%d", id),
			SuccessCode: http.StatusOK,
			RespObj:     &execution,
		},
	)
}

func (e *executionsClient) Start(
	ctx context.Context,
	projectID int,
	spec ExecutionSpec,
) (Execution, error) {
	execution := Execution{}
	return execution, e.gateway.ExecuteRequest(
		ctx,
		apimachinery.OutboundRequest{
			Method:      http.MethodPost,
			Path:        fmt.Sprintf("projects/%d/execute", projectID),
			ReqBodyObj:  spec,
			SuccessCode: http.StatusOK,
			RespObj:     &execution,
		},
	)
}

func (e *executionsClient) Stop(ctx context.Context, id int) error {
	return e.gateway.ExecuteRequest(
		ctx,
		apimachinery.OutboundRequest{
			Method:      http.MethodPost,
			Path:        fmt.Sprintf("executions/%d/stop", id),
			SuccessCode: http.StatusOK,
		},
	)
}
