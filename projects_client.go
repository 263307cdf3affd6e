package testhub

import (
	"context"
	"fmt"
	"net/http"

	"github.com/kmaitland/testhub/internal/apimachinery"
)

// ProjectsClient is the specialized client for managing Projects.
type ProjectsClient interface {
	List(context.Context, ListOptions) ([]Project, error)
	Get(ctx context.Context, id int) (Project, error)
	Create(context.Context, ProjectSpec) (Project, error)
	Update(ctx context.Context, id int, spec ProjectSpec) (Project, error)
	Delete(ctx context.Context, id int) error
}

type projectsClient struct {
	gateway *apimachinery.Gateway
}

// NewProjectsClient returns a specialized client for managing Projects.
func NewProjectsClient(gateway *apimachinery.Gateway) ProjectsClient {
	return &projectsClient{
		gateway: gateway,
	}
}

func (p *projectsClient) List(
	ctx context.Context,
	opts ListOptions,
) ([]Project, error) {
	projects := []Project{}
	return projects, p.gateway.ExecuteRequest(
		ctx,
		apimachinery.OutboundRequest{
			Method:      http.MethodGet,
			Path:        "projects",
			QueryParams: opts.queryParams(),
			SuccessCode: http.StatusOK,
			RespObj:     &projects,
		},
	)
}

func (p *projectsClient) Get(ctx context.Context, id int) (Project, error) {
	project := Project{}
	return project, p.gateway.ExecuteRequest(
		ctx,
		apimachinery.OutboundRequest{
			Method:      http.MethodGet,
			Path:        fmt.Sprintf("projects/%d", id),
			SuccessCode: http.StatusOK,
			RespObj:     &project,
		},
	)
}

func (p *projectsClient) Create(
	ctx context.Context,
	spec ProjectSpec,
) (Project, error) {
	project := Project{}
	return project, p.gateway.ExecuteRequest(
		ctx,
		apimachinery.OutboundRequest{
			Method:      http.MethodPost,
			Path:        "projects",
			ReqBodyObj:  spec,
			SuccessCode: http.StatusOK,
			RespObj:     &project,
		},
	)
}

func (p *projectsClient) Update(
	ctx context.Context,
	id int,
	spec ProjectSpec,
) (Project, error) {
	project := Project{}
	return project, p.gateway.ExecuteRequest(
		ctx,
		apimachinery.OutboundRequest{
			Method:      http.MethodPut,
			Path:        fmt.Sprintf("projects/%d", id),
			ReqBodyObj:  spec,
			SuccessCode: http.StatusOK,
			RespObj:     &project,
		},
	)
}

func (p *projectsClient) Delete(ctx context.Context, id int) error {
	return p.gateway.ExecuteRequest(
		ctx,
		apimachinery.OutboundRequest{
			Method:      http.MethodDelete,
			Path:        fmt.Sprintf("projects/%d", id),
			SuccessCode: http.StatusOK,
		},
	)
}
