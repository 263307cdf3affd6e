package apimachinery

// OutboundRequest aggregates everything the Gateway needs to know to issue
// a single API request and deserialize its response.
type OutboundRequest struct {
	Method      string
	Path        string
	QueryParams map[string]string
	Headers     map[string]string
	// Form, when non-nil, is sent as an application/x-www-form-urlencoded
	// body. Mutually exclusive with ReqBodyObj.
	Form map[string]string
	// ReqBodyObj, when non-nil, is marshaled to JSON and sent as the request
	// body. Raw []byte values are sent as-is.
	ReqBodyObj  interface{}
	SuccessCode int
	RespObj     interface{}
}
