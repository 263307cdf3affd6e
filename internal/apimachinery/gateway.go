package apimachinery

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"net/url"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// CredentialStore is the Gateway's view of durable credential storage: it
// reads the bearer token before every dispatch and clears storage when the
// API server rejects the credential.
type CredentialStore interface {
	Token() (string, error)
	Clear() error
}

// Gateway is the single chokepoint through which every outgoing API request
// and every incoming response flows. It attaches the bearer credential,
// classifies non-success responses, and performs the user-facing side
// effects of that classification uniformly so that call sites don't have to.
type Gateway struct {
	APIAddress string
	Creds      CredentialStore
	Notifier   Notifier
	HTTPClient *http.Client
	Logger     zerolog.Logger
}

// NewGateway returns a Gateway. A nil notifier is replaced with a
// NopNotifier and a nil httpClient with http.DefaultClient.
func NewGateway(
	apiAddress string,
	creds CredentialStore,
	notifier Notifier,
	httpClient *http.Client,
) *Gateway {
	if notifier == nil {
		notifier = &NopNotifier{}
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Gateway{
		APIAddress: apiAddress,
		Creds:      creds,
		Notifier:   notifier,
		HTTPClient: httpClient,
		Logger:     zerolog.Nop(),
	}
}

// ExecuteRequest issues the given request and, on success, unmarshals the
// response body into req.RespObj if one was provided.
func (g *Gateway) ExecuteRequest(
	ctx context.Context,
	req OutboundRequest,
) error {
	resp, err := g.SubmitRequest(ctx, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if req.RespObj != nil {
		respBodyBytes, err := ioutil.ReadAll(resp.Body)
		if err != nil {
			return errors.Wrap(err, "error reading response body")
		}
		if err := json.Unmarshal(respBodyBytes, req.RespObj); err != nil {
			return errors.Wrap(err, "error unmarshaling response body")
		}
	}
	return nil
}

// SubmitRequest issues the given request and returns the raw response. Any
// non-success response is classified and dispatched before an error is
// returned, so callers never need to special-case authentication or server
// failures themselves.
func (g *Gateway) SubmitRequest(
	ctx context.Context,
	apiReq OutboundRequest,
) (*http.Response, error) {
	var reqBodyReader io.Reader
	contentType := ""
	if apiReq.Form != nil {
		form := url.Values{}
		for k, v := range apiReq.Form {
			form.Set(k, v)
		}
		reqBodyReader = strings.NewReader(form.Encode())
		contentType = "application/x-www-form-urlencoded"
	} else if apiReq.ReqBodyObj != nil {
		switch rb := apiReq.ReqBodyObj.(type) {
		case []byte:
			reqBodyReader = bytes.NewBuffer(rb)
		default:
			reqBodyBytes, err := json.Marshal(apiReq.ReqBodyObj)
			if err != nil {
				return nil, errors.Wrap(err, "error marshaling request body")
			}
			reqBodyReader = bytes.NewBuffer(reqBodyBytes)
		}
		contentType = "application/json"
	}

	req, err := http.NewRequestWithContext(
		ctx,
		apiReq.Method,
		fmt.Sprintf("%s/%s", g.APIAddress, apiReq.Path),
		reqBodyReader,
	)
	if err != nil {
		return nil, errors.Wrapf(
			err,
			"error creating request %s %s",
			apiReq.Method,
			apiReq.Path,
		)
	}
	if len(apiReq.QueryParams) > 0 {
		q := req.URL.Query()
		for k, v := range apiReq.QueryParams {
			q.Set(k, v)
		}
		req.URL.RawQuery = q.Encode()
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for k, v := range apiReq.Headers {
		req.Header.Add(k, v)
	}

	// The credential is read from durable storage at dispatch time rather
	// than captured at client construction so that every request reflects
	// the current session.
	if g.Creds != nil {
		token, err := g.Creds.Token()
		if err != nil {
			return nil, errors.Wrap(err, "error reading session credential")
		}
		if token != "" {
			req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
		}
	}

	g.Logger.Debug().
		Str("method", apiReq.Method).
		Str("path", apiReq.Path).
		Msg("dispatching API request")

	resp, err := g.HTTPClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "error invoking API")
	}

	g.Logger.Debug().
		Str("method", apiReq.Method).
		Str("path", apiReq.Path).
		Int("status", resp.StatusCode).
		Msg("received API response")

	if (apiReq.SuccessCode == 0 && resp.StatusCode != http.StatusOK) ||
		(apiReq.SuccessCode != 0 && resp.StatusCode != apiReq.SuccessCode) {
		defer resp.Body.Close()
		bodyBytes, err := ioutil.ReadAll(resp.Body)
		if err != nil {
			return nil, errors.Wrap(err, "error reading error response body")
		}
		return nil, g.dispatchOutcome(resp.StatusCode, bodyBytes)
	}
	return resp, nil
}

// dispatchOutcome performs the side effects implied by a non-success
// response and converts it to the error the caller receives. The caller's
// error is returned even for fully-handled outcomes so that anyone awaiting
// the call can stop its own loading state.
func (g *Gateway) dispatchOutcome(statusCode int, body []byte) error {
	outcome := classifyOutcome(statusCode, body)
	switch outcome.Kind {
	case OutcomeUnauthorized:
		// The session is over no matter which call discovered it. Clear the
		// credential before telling anyone so that no subsequent request can
		// be issued with it. The login redirection only applies when a stored
		// credential was actually invalidated; a rejected login attempt had
		// nothing to expire.
		hadCredential := false
		if g.Creds != nil {
			if token, err := g.Creds.Token(); err == nil && token != "" {
				hadCredential = true
			}
			if err := g.Creds.Clear(); err != nil {
				g.Logger.Debug().Err(err).Msg("error clearing session credential")
			}
		}
		if hadCredential {
			g.Notifier.SessionExpired()
		}
		return &ErrSessionExpired{Detail: outcome.Message}
	case OutcomeServerError:
		g.Notifier.Notify(outcome.Message)
		return &ErrServer{StatusCode: statusCode}
	case OutcomeClientDetail:
		g.Notifier.Notify(outcome.Message)
		return &ErrDetail{StatusCode: statusCode, Detail: outcome.Message}
	}
	return errors.Errorf("received %d from API server", statusCode)
}
