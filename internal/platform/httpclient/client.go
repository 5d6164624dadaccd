// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package httpclient provides the typed JSON client used to reach downstream services.

Every call carries a bounded timeout and is never retried. Results are split
into two families so callers can branch without reading messages:

  - Transport failures: [apperr.BadGateway] and [apperr.GatewayTimeout].
  - Domain rejections: 400, 401, 403, 404 and 409 become the matching [apperr.AppError].

The caller's bearer token is forwarded when present in the context.
*/
package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/taibuivan/newsgate/internal/platform/apperr"
	"github.com/taibuivan/newsgate/internal/platform/constants"
)

// maxErrorBody bounds how much of a failed response is read for its message.
const maxErrorBody = 64 << 10

// Client is a JSON client bound to one downstream base URL.
type Client struct {
	httpClient *http.Client
	baseURL    string
	service    string
	timeout    time.Duration
}

// New creates a client for service (used in error messages) at baseURL.
func New(service, baseURL string, timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		service:    service,
		timeout:    timeout,
	}
}

// Get sends a GET and decodes the body into result.
func (c *Client) Get(ctx context.Context, path string, query url.Values, result any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, result)
}

// Post sends body as JSON and decodes the response into result.
func (c *Client) Post(ctx context.Context, path string, body, result any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, result)
}

// Put sends body as JSON and decodes the response into result.
func (c *Client) Put(ctx context.Context, path string, body, result any) error {
	return c.do(ctx, http.MethodPut, path, nil, body, result)
}

// Delete sends a DELETE and discards any response body.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, result any) error {
	var bodyReader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return apperr.Internal(fmt.Errorf("httpclient: encode %s request: %w", c.service, err))
		}
		bodyReader = bytes.NewReader(encoded)
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	request, err := http.NewRequestWithContext(callCtx, method, target, bodyReader)
	if err != nil {
		return apperr.Internal(fmt.Errorf("httpclient: build %s request: %w", c.service, err))
	}
	request.Header.Set(constants.HeaderAccept, "application/json")
	if body != nil {
		request.Header.Set(constants.HeaderContentType, "application/json")
	}
	if token := BearerToken(ctx); token != "" {
		request.Header.Set(constants.HeaderAuthorization, constants.BearerScheme+" "+token)
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return c.transportError(err)
	}
	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return c.statusError(response)
	}

	if result == nil || response.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, response.Body)
		return nil
	}

	if err := json.NewDecoder(response.Body).Decode(result); err != nil {
		if isTimeout(err) {
			return apperr.GatewayTimeout(c.service, err)
		}
		return apperr.BadGateway(c.service, fmt.Errorf("decode response: %w", err))
	}

	return nil
}

func (c *Client) transportError(err error) error {
	if isTimeout(err) {
		return apperr.GatewayTimeout(c.service, err)
	}
	return apperr.BadGateway(c.service, err)
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// statusError maps a non-2xx response to a typed error.
func (c *Client) statusError(response *http.Response) error {
	message := readMessage(response.Body)
	cause := fmt.Errorf("%s responded %d: %s", c.service, response.StatusCode, message)

	switch response.StatusCode {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return apperr.ValidationError(orDefault(message, "Rejected by "+c.service+" service")).WithCause(cause)
	case http.StatusUnauthorized:
		return apperr.Unauthorized(orDefault(message, "Rejected by "+c.service+" service")).WithCause(cause)
	case http.StatusForbidden:
		return apperr.Forbidden(orDefault(message, "Access denied by "+c.service+" service")).WithCause(cause)
	case http.StatusNotFound:
		return apperr.NotFound(c.service).WithCause(cause)
	case http.StatusConflict:
		return apperr.Conflict(orDefault(message, c.service+" already exists")).WithCause(cause)
	case http.StatusGatewayTimeout:
		return apperr.GatewayTimeout(c.service, cause)
	default:
		return apperr.BadGateway(c.service, cause)
	}
}

// readMessage pulls a human readable message out of an error body.
func readMessage(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, maxErrorBody))
	if err != nil || len(raw) == 0 {
		return ""
	}

	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(raw, &payload) == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
		return ""
	}

	return strings.TrimSpace(string(raw))
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
