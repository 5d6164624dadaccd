// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/newsgate/internal/platform/apperr"
	"github.com/taibuivan/newsgate/internal/platform/constants"
	"github.com/taibuivan/newsgate/internal/platform/ctxutil"
	"github.com/taibuivan/newsgate/internal/platform/sec"
	"github.com/taibuivan/newsgate/internal/platform/validate"
)

/*
DecodeJSON reads the request body and decodes it into the target structure.

Parameters:
  - request: *http.Request
  - target: interface{} (Pointer to the destination struct)

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(request *http.Request, target interface{}) error {
	if request.Body == nil {
		return validate.ErrInvalidJSON
	}
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
PathText retrieves a free-text URL parameter in its decoded form.

The router may hand back the escaped form when the path contains encoded
separators, so the value is unescaped once. Values that do not unescape
cleanly are returned as-is.
*/
func PathText(request *http.Request, name string) string {
	raw := chi.URLParam(request, name)
	if decoded, err := url.PathUnescape(raw); err == nil {
		return decoded
	}
	return raw
}

/*
Int64Param parses a named URL parameter as a positive integer identifier.

Returns:
  - int64: The parsed identifier
  - error: A validation error naming the parameter when it is not a positive integer
*/
func Int64Param(request *http.Request, name string) (int64, error) {
	raw := chi.URLParam(request, name)

	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || value <= 0 {
		return 0, validate.Invalid(name, "Must be a positive integer")
	}

	return value, nil
}

/*
BearerToken extracts the raw token from an "Authorization: Bearer <token>" header.

The scheme is matched case-insensitively. The boolean reports whether the
header was present at all, so callers can tell an anonymous request apart
from a malformed one.

Returns:
  - string: The token, empty when the header is absent or malformed
  - bool: Whether an Authorization header was sent
  - error: apperr.Unauthorized when the header is present but malformed
*/
func BearerToken(request *http.Request) (string, bool, error) {
	header := strings.TrimSpace(request.Header.Get(constants.HeaderAuthorization))
	if header == "" {
		return "", false, nil
	}

	scheme, token, found := strings.Cut(header, " ")
	token = strings.TrimSpace(token)

	if !found || !strings.EqualFold(scheme, constants.BearerScheme) || token == "" {
		return "", true, apperr.Unauthorized("Invalid authorization format")
	}

	return token, true, nil
}

/*
Principal extracts the authenticated caller from the request context.

Returns nil if the request is anonymous.
*/
func Principal(request *http.Request) *sec.Principal {
	return ctxutil.GetPrincipal(request.Context())
}

/*
RequiredPrincipal ensures the request is authenticated and returns the caller.

Returns:
  - *sec.Principal: The authenticated caller
  - error: apperr.Unauthorized if the request is anonymous
*/
func RequiredPrincipal(request *http.Request) (*sec.Principal, error) {
	principal := ctxutil.GetPrincipal(request.Context())
	if principal == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}

	return principal, nil
}
