package cecil

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// do sends one API request. A non-nil body is JSON-encoded; a non-nil out
// receives the decoded response and, when it implements validator, is
// validated. Non-2xx statuses become an *APIError.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &RequestError{Op: method + " " + path, Err: fmt.Errorf("encode request body: %w", err)}
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &RequestError{Op: method + " " + path, Err: err}
	}

	requestID := uuid.NewString()
	req.Header.Set(headerOrganisationID, c.organisationID)
	req.Header.Set(headerRequestID, requestID)
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpc.Do(req)
	if err != nil {
		return &RequestError{Op: method + " " + path, Err: err}
	}
	defer resp.Body.Close()

	c.log.Debug().
		Str("request_id", requestID).
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("api call")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.apiError(resp, method, path, requestID)
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &DecodeError{Path: path, Err: err}
	}
	if v, ok := out.(validator); ok {
		if err := v.validate(); err != nil {
			return &DecodeError{Path: path, Err: err}
		}
	}
	return nil
}

// apiError builds the error for a non-2xx response, pulling the message from
// a {"Message": ...} body when the API provides one.
func (c *Client) apiError(resp *http.Response, method, path, requestID string) *APIError {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	var payload struct {
		Message string `json:"Message"`
	}
	msg := ""
	if json.Unmarshal(body, &payload) == nil && payload.Message != "" {
		msg = payload.Message
	} else if len(body) > 0 {
		msg = strings.TrimSpace(string(body))
	}

	return &APIError{
		StatusCode: resp.StatusCode,
		Method:     method,
		Path:       path,
		RequestID:  requestID,
		Message:    msg,
	}
}

// list fetches a collection wrapped in the Records envelope and validates
// every record.
func list[T any](ctx context.Context, c *Client, path string) ([]T, error) {
	var env records[T]
	if err := c.do(ctx, http.MethodGet, path, nil, &env); err != nil {
		return nil, err
	}
	for i := range env.Records {
		if v, ok := any(&env.Records[i]).(validator); ok {
			if err := v.validate(); err != nil {
				return nil, &DecodeError{Path: path, Err: err}
			}
		}
	}
	return env.Records, nil
}

func requireID(op, id string) error {
	if id == "" {
		return &RequestError{Op: op, Err: errors.New("id is required")}
	}
	return nil
}
