// FILE: internal/remote/client.go
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"news-feed-client/internal/pkg/apierror"
	"news-feed-client/internal/pkg/logger"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
)

// TokenSource supplies the current bearer token, or "" when the session is
// unauthenticated.
type TokenSource func() string

// AuthRejectedHook fires once per authentication-rejected response, before
// the error propagates. The session manager uses it to force logout so a
// single 401 anywhere cannot leave a stale authenticated state.
type AuthRejectedHook func(message string)

// Client is the shared HTTP transport to the backend. It injects the bearer
// token and a correlation id on every request, and normalizes all failures
// into the fixed apierror kinds at this boundary.
type Client struct {
	baseURL        string
	http           *http.Client
	retryInterval  time.Duration
	tokenSource    TokenSource
	onAuthRejected AuthRejectedHook
	log            logger.ILogger
}

func NewClient(baseURL string, timeout, retryInterval time.Duration, log logger.ILogger) *Client {
	return &Client{
		baseURL:       baseURL,
		http:          &http.Client{Timeout: timeout},
		retryInterval: retryInterval,
		log:           log,
	}
}

func (c *Client) SetTokenSource(ts TokenSource) {
	c.tokenSource = ts
}

func (c *Client) SetAuthRejectedHook(h AuthRejectedHook) {
	c.onAuthRejected = h
}

type call struct {
	method string
	path   string
	query  url.Values
	body   interface{}
	out    interface{}
	// retryable marks calls safe to repeat after a transient network
	// failure (GETs and the pure summarize batch).
	retryable bool
}

func (c *Client) do(ctx context.Context, req call) error {
	op := func() error {
		err := c.doOnce(ctx, req)
		if err != nil && !apierror.IsKind(err, apierror.KindNetwork) {
			return backoff.Permanent(err)
		}
		return err
	}

	var retries uint64
	if req.retryable {
		retries = 1
	}
	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(c.retryInterval), retries),
		ctx,
	)
	return backoff.Retry(op, policy)
}

func (c *Client) doOnce(ctx context.Context, req call) error {
	var bodyReader io.Reader
	if req.body != nil {
		payload, err := json.Marshal(req.body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(payload)
	}

	endpoint := c.baseURL + req.path
	if len(req.query) > 0 {
		endpoint += "?" + req.query.Encode()
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, endpoint, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Request-Id", uuid.New().String())
	if c.tokenSource != nil {
		if token := c.tokenSource(); token != "" {
			httpReq.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return apierror.Wrap(apierror.KindNetwork, req.method+" "+req.path+" failed", err)
	}
	defer resp.Body.Close()

	bodyBytes, _ := io.ReadAll(resp.Body)

	if resp.StatusCode < http.StatusMultipleChoices {
		if req.out != nil {
			if err := json.Unmarshal(bodyBytes, req.out); err != nil {
				return apierror.Wrap(apierror.KindNetwork, "failed to decode response from "+req.path, err)
			}
		}
		return nil
	}

	message := decodeRemoteMessage(bodyBytes)
	if message == "" {
		message = http.StatusText(resp.StatusCode)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		if c.onAuthRejected != nil {
			c.onAuthRejected(message)
		}
		return apierror.New(apierror.KindAuthRejected, message)
	case resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnprocessableEntity:
		return apierror.New(apierror.KindValidation, message)
	case resp.StatusCode >= http.StatusInternalServerError:
		return apierror.New(apierror.KindNetwork, fmt.Sprintf("backend error (status %d): %s", resp.StatusCode, message))
	default:
		return apierror.New(apierror.KindRemote, message)
	}
}

// decodeRemoteMessage flattens the backend's loose error payloads into one
// string. FastAPI puts errors under "detail" as a string, an object, or an
// array of {loc, msg} entries.
func decodeRemoteMessage(body []byte) string {
	var envelope struct {
		Detail  json.RawMessage `json:"detail"`
		Message string          `json:"message"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return ""
	}
	if len(envelope.Detail) > 0 {
		var s string
		if err := json.Unmarshal(envelope.Detail, &s); err == nil {
			return s
		}
		var obj struct {
			Msg string `json:"msg"`
		}
		if err := json.Unmarshal(envelope.Detail, &obj); err == nil && obj.Msg != "" {
			return obj.Msg
		}
		var list []struct {
			Msg string `json:"msg"`
		}
		if err := json.Unmarshal(envelope.Detail, &list); err == nil && len(list) > 0 {
			return list[0].Msg
		}
	}
	return envelope.Message
}
