// FILE: internal/remote/client_test.go
package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"news-feed-client/internal/dto"
	"news-feed-client/internal/pkg/apierror"
	"news-feed-client/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 5*time.Second, time.Millisecond, logger.NewNopLogger())
}

func TestBearerTokenAndRequestIdInjection(t *testing.T) {
	var gotAuth, gotRequestId string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestId = r.Header.Get("X-Request-Id")
		w.Write([]byte(`{}`))
	}))
	client.SetTokenSource(func() string { return "tok-1" })

	auth := NewAuthClient(client)
	_, err := auth.Me(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Bearer tok-1", gotAuth)
	assert.NotEmpty(t, gotRequestId)
}

func TestNoAuthorizationHeaderWithoutToken(t *testing.T) {
	var gotAuth string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"articles":[],"total":0,"page":1,"limit":10,"totalPages":0}`))
	}))
	client.SetTokenSource(func() string { return "" })

	news := NewNewsClient(client)
	_, err := news.GetNews(context.Background(), nil, 1, 10)
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestUnauthorizedFiresHookOnceAndClassifies(t *testing.T) {
	var hookCalls int32
	var hookMessage string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail":"Could not validate credentials"}`))
	}))
	client.SetAuthRejectedHook(func(message string) {
		atomic.AddInt32(&hookCalls, 1)
		hookMessage = message
	})

	auth := NewAuthClient(client)
	_, err := auth.Me(context.Background())
	require.Error(t, err)

	assert.True(t, apierror.IsKind(err, apierror.KindAuthRejected))
	assert.Equal(t, int32(1), atomic.LoadInt32(&hookCalls), "401 is not retried")
	assert.Equal(t, "Could not validate credentials", hookMessage)
}

func TestValidationPayloadShapesNormalize(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{name: "string detail", status: 400, body: `{"detail":"Passwords do not match"}`, want: "Passwords do not match"},
		{name: "array detail", status: 422, body: `{"detail":[{"loc":["body","email"],"msg":"value is not a valid email address"}]}`, want: "value is not a valid email address"},
		{name: "object detail", status: 422, body: `{"detail":{"msg":"invalid payload"}}`, want: "invalid payload"},
		{name: "message field", status: 400, body: `{"message":"bad request"}`, want: "bad request"},
		{name: "opaque body", status: 400, body: `not even json`, want: "Bad Request"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))

			auth := NewAuthClient(client)
			_, err := auth.Register(context.Background(), &dto.RegisterRequest{})
			require.Error(t, err)

			assert.True(t, apierror.IsKind(err, apierror.KindValidation))
			assert.Equal(t, tt.want, apierror.MessageOf(err))
		})
	}
}

func TestRetryableCallRetriesOnceOnServerError(t *testing.T) {
	var attempts int32
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&attempts, 1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(dto.SummarizeResponse{Results: []dto.SummaryResult{{Summary: "S"}}})
	}))

	summarize := NewSummarizeClient(client)
	res, err := summarize.Summarize(context.Background(), []string{"text"})
	require.NoError(t, err)

	assert.Equal(t, int32(2), atomic.LoadInt32(&attempts))
	require.Len(t, res.Results, 1)
	assert.Equal(t, "S", res.Results[0].Summary)
}

func TestRetryableCallGivesUpAfterOneRetry(t *testing.T) {
	var attempts int32
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))

	news := NewNewsClient(client)
	_, err := news.GetNews(context.Background(), []string{"sports"}, 1, 10)
	require.Error(t, err)

	assert.True(t, apierror.IsKind(err, apierror.KindNetwork))
	assert.Equal(t, int32(2), atomic.LoadInt32(&attempts))
}

func TestNonRetryableCallDoesNotRetry(t *testing.T) {
	var attempts int32
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))

	auth := NewAuthClient(client)
	_, err := auth.Login(context.Background(), &dto.LoginRequest{Username: "alice", Password: "x"})
	require.Error(t, err)

	assert.True(t, apierror.IsKind(err, apierror.KindNetwork))
	assert.Equal(t, int32(1), atomic.LoadInt32(&attempts), "login is not idempotent")
}

func TestCategoriesParamOmittedWhenEmpty(t *testing.T) {
	var query string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.RawQuery
		w.Write([]byte(`{"articles":[],"total":0,"page":1,"limit":10,"totalPages":0}`))
	}))

	news := NewNewsClient(client)
	_, err := news.GetNews(context.Background(), nil, 2, 10)
	require.NoError(t, err)
	assert.NotContains(t, query, "categories", "empty set means no filter, not an empty parameter")
	assert.Contains(t, query, "page=2")

	_, err = news.GetNews(context.Background(), []string{"crime", "sports"}, 1, 10)
	require.NoError(t, err)
	assert.Contains(t, query, "categories=crime%2Csports")
}

func TestTransportFailureIsNetworkKind(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", time.Second, time.Millisecond, logger.NewNopLogger())

	auth := NewAuthClient(client)
	_, err := auth.Me(context.Background())
	require.Error(t, err)
	assert.True(t, apierror.IsKind(err, apierror.KindNetwork))
}

func TestNotFoundIsRemoteKind(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail":"Not Found"}`))
	}))

	news := NewNewsClient(client)
	_, err := news.GetClusters(context.Background(), 1, 10)
	require.Error(t, err)
	assert.True(t, apierror.IsKind(err, apierror.KindRemote))
}
