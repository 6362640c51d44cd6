package favorites

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc, opts ...Option) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := NewClient(Config{URL: srv.URL + "/fav-packages", Timeout: time.Second}, opts...)
	require.NoError(t, err)
	return c, srv
}

func TestCommit_Accepted(t *testing.T) {
	var got Request
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/fav-packages", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.Equal(t, "req-1", r.Header.Get("X-Request-ID"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"result":"ok"}`))
	}, WithRequestIDFunc(func() string { return "req-1" }))

	out := c.Commit(context.Background(), Request{Name: "react", Description: "hooks"})
	require.Equal(t, OutcomeAccepted, out.Kind)
	require.NoError(t, out.Err)
	require.Equal(t, Request{Name: "react", Description: "hooks"}, got)
}

func TestCommit_AcceptedWithEmptyBody(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	out := c.Commit(context.Background(), Request{Name: "react", Description: "x"})
	require.Equal(t, OutcomeAccepted, out.Kind)
}

func TestCommit_Duplicate(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"result":"Package already added in favourites"}`))
	})

	out := c.Commit(context.Background(), Request{Name: "react", Description: "x"})
	require.Equal(t, OutcomeDuplicate, out.Kind)
	require.NoError(t, out.Err)
}

func TestCommit_FailedWithServerMessage(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"name is required"}`))
	})

	out := c.Commit(context.Background(), Request{Description: "x"})
	require.Equal(t, OutcomeFailed, out.Kind)
	require.Equal(t, "name is required", out.Reason)

	var se *StatusError
	require.True(t, errors.As(out.Err, &se))
	require.Equal(t, http.StatusBadRequest, se.StatusCode)
}

func TestCommit_FailedFallbackMessage(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`<html>oops</html>`))
	})

	out := c.Commit(context.Background(), Request{Name: "react", Description: "x"})
	require.Equal(t, OutcomeFailed, out.Kind)
	require.Equal(t, DefaultFailureReason, out.Reason)
}

func TestCommit_TransportError(t *testing.T) {
	c, srv := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})
	srv.Close()

	out := c.Commit(context.Background(), Request{Name: "react", Description: "x"})
	require.Equal(t, OutcomeFailed, out.Kind)
	require.Error(t, out.Err)
	require.Empty(t, out.Reason)
}

func TestCommit_IgnoresCallerCancellation(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out := c.Commit(ctx, Request{Name: "react", Description: "x"})
	require.Equal(t, OutcomeAccepted, out.Kind)
}

func TestCommit_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(func() {
		close(release)
		srv.Close()
	})

	c, err := NewClient(Config{URL: srv.URL, Timeout: 50 * time.Millisecond})
	require.NoError(t, err)

	out := c.Commit(context.Background(), Request{Name: "react", Description: "x"})
	require.Equal(t, OutcomeFailed, out.Kind)
	require.ErrorIs(t, out.Err, context.DeadlineExceeded)
}

func TestCommit_GeneratesRequestIDs(t *testing.T) {
	ids := make(chan string, 2)
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		ids <- r.Header.Get("X-Request-ID")
	})

	c.Commit(context.Background(), Request{Name: "a", Description: "x"})
	c.Commit(context.Background(), Request{Name: "b", Description: "x"})

	first, second := <-ids, <-ids
	require.Len(t, first, 36)
	require.NotEqual(t, first, second)
}

func TestNewClient_InvalidURL(t *testing.T) {
	_, err := NewClient(Config{URL: "::"})
	require.ErrorContains(t, err, "invalid favorites URL")
}

func TestOutcomeKind_String(t *testing.T) {
	require.Equal(t, "accepted", OutcomeAccepted.String())
	require.Equal(t, "duplicate", OutcomeDuplicate.String())
	require.Equal(t, "failed", OutcomeFailed.String())
	require.Equal(t, "unknown", OutcomeKind(9).String())
}
