package registry

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/favnpm/internal/cachemanager"
)

func newTestClient(t *testing.T, h http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := NewClient(Config{BaseURL: srv.URL + "/-/v1/search", QueryParam: "text", Size: 5, Timeout: time.Second})
	require.NoError(t, err)
	return c, srv
}

func TestSearch_DecodesItems(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/-/v1/search", r.URL.Path)
		require.Equal(t, "react", r.URL.Query().Get("text"))
		require.Equal(t, "5", r.URL.Query().Get("size"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"items":[{"package":{"name":"react"}},{"package":{"name":"react-dom"}}]}`))
	})

	pkgs, err := c.Search(context.Background(), "react")
	require.NoError(t, err)
	require.Equal(t, []string{"react", "react-dom"}, Names(pkgs))
}

func TestSearch_DecodesObjects(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"objects":[{"package":{"name":"lodash"}},{"package":{"name":""}},{"package":{"name":"lodash-es"}}],"total":2}`))
	})

	pkgs, err := c.Search(context.Background(), "lodash")
	require.NoError(t, err)
	require.Equal(t, []string{"lodash", "lodash-es"}, Names(pkgs))
}

func TestSearch_EmptyQueryMakesNoRequest(t *testing.T) {
	var hits atomic.Int32
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	})

	pkgs, err := c.Search(context.Background(), "   ")
	require.NoError(t, err)
	require.Empty(t, pkgs)
	require.Zero(t, hits.Load())
}

func TestSearch_StatusError(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := c.Search(context.Background(), "react")
	require.Error(t, err)
	require.True(t, IsNetworkError(err))

	var ne *NetworkError
	require.True(t, errors.As(err, &ne))
	require.Equal(t, http.StatusBadGateway, ne.StatusCode)
	require.Contains(t, err.Error(), "unexpected status 502")
}

func TestSearch_MalformedBody(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"items": [`))
	})

	_, err := c.Search(context.Background(), "react")
	require.True(t, IsNetworkError(err))
	require.Contains(t, err.Error(), "decode response")
}

func TestSearch_TransportError(t *testing.T) {
	c, srv := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})
	srv.Close()

	_, err := c.Search(context.Background(), "react")
	require.True(t, IsNetworkError(err))
}

func TestSearch_CanceledContext(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Search(ctx, "react")
	require.ErrorIs(t, err, context.Canceled)
}

func TestNewClient_InvalidURL(t *testing.T) {
	_, err := NewClient(Config{BaseURL: "not a url"})
	require.ErrorContains(t, err, "invalid registry URL")
}

func TestNewClient_DefaultsQueryParam(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.RawQuery
		_, _ = w.Write([]byte(`{"items":[]}`))
	}))
	t.Cleanup(srv.Close)

	c, err := NewClient(Config{BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = c.Search(context.Background(), "vue")
	require.NoError(t, err)
	require.Equal(t, "text=vue", got)
}

func TestNetworkError_Messages(t *testing.T) {
	require.Equal(t, "registry search: unexpected status 500", (&NetworkError{Op: "search", StatusCode: 500}).Error())
	require.Equal(t, "registry search: boom", (&NetworkError{Op: "search", Err: errors.New("boom")}).Error())
	require.Equal(t, "registry search failed", (&NetworkError{Op: "search"}).Error())
	require.False(t, IsNetworkError(errors.New("plain")))
}

func TestCached_ReusesSuccessfulLookups(t *testing.T) {
	var hits atomic.Int32
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(`{"items":[{"package":{"name":"axios"}}]}`))
	})

	cache := cachemanager.NewInMemoryCacheManager[string, []Package]("registry", time.Minute, time.Minute)
	cached := NewCached(c, cache, time.Minute)

	for _, q := range []string{"axios", "Axios", " axios "} {
		pkgs, err := cached.Search(context.Background(), q)
		require.NoError(t, err)
		require.Equal(t, []string{"axios"}, Names(pkgs))
	}
	require.Equal(t, int32(1), hits.Load())
}

func TestCached_DoesNotStoreFailures(t *testing.T) {
	var hits atomic.Int32
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"items":[{"package":{"name":"axios"}}]}`))
	})

	cache := cachemanager.NewInMemoryCacheManager[string, []Package]("registry", time.Minute, time.Minute)
	cached := NewCached(c, cache, time.Minute)

	_, err := cached.Search(context.Background(), "axios")
	require.Error(t, err)

	pkgs, err := cached.Search(context.Background(), "axios")
	require.NoError(t, err)
	require.Len(t, pkgs, 1)
	require.Equal(t, int32(2), hits.Load())
}

func TestCached_ZeroTTLBypassesCache(t *testing.T) {
	var hits atomic.Int32
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(`{"items":[]}`))
	})

	cache := cachemanager.NewInMemoryCacheManager[string, []Package]("registry", time.Minute, time.Minute)
	cached := NewCached(c, cache, 0)

	_, _ = cached.Search(context.Background(), "a")
	_, _ = cached.Search(context.Background(), "a")
	require.Equal(t, int32(2), hits.Load())
}
