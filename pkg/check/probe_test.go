package check

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCheckAPIEndpointSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	s := NewSession(nil, nil, nil)
	res := s.CheckAPIEndpoint(context.Background(), srv.URL+"/api/health")

	assert.Equal(t, http.StatusOK, res.Status)
	assert.True(t, res.Success)
	assert.Empty(t, res.Error)
	assert.Empty(t, s.Errors())
}

func TestCheckAPIEndpointConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	s := NewSession(nil, nil, nil)
	res := s.CheckAPIEndpoint(context.Background(), url)

	assert.Equal(t, 0, res.Status, "transport failure is data, not an exception")
	assert.False(t, res.Success)
	assert.NotEmpty(t, res.Error)
	assert.Len(t, s.Errors(), 1)
}

func TestCheckImage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/logo.png" {
			w.Header().Set("Content-Type", "image/png")
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	s := NewSession(nil, nil, nil)

	assert.True(t, s.CheckImage(context.Background(), srv.URL+"/logo.png"))
	assert.Empty(t, s.Errors())

	assert.False(t, s.CheckImage(context.Background(), srv.URL+"/missing.png"))
	assert.Contains(t, s.Errors(), "Image "+srv.URL+"/missing.png failed to load")
}

func TestCheckImageUnreachableHostResolvesFalse(t *testing.T) {
	s := NewSession(nil, nil, nil)
	ok := s.CheckImage(context.Background(), "http://127.0.0.1:1/logo.png")
	assert.False(t, ok)
	assert.Len(t, s.Errors(), 1)
}

func TestSessionGoFunnelsFailures(t *testing.T) {
	s := NewSession(nil, nil, nil)

	s.Go("background probe", func() error {
		panic("boom")
	})

	assert.Eventually(t, func() bool {
		errs := s.Errors()
		return len(errs) == 1 && strings.Contains(errs[0], "background probe")
	}, time.Second, 10*time.Millisecond)
}
