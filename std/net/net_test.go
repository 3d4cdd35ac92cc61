package net

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		assert.Equal(t, "test-agent", r.UserAgent())
		w.Header().Set("Content-Type", "text/css")
		_, _ = w.Write([]byte("p { color: red }"))
	}))
	defer srv.Close()
	c := NewClient(5*time.Second, "test-agent")

	body, ct, err := c.Fetch(context.Background(), srv.URL+"/style.css")
	require.NoError(t, err)
	assert.Equal(t, "p { color: red }", string(body))
	assert.Equal(t, "text/css", ct)

	_, _, err = c.Fetch(context.Background(), srv.URL+"/missing")
	assert.ErrorIs(t, err, ErrStatus)
}

func TestResolveURL(t *testing.T) {
	tests := []struct{ base, ref, want string }{
		{"https://example.com/docs/a.html", "b.css", "https://example.com/docs/b.css"},
		{"https://example.com/docs/a.html", "/img/x.png", "https://example.com/img/x.png"},
		{"https://example.com/a.html", "http://other.org/y", "http://other.org/y"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ResolveURL(tt.base, tt.ref))
	}
}

func TestIsNetworkURL(t *testing.T) {
	assert.True(t, IsNetworkURL("https://example.com"))
	assert.False(t, IsNetworkURL("file:///tmp/x.html"))
	assert.False(t, IsNetworkURL("docs/x.html"))
}
