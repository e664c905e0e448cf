package tiktok

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestResolver_ReturnsLocationWithoutFollowing(t *testing.T) {
	t.Parallel()

	var targetHits atomic.Int32
	target := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		targetHits.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	defer target.Close()

	var requests atomic.Int32
	var gotUA atomic.Value
	short := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		gotUA.Store(r.Header.Get("User-Agent"))
		if r.URL.Path != "/ZSabcd1234/" {
			t.Errorf("unexpected request path %q", r.URL.Path)
		}
		http.Redirect(w, r, target.URL+"/@x/video/999", http.StatusMovedPermanently)
	}))
	defer short.Close()

	resolver := NewResolver(NewRedirectClient(5*time.Second), "tokembed-test")
	got, err := resolver.Resolve(context.Background(), short.URL+"/ZSabcd1234/")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != target.URL+"/@x/video/999" {
		t.Fatalf("location = %q", got)
	}
	if requests.Load() != 1 {
		t.Fatalf("expected exactly one request, got %d", requests.Load())
	}
	if targetHits.Load() != 0 {
		t.Fatalf("redirect target must not be requested")
	}
	if ua, _ := gotUA.Load().(string); ua != "tokembed-test" {
		t.Fatalf("user agent = %q", ua)
	}
}

func TestResolver_OverridesFollowingClient(t *testing.T) {
	t.Parallel()

	var targetHits atomic.Int32
	target := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		targetHits.Add(1)
	}))
	defer target.Close()
	short := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, target.URL+"/@x/video/1", http.StatusFound)
	}))
	defer short.Close()

	resolver := NewResolver(&http.Client{}, "")
	if _, err := resolver.Resolve(context.Background(), short.URL); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if targetHits.Load() != 0 {
		t.Fatalf("resolver followed the redirect")
	}
}

func TestResolver_RelativeLocation(t *testing.T) {
	t.Parallel()

	short := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Location", "/@x/video/31")
		w.WriteHeader(http.StatusFound)
	}))
	defer short.Close()

	got, err := NewResolver(nil, "").Resolve(context.Background(), short.URL+"/abc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != short.URL+"/@x/video/31" {
		t.Fatalf("location = %q", got)
	}
}

func TestResolver_MissingLocation(t *testing.T) {
	t.Parallel()

	short := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>no redirect here</html>"))
	}))
	defer short.Close()

	_, err := NewResolver(nil, "").Resolve(context.Background(), short.URL)
	if !errors.Is(err, ErrRedirectFailed) {
		t.Fatalf("expected ErrRedirectFailed, got %v", err)
	}
}

func TestResolver_TransportError(t *testing.T) {
	t.Parallel()

	short := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	addr := short.URL
	short.Close()

	_, err := NewResolver(nil, "").Resolve(context.Background(), addr)
	if !errors.Is(err, ErrRedirectFailed) {
		t.Fatalf("expected ErrRedirectFailed, got %v", err)
	}
}
