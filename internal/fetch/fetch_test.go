package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestFetch_ReturnsBodyAndSendsHeaders(t *testing.T) {
	var gotUA, gotAccept string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
		w.Write([]byte("<rss/>"))
	}))
	defer ts.Close()

	body, err := New(2*time.Second).Fetch(context.Background(), ts.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if body != "<rss/>" {
		t.Errorf("body: got %q", body)
	}
	if !strings.HasPrefix(gotUA, "samachar/") {
		t.Errorf("user agent: got %q", gotUA)
	}
	if !strings.Contains(gotAccept, "application/rss+xml") || !strings.Contains(gotAccept, "application/atom+xml") {
		t.Errorf("accept header missing syndication types: %q", gotAccept)
	}
}

func TestFetch_NonSuccessStatusIsError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer ts.Close()

	if _, err := New(2*time.Second).Fetch(context.Background(), ts.URL); err == nil {
		t.Errorf("expected error for non-2xx status")
	}
}

func TestFetch_TimeoutIsError(t *testing.T) {
	release := make(chan struct{})
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer ts.Close()
	defer close(release)

	start := time.Now()
	_, err := New(100*time.Millisecond).Fetch(context.Background(), ts.URL)
	if err == nil {
		t.Fatalf("expected timeout error")
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("timeout took too long: %v", elapsed)
	}
}
