package httpclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"
)

func TestGetJSON_DecodesAndSendsQuery(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/things" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("q"); got != "a b" {
			t.Errorf("expected q=%q, got %q", "a b", got)
		}
		if got := r.Header.Get("x-api-key"); got != "secret" {
			t.Errorf("expected api key header, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":"x"}]`))
	}))
	defer ts.Close()

	c := New(time.Second)
	if err := c.SetBaseURL(ts.URL + "/v1/"); err != nil {
		t.Fatalf("SetBaseURL: %v", err)
	}

	var out []struct {
		ID string `json:"id"`
	}
	err := c.GetJSON(context.Background(), "things", url.Values{"q": {"a b"}}, map[string]string{"x-api-key": "secret"}, &out)
	if err != nil {
		t.Fatalf("GetJSON: %v", err)
	}
	if len(out) != 1 || out[0].ID != "x" {
		t.Fatalf("unexpected decode: %#v", out)
	}
}

func TestGetJSON_Non2xxReturnsHTTPError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusInternalServerError)
	}))
	defer ts.Close()

	c := New(time.Second)
	err := c.GetJSON(context.Background(), ts.URL+"/x", nil, nil, nil)
	if err == nil {
		t.Fatalf("expected error")
	}

	var he *HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("expected *HTTPError, got %T", err)
	}
	if he.StatusCode != http.StatusInternalServerError || he.Body != "upstream down" {
		t.Fatalf("unexpected HTTPError: %#v", he)
	}
	if StatusCode(err) != http.StatusInternalServerError {
		t.Fatalf("StatusCode helper mismatch")
	}
}

func TestGetJSON_RelativeWithoutBaseURL(t *testing.T) {
	c := New(0)
	if err := c.GetJSON(context.Background(), "/x", nil, nil, nil); err == nil {
		t.Fatalf("expected error for relative path without BaseURL")
	}
}

func TestSetBaseURL_RejectsGarbage(t *testing.T) {
	c := New(time.Second)
	if err := c.SetBaseURL("ftp://example.com"); err == nil {
		t.Fatalf("expected unsupported scheme error")
	}
	if err := c.SetBaseURL("not a url"); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestGetJSON_RateLimitHonoursContext(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer ts.Close()

	c := New(time.Second).WithRateLimit(0.001, 1)

	// primer request consume el burst
	if err := c.GetJSON(context.Background(), ts.URL, nil, nil, nil); err != nil {
		t.Fatalf("first request: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := c.GetJSON(ctx, ts.URL, nil, nil, nil); err == nil {
		t.Fatalf("expected rate limit wait to fail with short deadline")
	}
}
