package wikipedia

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/kozaktomas/celebrity-twin/internal/config"
)

func loadTestData(t *testing.T, filename string) []byte {
	t.Helper()
	path := filepath.Join("testdata", filename)
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to load test data %s: %v", filename, err)
	}
	return data
}

func setupMockServer(t *testing.T) *httptest.Server {
	t.Helper()

	summaryData := loadTestData(t, "summary_Tom_Hanks.json")
	searchData := loadTestData(t, "search_kaley.json")
	pageImagesData := loadTestData(t, "pageimages_reese.json")

	mux := http.NewServeMux()

	mux.HandleFunc("/api/rest_v1/page/summary/", func(w http.ResponseWriter, r *http.Request) {
		title := strings.TrimPrefix(r.URL.Path, "/api/rest_v1/page/summary/")
		if title != "Tom Hanks" {
			w.Header().Set("Content-Type", "application/problem+json")
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"type":"https://mediawiki.org/wiki/HyperSwitch/errors/not_found","title":"Not found."}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(summaryData)
	})

	mux.HandleFunc("/w/api.php", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		switch {
		case q.Get("list") == "search":
			w.Write(searchData)
		case q.Get("prop") == "pageimages":
			w.Write(pageImagesData)
		default:
			http.Error(w, "unexpected query", http.StatusBadRequest)
		}
	})

	return httptest.NewServer(mux)
}

func newTestClient(t *testing.T, server *httptest.Server) *Client {
	t.Helper()
	c, err := New(config.WikipediaConfig{URL: server.URL})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return c
}

func TestNew_Defaults(t *testing.T) {
	c, err := New(config.WikipediaConfig{})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if c.URL != config.DefaultWikipediaURL {
		t.Errorf("expected default URL '%s', got '%s'", config.DefaultWikipediaURL, c.URL)
	}
	if c.thumbSize != config.DefaultThumbSize {
		t.Errorf("expected default thumb size %d, got %d", config.DefaultThumbSize, c.thumbSize)
	}
	if c.userAgent != config.DefaultUserAgent {
		t.Errorf("expected default user agent, got '%s'", c.userAgent)
	}
	if c.limiter != nil {
		t.Error("expected no limiter without min interval")
	}
}

func TestNew_InvalidScheme(t *testing.T) {
	_, err := New(config.WikipediaConfig{URL: "ftp://en.wikipedia.org"})
	if err == nil {
		t.Fatal("expected error for non-http scheme")
	}
}

func TestRestURL_EscapesTitle(t *testing.T) {
	c, err := New(config.WikipediaConfig{URL: "https://en.wikipedia.org/"})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	tests := []struct {
		title    string
		expected string
	}{
		{"Tom Hanks", "https://en.wikipedia.org/api/rest_v1/page/summary/Tom%20Hanks"},
		{"AC/DC", "https://en.wikipedia.org/api/rest_v1/page/summary/AC%2FDC"},
		{"Beyoncé", "https://en.wikipedia.org/api/rest_v1/page/summary/Beyonc%C3%A9"},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			result := c.restURL("page/summary", tt.title)
			if result != tt.expected {
				t.Errorf("restURL(%q) = %q, want %q", tt.title, result, tt.expected)
			}
		})
	}
}

func TestGetSummary(t *testing.T) {
	server := setupMockServer(t)
	defer server.Close()

	c := newTestClient(t, server)

	summary, err := c.GetSummary(context.Background(), "Tom Hanks")
	if err != nil {
		t.Fatalf("GetSummary failed: %v", err)
	}

	if summary.Title != "Tom Hanks" {
		t.Errorf("expected title 'Tom Hanks', got '%s'", summary.Title)
	}
	if summary.Thumbnail == nil {
		t.Fatal("expected thumbnail")
	}
	if !strings.HasSuffix(summary.Thumbnail.Source, "320px-Tom_Hanks_TIFF_2019.jpg") {
		t.Errorf("unexpected thumbnail source '%s'", summary.Thumbnail.Source)
	}
	if summary.OriginalImage == nil || summary.OriginalImage.Width != 2448 {
		t.Error("expected original image with width 2448")
	}
}

func TestGetSummary_NotFound(t *testing.T) {
	server := setupMockServer(t)
	defer server.Close()

	c := newTestClient(t, server)

	_, err := c.GetSummary(context.Background(), "Nobody In Particular")
	if err == nil {
		t.Fatal("expected error for missing page")
	}
	if !IsNotFoundError(err) {
		t.Errorf("expected not found error, got %v", err)
	}
}

func TestGetSummary_InvalidJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>maintenance</html>`))
	}))
	defer server.Close()

	c := newTestClient(t, server)

	_, err := c.GetSummary(context.Background(), "Tom Hanks")
	if err == nil {
		t.Fatal("expected unmarshal error")
	}
	if IsNotFoundError(err) {
		t.Error("unmarshal error must not be reported as not found")
	}
}

func TestGetSummary_NoImage(t *testing.T) {
	data := loadTestData(t, "summary_no_image.json")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write(data)
	}))
	defer server.Close()

	c := newTestClient(t, server)

	summary, err := c.GetSummary(context.Background(), "Jane Placeholder")
	if err != nil {
		t.Fatalf("GetSummary failed: %v", err)
	}
	if summary.Thumbnail != nil || summary.OriginalImage != nil {
		t.Errorf("expected no images, got thumbnail=%v original=%v", summary.Thumbnail, summary.OriginalImage)
	}
}

func TestSearch(t *testing.T) {
	server := setupMockServer(t)
	defer server.Close()

	c := newTestClient(t, server)

	results, err := c.Search(context.Background(), "Kaley Cuoco")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Title != "Kaley Cuoco" {
		t.Errorf("expected first title 'Kaley Cuoco', got '%s'", results[0].Title)
	}
}

func TestSearch_SendsQuery(t *testing.T) {
	var gotQuery, gotAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		gotAgent = r.Header.Get("User-Agent")
		w.Write(loadTestData(t, "search_empty.json"))
	}))
	defer server.Close()

	c, err := New(config.WikipediaConfig{URL: server.URL, UserAgent: "twin-test/0.1"})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	results, err := c.Search(context.Background(), "Tom & Jerry")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}

	for _, part := range []string{"action=query", "list=search", "srsearch=Tom+%26+Jerry", "format=json", "origin=%2A"} {
		if !strings.Contains(gotQuery, part) {
			t.Errorf("expected query to contain '%s', got '%s'", part, gotQuery)
		}
	}
	if gotAgent != "twin-test/0.1" {
		t.Errorf("expected User-Agent 'twin-test/0.1', got '%s'", gotAgent)
	}
}

func TestGetPageImages(t *testing.T) {
	server := setupMockServer(t)
	defer server.Close()

	c := newTestClient(t, server)

	pages, err := c.GetPageImages(context.Background(), "Reese Witherspoon")
	if err != nil {
		t.Fatalf("GetPageImages failed: %v", err)
	}

	if len(pages) != 1 {
		t.Fatalf("expected 1 page, got %d", len(pages))
	}
	if pages[0].Thumbnail == nil || pages[0].Thumbnail.Width != 400 {
		t.Error("expected 400px thumbnail")
	}
}

func TestGetPageImages_Missing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("pithumbsize") != "250" {
			t.Errorf("expected pithumbsize 250, got '%s'", r.URL.Query().Get("pithumbsize"))
		}
		w.Write(loadTestData(t, "pageimages_missing.json"))
	}))
	defer server.Close()

	c, err := New(config.WikipediaConfig{URL: server.URL, ThumbSize: 250})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	pages, err := c.GetPageImages(context.Background(), "Nobody In Particular")
	if err != nil {
		t.Fatalf("GetPageImages failed: %v", err)
	}
	if len(pages) != 1 || !pages[0].Missing {
		t.Fatalf("expected one missing page, got %+v", pages)
	}
	if pages[0].Thumbnail != nil {
		t.Error("expected no thumbnail for missing page")
	}
}

func TestServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	c := newTestClient(t, server)

	_, err := c.Search(context.Background(), "anything")
	if err == nil {
		t.Fatal("expected error for 503 response")
	}
	if !strings.Contains(err.Error(), "status 503") {
		t.Errorf("expected status in error, got %v", err)
	}
}

func TestContextCanceled(t *testing.T) {
	server := setupMockServer(t)
	defer server.Close()

	c := newTestClient(t, server)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := c.GetSummary(ctx, "Tom Hanks"); err == nil {
		t.Fatal("expected error for canceled context")
	}
}

func TestMinIntervalPacesRequests(t *testing.T) {
	var count atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		count.Add(1)
		w.Write(loadTestData(t, "search_empty.json"))
	}))
	defer server.Close()

	c, err := New(config.WikipediaConfig{URL: server.URL, MinInterval: 50 * time.Millisecond})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	start := time.Now()
	for range 3 {
		if _, err := c.Search(context.Background(), "x"); err != nil {
			t.Fatalf("Search failed: %v", err)
		}
	}
	elapsed := time.Since(start)

	if count.Load() != 3 {
		t.Errorf("expected 3 requests, got %d", count.Load())
	}
	// first request is immediate, the next two wait one interval each
	if elapsed < 90*time.Millisecond {
		t.Errorf("expected requests to be paced, took only %v", elapsed)
	}
}

func TestCaptureResponse(t *testing.T) {
	server := setupMockServer(t)
	defer server.Close()

	dir := t.TempDir()
	c, err := NewWithCapture(config.WikipediaConfig{URL: server.URL}, dir)
	if err != nil {
		t.Fatalf("NewWithCapture failed: %v", err)
	}

	if _, err := c.GetSummary(context.Background(), "Tom Hanks"); err != nil {
		t.Fatalf("GetSummary failed: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 captured file, got %d", len(entries))
	}
	if !strings.HasPrefix(entries[0].Name(), "summary_Tom_Hanks_") {
		t.Errorf("unexpected capture filename '%s'", entries[0].Name())
	}
}
