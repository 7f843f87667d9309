package wikipedia

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kozaktomas/celebrity-twin/internal/config"
	"golang.org/x/time/rate"
)

// Client is a read-only client for the Wikipedia REST and Action APIs
type Client struct {
	URL        string
	parsedURL  *url.URL
	httpClient *http.Client
	userAgent  string
	thumbSize  int
	limiter    *rate.Limiter
	captureDir string
}

// StatusError is returned when the API answers with a non-200 status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("request failed with status %d: %s", e.StatusCode, e.Body)
}

// IsNotFoundError returns true if the error indicates a 404 Not Found response.
func IsNotFoundError(err error) bool {
	var statusErr *StatusError
	return errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound
}

// New creates a Wikipedia client from configuration.
func New(cfg config.WikipediaConfig) (*Client, error) {
	return NewWithCapture(cfg, "")
}

// NewWithCapture creates a Wikipedia client with optional response capturing.
// Pass an empty captureDir to disable capturing.
func NewWithCapture(cfg config.WikipediaConfig, captureDir string) (*Client, error) {
	rawURL := strings.TrimRight(cfg.URL, "/")
	if rawURL == "" {
		rawURL = config.DefaultWikipediaURL
	}
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid Wikipedia URL: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("invalid Wikipedia URL %q: scheme must be http or https", rawURL)
	}

	thumbSize := cfg.ThumbSize
	if thumbSize <= 0 {
		thumbSize = config.DefaultThumbSize
	}
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = config.DefaultUserAgent
	}

	c := &Client{
		URL:        rawURL,
		parsedURL:  parsed,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		userAgent:  userAgent,
		thumbSize:  thumbSize,
	}
	if cfg.MinInterval > 0 {
		c.limiter = rate.NewLimiter(rate.Every(cfg.MinInterval), 1)
	}
	if captureDir != "" {
		if err := c.SetCaptureDir(captureDir); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// restURL builds a REST API URL. The last segment is escaped as a single path
// element, so titles containing "/" (e.g. "AC/DC") stay one segment.
func (c *Client) restURL(prefix, title string) string {
	u := *c.parsedURL
	base := strings.TrimRight(c.parsedURL.Path, "/")
	u.Path = base + "/api/rest_v1/" + prefix + "/" + title
	u.RawPath = strings.TrimRight(c.parsedURL.EscapedPath(), "/") + "/api/rest_v1/" + prefix + "/" + url.PathEscape(title)
	return u.String()
}

// actionURL builds an Action API (api.php) URL with the given query.
func (c *Client) actionURL(query url.Values) string {
	u := c.parsedURL.JoinPath("w", "api.php")
	query.Set("format", "json")
	query.Set("formatversion", "2")
	query.Set("origin", "*")
	u.RawQuery = query.Encode()
	return u.String()
}

// readErrorBody reads the response body for error messages.
// Returns a placeholder if reading fails (we're already in an error path).
func readErrorBody(r io.Reader) string {
	body, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil {
		return "(could not read error body)"
	}
	return string(body)
}

// SetCaptureDir enables API response capturing to the specified directory.
// Pass an empty string to disable capturing.
func (c *Client) SetCaptureDir(dir string) error {
	if dir == "" {
		c.captureDir = ""
		return nil
	}

	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("could not create capture directory: %w", err)
	}
	c.captureDir = dir
	return nil
}

// captureResponse saves the API response body to a file if capturing is enabled.
func (c *Client) captureResponse(name string, body []byte) {
	if c.captureDir == "" {
		return
	}

	filename := strings.NewReplacer("/", "_", " ", "_", "?", "_", "&", "_", "=", "-").Replace(name)
	filename = strings.TrimPrefix(filename, "_")
	timestamp := time.Now().Format("20060102_150405")
	filename = fmt.Sprintf("%s_%s.json", filename, timestamp)

	path := filepath.Join(c.captureDir, filename)

	var prettyJSON bytes.Buffer
	if err := json.Indent(&prettyJSON, body, "", "  "); err == nil {
		body = prettyJSON.Bytes()
	}

	if err := os.WriteFile(path, body, 0600); err != nil {
		slog.Warn("failed to capture response", "path", path, "error", err)
	}
}
