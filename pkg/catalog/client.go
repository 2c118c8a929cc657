package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog/log"
)

// Error is a failed catalog call. Message carries the remote service's own
// error text when one was returned, so the operator sees the real cause
// without transport details leaking upward.
type Error struct {
	Op      string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("catalog %s: %s", e.Op, e.Message)
}

// Config holds catalog service connection parameters.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client is the HTTP client for the remote product catalog service. All
// matching heuristics run server-side; the client only shapes requests and
// decodes the success-flag envelopes.
type Client struct {
	httpClient *http.Client
	config     Config
	debug      bool
}

// NewClient constructs a new catalog client with sane defaults.
func NewClient(config Config) *Client {
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		config:     config,
		debug:      os.Getenv("ENV") == "development",
	}
}

// doRequest performs a JSON request and decodes the response into result.
func (c *Client) doRequest(ctx context.Context, method, path string, body any, result any) error {
	url := c.config.BaseURL + path

	var bodyReader io.Reader
	var bodyBytes []byte
	if body != nil {
		var err error
		bodyBytes, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(bodyBytes)
	}

	if c.debug {
		log.Debug().
			Str("method", method).
			Str("endpoint", url).
			RawJSON("request", jsonOrNull(bodyBytes)).
			Msg("[CATALOG] Outgoing request")
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &Error{Op: path, Message: err.Error()}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Op: path, Message: "failed to read response: " + err.Error()}
	}

	if c.debug {
		log.Debug().
			Str("endpoint", path).
			Int("status_code", resp.StatusCode).
			RawJSON("response", jsonOrNull(respBody)).
			Msg("[CATALOG] Incoming response")
	}

	if err := json.Unmarshal(respBody, result); err != nil {
		if resp.StatusCode >= 400 {
			return &Error{Op: path, Message: fmt.Sprintf("http error: %d", resp.StatusCode)}
		}
		return &Error{Op: path, Message: "failed to decode response: " + err.Error()}
	}

	return nil
}

// doDownload performs a GET and returns the raw response body. Used for the
// spreadsheet export endpoint which answers with a binary blob.
func (c *Client) doDownload(ctx context.Context, path string) ([]byte, error) {
	url := c.config.BaseURL + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &Error{Op: path, Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		// Error answers are JSON even on the download route.
		var ack ackResponse
		body, _ := io.ReadAll(resp.Body)
		if err := json.Unmarshal(body, &ack); err == nil && ack.Error != "" {
			return nil, &Error{Op: path, Message: ack.Error}
		}
		return nil, &Error{Op: path, Message: fmt.Sprintf("http error: %d", resp.StatusCode)}
	}

	blob, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Op: path, Message: "failed to read response: " + err.Error()}
	}
	return blob, nil
}

func jsonOrNull(b []byte) []byte {
	if len(b) == 0 {
		return []byte("null")
	}
	return b
}
