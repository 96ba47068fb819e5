package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"notepad/internal/types"
)

const defaultTimeout = 10 * time.Second

type Client struct {
	baseURL string
	http    *http.Client
}

type Option func(*Client)

func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.http.Timeout = timeout
		}
	}
}

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.http = httpClient
		}
	}
}

// New returns a client for the note API rooted at baseURL, e.g.
// "http://localhost:5000/api".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		http: &http.Client{
			Timeout: defaultTimeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	var resp HealthResponse
	if err := c.doJSON(ctx, http.MethodGet, "/health", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) ListNotes(ctx context.Context) ([]*types.Note, error) {
	var notes []*types.Note
	if err := c.doJSON(ctx, http.MethodGet, "/notes", nil, &notes); err != nil {
		return nil, err
	}
	if notes == nil {
		notes = []*types.Note{}
	}
	return notes, nil
}

func (c *Client) GetNote(ctx context.Context, id int64) (*types.Note, error) {
	var note types.Note
	if err := c.doJSON(ctx, http.MethodGet, notePath(id), nil, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

func (c *Client) CreateNote(ctx context.Context, input types.NoteInput) (*types.Note, error) {
	var note types.Note
	if err := c.doJSON(ctx, http.MethodPost, "/notes", input, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

func (c *Client) UpdateNote(ctx context.Context, id int64, input types.NoteInput) (*types.Note, error) {
	var note types.Note
	if err := c.doJSON(ctx, http.MethodPut, notePath(id), input, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

func (c *Client) DeleteNote(ctx context.Context, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, notePath(id), nil, nil)
}

func notePath(id int64) string {
	return fmt.Sprintf("/notes/%d", id)
}

func (c *Client) doJSON(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	httpClient := c.http
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeAPIError(resp)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	type errorPayload struct {
		Error string `json:"error"`
	}
	var payload errorPayload
	_ = json.NewDecoder(resp.Body).Decode(&payload)
	if payload.Error != "" {
		return &APIError{StatusCode: resp.StatusCode, Message: payload.Error}
	}
	return &APIError{StatusCode: resp.StatusCode, Message: resp.Status}
}

type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request failed with status %d", e.StatusCode)
	}
	return fmt.Sprintf("%s (status %d)", e.Message, e.StatusCode)
}

// AsAPIError unwraps err into an *APIError when the service answered with a
// non-success status.
func AsAPIError(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return nil
}

func IsNotFound(err error) bool {
	apiErr := AsAPIError(err)
	return apiErr != nil && apiErr.StatusCode == http.StatusNotFound
}
