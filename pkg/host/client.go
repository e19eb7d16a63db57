// Package host is the client for the node-graph host application: a small
// REST surface for models, images and files, plus a websocket event stream
// republished onto the in-process bus.
package host

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/easeltools/easel/errors"
	"github.com/easeltools/easel/logging"
	"github.com/easeltools/easel/pkg/models"
)

// Client talks to the host application's HTTP API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	log        *logrus.Entry
}

// NewClient creates a client for the host at baseURL. A trailing slash on
// the URL is tolerated.
func NewClient(baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL: strings.TrimRight(baseURL, "/"),
		log:     logging.NewLogger("host"),
	}
}

// BaseURL returns the configured host URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ThumbnailMeta describes an image's thumbnail without carrying pixels;
// rendering stays on the host side.
type ThumbnailMeta struct {
	Path   string `json:"path"`
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Format string `json:"format,omitempty"`
}

// ChatRequest is the completion request body.
type ChatRequest struct {
	Model    string               `json:"model,omitempty"`
	Messages []models.ChatMessage `json:"messages"`
}

// ChatResponse is the completion response body.
type ChatResponse struct {
	Content string `json:"content"`
	Model   string `json:"model,omitempty"`
}

// ListModels fetches the host's model listing.
func (c *Client) ListModels(ctx context.Context) ([]models.Item, error) {
	var items []models.Item
	if err := c.getJSON(ctx, "/models", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// ListImages fetches the output image listing, optionally limited to one
// subfolder.
func (c *Client) ListImages(ctx context.Context, folder string) ([]models.Item, error) {
	query := url.Values{}
	if folder != "" {
		query.Set("folder", folder)
	}
	var items []models.Item
	if err := c.getJSON(ctx, "/images", query, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Thumbnail fetches thumbnail metadata for one image path.
func (c *Client) Thumbnail(ctx context.Context, path string) (*ThumbnailMeta, error) {
	query := url.Values{}
	query.Set("path", path)
	var meta ThumbnailMeta
	if err := c.getJSON(ctx, "/thumbnails", query, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// ReadFile fetches a file's content from the host.
func (c *Client) ReadFile(ctx context.Context, path string) ([]byte, error) {
	resp, err := c.do(ctx, http.MethodGet, c.fileURL(path), nil, "")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeRequestFailed,
			fmt.Sprintf("reading %s from host", path))
	}
	return data, nil
}

// WriteFile writes a file's content through the host.
func (c *Client) WriteFile(ctx context.Context, path string, data []byte) error {
	resp, err := c.do(ctx, http.MethodPut, c.fileURL(path), bytes.NewReader(data), "application/octet-stream")
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

// DeleteFile removes a file through the host.
func (c *Client) DeleteFile(ctx context.Context, path string) error {
	resp, err := c.do(ctx, http.MethodDelete, c.fileURL(path), nil, "")
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

// ChatComplete sends the transcript and returns the assistant's reply.
func (c *Client) ChatComplete(ctx context.Context, model string, messages []models.ChatMessage) (string, error) {
	body, err := json.Marshal(ChatRequest{Model: model, Messages: messages})
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeInvalidInput, "encoding chat request")
	}

	resp, err := c.do(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body), "application/json")
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var out ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", errors.Wrap(err, errors.ErrCodeRequestFailed, "decoding chat response")
	}
	return out.Content, nil
}

// Ping reports whether the host is reachable.
func (c *Client) Ping(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	resp, err := c.do(ctx, http.MethodGet, c.baseURL+"/health", nil, "")
	if err != nil {
		return false
	}
	resp.Body.Close()
	return true
}

func (c *Client) fileURL(path string) string {
	return c.baseURL + "/files/" + url.PathEscape(path)
}

func (c *Client) getJSON(ctx context.Context, endpoint string, query url.Values, out interface{}) error {
	u := c.baseURL + endpoint
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	resp, err := c.do(ctx, http.MethodGet, u, nil, "")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrap(err, errors.ErrCodeRequestFailed,
			fmt.Sprintf("decoding %s response", endpoint))
	}
	return nil
}

// do issues the request and maps failures to the typed error codes. A
// cancelled context is distinguished from an unreachable host so panels can
// suppress the status line for navigation aborts.
func (c *Client) do(ctx context.Context, method, u string, body io.Reader, contentType string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeRequestFailed, "building request")
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, errors.Wrap(ctx.Err(), errors.ErrCodeRequestCanceled,
				fmt.Sprintf("%s %s canceled", method, u))
		}
		c.log.WithError(err).WithField("url", u).Debug("host request failed")
		return nil, errors.HostUnreachable(c.baseURL, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, errors.BadStatus(method, u, resp.StatusCode)
	}
	return resp, nil
}
