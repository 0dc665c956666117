// Package api is the HTTP client for the video-generation service.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/nhle/prompttotube/internal/logging"
	"github.com/nhle/prompttotube/internal/model"
)

// ProjectsPath is the collection endpoint for projects.
const ProjectsPath = "/api/projects"

// maxErrorBody bounds how much of a failed response is kept in StatusError.
const maxErrorBody = 512

// StatusError is returned when the service answers with a non-2xx status.
// The body is kept for diagnostics only and is never parsed.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d on %s %s: %s", e.StatusCode, e.Method, e.Path, e.Body)
}

// Client is a thin HTTP client for the project endpoints. It never retries;
// callers decide whether a failed request is re-issued.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a client for the service at baseURL. The token is
// optional; when set it is sent as a Bearer credential.
func NewClient(baseURL, token string, timeout time.Duration, logger *slog.Logger) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logging.WithComponent(logger, "api"),
	}
}

// BaseURL returns the resolved service address.
func (c *Client) BaseURL() string {
	return c.baseURL
}

type createProjectRequest struct {
	Prompt      string     `json:"prompt"`
	Mode        model.Mode `json:"mode"`
	DurationSec int        `json:"duration_sec"`
	Language    string     `json:"language"`
}

// CreateProject submits d and returns the project the service created.
func (c *Client) CreateProject(ctx context.Context, d model.Draft) (*model.Project, error) {
	req := createProjectRequest{
		Prompt:      d.Prompt,
		Mode:        d.Mode,
		DurationSec: d.DurationSec,
		Language:    d.Language,
	}

	body, err := c.do(ctx, http.MethodPost, ProjectsPath, req)
	if err != nil {
		return nil, err
	}

	var project model.Project
	if err := json.Unmarshal(body, &project); err != nil {
		return nil, fmt.Errorf("unmarshaling response from POST %s: %w", ProjectsPath, err)
	}
	return &project, nil
}

// ListProjects returns every project in service order. An empty or
// unparseable body is treated as an empty collection.
func (c *Client) ListProjects(ctx context.Context) ([]model.Project, error) {
	body, err := c.do(ctx, http.MethodGet, ProjectsPath, nil)
	if err != nil {
		return nil, err
	}

	projects := []model.Project{}
	if len(bytes.TrimSpace(body)) == 0 {
		return projects, nil
	}
	if err := json.Unmarshal(body, &projects); err != nil {
		c.logger.Warn("ignoring unparseable project list", "error", err)
		return []model.Project{}, nil
	}
	if projects == nil {
		projects = []model.Project{}
	}
	return projects, nil
}

// do builds the request, sends it once, and returns the body of a 2xx
// response.
func (c *Client) do(
	ctx context.Context,
	method string,
	path string,
	payload interface{},
) ([]byte, error) {
	var bodyReader io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshaling request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	c.logger.Debug("request complete",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		text := string(respBody)
		if len(text) > maxErrorBody {
			text = text[:maxErrorBody]
		}
		return nil, &StatusError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Body:       text,
		}
	}

	return respBody, nil
}
