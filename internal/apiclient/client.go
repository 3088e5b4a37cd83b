// Package apiclient is the HTTP client the player uses to talk to the
// Slidecast API.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"app/internal/model"
)

// Client wraps the course and user endpoints. All calls carry the caller's
// identity provider token as a Bearer header.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// New creates a client for the given server. A nil httpClient gets a
// default with a generation-friendly timeout.
func New(baseURL, token string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 90 * time.Second}
	}
	return &Client{baseURL: baseURL, token: token, httpClient: httpClient}
}

type errorEnvelope struct {
	Error string `json:"error"`
}

// DeleteResult is the server's delete envelope.
type DeleteResult struct {
	Success bool           `json:"success"`
	Deleted []model.Course `json:"deleted"`
}

// ListCourses fetches the caller's courses, newest first.
func (c *Client) ListCourses(ctx context.Context) ([]model.Course, error) {
	var courses []model.Course
	if err := c.do(ctx, http.MethodGet, "/api/user-courses", nil, &courses); err != nil {
		return nil, err
	}
	return courses, nil
}

// GenerateCourse asks the server for the deck for this prompt, reusing a
// stored one when it exists.
func (c *Client) GenerateCourse(ctx context.Context, prompt, courseType string) (*model.Course, error) {
	body := map[string]string{"prompt": prompt, "type": courseType}
	var course model.Course
	if err := c.do(ctx, http.MethodPost, "/api/user-courses", body, &course); err != nil {
		return nil, err
	}
	return &course, nil
}

// DeleteCourse removes an owned course and returns the deleted set.
func (c *Client) DeleteCourse(ctx context.Context, courseID string) (*DeleteResult, error) {
	path := "/api/user-courses?courseId=" + url.QueryEscape(courseID)
	var result DeleteResult
	if err := c.do(ctx, http.MethodDelete, path, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetOrCreateUser ensures the caller has a profile row.
func (c *Client) GetOrCreateUser(ctx context.Context) (*model.User, error) {
	var user model.User
	if err := c.do(ctx, http.MethodPost, "/api/user", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var envelope errorEnvelope
		if err := json.Unmarshal(data, &envelope); err == nil && envelope.Error != "" {
			return fmt.Errorf("server returned %d: %s", resp.StatusCode, envelope.Error)
		}
		return fmt.Errorf("server returned %d", resp.StatusCode)
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}
