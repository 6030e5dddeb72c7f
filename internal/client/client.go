// Package client provides an HTTP client for the studio REST API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/evcraddock/studiodesk/internal/comment"
	"github.com/evcraddock/studiodesk/internal/logging"
	"github.com/evcraddock/studiodesk/internal/project"
)

const apiPrefix = "/api/v1"

// Client is an HTTP client for the studio API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// New creates a new API client. When token is non-empty it is sent as a
// bearer token on every request.
func New(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout:   30 * time.Second,
			Transport: &logging.Transport{},
		},
	}
}

// WithLogger returns a copy of c whose requests are logged to logger.
func (c *Client) WithLogger(logger *slog.Logger) *Client {
	cp := *c
	hc := *c.httpClient
	hc.Transport = &logging.Transport{Logger: logger}
	cp.httpClient = &hc
	return &cp
}

// CurrentUser is the authenticated account.
type CurrentUser struct {
	ID          string  `json:"id"`
	Email       string  `json:"email"`
	FullName    *string `json:"full_name"`
	IsActive    bool    `json:"is_active"`
	IsSuperuser bool    `json:"is_superuser"`
}

// DisplayName prefers the full name over the email.
func (u *CurrentUser) DisplayName() string {
	if u.FullName != nil && *u.FullName != "" {
		return *u.FullName
	}
	return u.Email
}

// Token is the response from the login endpoint.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// ListComments returns the comments for a project in server order.
func (c *Client) ListComments(ctx context.Context, projectID string) (*comment.List, error) {
	var list comment.List
	if err := c.get(ctx, "/comments/"+url.PathEscape(projectID), &list); err != nil {
		return nil, err
	}
	if list.Data == nil {
		list.Data = []*comment.Comment{}
	}
	return &list, nil
}

// CreateComment posts a comment to a project.
func (c *Client) CreateComment(ctx context.Context, projectID, content string) (*comment.Comment, error) {
	body := map[string]string{
		"content":    content,
		"project_id": projectID,
	}
	var comm comment.Comment
	if err := c.post(ctx, "/comments/", body, &comm); err != nil {
		return nil, err
	}
	return &comm, nil
}

// DeleteComment removes a comment by ID.
func (c *Client) DeleteComment(ctx context.Context, commentID string) error {
	return c.doDelete(ctx, "/comments/"+url.PathEscape(commentID))
}

// GetProject returns a single project.
func (c *Client) GetProject(ctx context.Context, id string) (*project.Project, error) {
	var p project.Project
	if err := c.get(ctx, "/projects/"+url.PathEscape(id), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// ListGalleries returns the galleries attached to a project.
func (c *Client) ListGalleries(ctx context.Context, projectID string) (*project.GalleryList, error) {
	q := url.Values{}
	q.Set("project_id", projectID)

	var list project.GalleryList
	if err := c.get(ctx, "/galleries/?"+q.Encode(), &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// CurrentUser returns the account the token belongs to.
func (c *Client) CurrentUser(ctx context.Context) (*CurrentUser, error) {
	var u CurrentUser
	if err := c.get(ctx, "/users/me", &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Login exchanges credentials for an access token.
func (c *Client) Login(ctx context.Context, email, password string) (*Token, error) {
	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+apiPrefix+"/login/access-token",
		strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var tok Token
	if err := c.do(req, &tok); err != nil {
		return nil, err
	}
	if tok.AccessToken == "" {
		return nil, fmt.Errorf("login response did not include an access token")
	}
	return &tok, nil
}

// get performs a GET request and decodes the response.
func (c *Client) get(ctx context.Context, path string, result interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+apiPrefix+path, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	return c.do(req, result)
}

// post performs a POST request with a JSON body and decodes the response.
func (c *Client) post(ctx context.Context, path string, body interface{}, result interface{}) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+apiPrefix+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, result)
}

// doDelete performs a DELETE request.
func (c *Client) doDelete(ctx context.Context, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+apiPrefix+path, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	return c.do(req, nil)
}

// do executes an HTTP request with auth header and handles errors.
func (c *Client) do(req *http.Request, result interface{}) error {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			slog.Warn("closing response body", "error", cerr)
		}
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(resp.StatusCode, respBody)
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}

	return nil
}
