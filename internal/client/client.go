// Package client is a Go client for the surveyflow REST API. It keeps
// the token pair in a state file and refreshes the access token
// transparently when a request comes back 401, mirroring what the web
// frontend's HTTP interceptor does.
package client

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// ErrUnauthenticated is returned when no session is stored or the
// refresh exchange fails.
var ErrUnauthenticated = errors.New("not logged in")

// Node mirrors the wire shape of a flow graph node.
type Node struct {
	ID   string            `json:"id"`
	Type string            `json:"type"`
	Data map[string]string `json:"data,omitempty"`
}

// Edge mirrors the wire shape of a flow graph edge.
type Edge struct {
	ID        string `json:"id,omitempty"`
	Source    string `json:"source"`
	Target    string `json:"target"`
	Condition string `json:"condition,omitempty"`
}

// Survey mirrors the survey resource.
type Survey struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Status      string    `json:"status"`
	Nodes       []Node    `json:"nodes"`
	Edges       []Edge    `json:"edges"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// SurveyPage is one page of the survey listing.
type SurveyPage struct {
	Items []Survey `json:"items"`
	Page  int      `json:"page"`
	Limit int      `json:"limit"`
	Total int      `json:"total"`
}

// Analytics mirrors the analytics resource.
type Analytics struct {
	TotalSurveys       int `json:"totalSurveys"`
	PublishedSurveys   int `json:"publishedSurveys"`
	TotalResponses     int `json:"totalResponses"`
	AvgEligibilityRate int `json:"avgEligibilityRate"`
}

// Response mirrors a recorded flow walk.
type Response struct {
	ID        string            `json:"id"`
	SurveyID  string            `json:"surveyId"`
	Outcome   string            `json:"outcome"`
	Answers   map[string]string `json:"answers,omitempty"`
	CreatedAt time.Time         `json:"createdAt"`
}

// User mirrors the profile returned at registration/login.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// SurveyUpdate carries a partial update; nil fields are not sent.
type SurveyUpdate struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty"`
	Nodes       *[]Node `json:"nodes,omitempty"`
	Edges       *[]Edge `json:"edges,omitempty"`
}

type sessionState struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Client talks to one surveyflow API server.
type Client struct {
	baseURL    string
	statePath  string
	httpClient *http.Client
	state      sessionState
}

// New creates a Client. statePath is where the token pair is cached;
// an empty statePath defaults to ~/.surveyctl.json.
func New(baseURL, statePath string) (*Client, error) {
	if statePath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve state path: %w", err)
		}
		statePath = filepath.Join(home, ".surveyctl.json")
	}

	c := &Client{
		baseURL:    baseURL,
		statePath:  statePath,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	c.loadState()
	return c, nil
}

func (c *Client) loadState() {
	data, err := os.ReadFile(c.statePath)
	if err != nil {
		return
	}
	_ = json.Unmarshal(data, &c.state)
}

func (c *Client) saveState() error {
	data, err := json.MarshalIndent(c.state, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(c.statePath, data, 0o600)
}

// Register creates an account and stores the returned session.
func (c *Client) Register(name, email, password string) (*User, error) {
	return c.authenticate("/api/auth/register", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	})
}

// Login exchanges credentials for a session.
func (c *Client) Login(email, password string) (*User, error) {
	return c.authenticate("/api/auth/login", map[string]string{
		"email":    email,
		"password": password,
	})
}

func (c *Client) authenticate(path string, body map[string]string) (*User, error) {
	var result struct {
		AccessToken  string `json:"accessToken"`
		RefreshToken string `json:"refreshToken"`
		User         User   `json:"user"`
	}
	if err := c.doOnce(http.MethodPost, path, body, &result, ""); err != nil {
		return nil, err
	}

	c.state = sessionState{AccessToken: result.AccessToken, RefreshToken: result.RefreshToken}
	if err := c.saveState(); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return &result.User, nil
}

// Logout acknowledges with the server and drops the local session.
func (c *Client) Logout() error {
	_ = c.doOnce(http.MethodPost, "/api/auth/logout", nil, nil, c.state.AccessToken)
	c.state = sessionState{}
	return c.saveState()
}

// LoggedIn reports whether a session is stored.
func (c *Client) LoggedIn() bool {
	return c.state.AccessToken != ""
}

// ListSurveys fetches one page of the caller's surveys.
func (c *Client) ListSurveys(page, limit int) (*SurveyPage, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(limit))

	var result SurveyPage
	if err := c.do(http.MethodGet, "/api/surveys?"+query.Encode(), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CreateSurvey creates a draft survey.
func (c *Client) CreateSurvey(title, description string) (*Survey, error) {
	var result Survey
	err := c.do(http.MethodPost, "/api/surveys", map[string]string{
		"title":       title,
		"description": description,
	}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// GetSurvey fetches one survey.
func (c *Client) GetSurvey(id string) (*Survey, error) {
	var result Survey
	if err := c.do(http.MethodGet, "/api/surveys/"+url.PathEscape(id), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// UpdateSurvey merges the provided fields into the survey.
func (c *Client) UpdateSurvey(id string, update SurveyUpdate) (*Survey, error) {
	var result Survey
	if err := c.do(http.MethodPut, "/api/surveys/"+url.PathEscape(id), update, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// PublishSurvey flips the survey status to published.
func (c *Client) PublishSurvey(id string) (*Survey, error) {
	status := "published"
	return c.UpdateSurvey(id, SurveyUpdate{Status: &status})
}

// DeleteSurvey removes the survey.
func (c *Client) DeleteSurvey(id string) error {
	return c.do(http.MethodDelete, "/api/surveys/"+url.PathEscape(id), nil, nil)
}

// Analytics fetches the aggregate metrics.
func (c *Client) Analytics() (*Analytics, error) {
	var result Analytics
	if err := c.do(http.MethodGet, "/api/surveys/analytics", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// SubmitResponse walks the published flow server-side with the given
// answers and records the outcome.
func (c *Client) SubmitResponse(surveyID string, answers map[string]string) (*Response, error) {
	var result Response
	err := c.do(http.MethodPost, "/api/surveys/"+url.PathEscape(surveyID)+"/responses", map[string]any{
		"answers": answers,
	}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// ListResponses fetches the recorded responses of an owned survey.
func (c *Client) ListResponses(surveyID string) ([]Response, error) {
	var result []Response
	if err := c.do(http.MethodGet, "/api/surveys/"+url.PathEscape(surveyID)+"/responses", nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// do performs an authenticated request, refreshing the access token
// once on a 401 before giving up.
func (c *Client) do(method, path string, body, dst any) error {
	if !c.LoggedIn() {
		return ErrUnauthenticated
	}

	err := c.doOnce(method, path, body, dst, c.state.AccessToken)
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized {
		if refreshErr := c.refresh(); refreshErr != nil {
			return ErrUnauthenticated
		}
		return c.doOnce(method, path, body, dst, c.state.AccessToken)
	}
	return err
}

func (c *Client) refresh() error {
	if c.state.RefreshToken == "" {
		return ErrUnauthenticated
	}

	var result struct {
		AccessToken string `json:"accessToken"`
	}
	err := c.doOnce(http.MethodPost, "/api/auth/refresh", map[string]string{
		"refreshToken": c.state.RefreshToken,
	}, &result, "")
	if err != nil {
		return err
	}

	c.state.AccessToken = result.AccessToken
	return c.saveState()
}

// APIError carries the HTTP status and server-reported message.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (%d): %s", e.Status, e.Message)
}

func (c *Client) doOnce(method, path string, body, dst any, token string) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var apiErr struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		if apiErr.Error == "" {
			apiErr.Error = resp.Status
		}
		return &APIError{Status: resp.StatusCode, Message: apiErr.Error}
	}

	if dst == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(dst)
}
