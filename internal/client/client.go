// Package client is a thin HTTP client for the journal service API,
// used by the operator CLI.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

type Client struct {
	baseURL string
	client  *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{baseURL: baseURL, client: &http.Client{Timeout: timeout}}
}

type errorEnvelope struct {
	Error struct {
		Message string `json:"message"`
		Code    string `json:"code"`
	} `json:"error"`
}

// do performs one API call and returns the raw JSON body. Non-2xx
// responses are turned into errors carrying the server's code and
// message when the body follows the error envelope.
func (c *Client) do(ctx context.Context, method, path string, body any) (json.RawMessage, error) {

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var env errorEnvelope
		if err := json.Unmarshal(raw, &env); err == nil && env.Error.Code != "" {
			return nil, fmt.Errorf("%s: %s", env.Error.Code, env.Error.Message)
		}
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return raw, nil
}

// windowQuery renders optional start/end bounds as a query string.
func windowQuery(start, end string) string {
	q := url.Values{}
	if start != "" {
		q.Set("start_date", start)
	}
	if end != "" {
		q.Set("end_date", end)
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}

func (c *Client) SubmitEntry(ctx context.Context, studentID, classID, date, text string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPost, "/api/entries", map[string]string{
		"student_id": studentID,
		"class_id":   classID,
		"date":       date,
		"text":       text,
	})
}

func (c *Client) StudentHistory(ctx context.Context, studentID string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, "/api/students/"+url.PathEscape(studentID)+"/entries", nil)
}

func (c *Client) ClassEntries(ctx context.Context, classID string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, "/api/classes/"+url.PathEscape(classID)+"/entries", nil)
}

func (c *Client) ClassStats(ctx context.Context, classID, start, end string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, "/api/classes/"+url.PathEscape(classID)+"/stats"+windowQuery(start, end), nil)
}

func (c *Client) AtRisk(ctx context.Context, classID, start, end string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, "/api/classes/"+url.PathEscape(classID)+"/at-risk"+windowQuery(start, end), nil)
}

func (c *Client) ClassReport(ctx context.Context, classID string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, "/api/classes/"+url.PathEscape(classID)+"/report", nil)
}
