// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2026 Lendaround contributors. All rights reserved.

package app

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/lendaround/lendaround/pkg/models"
)

// LendingClient is the interface for the lending REST API.
// Tests inject a mock; production uses httpLendingClient.
type LendingClient interface {
	Login(email, password string) (*LoginResult, error)
	IncomingRequests() ([]models.BorrowRequest, error)
	Approve(id int64) error
	Deny(id int64) error
	CreateRequest(req CreateRequest) error
	Items() ([]models.Item, error)
	MyRequests() ([]models.BorrowRequest, error)
}

// LoginResult is the API's response to a successful login.
type LoginResult struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// CreateRequest is the body of a borrow-request creation call. The
// idempotency key travels as a header, not in the body: creation is
// at-least-once and the server dedupes on the key.
type CreateRequest struct {
	ItemID         int64     `json:"itemId"`
	StartDate      time.Time `json:"startDate"`
	EndDate        time.Time `json:"endDate"`
	Message        string    `json:"message"`
	IdempotencyKey string    `json:"-"`
}

// --- HTTP implementation ---

type httpLendingClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
	log        zerolog.Logger
}

// NewLendingClient returns a LendingClient talking JSON over HTTP to baseURL.
// The logger receives one event per call; the TUI owns the terminal, so the
// caller should point it at a file or io.Discard.
func NewLendingClient(baseURL string, log zerolog.Logger) LendingClient {
	return &httpLendingClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
		log:        log,
	}
}

func (c *httpLendingClient) do(method, path string, body []byte, header http.Header) (*http.Response, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var rdr *bytes.Reader
	if body != nil {
		rdr = bytes.NewReader(body)
	} else {
		rdr = bytes.NewReader(nil)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Set(k, v)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error().Err(err).Str("method", method).Str("path", path).Msg("api call failed")
		return nil, err
	}
	c.log.Info().Str("method", method).Str("path", path).Int("status", resp.StatusCode).Msg("api call")
	if resp.StatusCode >= 400 {
		resp.Body.Close()
		return nil, fmt.Errorf("%s %s: server returned %s", method, path, resp.Status)
	}
	return resp, nil
}

func (c *httpLendingClient) Login(email, password string) (*LoginResult, error) {
	body, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return nil, err
	}
	resp, err := c.do(http.MethodPost, "/api/auth/login", body, nil)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	defer resp.Body.Close()

	var result LoginResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("login decode: %w", err)
	}
	c.token = result.Token
	return &result, nil
}

func (c *httpLendingClient) IncomingRequests() ([]models.BorrowRequest, error) {
	resp, err := c.do(http.MethodGet, "/api/my-items/requests", nil, nil)
	if err != nil {
		return nil, fmt.Errorf("incoming requests: %w", err)
	}
	defer resp.Body.Close()

	var requests []models.BorrowRequest
	if err := json.NewDecoder(resp.Body).Decode(&requests); err != nil {
		return nil, fmt.Errorf("incoming requests decode: %w", err)
	}
	return requests, nil
}

func (c *httpLendingClient) Approve(id int64) error {
	resp, err := c.do(http.MethodPut, fmt.Sprintf("/api/borrow-requests/%d/approve", id), nil, nil)
	if err != nil {
		return fmt.Errorf("approve request: %w", err)
	}
	resp.Body.Close() // response body is ignored; success = no error
	return nil
}

func (c *httpLendingClient) Deny(id int64) error {
	resp, err := c.do(http.MethodPut, fmt.Sprintf("/api/borrow-requests/%d/deny", id), nil, nil)
	if err != nil {
		return fmt.Errorf("deny request: %w", err)
	}
	resp.Body.Close()
	return nil
}

func (c *httpLendingClient) CreateRequest(req CreateRequest) error {
	body, err := json.Marshal(req)
	if err != nil {
		return err
	}
	header := http.Header{}
	if req.IdempotencyKey != "" {
		header.Set("Idempotency-Key", req.IdempotencyKey)
	}
	resp, err := c.do(http.MethodPost, "/api/borrow-requests", body, header)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	resp.Body.Close()
	return nil
}

func (c *httpLendingClient) Items() ([]models.Item, error) {
	resp, err := c.do(http.MethodGet, "/api/items", nil, nil)
	if err != nil {
		return nil, fmt.Errorf("items: %w", err)
	}
	defer resp.Body.Close()

	var items []models.Item
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, fmt.Errorf("items decode: %w", err)
	}
	return items, nil
}

func (c *httpLendingClient) MyRequests() ([]models.BorrowRequest, error) {
	resp, err := c.do(http.MethodGet, "/api/my-requests", nil, nil)
	if err != nil {
		return nil, fmt.Errorf("my requests: %w", err)
	}
	defer resp.Body.Close()

	var requests []models.BorrowRequest
	if err := json.NewDecoder(resp.Body).Decode(&requests); err != nil {
		return nil, fmt.Errorf("my requests decode: %w", err)
	}
	return requests, nil
}
