// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2026 Lendaround contributors. All rights reserved.

package app_test

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/lendaround/lendaround/cmd/tui/internal/app"
	"github.com/lendaround/lendaround/internal/stubapi"
	"github.com/lendaround/lendaround/pkg/dates"
	"github.com/lendaround/lendaround/pkg/models"
)

// newStubServer runs the in-memory lending API for client tests.
func newStubServer(t *testing.T) *httptest.Server {
	t.Helper()
	h := stubapi.New(stubapi.NewStore(), "test-signing-key")
	srv := httptest.NewServer(h.Router())
	t.Cleanup(srv.Close)
	return srv
}

func newClient(srv *httptest.Server) app.LendingClient {
	return app.NewLendingClient(srv.URL, zerolog.New(io.Discard))
}

func TestClient_LoginFailure(t *testing.T) {
	srv := newStubServer(t)
	c := newClient(srv)

	if _, err := c.Login("seller@lendaround.test", "wrong"); err == nil {
		t.Error("expected error for bad credentials")
	}
}

func TestClient_FullBorrowFlow(t *testing.T) {
	srv := newStubServer(t)

	buyer := newClient(srv)
	result, err := buyer.Login("buyer@lendaround.test", "borrow")
	if err != nil {
		t.Fatalf("buyer login: %v", err)
	}
	if result.Token == "" || result.User.Role != models.RoleBuyer {
		t.Fatalf("unexpected login result: %+v", result)
	}

	items, err := buyer.Items()
	if err != nil {
		t.Fatalf("items: %v", err)
	}
	if len(items) == 0 {
		t.Fatal("expected seeded items")
	}

	start, end := dates.Window(dates.Today(), items[0].Duration)
	create := app.CreateRequest{
		ItemID:         items[0].ID,
		StartDate:      start,
		EndDate:        end,
		Message:        "weekend project",
		IdempotencyKey: "key-1",
	}
	if err := buyer.CreateRequest(create); err != nil {
		t.Fatalf("create: %v", err)
	}
	// Same key again: server dedupes, no second request appears.
	if err := buyer.CreateRequest(create); err != nil {
		t.Fatalf("idempotent create: %v", err)
	}
	mine, err := buyer.MyRequests()
	if err != nil {
		t.Fatalf("my requests: %v", err)
	}
	if len(mine) != 1 {
		t.Fatalf("expected 1 request after duplicate submit, got %d", len(mine))
	}
	if mine[0].Status != models.StatusPending {
		t.Errorf("new request status = %q, want pending", mine[0].Status)
	}
	if mine[0].Message != "weekend project" {
		t.Errorf("message = %q", mine[0].Message)
	}

	seller := newClient(srv)
	if _, err := seller.Login("seller@lendaround.test", "borrow"); err != nil {
		t.Fatalf("seller login: %v", err)
	}
	incoming, err := seller.IncomingRequests()
	if err != nil {
		t.Fatalf("incoming: %v", err)
	}
	if len(incoming) != 1 {
		t.Fatalf("expected 1 incoming request, got %d", len(incoming))
	}

	if err := seller.Approve(incoming[0].ID); err != nil {
		t.Fatalf("approve: %v", err)
	}
	// Repeat transition: the server rejects it, the client surfaces an error.
	if err := seller.Approve(incoming[0].ID); err == nil {
		t.Error("expected error approving an already-approved request")
	}
	if err := seller.Deny(incoming[0].ID); err == nil {
		t.Error("expected error denying an approved request")
	}

	mine, err = buyer.MyRequests()
	if err != nil {
		t.Fatalf("my requests: %v", err)
	}
	if mine[0].Status != models.StatusApproved {
		t.Errorf("status after approval = %q, want approved", mine[0].Status)
	}
}

func TestClient_UnauthenticatedRejected(t *testing.T) {
	srv := newStubServer(t)
	c := newClient(srv)

	if _, err := c.IncomingRequests(); err == nil {
		t.Error("expected error without a bearer token")
	}
}
