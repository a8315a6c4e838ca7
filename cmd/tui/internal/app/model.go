// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2026 Lendaround contributors. All rights reserved.

package app

import (
	"time"

	"github.com/google/uuid"

	"github.com/lendaround/lendaround/pkg/dates"
	"github.com/lendaround/lendaround/pkg/identity"
	"github.com/lendaround/lendaround/pkg/models"
)

type appState int

const (
	stateLogin appState = iota
	stateSigningIn
	stateDashboard
	stateInbox
	stateBrowse
	stateBorrowForm
	stateMyRequests
)

// toastEntry is one non-blocking notification line. Failures are styled,
// never fatal; the UI stays interactive after any of them.
type toastEntry struct {
	ts    string
	text  string
	isErr bool
}

type formField int

const (
	fieldStart formField = iota
	fieldEnd
	fieldMessage
)

// borrowForm is the local editable state of the creation dialog. A nil form
// on the Model means the dialog is closed; the screen that opened it owns
// that flag. The idempotency key is minted when the form opens and reused
// across retries, so a double submission of the same form dedupes server-side.
type borrowForm struct {
	item           models.Item
	startDate      time.Time
	endDate        time.Time
	message        string
	focus          formField
	idempotencyKey string
	submitting     bool
}

func newBorrowForm(item models.Item) *borrowForm {
	start, end := dates.Window(dates.Today(), item.Duration)
	return &borrowForm{
		item:           item,
		startDate:      start,
		endDate:        end,
		idempotencyKey: uuid.NewString(),
	}
}

// Model is the root bubbletea model.
// Exported so tests can construct and drive it directly.
type Model struct {
	state appState

	width  int
	height int

	client LendingClient
	whoami identity.Identity

	// Login
	email      string
	password   string
	loginFocus int // 0 = email, 1 = password

	// Requests inbox: the list mirrors the server's fetch order and is only
	// patched after an authoritative success.
	requests     []models.BorrowRequest
	inboxIdx     int
	inboxLoading bool

	// Item browser
	items         []models.Item
	browseIdx     int
	browseLoading bool

	// Borrow form (nil = closed)
	form *borrowForm

	// My requests
	mine        []models.BorrowRequest
	mineLoading bool

	toasts []toastEntry

	// Menu
	menuItems []string
	menuIdx   int
}

// New creates a fresh Model. The client may be nil for testing individual
// screens without a live server.
func New(client LendingClient) Model {
	return Model{
		state:     stateLogin,
		client:    client,
		menuItems: []string{"Borrow Requests", "Browse Items", "My Requests", "Quit"},
	}
}

// Identity returns the signed-in identity, zero until login completes.
func (m Model) Identity() identity.Identity {
	return m.whoami
}

// Requests exposes the inbox list for tests.
func (m Model) Requests() []models.BorrowRequest {
	return m.requests
}

func (m *Model) toast(text string, isErr bool) {
	m.toasts = append(m.toasts, toastEntry{
		ts:    time.Now().Format("15:04:05"),
		text:  text,
		isErr: isErr,
	})
	if len(m.toasts) > 50 {
		m.toasts = m.toasts[len(m.toasts)-50:]
	}
}
