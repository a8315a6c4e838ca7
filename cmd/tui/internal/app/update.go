// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2026 Lendaround contributors. All rights reserved.

package app

import (
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/lendaround/lendaround/pkg/dates"
	"github.com/lendaround/lendaround/pkg/identity"
	"github.com/lendaround/lendaround/pkg/models"
)

// Init satisfies tea.Model. Returns nil (no initial commands).
func (m Model) Init() tea.Cmd {
	return nil
}

// Update is the bubbletea update function.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		return m.handleKey(msg)

	case loginResultMsg:
		return m.handleLoginResult(msg)

	case inboxLoadedMsg:
		return m.handleInboxLoaded(msg)

	case decisionResultMsg:
		return m.handleDecisionResult(msg)

	case itemsLoadedMsg:
		return m.handleItemsLoaded(msg)

	case createResultMsg:
		return m.handleCreateResult(msg)

	case myRequestsLoadedMsg:
		return m.handleMyRequestsLoaded(msg)
	}

	return m, nil
}

// --- Key Handling ---

func (m Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	k := msg.Key()

	if k.Code == 'c' && k.Mod == tea.ModCtrl {
		return m, tea.Quit
	}

	switch m.state {
	case stateLogin:
		return m.handleLoginKey(k)
	case stateDashboard:
		return m.handleDashboardKey(k)
	case stateInbox:
		return m.handleInboxKey(k)
	case stateBrowse:
		return m.handleBrowseKey(k)
	case stateBorrowForm:
		return m.handleFormKey(k)
	case stateMyRequests:
		return m.handleMyRequestsKey(k)
	}

	return m, nil
}

func (m Model) handleLoginKey(k tea.Key) (tea.Model, tea.Cmd) {
	switch k.Code {
	case tea.KeyEnter:
		m.state = stateSigningIn
		return m, m.doLogin()
	case tea.KeyTab:
		m.loginFocus = (m.loginFocus + 1) % 2
	case tea.KeyBackspace:
		if m.loginFocus == 0 && len(m.email) > 0 {
			m.email = m.email[:len(m.email)-1]
		} else if m.loginFocus == 1 && len(m.password) > 0 {
			m.password = m.password[:len(m.password)-1]
		}
	case tea.KeyEscape:
		return m, tea.Quit
	default:
		if k.Text != "" {
			if m.loginFocus == 0 {
				m.email += k.Text
			} else {
				m.password += k.Text
			}
		}
	}
	return m, nil
}

func (m Model) handleDashboardKey(k tea.Key) (tea.Model, tea.Cmd) {
	switch k.Code {
	case tea.KeyUp, 'k':
		if m.menuIdx > 0 {
			m.menuIdx--
		}
	case tea.KeyDown, 'j':
		if m.menuIdx < len(m.menuItems)-1 {
			m.menuIdx++
		}
	case tea.KeyEnter:
		return m.executeMenuItem()
	case 'q', tea.KeyEscape:
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) executeMenuItem() (tea.Model, tea.Cmd) {
	switch m.menuItems[m.menuIdx] {
	case "Borrow Requests":
		return m.enterInbox()
	case "Browse Items":
		m.state = stateBrowse
		m.browseIdx = 0
		m.browseLoading = true
		return m, m.doLoadItems()
	case "My Requests":
		m.state = stateMyRequests
		m.mineLoading = true
		return m, m.doLoadMyRequests()
	case "Quit":
		return m, tea.Quit
	}
	return m, nil
}

// enterInbox switches to the requests inbox and loads it. Loading without a
// signed-in owner identity is a no-op, not an error.
func (m Model) enterInbox() (tea.Model, tea.Cmd) {
	m.state = stateInbox
	m.inboxIdx = 0
	if !m.whoami.Ready() {
		return m, nil
	}
	m.inboxLoading = true
	return m, m.doLoadInbox()
}

func (m Model) handleInboxKey(k tea.Key) (tea.Model, tea.Cmd) {
	switch k.Code {
	case tea.KeyEscape:
		m.state = stateDashboard
		return m, nil
	case tea.KeyUp, 'k':
		if m.inboxIdx > 0 {
			m.inboxIdx--
		}
	case tea.KeyDown, 'j':
		if m.inboxIdx < len(m.requests)-1 {
			m.inboxIdx++
		}
	case 'r':
		if m.whoami.Ready() {
			m.inboxLoading = true
			return m, m.doLoadInbox()
		}
	case 'a':
		if req, ok := m.selectedRequest(); ok && models.CanDecide(req.Status) {
			return m, m.doDecide(req.ID, models.StatusApproved)
		}
	case 'd':
		if req, ok := m.selectedRequest(); ok && models.CanDecide(req.Status) {
			return m, m.doDecide(req.ID, models.StatusDenied)
		}
	}
	return m, nil
}

func (m Model) selectedRequest() (models.BorrowRequest, bool) {
	if m.inboxIdx < 0 || m.inboxIdx >= len(m.requests) {
		return models.BorrowRequest{}, false
	}
	return m.requests[m.inboxIdx], true
}

func (m Model) handleBrowseKey(k tea.Key) (tea.Model, tea.Cmd) {
	switch k.Code {
	case tea.KeyEscape:
		m.state = stateDashboard
		return m, nil
	case tea.KeyUp, 'k':
		if m.browseIdx > 0 {
			m.browseIdx--
		}
	case tea.KeyDown, 'j':
		if m.browseIdx < len(m.items)-1 {
			m.browseIdx++
		}
	case 'r':
		m.browseLoading = true
		return m, m.doLoadItems()
	case tea.KeyEnter:
		if m.browseIdx >= 0 && m.browseIdx < len(m.items) {
			m.form = newBorrowForm(m.items[m.browseIdx])
			m.state = stateBorrowForm
		}
	}
	return m, nil
}

func (m Model) handleFormKey(k tea.Key) (tea.Model, tea.Cmd) {
	f := m.form
	if f == nil {
		m.state = stateBrowse
		return m, nil
	}

	switch k.Code {
	case tea.KeyEscape:
		// Parent owns the open flag; closing discards the form.
		m.form = nil
		m.state = stateBrowse
		return m, nil

	case tea.KeyEnter:
		// Submit is ignored while a submission is in flight.
		if f.submitting {
			return m, nil
		}
		f.submitting = true
		return m, m.doSubmitRequest(CreateRequest{
			ItemID:         f.item.ID,
			StartDate:      f.startDate,
			EndDate:        f.endDate,
			Message:        f.message,
			IdempotencyKey: f.idempotencyKey,
		})

	case tea.KeyTab:
		if k.Mod == tea.ModShift {
			f.focus = (f.focus + 2) % 3
		} else {
			f.focus = (f.focus + 1) % 3
		}
		return m, nil

	case tea.KeyLeft:
		switch f.focus {
		case fieldStart:
			f.startDate = dates.AddDays(f.startDate, -1)
		case fieldEnd:
			f.endDate = dates.AddDays(f.endDate, -1)
		}
		return m, nil

	case tea.KeyRight:
		switch f.focus {
		case fieldStart:
			f.startDate = dates.AddDays(f.startDate, 1)
		case fieldEnd:
			f.endDate = dates.AddDays(f.endDate, 1)
		}
		return m, nil

	case tea.KeyBackspace:
		if f.focus == fieldMessage && len(f.message) > 0 {
			f.message = f.message[:len(f.message)-1]
		}
		return m, nil
	}

	if f.focus == fieldMessage && k.Text != "" {
		f.message += k.Text
	}
	return m, nil
}

func (m Model) handleMyRequestsKey(k tea.Key) (tea.Model, tea.Cmd) {
	switch k.Code {
	case tea.KeyEscape:
		m.state = stateDashboard
		return m, nil
	case 'r':
		m.mineLoading = true
		return m, m.doLoadMyRequests()
	}
	return m, nil
}

// --- Async Commands ---

func (m Model) doLogin() tea.Cmd {
	email, password := m.email, m.password
	return func() tea.Msg {
		if m.client == nil {
			return loginResultMsg{err: fmt.Errorf("lending client not configured")}
		}
		result, err := m.client.Login(email, password)
		return loginResultMsg{result: result, err: err}
	}
}

func (m Model) doLoadInbox() tea.Cmd {
	return func() tea.Msg {
		if m.client == nil {
			return inboxLoadedMsg{err: fmt.Errorf("lending client not configured")}
		}
		requests, err := m.client.IncomingRequests()
		return inboxLoadedMsg{requests: requests, err: err}
	}
}

func (m Model) doDecide(id int64, status models.RequestStatus) tea.Cmd {
	return func() tea.Msg {
		if m.client == nil {
			return decisionResultMsg{id: id, status: status, err: fmt.Errorf("lending client not configured")}
		}
		var err error
		if status == models.StatusApproved {
			err = m.client.Approve(id)
		} else {
			err = m.client.Deny(id)
		}
		return decisionResultMsg{id: id, status: status, err: err}
	}
}

func (m Model) doLoadItems() tea.Cmd {
	return func() tea.Msg {
		if m.client == nil {
			return itemsLoadedMsg{err: fmt.Errorf("lending client not configured")}
		}
		items, err := m.client.Items()
		return itemsLoadedMsg{items: items, err: err}
	}
}

func (m Model) doSubmitRequest(req CreateRequest) tea.Cmd {
	return func() tea.Msg {
		if m.client == nil {
			return createResultMsg{err: fmt.Errorf("lending client not configured")}
		}
		return createResultMsg{err: m.client.CreateRequest(req)}
	}
}

func (m Model) doLoadMyRequests() tea.Cmd {
	return func() tea.Msg {
		if m.client == nil {
			return myRequestsLoadedMsg{err: fmt.Errorf("lending client not configured")}
		}
		requests, err := m.client.MyRequests()
		return myRequestsLoadedMsg{requests: requests, err: err}
	}
}

// --- Message Handlers ---

func (m Model) handleLoginResult(msg loginResultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil || msg.result == nil {
		m.state = stateLogin
		m.toast("Failed to sign in", true)
		return m, nil
	}

	id, err := identity.FromToken(msg.result.Token)
	if err != nil {
		id = identity.FromUser(msg.result.User)
	}
	m.whoami = id
	m.password = ""
	m.state = stateDashboard
	return m, nil
}

func (m Model) handleInboxLoaded(msg inboxLoadedMsg) (tea.Model, tea.Cmd) {
	m.inboxLoading = false
	if msg.err != nil {
		// List stays as-is (empty on first load); no automatic retry.
		m.toast("Failed to fetch borrow requests", true)
		return m, nil
	}
	m.requests = msg.requests // server's order, no client-side sort
	if m.inboxIdx >= len(m.requests) {
		m.inboxIdx = 0
	}
	return m, nil
}

func (m Model) handleDecisionResult(msg decisionResultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		// Local state is untouched on failure.
		if msg.status == models.StatusApproved {
			m.toast("Failed to approve request", true)
		} else {
			m.toast("Failed to deny request", true)
		}
		return m, nil
	}

	// Patch exactly the matching entry; no re-fetch from the source of truth.
	for i := range m.requests {
		if m.requests[i].ID == msg.id {
			m.requests[i].Status = msg.status
		}
	}
	if msg.status == models.StatusApproved {
		m.toast("Request approved successfully", false)
	} else {
		m.toast("Request denied successfully", false)
	}
	return m, nil
}

func (m Model) handleItemsLoaded(msg itemsLoadedMsg) (tea.Model, tea.Cmd) {
	m.browseLoading = false
	if msg.err != nil {
		m.toast("Failed to fetch items", true)
		return m, nil
	}
	m.items = msg.items
	if m.browseIdx >= len(m.items) {
		m.browseIdx = 0
	}
	return m, nil
}

func (m Model) handleCreateResult(msg createResultMsg) (tea.Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}
	if msg.err != nil {
		// Dialog stays open with the entered values intact.
		m.form.submitting = false
		m.toast("Failed to submit borrow request", true)
		return m, nil
	}

	m.form = nil
	m.toast("Your borrow request has been submitted", false)
	m.state = stateMyRequests
	m.mineLoading = true
	return m, m.doLoadMyRequests()
}

func (m Model) handleMyRequestsLoaded(msg myRequestsLoadedMsg) (tea.Model, tea.Cmd) {
	m.mineLoading = false
	if msg.err != nil {
		m.toast("Failed to fetch your requests", true)
		return m, nil
	}
	m.mine = msg.requests
	return m, nil
}
