// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2026 Lendaround contributors. All rights reserved.

package app

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/lendaround/lendaround/pkg/dates"
	"github.com/lendaround/lendaround/pkg/models"
)

// --- Styles ---

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00FF88"))

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#000000")).
			Background(lipgloss.Color("#00FF88"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	errStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF4444")).
			Bold(true)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFAA00"))

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00FF88")).
			Bold(true)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444466")).
			Padding(0, 1)

	// Badge treatments keyed by models.Variant.
	badgeOutline = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#AAAAAA")).
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("#666666")).
			Padding(0, 1)

	badgeDefault = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#000000")).
			Background(lipgloss.Color("#00FF88")).
			Padding(0, 1)

	badgeDestructive = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#FFFFFF")).
				Background(lipgloss.Color("#FF4444")).
				Padding(0, 1)
)

// renderBadge renders a status with the treatment derived from
// models.StatusVariant. Cosmetic only.
func renderBadge(s models.RequestStatus) string {
	if s == "" {
		return ""
	}
	label := strings.ToUpper(string(s[:1])) + string(s[1:])
	switch models.StatusVariant(s) {
	case models.VariantOutline:
		return badgeOutline.Render(label)
	case models.VariantDefault:
		return badgeDefault.Render(label)
	default:
		return badgeDestructive.Render(label)
	}
}

// View renders the full-screen TUI.
func (m Model) View() tea.View {
	if m.width == 0 {
		v := tea.NewView("loading...")
		v.AltScreen = true
		return v
	}

	var s string
	switch m.state {
	case stateLogin:
		s = m.viewLogin()
	case stateSigningIn:
		s = m.viewSigningIn()
	case stateDashboard:
		s = m.viewDashboard()
	case stateInbox:
		s = m.viewInbox()
	case stateBrowse:
		s = m.viewBrowse()
	case stateBorrowForm:
		s = m.viewBorrowForm()
	case stateMyRequests:
		s = m.viewMyRequests()
	}

	v := tea.NewView(s)
	v.AltScreen = true
	return v
}

// --- Full-screen views ---

func (m Model) viewLogin() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("  LENDAROUND"))
	b.WriteString("\n\n")

	emailCursor, passCursor := " ", " "
	if m.loginFocus == 0 {
		emailCursor = "█"
	} else {
		passCursor = "█"
	}
	b.WriteString("  Email:    " + m.email + emailCursor + "\n")
	b.WriteString("  Password: " + strings.Repeat("*", len(m.password)) + passCursor + "\n\n")
	b.WriteString(dimStyle.Render("  [tab] switch field  [enter] sign in  [esc] quit"))
	b.WriteString(m.renderToasts())
	return b.String()
}

func (m Model) viewSigningIn() string {
	return titleStyle.Render("  LENDAROUND") + "\n\n  Signing in..."
}

func (m Model) viewDashboard() string {
	return m.splitView(m.renderWelcomePanel, m.renderMenuPanel)
}

func (m Model) viewInbox() string {
	return m.splitView(m.renderInboxPanel, m.renderInboxHelpPanel)
}

func (m Model) viewBrowse() string {
	return m.splitView(m.renderItemsPanel, m.renderBrowseHelpPanel)
}

func (m Model) viewBorrowForm() string {
	return m.splitView(m.renderFormPanel, m.renderFormHelpPanel)
}

func (m Model) viewMyRequests() string {
	return m.splitView(m.renderMyRequestsPanel, m.renderMyRequestsHelpPanel)
}

// splitView splits the terminal into two bordered panels stacked vertically.
// topFn and botFn receive the inner width available to their panel.
func (m Model) splitView(
	topFn func(innerW, maxLines int) string,
	botFn func(innerW, maxLines int) string,
) string {
	borderH := 2
	topHeight := m.height/2 - borderH
	if topHeight < 4 {
		topHeight = 4
	}
	botHeight := m.height - (topHeight + borderH*2) - borderH
	if botHeight < 3 {
		botHeight = 3
	}

	innerW := m.width - 4
	if innerW < 20 {
		innerW = 20
	}

	topBox := panelStyle.Width(innerW).Render(topFn(innerW, topHeight))
	botBox := panelStyle.Width(innerW).Render(botFn(innerW, botHeight))

	return topBox + "\n" + botBox
}

// --- Panel renderers (signature: innerW, maxLines int) string ---

func (m Model) renderWelcomePanel(innerW, _ int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Lendaround"))
	b.WriteString("\n\n")
	b.WriteString("Signed in as ")
	b.WriteString(valueStyle.Render(m.whoami.Email))
	if m.whoami.Role != "" {
		b.WriteString(dimStyle.Render("  (" + string(m.whoami.Role) + ")"))
	}
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderMenuPanel(innerW, _ int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Menu"))
	b.WriteString("\n\n")

	for i, item := range m.menuItems {
		if i == m.menuIdx {
			b.WriteString(selectedStyle.Render(" ▸ " + item + " "))
		} else {
			b.WriteString("   " + item)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("[↑/↓ or k/j] navigate  [enter] select  [q] quit"))
	b.WriteString(m.renderToasts())
	return b.String()
}

func (m Model) renderInboxPanel(innerW, maxLines int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Borrow Requests"))
	b.WriteString("\n\n")

	if m.inboxLoading {
		b.WriteString(dimStyle.Render("Loading..."))
		return b.String()
	}

	if len(m.requests) == 0 {
		// Distinct empty state, not just a blank list.
		b.WriteString("No borrow requests\n")
		b.WriteString(dimStyle.Render("You don't have any borrow requests for your items yet."))
		return b.String()
	}

	linesPer := 3
	avail := (maxLines - 2) / linesPer
	if avail < 1 {
		avail = 1
	}
	start := 0
	if m.inboxIdx >= avail {
		start = m.inboxIdx - avail + 1
	}
	end := start + avail
	if end > len(m.requests) {
		end = len(m.requests)
	}

	for i := start; i < end; i++ {
		req := m.requests[i]
		marker := "  "
		if i == m.inboxIdx {
			marker = promptStyle.Render("▸ ")
		}
		b.WriteString(fmt.Sprintf("%sRequest for: %s  %s\n",
			marker, valueStyle.Render(req.Item.Title), renderBadge(req.Status)))
		b.WriteString(fmt.Sprintf("    %s %s  %s\n",
			req.Buyer.Name, dimStyle.Render("<"+req.Buyer.Email+">"),
			dimStyle.Render("From: "+dates.Long(req.StartDate)+"  To: "+dates.Long(req.EndDate))))
		if req.Message != "" {
			msg := req.Message
			if len(msg) > innerW-12 {
				msg = msg[:innerW-15] + "..."
			}
			b.WriteString(dimStyle.Render("    Message: " + msg))
			b.WriteString("\n")
		} else {
			b.WriteString("\n")
		}
	}

	return b.String()
}

func (m Model) renderInboxHelpPanel(innerW, _ int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Actions"))
	b.WriteString("\n\n")

	// Approve/deny affordances exist only while the selection is pending.
	if req, ok := m.selectedRequest(); ok && models.CanDecide(req.Status) {
		b.WriteString(promptStyle.Render("[a]") + " approve  " + errStyle.Render("[d]") + " deny\n")
	}
	b.WriteString(dimStyle.Render("[↑/↓] navigate  [r] refresh  [esc] back"))
	b.WriteString(m.renderToasts())
	return b.String()
}

func (m Model) renderItemsPanel(innerW, maxLines int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Browse Items"))
	b.WriteString("\n\n")

	if m.browseLoading {
		b.WriteString(dimStyle.Render("Loading..."))
		return b.String()
	}

	if len(m.items) == 0 {
		b.WriteString(dimStyle.Render("No items available."))
		return b.String()
	}

	avail := maxLines - 3
	if avail < 1 {
		avail = 1
	}
	start := 0
	if m.browseIdx >= avail {
		start = m.browseIdx - avail + 1
	}
	end := start + avail
	if end > len(m.items) {
		end = len(m.items)
	}

	for i := start; i < end; i++ {
		item := m.items[i]
		marker := "  "
		if i == m.browseIdx {
			marker = promptStyle.Render("▸ ")
		}
		days := item.Duration
		if days <= 0 {
			days = dates.DefaultLoanDays
		}
		line := fmt.Sprintf("%s%s  %s  %s",
			marker,
			valueStyle.Render(item.Title),
			dimStyle.Render(fmt.Sprintf("%s · %dd · %s", item.Category, days, item.Location)),
			dimStyle.Render(string(item.Status)),
		)
		b.WriteString(line)
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) renderBrowseHelpPanel(innerW, _ int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Actions"))
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render("[↑/↓] navigate  [enter] request to borrow  [r] refresh  [esc] back"))
	b.WriteString(m.renderToasts())
	return b.String()
}

func (m Model) renderFormPanel(innerW, _ int) string {
	f := m.form
	var b strings.Builder
	if f == nil {
		return b.String()
	}

	b.WriteString(titleStyle.Render("Request to Borrow: " + f.item.Title))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Fill out the details to request borrowing this item."))
	b.WriteString("\n\n")

	fields := []struct {
		label string
		value string
		field formField
	}{
		{"Start Date", dates.Long(f.startDate), fieldStart},
		{"End Date  ", dates.Long(f.endDate), fieldEnd},
		{"Message   ", f.message, fieldMessage},
	}
	for _, fl := range fields {
		marker := "  "
		if f.focus == fl.field {
			marker = promptStyle.Render("▸ ")
		}
		val := fl.value
		if fl.field == fieldMessage {
			if f.focus == fieldMessage {
				val += "█"
			}
			if val == "" || val == "█" {
				val = dimStyle.Render("Tell the owner why you need this item...") + val
			}
		} else {
			val = valueStyle.Render(val)
		}
		b.WriteString(fmt.Sprintf("%s%s  %s\n", marker, fl.label, val))
	}

	if f.submitting {
		b.WriteString("\n")
		b.WriteString(dimStyle.Render("Submitting..."))
	}
	return b.String()
}

func (m Model) renderFormHelpPanel(innerW, _ int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Actions"))
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render("[tab] next field  [←/→] adjust date  [enter] submit  [esc] cancel"))
	b.WriteString(m.renderToasts())
	return b.String()
}

func (m Model) renderMyRequestsPanel(innerW, maxLines int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("My Requests"))
	b.WriteString("\n\n")

	if m.mineLoading {
		b.WriteString(dimStyle.Render("Loading..."))
		return b.String()
	}

	if len(m.mine) == 0 {
		b.WriteString(dimStyle.Render("You haven't requested anything yet."))
		return b.String()
	}

	avail := (maxLines - 2) / 2
	if avail < 1 {
		avail = 1
	}
	list := m.mine
	if len(list) > avail {
		list = list[:avail]
	}
	for _, req := range list {
		b.WriteString(fmt.Sprintf("%s  %s\n", valueStyle.Render(req.Item.Title), renderBadge(req.Status)))
		b.WriteString(dimStyle.Render("  From: " + dates.Long(req.StartDate) + "  To: " + dates.Long(req.EndDate)))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderMyRequestsHelpPanel(innerW, _ int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Actions"))
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render("[r] refresh  [esc] back"))
	b.WriteString(m.renderToasts())
	return b.String()
}

// renderToasts renders the trailing notification lines, most recent last.
func (m Model) renderToasts() string {
	if len(m.toasts) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("\n\n")
	start := 0
	if len(m.toasts) > 3 {
		start = len(m.toasts) - 3
	}
	for _, t := range m.toasts[start:] {
		style := dimStyle
		if t.isErr {
			style = errStyle
		}
		b.WriteString(style.Render(fmt.Sprintf("[%s] %s", t.ts, t.text)))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
