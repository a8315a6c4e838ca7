// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2026 Lendaround contributors. All rights reserved.

package app

import (
	"github.com/lendaround/lendaround/pkg/models"
)

// --- Tea messages ---

type loginResultMsg struct {
	result *LoginResult
	err    error
}

type inboxLoadedMsg struct {
	requests []models.BorrowRequest
	err      error
}

// decisionResultMsg reports the outcome of an approve or deny call.
// status is the state the matching entry moves to on success.
type decisionResultMsg struct {
	id     int64
	status models.RequestStatus
	err    error
}

type itemsLoadedMsg struct {
	items []models.Item
	err   error
}

type createResultMsg struct {
	err error
}

type myRequestsLoadedMsg struct {
	requests []models.BorrowRequest
	err      error
}
