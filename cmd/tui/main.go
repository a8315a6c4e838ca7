// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2026 Lendaround contributors. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog"

	"github.com/lendaround/lendaround/cmd/tui/internal/app"
	"github.com/lendaround/lendaround/config"
)

// newLogger returns a file-backed logger, or a disabled one when no path is
// configured. The TUI runs in the alternate screen, so logs never go to the
// terminal.
func newLogger(path string) (zerolog.Logger, func()) {
	if path == "" {
		return zerolog.New(io.Discard), func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "tui: open debug log: %v\n", err)
		return zerolog.New(io.Discard), func() {}
	}
	logger := zerolog.New(f).With().Timestamp().Logger()
	return logger, func() { f.Close() }
}

func main() {
	cfg := config.Load()

	logger, closeLog := newLogger(cfg.DebugLog)
	defer closeLog()

	client := app.NewLendingClient(cfg.APIBaseURL, logger)

	logger.Info().Str("api", cfg.APIBaseURL).Msg("starting")

	m := app.New(client)
	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "tui: %v\n", err)
		os.Exit(1)
	}
}
