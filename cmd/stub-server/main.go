// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2026 Lendaround contributors. All rights reserved.

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/lendaround/lendaround/internal/stubapi"
)

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	signingKey := os.Getenv("STUB_SIGNING_KEY")
	if signingKey == "" {
		// Fixture only; a random key just means tokens die with the process.
		signingKey = uuid.NewString()
	}

	h := stubapi.New(stubapi.NewStore(), signingKey)

	addr := ":" + port
	srv := &http.Server{
		Addr:         addr,
		Handler:      h.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
		<-sigint

		log.Println("Shutting down stub server...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
	}()

	log.Printf("lendaround stub API on %s", addr)
	log.Printf("  seller@lendaround.test / borrow")
	log.Printf("  buyer@lendaround.test  / borrow")

	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}

	log.Println("Server stopped")
}
