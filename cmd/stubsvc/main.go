// Package main runs the stand-in book, review, and identity services on a
// single port for local development of the catalog front end.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bookshelf/internal/catalog"
	"bookshelf/internal/reviews"
	"bookshelf/internal/stub"
)

func main() {
	var (
		port          int
		adminUser     string
		adminPassword string
		tokenSecret   string
		seed          bool
	)
	flag.IntVar(&port, "port", 8081, "Server port")
	flag.StringVar(&adminUser, "admin-user", "admin", "Username granted the admin role")
	flag.StringVar(&adminPassword, "admin-password", "admin", "Password for the admin user")
	flag.StringVar(&tokenSecret, "token-secret", "dev-secret-change-me", "HMAC secret for issued tokens")
	flag.BoolVar(&seed, "seed", true, "Seed a few books and reviews at startup")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	books := stub.NewBookStore()
	revs := stub.NewReviewStore()
	if seed {
		seedData(books, revs)
	}

	tokens, err := stub.NewTokenIssuer([]byte(tokenSecret), adminUser, adminPassword, 12*time.Hour)
	if err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}

	handler := stub.NewHandler(books, revs, tokens, logger)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      handler.Routes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	shutdownErr := make(chan error)
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit
		logger.Info("shutting down", "signal", s.String())

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		shutdownErr <- srv.Shutdown(ctx)
	}()

	logger.Info("starting stub services", "address", srv.Addr)
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		logger.Error(err.Error())
		os.Exit(1)
	}
	if err := <-shutdownErr; err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
}

func seedData(books *stub.BookStore, revs *stub.ReviewStore) {
	isbn := "9780441172719"
	year := 1965
	dune := books.Create(catalog.BookInput{Title: "Dune", Author: "Frank Herbert", ISBN: &isbn, PublishedYear: &year})

	year2 := 1979
	books.Create(catalog.BookInput{Title: "The Hitchhiker's Guide to the Galaxy", Author: "Douglas Adams", PublishedYear: &year2})

	revs.Create(reviews.ReviewInput{BookID: dune.ID, ReviewerName: "Ada", Rating: 5, Comment: "A masterpiece of world-building."})
	revs.Create(reviews.ReviewInput{BookID: dune.ID, ReviewerName: "Linus", Rating: 4, Comment: "Slow start, great payoff."})
}
