// Command create_account registers a login identity in the configured store.
//
//	create_account -username admin -email admin@springstreet.in [-name "System Administrator"]
//
// The secret is read from ACCOUNT_SECRET so it stays out of shell history.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"inquirydesk/internal/config"
	"inquirydesk/internal/database"
	"inquirydesk/internal/domain"
	"inquirydesk/internal/logger"
	"inquirydesk/internal/util"
	apperrors "inquirydesk/pkg/errors"
)

func main() {
	username := flag.String("username", "admin", "account username")
	email := flag.String("email", "", "account email")
	name := flag.String("name", "", "display name")
	flag.Parse()

	if err := run(*username, *email, *name, os.Getenv("ACCOUNT_SECRET")); err != nil {
		fmt.Fprintf(os.Stderr, "create_account: %v\n", err)
		os.Exit(1)
	}
}

func run(username, email, name, secret string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if !cfg.Storage.Durable() {
		return errors.New("DATABASE_URL must be set; an in-memory account would be lost on exit")
	}

	log, err := logger.New(cfg.App.Debug)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))
	if username == "" || email == "" {
		return errors.New("-username and -email are required")
	}

	hash, err := util.HashSecret(secret)
	if err != nil {
		return fmt.Errorf("ACCOUNT_SECRET: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	store, err := database.Open(ctx, cfg.Storage, log)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close(context.Background()) }()

	if existing, err := store.GetAccountByUsername(ctx, username); err == nil {
		log.Info("account already exists", zap.Int64("id", existing.ID), zap.String("username", username))
		return nil
	} else if !apperrors.IsNotFound(err) {
		return err
	}

	draft := domain.AccountDraft{Username: username, Email: email, SecretHash: hash}
	if name = strings.TrimSpace(name); name != "" {
		draft.DisplayName = &name
	}
	account, err := store.CreateAccount(ctx, draft)
	if err != nil {
		return err
	}

	log.Info("account created", zap.Int64("id", account.ID), zap.String("username", account.Username))
	return nil
}
