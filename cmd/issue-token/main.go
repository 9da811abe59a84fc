package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"shopfront/internal/auth"
	"shopfront/internal/config"
	"shopfront/internal/database"
	"shopfront/internal/model"
	"shopfront/internal/repository"

	"github.com/spf13/pflag"
)

// issue-token creates the user if needed and prints a bearer token for it.
func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	email := pflag.StringP("email", "e", "", "user email (required)")
	role := pflag.StringP("role", "r", string(model.RoleCustomer), "role for a new user: customer, seller, manager or admin")
	staff := pflag.Bool("staff", false, "mark a new user as staff")
	pflag.Parse()

	if *email == "" {
		pflag.Usage()
		return fmt.Errorf("--email is required")
	}
	if !model.Role(*role).Valid() {
		return fmt.Errorf("unknown role %q", *role)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := config.NewLogger(cfg.Logger)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool, logger); err != nil {
		return err
	}

	user, err := repository.NewUserRepository(pool, logger).GetOrCreate(ctx, *email, model.Role(*role), *staff)
	if err != nil {
		return err
	}

	token, err := auth.NewIssuer(cfg.Auth.JWTSecret, cfg.Auth.TTL()).Generate(*user)
	if err != nil {
		return err
	}

	fmt.Println(token)
	return nil
}
