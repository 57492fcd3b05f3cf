package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/freeup86/trainingpulse-sub004/internal/adapter/postgres"
	"github.com/freeup86/trainingpulse-sub004/internal/adapter/postgres/user"
	"github.com/freeup86/trainingpulse-sub004/internal/domain"
)

func newUserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage users",
	}
	cmd.AddCommand(newUserAddCmd())
	return cmd
}

func newUserAddCmd() *cobra.Command {
	var (
		email string
		name  string
		role  string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a user and print its ID",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			email = strings.TrimSpace(email)
			if !strings.Contains(email, "@") {
				return fmt.Errorf("--email: %q is not an email address", email)
			}
			if !domain.UserRole(role).IsValid() {
				return fmt.Errorf("--role: unknown role %q", role)
			}
			if name == "" {
				name, _, _ = strings.Cut(email, "@")
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			pool, err := postgres.NewPool(ctx, cfg.Database)
			if err != nil {
				return err
			}
			defer pool.Close()

			now := time.Now().UTC()
			u, err := user.New(pool).Create(ctx, domain.User{
				ID:        uuid.New(),
				Email:     email,
				Name:      name,
				Role:      domain.UserRole(role),
				CreatedAt: now,
				UpdatedAt: now,
			})
			if err != nil {
				return fmt.Errorf("create user: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), u.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email address (unique)")
	cmd.Flags().StringVar(&name, "name", "", "display name (default: email local part)")
	cmd.Flags().StringVar(&role, "role", string(domain.UserRoleDesigner), "admin, manager, designer or reviewer")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}
