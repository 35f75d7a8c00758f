package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/BuzzLyutic/taskboard/internal/auth"
	"github.com/BuzzLyutic/taskboard/internal/service"
)

func newUserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage accounts",
	}
	cmd.AddCommand(newUserAddCmd())
	return cmd
}

func newUserAddCmd() *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "add <username>",
		Short: "Register an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				return errors.New("--password is required")
			}

			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()

			tokens := auth.NewTokenManager(a.cfg.SessionSecret, a.cfg.SessionTTL)
			srv := service.NewAuthService(a.credentials, auth.NewPasswordHasher(auth.DefaultBcryptCost), tokens, a.logger, a.metrics)
			c, err := srv.Register(cmd.Context(), args[0], password, password)
			if err != nil {
				return fmt.Errorf("register %s: %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created account %s\n", c.Username)
			return nil
		},
	}
	cmd.Flags().StringVar(&password, "password", "", "account password")
	return cmd
}
