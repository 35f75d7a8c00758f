package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/BuzzLyutic/taskboard/internal/service"
)

func newBackupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "backup",
		Short: "Back up the task database now and apply retention",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()

			name, err := service.NewBackupService(a.rotator, a.logger, a.metrics).Create(cmd.Context(), service.TriggerManual)
			if err != nil {
				return fmt.Errorf("backup: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), name)
			return nil
		},
	}
}
