package main

import (
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

var configPath string

func main() {
	root := &cobra.Command{
		Use:          "taskboard",
		Short:        "Task board with calendar view and rotating backups",
		Version:      version,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", os.Getenv("TASKBOARD_CONFIG"), "path to a YAML config file")

	root.AddCommand(newServeCmd())
	root.AddCommand(newBackupCmd())
	root.AddCommand(newUserCmd())

	// Без подкоманды запускаем сервер
	if len(os.Args) == 1 {
		os.Args = append(os.Args, "serve")
	}

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
