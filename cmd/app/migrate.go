package main

import (
	"errors"
	"fmt"

	"github.com/carlsonrocha-octa/softtek-backend/cmd"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations for the configured storage driver and exit",
	RunE:  migrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func migrate(c *cobra.Command, _ []string) error {
	configs, err := cmd.LoadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	storage, err := cmd.OpenStorage(c.Context(), configs)
	if err != nil {
		return fmt.Errorf("opening %s storage: %w", configs.StorageDriver, err)
	}

	err = storage.Migrate(c.Context())
	if closeErr := storage.Close(); closeErr != nil {
		err = errors.Join(err, closeErr)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(c.OutOrStdout(), "%s store is up to date\n", storage.Driver())
	return nil
}
